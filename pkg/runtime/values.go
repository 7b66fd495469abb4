package runtime

import (
	"fmt"
	"math/big"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindBool
	KindCellRef
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBool:
		return "boolean"
	case KindCellRef:
		return "cell reference"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

// IntegerValue holds a non-negative arbitrary-precision integer. The grammar
// has no negative literals and no subtraction, so values never go below zero.
type IntegerValue struct {
	Val *big.Int
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// CellRefValue designates a storage cell as an assignment target. It exists
// only transiently while an assignment evaluates its left-hand side; it is
// never stored in a cell.
type CellRefValue struct {
	Index int
}

func (v CellRefValue) Kind() Kind { return KindCellRef }

// NewInteger copies the provided big.Int so callers cannot alias stored
// values.
func NewInteger(val *big.Int) IntegerValue {
	return IntegerValue{Val: new(big.Int).Set(val)}
}

// IntegerFromInt64 is a convenience constructor for small constants.
func IntegerFromInt64(val int64) IntegerValue {
	return IntegerValue{Val: big.NewInt(val)}
}

// StructuralEqual reports whether two values of the same kind hold the same
// payload. The second result is false when the kinds differ; the caller
// decides whether that is an error.
func StructuralEqual(a, b Value) (equal, sameKind bool) {
	switch av := a.(type) {
	case IntegerValue:
		bv, ok := b.(IntegerValue)
		if !ok {
			return false, false
		}
		return av.Val.Cmp(bv.Val) == 0, true
	case BoolValue:
		bv, ok := b.(BoolValue)
		if !ok {
			return false, false
		}
		return av.Val == bv.Val, true
	default:
		return false, false
	}
}

// Format renders a value in the language's own spelling: decimal integers,
// YES/NO booleans.
func Format(v Value) string {
	switch val := v.(type) {
	case IntegerValue:
		return val.Val.String()
	case BoolValue:
		if val.Val {
			return "YES"
		}
		return "NO"
	case CellRefValue:
		return fmt.Sprintf("CELL(%d)", val.Index)
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}
