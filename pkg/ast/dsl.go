package ast

import (
	"math/big"
	"strings"
)

// Terse constructors for hand-building programs, mostly in tests.

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(big.NewInt(value))
}

func IntBig(value *big.Int) *IntegerLiteral {
	return NewIntegerLiteral(new(big.Int).Set(value))
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Cell(index int) *CellExpr {
	return NewCellExpr(index)
}

// Output designates the reserved output cell.
func Output() *CellExpr {
	return NewCellExpr(OutputCell)
}

func Param(name string) *ParamExpr {
	return NewParamExpr(name)
}

func Bin(op BinaryOperator, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func CallExpr(name string, args ...Expression) *Call {
	return NewCall(name, args)
}

func Assn(target *CellExpr, value Expression) *Assign {
	return NewAssign(target, value)
}

func Blk(label int, stmts ...Statement) *Block {
	return NewBlock(label, stmts)
}

func LoopN(bound Expression, body *Block) *Loop {
	return NewLoop(bound, body)
}

func MuLoop(body *Block) *Loop {
	return NewLoop(nil, body)
}

func If(test Expression, then *Block) *Conditional {
	return NewConditional(test, then)
}

// Decl infers predicate-ness from the trailing '?' the way the builder does.
func Decl(name string, params []string, body *Block) *Declaration {
	return NewDeclaration(name, strings.HasSuffix(name, "?"), params, body)
}

func Prog(decls []*Declaration, entry *Call) *Program {
	return NewProgram(decls, entry)
}
