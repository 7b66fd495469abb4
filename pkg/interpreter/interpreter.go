package interpreter

import (
	"fmt"
	"math/big"

	"floop/interpreter-go/pkg/ast"
	"floop/interpreter-go/pkg/runtime"
)

// Interpreter drives evaluation of a built program. Each Interpreter owns a
// fresh procedure registry; nothing survives between independent runs.
type Interpreter struct {
	registry *runtime.Registry
}

// New returns an interpreter with an empty registry.
func New() *Interpreter {
	return &Interpreter{registry: runtime.NewRegistry()}
}

// Registry exposes the procedure registry.
func (i *Interpreter) Registry() *runtime.Registry {
	return i.registry
}

// Run evaluates a program with a fresh interpreter, so nothing carries over
// from earlier runs.
func Run(prog *ast.Program) (runtime.Value, error) {
	return New().EvaluateProgram(prog)
}

// EvaluateProgram records every declaration top to bottom, then runs the
// trailing entry call if one is present. Its output is the program's result;
// a program without an entry call yields nil.
func (i *Interpreter) EvaluateProgram(prog *ast.Program) (runtime.Value, error) {
	for _, decl := range prog.Decls {
		i.registry.Declare(decl)
	}
	if prog.Entry == nil {
		return nil, nil
	}
	// The entry call behaves like any other call, made from a synthetic
	// activation with no cells and no parameters.
	cells := runtime.NewCellStore(runtime.IntegerFromInt64(0))
	return i.evaluateCall(prog.Entry, cells, runtime.BindParams(nil, nil))
}

// Non-local exits travel the evaluator's error return path. A quit is
// consumed by the block whose label matches; an abort by the loop whose body
// block's label matches. Anything else re-raises them unchanged.

type quitSignal struct {
	label int
}

func (s quitSignal) Error() string {
	return fmt.Sprintf("quit block %d", s.label)
}

type abortSignal struct {
	label int
}

func (s abortSignal) Error() string {
	return fmt.Sprintf("abort loop %d", s.label)
}

func (i *Interpreter) evaluateStatement(node ast.Statement, cells *runtime.CellStore, params runtime.Params) error {
	switch n := node.(type) {
	case *ast.Block:
		return i.evaluateBlock(n, cells, params)
	case *ast.Loop:
		return i.evaluateLoop(n, cells, params)
	case *ast.Conditional:
		return i.evaluateConditional(n, cells, params)
	case *ast.Quit:
		return quitSignal{label: n.Label}
	case *ast.Abort:
		return abortSignal{label: n.Label}
	case *ast.Assign:
		return i.evaluateAssign(n, cells, params)
	default:
		return fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

// evaluateBlock runs the statements in order under a handler for quits
// naming this block's own label; a matching quit counts as normal
// completion.
func (i *Interpreter) evaluateBlock(block *ast.Block, cells *runtime.CellStore, params runtime.Params) error {
	for _, stmt := range block.Body {
		if err := i.evaluateStatement(stmt, cells, params); err != nil {
			if sig, ok := err.(quitSignal); ok && sig.label == block.Label {
				return nil
			}
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluateLoop(loop *ast.Loop, cells *runtime.CellStore, params runtime.Params) error {
	if loop.Bound == nil {
		// Mu-loop: only a matching abort (or a propagating error) ends it.
		// The interpreter imposes no iteration cap of its own.
		for {
			err := i.evaluateBlock(loop.Body, cells, params)
			if err == nil {
				continue
			}
			if sig, ok := err.(abortSignal); ok && sig.label == loop.Body.Label {
				return nil
			}
			return err
		}
	}

	bound, err := i.evaluateExpression(loop.Bound, cells, params)
	if err != nil {
		return err
	}
	iv, ok := bound.(runtime.IntegerValue)
	if !ok {
		return &TypeMismatchError{Operation: "LOOP bound", Got: bound.Kind()}
	}
	// The bound is evaluated exactly once; iterations share the enclosing
	// cell store, so the loop body can't change how often it runs except by
	// aborting.
	one := big.NewInt(1)
	for n := new(big.Int).Set(iv.Val); n.Sign() > 0; n.Sub(n, one) {
		err := i.evaluateBlock(loop.Body, cells, params)
		if err == nil {
			continue
		}
		if sig, ok := err.(abortSignal); ok && sig.label == loop.Body.Label {
			return nil
		}
		return err
	}
	return nil
}

func (i *Interpreter) evaluateConditional(cond *ast.Conditional, cells *runtime.CellStore, params runtime.Params) error {
	test, err := i.evaluateExpression(cond.Test, cells, params)
	if err != nil {
		return err
	}
	bv, ok := test.(runtime.BoolValue)
	if !ok {
		return &TypeMismatchError{Operation: "IF condition", Got: test.Kind()}
	}
	if !bv.Val {
		return nil
	}
	return i.evaluateBlock(cond.Then, cells, params)
}

func (i *Interpreter) evaluateAssign(assign *ast.Assign, cells *runtime.CellStore, params runtime.Params) error {
	ref := i.evaluateLValue(assign.Target)
	value, err := i.evaluateExpression(assign.Value, cells, params)
	if err != nil {
		return err
	}
	cells.Set(ref.Index, value)
	return nil
}

// evaluateLValue is the only producer of cell references.
func (i *Interpreter) evaluateLValue(target *ast.CellExpr) runtime.CellRefValue {
	return runtime.CellRefValue{Index: target.Index}
}

func (i *Interpreter) evaluateExpression(node ast.Expression, cells *runtime.CellStore, params runtime.Params) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.NewInteger(n.Value), nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.CellExpr:
		val, ok := cells.Get(n.Index)
		if !ok {
			return nil, &UninitializedCellError{Index: n.Index}
		}
		return val, nil
	case *ast.ParamExpr:
		val, ok := params.Get(n.Name)
		if !ok {
			return nil, &UnknownParameterError{Name: n.Name}
		}
		return val, nil
	case *ast.BinaryExpression:
		return i.evaluateBinary(n, cells, params)
	case *ast.Call:
		return i.evaluateCall(n, cells, params)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateBinary(bin *ast.BinaryExpression, cells *runtime.CellStore, params runtime.Params) (runtime.Value, error) {
	left, err := i.evaluateExpression(bin.Left, cells, params)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(bin.Right, cells, params)
	if err != nil {
		return nil, err
	}

	switch bin.Operator {
	case ast.OpEqual:
		eq, sameKind := runtime.StructuralEqual(left, right)
		if !sameKind {
			return nil, &TypeMismatchError{Operation: string(bin.Operator), Got: right.Kind()}
		}
		return runtime.BoolValue{Val: eq}, nil
	case ast.OpAdd, ast.OpMultiply, ast.OpLess, ast.OpGreater:
		li, ok := left.(runtime.IntegerValue)
		if !ok {
			return nil, &TypeMismatchError{Operation: string(bin.Operator), Got: left.Kind()}
		}
		ri, ok := right.(runtime.IntegerValue)
		if !ok {
			return nil, &TypeMismatchError{Operation: string(bin.Operator), Got: right.Kind()}
		}
		switch bin.Operator {
		case ast.OpAdd:
			return runtime.IntegerValue{Val: new(big.Int).Add(li.Val, ri.Val)}, nil
		case ast.OpMultiply:
			return runtime.IntegerValue{Val: new(big.Int).Mul(li.Val, ri.Val)}, nil
		case ast.OpLess:
			return runtime.BoolValue{Val: li.Val.Cmp(ri.Val) < 0}, nil
		default:
			return runtime.BoolValue{Val: li.Val.Cmp(ri.Val) > 0}, nil
		}
	default:
		return nil, fmt.Errorf("unsupported operator: %s", bin.Operator)
	}
}

// evaluateCall runs a procedure in a fresh activation. Arguments evaluate
// left to right in the caller's store and binding; the callee sees only its
// positional parameters and its own cells.
func (i *Interpreter) evaluateCall(call *ast.Call, cells *runtime.CellStore, params runtime.Params) (runtime.Value, error) {
	args := make([]runtime.Value, 0, len(call.Args))
	for _, argExpr := range call.Args {
		val, err := i.evaluateExpression(argExpr, cells, params)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	decl, ok := i.registry.Lookup(call.Name)
	if !ok {
		return nil, &UndefinedProcedureError{Name: call.Name}
	}
	if len(args) != len(decl.Params) {
		return nil, &ArityMismatchError{Name: call.Name, Expected: len(decl.Params), Got: len(args)}
	}

	var outputDefault runtime.Value = runtime.IntegerFromInt64(0)
	if decl.Predicate {
		outputDefault = runtime.BoolValue{Val: false}
	}
	frame := runtime.NewCellStore(outputDefault)
	bound := runtime.BindParams(decl.Params, args)

	if err := i.evaluateBlock(decl.Body, frame, bound); err != nil {
		// A signal that escapes the whole activation is a programming error
		// in the interpreted program, never something the caller observes
		// as control flow.
		switch sig := err.(type) {
		case quitSignal:
			return nil, &UnhandledControlFlowError{Proc: call.Name, Cause: &UnmatchedQuitError{Label: sig.label}}
		case abortSignal:
			return nil, &UnhandledControlFlowError{Proc: call.Name, Cause: &UnmatchedAbortError{Label: sig.label}}
		}
		return nil, err
	}
	return frame.Output(), nil
}
