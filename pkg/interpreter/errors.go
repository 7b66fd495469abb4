package interpreter

import (
	"fmt"

	"floop/interpreter-go/pkg/runtime"
)

// Every condition below is fatal to the run; the core attempts no recovery.
// The CLI wrapper catches whatever reaches the top and presents it.

// UnmatchedQuitError is a QUIT whose label names no enclosing block in the
// current activation.
type UnmatchedQuitError struct {
	Label int
}

func (e *UnmatchedQuitError) Error() string {
	return fmt.Sprintf("QUIT BLOCK %d does not belong to any block", e.Label)
}

// UnmatchedAbortError is an ABORT whose label names no enclosing loop body
// in the current activation.
type UnmatchedAbortError struct {
	Label int
}

func (e *UnmatchedAbortError) Error() string {
	return fmt.Sprintf("ABORT LOOP %d does not belong to any loop", e.Label)
}

// UnhandledControlFlowError wraps a quit or abort that escaped a whole
// procedure activation. Signals never leak into the caller.
type UnhandledControlFlowError struct {
	Proc  string
	Cause error
}

func (e *UnhandledControlFlowError) Error() string {
	return fmt.Sprintf("control flow escaped procedure %q: %v", e.Proc, e.Cause)
}

func (e *UnhandledControlFlowError) Unwrap() error { return e.Cause }

// UndefinedProcedureError is a call to a name absent from the registry at
// call time.
type UndefinedProcedureError struct {
	Name string
}

func (e *UndefinedProcedureError) Error() string {
	return fmt.Sprintf("undefined procedure %q", e.Name)
}

type ArityMismatchError struct {
	Name     string
	Expected int
	Got      int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("procedure %q expects %d arguments, got %d", e.Name, e.Expected, e.Got)
}

// UninitializedCellError is a read of a cell never assigned in the current
// activation. The output cell is exempt; it is seeded at activation start.
type UninitializedCellError struct {
	Index int
}

func (e *UninitializedCellError) Error() string {
	return fmt.Sprintf("CELL(%d) read before assignment", e.Index)
}

// TypeMismatchError is an operator applied to an operand of the wrong kind.
type TypeMismatchError struct {
	Operation string
	Got       runtime.Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s is not defined on %s operands", e.Operation, e.Got)
}

// UnknownParameterError should be unreachable for ASTs the builder produced;
// parameters are bound positionally before the body runs.
type UnknownParameterError struct {
	Name string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("parameter %q has no binding", e.Name)
}
