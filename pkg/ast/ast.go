package ast

import "math/big"

type NodeType string

const (
	NodeProgram          NodeType = "Program"
	NodeDeclaration      NodeType = "Declaration"
	NodeBlock            NodeType = "Block"
	NodeLoop             NodeType = "Loop"
	NodeConditional      NodeType = "Conditional"
	NodeQuit             NodeType = "Quit"
	NodeAbort            NodeType = "Abort"
	NodeAssign           NodeType = "Assign"
	NodeCall             NodeType = "Call"
	NodeCellExpr         NodeType = "CellExpr"
	NodeParamExpr        NodeType = "ParamExpr"
	NodeIntegerLiteral   NodeType = "IntegerLiteral"
	NodeBooleanLiteral   NodeType = "BooleanLiteral"
	NodeBinaryExpression NodeType = "BinaryExpression"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.span = span }

// SetSpan annotates a node with its source span. The parse-tree builder is
// the only caller; hand-built ASTs (tests) leave spans zeroed.
func SetSpan(node Node, span Span) {
	type spanSetter interface{ setSpan(Span) }
	if s, ok := node.(spanSetter); ok {
		s.setSpan(span)
	}
}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// OutputCell is the reserved cell index holding a procedure activation's
// return value.
const OutputCell = -1

// Program is the root artifact produced by the builder: the declarations in
// source order plus an optional trailing entry call.
type Program struct {
	nodeImpl

	Decls []*Declaration `json:"decls"`
	Entry *Call          `json:"entry,omitempty"`
}

func NewProgram(decls []*Declaration, entry *Call) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Decls: decls, Entry: entry}
}

// Declaration binds a procedure name to its parameter list and body block.
// Predicate marks names carrying the trailing `?`; it decides the output
// cell's default at call time (NO instead of 0).
type Declaration struct {
	nodeImpl
	statementMarker

	Name      string   `json:"name"`
	Predicate bool     `json:"predicate"`
	Params    []string `json:"params"`
	Body      *Block   `json:"body"`
}

func NewDeclaration(name string, predicate bool, params []string, body *Block) *Declaration {
	return &Declaration{nodeImpl: newNodeImpl(NodeDeclaration), Name: name, Predicate: predicate, Params: params, Body: body}
}

// Block is a labeled, ordered statement sequence. Open and close labels are
// checked for equality before building, so a single label suffices here.
type Block struct {
	nodeImpl
	statementMarker

	Label int         `json:"label"`
	Body  []Statement `json:"body"`
}

func NewBlock(label int, body []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Label: label, Body: body}
}

// Loop runs its body Bound times, or forever when Bound is nil (mu-loop).
// Both bounded spellings ("N TIMES" and "AT MOST N TIMES") fold onto this
// one shape; only an ABORT naming the body block's label ends iteration
// early.
type Loop struct {
	nodeImpl
	statementMarker

	Bound Expression `json:"bound,omitempty"`
	Body  *Block     `json:"body"`
}

func NewLoop(bound Expression, body *Block) *Loop {
	return &Loop{nodeImpl: newNodeImpl(NodeLoop), Bound: bound, Body: body}
}

type Conditional struct {
	nodeImpl
	statementMarker

	Test Expression `json:"test"`
	Then *Block     `json:"then"`
}

func NewConditional(test Expression, then *Block) *Conditional {
	return &Conditional{nodeImpl: newNodeImpl(NodeConditional), Test: test, Then: then}
}

// Quit exits the enclosing block whose label matches.
type Quit struct {
	nodeImpl
	statementMarker

	Label int `json:"label"`
}

func NewQuit(label int) *Quit {
	return &Quit{nodeImpl: newNodeImpl(NodeQuit), Label: label}
}

// Abort ends the enclosing loop whose body block carries the label.
type Abort struct {
	nodeImpl
	statementMarker

	Label int `json:"label"`
}

func NewAbort(label int) *Abort {
	return &Abort{nodeImpl: newNodeImpl(NodeAbort), Label: label}
}

// Assign stores the value expression's result into the target cell. It is
// the language's only mutation primitive.
type Assign struct {
	nodeImpl
	statementMarker

	Target *CellExpr  `json:"target"`
	Value  Expression `json:"value"`
}

func NewAssign(target *CellExpr, value Expression) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Target: target, Value: value}
}

// Call invokes a declared procedure. It appears as an expression and, once,
// as a program's trailing entry point.
type Call struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name string       `json:"name"`
	Args []Expression `json:"args"`
}

func NewCall(name string, args []Expression) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Name: name, Args: args}
}

// CellExpr designates one numbered storage cell. In expression position it
// reads the cell; as an Assign target it names the cell to write. Index -1
// is the output cell.
type CellExpr struct {
	nodeImpl
	expressionMarker

	Index int `json:"index"`
}

func NewCellExpr(index int) *CellExpr {
	return &CellExpr{nodeImpl: newNodeImpl(NodeCellExpr), Index: index}
}

type ParamExpr struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewParamExpr(name string) *ParamExpr {
	return &ParamExpr{nodeImpl: newNodeImpl(NodeParamExpr), Name: name}
}

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Value *big.Int `json:"value"`
}

func NewIntegerLiteral(value *big.Int) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type BinaryOperator string

const (
	OpAdd      BinaryOperator = "+"
	OpMultiply BinaryOperator = "*"
	OpEqual    BinaryOperator = "="
	OpLess     BinaryOperator = "<"
	OpGreater  BinaryOperator = ">"
)

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryExpression(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}
