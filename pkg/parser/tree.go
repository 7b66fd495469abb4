package parser

// The parser produces a parse tree, not the evaluable AST: each Node records
// the grammar rule that matched, the token text where one matters, and the
// source position of its first token. The builder package turns this tree
// into AST nodes; keeping the two shapes separate means every consumer of
// the core can substitute its own front end as long as it emits this tree.

// Kind tags a parse-tree node with the grammar rule that produced it.
type Kind string

const (
	KindProgram Kind = "program" // children: decl*, call?
	KindDecl    Kind = "decl"    // Text: procedure name; children: param*, block
	KindParam   Kind = "param"   // Text: parameter name (also parameter fetch in expressions)
	KindBlock   Kind = "block"   // children: open num, stmt*, close num
	KindLoop    Kind = "loop"    // children: bound atom, block (both bounded spellings)
	KindMuLoop  Kind = "muloop"  // children: block
	KindCond    Kind = "cond"    // children: test, block
	KindQuit    Kind = "quit"    // Text: block label digits
	KindAbort   Kind = "abort"   // Text: loop label digits
	KindAssign  Kind = "assign"  // children: lvalue (cell|output), expr
	KindCell    Kind = "cell"    // Text: index digits
	KindOutput  Kind = "output"  // the reserved OUTPUT cell
	KindNum     Kind = "num"     // Text: digits
	KindBool    Kind = "bool"    // Text: YES or NO
	KindBinary  Kind = "binary"  // Text: one of + * = < >; children: left, right
	KindCall    Kind = "call"    // Text: procedure name; children: arg atoms
)

// Pos is a 1-based source coordinate.
type Pos struct {
	Line int
	Col  int
}

// Node is one parse-tree vertex.
type Node struct {
	Kind     Kind
	Text     string
	Pos      Pos
	Children []*Node
}

func newNode(kind Kind, text string, pos Pos, children ...*Node) *Node {
	return &Node{Kind: kind, Text: text, Pos: pos, Children: children}
}
