package builder

import (
	"fmt"
	"strconv"

	"floop/interpreter-go/pkg/parser"
)

// BlockLabelMismatch reports a block whose closing label differs from its
// opening one. Pos points at the opening label.
type BlockLabelMismatch struct {
	Open  int
	Close int
	Pos   parser.Pos
}

func (e *BlockLabelMismatch) Error() string {
	return fmt.Sprintf("[%d:%d]: block numbers do not match: %d vs %d", e.Pos.Line, e.Pos.Col, e.Open, e.Close)
}

// ValidateBlocks walks the parse tree in pre-order and checks that every
// block's opening and closing labels agree. It evaluates nothing and either
// visits every block or fails on the first mismatch; Build runs it before
// building, so no AST reaches the evaluator unvalidated.
func ValidateBlocks(root *parser.Node) error {
	if root == nil {
		return nil
	}
	if root.Kind == parser.KindBlock {
		open := root.Children[0]
		closing := root.Children[len(root.Children)-1]
		openNum, err := strconv.Atoi(open.Text)
		if err != nil {
			return fmt.Errorf("malformed block label %q: %w", open.Text, err)
		}
		closeNum, err := strconv.Atoi(closing.Text)
		if err != nil {
			return fmt.Errorf("malformed block label %q: %w", closing.Text, err)
		}
		if openNum != closeNum {
			return &BlockLabelMismatch{Open: openNum, Close: closeNum, Pos: open.Pos}
		}
	}
	for _, child := range root.Children {
		if err := ValidateBlocks(child); err != nil {
			return err
		}
	}
	return nil
}
