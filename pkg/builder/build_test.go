package builder

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floop/interpreter-go/pkg/ast"
	"floop/interpreter-go/pkg/parser"
)

func mustParse(t *testing.T, source string) *parser.Node {
	t.Helper()
	root, err := parser.Parse(source)
	require.NoError(t, err)
	return root
}

func TestBuildDeclaration(t *testing.T) {
	root := mustParse(t, `
DEFINE PROCEDURE "add" [A, B]:
BLOCK 0: BEGIN
OUTPUT <= A + B;
BLOCK 0: END

add(2, 3)
`)
	prog, err := Build(root)
	require.NoError(t, err)
	require.Len(t, prog.Decls, 1)

	decl := prog.Decls[0]
	assert.Equal(t, "add", decl.Name)
	assert.False(t, decl.Predicate)
	assert.Equal(t, []string{"A", "B"}, decl.Params)
	assert.Equal(t, 0, decl.Body.Label)
	require.Len(t, decl.Body.Body, 1)

	assign, ok := decl.Body.Body[0].(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, ast.OutputCell, assign.Target.Index)
	bin, ok := assign.Value.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Operator)

	require.NotNil(t, prog.Entry)
	assert.Equal(t, "add", prog.Entry.Name)
	require.Len(t, prog.Entry.Args, 2)
	lit, ok := prog.Entry.Args[0].(*ast.IntegerLiteral)
	require.True(t, ok)
	assert.Zero(t, lit.Value.Cmp(big.NewInt(2)))
}

func TestBuildMarksPredicates(t *testing.T) {
	root := mustParse(t, `
DEFINE PROCEDURE "is_zero?" [X]:
BLOCK 0: BEGIN
OUTPUT <= YES;
BLOCK 0: END
`)
	prog, err := Build(root)
	require.NoError(t, err)
	assert.True(t, prog.Decls[0].Predicate)
	assert.Equal(t, "is_zero?", prog.Decls[0].Name)
}

func TestBuildFoldsLoopSpellings(t *testing.T) {
	root := mustParse(t, `
DEFINE PROCEDURE "run" [N]:
BLOCK 0: BEGIN
LOOP N TIMES:
BLOCK 1: BEGIN
CELL(0) <= 1;
BLOCK 1: END
LOOP AT MOST N TIMES:
BLOCK 2: BEGIN
CELL(0) <= 2;
BLOCK 2: END
MU-LOOP:
BLOCK 3: BEGIN
ABORT LOOP 3;
BLOCK 3: END
BLOCK 0: END
`)
	prog, err := Build(root)
	require.NoError(t, err)

	stmts := prog.Decls[0].Body.Body
	require.Len(t, stmts, 3)

	exact, ok := stmts[0].(*ast.Loop)
	require.True(t, ok)
	atMost, ok := stmts[1].(*ast.Loop)
	require.True(t, ok)
	// The two bounded spellings are indistinguishable once built.
	require.NotNil(t, exact.Bound)
	require.NotNil(t, atMost.Bound)
	assert.IsType(t, &ast.ParamExpr{}, exact.Bound)
	assert.IsType(t, &ast.ParamExpr{}, atMost.Bound)

	mu, ok := stmts[2].(*ast.Loop)
	require.True(t, ok)
	assert.Nil(t, mu.Bound)
	abort, ok := mu.Body.Body[0].(*ast.Abort)
	require.True(t, ok)
	assert.Equal(t, 3, abort.Label)
}

func TestBuildRewritesOutputToReservedCell(t *testing.T) {
	root := mustParse(t, `
DEFINE PROCEDURE "bump" [X]:
BLOCK 0: BEGIN
OUTPUT <= OUTPUT + 1;
BLOCK 0: END
`)
	prog, err := Build(root)
	require.NoError(t, err)

	assign := prog.Decls[0].Body.Body[0].(*ast.Assign)
	assert.Equal(t, -1, assign.Target.Index)
	bin := assign.Value.(*ast.BinaryExpression)
	fetch, ok := bin.Left.(*ast.CellExpr)
	require.True(t, ok)
	assert.Equal(t, -1, fetch.Index)
}

func TestValidateRejectsMismatchedLabels(t *testing.T) {
	root := mustParse(t, `
DEFINE PROCEDURE "broken" [X]:
BLOCK 1: BEGIN
OUTPUT <= X;
BLOCK 2: END
`)
	_, err := Build(root)
	require.Error(t, err)

	mismatch, ok := err.(*BlockLabelMismatch)
	require.True(t, ok, "expected *BlockLabelMismatch, got %T", err)
	assert.Equal(t, 1, mismatch.Open)
	assert.Equal(t, 2, mismatch.Close)
	// Position points at the opening label.
	assert.Equal(t, 3, mismatch.Pos.Line)
	assert.Equal(t, 7, mismatch.Pos.Col)
	assert.Contains(t, err.Error(), "[3:7]")
}

func TestValidateChecksNestedBlocks(t *testing.T) {
	root := mustParse(t, `
DEFINE PROCEDURE "run" [N]:
BLOCK 0: BEGIN
LOOP N TIMES:
BLOCK 1: BEGIN
CELL(0) <= 1;
BLOCK 9: END
BLOCK 0: END
`)
	_, err := Build(root)
	require.Error(t, err)
	mismatch, ok := err.(*BlockLabelMismatch)
	require.True(t, ok)
	assert.Equal(t, 1, mismatch.Open)
	assert.Equal(t, 9, mismatch.Close)
}

func TestValidateAcceptsMatchingLabels(t *testing.T) {
	root := mustParse(t, `
DEFINE PROCEDURE "run" [N]:
BLOCK 0: BEGIN
LOOP N TIMES:
BLOCK 1: BEGIN
CELL(0) <= 1;
BLOCK 1: END
BLOCK 0: END
`)
	require.NoError(t, ValidateBlocks(root))
}
