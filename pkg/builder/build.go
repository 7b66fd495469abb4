package builder

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"floop/interpreter-go/pkg/ast"
	"floop/interpreter-go/pkg/parser"
)

// Build validates block labels and converts the parse tree into the AST the
// evaluator runs. Shapes outside the grammar are an upstream contract
// violation, reported defensively rather than diagnosed.
func Build(root *parser.Node) (*ast.Program, error) {
	if err := ValidateBlocks(root); err != nil {
		return nil, err
	}
	if root.Kind != parser.KindProgram {
		return nil, fmt.Errorf("expected program node, got %s", root.Kind)
	}

	var decls []*ast.Declaration
	var entry *ast.Call
	for _, child := range root.Children {
		switch child.Kind {
		case parser.KindDecl:
			decl, err := buildDecl(child)
			if err != nil {
				return nil, err
			}
			decls = append(decls, decl)
		case parser.KindCall:
			call, err := buildCall(child)
			if err != nil {
				return nil, err
			}
			entry = call
		default:
			return nil, fmt.Errorf("unexpected %s node at top level", child.Kind)
		}
	}
	prog := ast.NewProgram(decls, entry)
	annotate(prog, root.Pos)
	return prog, nil
}

func annotate(node ast.Node, pos parser.Pos) {
	ast.SetSpan(node, ast.Span{Start: ast.Position{Line: pos.Line, Column: pos.Col}})
}

func buildDecl(node *parser.Node) (*ast.Declaration, error) {
	var params []string
	var body *ast.Block
	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindParam:
			params = append(params, child.Text)
		case parser.KindBlock:
			built, err := buildBlock(child)
			if err != nil {
				return nil, err
			}
			body = built
		default:
			return nil, fmt.Errorf("unexpected %s node in declaration", child.Kind)
		}
	}
	if body == nil {
		return nil, fmt.Errorf("declaration %q has no body block", node.Text)
	}
	// A trailing '?' marks a predicate procedure: its output cell defaults
	// to NO at call time instead of 0.
	decl := ast.NewDeclaration(node.Text, strings.HasSuffix(node.Text, "?"), params, body)
	annotate(decl, node.Pos)
	return decl, nil
}

// buildBlock drops the two label children the validator already compared and
// keeps the single label.
func buildBlock(node *parser.Node) (*ast.Block, error) {
	label, err := strconv.Atoi(node.Children[0].Text)
	if err != nil {
		return nil, fmt.Errorf("malformed block label %q: %w", node.Children[0].Text, err)
	}
	var stmts []ast.Statement
	for _, child := range node.Children[1 : len(node.Children)-1] {
		stmt, err := buildStmt(child)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	block := ast.NewBlock(label, stmts)
	annotate(block, node.Pos)
	return block, nil
}

func buildStmt(node *parser.Node) (ast.Statement, error) {
	switch node.Kind {
	case parser.KindLoop:
		bound, err := buildExpr(node.Children[0])
		if err != nil {
			return nil, err
		}
		body, err := buildBlock(node.Children[1])
		if err != nil {
			return nil, err
		}
		loop := ast.NewLoop(bound, body)
		annotate(loop, node.Pos)
		return loop, nil
	case parser.KindMuLoop:
		body, err := buildBlock(node.Children[0])
		if err != nil {
			return nil, err
		}
		loop := ast.NewLoop(nil, body)
		annotate(loop, node.Pos)
		return loop, nil
	case parser.KindCond:
		test, err := buildExpr(node.Children[0])
		if err != nil {
			return nil, err
		}
		then, err := buildBlock(node.Children[1])
		if err != nil {
			return nil, err
		}
		cond := ast.NewConditional(test, then)
		annotate(cond, node.Pos)
		return cond, nil
	case parser.KindQuit:
		label, err := strconv.Atoi(node.Text)
		if err != nil {
			return nil, fmt.Errorf("malformed QUIT label %q: %w", node.Text, err)
		}
		quit := ast.NewQuit(label)
		annotate(quit, node.Pos)
		return quit, nil
	case parser.KindAbort:
		label, err := strconv.Atoi(node.Text)
		if err != nil {
			return nil, fmt.Errorf("malformed ABORT label %q: %w", node.Text, err)
		}
		abort := ast.NewAbort(label)
		annotate(abort, node.Pos)
		return abort, nil
	case parser.KindAssign:
		target, err := buildLValue(node.Children[0])
		if err != nil {
			return nil, err
		}
		value, err := buildExpr(node.Children[1])
		if err != nil {
			return nil, err
		}
		assign := ast.NewAssign(target, value)
		annotate(assign, node.Pos)
		return assign, nil
	default:
		return nil, fmt.Errorf("unexpected %s node in statement position", node.Kind)
	}
}

func buildLValue(node *parser.Node) (*ast.CellExpr, error) {
	switch node.Kind {
	case parser.KindCell:
		index, err := strconv.Atoi(node.Text)
		if err != nil {
			return nil, fmt.Errorf("malformed cell index %q: %w", node.Text, err)
		}
		cell := ast.NewCellExpr(index)
		annotate(cell, node.Pos)
		return cell, nil
	case parser.KindOutput:
		cell := ast.NewCellExpr(ast.OutputCell)
		annotate(cell, node.Pos)
		return cell, nil
	default:
		return nil, fmt.Errorf("unexpected %s node as assignment target", node.Kind)
	}
}

var binaryOps = map[string]ast.BinaryOperator{
	"+": ast.OpAdd,
	"*": ast.OpMultiply,
	"=": ast.OpEqual,
	"<": ast.OpLess,
	">": ast.OpGreater,
}

func buildExpr(node *parser.Node) (ast.Expression, error) {
	switch node.Kind {
	case parser.KindNum:
		value, ok := new(big.Int).SetString(node.Text, 10)
		if !ok {
			return nil, fmt.Errorf("malformed number literal %q", node.Text)
		}
		lit := ast.NewIntegerLiteral(value)
		annotate(lit, node.Pos)
		return lit, nil
	case parser.KindBool:
		lit := ast.NewBooleanLiteral(node.Text == "YES")
		annotate(lit, node.Pos)
		return lit, nil
	case parser.KindCell, parser.KindOutput:
		return buildLValue(node)
	case parser.KindParam:
		param := ast.NewParamExpr(node.Text)
		annotate(param, node.Pos)
		return param, nil
	case parser.KindBinary:
		op, ok := binaryOps[node.Text]
		if !ok {
			return nil, fmt.Errorf("unknown operator %q", node.Text)
		}
		left, err := buildExpr(node.Children[0])
		if err != nil {
			return nil, err
		}
		right, err := buildExpr(node.Children[1])
		if err != nil {
			return nil, err
		}
		bin := ast.NewBinaryExpression(op, left, right)
		annotate(bin, node.Pos)
		return bin, nil
	case parser.KindCall:
		return buildCall(node)
	default:
		return nil, fmt.Errorf("unexpected %s node in expression position", node.Kind)
	}
}

func buildCall(node *parser.Node) (*ast.Call, error) {
	args := make([]ast.Expression, 0, len(node.Children))
	for _, child := range node.Children {
		arg, err := buildExpr(child)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	call := ast.NewCall(node.Text, args)
	annotate(call, node.Pos)
	return call, nil
}
