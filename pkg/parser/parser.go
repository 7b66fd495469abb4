package parser

import (
	"fmt"
)

// Parse turns source text into the parse tree consumed by the builder. The
// grammar is the teaching language's: a sequence of DEFINE PROCEDURE
// declarations followed by an optional entry call.
func Parse(source string) (*Node, error) {
	toks, err := newLexer(source).tokens()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.parseProgram()
}

// ParseError reports a grammar violation with its source coordinate.
type ParseError struct {
	Msg  string
	Line int
	Col  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[%d:%d]: %s", e.Line, e.Col, e.Msg)
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.typ != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(at token, format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Line: at.line, Col: at.col}
}

func (p *parser) expect(typ tokenType) (token, error) {
	t := p.next()
	if t.typ != typ {
		return t, p.errorf(t, "expected %s, found %q", typ, t.text)
	}
	return t, nil
}

func (p *parser) expectWord(word string) (token, error) {
	t := p.next()
	if t.typ != tokWord || t.text != word {
		return t, p.errorf(t, "expected %s, found %q", word, t.text)
	}
	return t, nil
}

func (p *parser) atWord(word string) bool {
	t := p.peek()
	return t.typ == tokWord && t.text == word
}

func (p *parser) parseProgram() (*Node, error) {
	start := p.peek()
	var children []*Node
	for p.atWord("DEFINE") {
		decl, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		children = append(children, decl)
	}
	if p.peek().typ == tokWord {
		call, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		children = append(children, call)
	}
	if t := p.peek(); t.typ != tokEOF {
		return nil, p.errorf(t, "unexpected %q after program end", t.text)
	}
	return newNode(KindProgram, "", start.pos(), children...), nil
}

func (p *parser) parseDecl() (*Node, error) {
	start, err := p.expectWord("DEFINE")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectWord("PROCEDURE"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokQuote); err != nil {
		return nil, err
	}
	name, err := p.expect(tokWord)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokQuote); err != nil {
		return nil, err
	}

	children := []*Node{}
	if _, err := p.expect(tokLBracket); err != nil {
		return nil, err
	}
	for {
		param, err := p.expect(tokWord)
		if err != nil {
			return nil, err
		}
		children = append(children, newNode(KindParam, param.text, param.pos()))
		if p.peek().typ != tokComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(tokRBracket); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	children = append(children, body)
	return newNode(KindDecl, name.text, start.pos(), children...), nil
}

// parseBlock keeps both label tokens as the first and last children so the
// block validator can compare them and point at the opening one.
func (p *parser) parseBlock() (*Node, error) {
	start, err := p.expectWord("BLOCK")
	if err != nil {
		return nil, err
	}
	open, err := p.expect(tokNumber)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon); err != nil {
		return nil, err
	}
	if _, err := p.expectWord("BEGIN"); err != nil {
		return nil, err
	}

	children := []*Node{newNode(KindNum, open.text, open.pos())}
	for !p.atWord("BLOCK") {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		children = append(children, stmt)
	}

	if _, err := p.expectWord("BLOCK"); err != nil {
		return nil, err
	}
	closeTok, err := p.expect(tokNumber)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon); err != nil {
		return nil, err
	}
	if _, err := p.expectWord("END"); err != nil {
		return nil, err
	}
	children = append(children, newNode(KindNum, closeTok.text, closeTok.pos()))
	return newNode(KindBlock, "", start.pos(), children...), nil
}

func (p *parser) parseStmt() (*Node, error) {
	t := p.peek()
	if t.typ != tokWord {
		return nil, p.errorf(t, "expected a statement, found %q", t.text)
	}
	switch t.text {
	case "LOOP":
		return p.parseLoop()
	case "MU-LOOP":
		start := p.next()
		if _, err := p.expect(tokColon); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return newNode(KindMuLoop, "", start.pos(), body), nil
	case "IF":
		return p.parseCond()
	case "QUIT":
		start := p.next()
		if _, err := p.expectWord("BLOCK"); err != nil {
			return nil, err
		}
		num, err := p.expect(tokNumber)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokSemicolon); err != nil {
			return nil, err
		}
		return newNode(KindQuit, num.text, start.pos()), nil
	case "ABORT":
		start := p.next()
		if _, err := p.expectWord("LOOP"); err != nil {
			return nil, err
		}
		num, err := p.expect(tokNumber)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokSemicolon); err != nil {
			return nil, err
		}
		return newNode(KindAbort, num.text, start.pos()), nil
	case "CELL", "OUTPUT":
		return p.parseAssign()
	default:
		return nil, p.errorf(t, "expected a statement, found %q", t.text)
	}
}

// parseLoop handles both bounded spellings; LOOP AT MOST N TIMES and
// LOOP N TIMES produce the same node.
func (p *parser) parseLoop() (*Node, error) {
	start, err := p.expectWord("LOOP")
	if err != nil {
		return nil, err
	}
	if p.atWord("AT") {
		p.next()
		if _, err := p.expectWord("MOST"); err != nil {
			return nil, err
		}
	}
	bound, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectWord("TIMES"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return newNode(KindLoop, "", start.pos(), bound, body), nil
}

func (p *parser) parseCond() (*Node, error) {
	start, err := p.expectWord("IF")
	if err != nil {
		return nil, err
	}
	test, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokComma); err != nil {
		return nil, err
	}
	if _, err := p.expectWord("THEN"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return newNode(KindCond, "", start.pos(), test, body), nil
}

func (p *parser) parseAssign() (*Node, error) {
	lvalue, err := p.parseLValue()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokArrow); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokSemicolon); err != nil {
		return nil, err
	}
	return newNode(KindAssign, "", lvalue.Pos, lvalue, value), nil
}

func (p *parser) parseLValue() (*Node, error) {
	t := p.next()
	switch {
	case t.typ == tokWord && t.text == "OUTPUT":
		return newNode(KindOutput, "", t.pos()), nil
	case t.typ == tokWord && t.text == "CELL":
		if _, err := p.expect(tokLParen); err != nil {
			return nil, err
		}
		num, err := p.expect(tokNumber)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return newNode(KindCell, num.text, t.pos()), nil
	default:
		return nil, p.errorf(t, "expected CELL or OUTPUT, found %q", t.text)
	}
}

// parseExpr parses an atom optionally joined to a second atom by one binary
// operator. The grammar has no nesting and no parenthesized expressions.
func (p *parser) parseExpr() (*Node, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	op := p.peek()
	switch op.typ {
	case tokPlus, tokStar, tokEq, tokLess, tokGreater:
		p.next()
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return newNode(KindBinary, op.text, left.Pos, left, right), nil
	default:
		return left, nil
	}
}

func (p *parser) parseAtom() (*Node, error) {
	t := p.peek()
	switch t.typ {
	case tokNumber:
		p.next()
		return newNode(KindNum, t.text, t.pos()), nil
	case tokWord:
		switch t.text {
		case "YES", "NO":
			p.next()
			return newNode(KindBool, t.text, t.pos()), nil
		case "OUTPUT":
			p.next()
			return newNode(KindOutput, "", t.pos()), nil
		case "CELL":
			return p.parseLValue()
		default:
			if p.toks[p.pos+1].typ == tokLParen {
				return p.parseCall()
			}
			p.next()
			return newNode(KindParam, t.text, t.pos()), nil
		}
	default:
		return nil, p.errorf(t, "expected an expression, found %q", t.text)
	}
}

func (p *parser) parseCall() (*Node, error) {
	name, err := p.expect(tokWord)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	var args []*Node
	for {
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peek().typ != tokComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	return newNode(KindCall, name.text, name.pos(), args...), nil
}
