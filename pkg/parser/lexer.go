package parser

import (
	"fmt"
	"strings"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokWord
	tokNumber
	tokQuote
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokColon
	tokSemicolon
	tokComma
	tokArrow // <=
	tokPlus
	tokStar
	tokEq
	tokLess
	tokGreater
)

func (t tokenType) String() string {
	switch t {
	case tokEOF:
		return "end of input"
	case tokWord:
		return "word"
	case tokNumber:
		return "number"
	case tokQuote:
		return `"`
	case tokLParen:
		return "("
	case tokRParen:
		return ")"
	case tokLBracket:
		return "["
	case tokRBracket:
		return "]"
	case tokColon:
		return ":"
	case tokSemicolon:
		return ";"
	case tokComma:
		return ","
	case tokArrow:
		return "<="
	case tokPlus:
		return "+"
	case tokStar:
		return "*"
	case tokEq:
		return "="
	case tokLess:
		return "<"
	case tokGreater:
		return ">"
	default:
		return fmt.Sprintf("token(%d)", int(t))
	}
}

type token struct {
	typ  tokenType
	text string
	line int
	col  int
}

func (t token) pos() Pos { return Pos{Line: t.line, Col: t.col} }

// LexError reports a malformed token with its source coordinate.
type LexError struct {
	Msg  string
	Line int
	Col  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("[%d:%d]: %s", e.Line, e.Col, e.Msg)
}

type lexer struct {
	input string
	pos   int
	line  int
	col   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input, line: 1, col: 1}
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *lexer) advance() byte {
	c := l.input[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// tokens scans the whole input up front; programs are small.
func (l *lexer) tokens() ([]token, error) {
	var out []token
	for {
		l.skipSpace()
		if l.pos >= len(l.input) {
			out = append(out, token{typ: tokEOF, line: l.line, col: l.col})
			return out, nil
		}

		line, col := l.line, l.col
		c := l.peek()
		switch {
		case isDigit(c):
			start := l.pos
			for l.pos < len(l.input) && isWordChar(l.peek()) {
				l.advance()
			}
			text := l.input[start:l.pos]
			if strings.IndexFunc(text, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
				return nil, &LexError{Msg: fmt.Sprintf("malformed number %q", text), Line: line, Col: col}
			}
			if len(text) > 1 && text[0] == '0' {
				return nil, &LexError{Msg: fmt.Sprintf("number %q has a leading zero", text), Line: line, Col: col}
			}
			out = append(out, token{typ: tokNumber, text: text, line: line, col: col})
		case isWordChar(c):
			start := l.pos
			for l.pos < len(l.input) && isWordChar(l.peek()) {
				l.advance()
			}
			// The MU-LOOP keyword is the single word containing a hyphen.
			if l.input[start:l.pos] == "MU" && l.peek() == '-' {
				l.advance()
				for l.pos < len(l.input) && isWordChar(l.peek()) {
					l.advance()
				}
			}
			if l.peek() == '?' {
				l.advance()
			}
			out = append(out, token{typ: tokWord, text: l.input[start:l.pos], line: line, col: col})
		default:
			l.advance()
			switch c {
			case '"':
				out = append(out, token{typ: tokQuote, text: `"`, line: line, col: col})
			case '(':
				out = append(out, token{typ: tokLParen, text: "(", line: line, col: col})
			case ')':
				out = append(out, token{typ: tokRParen, text: ")", line: line, col: col})
			case '[':
				out = append(out, token{typ: tokLBracket, text: "[", line: line, col: col})
			case ']':
				out = append(out, token{typ: tokRBracket, text: "]", line: line, col: col})
			case ':':
				out = append(out, token{typ: tokColon, text: ":", line: line, col: col})
			case ';':
				out = append(out, token{typ: tokSemicolon, text: ";", line: line, col: col})
			case ',':
				out = append(out, token{typ: tokComma, text: ",", line: line, col: col})
			case '+':
				out = append(out, token{typ: tokPlus, text: "+", line: line, col: col})
			case '*':
				out = append(out, token{typ: tokStar, text: "*", line: line, col: col})
			case '=':
				out = append(out, token{typ: tokEq, text: "=", line: line, col: col})
			case '>':
				out = append(out, token{typ: tokGreater, text: ">", line: line, col: col})
			case '<':
				if l.peek() == '=' {
					l.advance()
					out = append(out, token{typ: tokArrow, text: "<=", line: line, col: col})
				} else {
					out = append(out, token{typ: tokLess, text: "<", line: line, col: col})
				}
			default:
				return nil, &LexError{Msg: fmt.Sprintf("unexpected character %q", string(rune(c))), Line: line, Col: col}
			}
		}
	}
}
