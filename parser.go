// parser.go — recursive-descent parser from tokens to a Value tree.
//
// The grammar is the minimal S-expression one: an expression is a
// number, a symbol, or a parenthesised list of expressions. A program
// is a sequence of expressions; a single expression parses to itself,
// while several parse to a list holding them in order, so "1 2 3" and
// "(1 2 3)" produce the same tree.
//
// There is no keyword recognition here. "let", "fn", "cond" and the
// operators come out of the parser as plain symbols; special forms are
// the interpreter's business (see interpreter_exec.go).
package lisp

import "fmt"

/* ===========================
   PUBLIC API
   =========================== */

// ParseError reports a structurally invalid token stream, with the
// position of the token that triggered it.
type ParseError struct {
	Line int
	Col  int
	Msg  string

	// incomplete marks errors that more input could repair, such as an
	// unclosed list. REPLs use IsIncomplete to keep reading instead of
	// reporting.
	incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parse scans and parses src into a single Value tree.
//
// A source holding exactly one top-level expression yields that
// expression's Value. Zero or several top-level expressions yield a
// list Value of them, so callers always receive one tree per source.
func Parse(src string) (Value, error) {
	lex := NewLexer(src)
	toks, err := lex.Scan()
	if err != nil {
		return Value{}, err
	}
	p := &parser{toks: toks}

	var exprs []Value
	for !p.atEnd() {
		expr, err := p.parseExpression()
		if err != nil {
			return Value{}, err
		}
		exprs = append(exprs, expr)
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return List(exprs), nil
}

//// END_OF_PUBLIC

/* ===========================
   PRIVATE IMPLEMENTATION
   =========================== */

type parser struct {
	toks []Token
	i    int
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // Scan always ends the stream with EOF
	}
	return p.toks[p.i]
}

func (p *parser) next() Token {
	t := p.peek()
	if t.Type != EOF {
		p.i++
	}
	return t
}

func errAt(tok Token, msg string) error {
	return &ParseError{Line: tok.Line, Col: tok.Col, Msg: msg}
}

func errIncompleteAt(tok Token, msg string) error {
	return &ParseError{Line: tok.Line, Col: tok.Col, Msg: msg, incomplete: true}
}

// ─────────────────────────────── expressions ────────────────────────────────

// parseExpression consumes one expression starting at the current token.
func (p *parser) parseExpression() (Value, error) {
	tok := p.next()
	switch tok.Type {
	case NUMBER:
		return Num(tok.Literal.(float64)), nil
	case SYMBOL:
		return Sym(tok.Literal.(string)), nil
	case LROUND:
		return p.parseList(tok)
	case RROUND:
		return Value{}, errAt(tok, "unexpected closing parenthesis")
	default:
		// EOF; callers check atEnd first, so this is a guard.
		return Value{}, errIncompleteAt(tok, "unexpected end of input")
	}
}

// parseList consumes expressions until the ')' matching open.
// Position for the unbalanced case points at the '(' left hanging, not
// at EOF, which reads better in multi-line sources.
func (p *parser) parseList(open Token) (Value, error) {
	var elems []Value
	for {
		if p.atEnd() {
			return Value{}, errIncompleteAt(open, "unbalanced parentheses")
		}
		if p.peek().Type == RROUND {
			p.next()
			return List(elems), nil
		}
		sub, err := p.parseExpression()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, sub)
	}
}
