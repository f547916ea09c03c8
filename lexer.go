// lexer.go — scanner for the S-expression surface syntax.
package lisp

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Punctuation
	LROUND // "("
	RROUND // ")"

	// Literals & symbols
	NUMBER // numeric literal, held as float64
	SYMBOL // operators, keywords and identifiers alike
)

func (tt TokenType) String() string {
	switch tt {
	case EOF:
		return "EOF"
	case LROUND:
		return "LROUND"
	case RROUND:
		return "RROUND"
	case NUMBER:
		return "NUMBER"
	case SYMBOL:
		return "SYMBOL"
	default:
		return fmt.Sprintf("TokenType(%d)", int(tt))
	}
}

// Token is a lexical token with optional literal value.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // float64 for NUMBER, string for SYMBOL
	Line    int         // 1-based
	Col     int         // 0-based column within line
}

// Lexer scans a source string into tokens. The grammar has three
// alternatives tried in order at every non-whitespace position: a
// numeric literal (optional leading '-', digits, optional '.digits'),
// a symbol (maximal run of characters that are neither whitespace nor
// parentheses), and the parentheses themselves. Whitespace — newlines
// included — only separates tokens, so a multi-line program scans to
// one flat stream.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  0,
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) Token {
	lex := l.src[l.start:l.cur]
	tok := Token{
		Type:    tt,
		Lexeme:  lex,
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
			l.start = l.cur
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isDelimiter(b byte) bool {
	switch b {
	case ' ', '\r', '\n', '\t', '(', ')':
		return true
	default:
		return false
	}
}

// ----- errors -----

// LexError reports a byte sequence that matches none of the token
// grammar's alternatives, with the position of the offending character.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.line, Col: l.col, Msg: msg}
}

// ----- scanners -----

// scanNumber parses an optional leading '-', one or more digits and an
// optional fractional part. The fractional dot is consumed only when a
// digit follows, so "5." scans as the number 5 and a "." symbol.
func (l *Lexer) scanNumber() (Token, error) {
	if b, ok := l.peek(); ok && b == '-' {
		l.advance()
	}
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	if b, ok := l.peek(); ok && b == '.' {
		if b2, ok2 := l.peekN(1); ok2 && isDigit(b2) {
			l.advance() // consume '.'
			for {
				b, ok := l.peek()
				if !ok || !isDigit(b) {
					break
				}
				l.advance()
			}
		}
	}

	lex := l.src[l.start:l.cur]
	f, convErr := strconv.ParseFloat(lex, 64)
	if convErr != nil && !errors.Is(convErr, strconv.ErrRange) {
		// ErrRange saturates to ±Inf and is kept; anything else is a bug.
		return Token{}, l.err(fmt.Sprintf("invalid number literal %q", lex))
	}
	return l.addToken(NUMBER, f), nil
}

// scanSymbol consumes a maximal run of characters containing neither
// whitespace nor parentheses.
func (l *Lexer) scanSymbol() (Token, error) {
	for {
		b, ok := l.peek()
		if !ok || isDelimiter(b) {
			break
		}
		if b < utf8.RuneSelf {
			l.advance()
			continue
		}
		r, size := utf8.DecodeRuneInString(l.src[l.cur:])
		if r == utf8.RuneError && size == 1 {
			return Token{}, l.err(fmt.Sprintf("unexpected character %q", l.src[l.cur]))
		}
		l.cur += size
		l.col += size
	}
	return l.addToken(SYMBOL, l.src[l.start:l.cur]), nil
}

// ----- main scanner -----

func (l *Lexer) scanToken() (Token, error) {
	l.skipWhitespace()
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.start = l.cur

	if l.isAtEnd() {
		return l.addToken(EOF, nil), nil
	}

	ch, _ := l.peek()
	switch {
	case ch == '(':
		l.advance()
		return l.addToken(LROUND, "("), nil
	case ch == ')':
		l.advance()
		return l.addToken(RROUND, ")"), nil
	case isDigit(ch):
		return l.scanNumber()
	case ch == '-':
		// A '-' starts a number only when a digit follows; "-", "->"
		// and friends are ordinary symbols.
		if b, ok := l.peekN(1); ok && isDigit(b) {
			return l.scanNumber()
		}
		return l.scanSymbol()
	default:
		return l.scanSymbol()
	}
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}
