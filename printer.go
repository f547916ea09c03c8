// printer.go — canonical textual rendering of values.
//
// FormatValue renders the display form the REPL prints: numbers in plain
// decimal (never exponent notation), symbols bare, lists parenthesized and
// space-separated, nil as the word "nil", lambdas as "fn(params) body...".
// For every tree the parser can produce, the rendering re-parses to an
// equivalent tree, so format-then-parse round-trips.
//
// Pretty is the fmt subcommand's engine: parse a source, print each
// top-level expression back on its own line. The grammar has no comments,
// so nothing is lost beyond layout.
package lisp

import (
	"strconv"
	"strings"
)

/* ---------- value -> text ---------- */

// FormatValue renders v in its canonical single-line form.
func FormatValue(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch v.Tag {
	case VTNumber:
		b.WriteString(formatNumber(v.Data.(float64)))
	case VTSymbol:
		b.WriteString(v.Data.(string))
	case VTList:
		b.WriteByte('(')
		for i, el := range v.Data.([]Value) {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeValue(b, el)
		}
		b.WriteByte(')')
	case VTNil:
		b.WriteString("nil")
	case VTLambda:
		lam := v.Data.(*Lambda)
		b.WriteString("fn(")
		b.WriteString(strings.Join(lam.Params, " "))
		b.WriteByte(')')
		for _, expr := range lam.Body {
			b.WriteByte(' ')
			writeValue(b, expr)
		}
	default:
		b.WriteString("<unknown>")
	}
}

// formatNumber prints without an exponent so numeric output re-tokenizes
// as a single numeric literal ("5", "2.5", never "5e0").
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

/* ---------- source -> pretty ---------- */

// Pretty parses src and returns its canonical rendering, one top-level
// expression per line. Top-level expressions are deliberately NOT run
// through Parse's single-tree wrapping: formatting a two-expression file
// must not parenthesize it into one.
func Pretty(src string) (string, error) {
	lex := NewLexer(src)
	toks, err := lex.Scan()
	if err != nil {
		return "", WrapErrorWithSource(err, src)
	}
	p := &parser{toks: toks}
	var lines []string
	for !p.atEnd() {
		expr, perr := p.parseExpression()
		if perr != nil {
			return "", WrapErrorWithSource(perr, src)
		}
		lines = append(lines, FormatValue(expr))
	}
	return strings.Join(lines, "\n"), nil
}
