package lisp

import (
	"errors"
	"strings"
	"testing"
)

func mustContain(t *testing.T, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Fatalf("expected output to contain %q\n--- output ---\n%s", sub, s)
	}
}

func Test_ErrorWrap_Parse_ShowsCaretAndContext(t *testing.T) {
	// Two lines; the unclosed '(' sits on line 2.
	src := `(let x 5)
(+ 1`

	_, err := Pretty(src)
	if err == nil {
		t.Fatalf("expected parse error, got nil")
	}
	msg := err.Error()

	mustContain(t, msg, "PARSE ERROR at 2:1: unbalanced parentheses")
	mustContain(t, msg, "   1 | (let x 5)")
	mustContain(t, msg, "   2 | (+ 1")
	// Caret under column 1.
	mustContain(t, msg, "     | ^")
}

func Test_ErrorWrap_Caret_Aligns_With_Column(t *testing.T) {
	_, perr := Parse(`(let x (+ 1`)
	if perr == nil {
		t.Fatalf("expected parse error, got nil")
	}
	msg := WrapErrorWithSource(perr, `(let x (+ 1`).Error()

	// The inner '(' is at 0-based column 7, rendered as column 8.
	mustContain(t, msg, "PARSE ERROR at 1:8")
	mustContain(t, msg, "     | "+strings.Repeat(" ", 7)+"^")
}

func Test_ErrorWrap_Lex_ShowsCaretAndContext(t *testing.T) {
	src := "(let ok 1)\n(bad \xff)"

	_, err := Pretty(src)
	if err == nil {
		t.Fatalf("expected lex error, got nil")
	}
	msg := err.Error()

	mustContain(t, msg, "LEXICAL ERROR at 2:6")
	mustContain(t, msg, "unexpected character")
	mustContain(t, msg, "   1 | (let ok 1)")
}

func Test_ErrorWrap_Name_Appears_In_Header(t *testing.T) {
	src := `(+ 1`
	_, perr := Parse(src)
	if perr == nil {
		t.Fatalf("expected parse error, got nil")
	}
	msg := WrapErrorWithName(perr, "train.lisp", src).Error()
	mustContain(t, msg, "PARSE ERROR in train.lisp at 1:1")
}

func Test_ErrorWrap_Leaves_Runtime_Errors_Alone(t *testing.T) {
	ip := NewInterpreter()
	_, err := ip.EvalSource(`(boom)`)
	if err == nil {
		t.Fatalf("expected runtime error, got nil")
	}
	if got := err.Error(); got != "RUNTIME ERROR: Unbound symbol boom" {
		t.Fatalf("runtime errors must pass through unwrapped, got %q", got)
	}

	plain := errors.New("disk on fire")
	if WrapErrorWithSource(plain, "src") != plain {
		t.Fatalf("foreign errors must come back unchanged")
	}
}

func Test_IsIncomplete_Classification(t *testing.T) {
	if IsIncomplete(nil) {
		t.Fatalf("nil error is not incomplete")
	}

	_, err := Parse(`(+ 1`)
	if !IsIncomplete(err) {
		t.Fatalf("an unclosed list should read as incomplete, got %v", err)
	}

	_, err = Parse(`)`)
	if err == nil || IsIncomplete(err) {
		t.Fatalf("a stray ')' is a hard error, got %v", err)
	}

	if _, err = Parse(``); err != nil {
		t.Fatalf("empty input parses as an empty program, got %v", err)
	}

	if IsIncomplete(errors.New("nope")) {
		t.Fatalf("foreign errors are never incomplete")
	}
}
