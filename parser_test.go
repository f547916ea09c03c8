// parser_test.go
package lisp

import (
	"reflect"
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func mustParse(t *testing.T, src string) Value {
	t.Helper()
	v, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse error: %v\nsource:\n%s", err, src)
	}
	return v
}

func mustIncomplete(t *testing.T, src string) {
	t.Helper()
	_, err := Parse(src)
	if err == nil || !IsIncomplete(err) {
		t.Fatalf("expected incomplete-input error, got %v\nsource:\n%s", err, src)
	}
}

func mustFailParseContains(t *testing.T, src string, substr string) *ParseError {
	t.Helper()
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("expected parse error containing %q, got nil\nsource:\n%s", substr, src)
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if substr != "" && !strings.Contains(err.Error(), substr) {
		t.Fatalf("expected error containing %q, got %v\nsource:\n%s", substr, err, src)
	}
	return pe
}

func wantTree(t *testing.T, src string, want Value) {
	t.Helper()
	got := mustParse(t, src)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tree mismatch\nsource:\n%s\nwant: %s\ngot:  %s", src, want, got)
	}
}

// --- tests -----------------------------------------------------------------

func Test_Parser_Simple_SExpr(t *testing.T) {
	wantTree(t, `(print 5)`, List([]Value{Sym("print"), Num(5)}))
}

func Test_Parser_Single_Expression_Unwrapped(t *testing.T) {
	wantTree(t, `42`, Num(42))
	wantTree(t, `x`, Sym("x"))
	wantTree(t, `  (+ 1 2)  `, List([]Value{Sym("+"), Num(1), Num(2)}))
}

func Test_Parser_Program_Wraps_Multiple_Expressions(t *testing.T) {
	src := `(let b 1.0)
(let h 14)
(print (/ (* b h) 2))`
	want := List([]Value{
		List([]Value{Sym("let"), Sym("b"), Num(1.0)}),
		List([]Value{Sym("let"), Sym("h"), Num(14)}),
		List([]Value{
			Sym("print"),
			List([]Value{
				Sym("/"),
				List([]Value{Sym("*"), Sym("b"), Sym("h")}),
				Num(2),
			}),
		}),
	})
	wantTree(t, src, want)
}

func Test_Parser_Cond_Form_Shape(t *testing.T) {
	src := `(cond
	((gt x 0) Positive)
	((eq x 0) Zero)
	((lt x 0) Negative))`
	want := List([]Value{
		Sym("cond"),
		List([]Value{
			List([]Value{Sym("gt"), Sym("x"), Num(0)}),
			Sym("Positive"),
		}),
		List([]Value{
			List([]Value{Sym("eq"), Sym("x"), Num(0)}),
			Sym("Zero"),
		}),
		List([]Value{
			List([]Value{Sym("lt"), Sym("x"), Num(0)}),
			Sym("Negative"),
		}),
	})
	wantTree(t, src, want)
}

func Test_Parser_Empty_List_And_Nesting(t *testing.T) {
	wantTree(t, `()`, List(nil))
	wantTree(t, `(())`, List([]Value{List(nil)}))

	got := mustParse(t, `(((((1)))))`)
	for depth := 0; depth < 5; depth++ {
		if got.Tag != VTList || len(got.Data.([]Value)) != 1 {
			t.Fatalf("depth %d: want singleton list, got %s", depth, got)
		}
		got = got.Data.([]Value)[0]
	}
	if !reflect.DeepEqual(got, Num(1)) {
		t.Fatalf("want 1 at the bottom, got %s", got)
	}
}

func Test_Parser_Empty_Source_Is_Empty_Program(t *testing.T) {
	wantTree(t, ``, List(nil))
	wantTree(t, " \n\t ", List(nil))
}

func Test_Parser_Unbalanced_Parens_Is_Incomplete(t *testing.T) {
	mustIncomplete(t, `(+ 1`)
	mustIncomplete(t, `(let result (+ b`)
	mustIncomplete(t, "(cond\n((gt x 0) 1)")

	pe := mustFailParseContains(t, `(+ 1`, "unbalanced parentheses")
	if pe.Line != 1 || pe.Col != 0 {
		t.Fatalf("want the unclosed '(' at 1:0, got %d:%d", pe.Line, pe.Col)
	}
}

func Test_Parser_Unbalanced_Blames_Innermost_Open(t *testing.T) {
	pe := mustFailParseContains(t, "(foo\n(bar", "unbalanced parentheses")
	if pe.Line != 2 || pe.Col != 0 {
		t.Fatalf("want error at 2:0, got %d:%d", pe.Line, pe.Col)
	}
}

func Test_Parser_Stray_Close_Is_A_Hard_Error(t *testing.T) {
	pe := mustFailParseContains(t, `)`, "unexpected closing parenthesis")
	if IsIncomplete(pe) {
		t.Fatalf("a stray ')' must not read as incomplete input")
	}
	if pe.Line != 1 || pe.Col != 0 {
		t.Fatalf("want error at 1:0, got %d:%d", pe.Line, pe.Col)
	}

	mustFailParseContains(t, `(+ 1 2))`, "unexpected closing parenthesis")
}

func Test_Parser_Lex_Errors_Pass_Through(t *testing.T) {
	_, err := Parse("(\xff)")
	if err == nil {
		t.Fatalf("expected lex error, got nil")
	}
	if _, ok := err.(*LexError); !ok {
		t.Fatalf("expected *LexError, got %T: %v", err, err)
	}
}
