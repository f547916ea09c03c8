// interpreter.go — PUBLIC API SURFACE for the interpreter.
//
// OVERVIEW
// ========
// This file exposes the public surface of the runtime: the value model, the
// environment, the error type, and the evaluation entry points. It contains
// only exported types and thin methods; the tree-walking engine lives in
// interpreter_exec.go.
//
// What you get in this file:
//   • The runtime value model (`Value`, `ValueTag`, constructors `Num/Sym/List/LambdaVal`, `Nil`).
//   • Functions (`Lambda`) as first-class values.
//   • Environments (`Env`) with a parent chain.
//   • The `Interpreter` type and the canonical entry points (ephemeral vs
//     persistent source evaluation, plus tree evaluation in an explicit env).
//   • The package-level `Evaluate(src, env)` that the CLI and embedders call.
//   • A structured `RuntimeError` surfaced as a Go error by all entry points.
//
// EXECUTION & SCOPING SEMANTICS
// -----------------------------
// Code evaluates in environments (`*Env`) that form a chain via `parent`.
// The Interpreter exposes one well-known frame, `Global`, holding the
// session's persistent state. Entry points differ only in which environment
// they target:
//   • Ephemeral runs: `EvalSource` creates a fresh child of Global; `let`
//     bindings land in that throwaway child and Global stays unchanged.
//   • Persistent runs: `EvalPersistentSource` evaluates in Global itself, so
//     bindings survive across calls (REPL sessions work this way).
//   • Explicit env: `Evaluate` and `Eval` target exactly the environment the
//     caller passes.
//
// A deliberate oddity, kept for compatibility with the language as shipped:
// calling a lambda extends the environment live at the CALL SITE, not the one
// in effect where the lambda was defined. Lambdas carry no closure
// environment at all (see the Lambda docs below).
//
// RUNTIME ERRORS
// --------------
// All entry points return (Value, error). Failures during evaluation are
// *RuntimeError values whose message names the offending symbol or
// condition. Lex and parse failures keep their own types (*LexError,
// *ParseError) and carry source positions; see errors.go for the snippet
// renderer the CLI uses.
package lisp

import "fmt"

////////////////////////////////////////////////////////////////////////////////
//                              PUBLIC TYPES & CTORS
////////////////////////////////////////////////////////////////////////////////

// ValueTag enumerates the runtime kinds a Value may hold.
// The tag determines what Value.Data contains (see Value docs).
type ValueTag int

const (
	VTNil    ValueTag = iota // nil (no payload)
	VTNumber                 // float64
	VTSymbol                 // string
	VTList                   // []Value
	VTLambda                 // *Lambda
)

// Value is the universal carrier used for both parsed syntax and evaluation
// results. The same type is a list literal in one position and a call form in
// another; only the evaluator's context tells them apart.
//
// Invariants:
//   - When Tag==VTNil, Data is nil, so the zero Value is already nil.
//   - When Tag==VTList, Data is a non-nil []Value (List normalizes).
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// String renders the canonical display form (see FormatValue in printer.go).
func (v Value) String() string { return FormatValue(v) }

// Nil is the unit value: the result of let and of evaluating anything that
// has no value of its own.
var Nil = Value{Tag: VTNil}

// Primitive constructors.
func Num(f float64) Value { return Value{Tag: VTNumber, Data: f} }
func Sym(s string) Value  { return Value{Tag: VTSymbol, Data: s} }

// List wraps xs as a list Value. A nil slice is normalized to an empty one so
// that an empty list compares equal however it was produced.
func List(xs []Value) Value {
	if xs == nil {
		xs = []Value{}
	}
	return Value{Tag: VTList, Data: xs}
}

// Lambda is a user-defined function: parameter names plus an unevaluated
// body, re-walked on every call.
//
// There is no captured environment field. The body evaluates in a fresh
// child of whatever environment is live at the call site, which makes free
// variables resolve dynamically rather than lexically. A lambda returned out
// of the scope that defined it therefore loses access to that scope's
// bindings.
type Lambda struct {
	Params []string
	Body   []Value
}

// LambdaVal wraps l into a Value (Tag=VTLambda).
func LambdaVal(l *Lambda) Value { return Value{Tag: VTLambda, Data: l} }

// Env is one scope frame: a name-to-value table plus a parent link. Lookups
// walk parent-ward; definitions always land in the current frame.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env { return &Env{parent: parent, table: make(map[string]Value)} }

// Define binds name to v in the current frame, shadowing any outer binding.
// It never writes to a parent; rebinding an outer name creates a fresh local.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Get retrieves the nearest visible binding for name or reports it unbound.
func (e *Env) Get(name string) (Value, error) {
	if v, ok := e.table[name]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, &RuntimeError{Msg: fmt.Sprintf("Unbound symbol %s", name)}
}

// RuntimeError represents an execution-time failure. Unlike lex and parse
// errors it carries no position: evaluation works on value trees, and trees
// hold no source coordinates.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR: %s", e.Msg)
}

////////////////////////////////////////////////////////////////////////////////
//                               PUBLIC INTERPRETER
////////////////////////////////////////////////////////////////////////////////

// Interpreter is the entry point for evaluating programs.
//
// Public fields:
//   - Global — persistent program environment (REPL/session state).
//
// Behavior summary:
//   - EvalSource runs in a fresh child of Global (ephemeral).
//   - EvalPersistentSource runs in Global (persistent).
//   - Eval runs a value tree in the environment you pass.
type Interpreter struct {
	Global *Env
}

// NewInterpreter constructs an interpreter with an empty Global environment.
// Operators and special forms are built into the evaluator, not bound in any
// frame, so a fresh Global really is empty.
func NewInterpreter() *Interpreter {
	return &Interpreter{Global: NewEnv(nil)}
}

// EvalSource parses and evaluates source in a fresh child of Global.
// Bindings made by the program land in that ephemeral child; Global is
// unchanged afterwards.
//
// Lex and parse failures come back wrapped with a caret-annotated snippet of
// src; runtime failures come back as *RuntimeError.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	v, err := Evaluate(src, NewEnv(ip.Global))
	if err != nil {
		return Nil, WrapErrorWithName(err, "<main>", src)
	}
	return v, nil
}

// EvalPersistentSource parses and evaluates source in Global itself, so
// bindings persist for the session (REPL-style). Error semantics match
// EvalSource.
func (ip *Interpreter) EvalPersistentSource(src string) (Value, error) {
	v, err := Evaluate(src, ip.Global)
	if err != nil {
		return Nil, WrapErrorWithName(err, "<repl>", src)
	}
	return v, nil
}

// Eval evaluates an already-parsed value tree in the provided environment
// exactly as given. Hosts use this to control scoping themselves.
func (ip *Interpreter) Eval(root Value, env *Env) (Value, error) {
	return eval(root, env)
}

////////////////////////////////////////////////////////////////////////////////
//                             PACKAGE-LEVEL ENTRY
////////////////////////////////////////////////////////////////////////////////

// Evaluate parses src and evaluates the resulting tree in env. It is the
// one-shot primitive the Interpreter methods and the CLI build on; passing
// the same environment across calls makes bindings persist between them.
//
// Errors are returned unwrapped: *LexError or *ParseError for source-level
// failures (with positions), *RuntimeError for evaluation failures.
func Evaluate(src string, env *Env) (Value, error) {
	root, err := Parse(src)
	if err != nil {
		return Nil, err
	}
	return eval(root, env)
}
