// interpreter_exec.go — PRIVATE: the tree-walking evaluation engine.
//   - Dispatches on node shape (number, symbol, list) and, for lists headed
//     by a symbol, on that symbol (operator fold, not, let, fn, cond, call).
//   - Bubbles *RuntimeError without formatting; the public facade in
//     interpreter.go decides how errors reach the caller.
//   - No exported identifiers here.
//
// ──────────────────────────────────────────────────────────────────────────────
// EVALUATION RULES
// ================
//
//  1. Numbers evaluate to themselves; symbols to their nearest binding.
//  2. A list headed by a non-symbol (or an empty list) evaluates every
//     element in order and returns the results as a list with nil results
//     dropped. A multi-statement program runs through this rule: the lets
//     vanish, the values remain.
//  3. Operators (+ - * / gt gte lt lte eq) take two or more operands, all
//     evaluated up front, all required to be numbers. They fold left with
//     the SAME operator at every step, and comparisons feed their 1/0
//     result back into the fold: (gt 5 3 1) is ((5>3) gt 1) = 0.
//  4. let binds in the CURRENT frame and yields nil. fn builds a lambda and
//     binds nothing. cond scans (test result) clauses, skipping clauses
//     that are not lists and tests that are not numbers, and falls through
//     to its last element as the default.
//  5. Calling a lambda extends the CALLER's environment with the parameter
//     bindings. Excess arguments are ignored unevaluated; missing ones are
//     an arity error.
//  6. Anything else (nil, lambda values appearing as nodes) evaluates to
//     nil.
package lisp

import "fmt"

// eval walks one node. All evaluation funnels through here.
func eval(node Value, env *Env) (Value, error) {
	switch node.Tag {
	case VTNumber:
		return node, nil
	case VTSymbol:
		return env.Get(node.Data.(string))
	case VTList:
		return evalList(node.Data.([]Value), env)
	default:
		return Nil, nil
	}
}

// evalList dispatches a parenthesized form on its head.
func evalList(form []Value, env *Env) (Value, error) {
	if len(form) == 0 || form[0].Tag != VTSymbol {
		return evalElements(form, env)
	}
	s := form[0].Data.(string)
	switch s {
	case "+", "-", "*", "/", "gt", "gte", "lt", "lte", "eq":
		return evalOperator(s, form, env)
	case "not":
		return evalNot(form, env)
	case "let":
		return evalLet(form, env)
	case "fn":
		return evalFn(form)
	case "cond":
		return evalCond(form, env)
	default:
		return evalCall(s, form, env)
	}
}

// evalElements evaluates every element of a bare list, dropping nil
// results from the returned list.
func evalElements(elems []Value, env *Env) (Value, error) {
	out := []Value{}
	for _, el := range elems {
		res, err := eval(el, env)
		if err != nil {
			return Nil, err
		}
		if res.Tag == VTNil {
			continue
		}
		out = append(out, res)
	}
	return List(out), nil
}

func boolToNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// evalOperator folds form's operands left to right under a single operator.
// Operands are all evaluated before any type checking, so an evaluation
// error in a later operand wins over a type error in an earlier one.
func evalOperator(op string, form []Value, env *Env) (Value, error) {
	if len(form) < 3 {
		return Nil, &RuntimeError{Msg: "Insufficient number of arguments"}
	}
	operands := make([]Value, 0, len(form)-1)
	for _, node := range form[1:] {
		res, err := eval(node, env)
		if err != nil {
			return Nil, err
		}
		operands = append(operands, res)
	}
	if operands[0].Tag != VTNumber {
		return Nil, &RuntimeError{Msg: "Operands must be numbers"}
	}
	acc := operands[0].Data.(float64)
	for _, v := range operands[1:] {
		if v.Tag != VTNumber {
			return Nil, &RuntimeError{Msg: "Operands must be numbers"}
		}
		n := v.Data.(float64)
		switch op {
		case "+":
			acc += n
		case "-":
			acc -= n
		case "*":
			acc *= n
		case "/":
			// IEEE float division; dividing by zero yields ±Inf, not an error.
			acc /= n
		case "gt":
			acc = boolToNum(acc > n)
		case "gte":
			acc = boolToNum(acc >= n)
		case "lt":
			acc = boolToNum(acc < n)
		case "lte":
			acc = boolToNum(acc <= n)
		case "eq":
			acc = boolToNum(acc == n)
		default:
			// evalList only routes the symbols above here; keep a guard.
			return Nil, &RuntimeError{Msg: fmt.Sprintf("Invalid operator %s", op)}
		}
	}
	return Num(acc), nil
}

// evalNot maps number 0 to 1 and every other number to 0.
func evalNot(form []Value, env *Env) (Value, error) {
	if len(form) != 2 {
		return Nil, &RuntimeError{Msg: "Incorrect number of arguments"}
	}
	res, err := eval(form[1], env)
	if err != nil {
		return Nil, err
	}
	if res.Tag != VTNumber {
		return Nil, &RuntimeError{Msg: "Invalid argument"}
	}
	if res.Data.(float64) == 0 {
		return Num(1), nil
	}
	return Num(0), nil
}

// evalLet binds (let name value) in the current frame and yields nil. The
// name is taken literally, never evaluated.
func evalLet(form []Value, env *Env) (Value, error) {
	if len(form) != 3 {
		return Nil, &RuntimeError{Msg: "Invalid number of arguments for let"}
	}
	if form[1].Tag != VTSymbol {
		return Nil, &RuntimeError{Msg: "Invalid let"}
	}
	val, err := eval(form[2], env)
	if err != nil {
		return Nil, err
	}
	env.Define(form[1].Data.(string), val)
	return Nil, nil
}

// evalFn builds a lambda from (fn params body). Pure construction: no
// environment is consulted and nothing is bound, so naming a function is a
// separate let.
func evalFn(form []Value) (Value, error) {
	if len(form) != 3 || form[1].Tag != VTList || form[2].Tag != VTList {
		return Nil, &RuntimeError{Msg: "Invalid function"}
	}
	paramList := form[1].Data.([]Value)
	params := make([]string, 0, len(paramList))
	for _, p := range paramList {
		if p.Tag != VTSymbol {
			return Nil, &RuntimeError{Msg: "Invalid function argument"}
		}
		params = append(params, p.Data.(string))
	}
	return LambdaVal(&Lambda{Params: params, Body: form[2].Data.([]Value)}), nil
}

// evalCond scans the clauses between the head and the trailing default.
// Clauses that are not lists, and tests that do not reduce to a number, are
// skipped rather than rejected. The first nonzero test wins; otherwise the
// final element evaluates directly as the fallback.
func evalCond(form []Value, env *Env) (Value, error) {
	if len(form) < 2 {
		return Nil, &RuntimeError{Msg: "Invalid cond"}
	}
	for _, clause := range form[1 : len(form)-1] {
		if clause.Tag != VTList {
			continue
		}
		pair := clause.Data.([]Value)
		if len(pair) == 0 {
			return Nil, &RuntimeError{Msg: "Invalid cond"}
		}
		test, err := eval(pair[0], env)
		if err != nil {
			return Nil, err
		}
		if test.Tag != VTNumber {
			continue
		}
		if test.Data.(float64) != 0 {
			if len(pair) < 2 {
				return Nil, &RuntimeError{Msg: "Invalid cond"}
			}
			return eval(pair[1], env)
		}
	}
	return eval(form[len(form)-1], env)
}

// evalCall applies the lambda bound to name. The callee's frame chains to
// the environment live HERE at the call site; the lambda brings no
// environment of its own. Arguments bind by position, one per declared
// parameter; extra call-site arguments are left unevaluated.
func evalCall(name string, form []Value, env *Env) (Value, error) {
	callee, err := env.Get(name)
	if err != nil {
		return Nil, err
	}
	if callee.Tag != VTLambda {
		return Nil, &RuntimeError{Msg: fmt.Sprintf("Not a lambda: %s", name)}
	}
	lam := callee.Data.(*Lambda)
	if len(form)-1 < len(lam.Params) {
		return Nil, &RuntimeError{Msg: "Insufficient number of arguments"}
	}
	frame := NewEnv(env)
	for i, param := range lam.Params {
		val, err := eval(form[i+1], env)
		if err != nil {
			return Nil, err
		}
		frame.Define(param, val)
	}
	// The body was stored unevaluated; running it as a list re-walks it
	// with the parameters in scope.
	return eval(List(lam.Body), frame)
}
