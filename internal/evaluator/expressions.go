package evaluator

import (
	"fmt"
	"math"
	"strings"

	"github.com/uselesslang/useless/internal/ast"
	"github.com/uselesslang/useless/internal/chaos"
	"github.com/uselesslang/useless/internal/config"
	"github.com/uselesslang/useless/internal/token"
)

// evalExpression evaluates one expression node and then applies the uniform
// result chaos: a scramble draw first, and a disguise draw whenever the value
// is Boolean after that. Errors pass through untouched. Every expression in
// the tree goes through here, so nested operands get their own draws.
func (e *Evaluator) evalExpression(expr ast.Expression, env *Environment, t *Task) Object {
	result := e.evalRawExpression(expr, env, t)
	if isError(result) {
		return result
	}
	return e.chaosify(result)
}

func (e *Evaluator) chaosify(v Object) Object {
	if e.policy.ScrambleResult() {
		v = nativeBool(e.policy.RandomBool())
	}
	b, ok := v.(*Boolean)
	if !ok {
		return v
	}
	switch e.policy.DisguiseBoolean() {
	case chaos.BooleanFlipped:
		return nativeBool(!b.Value)
	case chaos.BooleanAsText:
		// The disguise lies too: the text names the opposite value.
		return &Text{Value: fmt.Sprintf("%t", !b.Value)}
	case chaos.BooleanAsNumber:
		if b.Value {
			return &Number{Value: 0}
		}
		return &Number{Value: 1}
	default:
		return b
	}
}

func (e *Evaluator) evalRawExpression(expr ast.Expression, env *Environment, t *Task) Object {
	switch expr := expr.(type) {

	case *ast.NumberLiteral:
		if e.policy.NumberConfetti() {
			// Clamp before converting: a literal past the int range would
			// otherwise overflow, and the allocation has to stay bounded.
			repeat := math.Abs(expr.Value)
			if repeat > config.NumberConfettiMaxRepeat {
				repeat = config.NumberConfettiMaxRepeat
			}
			return &Text{Value: strings.Repeat("🎉🎊🎈", int(repeat))}
		}
		return &Number{Value: expr.Value}

	case *ast.StringLiteral:
		return &Text{Value: expr.Value}

	case *ast.BooleanLiteral:
		return nativeBool(expr.Value)

	case *ast.NullLiteral:
		return NULL

	case *ast.ArrayLiteral:
		elements := make([]Object, 0, len(expr.Elements))
		for _, el := range expr.Elements {
			v := e.evalExpression(el, env, t)
			if isError(v) {
				return v
			}
			elements = append(elements, v)
		}
		return &Array{Elements: elements}

	case *ast.RecordLiteral:
		record := NewRecord()
		for _, f := range expr.Fields {
			v := e.evalExpression(f.Value, env, t)
			if isError(v) {
				return v
			}
			record.Set(f.Key, v)
		}
		return record

	case *ast.Identifier:
		// The vacation draw happens before the lookup, so even a perfectly
		// bound name can be out of office.
		if e.policy.VariableOnVacation() {
			return errVariableOnVacation(expr.Token, expr.Value)
		}
		val, ok := env.Get(expr.Value)
		if !ok {
			return errNameNotFound(expr.Token, expr.Value)
		}
		return val

	case *ast.BinaryExpression:
		return e.evalBinary(expr, env, t)

	case *ast.AccessExpression:
		return e.evalAccess(expr, env, t)

	case *ast.CallExpression:
		return e.evalCall(expr, env, t)

	case *ast.PromiseExpression:
		return e.evalPromise(expr, env, t)

	case *ast.AwaitExpression:
		return e.evalAwait(expr, env, t)

	default:
		return newErrorAt(expr.GetToken(), TypeMismatch, "unknown expression kind %T", expr)
	}
}

func (e *Evaluator) evalBinary(expr *ast.BinaryExpression, env *Environment, t *Task) Object {
	left := e.evalExpression(expr.Left, env, t)
	if isError(left) {
		return left
	}
	right := e.evalExpression(expr.Right, env, t)
	if isError(right) {
		return right
	}

	switch expr.Op {
	case ast.OpAdd, ast.OpMultiply:
		return e.evalArithmetic(expr.Token, expr.Op, left, right)
	case ast.OpEquals:
		return e.evalEquals(expr.Token, left, right)
	case ast.OpLessThan:
		return e.evalLessThan(expr.Token, left, right)
	case ast.OpIndex:
		return e.evalIndex(expr.Token, left, right)
	default:
		return newErrorAt(expr.Token, TypeMismatch, "unknown operation %s", expr.Op)
	}
}

// evalArithmetic asks the policy which operation actually happens before
// computing anything. Division by zero from a substituted divide is a real
// error, never an Inf.
func (e *Evaluator) evalArithmetic(tok token.Token, op ast.BinaryOp, left, right Object) Object {
	a, ok := left.(*Number)
	if !ok {
		return errMathIsHard(tok)
	}
	b, ok := right.(*Number)
	if !ok {
		return errMathIsHard(tok)
	}

	switch e.policy.AlternateOp(op) {
	case ast.OpAdd:
		return &Number{Value: a.Value + b.Value}
	case ast.OpSubtract:
		return &Number{Value: a.Value - b.Value}
	case ast.OpMultiply:
		return &Number{Value: a.Value * b.Value}
	case ast.OpDivide:
		if b.Value == 0 {
			return errDivisionByZero(tok)
		}
		return &Number{Value: a.Value / b.Value}
	default:
		return errMathIsHard(tok)
	}
}

// evalEquals compares same-shape primitives. A shape mismatch is a
// TypeMismatch unless the policy rescues it into a random Boolean.
func (e *Evaluator) evalEquals(tok token.Token, left, right Object) Object {
	switch l := left.(type) {
	case *Number:
		if r, ok := right.(*Number); ok {
			return nativeBool(l.Value == r.Value)
		}
	case *Text:
		if r, ok := right.(*Text); ok {
			return nativeBool(l.Value == r.Value)
		}
	case *Boolean:
		if r, ok := right.(*Boolean); ok {
			return nativeBool(l.Value == r.Value)
		}
	case *Null:
		if _, ok := right.(*Null); ok {
			return TRUE
		}
	}
	return e.rescueMismatch(tok, left, right, "equals")
}

func (e *Evaluator) evalLessThan(tok token.Token, left, right Object) Object {
	switch l := left.(type) {
	case *Number:
		if r, ok := right.(*Number); ok {
			return nativeBool(l.Value < r.Value)
		}
	case *Text:
		if r, ok := right.(*Text); ok {
			return nativeBool(l.Value < r.Value)
		}
	}
	return e.rescueMismatch(tok, left, right, "lessThan")
}

func (e *Evaluator) rescueMismatch(tok token.Token, left, right Object, op string) Object {
	if e.policy.RescueTypeMismatch() {
		return nativeBool(e.policy.RandomBool())
	}
	return errTypeMismatch(tok, fmt.Sprintf("comparing %s to %s with %s",
		left.Type(), right.Type(), op))
}

// evalIndex bounds-checks the requested index first; out of range is always
// an error, no chaos override. In range, the policy decides which element is
// actually read.
func (e *Evaluator) evalIndex(tok token.Token, left, right Object) Object {
	arr, ok := left.(*Array)
	if !ok {
		return errTypeMismatch(tok, fmt.Sprintf("indexing into %s", left.Type()))
	}
	idx, ok := right.(*Number)
	if !ok {
		return errTypeMismatch(tok, fmt.Sprintf("indexing with %s", right.Type()))
	}
	requested := int(idx.Value)
	if requested < 0 || requested >= len(arr.Elements) {
		return errIndexOutOfVacation(tok, requested, len(arr.Elements))
	}
	return arr.Elements[e.policy.PickIndex(requested, len(arr.Elements))]
}

// evalAccess reads a record field. An empty record is always an error; a
// non-empty one may hand back any of its fields.
func (e *Evaluator) evalAccess(expr *ast.AccessExpression, env *Environment, t *Task) Object {
	obj := e.evalExpression(expr.Object, env, t)
	if isError(obj) {
		return obj
	}
	key := e.evalExpression(expr.Key, env, t)
	if isError(key) {
		return key
	}
	record, ok := obj.(*Record)
	if !ok {
		return errTypeMismatch(expr.Token, fmt.Sprintf("accessing a field of %s", obj.Type()))
	}
	name, ok := key.(*Text)
	if !ok {
		return errTypeMismatch(expr.Token, fmt.Sprintf("field name of type %s", key.Type()))
	}
	if len(record.Fields) == 0 {
		return errEmptyRecordAccess(expr.Token, name.Value)
	}
	actual := e.policy.PickField(name.Value, record.Keys())
	val, ok := record.Get(actual)
	if !ok {
		return errNameNotFound(expr.Token, actual)
	}
	return val
}

func (e *Evaluator) evalCall(expr *ast.CallExpression, env *Environment, t *Task) Object {
	// exit never exits. The documented contract is that execution continues.
	if expr.Name == config.ExitFuncName {
		return NULL
	}

	callee, ok := env.Get(expr.Name)
	if !ok {
		return errNameNotFound(expr.Token, expr.Name)
	}
	fn, ok := callee.(*Function)
	if !ok {
		return errTypeMismatch(expr.Token, fmt.Sprintf("calling a %s", callee.Type()))
	}
	if len(expr.Arguments) != len(fn.Parameters) {
		return errTypeMismatch(expr.Token, fmt.Sprintf(
			"%s wants %d arguments, got %d", fn.Name, len(fn.Parameters), len(expr.Arguments)))
	}

	args := make([]Object, 0, len(expr.Arguments))
	for _, a := range expr.Arguments {
		v := e.evalExpression(a, env, t)
		if isError(v) {
			return v
		}
		args = append(args, v)
	}

	fnEnv := NewEnclosedEnvironment(fn.Env)
	for i, p := range fn.Parameters {
		fnEnv.Set(p, args[i])
	}

	if fn.IsAsync {
		// The body runs on its own task up to its first await; the caller
		// gets the completion promise.
		return e.sched.SpawnTask(func(task *Task) Object {
			return unwrapReturn(e.execBlock(fn.Body, fnEnv, task))
		})
	}
	return unwrapReturn(e.execBlock(fn.Body, fnEnv, t))
}

func unwrapReturn(result Object) Object {
	if rv, ok := result.(*ReturnValue); ok {
		return rv.Value
	}
	if isError(result) {
		return result
	}
	return NULL
}

func (e *Evaluator) evalPromise(expr *ast.PromiseExpression, env *Environment, t *Task) Object {
	value := e.evalExpression(expr.Value, env, t)
	if isError(value) {
		return value
	}
	timeoutMs := float64(config.DefaultPromiseTimeoutMillis)
	if expr.Timeout != nil {
		tv := e.evalExpression(expr.Timeout, env, t)
		if isError(tv) {
			return tv
		}
		n, ok := tv.(*Number)
		if !ok {
			return errTypeMismatch(expr.Token, fmt.Sprintf("promise timeout of type %s", tv.Type()))
		}
		timeoutMs = n.Value
	}
	return e.sched.NewChaosPromise(value, timeoutMs)
}

func (e *Evaluator) evalAwait(expr *ast.AwaitExpression, env *Environment, t *Task) Object {
	v := e.evalExpression(expr.Promise, env, t)
	if isError(v) {
		return v
	}
	p, ok := v.(*Promise)
	if !ok {
		return errTypeMismatch(expr.Token, fmt.Sprintf("awaiting a %s", v.Type()))
	}
	return e.sched.Await(p.Handle, t)
}
