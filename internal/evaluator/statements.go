package evaluator

import (
	"github.com/uselesslang/useless/internal/ast"
	"github.com/uselesslang/useless/internal/config"
)

// execBlock runs a statement list, stopping on the first error, return, or
// break. t is the running async task, nil at the top level.
func (e *Evaluator) execBlock(stmts []ast.Statement, env *Environment, t *Task) Object {
	var result Object = NULL
	for _, stmt := range stmts {
		result = e.execStatement(stmt, env, t)
		switch result.(type) {
		case *Error, *ReturnValue, *BreakSignal:
			return result
		}
	}
	return result
}

func (e *Evaluator) execStatement(stmt ast.Statement, env *Environment, t *Task) Object {
	switch stmt := stmt.(type) {

	case *ast.LetStatement:
		val := e.evalExpression(stmt.Value, env, t)
		if isError(val) {
			return val
		}
		// The initializer ran; whether the binding survives is a separate
		// question entirely.
		if e.policy.LoseBinding() {
			return errNameNotFound(stmt.Token, stmt.Name)
		}
		env.Set(stmt.Name, val)
		return NULL

	case *ast.PrintStatement:
		val := e.evalExpression(stmt.Value, env, t)
		if isError(val) {
			return val
		}
		if e.policy.BrowserMishap() {
			e.presenter.PresentError(browserMishapMessage)
			return NULL
		}
		e.presenter.Present(val)
		return NULL

	case *ast.IfStatement:
		cond := e.evalExpression(stmt.Condition, env, t)
		if isError(cond) {
			return cond
		}
		// The condition's value never decides anything. The else branch runs
		// whenever it exists; otherwise nothing runs.
		e.logger.Debug("if condition ignored", "truthy", CoerceBoolean(cond).Value)
		if stmt.ElseBranch != nil {
			return e.execBlock(stmt.ElseBranch, NewEnclosedEnvironment(env), t)
		}
		return NULL

	case *ast.LoopStatement:
		// Exactly one pass. break still works as an early exit.
		result := e.execBlock(stmt.Body, NewEnclosedEnvironment(env), t)
		if _, ok := result.(*BreakSignal); ok {
			return NULL
		}
		if _, ok := result.(*ReturnValue); ok {
			return result
		}
		if isError(result) {
			return result
		}
		return NULL

	case *ast.SaveStatement:
		return errSaveAlwaysFails(stmt.Token)

	case *ast.FunctionStatement:
		fn := &Function{
			Name:       stmt.Name,
			Parameters: stmt.Parameters,
			Body:       stmt.Body,
			Env:        env,
			IsAsync:    stmt.IsAsync,
		}
		env.Set(stmt.Name, fn)
		return NULL

	case *ast.TryCatchStatement:
		result := e.execBlock(stmt.TryBlock, NewEnclosedEnvironment(env), t)
		err, ok := result.(*Error)
		if !ok {
			return result
		}
		if err.IsFatal() {
			return err
		}
		catchEnv := NewEnclosedEnvironment(env)
		catchEnv.Set(stmt.ErrorVar, &Text{Value: err.Message})
		return e.execBlock(stmt.CatchBlock, catchEnv, t)

	case *ast.ReturnStatement:
		if stmt.Value == nil {
			return &ReturnValue{Value: NULL}
		}
		val := e.evalExpression(stmt.Value, env, t)
		if isError(val) {
			return val
		}
		return &ReturnValue{Value: val}

	case *ast.BreakStatement:
		return &BreakSignal{}

	case *ast.ExpressionStatement:
		return e.evalExpression(stmt.Expression, env, t)

	case *ast.AttributedStatement:
		return e.execAttributed(stmt, env, t)

	default:
		return newErrorAt(stmt.GetToken(), TypeMismatch, "unknown statement kind %T", stmt)
	}
}

// execAttributed applies a #[directive(name)] annotation. disable_useless is
// statement-scoped; disable_all_useless_shit is permanent for the rest of the
// run. Unknown directives are recorded and otherwise inert.
func (e *Evaluator) execAttributed(stmt *ast.AttributedStatement, env *Environment, t *Task) Object {
	e.directives[stmt.Name] = true
	switch stmt.Name {
	case config.DirectiveDisableUseless:
		e.policy.Suspend()
		result := e.execStatement(stmt.Statement, env, t)
		e.policy.Resume()
		return result
	case config.DirectiveDisableAll:
		e.policy.DisableAll()
		return e.execStatement(stmt.Statement, env, t)
	default:
		e.logger.Debug("unknown directive", "name", stmt.Name)
		return e.execStatement(stmt.Statement, env, t)
	}
}
