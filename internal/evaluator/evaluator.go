// Package evaluator is the tree-walking runtime: typed values, lexical
// environments, the promise scheduler, and an Eval dispatch that consults the
// chaos policy at every decision point the language contract names.
package evaluator

import (
	"log/slog"

	"github.com/uselesslang/useless/internal/ast"
	"github.com/uselesslang/useless/internal/chaos"
	"github.com/uselesslang/useless/internal/config"
)

var (
	NULL  = &Null{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func nativeBool(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

// Evaluator ties the policy, scheduler and presenter together for one run.
// Not safe for concurrent use; async tasks are serialized by the scheduler.
type Evaluator struct {
	policy     *chaos.Policy
	sched      *Scheduler
	presenter  Presenter
	logger     *slog.Logger
	directives map[string]bool
}

func New(policy *chaos.Policy, presenter Presenter, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		policy:     policy,
		sched:      NewScheduler(policy, logger),
		presenter:  presenter,
		logger:     logger,
		directives: make(map[string]bool),
	}
}

// Scheduler exposes the run's promise scheduler, mainly for tests.
func (e *Evaluator) Scheduler() *Scheduler { return e.sched }

// HasDirective reports whether a #[directive(name)] annotation was seen.
func (e *Evaluator) HasDirective(name string) bool { return e.directives[name] }

// Interpret runs a whole program: one teapot draw up front, the top-level
// statement list, then a drain so no promise is left pending. Uncaught errors
// are surfaced through the presenter and returned for the exit-code decision.
func (e *Evaluator) Interpret(program *ast.Program) *Error {
	if e.policy.TeapotOnStart() {
		err := errTeapot()
		e.presenter.PresentError(err.Inspect())
		return err
	}
	env := NewEnvironment()
	result := e.execBlock(program.Statements, env, nil)
	if err, ok := result.(*Error); ok {
		e.presenter.PresentError(err.Inspect())
		return err
	}
	e.sched.Drain()
	return nil
}

// InterpretLine runs one already-parsed statement list against a persistent
// environment. Used by the REPL, which owns teapot and drain policy itself.
func (e *Evaluator) InterpretLine(stmts []ast.Statement, env *Environment) Object {
	return e.execBlock(stmts, env, nil)
}

// ExitCodeFor maps an interpreter outcome onto the process contract.
func ExitCodeFor(err *Error) int {
	switch {
	case err == nil:
		return config.ExitOK
	case err.IsFatal():
		return config.ExitFatal
	default:
		return config.ExitChaos
	}
}
