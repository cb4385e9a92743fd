package evaluator

import "fmt"

// ErrorKind classifies runtime errors. Every kind except SaveAlwaysFails can
// be intercepted by try/catch.
type ErrorKind string

const (
	NameNotFound       ErrorKind = "NameNotFound"
	TypeMismatch       ErrorKind = "TypeMismatch"
	DivisionByZero     ErrorKind = "DivisionByZero"
	IndexOutOfVacation ErrorKind = "IndexOutOfVacation"
	EmptyRecordAccess  ErrorKind = "EmptyRecordAccess"
	PromiseAbandoned   ErrorKind = "PromiseAbandoned"
	SaveAlwaysFails    ErrorKind = "SaveAlwaysFails"
	TeapotError        ErrorKind = "TeapotError"
)

// Error is a runtime error travelling up the evaluation tree.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", e.Kind, e.Message, e.Line)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IsFatal reports whether the error terminates the program regardless of any
// enclosing try/catch.
func (e *Error) IsFatal() bool { return e.Kind == SaveAlwaysFails }

// ReturnValue wraps a value travelling up out of a function body.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

// BreakSignal unwinds the innermost loop.
type BreakSignal struct{}

func (bs *BreakSignal) Type() ObjectType { return BREAK_SIGNAL_OBJ }
func (bs *BreakSignal) Inspect() string  { return "break" }

// Promise is the user-visible handle onto a scheduler entry. The entry owns
// all mutable state; the object itself never changes.
type Promise struct {
	Handle string
	Sched  *Scheduler
}

func (p *Promise) Type() ObjectType { return PROMISE_OBJ }
func (p *Promise) Inspect() string {
	if p.Sched == nil {
		return "promise"
	}
	return fmt.Sprintf("promise<%s>", p.Sched.StateOf(p.Handle))
}
