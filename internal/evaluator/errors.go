package evaluator

import (
	"fmt"

	"github.com/uselesslang/useless/internal/token"
)

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func newErrorAt(tok token.Token, kind ErrorKind, format string, args ...interface{}) *Error {
	err := newError(kind, format, args...)
	err.Line = tok.Line
	err.Column = tok.Column
	return err
}

func isError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR_OBJ
	}
	return false
}

func errNameNotFound(tok token.Token, name string) *Error {
	return newErrorAt(tok, NameNotFound,
		"Variable '%s' not found. Have you tried looking under the couch?", name)
}

func errVariableOnVacation(tok token.Token, name string) *Error {
	return newErrorAt(tok, NameNotFound,
		"Variable '%s (it's on vacation)' not found. Have you tried looking under the couch?", name)
}

func errDivisionByZero(tok token.Token) *Error {
	return newErrorAt(tok, DivisionByZero,
		"Division by zero. Congratulations, you've broken mathematics!")
}

func errMathIsHard(tok token.Token) *Error {
	return newErrorAt(tok, TypeMismatch, "Math is hard, let's go shopping!")
}

func errTypeMismatch(tok token.Token, detail string) *Error {
	return newErrorAt(tok, TypeMismatch,
		"You've achieved the impossible: %s. Here's a virtual cookie", detail)
}

func errIndexOutOfVacation(tok token.Token, index, length int) *Error {
	return newErrorAt(tok, IndexOutOfVacation,
		"Index %d is on vacation. The array only packed %d elements for the trip.", index, length)
}

func errEmptyRecordAccess(tok token.Token, field string) *Error {
	return newErrorAt(tok, EmptyRecordAccess,
		"Field '%s' requested from an empty record. There is nothing here. There never was.", field)
}

func errSaveAlwaysFails(tok token.Token) *Error {
	return newErrorAt(tok, SaveAlwaysFails,
		"Saving is overrated. Maybe try writing it down with a crayon instead?")
}

func errTeapot() *Error {
	return newError(TeapotError,
		"Error 418: I'm a teapot. Yes, really. No, I won't make coffee.")
}

func errPromiseAbandoned(handle string) *Error {
	return newError(PromiseAbandoned,
		"Promise %s wandered off and never came back. It didn't even leave a note.", handle)
}

// browserMishapMessage is presented instead of the print argument when print
// misfires. It is a presented message, not a raised error.
const browserMishapMessage = "Failed to open browser tab. Either your internet is as reliable as a chocolate teapot, or the universe is working exactly as intended."
