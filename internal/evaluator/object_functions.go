package evaluator

import (
	"strings"

	"github.com/uselesslang/useless/internal/ast"
)

// Function is a closure: parameter names, body, and a shared reference to the
// defining environment. Immutable after creation.
type Function struct {
	Name       string
	Parameters []string
	Body       []ast.Statement
	Env        *Environment // lexical capture, shared with the definition site
	IsAsync    bool
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	kind := "function"
	if f.IsAsync {
		kind = "async function"
	}
	return kind + " " + f.Name + "(" + strings.Join(f.Parameters, ", ") + ")"
}
