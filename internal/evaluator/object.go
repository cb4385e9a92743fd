package evaluator

type ObjectType string

const (
	NUMBER_OBJ  = "NUMBER"
	TEXT_OBJ    = "TEXT"
	BOOLEAN_OBJ = "BOOLEAN"
	NULL_OBJ    = "NULL"
	ARRAY_OBJ   = "ARRAY"
	RECORD_OBJ  = "RECORD"

	FUNCTION_OBJ = "FUNCTION"
	PROMISE_OBJ  = "PROMISE"

	ERROR_OBJ        = "ERROR"
	RETURN_VALUE_OBJ = "RETURN_VALUE"
	BREAK_SIGNAL_OBJ = "BREAK_SIGNAL"
)

// Object is the shared behaviour of all runtime values.
type Object interface {
	Type() ObjectType
	Inspect() string
}
