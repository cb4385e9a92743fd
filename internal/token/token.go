package token

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string // raw source text
	Literal string // decoded value (string contents without quotes, etc.)
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	IDENT  = "IDENT"
	NUMBER = "NUMBER"
	STRING = "STRING"

	// #[directive(name)]
	ATTRIBUTE = "ATTRIBUTE"

	ASSIGN    = "="
	SEMICOLON = ";"
	COLON     = ":"
	COMMA     = ","
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"
	LBRACKET  = "["
	RBRACKET  = "]"

	// Keywords
	PRINT   = "PRINT"
	LET     = "LET"
	IF      = "IF"
	ELSE    = "ELSE"
	LOOP    = "LOOP"
	SAVE    = "SAVE"
	EXIT    = "EXIT"
	ASYNC   = "ASYNC"
	TRY     = "TRY"
	CATCH   = "CATCH"
	AWAIT   = "AWAIT"
	PROMISE = "PROMISE"
	RETURN  = "RETURN"
	BREAK   = "BREAK"
	NULL    = "NULL"
	TRUE    = "TRUE"
	FALSE   = "FALSE"

	// Built-in operations with call syntax (add(a, b), index(arr, i), ...).
	// They lex as dedicated tokens, matching the original surface where the
	// operation name is part of the grammar rather than a resolvable binding.
	ADD      = "ADD"
	MULTIPLY = "MULTIPLY"
	EQUALS   = "EQUALS"
	LESSTHAN = "LESSTHAN"
	INDEX    = "INDEX"
	ACCESS   = "ACCESS"
)

var keywords = map[string]TokenType{
	"print":    PRINT,
	"let":      LET,
	"if":       IF,
	"else":     ELSE,
	"loop":     LOOP,
	"save":     SAVE,
	"exit":     EXIT,
	"async":    ASYNC,
	"try":      TRY,
	"catch":    CATCH,
	"await":    AWAIT,
	"promise":  PROMISE,
	"return":   RETURN,
	"break":    BREAK,
	"null":     NULL,
	"true":     TRUE,
	"false":    FALSE,
	"add":      ADD,
	"multiply": MULTIPLY,
	"equals":   EQUALS,
	"lessThan": LESSTHAN,
	"index":    INDEX,
	"access":   ACCESS,
}

// LookupIdent returns the keyword token type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
