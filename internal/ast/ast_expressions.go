package ast

import (
	"github.com/uselesslang/useless/internal/token"
)

// BinaryOp tags the builtin two-operand operations.
type BinaryOp string

const (
	OpAdd      BinaryOp = "add"
	OpMultiply BinaryOp = "multiply"
	OpEquals   BinaryOp = "equals"
	OpLessThan BinaryOp = "lessThan"
	OpIndex    BinaryOp = "index"

	// Not part of the grammar: the operations chaos substitutes for the
	// parseable ones.
	OpSubtract BinaryOp = "subtract"
	OpDivide   BinaryOp = "divide"
)

// NumberLiteral. All numbers are float64 at runtime.
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumberLiteral) expressionNode()       {}
func (nl *NumberLiteral) TokenLiteral() string  { return nl.Token.Lexeme }
func (nl *NumberLiteral) GetToken() token.Token { return nl.Token }

// StringLiteral.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// BooleanLiteral.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

// NullLiteral.
type NullLiteral struct {
	Token token.Token
}

func (nl *NullLiteral) expressionNode()       {}
func (nl *NullLiteral) TokenLiteral() string  { return nl.Token.Lexeme }
func (nl *NullLiteral) GetToken() token.Token { return nl.Token }

// ArrayLiteral. [1, 2, 3]
type ArrayLiteral struct {
	Token    token.Token // the '[' token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()       {}
func (al *ArrayLiteral) TokenLiteral() string  { return al.Token.Lexeme }
func (al *ArrayLiteral) GetToken() token.Token { return al.Token }

// RecordField is one "key": value pair of a record literal.
type RecordField struct {
	Key   string
	Value Expression
}

// RecordLiteral. { "k": v }. Field order is source order.
type RecordLiteral struct {
	Token  token.Token // the '{' token
	Fields []RecordField
}

func (rl *RecordLiteral) expressionNode()       {}
func (rl *RecordLiteral) TokenLiteral() string  { return rl.Token.Lexeme }
func (rl *RecordLiteral) GetToken() token.Token { return rl.Token }

// Identifier.
type Identifier struct {
	Token token.Token
	Value string
}

func (id *Identifier) expressionNode()       {}
func (id *Identifier) TokenLiteral() string  { return id.Token.Lexeme }
func (id *Identifier) GetToken() token.Token { return id.Token }

// BinaryExpression covers the keyword-call operations:
// add(a,b), multiply(a,b), equals(a,b), lessThan(a,b), index(arr,i).
type BinaryExpression struct {
	Token token.Token // the operation keyword token
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (be *BinaryExpression) expressionNode()       {}
func (be *BinaryExpression) TokenLiteral() string  { return be.Token.Lexeme }
func (be *BinaryExpression) GetToken() token.Token { return be.Token }

// AccessExpression. access(record, key)
type AccessExpression struct {
	Token  token.Token // the 'access' token
	Object Expression
	Key    Expression
}

func (ae *AccessExpression) expressionNode()       {}
func (ae *AccessExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AccessExpression) GetToken() token.Token { return ae.Token }

// CallExpression calls a user-defined function by name.
type CallExpression struct {
	Token     token.Token // the identifier token
	Name      string
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// PromiseExpression. promise(value[, timeoutMs])
type PromiseExpression struct {
	Token   token.Token // the 'promise' token
	Value   Expression
	Timeout Expression // nil when omitted
}

func (pe *PromiseExpression) expressionNode()       {}
func (pe *PromiseExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PromiseExpression) GetToken() token.Token { return pe.Token }

// AwaitExpression. await(p) in expression position, `await p;` in statement
// position (the parser wraps the latter in an ExpressionStatement).
type AwaitExpression struct {
	Token   token.Token // the 'await' token
	Promise Expression
}

func (ae *AwaitExpression) expressionNode()       {}
func (ae *AwaitExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AwaitExpression) GetToken() token.Token { return ae.Token }
