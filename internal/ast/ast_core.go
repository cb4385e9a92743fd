package ast

import (
	"github.com/uselesslang/useless/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Program is the root node of every AST the parser produces.
type Program struct {
	File       string // source file path, "" for REPL input
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// LetStatement binds a name to the value of an expression.
// let x = add(5, 3);
type LetStatement struct {
	Token token.Token // the 'let' token
	Name  string
	Value Expression
}

func (ls *LetStatement) statementNode()        {}
func (ls *LetStatement) TokenLiteral() string  { return ls.Token.Lexeme }
func (ls *LetStatement) GetToken() token.Token { return ls.Token }

// PrintStatement hands a value to the presenter.
// print(e);
type PrintStatement struct {
	Token token.Token // the 'print' token
	Value Expression
}

func (ps *PrintStatement) statementNode()        {}
func (ps *PrintStatement) TokenLiteral() string  { return ps.Token.Lexeme }
func (ps *PrintStatement) GetToken() token.Token { return ps.Token }

// IfStatement with an optional else branch.
type IfStatement struct {
	Token      token.Token // the 'if' token
	Condition  Expression
	ThenBranch []Statement
	ElseBranch []Statement // nil when absent
}

func (is *IfStatement) statementNode()        {}
func (is *IfStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token { return is.Token }

// LoopStatement. No condition in the grammar.
type LoopStatement struct {
	Token token.Token // the 'loop' token
	Body  []Statement
}

func (ls *LoopStatement) statementNode()        {}
func (ls *LoopStatement) TokenLiteral() string  { return ls.Token.Lexeme }
func (ls *LoopStatement) GetToken() token.Token { return ls.Token }

// SaveStatement. save "file.txt";
type SaveStatement struct {
	Token    token.Token // the 'save' token
	Filename string
}

func (ss *SaveStatement) statementNode()        {}
func (ss *SaveStatement) TokenLiteral() string  { return ss.Token.Lexeme }
func (ss *SaveStatement) GetToken() token.Token { return ss.Token }

// FunctionStatement declares a named function. Async bodies are registered
// with the scheduler instead of being executed inline on call.
type FunctionStatement struct {
	Token      token.Token // the name token, or the 'async' token
	Name       string
	Parameters []string
	Body       []Statement
	IsAsync    bool
}

func (fs *FunctionStatement) statementNode()        {}
func (fs *FunctionStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *FunctionStatement) GetToken() token.Token { return fs.Token }

// TryCatchStatement. try {..} catch err {..}
type TryCatchStatement struct {
	Token      token.Token // the 'try' token
	TryBlock   []Statement
	ErrorVar   string
	CatchBlock []Statement
}

func (ts *TryCatchStatement) statementNode()        {}
func (ts *TryCatchStatement) TokenLiteral() string  { return ts.Token.Lexeme }
func (ts *TryCatchStatement) GetToken() token.Token { return ts.Token }

// ReturnStatement. return e; (value optional)
type ReturnStatement struct {
	Token token.Token // the 'return' token
	Value Expression  // nil for bare return
}

func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// BreakStatement. break;
type BreakStatement struct {
	Token token.Token // the 'break' token
}

func (bs *BreakStatement) statementNode()        {}
func (bs *BreakStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BreakStatement) GetToken() token.Token { return bs.Token }

// ExpressionStatement wraps an expression in statement position.
type ExpressionStatement struct {
	Token      token.Token // first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// AttributedStatement wraps a statement annotated with #[directive(name)].
type AttributedStatement struct {
	Token     token.Token // the attribute token
	Name      string      // directive name, e.g. "disable_useless"
	Statement Statement
}

func (as *AttributedStatement) statementNode()        {}
func (as *AttributedStatement) TokenLiteral() string  { return as.Token.Lexeme }
func (as *AttributedStatement) GetToken() token.Token { return as.Token }
