package parser

import (
	"fmt"
	"strconv"

	"github.com/uselesslang/useless/internal/ast"
	"github.com/uselesslang/useless/internal/lexer"
	"github.com/uselesslang/useless/internal/token"
)

// ParseError reports the first token the parser could not make sense of.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return "parse error: " + e.Message
}

const maxRecursionDepth = 512

type Parser struct {
	tokens []token.Token
	pos    int
	depth  int
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseSource is a convenience wrapper: lex and parse in one step.
func ParseSource(source string) (*ast.Program, error) {
	return New(lexer.New(source).Tokens()).Parse()
}

// Parse consumes the whole token stream into a Program.
func (p *Parser) Parse() (*ast.Program, error) {
	program := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}
	return program, nil
}

func (p *Parser) curToken() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return token.Token{Type: token.EOF}
}

func (p *Parser) peekToken() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return token.Token{Type: token.EOF}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken().Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken().Type == t }

func (p *Parser) nextToken() token.Token {
	tok := p.curToken()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token when it matches, errors otherwise.
func (p *Parser) expect(t token.TokenType) (token.Token, error) {
	if !p.curTokenIs(t) {
		return token.Token{}, p.errorf("expected %s, got %q", t, p.curToken().Lexeme)
	}
	return p.nextToken(), nil
}

func (p *Parser) errorf(format string, a ...interface{}) *ParseError {
	tok := p.curToken()
	return &ParseError{
		Message: fmt.Sprintf(format, a...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

func (p *Parser) parseNumber(tok token.Token) (float64, error) {
	n, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return 0, &ParseError{Message: "invalid number literal " + tok.Lexeme, Line: tok.Line, Column: tok.Column}
	}
	return n, nil
}
