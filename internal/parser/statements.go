package parser

import (
	"github.com/uselesslang/useless/internal/ast"
	"github.com/uselesslang/useless/internal/token"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxRecursionDepth {
		return nil, p.errorf("statement nesting too deep")
	}

	if p.curTokenIs(token.ATTRIBUTE) {
		tok := p.nextToken()
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		return &ast.AttributedStatement{Token: tok, Name: tok.Literal, Statement: stmt}, nil
	}

	switch p.curToken().Type {
	case token.LET:
		return p.parseLetStatement()
	case token.PRINT:
		return p.parsePrintStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.LOOP:
		return p.parseLoopStatement()
	case token.SAVE:
		return p.parseSaveStatement()
	case token.EXIT:
		return p.parseExitStatement()
	case token.ASYNC:
		return p.parseAsyncFunction()
	case token.TRY:
		return p.parseTryCatch()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		tok := p.nextToken()
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.BreakStatement{Token: tok}, nil
	case token.AWAIT:
		// `await e;` statement form.
		tok := p.nextToken()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{
			Token:      tok,
			Expression: &ast.AwaitExpression{Token: tok, Promise: expr},
		}, nil
	case token.IDENT:
		return p.parseIdentifierStatement()
	default:
		tok := p.curToken()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Token: tok, Expression: expr}, nil
	}
}

func (p *Parser) parseLetStatement() (ast.Statement, error) {
	tok := p.nextToken() // 'let'
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.LetStatement{Token: tok, Name: name.Literal, Value: value}, nil
}

func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	tok := p.nextToken() // 'print'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.PrintStatement{Token: tok, Value: value}, nil
}

func (p *Parser) parseIfStatement() (ast.Statement, error) {
	tok := p.nextToken() // 'if'
	var condition ast.Expression
	var err error
	// Parenthesized and bare conditions are both accepted.
	if p.curTokenIs(token.LPAREN) {
		p.nextToken()
		condition, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
	} else {
		condition, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	thenBranch, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBranch []ast.Statement
	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		elseBranch, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStatement{Token: tok, Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}, nil
}

func (p *Parser) parseLoopStatement() (ast.Statement, error) {
	tok := p.nextToken() // 'loop'
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.LoopStatement{Token: tok, Body: body}, nil
}

func (p *Parser) parseSaveStatement() (ast.Statement, error) {
	tok := p.nextToken() // 'save'
	// Both `save "f";` and `save("f");` are accepted.
	parenthesized := false
	if p.curTokenIs(token.LPAREN) {
		parenthesized = true
		p.nextToken()
	}
	filename, err := p.expect(token.STRING)
	if err != nil {
		return nil, err
	}
	if parenthesized {
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.SaveStatement{Token: tok, Filename: filename.Literal}, nil
}

func (p *Parser) parseExitStatement() (ast.Statement, error) {
	tok := p.nextToken() // 'exit'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{
		Token:      tok,
		Expression: &ast.CallExpression{Token: tok, Name: "exit"},
	}, nil
}

func (p *Parser) parseAsyncFunction() (ast.Statement, error) {
	tok := p.nextToken() // 'async'
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionStatement{Token: tok, Name: name.Literal, Parameters: params, Body: body, IsAsync: true}, nil
}

func (p *Parser) parseTryCatch() (ast.Statement, error) {
	tok := p.nextToken() // 'try'
	tryBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.CATCH); err != nil {
		return nil, err
	}
	errVar, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	catchBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.TryCatchStatement{Token: tok, TryBlock: tryBlock, ErrorVar: errVar.Literal, CatchBlock: catchBlock}, nil
}

func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	tok := p.nextToken() // 'return'
	if p.curTokenIs(token.SEMICOLON) {
		p.nextToken()
		return &ast.ReturnStatement{Token: tok}, nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Token: tok, Value: value}, nil
}

// parseIdentifierStatement disambiguates `name(args);` (call statement),
// `name(params) { .. }` (function declaration) and `name;` (expression).
func (p *Parser) parseIdentifierStatement() (ast.Statement, error) {
	tok := p.nextToken() // identifier

	if !p.curTokenIs(token.LPAREN) {
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{
			Token:      tok,
			Expression: &ast.Identifier{Token: tok, Value: tok.Literal},
		}, nil
	}

	args, err := p.parseArgumentList()
	if err != nil {
		return nil, err
	}

	if p.curTokenIs(token.LBRACE) {
		// Function declaration: the "arguments" must all be plain identifiers.
		params := make([]string, 0, len(args))
		for _, arg := range args {
			ident, ok := arg.(*ast.Identifier)
			if !ok {
				return nil, &ParseError{
					Message: "function parameters must be identifiers",
					Line:    tok.Line,
					Column:  tok.Column,
				}
			}
			params = append(params, ident.Value)
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.FunctionStatement{Token: tok, Name: tok.Literal, Parameters: params, Body: body}, nil
	}

	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{
		Token:      tok,
		Expression: &ast.CallExpression{Token: tok, Name: tok.Literal, Arguments: args},
	}, nil
}

func (p *Parser) parseBlock() ([]ast.Statement, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			return nil, p.errorf("unterminated block")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	p.nextToken() // consume '}'
	return stmts, nil
}

func (p *Parser) parseParameterList() ([]string, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []string
	for !p.curTokenIs(token.RPAREN) {
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		params = append(params, name.Literal)
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.nextToken() // consume ')'
	return params, nil
}
