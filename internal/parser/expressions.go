package parser

import (
	"github.com/uselesslang/useless/internal/ast"
	"github.com/uselesslang/useless/internal/token"
)

func (p *Parser) parseExpression() (ast.Expression, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxRecursionDepth {
		return nil, p.errorf("expression nesting too deep")
	}

	switch p.curToken().Type {
	case token.STRING:
		tok := p.nextToken()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}, nil

	case token.NUMBER:
		tok := p.nextToken()
		n, err := p.parseNumber(tok)
		if err != nil {
			return nil, err
		}
		return &ast.NumberLiteral{Token: tok, Value: n}, nil

	case token.TRUE, token.FALSE:
		tok := p.nextToken()
		return &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TRUE}, nil

	case token.NULL:
		tok := p.nextToken()
		return &ast.NullLiteral{Token: tok}, nil

	case token.LBRACKET:
		return p.parseArrayLiteral()

	case token.LBRACE:
		return p.parseRecordLiteral()

	case token.ADD, token.MULTIPLY, token.EQUALS, token.LESSTHAN, token.INDEX:
		return p.parseBinaryOperation()

	case token.ACCESS:
		tok := p.nextToken()
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		object, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COMMA); err != nil {
			return nil, err
		}
		key, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.AccessExpression{Token: tok, Object: object, Key: key}, nil

	case token.PROMISE:
		tok := p.nextToken()
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		var timeout ast.Expression
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			timeout, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.PromiseExpression{Token: tok, Value: value, Timeout: timeout}, nil

	case token.AWAIT:
		tok := p.nextToken()
		// Both await(p) and `await p` expression forms.
		parenthesized := p.curTokenIs(token.LPAREN)
		if parenthesized {
			p.nextToken()
		}
		promise, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if parenthesized {
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
		}
		return &ast.AwaitExpression{Token: tok, Promise: promise}, nil

	case token.IDENT:
		tok := p.nextToken()
		if p.curTokenIs(token.LPAREN) {
			args, err := p.parseArgumentList()
			if err != nil {
				return nil, err
			}
			return &ast.CallExpression{Token: tok, Name: tok.Literal, Arguments: args}, nil
		}
		return &ast.Identifier{Token: tok, Value: tok.Literal}, nil

	default:
		return nil, p.errorf("unexpected token %q", p.curToken().Lexeme)
	}
}

func (p *Parser) parseBinaryOperation() (ast.Expression, error) {
	tok := p.nextToken()
	var op ast.BinaryOp
	switch tok.Type {
	case token.ADD:
		op = ast.OpAdd
	case token.MULTIPLY:
		op = ast.OpMultiply
	case token.EQUALS:
		op = ast.OpEquals
	case token.LESSTHAN:
		op = ast.OpLessThan
	case token.INDEX:
		op = ast.OpIndex
	}

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.BinaryExpression{Token: tok, Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	tok := p.nextToken() // '['
	var elements []ast.Expression
	for !p.curTokenIs(token.RBRACKET) {
		if p.curTokenIs(token.EOF) {
			return nil, p.errorf("unterminated array literal")
		}
		el, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.nextToken() // consume ']'
	return &ast.ArrayLiteral{Token: tok, Elements: elements}, nil
}

func (p *Parser) parseRecordLiteral() (ast.Expression, error) {
	tok := p.nextToken() // '{'
	var fields []ast.RecordField
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			return nil, p.errorf("unterminated record literal")
		}
		key, err := p.expect(token.STRING)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.RecordField{Key: key.Literal, Value: value})
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.nextToken() // consume '}'
	return &ast.RecordLiteral{Token: tok, Fields: fields}, nil
}

// parseArgumentList parses "(e, e, ...)" with the opening paren as the
// current token.
func (p *Parser) parseArgumentList() ([]ast.Expression, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expression
	for !p.curTokenIs(token.RPAREN) {
		if p.curTokenIs(token.EOF) {
			return nil, p.errorf("unterminated argument list")
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.nextToken() // consume ')'
	return args, nil
}
