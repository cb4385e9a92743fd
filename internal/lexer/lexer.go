package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/uselesslang/useless/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case '=':
		tok = newToken(token.ASSIGN, l.ch, l.line, l.column)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch, l.line, l.column)
	case ':':
		tok = newToken(token.COLON, l.ch, l.line, l.column)
	case ',':
		tok = newToken(token.COMMA, l.ch, l.line, l.column)
	case '(':
		tok = newToken(token.LPAREN, l.ch, l.line, l.column)
	case ')':
		tok = newToken(token.RPAREN, l.ch, l.line, l.column)
	case '{':
		tok = newToken(token.LBRACE, l.ch, l.line, l.column)
	case '}':
		tok = newToken(token.RBRACE, l.ch, l.line, l.column)
	case '[':
		tok = newToken(token.LBRACKET, l.ch, l.line, l.column)
	case ']':
		tok = newToken(token.RBRACKET, l.ch, l.line, l.column)
	case '"':
		line, col := l.line, l.column
		content, ok := l.readString()
		if !ok {
			return token.Token{Type: token.ILLEGAL, Lexeme: content, Literal: content, Line: line, Column: col}
		}
		return token.Token{Type: token.STRING, Lexeme: `"` + content + `"`, Literal: content, Line: line, Column: col}
	case '#':
		if l.peekChar() == '[' {
			return l.readAttribute()
		}
		tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
	case 0:
		tok = token.Token{Type: token.EOF, Lexeme: "", Literal: "", Line: l.line, Column: l.column}
	default:
		if isLetter(l.ch) {
			line, col := l.line, l.column
			lexeme := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(lexeme), Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
		}
		if isDigit(l.ch) || (l.ch == '-' && isDigit(l.peekChar())) {
			line, col := l.line, l.column
			lexeme := l.readNumber()
			return token.Token{Type: token.NUMBER, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
		}
		tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
	}

	l.readChar()
	return tok
}

// Tokens lexes the whole input, always ending with a single EOF token.
func (l *Lexer) Tokens() []token.Token {
	var out []token.Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Type == token.EOF {
			return out
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber() string {
	start := l.position
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.position]
}

// readString consumes a double-quoted string literal. The opening quote is the
// current char. Returns the decoded contents and false when the closing quote
// is missing.
func (l *Lexer) readString() (string, bool) {
	var sb strings.Builder
	l.readChar() // consume opening quote
	for l.ch != '"' {
		if l.ch == 0 {
			return sb.String(), false
		}
		if l.ch == '\\' {
			switch l.peekChar() {
			case 'n':
				sb.WriteRune('\n')
				l.readChar()
			case 't':
				sb.WriteRune('\t')
				l.readChar()
			case '"':
				sb.WriteRune('"')
				l.readChar()
			case '\\':
				sb.WriteRune('\\')
				l.readChar()
			default:
				sb.WriteRune(l.ch)
			}
		} else {
			sb.WriteRune(l.ch)
		}
		l.readChar()
	}
	l.readChar() // consume closing quote
	return sb.String(), true
}

// readAttribute consumes the whole #[...] form, e.g. #[directive(disable_useless)].
// The token literal carries the inner directive name.
func (l *Lexer) readAttribute() token.Token {
	line, col := l.line, l.column
	start := l.position
	for l.ch != ']' && l.ch != 0 {
		l.readChar()
	}
	if l.ch == ']' {
		l.readChar()
	}
	lexeme := l.input[start:l.position]

	name := lexeme
	if i := strings.Index(name, "("); i >= 0 {
		if j := strings.LastIndex(name, ")"); j > i {
			name = name[i+1 : j]
		}
	} else {
		name = strings.TrimSuffix(strings.TrimPrefix(name, "#["), "]")
	}
	return token.Token{Type: token.ATTRIBUTE, Lexeme: lexeme, Literal: name, Line: line, Column: col}
}

func newToken(tokenType token.TokenType, ch rune, line, col int) token.Token {
	literal := string(ch)
	return token.Token{Type: tokenType, Lexeme: literal, Literal: literal, Line: line, Column: col}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
