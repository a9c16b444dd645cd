// Completion: 100% - Listing lexer complete
package listing

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenType classifies a listing token
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_IDENT
	TOKEN_NUMBER
	TOKEN_HASH
	TOKEN_COMMA
	TOKEN_COLON
	TOKEN_LBRACKET
	TOKEN_RBRACKET
	TOKEN_NEWLINE
)

func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "end of input"
	case TOKEN_IDENT:
		return "identifier"
	case TOKEN_NUMBER:
		return "number"
	case TOKEN_HASH:
		return "'#'"
	case TOKEN_COMMA:
		return "','"
	case TOKEN_COLON:
		return "':'"
	case TOKEN_LBRACKET:
		return "'['"
	case TOKEN_RBRACKET:
		return "']'"
	case TOKEN_NEWLINE:
		return "end of line"
	default:
		return "unknown token"
	}
}

type Token struct {
	Type   TokenType
	Value  string
	Line   int
	Column int // 1-indexed
}

// Lexer splits a listing into tokens. Comments run from "//" or ";" to
// the end of the line.
type Lexer struct {
	input     string
	pos       int
	line      int
	lineStart int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '.' || unicode.IsLetter(rune(ch))
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || unicode.IsDigit(rune(ch))
}

func (l *Lexer) NextToken() (Token, error) {
	for l.pos < len(l.input) && (l.input[l.pos] == ' ' || l.input[l.pos] == '\t' || l.input[l.pos] == '\r') {
		l.pos++
	}
	if l.pos < len(l.input) && (l.input[l.pos] == ';' || strings.HasPrefix(l.input[l.pos:], "//")) {
		for l.pos < len(l.input) && l.input[l.pos] != '\n' {
			l.pos++
		}
	}

	column := l.pos - l.lineStart + 1
	if l.pos >= len(l.input) {
		return Token{Type: TOKEN_EOF, Line: l.line, Column: column}, nil
	}
	tok := func(t TokenType, v string) Token {
		return Token{Type: t, Value: v, Line: l.line, Column: column}
	}

	ch := l.input[l.pos]
	switch ch {
	case '\n':
		t := tok(TOKEN_NEWLINE, "")
		l.pos++
		l.line++
		l.lineStart = l.pos
		return t, nil
	case '#':
		l.pos++
		return tok(TOKEN_HASH, "#"), nil
	case ',':
		l.pos++
		return tok(TOKEN_COMMA, ","), nil
	case ':':
		l.pos++
		return tok(TOKEN_COLON, ":"), nil
	case '[':
		l.pos++
		return tok(TOKEN_LBRACKET, "["), nil
	case ']':
		l.pos++
		return tok(TOKEN_RBRACKET, "]"), nil
	}

	// Number, with an optional sign, decimal or 0x/0b/0o prefixed
	if unicode.IsDigit(rune(ch)) || ((ch == '-' || ch == '+') && l.pos+1 < len(l.input) && unicode.IsDigit(rune(l.input[l.pos+1]))) {
		start := l.pos
		l.pos++
		for l.pos < len(l.input) && (isIdentChar(l.input[l.pos]) && l.input[l.pos] != '.') {
			l.pos++
		}
		return tok(TOKEN_NUMBER, l.input[start:l.pos]), nil
	}

	if isIdentStart(ch) {
		start := l.pos
		for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
			l.pos++
		}
		return tok(TOKEN_IDENT, l.input[start:l.pos]), nil
	}

	return Token{}, fmt.Errorf("line %d, column %d: unexpected character %q", l.line, column, ch)
}
