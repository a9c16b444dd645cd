// Completion: 100% - Listing parser complete
package listing

import (
	"fmt"
	"strconv"
	"strings"

	unisimd "github.com/neonkingfr/UniSIMDc-sub002"
)

// OperandKind is the syntactic shape of an operand
type OperandKind int

const (
	OperandReg   OperandKind = iota // v0..v31
	OperandMem                      // [xN] or [xN, #disp]
	OperandImm                      // #n
	OperandIdent                    // anything else, a label reference
)

func (k OperandKind) String() string {
	switch k {
	case OperandReg:
		return "vector register"
	case OperandMem:
		return "memory operand"
	case OperandImm:
		return "immediate"
	case OperandIdent:
		return "label"
	default:
		return "operand"
	}
}

type Operand struct {
	Kind OperandKind
	Reg  unisimd.VReg
	Mem  unisimd.Mem
	Imm  int64
	Text string
}

// Statement is one line of a listing. A line may carry only a label,
// only an instruction, or both.
type Statement struct {
	Line     int
	Label    string
	Mnemonic string
	Operands []Operand
}

// Parser turns a token stream into statements
type Parser struct {
	lexer   *Lexer
	current Token
}

func NewParser(input string) (*Parser, error) {
	p := &Parser{lexer: NewLexer(input)}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) nextToken() error {
	t, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.current = t
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &Error{Line: p.current.Line, Err: fmt.Errorf(format, args...)}
}

func (p *Parser) expect(t TokenType) (Token, error) {
	tok := p.current
	if tok.Type != t {
		return tok, p.errorf("expected %s, found %s %q", t, tok.Type, tok.Value)
	}
	return tok, p.nextToken()
}

// Parse parses a complete listing
func Parse(input string) ([]Statement, error) {
	p, err := NewParser(input)
	if err != nil {
		return nil, err
	}
	var stmts []Statement
	for p.current.Type != TOKEN_EOF {
		if p.current.Type == TOKEN_NEWLINE {
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			continue
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func (p *Parser) parseStatement() (Statement, error) {
	s := Statement{Line: p.current.Line}
	first, err := p.expect(TOKEN_IDENT)
	if err != nil {
		return s, err
	}
	if p.current.Type == TOKEN_COLON {
		s.Label = first.Value
		if err := p.nextToken(); err != nil {
			return s, err
		}
		if p.current.Type != TOKEN_IDENT {
			return s, p.endOfLine()
		}
		if first, err = p.expect(TOKEN_IDENT); err != nil {
			return s, err
		}
	}
	s.Mnemonic = strings.ToLower(first.Value)

	for p.current.Type != TOKEN_NEWLINE && p.current.Type != TOKEN_EOF {
		if len(s.Operands) > 0 {
			if _, err := p.expect(TOKEN_COMMA); err != nil {
				return s, err
			}
		}
		op, err := p.parseOperand()
		if err != nil {
			return s, err
		}
		s.Operands = append(s.Operands, op)
	}
	return s, p.endOfLine()
}

func (p *Parser) endOfLine() error {
	switch p.current.Type {
	case TOKEN_EOF:
		return nil
	case TOKEN_NEWLINE:
		return p.nextToken()
	}
	return p.errorf("unexpected %s %q", p.current.Type, p.current.Value)
}

func (p *Parser) parseNumber() (int64, error) {
	tok, err := p.expect(TOKEN_NUMBER)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(tok.Value, 0, 64)
	if err != nil {
		return 0, &Error{Line: tok.Line, Err: fmt.Errorf("bad number %q", tok.Value)}
	}
	return n, nil
}

func (p *Parser) parseOperand() (Operand, error) {
	switch p.current.Type {
	case TOKEN_HASH:
		if err := p.nextToken(); err != nil {
			return Operand{}, err
		}
		n, err := p.parseNumber()
		return Operand{Kind: OperandImm, Imm: n, Text: strconv.FormatInt(n, 10)}, err
	case TOKEN_NUMBER:
		n, err := p.parseNumber()
		return Operand{Kind: OperandImm, Imm: n, Text: strconv.FormatInt(n, 10)}, err
	case TOKEN_LBRACKET:
		return p.parseMem()
	case TOKEN_IDENT:
		tok := p.current
		if err := p.nextToken(); err != nil {
			return Operand{}, err
		}
		if r, err := unisimd.ParseVReg(tok.Value); err == nil && strings.HasPrefix(strings.ToLower(tok.Value), "v") {
			return Operand{Kind: OperandReg, Reg: r, Text: tok.Value}, nil
		}
		return Operand{Kind: OperandIdent, Text: tok.Value}, nil
	}
	return Operand{}, p.errorf("unexpected %s %q in operand", p.current.Type, p.current.Value)
}

// parseMem parses [base] and [base, #disp]
func (p *Parser) parseMem() (Operand, error) {
	if _, err := p.expect(TOKEN_LBRACKET); err != nil {
		return Operand{}, err
	}
	baseTok, err := p.expect(TOKEN_IDENT)
	if err != nil {
		return Operand{}, err
	}
	base, err := unisimd.ParseGPReg(baseTok.Value)
	if err != nil {
		return Operand{}, &Error{Line: baseTok.Line, Err: err}
	}
	m := unisimd.Mem{Base: base}
	if p.current.Type == TOKEN_COMMA {
		if err := p.nextToken(); err != nil {
			return Operand{}, err
		}
		if p.current.Type == TOKEN_HASH {
			if err := p.nextToken(); err != nil {
				return Operand{}, err
			}
		}
		if m.Disp, err = p.parseNumber(); err != nil {
			return Operand{}, err
		}
	}
	if _, err := p.expect(TOKEN_RBRACKET); err != nil {
		return Operand{}, err
	}
	return Operand{Kind: OperandMem, Mem: m, Text: m.String()}, nil
}
