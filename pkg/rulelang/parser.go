package rulelang

import "fmt"

// Parser turns rule-language source text into a *Program AST. One
// equation per line is informative only — newlines have no syntactic
// significance; the grammar is driven entirely by "#", "=", "~", ",",
// and parens.
type Parser struct {
	lex *lexer
}

func NewParser(input string) *Parser {
	return &Parser{lex: newLexer(input)}
}

// Parse parses a full rule-language source: zero or more equations
// followed by exactly one principal term to reduce.
func (p *Parser) Parse() (*Program, error) {
	var equations []Node

	for {
		if p.lex.current.Type == TokenEOF {
			return nil, fmt.Errorf("rulelang: unexpected end of input, expected a final term")
		}

		left, err := p.parseAgent()
		if err != nil {
			return nil, err
		}

		switch p.lex.current.Type {
		case TokenHash:
			p.lex.next()
			right, err := p.parseAgent()
			if err != nil {
				return nil, err
			}
			if err := p.expect(TokenEqual); err != nil {
				return nil, err
			}
			rhs, err := p.parseRHSList()
			if err != nil {
				return nil, err
			}
			equations = append(equations, &Equation{Left: left, Right: right, RHS: rhs})
		case TokenTilde:
			p.lex.next()
			right, err := p.parseAgent()
			if err != nil {
				return nil, err
			}
			if p.lex.current.Type != TokenEOF {
				return nil, fmt.Errorf("rulelang: unexpected token %q after final term", p.lex.current.Literal)
			}
			return &Program{Equations: equations, Term: &Principal{Left: left, Right: right}}, nil
		default:
			return nil, fmt.Errorf("rulelang: expected '#' or '~' after %v, got %q", left, p.lex.current.Literal)
		}
	}
}

// parseRHSList parses the comma-separated list of principal/term items
// following "=".
func (p *Parser) parseRHSList() ([]Node, error) {
	var items []Node
	for {
		item, err := p.parseRHSItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.lex.current.Type != TokenComma {
			return items, nil
		}
		p.lex.next()
	}
}

// parseRHSItem parses one "term" or "term ~ term" item.
func (p *Parser) parseRHSItem() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.lex.current.Type != TokenTilde {
		return left, nil
	}
	p.lex.next()
	right, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return &Principal{Left: left, Right: right}, nil
}

// parseTerm parses a var, cons, or agent term (Var/Cons when the
// identifier is bare, Agent when it is followed by parens).
func (p *Parser) parseTerm() (Node, error) {
	if p.lex.current.Type != TokenIdent {
		return nil, fmt.Errorf("rulelang: expected identifier, got %q", p.lex.current.Literal)
	}
	name := p.lex.current.Literal
	p.lex.next()

	if p.lex.current.Type == TokenLParen {
		return p.parseAgentTail(name)
	}
	if startsLower(name) {
		return &Var{Name: name}, nil
	}
	return &Cons{Name: name}, nil
}

// parseAgent parses a term that must be in Agent form (an identifier
// immediately followed by parens), as required at depth 0 of an
// equation's left/right side and of the final term's two sides.
func (p *Parser) parseAgent() (Node, error) {
	if p.lex.current.Type != TokenIdent {
		return nil, fmt.Errorf("rulelang: expected agent name, got %q", p.lex.current.Literal)
	}
	name := p.lex.current.Literal
	p.lex.next()
	if p.lex.current.Type != TokenLParen {
		return nil, fmt.Errorf("rulelang: expected '(' after %s", name)
	}
	return p.parseAgentTail(name)
}

// parseAgentTail parses the "(" child-list ")" following an already
// consumed identifier.
func (p *Parser) parseAgentTail(name string) (Node, error) {
	if err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	var children []Node
	if p.lex.current.Type != TokenRParen {
		for {
			child, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			children = append(children, child)
			if p.lex.current.Type != TokenComma {
				break
			}
			p.lex.next()
		}
	}
	if err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return &Agent{Head: Id{Name: name}, Children: children}, nil
}

func (p *Parser) expect(tt TokenType) error {
	if p.lex.current.Type != tt {
		return fmt.Errorf("rulelang: expected token %d, got %q", tt, p.lex.current.Literal)
	}
	p.lex.next()
	return nil
}

// Parse parses rule-language source text into a Program AST. This is
// the parse(text) → AST entry point the compiler treats as an opaque
// external interface.
func Parse(input string) (*Program, error) {
	return NewParser(input).Parse()
}
