// Package semantic holds the in-memory rule/term representation the
// compiler consumes: AgentTerm (a variable, a nullary constructor, or
// a named agent with typed-port children), Principal (two terms bound
// at their principals, or a bare term that terminates a rewrite),
// Equation, and Program. FromAST translates the rulelang AST into this
// model — the one seam where the textual grammar's shape becomes part
// of the compiler's input contract (spec.md §6).
package semantic

import (
	"fmt"

	"github.com/inet-vm/godnet/pkg/rulelang"
)

// AgentKind discriminates the three AgentTerm variants.
type AgentKind int

const (
	KindVar AgentKind = iota
	KindCons
	KindAgent
)

// AgentTerm is a binding site (Var), a nullary constructor (Cons), or
// a named agent with typed-port children (Agent). Cons and Agent share
// a type-table slot by name; Var never occupies one.
type AgentTerm struct {
	Name  string
	Kind  AgentKind
	Ports []*AgentTerm
}

// PrincipalKind discriminates the three Principal variants.
type PrincipalKind int

const (
	PrincipalPure PrincipalKind = iota // both sides are real agent terms
	PrincipalVar                       // the "principal" is just a variable reference
	PrincipalCons                      // the "principal" is a bare constructor
)

// Principal groups two AgentTerms connected at their principal ports,
// or — for Var/Cons kind — a single bare term with no right side.
type Principal struct {
	Kind  PrincipalKind
	Left  *AgentTerm
	Right *AgentTerm // unused (nil) when Kind != PrincipalPure
}

// Equation is one rewrite rule: a redex pattern (Left # Right, both
// Agent-kind) and the right-hand-side graph description.
type Equation struct {
	Left, Right *AgentTerm
	Principals  []*Principal
}

// Program is a full rule set plus the one Principal to reduce.
type Program struct {
	Equations []*Equation
	Term      *Principal
}

// FromAST translates a parsed rulelang.Program into the semantic
// model the compiler consumes.
func FromAST(ast *rulelang.Program) (*Program, error) {
	equations := make([]*Equation, 0, len(ast.Equations))
	for _, n := range ast.Equations {
		eqNode, ok := n.(*rulelang.Equation)
		if !ok {
			return nil, fmt.Errorf("semantic: expected an equation, got %T", n)
		}
		eq, err := scanEquation(eqNode)
		if err != nil {
			return nil, err
		}
		equations = append(equations, eq)
	}

	term, err := scanPrincipal(ast.Term)
	if err != nil {
		return nil, err
	}
	if term.Kind != PrincipalPure {
		return nil, fmt.Errorf("semantic: program's final term must connect two agents, got a bare term")
	}

	return &Program{Equations: equations, Term: term}, nil
}

func scanEquation(n *rulelang.Equation) (*Equation, error) {
	left, err := scanAgent(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := scanAgent(n.Right)
	if err != nil {
		return nil, err
	}
	if left.Kind != KindAgent || right.Kind != KindAgent {
		return nil, fmt.Errorf("semantic: both sides of an equation must be agents")
	}

	principals := make([]*Principal, 0, len(n.RHS))
	for _, p := range n.RHS {
		sp, err := scanPrincipal(p)
		if err != nil {
			return nil, err
		}
		principals = append(principals, sp)
	}

	return &Equation{Left: left, Right: right, Principals: principals}, nil
}

func scanPrincipal(n rulelang.Node) (*Principal, error) {
	switch t := n.(type) {
	case *rulelang.Principal:
		left, err := scanAgent(t.Left)
		if err != nil {
			return nil, err
		}
		right, err := scanAgent(t.Right)
		if err != nil {
			return nil, err
		}
		return &Principal{Kind: PrincipalPure, Left: left, Right: right}, nil
	case *rulelang.Var:
		return &Principal{Kind: PrincipalVar, Left: &AgentTerm{Name: t.Name, Kind: KindVar}}, nil
	case *rulelang.Cons:
		return &Principal{Kind: PrincipalCons, Left: &AgentTerm{Name: t.Name, Kind: KindCons}}, nil
	default:
		return nil, fmt.Errorf("semantic: illegal principal node %T", n)
	}
}

func scanAgent(n rulelang.Node) (*AgentTerm, error) {
	switch t := n.(type) {
	case *rulelang.Var:
		return &AgentTerm{Name: t.Name, Kind: KindVar}, nil
	case *rulelang.Cons:
		return &AgentTerm{Name: t.Name, Kind: KindCons}, nil
	case *rulelang.Agent:
		ports := make([]*AgentTerm, 0, len(t.Children))
		for _, c := range t.Children {
			sub, err := scanAgent(c)
			if err != nil {
				return nil, err
			}
			ports = append(ports, sub)
		}
		return &AgentTerm{Name: t.Head.Name, Kind: KindAgent, Ports: ports}, nil
	default:
		return nil, fmt.Errorf("semantic: illegal agent node %T", n)
	}
}
