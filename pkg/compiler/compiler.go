// Package compiler lowers a semantic.Program into VM bytecode: a type
// table assigning each agent name an atype, one compiled instruction
// sequence per equation (installed as a rewrite rule keyed by the
// redex's two atypes), and an initial-term builder that seeds the
// first redex before Reduce is ever called.
package compiler

import (
	"fmt"

	"github.com/inet-vm/godnet/pkg/semantic"
	"github.com/inet-vm/godnet/pkg/vm"
)

// CompileProgram translates a semantic.Program into a ready-to-reduce
// VM: its Rules table is populated, its initial code has already run
// (so the first redex, if any, is on the work list), and the returned
// TypeTable lets the caller translate atypes back to source names.
func CompileProgram(program *semantic.Program) (*vm.VM, *TypeTable, error) {
	types := BuildTypeTable(program)
	machine := vm.New()

	for _, eq := range program.Equations {
		code, err := CompileEquation(eq, types)
		if err != nil {
			return nil, nil, err
		}
		key := vm.RuleKey{Left: types.Lookup(eq.Left.Name), Right: types.Lookup(eq.Right.Name)}
		machine.NewRewrite(key, code)
	}

	leftCode, err := buildTerm(types, program.Term.Left)
	if err != nil {
		return nil, nil, err
	}
	rightCode, err := buildTerm(types, program.Term.Right)
	if err != nil {
		return nil, nil, err
	}

	var initial []vm.Instruction
	initial = append(initial, leftCode...)
	initial = append(initial, rightCode...)
	initial = append(initial, vm.CONST(1), vm.CONST(1), vm.BIND())

	machine.Code = initial
	machine.PC = 0
	machine.Run()

	return machine, types, nil
}

// CompileEquation compiles one rewrite rule. The emitted body runs
// with the redex's two agent ids already on the stack (top = left id,
// next = right id): it captures the redex's auxiliary-port bindings
// into the scratchpad (Step A), deletes the two redex agents (Step B),
// then builds the equation's right-hand-side graph (Step C).
//
// Step A's exact instruction order — POP(0) after the left scan,
// PUSH(0) after the right scan, then DROP_AGENT twice — is the
// authoritative stack-bookkeeping contract from spec.md §9.2: it is
// reproduced literally rather than rewritten into a more obviously
// correct capture scheme.
func CompileEquation(eq *semantic.Equation, types *TypeTable) ([]vm.Instruction, error) {
	var code []vm.Instruction
	varAddr := make(map[string]uint64)

	capture := func(ports []*semantic.AgentTerm) error {
		for i, port := range ports {
			if port.Kind != semantic.KindVar {
				continue
			}
			if _, seen := varAddr[port.Name]; seen {
				continue
			}
			addr := uint64(len(varAddr) + 1)
			if addr >= vm.ScratchpadSize {
				return fmt.Errorf("compiler: equation %s # %s needs more than %d scratchpad addresses",
					eq.Left.Name, eq.Right.Name, vm.ScratchpadSize)
			}
			varAddr[port.Name] = addr
			// DUP the agent id on top, fetch its port i+1 (index+1 skips
			// the principal port), store the neighbor id at addr.
			code = append(code, vm.DUP(), vm.CONST(uint64(i+1)), vm.PORT(), vm.POP(addr))
		}
		return nil
	}

	if err := capture(eq.Left.Ports); err != nil {
		return nil, err
	}
	code = append(code, vm.POP(0))

	if err := capture(eq.Right.Ports); err != nil {
		return nil, err
	}
	code = append(code, vm.PUSH(0))

	// Delete the two redex agents; whatever two ids remain on the
	// stack after Step A are exactly the ones DROP_AGENT consumes.
	code = append(code, vm.DROP_AGENT(), vm.DROP_AGENT())

	for _, p := range eq.Principals {
		switch p.Kind {
		case semantic.PrincipalPure:
			leftCode, err := buildAgent(types, varAddr, p.Left)
			if err != nil {
				return nil, err
			}
			rightCode, err := buildAgent(types, varAddr, p.Right)
			if err != nil {
				return nil, err
			}
			code = append(code, leftCode...)
			code = append(code, rightCode...)
			code = append(code, vm.CONST(1), vm.CONST(1), vm.BIND())
		case semantic.PrincipalVar, semantic.PrincipalCons:
			termCode, err := buildAgent(types, varAddr, p.Left)
			if err != nil {
				return nil, err
			}
			code = append(code, termCode...)
		default:
			return nil, fmt.Errorf("compiler: unknown principal kind %v", p.Kind)
		}
	}

	return code, nil
}

// buildAgent recursively emits code that leaves the built subtree's
// root id on the stack. Var terms re-wire a free variable to the id
// captured from the redex's auxiliary port; Cons and Agent terms
// allocate a fresh agent and bind each child to it as a two-way
// auxiliary connection (both sides marked non-principal, so no new
// redex is introduced by structural RHS bonds).
func buildAgent(types *TypeTable, varAddr map[string]uint64, term *semantic.AgentTerm) ([]vm.Instruction, error) {
	switch term.Kind {
	case semantic.KindVar:
		addr, ok := varAddr[term.Name]
		if !ok {
			return nil, fmt.Errorf("compiler: variable %q used on the right-hand side was never bound on the left", term.Name)
		}
		return []vm.Instruction{vm.PUSH(addr)}, nil

	case semantic.KindCons:
		return []vm.Instruction{vm.GEN(), vm.DUP(), vm.CONST(types.Lookup(term.Name)), vm.NEW_AGENT()}, nil

	case semantic.KindAgent:
		code := []vm.Instruction{vm.GEN(), vm.DUP(), vm.CONST(types.Lookup(term.Name)), vm.NEW_AGENT()}
		for _, child := range term.Ports {
			code = append(code, vm.DUP())
			childCode, err := buildAgent(types, varAddr, child)
			if err != nil {
				return nil, err
			}
			code = append(code, childCode...)
			code = append(code, vm.CONST(0), vm.CONST(0), vm.BIND())
		}
		return code, nil

	default:
		return nil, fmt.Errorf("compiler: unknown agent kind %v", term.Kind)
	}
}

// buildTerm is buildAgent restricted to the initial term: variables
// are never allowed there, since there is no surrounding redex to
// capture them from.
func buildTerm(types *TypeTable, term *semantic.AgentTerm) ([]vm.Instruction, error) {
	if term.Kind == semantic.KindVar {
		return nil, fmt.Errorf("compiler: variable %q not allowed in the initial term", term.Name)
	}
	return buildAgent(types, nil, term)
}
