package compiler

import "github.com/inet-vm/godnet/pkg/semantic"

// TypeTable assigns each distinct non-Var agent name the next unused
// integer, in the order the name is first encountered while walking
// every equation (both sides, both terms of every Pure principal of
// every RHS, and the single term of every Var/Cons principal) and the
// initial term. Two agents with the same name share an atype
// and therefore obey the same rewrite rules.
type TypeTable struct {
	ids   map[string]uint64
	order []string
}

func newTypeTable() *TypeTable {
	return &TypeTable{ids: make(map[string]uint64)}
}

// Lookup returns the atype assigned to name. It is a programmer error
// to look up a name the table was never built with; the compiler
// guarantees every name in an equation or the initial term was seen
// during BuildTypeTable.
func (t *TypeTable) Lookup(name string) uint64 {
	id, ok := t.ids[name]
	if !ok {
		panic("compiler: type table has no entry for " + name)
	}
	return id
}

// Names returns the name → atype mapping, for callers that need to
// translate atypes back to the source's agent names.
func (t *TypeTable) Names() map[string]uint64 {
	out := make(map[string]uint64, len(t.ids))
	for k, v := range t.ids {
		out[k] = v
	}
	return out
}

func (t *TypeTable) assign(name string) {
	if _, seen := t.ids[name]; seen {
		return
	}
	t.ids[name] = uint64(len(t.order))
	t.order = append(t.order, name)
}

// BuildTypeTable walks program in traversal order and returns the
// resulting name → atype table.
func BuildTypeTable(program *semantic.Program) *TypeTable {
	t := newTypeTable()

	for _, eq := range program.Equations {
		t.walkAgent(eq.Left)
		t.walkAgent(eq.Right)
		for _, p := range eq.Principals {
			t.walkAgent(p.Left)
			if p.Kind == semantic.PrincipalPure {
				t.walkAgent(p.Right)
			}
		}
	}

	t.walkAgent(program.Term.Left)
	if program.Term.Kind == semantic.PrincipalPure {
		t.walkAgent(program.Term.Right)
	}

	return t
}

func (t *TypeTable) walkAgent(term *semantic.AgentTerm) {
	if term == nil {
		return
	}
	if term.Kind != semantic.KindVar {
		t.assign(term.Name)
	}
	for _, port := range term.Ports {
		t.walkAgent(port)
	}
}
