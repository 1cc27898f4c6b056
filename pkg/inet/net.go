package inet

import "fmt"

// Redex is an active pair: two agents connected principal-to-principal,
// awaiting rewrite.
type Redex struct {
	A, B uint64
}

// Net is the mutable heap of agents plus the work list of redexes. The
// id counter is strictly monotonic and never reused within a Net's
// lifetime; id 0 is reserved as the "disconnected" sentinel.
type Net struct {
	counter uint64
	heap    map[uint64]*Agent
	redexes []Redex
}

// NewNet returns an empty net with the id counter seeded at 1.
func NewNet() *Net {
	return &Net{
		counter: 1,
		heap:    make(map[uint64]*Agent),
	}
}

// GenID pre-increments the id counter and returns the new value. Never
// returns 0.
func (n *Net) GenID() uint64 {
	n.counter++
	return n.counter
}

// NewAgent inserts an agent with the given id and type. Its principal
// port starts disconnected; auxiliary ports are appended lazily by Bind.
func (n *Net) NewAgent(id, atype uint64) {
	n.heap[id] = &Agent{ID: id, AType: atype, Ports: []uint64{0}}
}

// DropAgent unbinds an agent from every neighbor it still holds a
// connection to, then removes it from the heap. Unbind runs for every
// neighbor before the agent is removed, so neighbors never retain a
// dangling reference to a dead agent's id.
func (n *Net) DropAgent(id uint64) {
	a := n.mustGet(id)
	// Copy the port list: Unbind mutates a.Ports as we range over it.
	neighbors := make([]uint64, len(a.Ports))
	copy(neighbors, a.Ports)
	for _, neighbor := range neighbors {
		n.Unbind(id, neighbor)
	}
	delete(n.heap, id)
}

// Bind connects aid0 and aid1. For each side, if its principals flag is
// true the connection is written to port index 0 (overwriting whatever
// was there); otherwise the opposite id is appended as a new auxiliary
// port. If both flags are true, (aid0, aid1) becomes a new redex. Either
// id being 0 makes Bind a no-op.
func (n *Net) Bind(principals [2]bool, aid0, aid1 uint64) {
	if aid0 == 0 || aid1 == 0 {
		return
	}
	left := n.mustGet(aid0)
	right := n.mustGet(aid1)

	if principals[0] {
		left.Ports[0] = aid1
	} else {
		left.Ports = append(left.Ports, aid1)
	}
	if principals[1] {
		right.Ports[0] = aid0
	} else {
		right.Ports = append(right.Ports, aid0)
	}

	if principals[0] && principals[1] {
		n.redexes = append(n.redexes, Redex{A: aid0, B: aid1})
	}
}

// Unbind removes the connection between aid0 and aid1. For each side,
// if port index 0 equals the opposite id, it is zeroed; otherwise every
// auxiliary slot equal to the opposite id is removed. Either id being 0
// makes Unbind a no-op.
func (n *Net) Unbind(aid0, aid1 uint64) {
	if aid0 == 0 || aid1 == 0 {
		return
	}
	left := n.mustGet(aid0)
	right := n.mustGet(aid1)

	if left.Ports[0] == aid1 {
		left.Ports[0] = 0
	} else {
		left.Ports = removeAll(left.Ports, aid1)
	}
	if right.Ports[0] == aid0 {
		right.Ports[0] = 0
	} else {
		right.Ports = removeAll(right.Ports, aid0)
	}
}

// removeAll drops every occurrence of v from ports, preserving order.
func removeAll(ports []uint64, v uint64) []uint64 {
	out := ports[:0]
	for _, p := range ports {
		if p != v {
			out = append(out, p)
		}
	}
	return out
}

// Query returns a copy of the agent with the given id. Passing an
// unknown id is a programmer error and panics, matching the net's
// invariant that every reachable id in a port slot is either 0 or a
// live agent.
func (n *Net) Query(id uint64) *Agent {
	return n.mustGet(id).Clone()
}

// AType returns the type tag of the agent with the given id.
func (n *Net) AType(id uint64) uint64 {
	return n.mustGet(id).AType
}

// Arity returns the number of ports (including the principal port) the
// agent with the given id currently has.
func (n *Net) Arity(id uint64) int {
	return n.mustGet(id).Arity()
}

// PopRedex removes and returns the most recently pushed redex (LIFO).
// The second return value is false if the work list is empty.
func (n *Net) PopRedex() (Redex, bool) {
	if len(n.redexes) == 0 {
		return Redex{}, false
	}
	last := len(n.redexes) - 1
	r := n.redexes[last]
	n.redexes = n.redexes[:last]
	return r, true
}

// HasAgent reports whether id is currently present in the heap.
func (n *Net) HasAgent(id uint64) bool {
	_, ok := n.heap[id]
	return ok
}

// Size returns the number of agents currently in the heap.
func (n *Net) Size() int {
	return len(n.heap)
}

// Snapshot returns a copy of every agent currently in the heap, for
// inspection (e.g. printing the final normal form).
func (n *Net) Snapshot() map[uint64]*Agent {
	out := make(map[uint64]*Agent, len(n.heap))
	for id, a := range n.heap {
		out[id] = a.Clone()
	}
	return out
}

func (n *Net) mustGet(id uint64) *Agent {
	a, ok := n.heap[id]
	if !ok {
		panic(notFoundError(id))
	}
	return a
}

// notFoundError describes a reference to an agent id not present in
// the heap. Passing such an id to Query/Bind/Unbind/AType/Arity is a
// programmer error; the compiler guarantees it never exercises this
// path during valid rewrites.
type notFoundError uint64

func (e notFoundError) Error() string {
	return fmt.Sprintf("inet: no agent with id %d in heap", uint64(e))
}
