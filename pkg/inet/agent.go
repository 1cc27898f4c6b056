// Package inet implements the interaction-net graph store: a heap of
// agents connected at typed ports, plus the work list of redexes
// (active pairs) awaiting rewrite.
package inet

// Agent is a node in the interaction net. Ports[0] is the principal
// port; Ports[1:] are auxiliary ports. A port slot holds the id of the
// connected agent, or 0 if disconnected. Id 0 is never a valid agent id.
type Agent struct {
	ID    uint64
	AType uint64
	Ports []uint64
}

// Arity reports the number of ports this agent currently has,
// including the principal port.
func (a *Agent) Arity() int {
	return len(a.Ports)
}

// Clone returns a deep copy of a, safe for a caller to hold onto after
// further mutation of the net.
func (a *Agent) Clone() *Agent {
	ports := make([]uint64, len(a.Ports))
	copy(ports, a.Ports)
	return &Agent{ID: a.ID, AType: a.AType, Ports: ports}
}
