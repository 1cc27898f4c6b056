package inet

import "testing"

func TestNewAgentDropAgent(t *testing.T) {
	n := NewNet()
	n.NewAgent(1, 0)
	n.NewAgent(2, 0)
	n.NewAgent(3, 0)

	n.Bind([2]bool{false, false}, 1, 2)
	n.Bind([2]bool{true, true}, 1, 3)
	n.Bind([2]bool{false, false}, 2, 3)

	n.DropAgent(1)

	if got := n.Arity(2); got != 2 {
		t.Errorf("Arity(2) = %d, want 2", got)
	}
	if got := n.Arity(3); got != 2 {
		t.Errorf("Arity(3) = %d, want 2", got)
	}
	if n.HasAgent(1) {
		t.Errorf("agent 1 should have been dropped")
	}
}

func TestPrincipalBindUnbind(t *testing.T) {
	n := NewNet()
	n.NewAgent(1, 1)
	n.NewAgent(2, 1)

	n.Bind([2]bool{true, false}, 1, 2)

	a1 := n.Query(1)
	if a1.AType != 1 || len(a1.Ports) != 1 || a1.Ports[0] != 2 {
		t.Fatalf("agent 1 = %+v, want ports [2]", a1)
	}
	a2 := n.Query(2)
	if len(a2.Ports) != 2 || a2.Ports[0] != 0 || a2.Ports[1] != 1 {
		t.Fatalf("agent 2 = %+v, want ports [0 1]", a2)
	}

	n.Unbind(1, 2)

	a1 = n.Query(1)
	if len(a1.Ports) != 1 || a1.Ports[0] != 0 {
		t.Fatalf("agent 1 after unbind = %+v, want ports [0]", a1)
	}
	a2 = n.Query(2)
	if len(a2.Ports) != 1 || a2.Ports[0] != 0 {
		t.Fatalf("agent 2 after unbind = %+v, want ports [0]", a2)
	}
}

func TestBindZeroIDIsNoOp(t *testing.T) {
	n := NewNet()
	n.NewAgent(1, 0)
	n.Bind([2]bool{true, true}, 0, 1)
	if _, ok := n.PopRedex(); ok {
		t.Errorf("binding with id 0 should not create a redex")
	}
	a1 := n.Query(1)
	if len(a1.Ports) != 1 || a1.Ports[0] != 0 {
		t.Errorf("agent 1 should be unchanged, got %+v", a1)
	}
}

func TestUnbindOnlyRemovesMatchingAuxiliary(t *testing.T) {
	n := NewNet()
	n.NewAgent(1, 0)
	n.NewAgent(2, 0)
	n.NewAgent(3, 0)
	n.Bind([2]bool{false, false}, 1, 2)
	n.Bind([2]bool{false, false}, 1, 3)

	n.Unbind(1, 3)

	a1 := n.Query(1)
	if len(a1.Ports) != 2 || a1.Ports[1] != 2 {
		t.Fatalf("agent 1 = %+v, want principal untouched and 2 still present", a1)
	}
}

func TestBindCreatesRedexExactlyOnce(t *testing.T) {
	n := NewNet()
	n.NewAgent(1, 0)
	n.NewAgent(2, 0)
	n.Bind([2]bool{true, true}, 1, 2)

	r, ok := n.PopRedex()
	if !ok {
		t.Fatalf("expected a redex")
	}
	if r.A != 1 || r.B != 2 {
		t.Errorf("redex = %+v, want {1 2}", r)
	}
	if _, ok := n.PopRedex(); ok {
		t.Errorf("expected exactly one redex")
	}
}

func TestGenIDMonotonicNeverZero(t *testing.T) {
	n := NewNet()
	prev := uint64(0)
	for i := 0; i < 10; i++ {
		id := n.GenID()
		if id == 0 {
			t.Fatalf("GenID returned 0")
		}
		if id <= prev {
			t.Fatalf("GenID not strictly increasing: %d after %d", id, prev)
		}
		prev = id
	}
}

func TestDropAgentRemovesReverseReferences(t *testing.T) {
	n := NewNet()
	n.NewAgent(1, 0)
	n.NewAgent(2, 0)
	n.Bind([2]bool{true, true}, 1, 2)
	n.DropAgent(1)

	a2 := n.Query(2)
	if a2.Ports[0] != 0 {
		t.Errorf("agent 2's principal port should be cleared, got %+v", a2)
	}
}

func TestQueryUnknownIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for an unknown id")
		}
	}()
	n := NewNet()
	n.NewAgent(1, 1)
	n.DropAgent(1)
	n.Query(1)
}
