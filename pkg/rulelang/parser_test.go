package rulelang

import "testing"

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	p, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return p
}

func TestParseIncProgram(t *testing.T) {
	src := `
	INC(x) # S(y) = S() ~ S(y)
	INC(x) # O() = x
	INC(O) ~ S(O)`

	prog := mustParse(t, src)

	if len(prog.Equations) != 2 {
		t.Fatalf("len(Equations) = %d, want 2", len(prog.Equations))
	}

	eq0, ok := prog.Equations[0].(*Equation)
	if !ok {
		t.Fatalf("Equations[0] is %T, want *Equation", prog.Equations[0])
	}
	left, ok := eq0.Left.(*Agent)
	if !ok || left.Head.Name != "INC" {
		t.Fatalf("eq0.Left = %#v, want Agent INC", eq0.Left)
	}
	if len(left.Children) != 1 {
		t.Fatalf("len(left.Children) = %d, want 1", len(left.Children))
	}
	if _, ok := left.Children[0].(*Var); !ok {
		t.Fatalf("left.Children[0] = %#v, want *Var", left.Children[0])
	}

	right, ok := eq0.Right.(*Agent)
	if !ok || right.Head.Name != "S" {
		t.Fatalf("eq0.Right = %#v, want Agent S", eq0.Right)
	}

	if len(eq0.RHS) != 1 {
		t.Fatalf("len(eq0.RHS) = %d, want 1", len(eq0.RHS))
	}
	if _, ok := eq0.RHS[0].(*Principal); !ok {
		t.Fatalf("eq0.RHS[0] = %#v, want *Principal", eq0.RHS[0])
	}

	eq1 := prog.Equations[1].(*Equation)
	if len(eq1.RHS) != 1 {
		t.Fatalf("len(eq1.RHS) = %d, want 1", len(eq1.RHS))
	}
	if _, ok := eq1.RHS[0].(*Var); !ok {
		t.Fatalf("eq1.RHS[0] = %#v, want *Var", eq1.RHS[0])
	}

	term, ok := prog.Term.(*Principal)
	if !ok {
		t.Fatalf("Term = %#v, want *Principal", prog.Term)
	}
	tLeft := term.Left.(*Agent)
	if tLeft.Head.Name != "INC" {
		t.Fatalf("term.Left head = %s, want INC", tLeft.Head.Name)
	}
	if _, ok := tLeft.Children[0].(*Cons); !ok {
		t.Fatalf("term.Left.Children[0] = %#v, want *Cons", tLeft.Children[0])
	}
}

func TestParseAddProgram(t *testing.T) {
	src := `
	ADD(x) # S(y) = ADD(S(x)) ~ y
	ADD(O) # O() = O
	ADD(x) # O() = x
	ADD(O) ~ S(O)`

	prog := mustParse(t, src)
	if len(prog.Equations) != 3 {
		t.Fatalf("len(Equations) = %d, want 3", len(prog.Equations))
	}

	eq1 := prog.Equations[1].(*Equation)
	if len(eq1.RHS) != 1 {
		t.Fatalf("len(eq1.RHS) = %d, want 1", len(eq1.RHS))
	}
	if _, ok := eq1.RHS[0].(*Cons); !ok {
		t.Fatalf("eq1.RHS[0] = %#v, want *Cons (bare O)", eq1.RHS[0])
	}
}

func TestParseRejectsMissingTerm(t *testing.T) {
	_, err := Parse("ADD(x) # S(y) = x")
	if err == nil {
		t.Fatalf("expected an error: no final term")
	}
}

func TestParseRejectsBadSeparator(t *testing.T) {
	_, err := Parse("ADD(x) S(y) = x")
	if err == nil {
		t.Fatalf("expected an error: missing '#'")
	}
}
