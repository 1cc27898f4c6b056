package semantic

import (
	"testing"

	"github.com/inet-vm/godnet/pkg/rulelang"
)

func TestFromASTIncProgram(t *testing.T) {
	src := `
	INC(x) # S(y) = S() ~ S(y)
	INC(x) # O() = x
	INC(O) ~ S(O)`

	ast, err := rulelang.Parse(src)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	prog, err := FromAST(ast)
	if err != nil {
		t.Fatalf("FromAST error: %v", err)
	}

	if len(prog.Equations) != 2 {
		t.Fatalf("len(Equations) = %d, want 2", len(prog.Equations))
	}
	if prog.Equations[0].Left.Name != "INC" {
		t.Errorf("Equations[0].Left.Name = %s, want INC", prog.Equations[0].Left.Name)
	}
	if prog.Equations[0].Right.Name != "S" {
		t.Errorf("Equations[0].Right.Name = %s, want S", prog.Equations[0].Right.Name)
	}
	if len(prog.Equations[0].Left.Ports) != 1 {
		t.Errorf("len(Equations[0].Left.Ports) = %d, want 1", len(prog.Equations[0].Left.Ports))
	}
	if len(prog.Equations[1].Principals) != 1 {
		t.Fatalf("len(Equations[1].Principals) = %d, want 1", len(prog.Equations[1].Principals))
	}
	if prog.Equations[1].Principals[0].Kind != PrincipalVar {
		t.Errorf("Equations[1].Principals[0].Kind = %v, want PrincipalVar", prog.Equations[1].Principals[0].Kind)
	}
}

func TestFromASTRejectsNonAgentEquationSide(t *testing.T) {
	ast := &rulelang.Program{
		Equations: []rulelang.Node{
			&rulelang.Equation{
				Left:  &rulelang.Var{Name: "x"},
				Right: &rulelang.Agent{Head: rulelang.Id{Name: "O"}},
				RHS:   []rulelang.Node{&rulelang.Var{Name: "x"}},
			},
		},
		Term: &rulelang.Principal{
			Left:  &rulelang.Agent{Head: rulelang.Id{Name: "A"}},
			Right: &rulelang.Agent{Head: rulelang.Id{Name: "B"}},
		},
	}

	if _, err := FromAST(ast); err == nil {
		t.Fatalf("expected an error: equation left side is not an agent")
	}
}
