// Package vm implements the bytecode stack machine that drives
// interaction-net reduction: a small instruction set, a 256-word
// scratchpad for capturing redex-local bindings, and the reduce loop
// that pops redexes off the net's work list and dispatches the
// compiled rewrite rule for each one.
package vm

import (
	"fmt"

	"github.com/inet-vm/godnet/pkg/inet"
)

// ScratchpadSize is the fixed number of addressable words a rule body
// may use to remember captured ids across instruction boundaries.
const ScratchpadSize = 256

// RuleKey identifies a rewrite rule by the type tags of the two agents
// in a redex, in the order they were popped off the net's work list
// (left, right) — not symmetrized, matching the reference engine's
// rules.get(&(atype(pair.0), atype(pair.1))) lookup.
type RuleKey struct {
	Left, Right uint64
}

// VM is a single-threaded stack machine. It owns one Net exclusively;
// the stack and scratchpad are private to this VM instance and are not
// cleared between rule executions — rule bodies are expected to be
// balanced.
type VM struct {
	PC    int
	Code  []Instruction
	Stack []uint64

	Scratchpad [ScratchpadSize]uint64

	Net   *inet.Net
	Rules map[RuleKey][]Instruction

	trace *traceLog
}

// New returns a fresh VM with an empty net and rule table.
func New() *VM {
	return &VM{
		Net:   inet.NewNet(),
		Rules: make(map[RuleKey][]Instruction),
	}
}

// NewRewrite installs the instruction sequence to run whenever a redex
// of the given (left, right) type pair is reduced.
func (v *VM) NewRewrite(key RuleKey, code []Instruction) {
	v.Rules[key] = code
}

// DropRewrite removes a previously installed rule.
func (v *VM) DropRewrite(key RuleKey) {
	delete(v.Rules, key)
}

// push/pop are unexported since stack underflow is always a bug in
// compiled code or a malformed hand-written instruction sequence —
// it is never a condition a caller should recover from.
func (v *VM) push(x uint64) {
	v.Stack = append(v.Stack, x)
}

func (v *VM) pop() uint64 {
	n := len(v.Stack)
	if n == 0 {
		panic("vm: stack underflow")
	}
	x := v.Stack[n-1]
	v.Stack = v.Stack[:n-1]
	return x
}

// Step decodes and executes Code[PC], then advances PC by one. There
// are no jump/branch instructions, so execution order is always the
// order instructions appear in Code.
func (v *VM) Step() {
	instr := v.Code[v.PC]
	switch instr.Op {
	case OpNOP:
		// no effect
	case OpGEN:
		v.push(v.Net.GenID())
	case OpCONST:
		v.push(instr.Arg)
	case OpDUP:
		top := v.Stack[len(v.Stack)-1]
		v.push(top)
	case OpPUSH:
		v.push(v.Scratchpad[instr.Arg])
	case OpPOP:
		v.Scratchpad[instr.Arg] = v.pop()
	case OpNEW_AGENT:
		// Stack order: id pushed before atype, so atype is popped first.
		atype := v.pop()
		id := v.pop()
		v.Net.NewAgent(id, atype)
	case OpDROP_AGENT:
		id := v.pop()
		v.Net.DropAgent(id)
	case OpBIND:
		prin1 := v.pop()
		prin0 := v.pop()
		aid1 := v.pop()
		aid0 := v.pop()
		v.Net.Bind([2]bool{prin0 > 0, prin1 > 0}, aid0, aid1)
	case OpUNBIND:
		aid1 := v.pop()
		aid0 := v.pop()
		v.Net.Unbind(aid0, aid1)
	case OpPORT:
		pid := v.pop()
		aid := v.pop()
		v.push(v.Net.Query(aid).Ports[pid])
	default:
		panic(fmt.Sprintf("vm: unknown opcode %v", instr.Op))
	}
	v.PC++
}

// Run executes Code from the current PC until PC reaches len(Code).
func (v *VM) Run() {
	for v.PC < len(v.Code) {
		v.Step()
	}
}

// Reduce drives the net to normal form: it pops redexes off the work
// list (LIFO) until none remain, and for each one looks up and runs the
// rule for its pair of agent types. A redex whose type pair has no
// installed rule is silently dropped — it was already removed from the
// work list, and no replacement graph is built. LIFO order is
// deterministic given insertion order but carries no confluence claim.
func (v *VM) Reduce() {
	for {
		redex, ok := v.Net.PopRedex()
		if !ok {
			return
		}
		v.push(redex.B)
		v.push(redex.A)

		key := RuleKey{Left: v.Net.AType(redex.A), Right: v.Net.AType(redex.B)}
		code, ok := v.Rules[key]
		v.recordTrace(key, redex, ok)
		if !ok {
			continue
		}

		v.Code = code
		v.PC = 0
		v.Run()
	}
}
