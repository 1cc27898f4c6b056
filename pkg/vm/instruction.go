package vm

// Opcode identifies an instruction's operation. Every instruction is a
// fixed-width logical opcode; operands (if any) are embedded in the
// Instruction value itself rather than following it in the stream —
// there is no branching, so Run is a straight pc++ loop.
type Opcode int

const (
	OpNOP Opcode = iota
	OpGEN
	OpCONST
	OpDUP
	OpPUSH
	OpPOP
	OpNEW_AGENT
	OpDROP_AGENT
	OpBIND
	OpUNBIND
	OpPORT
)

// Instruction is one VM opcode plus its operand, where it has one.
// CONST/PUSH/POP carry Arg; the rest ignore it.
type Instruction struct {
	Op  Opcode
	Arg uint64
}

func (op Opcode) String() string {
	switch op {
	case OpNOP:
		return "NOP"
	case OpGEN:
		return "GEN"
	case OpCONST:
		return "CONST"
	case OpDUP:
		return "DUP"
	case OpPUSH:
		return "PUSH"
	case OpPOP:
		return "POP"
	case OpNEW_AGENT:
		return "NEW_AGENT"
	case OpDROP_AGENT:
		return "DROP_AGENT"
	case OpBIND:
		return "BIND"
	case OpUNBIND:
		return "UNBIND"
	case OpPORT:
		return "PORT"
	default:
		return "UNKNOWN"
	}
}

// Constructors for every instruction (CONST, PUSH and POP take their
// operand as an argument), so rule and term codegen reads as a flat
// instruction list rather than a wall of struct literals.
func NOP() Instruction        { return Instruction{Op: OpNOP} }
func GEN() Instruction        { return Instruction{Op: OpGEN} }
func CONST(k uint64) Instruction { return Instruction{Op: OpCONST, Arg: k} }
func DUP() Instruction        { return Instruction{Op: OpDUP} }
func PUSH(addr uint64) Instruction { return Instruction{Op: OpPUSH, Arg: addr} }
func POP(addr uint64) Instruction  { return Instruction{Op: OpPOP, Arg: addr} }
func NEW_AGENT() Instruction  { return Instruction{Op: OpNEW_AGENT} }
func DROP_AGENT() Instruction { return Instruction{Op: OpDROP_AGENT} }
func BIND() Instruction       { return Instruction{Op: OpBIND} }
func UNBIND() Instruction     { return Instruction{Op: OpUNBIND} }
func PORT() Instruction       { return Instruction{Op: OpPORT} }
