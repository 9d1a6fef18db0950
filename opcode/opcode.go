// Package opcode is the common bytecode catalog shared by the compiler,
// the chunk disassembler, and the VM: one symbolic name per instruction
// byte, plus how many immediate operand bytes follow it.
package opcode

// Code is a single bytecode instruction byte.
type Code byte

// Stable wire format: these byte values are part of the bytecode contract
// and must never be renumbered without a version bump of the format.
const (
	Constant     Code = 0x00
	Return       Code = 0x01
	Negate       Code = 0x02
	Not          Code = 0x03
	NilOp        Code = 0x04
	True         Code = 0x05
	False        Code = 0x06
	Add          Code = 0x07
	Subtract     Code = 0x08
	Multiply     Code = 0x09
	Divide       Code = 0x0a
	Equal        Code = 0x0b
	Greater      Code = 0x0c
	Less         Code = 0x0d
	Pop          Code = 0x0e
	GetGlobal    Code = 0x0f
	DefineGlobal Code = 0x10
	SetGlobal    Code = 0x11
	Print        Code = 0x12
)

var names = map[Code]string{
	Constant:     "OP_CONSTANT",
	Return:       "OP_RETURN",
	Negate:       "OP_NEGATE",
	Not:          "OP_NOT",
	NilOp:        "OP_NIL",
	True:         "OP_TRUE",
	False:        "OP_FALSE",
	Add:          "OP_ADD",
	Subtract:     "OP_SUBTRACT",
	Multiply:     "OP_MULTIPLY",
	Divide:       "OP_DIVIDE",
	Equal:        "OP_EQUAL",
	Greater:      "OP_GREATER",
	Less:         "OP_LESS",
	Pop:          "OP_POP",
	GetGlobal:    "OP_GET_GLOBAL",
	DefineGlobal: "OP_DEFINE_GLOBAL",
	SetGlobal:    "OP_SET_GLOBAL",
	Print:        "OP_PRINT",
}

// operandBytes maps each opcode to the number of immediate operand bytes
// that follow it in the instruction stream. Every opcode in this catalog
// has either zero operand bytes or a single one-byte constant-pool index.
var operandBytes = map[Code]int{
	Constant:     1,
	GetGlobal:    1,
	DefineGlobal: 1,
	SetGlobal:    1,
}

// Name returns the opcode's symbolic name, or "OP_UNKNOWN" for a byte that
// isn't one of the catalog's instructions.
func Name(op Code) string {
	if name, ok := names[op]; ok {
		return name
	}
	return "OP_UNKNOWN"
}

// OperandBytes returns how many operand bytes follow op in the instruction
// stream.
func OperandBytes(op Code) int {
	return operandBytes[op]
}

// Known reports whether op is a recognized instruction.
func Known(op Code) bool {
	_, ok := names[op]
	return ok
}
