// Package chunk defines the Ghost bytecode instruction set and a
// disassembler over value.Chunk (§3.3, §6.2). Split from lang/value only
// because the opcode enum and textual disassembly have no need of Value
// themselves beyond reading an already-built Chunk — grounded in the
// section-ordered, human-writable/readable pseudo-assembly printer of
// github.com/mna/nenuphar/lang/compiler/asm.go.
package chunk

// Op is one bytecode instruction (§6.2).
type Op byte

//nolint:revive
const (
	CONSTANT Op = iota
	NULL
	TRUE
	FALSE
	POP
	GET_LOCAL
	SET_LOCAL
	GET_GLOBAL
	DEFINE_GLOBAL
	SET_GLOBAL
	GET_UPVALUE
	SET_UPVALUE
	GET_PROPERTY
	SET_PROPERTY
	GET_SUPER
	EQUAL
	GREATER
	LESS
	ADD
	SUBTRACT
	MULTIPLY
	DIVIDE
	NOT
	NEGATE
	PRINT
	JUMP
	JUMP_IF_FALSE
	LOOP
	CALL
	INVOKE
	SUPER_INVOKE
	CLOSURE
	CLOSE_UPVALUE
	RETURN
	CLASS
	INHERIT
	METHOD
	BUILD_LIST
	INDEX_SUBSCR
	STORE_SUBSCR

	maxOp
)

var opNames = [...]string{
	CONSTANT:      "CONSTANT",
	NULL:          "NULL",
	TRUE:          "TRUE",
	FALSE:         "FALSE",
	POP:           "POP",
	GET_LOCAL:     "GET_LOCAL",
	SET_LOCAL:     "SET_LOCAL",
	GET_GLOBAL:    "GET_GLOBAL",
	DEFINE_GLOBAL: "DEFINE_GLOBAL",
	SET_GLOBAL:    "SET_GLOBAL",
	GET_UPVALUE:   "GET_UPVALUE",
	SET_UPVALUE:   "SET_UPVALUE",
	GET_PROPERTY:  "GET_PROPERTY",
	SET_PROPERTY:  "SET_PROPERTY",
	GET_SUPER:     "GET_SUPER",
	EQUAL:         "EQUAL",
	GREATER:       "GREATER",
	LESS:          "LESS",
	ADD:           "ADD",
	SUBTRACT:      "SUBTRACT",
	MULTIPLY:      "MULTIPLY",
	DIVIDE:        "DIVIDE",
	NOT:           "NOT",
	NEGATE:        "NEGATE",
	PRINT:         "PRINT",
	JUMP:          "JUMP",
	JUMP_IF_FALSE: "JUMP_IF_FALSE",
	LOOP:          "LOOP",
	CALL:          "CALL",
	INVOKE:        "INVOKE",
	SUPER_INVOKE:  "SUPER_INVOKE",
	CLOSURE:       "CLOSURE",
	CLOSE_UPVALUE: "CLOSE_UPVALUE",
	RETURN:        "RETURN",
	CLASS:         "CLASS",
	INHERIT:       "INHERIT",
	METHOD:        "METHOD",
	BUILD_LIST:    "BUILD_LIST",
	INDEX_SUBSCR:  "INDEX_SUBSCR",
	STORE_SUBSCR:  "STORE_SUBSCR",
}

func (op Op) String() string {
	if op < maxOp {
		return opNames[op]
	}
	return "UNKNOWN_OP"
}

// OperandWidth describes how many operand bytes follow an opcode and how to
// interpret them, for the disassembler.
type OperandWidth int

const (
	// NoOperand opcodes are a single byte.
	NoOperand OperandWidth = iota
	// ByteOperand opcodes take one operand byte: a constant/local/upvalue
	// index or count.
	ByteOperand
	// JumpOperand opcodes take a 2-byte big-endian forward/backward offset.
	JumpOperand
	// NameAndArgOperand opcodes take a 1-byte constant index followed by a
	// 1-byte argument count (INVOKE, SUPER_INVOKE).
	NameAndArgOperand
	// ClosureOperand opcodes take a 1-byte function-constant index followed
	// by 2*upvalueCount bytes; the disassembler must consult the referenced
	// function to know how many pairs follow.
	ClosureOperand
	// ListOperand opcodes take a 2-byte big-endian element count.
	ListOperand
)

// Width reports how op's operand(s) are encoded (§6.2).
func Width(op Op) OperandWidth {
	switch op {
	case CONSTANT, DEFINE_GLOBAL, GET_GLOBAL, SET_GLOBAL, GET_PROPERTY, SET_PROPERTY,
		GET_SUPER, CLASS, METHOD, GET_LOCAL, SET_LOCAL, GET_UPVALUE, SET_UPVALUE, CALL:
		return ByteOperand
	case JUMP, JUMP_IF_FALSE, LOOP:
		return JumpOperand
	case INVOKE, SUPER_INVOKE:
		return NameAndArgOperand
	case CLOSURE:
		return ClosureOperand
	case BUILD_LIST:
		return ListOperand
	default:
		return NoOperand
	}
}
