package value

// Chunk holds one function's compiled bytecode: the instruction stream, the
// constant pool referenced by CONSTANT-family opcodes, and a line map used
// to attribute runtime errors to source lines (§3.3). Chunk lives in this
// package (rather than lang/chunk, which owns the Opcode enum and
// disassembler) because Function — a heap Object — must hold one directly,
// and Go has no forward declarations to break that cycle the way clox's C
// headers do.
type Chunk struct {
	Code      []byte
	Constants []Value
	// Lines[i] is the source line of Code[i]. Parallel to Code rather than
	// run-length-encoded: simpler, and chunks are short-lived function bodies,
	// not a concern worth compressing for this runtime's scale.
	Lines []int
}

// Write appends one bytecode byte produced from source line, and returns the
// offset it was written at.
func (c *Chunk) Write(b byte, line int) int {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
	return len(c.Code) - 1
}

// AddConstant appends v to the constant pool and returns its index. The
// compiler is responsible for deduplicating constants before calling this
// (§4.3); Chunk itself does not deduplicate.
func (c *Chunk) AddConstant(v Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}
