package chunk_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/mna/ghost/lang/chunk"
	"github.com/mna/ghost/lang/value"
	"github.com/stretchr/testify/require"
)

func TestDisassembleNoOperand(t *testing.T) {
	c := &value.Chunk{}
	c.Write(byte(chunk.NEGATE), 1)
	c.Write(byte(chunk.RETURN), 1)

	var buf bytes.Buffer
	require.NoError(t, chunk.Disassemble(&buf, c, "test"))
	out := buf.String()
	require.Contains(t, out, "== test ==")
	require.Contains(t, out, "NEGATE")
	require.Contains(t, out, "RETURN")
}

func TestDisassembleConstantOperand(t *testing.T) {
	c := &value.Chunk{}
	idx := c.AddConstant(value.Number(7))
	c.Write(byte(chunk.CONSTANT), 3)
	c.Write(byte(idx), 3)

	var buf bytes.Buffer
	require.NoError(t, chunk.Disassemble(&buf, c, "test"))
	out := buf.String()
	require.Contains(t, out, "CONSTANT")
	require.Contains(t, out, "'7'")
	require.Contains(t, out, "   3 ") // line number on first instruction
}

func TestDisassembleRepeatedLineIsElided(t *testing.T) {
	c := &value.Chunk{}
	c.Write(byte(chunk.TRUE), 5)
	c.Write(byte(chunk.FALSE), 5)

	var buf bytes.Buffer
	require.NoError(t, chunk.Disassemble(&buf, c, "test"))
	out := buf.String()
	require.Contains(t, out, "   | ")
}

func TestDisassembleJumpResolvesTarget(t *testing.T) {
	c := &value.Chunk{}
	c.Write(byte(chunk.JUMP_IF_FALSE), 1)
	var jumpOperand [2]byte
	binary.BigEndian.PutUint16(jumpOperand[:], 2)
	c.Write(jumpOperand[0], 1)
	c.Write(jumpOperand[1], 1)
	c.Write(byte(chunk.POP), 1)
	c.Write(byte(chunk.POP), 1)

	var buf bytes.Buffer
	require.NoError(t, chunk.Disassemble(&buf, c, "test"))
	out := buf.String()
	require.Contains(t, out, "JUMP_IF_FALSE")
	require.Contains(t, out, "-> 5")
}

func TestDisassembleClosureListsUpvalues(t *testing.T) {
	fn := value.NewFunction()
	fn.Name = "f"
	fn.UpvalueCount = 1

	c := &value.Chunk{}
	idx := c.AddConstant(value.Obj(fn))
	c.Write(byte(chunk.CLOSURE), 2)
	c.Write(byte(idx), 2)
	c.Write(1, 2) // isLocal
	c.Write(0, 2) // index

	var buf bytes.Buffer
	require.NoError(t, chunk.Disassemble(&buf, c, "test"))
	out := buf.String()
	require.Contains(t, out, "CLOSURE")
	require.Contains(t, out, "local 0")
}

func TestOpStringUnknown(t *testing.T) {
	require.Equal(t, "UNKNOWN_OP", chunk.Op(255).String())
}

func TestWidthClassifiesEachOperandKind(t *testing.T) {
	cases := map[chunk.Op]chunk.OperandWidth{
		chunk.CONSTANT:      chunk.ByteOperand,
		chunk.GET_LOCAL:     chunk.ByteOperand,
		chunk.CALL:          chunk.ByteOperand,
		chunk.JUMP:          chunk.JumpOperand,
		chunk.LOOP:          chunk.JumpOperand,
		chunk.INVOKE:        chunk.NameAndArgOperand,
		chunk.SUPER_INVOKE:  chunk.NameAndArgOperand,
		chunk.CLOSURE:       chunk.ClosureOperand,
		chunk.BUILD_LIST:    chunk.ListOperand,
		chunk.RETURN:        chunk.NoOperand,
		chunk.ADD:           chunk.NoOperand,
		chunk.CLOSE_UPVALUE: chunk.NoOperand,
	}
	for op, want := range cases {
		require.Equal(t, want, chunk.Width(op), "opcode %s", op)
	}
}
