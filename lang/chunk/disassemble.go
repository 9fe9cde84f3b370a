package chunk

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mna/ghost/lang/value"
)

// Disassemble writes a human-readable listing of c to w, labeled name (the
// function's name, or "<script>" for the top-level chunk). Grounded in the
// write/writef buffered-output shape of github.com/mna/nenuphar's
// lang/compiler/asm.go Dasm, adapted from that textual-assembler round-trip
// format to clox's simpler one-way disassembly trace (bytecodebook ch. 14):
// one line per instruction, offset-prefixed, operands resolved against the
// chunk's constant pool and printed inline.
func Disassemble(w io.Writer, c *value.Chunk, name string) error {
	d := &disasm{w: w, c: c}
	d.writef("== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		next, err := d.instruction(offset)
		if err != nil {
			return err
		}
		offset = next
	}
	return d.err
}

type disasm struct {
	w   io.Writer
	c   *value.Chunk
	err error
}

func (d *disasm) instruction(offset int) (int, error) {
	if d.err != nil {
		return offset, d.err
	}

	d.writef("%04d ", offset)
	if offset > 0 && d.c.Lines[offset] == d.c.Lines[offset-1] {
		d.writef("   | ")
	} else {
		d.writef("%4d ", d.c.Lines[offset])
	}

	op := Op(d.c.Code[offset])
	switch Width(op) {
	case NoOperand:
		d.writef("%s\n", op)
		return offset + 1, d.err
	case ByteOperand:
		return d.byteInstruction(op, offset)
	case JumpOperand:
		return d.jumpInstruction(op, offset)
	case NameAndArgOperand:
		return d.nameAndArgInstruction(op, offset)
	case ClosureOperand:
		return d.closureInstruction(offset)
	case ListOperand:
		return d.listInstruction(op, offset)
	default:
		d.err = fmt.Errorf("chunk: unknown operand width for opcode %s at offset %d", op, offset)
		return offset, d.err
	}
}

func (d *disasm) byteInstruction(op Op, offset int) (int, error) {
	if offset+1 >= len(d.c.Code) {
		d.err = fmt.Errorf("chunk: truncated operand for %s at offset %d", op, offset)
		return offset, d.err
	}
	slot := d.c.Code[offset+1]
	switch op {
	case CONSTANT, DEFINE_GLOBAL, GET_GLOBAL, SET_GLOBAL, GET_PROPERTY, SET_PROPERTY, GET_SUPER, CLASS, METHOD:
		d.writef("%-16s %4d '%s'\n", op, slot, d.constant(int(slot)))
	default:
		d.writef("%-16s %4d\n", op, slot)
	}
	return offset + 2, d.err
}

func (d *disasm) jumpInstruction(op Op, offset int) (int, error) {
	if offset+2 >= len(d.c.Code) {
		d.err = fmt.Errorf("chunk: truncated operand for %s at offset %d", op, offset)
		return offset, d.err
	}
	jump := int(binary.BigEndian.Uint16(d.c.Code[offset+1 : offset+3]))
	target := offset + 3
	if op == LOOP {
		target -= jump
	} else {
		target += jump
	}
	d.writef("%-16s %4d -> %d\n", op, offset, target)
	return offset + 3, d.err
}

func (d *disasm) nameAndArgInstruction(op Op, offset int) (int, error) {
	if offset+2 >= len(d.c.Code) {
		d.err = fmt.Errorf("chunk: truncated operand for %s at offset %d", op, offset)
		return offset, d.err
	}
	constant := d.c.Code[offset+1]
	argCount := d.c.Code[offset+2]
	d.writef("%-16s (%d args) %4d '%s'\n", op, argCount, constant, d.constant(int(constant)))
	return offset + 3, d.err
}

func (d *disasm) closureInstruction(offset int) (int, error) {
	offset++
	constant := d.c.Code[offset]
	offset++
	d.writef("%-16s %4d '%s'\n", CLOSURE, constant, d.constant(int(constant)))

	fn, ok := d.c.Constants[constant].AsObj().(*value.ObjFunction)
	if !ok {
		d.err = fmt.Errorf("chunk: CLOSURE constant %d is not a function", constant)
		return offset, d.err
	}
	for i := 0; i < fn.UpvalueCount; i++ {
		isLocal := d.c.Code[offset]
		index := d.c.Code[offset+1]
		offset += 2
		kind := "upvalue"
		if isLocal != 0 {
			kind = "local"
		}
		d.writef("%04d      |                     %s %d\n", offset-2, kind, index)
	}
	return offset, d.err
}

func (d *disasm) listInstruction(op Op, offset int) (int, error) {
	if offset+2 >= len(d.c.Code) {
		d.err = fmt.Errorf("chunk: truncated operand for %s at offset %d", op, offset)
		return offset, d.err
	}
	count := binary.BigEndian.Uint16(d.c.Code[offset+1 : offset+3])
	d.writef("%-16s %4d\n", op, count)
	return offset + 3, d.err
}

func (d *disasm) constant(index int) string {
	if index < 0 || index >= len(d.c.Constants) {
		return "<invalid constant>"
	}
	return d.c.Constants[index].String()
}

func (d *disasm) writef(format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}
