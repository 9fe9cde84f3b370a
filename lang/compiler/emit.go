package compiler

import (
	"encoding/binary"

	"github.com/mna/ghost/lang/chunk"
	"github.com/mna/ghost/lang/value"
)

func (p *parser) emitByte(b byte) {
	p.currentChunk().Write(b, p.previous.Line)
}

func (p *parser) emitBytes(a, b byte) {
	p.emitByte(a)
	p.emitByte(b)
}

func (p *parser) emitConstant(v value.Value) {
	p.emitBytes(byte(chunk.CONSTANT), p.makeConstant(v))
}

// makeConstant adds v to the current function's constant pool, deduplicating
// repeated string literals against the per-function swiss.Map built up in
// funcCompiler.stringConsts (§4.3 "Constant dedup") and repeated number
// literals by a short linear scan (constant pools are small; a hash map
// buys nothing there). Every other constant kind (functions nested via
// CLOSURE) is never a duplicate by construction, so it's just appended.
func (p *parser) makeConstant(v value.Value) byte {
	if v.IsNumber() {
		for i, c := range p.currentChunk().Constants {
			if c.IsNumber() && c.Equal(v) {
				return byte(i)
			}
		}
	}
	if str, ok := stringObj(v); ok {
		if idx, ok := p.fc.stringConsts.Get(str.Bytes); ok {
			return idx
		}
		idx := p.addConstant(v)
		p.fc.stringConsts.Put(str.Bytes, idx)
		return idx
	}
	return p.addConstant(v)
}

func (p *parser) addConstant(v value.Value) byte {
	idx := p.currentChunk().AddConstant(v)
	if idx > 255 {
		p.error("too many constants in one chunk")
		return 0
	}
	return byte(idx)
}

// stringValue wraps s as a Value for the constant pool. It is not interned
// here (the compiler has no VM to intern against); the VM folds every
// string constant into its intern table before running (§4.2, see
// machine.internFunctionConstants).
func stringValue(s string) value.Value { return value.Obj(value.NewString(s)) }

func stringObj(v value.Value) (*value.ObjString, bool) {
	if !v.IsObj() || v.ObjKind() != value.ObjString {
		return nil, false
	}
	return v.AsObj().(*value.ObjString), true
}

// emitJump writes op followed by a two-byte placeholder offset, returning
// the offset of the placeholder's first byte for patchJump to fill in once
// the jump target is known (§6.2 "forward jump patching").
func (p *parser) emitJump(op chunk.Op) int {
	p.emitByte(byte(op))
	p.emitByte(0xff)
	p.emitByte(0xff)
	return len(p.currentChunk().Code) - 2
}

func (p *parser) patchJump(offset int) {
	jump := len(p.currentChunk().Code) - offset - 2
	if jump > 0xffff {
		p.error("too much code to jump over")
		return
	}
	code := p.currentChunk().Code
	binary.BigEndian.PutUint16(code[offset:offset+2], uint16(jump))
}

// emitLoop writes a LOOP instruction jumping back to loopStart (§6.2
// "OP_LOOP").
func (p *parser) emitLoop(loopStart int) {
	p.emitByte(byte(chunk.LOOP))
	offset := len(p.currentChunk().Code) - loopStart + 2
	if offset > 0xffff {
		p.error("loop body too large")
	}
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(offset))
	p.emitByte(b[0])
	p.emitByte(b[1])
}
