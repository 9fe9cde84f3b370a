package machine

import (
	"encoding/binary"
	"fmt"

	"github.com/mna/ghost/lang/chunk"
	"github.com/mna/ghost/lang/value"
)

// run executes instructions starting at the top call frame until it returns
// to an empty frame stack or hits an error. The labeled loop, the
// fr.ip-tracks-into-a-local-var-per-iteration shape, and "any opcode that
// can fail just returns the error and lets the caller unwind" come from
// nenuphar's lang/machine/machine.go run function; the opcode set itself is
// Ghost's own (lang/chunk), so the switch body is written fresh rather than
// ported case-by-case.
func (vm *VM) run() (Result, error) {
loop:
	for {
		vm.stepsTaken++
		if vm.MaxSteps > 0 && vm.stepsTaken > vm.MaxSteps {
			return RuntimeError, vm.runtimeError("exceeded maximum step count")
		}

		frame := &vm.frames[len(vm.frames)-1]
		code := frame.Closure.Function.Chunk.Code
		op := chunk.Op(code[frame.ip])
		frame.ip++

		switch op {
		case chunk.CONSTANT:
			idx := vm.readByte(frame)
			vm.push(frame.Closure.Function.Chunk.Constants[idx])

		case chunk.NULL:
			vm.push(value.Nil)
		case chunk.TRUE:
			vm.push(value.Bool(true))
		case chunk.FALSE:
			vm.push(value.Bool(false))
		case chunk.POP:
			vm.pop()

		case chunk.GET_LOCAL:
			slot := vm.readByte(frame)
			vm.push(vm.stack[frame.base+int(slot)])
		case chunk.SET_LOCAL:
			slot := vm.readByte(frame)
			vm.stack[frame.base+int(slot)] = vm.peek(0)

		case chunk.GET_GLOBAL:
			name := vm.readString(frame)
			v, ok := vm.globals.Get(name)
			if !ok {
				return RuntimeError, vm.runtimeError("undefined variable '%s'", name.Bytes)
			}
			vm.push(v)
		case chunk.DEFINE_GLOBAL:
			name := vm.readString(frame)
			vm.globals.Set(name, vm.peek(0))
			vm.pop()
		case chunk.SET_GLOBAL:
			name := vm.readString(frame)
			if vm.globals.Set(name, vm.peek(0)) {
				vm.globals.Delete(name)
				return RuntimeError, vm.runtimeError("undefined variable '%s'", name.Bytes)
			}

		case chunk.GET_UPVALUE:
			slot := vm.readByte(frame)
			up := frame.Closure.Upvalues[slot]
			vm.push(vm.upvalueValue(up))
		case chunk.SET_UPVALUE:
			slot := vm.readByte(frame)
			up := frame.Closure.Upvalues[slot]
			vm.setUpvalueValue(up, vm.peek(0))

		case chunk.GET_PROPERTY:
			if err := vm.getProperty(frame); err != nil {
				return RuntimeError, err
			}
		case chunk.SET_PROPERTY:
			if err := vm.setProperty(frame); err != nil {
				return RuntimeError, err
			}
		case chunk.GET_SUPER:
			if err := vm.getSuper(frame); err != nil {
				return RuntimeError, err
			}

		case chunk.EQUAL:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(a.Equal(b)))
		case chunk.GREATER, chunk.LESS:
			if err := vm.binaryCompare(op); err != nil {
				return RuntimeError, err
			}
		case chunk.ADD:
			if err := vm.add(); err != nil {
				return RuntimeError, err
			}
		case chunk.SUBTRACT, chunk.MULTIPLY, chunk.DIVIDE:
			if err := vm.binaryArith(op); err != nil {
				return RuntimeError, err
			}
		case chunk.NOT:
			vm.push(value.Bool(vm.pop().IsFalsey()))
		case chunk.NEGATE:
			if !vm.peek(0).IsNumber() {
				return RuntimeError, vm.runtimeError("operand must be a number")
			}
			vm.push(value.Number(-vm.pop().AsNumber()))

		case chunk.PRINT:
			fmt.Fprintln(vm.stdout(), vm.pop().String())

		case chunk.JUMP:
			offset := vm.readJump(frame)
			frame.ip += offset
		case chunk.JUMP_IF_FALSE:
			offset := vm.readJump(frame)
			if vm.peek(0).IsFalsey() {
				frame.ip += offset
			}
		case chunk.LOOP:
			offset := vm.readJump(frame)
			frame.ip -= offset

		case chunk.CALL:
			argCount := int(vm.readByte(frame))
			if err := vm.callValue(vm.peek(argCount), argCount); err != nil {
				return RuntimeError, err
			}
		case chunk.INVOKE:
			name := vm.readString(frame)
			argCount := int(vm.readByte(frame))
			if err := vm.invoke(name, argCount); err != nil {
				return RuntimeError, err
			}
		case chunk.SUPER_INVOKE:
			name := vm.readString(frame)
			argCount := int(vm.readByte(frame))
			super := vm.pop()
			if err := vm.invokeFromClass(super.AsObj().(*value.ObjClass), name, argCount); err != nil {
				return RuntimeError, err
			}

		case chunk.CLOSURE:
			idx := vm.readByte(frame)
			fn := frame.Closure.Function.Chunk.Constants[idx].AsObj().(*value.ObjFunction)
			closure := value.NewClosure(fn)
			vm.track(closure)
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := vm.readByte(frame)
				index := vm.readByte(frame)
				if isLocal != 0 {
					closure.Upvalues[i] = vm.captureUpvalue(frame.base + int(index))
				} else {
					closure.Upvalues[i] = frame.Closure.Upvalues[index]
				}
			}
			vm.push(value.Obj(closure))

		case chunk.CLOSE_UPVALUE:
			vm.closeUpvalues(len(vm.stack) - 1)
			vm.pop()

		case chunk.RETURN:
			result := vm.pop()
			vm.closeUpvalues(frame.base)
			vm.frames = vm.frames[:len(vm.frames)-1]
			if len(vm.frames) == 0 {
				vm.pop() // the top-level script closure
				return OK, nil
			}
			vm.stack = vm.stack[:frame.base]
			vm.push(result)

		case chunk.CLASS:
			name := vm.readString(frame)
			class := value.NewClass(name)
			vm.track(class)
			vm.push(value.Obj(class))

		case chunk.INHERIT:
			if err := vm.inherit(); err != nil {
				return RuntimeError, err
			}

		case chunk.METHOD:
			name := vm.readString(frame)
			vm.defineMethod(name)

		case chunk.BUILD_LIST:
			count := vm.readUint16(frame)
			elems := make([]value.Value, count)
			copy(elems, vm.stack[len(vm.stack)-int(count):])
			vm.stack = vm.stack[:len(vm.stack)-int(count)]
			list := value.NewList(elems)
			vm.track(list)
			vm.push(value.Obj(list))

		case chunk.INDEX_SUBSCR:
			if err := vm.indexSubscr(); err != nil {
				return RuntimeError, err
			}
		case chunk.STORE_SUBSCR:
			if err := vm.storeSubscr(); err != nil {
				return RuntimeError, err
			}

		default:
			return RuntimeError, vm.runtimeError("unknown opcode %d", op)
		}

		if len(vm.frames) == 0 {
			break loop
		}
	}
	return OK, nil
}

func (vm *VM) readByte(frame *CallFrame) byte {
	b := frame.Closure.Function.Chunk.Code[frame.ip]
	frame.ip++
	return b
}

func (vm *VM) readUint16(frame *CallFrame) uint16 {
	code := frame.Closure.Function.Chunk.Code
	v := binary.BigEndian.Uint16(code[frame.ip : frame.ip+2])
	frame.ip += 2
	return v
}

func (vm *VM) readJump(frame *CallFrame) int {
	return int(vm.readUint16(frame))
}

func (vm *VM) readString(frame *CallFrame) *value.ObjString {
	idx := vm.readByte(frame)
	return frame.Closure.Function.Chunk.Constants[idx].AsObj().(*value.ObjString)
}

func (vm *VM) upvalueValue(up *value.ObjUpvalue) value.Value {
	if up.Closed {
		return up.Value
	}
	return vm.stack[up.Slot]
}

func (vm *VM) setUpvalueValue(up *value.ObjUpvalue, v value.Value) {
	if up.Closed {
		up.Value = v
	} else {
		vm.stack[up.Slot] = v
	}
}
