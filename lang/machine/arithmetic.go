package machine

import (
	"github.com/mna/ghost/lang/chunk"
	"github.com/mna/ghost/lang/value"
)

// add implements ADD, which is overloaded for number addition and string
// concatenation (§6.2 "OP_ADD"); any other operand pairing is a runtime
// error.
func (vm *VM) add() error {
	b, a := vm.peek(0), vm.peek(1)
	switch {
	case a.IsNumber() && b.IsNumber():
		b, a = vm.pop(), vm.pop()
		vm.push(value.Number(a.AsNumber() + b.AsNumber()))
		return nil
	case isString(a) && isString(b):
		b, a = vm.pop(), vm.pop()
		sa, sb := a.AsObj().(*value.ObjString), b.AsObj().(*value.ObjString)
		vm.push(value.Obj(vm.internString(sa.Bytes + sb.Bytes)))
		return nil
	default:
		return vm.runtimeError("operands must be two numbers or two strings")
	}
}

func isString(v value.Value) bool {
	return v.IsObj() && v.ObjKind() == value.ObjString
}

func (vm *VM) binaryArith(op chunk.Op) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("operands must be numbers")
	}
	b, a := vm.pop().AsNumber(), vm.pop().AsNumber()
	switch op {
	case chunk.SUBTRACT:
		vm.push(value.Number(a - b))
	case chunk.MULTIPLY:
		vm.push(value.Number(a * b))
	case chunk.DIVIDE:
		vm.push(value.Number(a / b))
	}
	return nil
}

func (vm *VM) binaryCompare(op chunk.Op) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("operands must be numbers")
	}
	b, a := vm.pop().AsNumber(), vm.pop().AsNumber()
	switch op {
	case chunk.GREATER:
		vm.push(value.Bool(a > b))
	case chunk.LESS:
		vm.push(value.Bool(a < b))
	}
	return nil
}
