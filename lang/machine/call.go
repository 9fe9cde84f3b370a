package machine

import "github.com/mna/ghost/lang/value"

// callValue dispatches a CALL instruction's callee to the right kind of
// invocation (§5 "Calling convention"): a Closure pushes a new CallFrame, a
// NativeFn runs immediately, a Class constructs an instance (and chains into
// init if defined), and a BoundMethod rebinds receiver then calls through.
// Anything else is a runtime error: Ghost values are not callable by default.
func (vm *VM) callValue(callee value.Value, argCount int) error {
	if !callee.IsObj() {
		return vm.runtimeError("can only call functions and classes")
	}

	switch obj := callee.AsObj().(type) {
	case *value.ObjClosure:
		return vm.call(obj, argCount)
	case *value.ObjNativeFn:
		return vm.callNative(obj, argCount)
	case *value.ObjClass:
		return vm.instantiate(obj, argCount)
	case *value.ObjBoundMethod:
		vm.stack[len(vm.stack)-argCount-1] = obj.Receiver
		return vm.call(obj.Method, argCount)
	default:
		return vm.runtimeError("can only call functions and classes")
	}
}

func (vm *VM) call(closure *value.ObjClosure, argCount int) error {
	if argCount != closure.Function.Arity {
		return vm.runtimeError("expected %d arguments but got %d", closure.Function.Arity, argCount)
	}
	if len(vm.frames) == framesMax {
		return vm.runtimeError("stack overflow")
	}

	vm.frames = append(vm.frames, CallFrame{
		Closure: closure,
		base:    len(vm.stack) - argCount - 1,
	})
	return nil
}

func (vm *VM) callNative(native *value.ObjNativeFn, argCount int) error {
	args := vm.stack[len(vm.stack)-argCount:]
	result, err := native.Fn(args)
	if err != nil {
		return vm.runtimeError("%s", err)
	}
	vm.stack = vm.stack[:len(vm.stack)-argCount-1]
	vm.push(result)
	return nil
}

// instantiate implements CALL on a class value: allocate a fresh instance in
// place of the class on the stack, then call `init` with the same arguments
// if the class (or an ancestor) defines one (§3.2 "Classes", §6 "OP_CALL").
func (vm *VM) instantiate(class *value.ObjClass, argCount int) error {
	inst := value.NewInstance(class)
	vm.track(inst)
	vm.stack[len(vm.stack)-argCount-1] = value.Obj(inst)

	if initializer, ok := class.Methods.Get(vm.initString); ok {
		return vm.call(initializer.AsObj().(*value.ObjClosure), argCount)
	}
	if argCount != 0 {
		return vm.runtimeError("expected 0 arguments but got %d", argCount)
	}
	return nil
}

// bindMethod resolves name on class into a BoundMethod closing over
// receiver, used by GET_PROPERTY when the property is not an instance field
// (§3.2 "Method binding").
func (vm *VM) bindMethod(class *value.ObjClass, receiver value.Value, name *value.ObjString) error {
	method, ok := class.Methods.Get(name)
	if !ok {
		return vm.runtimeError("undefined property '%s'", name.Bytes)
	}
	bound := value.NewBoundMethod(receiver, method.AsObj().(*value.ObjClosure))
	vm.track(bound)
	vm.pop() // the instance
	vm.push(value.Obj(bound))
	return nil
}

// invoke fuses GET_PROPERTY+CALL into one dispatch (§6.2 OP_INVOKE): it
// looks up name on the receiver (an instance field shadows a method, exactly
// as a plain property access would) and calls it directly without
// allocating an intermediate BoundMethod.
func (vm *VM) invoke(name *value.ObjString, argCount int) error {
	receiver := vm.peek(argCount)
	if !receiver.IsObj() {
		return vm.runtimeError("only instances have methods")
	}
	inst, ok := receiver.AsObj().(*value.ObjInstance)
	if !ok {
		return vm.runtimeError("only instances have methods")
	}

	if field, ok := inst.Fields.Get(name); ok {
		vm.stack[len(vm.stack)-argCount-1] = field
		return vm.callValue(field, argCount)
	}
	return vm.invokeFromClass(inst.Class, name, argCount)
}

func (vm *VM) invokeFromClass(class *value.ObjClass, name *value.ObjString, argCount int) error {
	method, ok := class.Methods.Get(name)
	if !ok {
		return vm.runtimeError("undefined property '%s'", name.Bytes)
	}
	return vm.call(method.AsObj().(*value.ObjClosure), argCount)
}
