package machine

import "github.com/mna/ghost/lang/value"

// getProperty implements GET_PROPERTY: an instance field shadows a method of
// the same name (§3.2 "Property resolution order"); anything else that is
// not an ObjInstance cannot have properties.
func (vm *VM) getProperty(frame *CallFrame) error {
	name := vm.readString(frame)
	receiver := vm.peek(0)
	if !receiver.IsObj() {
		return vm.runtimeError("only instances have properties")
	}
	inst, ok := receiver.AsObj().(*value.ObjInstance)
	if !ok {
		return vm.runtimeError("only instances have properties")
	}

	if v, ok := inst.Fields.Get(name); ok {
		vm.pop()
		vm.push(v)
		return nil
	}
	return vm.bindMethod(inst.Class, receiver, name)
}

// setProperty implements SET_PROPERTY: assigning a field always creates or
// overwrites it on the instance, never on its class (§3.2 "Fields are
// per-instance").
func (vm *VM) setProperty(frame *CallFrame) error {
	name := vm.readString(frame)
	receiver := vm.peek(1)
	inst, ok := receiver.AsObj().(*value.ObjInstance)
	if !receiver.IsObj() || !ok {
		return vm.runtimeError("only instances have fields")
	}

	v := vm.pop()
	inst.Fields.Set(name, v)
	vm.pop() // the instance
	vm.push(v)
	return nil
}

// getSuper implements GET_SUPER: resolve name on the superclass (never on
// the instance's own, possibly-overriding, class) and bind it to the
// receiver still sitting below the superclass on the stack (§6.2
// "OP_GET_SUPER").
func (vm *VM) getSuper(frame *CallFrame) error {
	name := vm.readString(frame)
	super := vm.pop().AsObj().(*value.ObjClass)
	receiver := vm.peek(0)
	return vm.bindMethod(super, receiver, name)
}

// inherit implements INHERIT: copy every method of the superclass into the
// subclass's own method table (§3.2 "Inheritance"), so overriding a method
// in the subclass later (via METHOD) simply replaces the copied entry.
func (vm *VM) inherit() error {
	superVal := vm.peek(1)
	superclass, ok := superVal.AsObj().(*value.ObjClass)
	if !superVal.IsObj() || !ok {
		return vm.runtimeError("superclass must be a class")
	}
	subclass := vm.peek(0).AsObj().(*value.ObjClass)
	subclass.Methods.AddAll(superclass.Methods)
	vm.pop() // pop the subclass; the superclass stays as the hidden "super" local
	return nil
}

// defineMethod implements METHOD: the closure just compiled sits on top of
// the class being built (§4.3 "Class bodies compile method-by-method").
func (vm *VM) defineMethod(name *value.ObjString) {
	method := vm.pop()
	class := vm.peek(0).AsObj().(*value.ObjClass)
	class.Methods.Set(name, method)
}

// indexSubscr implements INDEX_SUBSCR on Ghost's one built-in collection
// (§6.3 "Supplemented: list subscript").
func (vm *VM) indexSubscr() error {
	idxVal := vm.pop()
	recv := vm.pop()
	list, ok := recv.AsObj().(*value.ObjList)
	if !recv.IsObj() || !ok {
		return vm.runtimeError("only lists support indexing")
	}
	if !idxVal.IsNumber() {
		return vm.runtimeError("list index must be a number")
	}
	i := int(idxVal.AsNumber())
	if i < 0 || i >= list.Len() {
		return vm.runtimeError("list index out of range")
	}
	vm.push(list.Index(i))
	return nil
}

// storeSubscr implements STORE_SUBSCR.
func (vm *VM) storeSubscr() error {
	v := vm.pop()
	idxVal := vm.pop()
	recv := vm.pop()
	list, ok := recv.AsObj().(*value.ObjList)
	if !recv.IsObj() || !ok {
		return vm.runtimeError("only lists support indexing")
	}
	if !idxVal.IsNumber() {
		return vm.runtimeError("list index must be a number")
	}
	i := int(idxVal.AsNumber())
	if i < 0 || i >= list.Len() {
		return vm.runtimeError("list index out of range")
	}
	list.SetIndex(i, v)
	vm.push(v)
	return nil
}
