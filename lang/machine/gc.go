package machine

import "github.com/mna/ghost/lang/value"

// collectGarbage runs one full mark-sweep cycle (§4.6): mark every root,
// trace the gray worklist to black, drop dead strings from the intern
// table before sweeping (so a string kept alive only by the intern table
// itself does not survive), then free every unmarked object and grow the
// next-collection threshold from what's left.
func (vm *VM) collectGarbage() {
	vm.markRoots()
	vm.traceReferences()
	vm.strings.DeleteUnmarked()
	vm.sweep()

	vm.nextGC = vm.bytesAllocated * gcGrowFactor
	if vm.nextGC < gcMinNextGC {
		vm.nextGC = gcMinNextGC
	}
}

func (vm *VM) markRoots() {
	for _, v := range vm.stack {
		vm.markValue(v)
	}
	for i := range vm.frames {
		vm.markObject(vm.frames[i].Closure)
	}
	for up := vm.openUpvalues; up != nil; up = up.NextOpen {
		vm.markObject(up)
	}
	vm.markTable(vm.globals)
	if vm.initString != nil {
		vm.markObject(vm.initString)
	}
}

func (vm *VM) markValue(v value.Value) {
	if v.IsObj() {
		vm.markObject(v.AsObj())
	}
}

func (vm *VM) markTable(t *value.Table) {
	t.Entries(func(key *value.ObjString, val value.Value) {
		vm.markObject(key)
		vm.markValue(val)
	})
}

// markObject marks obj reachable and appends it to the gray worklist unless
// it was already marked (handles cycles) or is a string, which has no
// outgoing references to trace (§4.6 "leaves").
func (vm *VM) markObject(obj value.Object) {
	if obj == nil || value.IsMarked(obj) {
		return
	}
	value.SetMarked(obj, true)
	if obj.Kind() == value.ObjString {
		return
	}
	vm.grayStack = append(vm.grayStack, obj)
}

// traceReferences blackens the gray worklist: pop an object, mark everything
// it references (which may enqueue more gray objects), repeat until empty
// (§4.6 "Trace").
func (vm *VM) traceReferences() {
	for len(vm.grayStack) > 0 {
		n := len(vm.grayStack) - 1
		obj := vm.grayStack[n]
		vm.grayStack = vm.grayStack[:n]
		vm.blacken(obj)
	}
}

func (vm *VM) blacken(obj value.Object) {
	switch o := obj.(type) {
	case *value.ObjFunction:
		for _, c := range o.Chunk.Constants {
			vm.markValue(c)
		}
	case *value.ObjClosure:
		vm.markObject(o.Function)
		for _, up := range o.Upvalues {
			vm.markObject(up)
		}
	case *value.ObjUpvalue:
		if o.Closed {
			vm.markValue(o.Value)
		}
	case *value.ObjClass:
		vm.markObject(o.Name)
		vm.markTable(o.Methods)
	case *value.ObjInstance:
		vm.markObject(o.Class)
		vm.markTable(o.Fields)
	case *value.ObjBoundMethod:
		vm.markValue(o.Receiver)
		vm.markObject(o.Method)
	case *value.ObjList:
		for _, e := range o.Elems {
			vm.markValue(e)
		}
	case *value.ObjNativeClass:
		for _, fn := range o.Methods {
			vm.markObject(fn)
		}
	case *value.ObjString, *value.ObjNativeFn:
		// no outgoing references
	}
}

// sweep walks the intrusive allocation list, freeing (unlinking) every
// object that was not marked this cycle and clearing the mark on every
// survivor for the next cycle (§4.6 "Sweep").
func (vm *VM) sweep() {
	var prev value.Object
	obj := vm.objects
	for obj != nil {
		if value.IsMarked(obj) {
			value.SetMarked(obj, false)
			prev = obj
			obj = value.Next(obj)
			continue
		}

		unreached := obj
		obj = value.Next(obj)
		if prev != nil {
			value.SetNext(prev, obj)
		} else {
			vm.objects = obj
		}
		_ = unreached // Go's own GC reclaims the memory once unreachable
	}
}
