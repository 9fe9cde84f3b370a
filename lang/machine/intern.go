package machine

import "github.com/mna/ghost/lang/value"

// internString returns the single interned ObjString with these bytes,
// allocating and registering a new one only if none exists yet (§4.2). Every
// string-producing VM operation (string constants loaded from a chunk,
// runtime concatenation, property names) must go through this so that
// value.Value.Equal's identity comparison is also content comparison for
// strings.
func (vm *VM) internString(s string) *value.ObjString {
	hash := value.HashString(s)
	if existing := vm.strings.FindString(s, hash); existing != nil {
		return existing
	}
	str := value.NewString(s)
	vm.track(str)
	vm.strings.Set(str, value.Nil)
	return str
}

// track registers obj in the VM's allocation list and accounts for its
// approximate size against the next collection threshold (§4.1, §9 "GC
// trigger heuristic").
func (vm *VM) track(obj value.Object) {
	value.SetNext(obj, vm.objects)
	vm.objects = obj
	vm.bytesAllocated += objectSize(obj)
	if vm.bytesAllocated > vm.nextGC {
		vm.collectGarbage()
	}
}

// objectSize is a coarse per-kind size estimate used only to drive the GC
// growth heuristic (§9); it need not be exact, only representative of
// relative allocation pressure.
func objectSize(obj value.Object) int {
	switch obj.Kind() {
	case value.ObjString:
		return 32
	case value.ObjFunction:
		return 64
	case value.ObjClosure:
		return 48
	case value.ObjUpvalue:
		return 24
	case value.ObjClass:
		return 48
	case value.ObjInstance:
		return 48
	case value.ObjBoundMethod:
		return 24
	case value.ObjList:
		return 32
	case value.ObjNativeFn, value.ObjNativeClass:
		return 24
	default:
		return 16
	}
}
