package value

import "fmt"

// NativeFunc is the native-function ABI of §6.3, adapted to idiomatic Go: the
// spec's `NativeFn(vm, argc, args) -> Value` plus an out-of-band
// runtimeError(vm, msg) call becomes a plain Go function returning (Value,
// error); a non-nil error is the runtime-error report, exactly as if
// runtimeError had been called, without requiring a VM handle to do it. The
// function must not retain args past its own return (§5).
type NativeFunc func(args []Value) (Value, error)

// ObjNativeFn wraps a NativeFunc as a callable heap Object.
type ObjNativeFn struct {
	Header
	Name string
	Fn   NativeFunc
}

var _ Object = (*ObjNativeFn)(nil)

// NewNativeFn allocates a native function value named name.
func NewNativeFn(name string, fn NativeFunc) *ObjNativeFn {
	return &ObjNativeFn{Header: newHeader(ObjNativeFn), Name: name, Fn: fn}
}

func (n *ObjNativeFn) String() string { return fmt.Sprintf("<native fn %s>", n.Name) }

// ObjNativeClass is a host-provided class whose methods are NativeFuncs
// rather than Ghost closures (§3.2). Ghost's standard-library modules
// (Assert, IO, List methods) would be built from these, but those modules
// are themselves out of scope (§1) — ObjNativeClass exists so the kind has a
// concrete, testable representation even though the core ships none.
type ObjNativeClass struct {
	Header
	Name    string
	Methods map[string]*ObjNativeFn
}

var _ Object = (*ObjNativeClass)(nil)

// NewNativeClass allocates an empty native class named name.
func NewNativeClass(name string) *ObjNativeClass {
	return &ObjNativeClass{Header: newHeader(ObjNativeClass), Name: name, Methods: map[string]*ObjNativeFn{}}
}

func (n *ObjNativeClass) String() string { return fmt.Sprintf("<native class %s>", n.Name) }
