package machine

import "github.com/mna/ghost/lang/value"

// Compiler is the interface the VM needs from lang/compiler, kept narrow so
// that machine does not import compiler directly (compiler already imports
// value and chunk; machine importing compiler too would be fine, but
// expressing the dependency as a function value here keeps Interpret
// testable with a stub compiler, the same decoupling nenuphar's
// RunProgram achieves by accepting an already-compiled *compiler.Program
// rather than source text).
type Compiler func(source string) (*value.ObjFunction, error)

// Interpret compiles source with compile and runs it to completion (§5
// "Interpret"). The top-level function is wrapped in a Closure exactly like
// any other callable, so the script ends through the same RETURN code path
// as any other function, on its implicit final RETURN.
func (vm *VM) Interpret(source string, compile Compiler) (Result, error) {
	fn, err := compile(source)
	if err != nil {
		return CompileError, err
	}

	// The compiler has no VM to intern strings against while it runs, so
	// every string constant it produced is its own one-off ObjString.
	// Table lookups (globals, properties) key on pointer identity (§4.2), so
	// those constants must be folded into the VM's intern table before any
	// code runs, or two chunks' constants for the same name would never
	// compare equal.
	vm.internFunctionConstants(fn, make(map[*value.ObjFunction]bool))

	vm.track(fn)
	closure := value.NewClosure(fn)
	vm.track(closure)
	vm.push(value.Obj(closure))
	if err := vm.call(closure, 0); err != nil {
		return RuntimeError, err
	}

	return vm.run()
}

// internFunctionConstants walks fn's constant pool, replacing every string
// constant with the VM's canonical interned pointer and recursing into any
// nested ObjFunction constants (one per `function` literal compiled inside
// fn). visited guards against revisiting the same function twice should a
// nested function ever appear more than once in a pool (it doesn't today,
// but costs nothing to guard against).
func (vm *VM) internFunctionConstants(fn *value.ObjFunction, visited map[*value.ObjFunction]bool) {
	if visited[fn] {
		return
	}
	visited[fn] = true

	for i, c := range fn.Chunk.Constants {
		switch {
		case c.IsObj() && c.ObjKind() == value.ObjString:
			s := c.AsObj().(*value.ObjString)
			fn.Chunk.Constants[i] = value.Obj(vm.internString(s.Bytes))
		case c.IsObj() && c.ObjKind() == value.ObjFunction:
			vm.internFunctionConstants(c.AsObj().(*value.ObjFunction), visited)
		}
	}
}
