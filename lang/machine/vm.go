// Package machine implements the virtual machine that executes Ghost's
// compiled bytecode and owns the runtime representation of every heap value
// reachable from it.
//
// The dispatch loop and the thread-configuration knobs (Stdout/Stderr,
// MaxSteps) are adapted from
// github.com/mna/nenuphar's lang/machine/machine.go and thread.go. What does
// not carry over is that machine's Module/Funcode/Tuple object model: Ghost
// has no modules, tuples or iterators, its Value is value.Value (a tagged
// struct, not an interface), and its call frames are closures-over-slots
// rather than Funcode-over-locals, so the loop body itself is written fresh
// against lang/chunk's opcode set rather than ported switch-case by
// switch-case.
package machine

import (
	"fmt"
	"io"
	"os"

	"github.com/mna/ghost/lang/value"
)

const framesMax = 255

// CallFrame records one active call to a closure: its return address (ip,
// an index into Closure.Function.Chunk.Code) and the base of its window
// onto the VM's value stack (§3.3, §5).
type CallFrame struct {
	Closure *value.ObjClosure
	ip      int
	base    int // slot 0 of this frame's window on vm.stack
}

// VM is one Ghost execution context. Like nenuphar's Thread, its knobs
// (Stdout/Stderr, MaxSteps) are optional and default to something sane, so
// a zero-value-ish VM built via New is always usable.
type VM struct {
	// Stdout and Stderr receive `print` output and uncaught runtime-error
	// reports, respectively. Default to os.Stdout/os.Stderr when nil.
	Stdout io.Writer
	Stderr io.Writer

	// MaxSteps bounds the number of executed instructions before the VM
	// cancels itself, the same deliberately coarse safety valve as
	// nenuphar's Thread.MaxSteps (§5 "Non-goals" explicitly excludes a
	// fine-grained resource-accounting system, but an unbounded host loop
	// driven by untrusted Ghost source is still worth guarding).
	MaxSteps uint64

	stack  []value.Value
	frames []CallFrame

	globals *value.Table
	strings *value.Table // intern table, §4.2

	openUpvalues *value.ObjUpvalue // linked list ordered by decreasing slot

	objects        value.Object // intrusive linked list of every live allocation, for sweep
	bytesAllocated int
	nextGC         int
	grayStack      []value.Object
	initString     *value.ObjString
	stepsTaken     uint64
}

const (
	gcGrowFactor = 2
	gcMinNextGC  = 1 << 20 // 1 MiB
)

// New creates a ready-to-use VM with its globals populated from natives
// (currently just clock, §6.3 "Supplemented natives").
func New() *VM {
	vm := &VM{
		globals: value.NewTable(),
		strings: value.NewTable(),
		nextGC:  gcMinNextGC,
	}
	vm.initString = vm.internString("init")
	vm.defineNative("clock", nativeClock)
	return vm
}

func (vm *VM) stdout() io.Writer {
	if vm.Stdout != nil {
		return vm.Stdout
	}
	return os.Stdout
}

func (vm *VM) stderr() io.Writer {
	if vm.Stderr != nil {
		return vm.Stderr
	}
	return os.Stderr
}

// Result is the outcome of a completed Interpret call.
type Result int

const (
	// OK means the program ran to completion without error.
	OK Result = iota
	// CompileError means compilation failed; the caller should exit 65 (§7).
	CompileError
	// RuntimeError means an uncaught error was raised while executing;
	// the caller should exit 70 (§7).
	RuntimeError
)

func (vm *VM) push(v value.Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() value.Value {
	n := len(vm.stack) - 1
	v := vm.stack[n]
	vm.stack = vm.stack[:n]
	return v
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[len(vm.stack)-1-distance]
}

func (vm *VM) resetStack() {
	vm.stack = vm.stack[:0]
	vm.frames = vm.frames[:0]
	vm.openUpvalues = nil
}

// runtimeError formats a VM-level error, annotated with the call stack the
// way clox's runtimeError prints a traceback, and returns it for the caller
// to propagate (§5 "errors").
func (vm *VM) runtimeError(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	var trace string
	for i := len(vm.frames) - 1; i >= 0; i-- {
		fr := &vm.frames[i]
		fn := fr.Closure.Function
		line := 0
		if fr.ip-1 >= 0 && fr.ip-1 < len(fn.Chunk.Lines) {
			line = fn.Chunk.Lines[fr.ip-1]
		}
		name := fn.Name
		if name == "" {
			name = "script"
		}
		trace += fmt.Sprintf("\n[line %d] in %s()", line, name)
	}
	vm.resetStack()
	return fmt.Errorf("%s%s", msg, trace)
}
