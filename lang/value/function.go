package value

import "fmt"

// ObjFunction is a compiled function: its arity, the number of upvalues its
// closures must allocate, its bytecode Chunk, and an optional name (§3.2).
// The top-level script compiles into an ObjFunction with Arity 0 and an
// empty Name (§4.3 "Output").
type ObjFunction struct {
	Header
	Arity        int
	UpvalueCount int
	Chunk        Chunk
	Name         string
}

var _ Object = (*ObjFunction)(nil)

// NewFunction allocates a fresh, empty ObjFunction.
func NewFunction() *ObjFunction {
	return &ObjFunction{Header: newHeader(ObjFunction)}
}

func (f *ObjFunction) String() string {
	if f.Name == "" {
		return "<script>"
	}
	return fmt.Sprintf("<function %s>", f.Name)
}

// ObjUpvalue is a capture cell (§3.2): Open while its source stack slot is
// still live (Slot indexes the VM's value stack), Closed once hoisted onto
// the heap at scope exit. NextOpen threads every open upvalue into the VM's
// open-upvalue list, ordered by decreasing Slot (§3.2 invariant, §9
// "Open-upvalue sharing").
type ObjUpvalue struct {
	Header
	Closed   bool
	Slot     int   // valid while Closed == false: index into the VM's value stack
	Value    Value // valid while Closed == true
	NextOpen *ObjUpvalue
}

var _ Object = (*ObjUpvalue)(nil)

// NewOpenUpvalue allocates an upvalue open over the given stack slot.
func NewOpenUpvalue(slot int) *ObjUpvalue {
	return &ObjUpvalue{Header: newHeader(ObjUpvalue), Slot: slot}
}

func (u *ObjUpvalue) String() string { return "upvalue" }

// ObjClosure pairs an ObjFunction with its captured upvalues (§3.2): the
// callable value the VM actually executes.
type ObjClosure struct {
	Header
	Function *ObjFunction
	Upvalues []*ObjUpvalue // len(Upvalues) == Function.UpvalueCount (§3.2 invariant)
}

var _ Object = (*ObjClosure)(nil)

// NewClosure allocates a closure over fn with freshly nil-populated
// upvalues; the VM fills each slot as CLOSURE's operand pairs are processed.
func NewClosure(fn *ObjFunction) *ObjClosure {
	return &ObjClosure{
		Header:   newHeader(ObjClosure),
		Function: fn,
		Upvalues: make([]*ObjUpvalue, fn.UpvalueCount),
	}
}

func (c *ObjClosure) String() string { return c.Function.String() }
