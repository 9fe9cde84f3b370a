// Package value implements the Ghost runtime's value representation: the
// tagged Value union of §3.1 and the heap object kinds of §3.2. Adapted from
// the shape of github.com/mna/nenuphar/lang/machine's small per-kind files
// (float.go, nil.go, tuple.go), generalized from Go-interface dynamic
// dispatch to an explicit, GC-walkable object header, since the collector in
// §4.6 must trace the heap itself rather than ride the host Go GC.
package value

// ObjKind identifies the concrete kind of a heap Object, mirroring the table
// in spec §3.2.
type ObjKind uint8

const (
	ObjString ObjKind = iota
	ObjFunction
	ObjClosure
	ObjUpvalue
	ObjClass
	ObjInstance
	ObjBoundMethod
	ObjNativeClass
	ObjNativeFn
	ObjList
)

func (k ObjKind) String() string {
	if int(k) < len(objKindNames) {
		return objKindNames[k]
	}
	return "unknown"
}

var objKindNames = [...]string{
	ObjString:      "string",
	ObjFunction:    "function",
	ObjClosure:     "closure",
	ObjUpvalue:     "upvalue",
	ObjClass:       "class",
	ObjInstance:    "instance",
	ObjBoundMethod: "bound method",
	ObjNativeClass: "native class",
	ObjNativeFn:    "native function",
	ObjList:        "list",
}

// Header is the fixed header shared by every heap object kind (§3.2): its
// kind tag, the collector's mark bit, and the intrusive "next" pointer that
// threads every live object into the VM's single allocation list. Every
// concrete object type embeds Header by value so that Object is satisfied by
// promotion, the idiomatic Go analogue of C's "first struct field is the
// header" trick.
type Header struct {
	kind   ObjKind
	marked bool
	next   Object
}

// Kind reports the object's concrete kind.
func (h *Header) Kind() ObjKind { return h.kind }

// header is unexported so that Object can only be implemented by types in
// this package that embed Header — the set of heap object kinds is closed,
// per spec §3.2.
func (h *Header) header() *Header { return h }

// Object is any Ghost heap value: strings, functions, closures, upvalues,
// classes, instances, bound methods, native classes, native functions, and
// lists. Every Object is reachable from exactly one link in the VM's
// allocation list (§3.2 invariant).
type Object interface {
	Kind() ObjKind
	header() *Header
	String() string
}

// IsMarked reports whether the collector has marked obj reachable in the
// current cycle.
func IsMarked(obj Object) bool { return obj.header().marked }

// SetMarked sets the collector's mark bit on obj.
func SetMarked(obj Object, marked bool) { obj.header().marked = marked }

// Next returns the next object in the VM's intrusive allocation list.
func Next(obj Object) Object { return obj.header().next }

// SetNext links obj to the next object in the VM's intrusive allocation list.
func SetNext(obj Object, next Object) { obj.header().next = next }

func newHeader(kind ObjKind) Header { return Header{kind: kind} }
