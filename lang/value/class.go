package value

import "fmt"

// ObjClass is a user-defined class: a name and a method table mapping
// interned method names to Closures (§3.2 invariant: every Class.methods
// value is a Closure).
type ObjClass struct {
	Header
	Name    *ObjString
	Methods *Table
}

var _ Object = (*ObjClass)(nil)

// NewClass allocates an empty class named name.
func NewClass(name *ObjString) *ObjClass {
	return &ObjClass{Header: newHeader(ObjClass), Name: name, Methods: NewTable()}
}

func (c *ObjClass) String() string { return fmt.Sprintf("<class %s>", c.Name.Bytes) }

// ObjInstance is an instance of an ObjClass, carrying its own field table
// separate from its class's (shared) method table.
type ObjInstance struct {
	Header
	Class  *ObjClass
	Fields *Table
}

var _ Object = (*ObjInstance)(nil)

// NewInstance allocates a field-less instance of class.
func NewInstance(class *ObjClass) *ObjInstance {
	return &ObjInstance{Header: newHeader(ObjInstance), Class: class, Fields: NewTable()}
}

func (i *ObjInstance) String() string { return fmt.Sprintf("<%s instance>", i.Class.Name.Bytes) }

// ObjBoundMethod pairs a receiver value with a method Closure, so that a
// later call re-binds `this` to Receiver (§3.2, glossary).
type ObjBoundMethod struct {
	Header
	Receiver Value
	Method   *ObjClosure
}

var _ Object = (*ObjBoundMethod)(nil)

// NewBoundMethod allocates a bound method.
func NewBoundMethod(receiver Value, method *ObjClosure) *ObjBoundMethod {
	return &ObjBoundMethod{Header: newHeader(ObjBoundMethod), Receiver: receiver, Method: method}
}

func (b *ObjBoundMethod) String() string { return b.Method.String() }
