package value

import "fmt"

// Kind is the tag of a Value's discriminated union (§3.1).
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObject
)

// Value is the universal tagged union every Ghost runtime primitive
// manipulates: Nil, Bool, Number, or a reference to a heap Object (§3.1).
type Value struct {
	kind   Kind
	b      bool
	number float64
	obj    Object
}

// Nil is the single value of kind KindNil.
var Nil = Value{kind: KindNil}

// Bool returns a Value wrapping b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a Value wrapping n.
func Number(n float64) Value { return Value{kind: KindNumber, number: n} }

// Obj returns a Value wrapping a heap Object. Panics on a nil Object, since
// Nil (the language value) must always be represented by the Nil Value, not
// by an Obj-kind Value wrapping a nil interface.
func Obj(obj Object) Value {
	if obj == nil {
		panic("value.Obj: nil Object")
	}
	return Value{kind: KindObject, obj: obj}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNil() bool  { return v.kind == KindNil }
func (v Value) IsBool() bool { return v.kind == KindBool }
func (v Value) IsNumber() bool {
	return v.kind == KindNumber
}
func (v Value) IsObj() bool { return v.kind == KindObject }

// AsBool returns the wrapped bool. The caller must have checked IsBool.
func (v Value) AsBool() bool { return v.b }

// AsNumber returns the wrapped float64. The caller must have checked
// IsNumber.
func (v Value) AsNumber() float64 { return v.number }

// AsObj returns the wrapped Object. The caller must have checked IsObj.
func (v Value) AsObj() Object { return v.obj }

// ObjKind reports the kind of the wrapped Object; it panics if v does not
// wrap an Object.
func (v Value) ObjKind() ObjKind { return v.obj.Kind() }

// IsFalsey holds for Nil and Bool(false) only (§3.1); every other value,
// including Number(0), is truthy.
func (v Value) IsFalsey() bool {
	return v.kind == KindNil || (v.kind == KindBool && !v.b)
}

// Equal implements the structural/identity equality of §3.1: primitives
// compare by value, Objects compare by reference identity. Since every
// String reaching a Value has gone through the intern table (§4.2), pointer
// identity also implements "equal bytes" for strings.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.number == other.number
	case KindObject:
		return v.obj == other.obj
	default:
		return false
	}
}

// String renders v for the `print` statement and diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.number)
	case KindObject:
		return v.obj.String()
	default:
		return fmt.Sprintf("<invalid value kind %d>", v.kind)
	}
}

// TypeName reports the Ghost-level type name of v, used in runtime error
// messages.
func (v Value) TypeName() string {
	switch v.kind {
	case KindNil:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindObject:
		return v.obj.Kind().String()
	default:
		return "invalid"
	}
}

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", n)
}
