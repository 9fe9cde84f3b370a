package value

// ObjList is Ghost's only built-in collection: a dynamic array of Value,
// built by BUILD_LIST, read by INDEX_SUBSCR and mutated in place by
// STORE_SUBSCR (§6.2). Grounded in the teacher's Indexable/HasSetIndex array shape
// (lang/types/array.go), adapted from a Go-interface wrapper over a slice to
// a heap Object struct field, the same translation every other kind in this
// package applies.
type ObjList struct {
	Header
	Elems []Value
}

var _ Object = (*ObjList)(nil)

// NewList allocates a list initialized with elems (the slice is taken by
// reference, not copied — the VM constructs it fresh per BUILD_LIST).
func NewList(elems []Value) *ObjList {
	return &ObjList{Header: newHeader(ObjList), Elems: elems}
}

func (l *ObjList) String() string {
	s := "["
	for i, e := range l.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "]"
}

// Len reports the number of elements.
func (l *ObjList) Len() int { return len(l.Elems) }

// Index returns the element at i, which must satisfy 0 <= i < Len().
func (l *ObjList) Index(i int) Value { return l.Elems[i] }

// SetIndex assigns v to the element at i, which must satisfy 0 <= i < Len().
func (l *ObjList) SetIndex(i int, v Value) { l.Elems[i] = v }

// Append grows the list by one element.
func (l *ObjList) Append(v Value) { l.Elems = append(l.Elems, v) }
