package value

// ObjString is an interned, immutable byte string (§3.2). Identity is
// canonical for its byte content across the whole runtime: two ObjStrings
// with equal Bytes are always the same heap object (§4.2). Construction
// (interning) is the VM's responsibility, not this package's — see
// lang/machine's internString, through which every *ObjString the running
// program sees is produced.
type ObjString struct {
	Header
	Bytes string
	Hash  uint32
}

var _ Object = (*ObjString)(nil)

// NewString allocates an *ObjString. Callers outside lang/machine should not
// call this directly: every String reaching the running program must come
// from the VM's intern table so identity implies equality (§4.2).
func NewString(bytes string) *ObjString {
	return &ObjString{Header: newHeader(ObjString), Bytes: bytes, Hash: HashString(bytes)}
}

func (s *ObjString) String() string { return s.Bytes }

// fnvOffsetBasis and fnvPrime are the 32-bit FNV-1a constants named in §4.2.
const (
	fnvOffsetBasis uint32 = 2166136261
	fnvPrime       uint32 = 16777619
)

// HashString computes the 32-bit FNV-1a hash of bytes (§4.2).
func HashString(bytes string) uint32 {
	h := fnvOffsetBasis
	for i := 0; i < len(bytes); i++ {
		h ^= uint32(bytes[i])
		h *= fnvPrime
	}
	return h
}
