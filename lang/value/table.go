package value

// Table is the open-addressed hash table of §3.4: linear probing, keys are
// interned *ObjString pointers, load factor capped at 0.75 before a
// grow-and-rehash to the next power of two, deletions leave tombstones so
// probe sequences stay intact. It is reused for globals, instance fields,
// class methods, and the VM's string-intern set (§2 component 2).
//
// Table is defined alongside Value rather than in its own package so that
// Class/Instance (which each hold a Table) and Table (whose keys and values
// are Value-family types) can refer to each other without an import cycle —
// the same reasoning as Chunk living next to Function.
type Table struct {
	count   int // number of occupied slots: live entries plus tombstones
	entries []entry
}

type entry struct {
	key   *ObjString
	value Value
	// tombstone marks a deleted entry: key is nil but the slot is not empty,
	// so later probes keep walking past it (§3.4).
	tombstone bool
}

const tableMaxLoad = 0.75

// NewTable returns an empty Table.
func NewTable() *Table { return &Table{} }

// Count reports the number of occupied slots: live entries plus the
// tombstones left by deletions since the last grow.
func (t *Table) Count() int { return t.count }

// Get returns the value associated with key, and whether key was present.
func (t *Table) Get(key *ObjString) (Value, bool) {
	if len(t.entries) == 0 {
		return Nil, false
	}
	e := t.find(key)
	if e.key == nil {
		return Nil, false
	}
	return e.value, true
}

// Set stores value under key, growing the table first if needed. It reports
// whether key was newly inserted (true) versus overwriting an existing
// entry (false).
func (t *Table) Set(key *ObjString, val Value) bool {
	if float64(t.count+1) > float64(len(t.entries))*tableMaxLoad {
		t.grow(growCapacity(len(t.entries)))
	}

	e := t.find(key)
	isNew := e.key == nil
	if isNew && !e.tombstone {
		t.count++
	}
	e.key = key
	e.value = val
	e.tombstone = false
	return isNew
}

// Delete removes key from the table, leaving a tombstone in its slot so that
// later probe sequences remain unbroken (§3.4). Reports whether key was
// present.
func (t *Table) Delete(key *ObjString) bool {
	if len(t.entries) == 0 {
		return false
	}
	e := t.find(key)
	if e.key == nil {
		return false
	}
	e.key = nil
	e.value = Bool(true) // tombstone sentinel value, never observed by callers
	e.tombstone = true
	return true
}

// AddAll copies every live entry of src into t (used to seed method tables
// when a class inherits from a superclass).
func (t *Table) AddAll(src *Table) {
	for i := range src.entries {
		e := &src.entries[i]
		if e.key != nil {
			t.Set(e.key, e.value)
		}
	}
}

// Keys returns every live key, in table (not insertion) order.
func (t *Table) Keys() []*ObjString {
	keys := make([]*ObjString, 0, t.count)
	for i := range t.entries {
		if t.entries[i].key != nil {
			keys = append(keys, t.entries[i].key)
		}
	}
	return keys
}

// Entries calls fn for every live (key, value) pair.
func (t *Table) Entries(fn func(key *ObjString, val Value)) {
	for i := range t.entries {
		if t.entries[i].key != nil {
			fn(t.entries[i].key, t.entries[i].value)
		}
	}
}

// FindString looks up an interned string by content rather than by pointer
// identity — the one operation that must exist before the caller has an
// *ObjString to compare by identity, since it's exactly how the VM decides
// whether a byte sequence is already interned (§4.2).
func (t *Table) FindString(bytes string, hash uint32) *ObjString {
	if len(t.entries) == 0 {
		return nil
	}
	mask := uint32(len(t.entries) - 1)
	idx := hash & mask
	for {
		e := &t.entries[idx]
		switch {
		case e.key == nil && !e.tombstone:
			return nil
		case e.key != nil && e.key.Hash == hash && e.key.Bytes == bytes:
			return e.key
		}
		idx = (idx + 1) & mask
	}
}

// DeleteUnmarked removes every entry whose key is not marked, used by the
// collector to keep the string-intern table from being the sole thing
// keeping an otherwise-dead String alive (§4.6 "String-intern weak set").
func (t *Table) DeleteUnmarked() {
	for i := range t.entries {
		e := &t.entries[i]
		if e.key != nil && !IsMarked(e.key) {
			e.key = nil
			e.value = Bool(true)
			e.tombstone = true
		}
	}
}

// find returns the entry key should occupy: either its current slot, the
// first tombstone seen along its probe sequence (so reinsertion reuses it),
// or the first genuinely empty slot if key is absent altogether (§3.4:
// "Lookup stops at an entry that is empty and not a tombstone").
func (t *Table) find(key *ObjString) *entry {
	mask := uint32(len(t.entries) - 1)
	idx := key.Hash & mask
	var tombstone *entry
	for {
		e := &t.entries[idx]
		switch {
		case e.key == nil:
			if !e.tombstone {
				if tombstone != nil {
					return tombstone
				}
				return e
			}
			if tombstone == nil {
				tombstone = e
			}
		case e.key == key:
			return e
		}
		idx = (idx + 1) & mask
	}
}

func (t *Table) grow(newCap int) {
	old := t.entries
	t.entries = make([]entry, newCap)
	t.count = 0
	for i := range old {
		if old[i].key == nil {
			continue
		}
		e := t.find(old[i].key)
		e.key = old[i].key
		e.value = old[i].value
		t.count++
	}
}

func growCapacity(cap int) int {
	if cap < 8 {
		return 8
	}
	return cap * 2
}
