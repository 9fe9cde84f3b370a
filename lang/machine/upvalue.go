package machine

import "github.com/mna/ghost/lang/value"

// captureUpvalue returns the open upvalue over absolute stack slot, reusing
// an existing one if the compiler already emitted a capture for the same
// slot (§3.2 invariant: at most one open upvalue per live stack slot). The
// VM's open-upvalue list is kept sorted by decreasing slot so the scan below
// can stop as soon as it passes the target.
func (vm *VM) captureUpvalue(slot int) *value.ObjUpvalue {
	var prev *value.ObjUpvalue
	up := vm.openUpvalues
	for up != nil && up.Slot > slot {
		prev = up
		up = up.NextOpen
	}
	if up != nil && up.Slot == slot {
		return up
	}

	created := value.NewOpenUpvalue(slot)
	vm.track(created)
	created.NextOpen = up
	if prev == nil {
		vm.openUpvalues = created
	} else {
		prev.NextOpen = created
	}
	return created
}

// closeUpvalues hoists every open upvalue at or above absolute stack slot
// onto the heap, copying the stack value into the upvalue itself (§3.2 "Open
// vs closed"), then removes them from the open list. Called when a block
// scope or a call frame exits and its locals are about to be popped.
func (vm *VM) closeUpvalues(slot int) {
	for vm.openUpvalues != nil && vm.openUpvalues.Slot >= slot {
		up := vm.openUpvalues
		up.Value = vm.stack[up.Slot]
		up.Closed = true
		vm.openUpvalues = up.NextOpen
	}
}
