package machine

import (
	"time"

	"github.com/mna/ghost/lang/value"
)

// defineNative installs a host-provided function as a global, the same
// bootstrap clox performs for clock/etc. at VM start-up (§6.3).
func (vm *VM) defineNative(name string, fn value.NativeFunc) {
	native := value.NewNativeFn(name, fn)
	vm.track(native)
	vm.globals.Set(vm.internString(name), value.Obj(native))
}

// nativeClock implements the one native function the core ships (§6.3):
// seconds elapsed since an arbitrary epoch, for benchmarking Ghost scripts.
func nativeClock(args []value.Value) (value.Value, error) {
	return value.Number(float64(time.Now().UnixNano()) / 1e9), nil
}
