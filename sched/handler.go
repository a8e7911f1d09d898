package sched

import "reflect"

// Func is a tick handler. It runs synchronously on the tick path and must
// return before the next tick can be serviced.
type Func func()

// funcKey returns the code pointer used to look a handler up by identity.
//
// Two closures created from the same function literal share a key; use the
// IDs returned at registration to address such entries individually.
func funcKey(fn Func) uintptr {
	if fn == nil {
		return 0
	}
	return reflect.ValueOf(fn).Pointer()
}
