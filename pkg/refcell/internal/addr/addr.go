// Package addr is the unsafe boundary of refcell.
//
// Every pointer reinterpretation the library performs happens in this file,
// so the aliasing and lifetime obligations can be audited at a single site.
// No other package in the module imports unsafe.
package addr

import "unsafe"

// Addr is the captured address of a registered value. The zero Addr captures
// nothing.
//
// An Addr carries no type or lifetime information. Reinterpreting it with
// Deref is sound only while the original pointee is still alive and the type
// parameter matches the one used at capture; neither can be checked here.
type Addr struct {
	p unsafe.Pointer
}

// Of captures the address of p. Of of a nil pointer returns the zero Addr.
//
// The capture is an unsafe.Pointer rather than a bare integer so the runtime
// can still see the reference: goroutine stacks move, and an integer address
// would silently dangle after a stack growth.
func Of[T any](p *T) Addr {
	return Addr{p: unsafe.Pointer(p)}
}

// Deref reinterprets a captured address as a live *T. Deref of the zero Addr
// returns nil.
func Deref[T any](a Addr) *T {
	return (*T)(a.p)
}

// IsZero reports whether a captures no address.
func (a Addr) IsZero() bool {
	return a.p == nil
}
