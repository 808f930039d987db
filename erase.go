package thinptr

import "unsafe"

// Erasure recovers the typed address of a pointee from its erased form.
//
// Unerase is address conversion only. Implementations must not read or write
// through the pointer and must not assume the caller has re-established any
// aliasing rules yet. The Raw must address a valid, initialized T; that is a
// caller obligation, not something Unerase can check.
//
// Identity covers every fixed-size pointee. A pointee whose layout depends
// on out-of-line metadata (a stored length, for example) supplies its own
// Erasure that reconstructs the metadata from the allocation itself; no
// such implementation is built in.
type Erasure[T any] interface {
	Unerase(Raw) *T
}

// Identity is the default erasure for fixed-size pointees: the opaque
// pointer already equals the typed address, so recovery is a cast.
type Identity[T any] struct{}

// Unerase returns the Raw reinterpreted as a *T.
func (Identity[T]) Unerase(r Raw) *T {
	return (*T)(unsafe.Pointer(r))
}
