package thinptr

// Handle is the erasable-handle contract. It is a self-referential generic
// constraint: a handle kind P implements Handle[P] with value-receiver
// methods, so FromRaw and the other reconstruction paths can be reached
// through P's zero value.
//
// IntoRaw consumes the handle's ownership without running its release
// logic; the returned Raw now carries that ownership implicitly. For
// non-owning kinds it is address-taking only.
//
// FromRaw reconstructs a handle owning exactly the unit the Raw
// represented. The Raw must have come from IntoRaw or CloneRaw of the same
// handle kind, and the unit must not have been consumed already. This is a
// caller-verified contract; nothing is checked at runtime.
//
// Release consumes the handle's ownership unit: frees owned storage,
// decrements a shared count, or does nothing for borrow kinds.
//
// If the kind also implements Deref, the address produced by IntoRaw must
// stay valid for read-through access for the handle's entire remaining
// lifetime, under the kind's own aliasing rules.
type Handle[P any] interface {
	IntoRaw() Raw
	FromRaw(Raw) P
	Release()
}

// CloneFromRaw is implemented by handle kinds that can duplicate an
// ownership unit given only the erased pointer. CloneRaw's argument must
// have come from IntoRaw or a prior CloneRaw of the same kind; the returned
// Raw is a new, independent unit that must itself be consumed exactly once.
//
// Kinds without genuine duplication semantics simply do not implement this
// interface, which removes Clone and CopyThin support for them at compile
// time.
type CloneFromRaw[P any] interface {
	Handle[P]
	CloneRaw(Raw) Raw
}

// Trivial marks handle kinds whose release does nothing and whose
// duplication is plain copying of the erased word. Borrow kinds and the
// raw wrappers qualify; owning kinds never do.
//
// The interface is sealed: embed TrivialHandle to implement it.
type Trivial interface {
	trivialHandle()
}

// TrivialHandle marks a handle kind as Trivial when embedded. It occupies
// no storage.
type TrivialHandle struct{}

func (TrivialHandle) trivialHandle() {}

// Copyable constrains handle kinds that are simultaneously erasable and
// trivially duplicable. Every bitwise copy of such a handle is a legitimate
// independent handle, so CopyThin exposes no manual duplication step.
type Copyable[P any] interface {
	CloneFromRaw[P]
	Trivial
}

// Deref is implemented by handle kinds that expose read/write-through
// access to their pointee. DerefRaw recovers the typed address from the
// erased form; the Raw must represent a unit that is still live. Go draws
// no type-level line between shared and exclusive access, so exclusivity
// is part of the handle kind's documented contract rather than the
// signature.
type Deref[T any] interface {
	DerefRaw(Raw) *T
}
