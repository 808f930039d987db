package handles

import (
	"unsafe"

	"github.com/wippyai/thinptr"
)

// Ref is a borrowing reference: a non-owning handle over a pointee that
// outlives it. Erasing a Ref is address-taking only, duplication is
// copying the address, and release does nothing; the aliasing relation
// ends on the last use, not on destruction.
type Ref[T any] struct {
	thinptr.TrivialHandle
	ptr *T
}

// NewRef borrows p.
func NewRef[T any](p *T) Ref[T] {
	return Ref[T]{ptr: p}
}

// Get returns the borrowed address.
func (r Ref[T]) Get() *T { return r.ptr }

func (r Ref[T]) IntoRaw() thinptr.Raw {
	return thinptr.Raw(unsafe.Pointer(r.ptr))
}

func (Ref[T]) FromRaw(raw thinptr.Raw) Ref[T] {
	return Ref[T]{ptr: thinptr.Identity[T]{}.Unerase(raw)}
}

// CloneRaw is identity: a copied address is a legitimate independent
// borrow.
func (Ref[T]) CloneRaw(raw thinptr.Raw) thinptr.Raw { return raw }

// Release does nothing; a borrow owns no storage.
func (Ref[T]) Release() {}

func (Ref[T]) DerefRaw(raw thinptr.Raw) *T {
	return thinptr.Identity[T]{}.Unerase(raw)
}

// MutRef is an exclusive reference: the same mechanics as Ref, with the
// documented obligation that no other access to the pointee happens while
// any handle or wrapper derived from it is in use. Duplication is still
// identity; the duplicates share the exclusivity obligation rather than
// splitting it.
type MutRef[T any] struct {
	thinptr.TrivialHandle
	ptr *T
}

// NewMutRef borrows p exclusively.
func NewMutRef[T any](p *T) MutRef[T] {
	return MutRef[T]{ptr: p}
}

// Get returns the borrowed address.
func (r MutRef[T]) Get() *T { return r.ptr }

func (r MutRef[T]) IntoRaw() thinptr.Raw {
	return thinptr.Raw(unsafe.Pointer(r.ptr))
}

func (MutRef[T]) FromRaw(raw thinptr.Raw) MutRef[T] {
	return MutRef[T]{ptr: thinptr.Identity[T]{}.Unerase(raw)}
}

// CloneRaw is identity.
func (MutRef[T]) CloneRaw(raw thinptr.Raw) thinptr.Raw { return raw }

// Release does nothing.
func (MutRef[T]) Release() {}

func (MutRef[T]) DerefRaw(raw thinptr.Raw) *T {
	return thinptr.Identity[T]{}.Unerase(raw)
}
