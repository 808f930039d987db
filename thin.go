package thinptr

import "unsafe"

// RawThin is a bare one-word wrapper over the erased form of a handle of
// kind P. The kind exists only at compile time; in memory a RawThin is the
// Raw and nothing else.
//
// RawThin carries no lifecycle. Copying one does not duplicate the
// underlying ownership, and nothing releases the unit automatically; the
// caller decides which copy still represents live ownership.
type RawThin[P Handle[P]] struct {
	TrivialHandle
	ptr unsafe.Pointer
}

// NewRaw erases h into a RawThin. The handle's ownership unit transfers
// into the returned value.
func NewRaw[P Handle[P]](h P) RawThin[P] {
	return RawThin[P]{ptr: unsafe.Pointer(h.IntoRaw())}
}

// IntoInner reconstructs the handle. The caller must still own the unit
// this RawThin represents: reconstructing from a copy whose unit was
// already consumed double-releases it.
func (r RawThin[P]) IntoInner() P {
	var z P
	return z.FromRaw(Raw(r.ptr))
}

// CloneRawThin duplicates the ownership unit through P's own duplication
// logic. The receiver must still represent a live unit.
func CloneRawThin[P CloneFromRaw[P]](r RawThin[P]) RawThin[P] {
	var z P
	return RawThin[P]{ptr: unsafe.Pointer(z.CloneRaw(Raw(r.ptr)))}
}

// IntoRaw returns the stored word. RawThin is itself a handle kind, so
// wrappers can nest.
func (r RawThin[P]) IntoRaw() Raw { return Raw(r.ptr) }

// FromRaw rewraps an erased word.
func (RawThin[P]) FromRaw(raw Raw) RawThin[P] {
	return RawThin[P]{ptr: unsafe.Pointer(raw)}
}

// CloneRaw is identity: copying the label duplicates nothing.
func (RawThin[P]) CloneRaw(raw Raw) Raw { return raw }

// Release does nothing; a RawThin owns no lifecycle.
func (RawThin[P]) Release() {}

// CopyThin is RawThin restricted to handle kinds that are themselves
// trivially duplicable. Because every copy of such a kind is a legitimate
// independent handle, both construction and reconstruction are ordinary
// safe operations.
type CopyThin[P Copyable[P]] struct {
	TrivialHandle
	raw RawThin[P]
}

// NewCopy erases h into a CopyThin.
func NewCopy[P Copyable[P]](h P) CopyThin[P] {
	return CopyThin[P]{raw: NewRaw(h)}
}

// IntoInner reconstructs the handle. Any copy of a CopyThin owns a unit,
// so no caller proof is required.
func (c CopyThin[P]) IntoInner() P {
	return c.raw.IntoInner()
}

// IntoRaw returns the stored word.
func (c CopyThin[P]) IntoRaw() Raw { return Raw(c.raw.ptr) }

// FromRaw rewraps an erased word.
func (CopyThin[P]) FromRaw(raw Raw) CopyThin[P] {
	return CopyThin[P]{raw: RawThin[P]{ptr: unsafe.Pointer(raw)}}
}

// CloneRaw is identity, as for RawThin.
func (CopyThin[P]) CloneRaw(raw Raw) Raw { return raw }

// Release does nothing.
func (CopyThin[P]) Release() {}

// Thin is the owning wrapper: one word holding one ownership unit of a
// handle of kind P, released exactly once.
//
// A Thin is either live or consumed. IntoInner moves the unit out and
// cancels the release; Release on a consumed Thin does nothing. The
// consumed state is the nil word, so Thin stays exactly one word.
//
// Thin is not itself a handle kind: ending its lifecycle mutates it in
// place, which the value-receiver Handle contract cannot express. Nest
// through RawThin or CopyThin instead.
type Thin[P Handle[P]] struct {
	raw RawThin[P]
}

// New erases h into a live Thin.
func New[P Handle[P]](h P) Thin[P] {
	return Thin[P]{raw: NewRaw(h)}
}

// Release ends the wrapper's lifecycle: reconstructs the handle and runs
// its own release. Runs the underlying release at most once; calls after
// the first, or after IntoInner, do nothing. For Trivial kinds the
// reconstruction is skipped entirely.
func (t *Thin[P]) Release() {
	p := t.raw.ptr
	if p == nil {
		return
	}
	t.raw.ptr = nil
	var z P
	if _, ok := any(z).(Trivial); ok {
		return
	}
	z.FromRaw(Raw(p)).Release()
}

// IntoInner moves the ownership unit out, returning the reconstructed
// handle and suppressing the release. The Thin must be live.
func (t *Thin[P]) IntoInner() P {
	p := t.raw.ptr
	t.raw.ptr = nil
	var z P
	return z.FromRaw(Raw(p))
}

// Clone duplicates a live Thin through P's duplication logic. The source
// stays live; the result is a new, independent unit.
func Clone[P CloneFromRaw[P]](t *Thin[P]) Thin[P] {
	var z P
	return Thin[P]{raw: RawThin[P]{ptr: unsafe.Pointer(z.CloneRaw(Raw(t.raw.ptr)))}}
}

// Value returns the typed address of the pointee behind a live Thin whose
// kind exposes read-through access. The pointee type is not inferable from
// the handle kind's method set, so calls name it explicitly:
//
//	v := thinptr.Value[int](&t)
//
// The address obeys the wrapped kind's aliasing rules and stays valid only
// while the Thin is live.
func Value[T any, P interface {
	Handle[P]
	Deref[T]
}](t *Thin[P]) *T {
	var z P
	return z.DerefRaw(Raw(t.raw.ptr))
}

// ValueWith is the variable-size escape hatch: it recovers the pointee
// address through a caller-supplied Erasure instead of the kind's own
// fixed-size path. The same liveness and aliasing obligations apply, plus
// the Erasure contract itself.
func ValueWith[T any, P Handle[P]](t *Thin[P], e Erasure[T]) *T {
	return e.Unerase(Raw(t.raw.ptr))
}
