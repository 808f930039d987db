package handles

import (
	"unsafe"

	"github.com/wippyai/thinptr"
	"github.com/wippyai/thinptr/arena"
	"github.com/wippyai/thinptr/track"
)

// Boxed is an exclusively-owning heap handle: one unit of ownership over a
// value moved into arena storage. Releasing it runs the pointee's Dropper
// hook and frees the storage; duplicating it clones the value into fresh
// storage.
//
// Zero-size pointees never allocate. They all live at the arena sentinel,
// and duplication runs the Cloner hook for its side effects, discards the
// produced value, and hands back the sentinel.
type Boxed[T any] struct {
	ptr *T
}

// NewBoxed moves v into arena storage and returns the owning handle.
// Exhaustion of the arena is fatal, not reported.
func NewBoxed[T any](v T) Boxed[T] {
	var p *T
	if sizeOf[T]() == 0 {
		p = (*T)(arena.Sentinel())
	} else {
		p = (*T)(arena.Default.Alloc(int(sizeOf[T]())))
		*p = v
	}
	track.Emit(track.KindBoxed, track.OpNew, uintptr(unsafe.Pointer(p)))
	return Boxed[T]{ptr: p}
}

// Get returns the address of the boxed value. It stays valid until the
// handle (or a wrapper holding its unit) is released.
func (b Boxed[T]) Get() *T { return b.ptr }

func (b Boxed[T]) IntoRaw() thinptr.Raw {
	return thinptr.Raw(unsafe.Pointer(b.ptr))
}

func (Boxed[T]) FromRaw(raw thinptr.Raw) Boxed[T] {
	return Boxed[T]{ptr: thinptr.Identity[T]{}.Unerase(raw)}
}

// CloneRaw duplicates the boxed value into new storage matching the
// pointee's exact size. The zero-size path invokes the Cloner hook exactly
// once and never touches the allocator.
func (Boxed[T]) CloneRaw(raw thinptr.Raw) thinptr.Raw {
	src := thinptr.Identity[T]{}.Unerase(raw)
	if sizeOf[T]() == 0 {
		_ = cloneValue(src)
		track.Emit(track.KindBoxed, track.OpClone, uintptr(arena.Sentinel()))
		return thinptr.Raw(arena.Sentinel())
	}
	dst := (*T)(arena.Default.Alloc(int(sizeOf[T]())))
	*dst = cloneValue(src)
	track.Emit(track.KindBoxed, track.OpClone, uintptr(unsafe.Pointer(dst)))
	return thinptr.Raw(unsafe.Pointer(dst))
}

// Release runs the pointee's Dropper hook and frees the storage. The
// handle's unit is consumed; any further use of it or of the address is
// undefined behavior.
func (b Boxed[T]) Release() {
	track.Emit(track.KindBoxed, track.OpRelease, uintptr(unsafe.Pointer(b.ptr)))
	dropValue(b.ptr)
	arena.Default.Free(unsafe.Pointer(b.ptr))
}

func (Boxed[T]) DerefRaw(raw thinptr.Raw) *T {
	return thinptr.Identity[T]{}.Unerase(raw)
}
