package handles

import (
	"unsafe"

	"github.com/wippyai/thinptr"
	"github.com/wippyai/thinptr/arena"
	"github.com/wippyai/thinptr/track"
)

// countSize is the ownership count kept directly ahead of the value, so
// the erased pointer still addresses the value itself.
const countSize = 8

func sharedBlock[T any](v T) *T {
	base := arena.Default.Alloc(countSize + int(sizeOf[T]()))
	*(*int64)(base) = 1
	p := (*T)(unsafe.Add(base, countSize))
	if sizeOf[T]() != 0 {
		*p = v
	}
	return p
}

func sharedCount(p unsafe.Pointer) *int64 {
	return (*int64)(unsafe.Add(p, -countSize))
}

func sharedFree[T any](p *T) {
	dropValue(p)
	arena.Default.Free(unsafe.Add(unsafe.Pointer(p), -countSize))
}

// Shared is a shared handle whose ownership is tracked by a plain count:
// every handle is one unit, duplication increments the count in place, and
// the release that brings it to zero runs the Dropper hook and frees the
// block. The count is not synchronized; all units of one block must stay
// on a single goroutine.
type Shared[T any] struct {
	ptr *T
}

// NewShared moves v into a counted arena block and returns the first unit.
func NewShared[T any](v T) Shared[T] {
	p := sharedBlock(v)
	track.Emit(track.KindShared, track.OpNew, uintptr(unsafe.Pointer(p)))
	return Shared[T]{ptr: p}
}

// Get returns the address of the shared value.
func (s Shared[T]) Get() *T { return s.ptr }

// Refs returns the current ownership count.
func (s Shared[T]) Refs() int64 {
	return *sharedCount(unsafe.Pointer(s.ptr))
}

func (s Shared[T]) IntoRaw() thinptr.Raw {
	return thinptr.Raw(unsafe.Pointer(s.ptr))
}

func (Shared[T]) FromRaw(raw thinptr.Raw) Shared[T] {
	return Shared[T]{ptr: thinptr.Identity[T]{}.Unerase(raw)}
}

// CloneRaw increments the count in place and returns the same address; no
// allocation happens. The returned Raw is one additional unit of shared
// ownership.
func (Shared[T]) CloneRaw(raw thinptr.Raw) thinptr.Raw {
	*sharedCount(unsafe.Pointer(raw))++
	track.Emit(track.KindShared, track.OpClone, uintptr(unsafe.Pointer(raw)))
	return raw
}

// Release consumes one unit. The unit that brings the count to zero frees
// the block.
func (s Shared[T]) Release() {
	track.Emit(track.KindShared, track.OpRelease, uintptr(unsafe.Pointer(s.ptr)))
	c := sharedCount(unsafe.Pointer(s.ptr))
	*c--
	if *c == 0 {
		sharedFree(s.ptr)
	}
}

func (Shared[T]) DerefRaw(raw thinptr.Raw) *T {
	return thinptr.Identity[T]{}.Unerase(raw)
}
