package handles

import (
	"sync/atomic"
	"unsafe"

	"github.com/wippyai/thinptr"
	"github.com/wippyai/thinptr/track"
)

// Atomic is Shared with the ownership count updated atomically: units may
// be cloned and released from racing goroutines. The block layout is
// identical; only the count discipline differs. The pointee itself gets no
// synchronization beyond the count.
type Atomic[T any] struct {
	ptr *T
}

func atomicCount(p unsafe.Pointer) *atomic.Int64 {
	return (*atomic.Int64)(unsafe.Add(p, -countSize))
}

// NewAtomic moves v into a counted arena block and returns the first unit.
func NewAtomic[T any](v T) Atomic[T] {
	p := sharedBlock(v)
	track.Emit(track.KindAtomic, track.OpNew, uintptr(unsafe.Pointer(p)))
	return Atomic[T]{ptr: p}
}

// Get returns the address of the shared value.
func (a Atomic[T]) Get() *T { return a.ptr }

// Refs returns the current ownership count. The value may be stale by the
// time it is observed.
func (a Atomic[T]) Refs() int64 {
	return atomicCount(unsafe.Pointer(a.ptr)).Load()
}

func (a Atomic[T]) IntoRaw() thinptr.Raw {
	return thinptr.Raw(unsafe.Pointer(a.ptr))
}

func (Atomic[T]) FromRaw(raw thinptr.Raw) Atomic[T] {
	return Atomic[T]{ptr: thinptr.Identity[T]{}.Unerase(raw)}
}

// CloneRaw atomically increments the count and returns the same address;
// safe against concurrent clones and releases of other units.
func (Atomic[T]) CloneRaw(raw thinptr.Raw) thinptr.Raw {
	atomicCount(unsafe.Pointer(raw)).Add(1)
	track.Emit(track.KindAtomic, track.OpClone, uintptr(unsafe.Pointer(raw)))
	return raw
}

// Release consumes one unit. Exactly one releaser observes the count
// reaching zero and frees the block.
func (a Atomic[T]) Release() {
	track.Emit(track.KindAtomic, track.OpRelease, uintptr(unsafe.Pointer(a.ptr)))
	if atomicCount(unsafe.Pointer(a.ptr)).Add(-1) == 0 {
		sharedFree(a.ptr)
	}
}

func (Atomic[T]) DerefRaw(raw thinptr.Raw) *T {
	return thinptr.Identity[T]{}.Unerase(raw)
}
