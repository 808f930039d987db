package arena

import "unsafe"

// Allocator hands out fixed-size blocks of non-collected memory.
type Allocator interface {
	// Alloc returns an 8-aligned block of at least size bytes. A size of
	// zero returns the sentinel and reserves nothing.
	Alloc(size int) unsafe.Pointer

	// Free releases a block previously returned by Alloc. Freeing the
	// sentinel is a no-op. Freeing any other address twice, or one that
	// did not come from Alloc, corrupts the arena.
	Free(ptr unsafe.Pointer)
}

// Default is the process-wide arena used by the handle kinds.
var Default Allocator = NewSlab()

var zerobase uint64

// Sentinel is the fixed, non-nil, non-dereferenceable address shared by all
// zero-size allocations.
func Sentinel() unsafe.Pointer {
	return unsafe.Pointer(&zerobase)
}
