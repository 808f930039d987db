package thinptr

import "unsafe"

// Raw is the opaque pointer every handle kind erases into: one machine word,
// no type information, non-nil for every live ownership unit. It is
// bit-identical to the address a typed pointer to the pointee would carry,
// so converting back is a cast, never arithmetic on the pointee itself.
type Raw unsafe.Pointer
