// Package handles provides the concrete handle kinds the thinptr wrapper
// types are generic over.
//
//	Ref[T]     borrowing reference: non-owning, trivially duplicable
//	MutRef[T]  exclusive reference: non-owning, access must not be aliased
//	Boxed[T]   exclusively-owning heap handle over the arena
//	Shared[T]  shared handle with a plain ownership count, one goroutine only
//	Atomic[T]  shared handle with an atomic count, safe to race
//
// Every kind implements the thinptr.Handle contract; all but MutRef-style
// exclusivity concerns surface through documentation rather than types,
// since Go has no const references.
//
// # Storage
//
// Boxed, Shared and Atomic place pointee bytes in arena memory, which the
// Go collector never scans. Pointees must not contain Go pointers. Shared
// and Atomic keep their ownership count in an 8-byte header directly ahead
// of the value, so the erased pointer still addresses the value itself and
// duplication needs no allocation.
//
// # Pointee hooks
//
// A pointee may implement Dropper to run cleanup when its storage is
// released, and Cloner to customize duplication. Both are optional;
// without them release just frees and duplication is a plain copy.
package handles
