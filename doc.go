// Package thinptr converts pointer-like handles into a uniform one-word
// opaque pointer and back, without losing the ownership semantics of the
// original handle.
//
// A handle is any pointer-like ownership carrier: a borrowing reference, an
// exclusively-owning heap handle, or a shared handle whose ownership is
// tracked by a count. Erasing a handle produces a Raw, a single machine word
// with no type information attached. The thin wrapper types store a Raw and
// replay the original handle's lifecycle on demand.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	thinptr/          Capability contracts, the Raw opaque pointer, and the
//	                  RawThin, CopyThin and Thin wrapper types
//	├── arena/        Slab allocator backing the owning handle kinds
//	├── handles/      Concrete handle kinds: Ref, MutRef, Boxed, Shared, Atomic
//	├── track/        Opt-in lifecycle event registry for debugging
//	└── cmd/stress/   Concurrent clone/release stress driver
//
// # Capability Contracts
//
// Handle kinds plug into the wrapper types through three contracts:
//
//   - Erasure[T] recovers a typed address from a Raw. Identity[T] is the
//     default for fixed-size pointees.
//   - Handle[P] converts a handle to a Raw and back, and releases the
//     ownership unit the Raw represents.
//   - CloneFromRaw[P] duplicates an ownership unit given only the Raw.
//
// Adding a new handle kind means implementing Handle and, when genuine
// duplication semantics exist, CloneFromRaw. The wrapper types pick the new
// kind up with no further changes.
//
// # Quick Start
//
// Wrap an owning handle, use it, release it:
//
//	t := thinptr.New(handles.NewBoxed(42))
//	defer t.Release()
//
//	v := thinptr.Value[int](&t) // *int into the boxed storage
//	fmt.Println(*v)
//
// Duplicate a shared handle through its erased form:
//
//	t := thinptr.New(handles.NewAtomic(int64(42)))
//	u := thinptr.Clone(&t) // atomically bumps the shared count
//	u.Release()
//	t.Release() // storage freed here
//
// # Ownership Discipline
//
// Every Raw held by a live wrapper was produced by exactly one conversion or
// duplication, and represents exactly one ownership unit. That unit must be
// consumed exactly once: by reconstruction, by release, or (for non-owning
// kinds only) by being forgotten. The conversion and duplication operations
// are caller-verified contracts, not runtime-checked operations; violating
// one is a programming defect, not a reportable error. The track package
// exists to surface such defects during testing.
//
// # Thread Safety
//
// Wrappers inherit the thread-safety of the wrapped kind. Thin over
// handles.Atomic may be cloned and released from racing goroutines; every
// other kind must be confined to one goroutine or synchronized by the
// caller.
package thinptr
