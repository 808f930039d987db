// Package arena provides the manual allocator backing the owning handle
// kinds.
//
// Storage is carved from anonymous memory maps, outside the reach of the Go
// collector: nothing scans it, nothing moves it, and nothing frees it until
// Free is called. Values placed in arena memory must therefore not contain
// Go pointers, and a pointer into a block is valid exactly until the block
// is freed; use after Free is undefined behavior.
//
// # Layout
//
// Maps are split into fixed-size chunks and chunks are bump-allocated in
// blocks. Each block carries an 8-byte size header ahead of the address
// handed to the caller; returned addresses are always 8-aligned. A chunk
// whose blocks have all been freed is recycled whole.
//
// Zero-size allocations never touch a chunk: they all share the Sentinel
// address, and freeing the sentinel does nothing.
//
// # Exhaustion
//
// Failure to map new memory is fatal. It is logged through the package
// logger and terminates the process; the allocation path returns no errors.
package arena
