package arena

import (
	"testing"
	"unsafe"
)

func TestAllocAlignment(t *testing.T) {
	s := NewSlab()
	for _, size := range []int{1, 3, 8, 9, 64, 1000} {
		p := s.Alloc(size)
		if p == nil {
			t.Fatalf("Alloc(%d) returned nil", size)
		}
		if uintptr(p)%8 != 0 {
			t.Fatalf("Alloc(%d) returned unaligned address %#x", size, uintptr(p))
		}
	}
}

func TestAllocFreeAccounting(t *testing.T) {
	s := NewSlab()

	var ptrs []unsafe.Pointer
	for i := 0; i < 100; i++ {
		ptrs = append(ptrs, s.Alloc(48))
	}
	want := int64(100 * (blockHeader + 48))
	if got := s.Stats().Allocated; got != want {
		t.Fatalf("expected %d bytes allocated, got %d", want, got)
	}

	for _, p := range ptrs {
		s.Free(p)
	}
	if got := s.Stats().Allocated; got != 0 {
		t.Fatalf("expected 0 bytes allocated after frees, got %d", got)
	}
}

func TestSizeRounding(t *testing.T) {
	s := NewSlab()
	p := s.Alloc(1)
	if got := s.Stats().Allocated; got != blockHeader+8 {
		t.Fatalf("expected 1-byte request to round to %d, got %d", blockHeader+8, got)
	}
	s.Free(p)
}

func TestZeroSizeSentinel(t *testing.T) {
	s := NewSlab()

	p := s.Alloc(0)
	q := s.Alloc(0)
	if p != Sentinel() || q != Sentinel() {
		t.Fatal("zero-size allocations should share the sentinel")
	}

	s.Free(p)
	s.Free(q)
	if st := s.Stats(); st.Mapped != 0 || st.Allocated != 0 {
		t.Fatalf("zero-size traffic should map and allocate nothing: %+v", st)
	}
}

func TestWriteReadBlock(t *testing.T) {
	s := NewSlab()
	p := s.Alloc(16)

	*(*int64)(p) = 42
	*(*int64)(unsafe.Add(p, 8)) = 7
	if *(*int64)(p) != 42 || *(*int64)(unsafe.Add(p, 8)) != 7 {
		t.Fatal("block does not hold written values")
	}
	s.Free(p)
}

func TestChunkRecycle(t *testing.T) {
	s := NewSlab()

	payload := 1 << 12
	perChunk := int((chunkSize - chunkHeader) / (blockHeader + uintptr(payload)))

	// spill into a second chunk so the first one retires
	var ptrs []unsafe.Pointer
	for i := 0; i < perChunk+1; i++ {
		ptrs = append(ptrs, s.Alloc(payload))
	}
	for _, p := range ptrs {
		s.Free(p)
	}
	if got := len(s.freec); got != 1 {
		t.Fatalf("expected 1 recycled chunk after draining the retired one, got %d", got)
	}

	// filling the current chunk again must reuse the recycled one, not map
	mapped := s.Stats().Mapped
	for i := 0; i < perChunk; i++ {
		s.Alloc(payload)
	}
	if got := len(s.freec); got != 0 {
		t.Fatalf("expected the recycled chunk to be reused, %d still queued", got)
	}
	if got := s.Stats().Mapped; got != mapped {
		t.Fatalf("reuse should not map more memory: %d -> %d", mapped, got)
	}
}

func TestOversizeAllocationPanics(t *testing.T) {
	s := NewSlab()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for allocation larger than a chunk")
		}
	}()
	s.Alloc(chunkSize)
}
