package handles

import (
	"testing"
)

func TestSharedOwnershipCount(t *testing.T) {
	resetCounted()
	s := NewShared(counted{v: 42})
	if got := s.Refs(); got != 1 {
		t.Fatalf("expected count 1 after wrap, got %d", got)
	}

	raw := s.IntoRaw()
	const n = 5
	for i := 0; i < n; i++ {
		if dup := (Shared[counted]{}).CloneRaw(raw); dup != raw {
			t.Fatal("shared duplication should return the same address")
		}
	}
	if got := s.Refs(); got != n+1 {
		t.Fatalf("expected count %d after %d clones, got %d", n+1, n, got)
	}

	for i := 0; i < n; i++ {
		(Shared[counted]{}).FromRaw(raw).Release()
	}
	if got := countedDrops.Load(); got != 0 {
		t.Fatalf("pointee dropped before the count reached zero: %d drops", got)
	}
	if got := s.Refs(); got != 1 {
		t.Fatalf("expected count 1 before the final release, got %d", got)
	}

	(Shared[counted]{}).FromRaw(raw).Release()
	if got := countedDrops.Load(); got != 1 {
		t.Fatalf("expected exactly 1 drop at count zero, got %d", got)
	}
}

func TestSharedCloneDoesNotAllocate(t *testing.T) {
	s := NewShared(int64(1))
	raw := s.IntoRaw()

	before := defaultStats(t)
	(Shared[int64]{}).CloneRaw(raw)
	if after := defaultStats(t); after.Allocated != before.Allocated {
		t.Fatal("shared duplication should not allocate")
	}

	(Shared[int64]{}).FromRaw(raw).Release()
	(Shared[int64]{}).FromRaw(raw).Release()
}

func TestSharedReadThrough(t *testing.T) {
	s := NewShared(int64(42))
	raw := s.IntoRaw()

	if got := *(Shared[int64]{}).DerefRaw(raw); got != 42 {
		t.Fatalf("expected 42 through shared deref, got %d", got)
	}

	(Shared[int64]{}).FromRaw(raw).Release()
}
