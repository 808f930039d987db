package handles

import (
	"sync"
	"testing"

	"github.com/wippyai/thinptr"
)

func TestAtomicOwnershipCount(t *testing.T) {
	resetCounted()
	a := NewAtomic(counted{v: 42})
	raw := a.IntoRaw()

	const n = 3
	for i := 0; i < n; i++ {
		(Atomic[counted]{}).CloneRaw(raw)
	}
	if got := a.Refs(); got != n+1 {
		t.Fatalf("expected count %d, got %d", n+1, got)
	}

	for i := 0; i < n+1; i++ {
		(Atomic[counted]{}).FromRaw(raw).Release()
	}
	if got := countedDrops.Load(); got != 1 {
		t.Fatalf("expected exactly 1 drop, got %d", got)
	}
}

// Three goroutines race duplication of one wrapped atomic handle, then all
// four units are released; the backing storage must be freed exactly once.
func TestAtomicConcurrentCloneRelease(t *testing.T) {
	resetCounted()
	th := thinptr.New(NewAtomic(counted{v: 42}))

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := thinptr.Clone(&th)
			if got := thinptr.Value[counted](&c).v; got != 42 {
				t.Errorf("read %d through cloned unit, want 42", got)
			}
			c.Release()
		}()
	}
	wg.Wait()
	th.Release()

	if got := countedDrops.Load(); got != 1 {
		t.Fatalf("expected backing storage freed exactly once, got %d drops", got)
	}
}

func TestAtomicCloneReleaseRace(t *testing.T) {
	resetCounted()
	a := NewAtomic(counted{v: 7})
	raw := a.IntoRaw()

	const workers = 8
	const iters = 2000

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				dup := (Atomic[counted]{}).CloneRaw(raw)
				(Atomic[counted]{}).FromRaw(dup).Release()
			}
		}()
	}
	wg.Wait()

	if got := countedDrops.Load(); got != 0 {
		t.Fatalf("pointee dropped while the original unit was live: %d drops", got)
	}
	(Atomic[counted]{}).FromRaw(raw).Release()
	if got := countedDrops.Load(); got != 1 {
		t.Fatalf("expected exactly 1 drop, got %d", got)
	}
}
