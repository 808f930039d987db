package track

import (
	"errors"
	"testing"
)

type captureObserver struct {
	events []Event
}

func (c *captureObserver) OnHandleEvent(e Event) {
	c.events = append(c.events, e)
}

func TestRegistryLedger(t *testing.T) {
	r := NewRegistry()
	Enable(r)
	defer Disable()

	Emit(KindBoxed, OpNew, 0x1000)
	Emit(KindBoxed, OpClone, 0x2000)
	if got := r.Live(); got != 2 {
		t.Fatalf("expected 2 live units, got %d", got)
	}

	Emit(KindBoxed, OpRelease, 0x1000)
	Emit(KindBoxed, OpRelease, 0x2000)
	if got := r.Live(); got != 0 {
		t.Fatalf("expected 0 live units, got %d", got)
	}
	if err := r.Err(); err != nil {
		t.Fatalf("unexpected violations: %v", err)
	}
}

func TestSharedAddressCountsUnits(t *testing.T) {
	r := NewRegistry()
	Enable(r)
	defer Disable()

	Emit(KindShared, OpNew, 0x3000)
	Emit(KindShared, OpClone, 0x3000)
	Emit(KindShared, OpClone, 0x3000)
	if got := r.Live(); got != 3 {
		t.Fatalf("expected 3 units at one address, got %d", got)
	}
	if got := len(r.Leaks()); got != 1 {
		t.Fatalf("expected 1 leaked address, got %d", got)
	}

	for i := 0; i < 3; i++ {
		Emit(KindShared, OpRelease, 0x3000)
	}
	if got := r.Live(); got != 0 {
		t.Fatalf("expected 0 units, got %d", got)
	}
}

func TestViolationOnUnmatchedRelease(t *testing.T) {
	r := NewRegistry()
	Enable(r)
	defer Disable()

	Emit(KindAtomic, OpRelease, 0x4000)

	err := r.Err()
	if err == nil {
		t.Fatal("expected a violation for an unmatched release")
	}
	var v *Violation
	if !errors.As(err, &v) {
		t.Fatalf("expected *Violation, got %T", err)
	}
	if v.Addr != 0x4000 || v.Kind != KindAtomic {
		t.Fatalf("violation carries wrong event: %+v", v)
	}
}

func TestObserverStream(t *testing.T) {
	r := NewRegistry()
	Enable(r)
	defer Disable()

	obs := &captureObserver{}
	r.Subscribe(obs)

	Emit(KindBoxed, OpNew, 0x5000)
	Emit(KindBoxed, OpRelease, 0x5000)
	if got := len(obs.events); got != 2 {
		t.Fatalf("expected 2 events, got %d", got)
	}
	if obs.events[0].Op != OpNew || obs.events[1].Op != OpRelease {
		t.Fatalf("events out of order: %+v", obs.events)
	}

	r.Unsubscribe(obs)
	Emit(KindBoxed, OpNew, 0x6000)
	if got := len(obs.events); got != 2 {
		t.Fatalf("expected no events after unsubscribe, got %d", got)
	}
}

func TestEmitWhileDisabled(t *testing.T) {
	r := NewRegistry()
	Enable(r)
	Disable()

	Emit(KindBoxed, OpNew, 0x7000)
	if got := r.Live(); got != 0 {
		t.Fatalf("disabled emission still recorded %d units", got)
	}
}
