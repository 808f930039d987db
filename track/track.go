package track

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Kind identifies the handle kind an event came from.
type Kind string

const (
	KindBoxed  Kind = "boxed"
	KindShared Kind = "shared"
	KindAtomic Kind = "atomic"
)

// Op is a lifecycle operation on an ownership unit.
type Op uint8

const (
	OpNew Op = iota
	OpClone
	OpRelease
)

func (o Op) String() string {
	switch o {
	case OpNew:
		return "new"
	case OpClone:
		return "clone"
	case OpRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Event records one lifecycle operation. Addr is the erased address the
// unit points at; shared kinds report the same address for every unit.
type Event struct {
	Kind Kind
	Op   Op
	Addr uintptr
}

// Observer receives lifecycle events from an enabled registry.
type Observer interface {
	OnHandleEvent(Event)
}

// Violation is a contract breach the ledger could prove from the event
// stream alone.
type Violation struct {
	Kind Kind
	Op   Op
	Addr uintptr
}

func (v *Violation) Error() string {
	return fmt.Sprintf("track: %s of %s unit at %#x with no live unit recorded", v.Op, v.Kind, v.Addr)
}

// Registry keeps a ledger of live ownership units per address and fans
// events out to observers. Safe for concurrent use.
type Registry struct {
	mu         sync.Mutex
	live       map[uintptr]int
	violations []error

	obsMu     sync.RWMutex
	observers []Observer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{live: make(map[uintptr]int)}
}

// Subscribe adds an observer for lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer.
func (r *Registry) Unsubscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

// Live returns the total number of ownership units currently recorded.
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.live {
		n += c
	}
	return n
}

// Leaks returns the addresses with units still live, sorted.
func (r *Registry) Leaks() []uintptr {
	r.mu.Lock()
	defer r.mu.Unlock()
	var addrs []uintptr
	for a, c := range r.live {
		if c > 0 {
			addrs = append(addrs, a)
		}
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}

// Err returns the violations recorded so far, joined, or nil.
func (r *Registry) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return errors.Join(r.violations...)
}

func (r *Registry) record(e Event) {
	r.mu.Lock()
	switch e.Op {
	case OpNew, OpClone:
		r.live[e.Addr]++
	case OpRelease:
		if r.live[e.Addr] == 0 {
			r.violations = append(r.violations, &Violation{Kind: e.Kind, Op: e.Op, Addr: e.Addr})
		} else {
			r.live[e.Addr]--
			if r.live[e.Addr] == 0 {
				delete(r.live, e.Addr)
			}
		}
	}
	r.mu.Unlock()

	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnHandleEvent(e)
	}
}

var active atomic.Pointer[Registry]

// Enable installs r as the process-wide registry. Handle operations begin
// emitting to it immediately.
func Enable(r *Registry) {
	active.Store(r)
}

// Disable stops all emission.
func Disable() {
	active.Store(nil)
}

// Emit records a lifecycle operation with the enabled registry, if any.
// Called by the handle kinds; cheap when tracking is disabled.
func Emit(kind Kind, op Op, addr uintptr) {
	r := active.Load()
	if r == nil {
		return
	}
	r.record(Event{Kind: kind, Op: op, Addr: addr})
}
