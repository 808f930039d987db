// Package track provides an opt-in registry of handle lifecycle events.
//
// The conversion and duplication operations of the owning handle kinds are
// caller-verified contracts with no runtime checks of their own. During
// testing it is still useful to see the ownership units flow: every
// creation, duplication and release of an owning handle emits an event to
// the enabled registry, which keeps a ledger of live units per address and
// reports violations it can prove (a release with no matching live unit,
// units still live when the ledger is checked).
//
// Nothing is emitted, and nothing is paid beyond one atomic load per
// operation, while no registry is enabled:
//
//	reg := track.NewRegistry()
//	track.Enable(reg)
//	defer track.Disable()
//
//	// ... exercise handles ...
//
//	if err := reg.Err(); err != nil {
//	    t.Fatal(err)
//	}
//
// Observers subscribe to the raw event stream; LogObserver adapts a zap
// logger. The registry is a debugging aid, not a safety net: it observes
// defects after the fact and cannot prevent them.
package track
