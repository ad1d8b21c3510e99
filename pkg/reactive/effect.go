package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a reactive side effect that re-runs when its dependencies change.
// Effects run immediately when created and re-run synchronously whenever a
// signal or memo they read during execution changes (or at batch end when a
// Batch is active). The effect function may return a Cleanup that runs
// before each re-run and at disposal.
type Effect struct {
	id uint64

	// fn is the effect body.
	fn func() Cleanup

	// cleanup is the Cleanup returned by the last run.
	cleanup Cleanup

	// sources are the signals/memos this effect depends on.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// scope is the Scope that owns this effect.
	scope *Scope

	// running guards against re-entrant runs when the effect body writes
	// one of its own dependencies.
	running atomic.Bool

	// queued marks a re-run requested while the effect was already running.
	queued atomic.Bool

	disposed atomic.Bool
}

// CreateEffect creates and immediately runs an effect owned by the current
// scope. The body re-runs whenever a tracked dependency changes.
//
//	reactive.CreateEffect(func() reactive.Cleanup {
//	    fmt.Println("count is", count.Get())
//	    return func() { fmt.Println("cleanup") }
//	})
func CreateEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id:    nextID(),
		fn:    fn,
		scope: getCurrentScope(),
	}

	if e.scope != nil {
		e.scope.registerEffect(e)
	}

	e.run()

	return e
}

// MarkDirty re-runs the effect. Implements the Listener interface.
// Called by dependencies when they change; during a Batch the call is
// already deferred and deduplicated by the batch queue.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}

	if e.running.Load() {
		// Re-entrant notification from our own body; run once more after
		// the current run completes.
		e.queued.Store(true)
		return
	}

	e.run()
}

// ID returns the unique identifier for this effect.
// Implements the Listener interface.
func (e *Effect) ID() uint64 {
	return e.id
}

// Dispose stops the effect: runs its cleanup and unsubscribes from all
// sources. A disposed effect never runs again.
func (e *Effect) Dispose() {
	e.dispose()
}

// run executes the effect body with fresh dependency tracking.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	e.running.Store(true)
	defer func() {
		e.running.Store(false)
		if e.queued.Swap(false) {
			e.run()
		}
	}()

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.detach()

	oldListener := setCurrentListener(e)
	e.cleanup = e.fn()
	setCurrentListener(oldListener)
}

// addSource records a dependency. Implements the sourceTracker interface.
func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// detach unsubscribes from all current sources.
func (e *Effect) detach() {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
}

func (e *Effect) dispose() {
	if e.disposed.Swap(true) {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

var _ sourceTracker = (*Effect)(nil)

// OnCleanup registers fn to run when the current scope is disposed.
// No-op outside any scope.
func OnCleanup(fn func()) {
	if scope := getCurrentScope(); scope != nil {
		scope.OnCleanup(fn)
	}
}
