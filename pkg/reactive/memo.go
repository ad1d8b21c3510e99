package reactive

import (
	"sync"
	"sync/atomic"
)

// Memo is a cached computation that automatically tracks its dependencies.
// When any dependency changes value, the memo is invalidated and recomputes
// on the next read.
//
// Memos are lazy: the computation runs only when Get or Peek is called.
// If several dependencies change before a read, the memo recomputes once.
// A dependency write that doesn't change the dependency's value (under its
// equality function) never invalidates the memo.
//
// Memos can themselves be subscribed to, so chains of derived values work.
type Memo[T any] struct {
	base signalBase

	// compute produces the memo's value.
	compute func() T

	// value is the cached computed value.
	value   T
	valueMu sync.RWMutex

	// valid indicates whether the cached value is current.
	valid atomic.Bool

	// sources are the signals/memos this memo currently depends on.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// equal determines whether a recompute changed the value.
	equal func(T, T) bool

	// computing guards against recursive recomputation on circular
	// dependencies.
	computing atomic.Bool

	// scope is the owning Scope captured at creation.
	scope *Scope
}

// NewMemo creates a memo with the given computation, owned by the current
// scope if one is installed. The computation does not run until first read.
func NewMemo[T any](compute func() T) *Memo[T] {
	m := &Memo[T]{
		base:    signalBase{id: nextID()},
		compute: compute,
		scope:   getCurrentScope(),
	}

	// Detach from sources at scope teardown so disposed memos don't keep
	// receiving notifications.
	if m.scope != nil {
		m.scope.OnCleanup(m.detach)
	}

	return m
}

// Get returns the memo's value, recomputing if a dependency changed.
// Subscribes the current listener to this memo.
// Panics with ErrScopeDisposed if the owning scope has been disposed.
func (m *Memo[T]) Get() T {
	m.scope.checkLive()

	m.base.track()

	if !m.valid.Load() {
		m.recompute()
	}

	m.valueMu.RLock()
	value := m.value
	m.valueMu.RUnlock()
	return value
}

// TryGet is Get, but reports false instead of panicking after disposal.
func (m *Memo[T]) TryGet() (T, bool) {
	if !m.scope.isLive() {
		var zero T
		return zero, false
	}
	return m.Get(), true
}

// Peek returns the memo's value without subscribing.
// Still recomputes if the cached value is stale.
func (m *Memo[T]) Peek() T {
	m.scope.checkLive()

	if !m.valid.Load() {
		m.recompute()
	}

	m.valueMu.RLock()
	value := m.value
	m.valueMu.RUnlock()
	return value
}

// TryPeek is Peek, but reports false instead of panicking after disposal.
func (m *Memo[T]) TryPeek() (T, bool) {
	if !m.scope.isLive() {
		var zero T
		return zero, false
	}
	return m.Peek(), true
}

// MarkDirty invalidates the cached value and propagates to subscribers.
// Implements the Listener interface.
func (m *Memo[T]) MarkDirty() {
	// CAS keeps repeated invalidation idempotent.
	if m.valid.CompareAndSwap(true, false) {
		m.base.notifySubscribers()
	}
}

// ID returns the unique identifier for this memo.
// Implements the Listener interface.
func (m *Memo[T]) ID() uint64 {
	return m.base.id
}

// WithEquals configures a custom equality function and returns the memo.
func (m *Memo[T]) WithEquals(fn func(T, T) bool) *Memo[T] {
	m.equal = fn
	return m
}

// addSource records a dependency so it can be unsubscribed before the next
// recompute. Implements the sourceTracker interface.
func (m *Memo[T]) addSource(source *signalBase) {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()

	for _, s := range m.sources {
		if s == source {
			return
		}
	}
	m.sources = append(m.sources, source)
}

// recompute runs the computation with this memo installed as the tracking
// listener, re-establishing the dependency set from scratch.
func (m *Memo[T]) recompute() {
	if m.computing.Swap(true) {
		// Already computing: circular dependency, keep the stale value.
		return
	}
	defer m.computing.Store(false)

	m.detach()

	old := setCurrentListener(m)
	newValue := m.compute()
	setCurrentListener(old)

	m.valueMu.Lock()
	changed := !m.equals(m.value, newValue)
	m.value = newValue
	m.valueMu.Unlock()

	m.valid.Store(true)

	// No notification here: recomputes are pulled by reads, and downstream
	// listeners were already notified by the MarkDirty that invalidated us.
	_ = changed
}

// detach unsubscribes from all current sources.
func (m *Memo[T]) detach() {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()

	for _, source := range m.sources {
		source.unsubscribe(m)
	}
	m.sources = m.sources[:0]
}

func (m *Memo[T]) equals(a, b T) bool {
	if m.equal != nil {
		return m.equal(a, b)
	}
	return defaultEquals(a, b)
}

var (
	_ Readable[int] = (*Memo[int])(nil)
	_ sourceTracker = (*Memo[int])(nil)
)
