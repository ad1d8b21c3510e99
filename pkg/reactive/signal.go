package reactive

import (
	"reflect"
	"sync"
)

// signalBase provides type-erased subscriber management.
// It is embedded in Signal[T] and Memo[T] to share subscription logic.
type signalBase struct {
	id uint64

	// subs are the listeners subscribed to this signal.
	subs []Listener

	// subMu protects the subs slice.
	subMu sync.RWMutex
}

// subscribe adds a listener, deduplicating by listener ID.
func (s *signalBase) subscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return
		}
	}

	s.subs = append(s.subs, l)
}

// unsubscribe removes a listener from this signal's subscribers.
func (s *signalBase) unsubscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			// Order doesn't matter, swap with last.
			s.subs[i] = s.subs[len(s.subs)-1]
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// notifySubscribers marks all subscribers dirty, or queues them when a
// batch is active. Copy-before-notify so no lock is held during callbacks.
func (s *signalBase) notifySubscribers() {
	s.subMu.RLock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	if getBatchDepth() > 0 {
		for _, sub := range subs {
			queuePendingUpdate(sub)
		}
	} else {
		for _, sub := range subs {
			sub.MarkDirty()
		}
	}
}

// track subscribes the current listener (if any) to this signal and
// records the source on the listener for later unsubscription.
func (s *signalBase) track() {
	listener := getCurrentListener()
	if listener == nil {
		return
	}

	s.subscribe(listener)

	if st, ok := listener.(sourceTracker); ok {
		st.addSource(s)
	}
}

// sourceTracker is implemented by listeners (memos, effects) that keep a
// source list so they can unsubscribe before re-tracking.
type sourceTracker interface {
	Listener
	addSource(source *signalBase)
}

// Signal is a reactive value container.
// Reading it while a listener is installed subscribes that listener to
// future changes; writes notify subscribers only when the value actually
// changed under the configured equality.
type Signal[T any] struct {
	base signalBase

	// value is the current signal value.
	value T

	// mu protects the value.
	mu sync.RWMutex

	// equal determines whether a write changed the value.
	// If nil, defaultEquals is used.
	equal func(T, T) bool

	// scope is the owning Scope captured at creation, nil when created
	// outside any scope.
	scope *Scope
}

// NewSignal creates a signal with the given initial value, owned by the
// current scope if one is installed.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		base:  signalBase{id: nextID()},
		value: initial,
		scope: getCurrentScope(),
	}
}

// Get returns the current value and subscribes the current listener.
// Panics with ErrScopeDisposed if the owning scope has been disposed.
func (s *Signal[T]) Get() T {
	s.scope.checkLive()

	s.mu.RLock()
	value := s.value
	s.mu.RUnlock()

	// Track after releasing the value lock to prevent deadlock.
	s.base.track()

	return value
}

// TryGet is Get, but reports false instead of panicking after disposal.
func (s *Signal[T]) TryGet() (T, bool) {
	if !s.scope.isLive() {
		var zero T
		return zero, false
	}
	return s.Get(), true
}

// Peek returns the current value without subscribing.
// Panics with ErrScopeDisposed if the owning scope has been disposed.
func (s *Signal[T]) Peek() T {
	s.scope.checkLive()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// TryPeek is Peek, but reports false instead of panicking after disposal.
func (s *Signal[T]) TryPeek() (T, bool) {
	if !s.scope.isLive() {
		var zero T
		return zero, false
	}
	return s.Peek(), true
}

// Set updates the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.base.notifySubscribers()
	}
}

// Update atomically reads and updates the value.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	oldValue := s.value
	newValue := fn(oldValue)
	changed := !s.equals(oldValue, newValue)
	if changed {
		s.value = newValue
	}
	s.mu.Unlock()

	if changed {
		s.base.notifySubscribers()
	}
}

// WithEquals configures a custom equality function and returns the signal.
// Useful when reflect.DeepEqual is too expensive or has wrong semantics
// for T (pointer identity, for example).
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

var _ Readable[int] = (*Signal[int])(nil)

// defaultEquals provides type-appropriate equality: == for common comparable
// types, reflect.DeepEqual otherwise.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int8:
		return av == any(b).(int8)
	case int16:
		return av == any(b).(int16)
	case int32:
		return av == any(b).(int32)
	case int64:
		return av == any(b).(int64)
	case uint:
		return av == any(b).(uint)
	case uint8:
		return av == any(b).(uint8)
	case uint16:
		return av == any(b).(uint16)
	case uint32:
		return av == any(b).(uint32)
	case uint64:
		return av == any(b).(uint64)
	case float32:
		return av == any(b).(float32)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
