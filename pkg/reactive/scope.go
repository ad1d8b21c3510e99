package reactive

import (
	"sync"
	"sync/atomic"
)

// Scope owns reactive primitives and controls their lifetime.
// Signals, memos and effects created inside Run belong to the scope; when
// the scope is disposed they are torn down with it. Scopes form a tree:
// disposing a parent disposes all children first (in reverse creation
// order), then the scope's own effects, then its cleanups.
//
// After disposal, non-try reads of owned signals and memos panic with
// ErrScopeDisposed; try reads report absence.
type Scope struct {
	id uint64

	// parent is nil for a root Scope.
	parent *Scope

	children   []*Scope
	childrenMu sync.Mutex

	// effects owned by this scope.
	effects   []*Effect
	effectsMu sync.Mutex

	// cleanups registered via OnCleanup, run in reverse order at disposal.
	cleanups   []func()
	cleanupsMu sync.Mutex

	disposed atomic.Bool
}

// NewScope creates a Scope under parent. A nil parent creates a root scope.
func NewScope(parent *Scope) *Scope {
	s := &Scope{
		id:     nextID(),
		parent: parent,
	}
	if parent != nil {
		parent.addChild(s)
	}
	return s
}

// ID returns the unique identifier for this scope.
func (s *Scope) ID() uint64 { return s.id }

// Parent returns the parent scope, or nil for a root scope.
func (s *Scope) Parent() *Scope { return s.parent }

// IsDisposed reports whether Dispose has been called.
func (s *Scope) IsDisposed() bool { return s.disposed.Load() }

// Run executes fn with this scope installed as the owner of any reactive
// primitives fn creates.
func (s *Scope) Run(fn func()) {
	WithScope(s, fn)
}

// OnCleanup registers fn to run when this scope is disposed.
// If the scope is already disposed, fn runs immediately.
func (s *Scope) OnCleanup(fn func()) {
	if s.disposed.Load() {
		fn()
		return
	}

	s.cleanupsMu.Lock()
	defer s.cleanupsMu.Unlock()
	s.cleanups = append(s.cleanups, fn)
}

// Dispose tears down this scope, its children, effects and cleanups.
// Disposing twice is a no-op.
func (s *Scope) Dispose() {
	if s.disposed.Swap(true) {
		return
	}

	if s.parent != nil {
		s.parent.removeChild(s)
	}

	// Children in reverse creation order.
	s.childrenMu.Lock()
	children := make([]*Scope, len(s.children))
	copy(children, s.children)
	s.children = nil
	s.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	s.effectsMu.Lock()
	effects := s.effects
	s.effects = nil
	s.effectsMu.Unlock()

	for _, e := range effects {
		e.dispose()
	}

	// Cleanups in reverse registration order.
	s.cleanupsMu.Lock()
	cleanups := s.cleanups
	s.cleanups = nil
	s.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

func (s *Scope) addChild(child *Scope) {
	s.childrenMu.Lock()
	defer s.childrenMu.Unlock()
	s.children = append(s.children, child)
}

func (s *Scope) removeChild(child *Scope) {
	s.childrenMu.Lock()
	defer s.childrenMu.Unlock()

	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

func (s *Scope) registerEffect(e *Effect) {
	if s.disposed.Load() {
		return
	}

	s.effectsMu.Lock()
	defer s.effectsMu.Unlock()
	s.effects = append(s.effects, e)
}

// checkLive panics with ErrScopeDisposed when the scope is gone.
// A nil receiver means "no owning scope" and is always live.
func (s *Scope) checkLive() {
	if s != nil && s.disposed.Load() {
		panic(ErrScopeDisposed)
	}
}

// isLive reports whether reads of primitives owned by s are still valid.
func (s *Scope) isLive() bool {
	return s == nil || !s.disposed.Load()
}
