package reactive

import (
	"runtime"
	"sync"
)

// trackingContext holds the reactive state for a goroutine.
// Each goroutine has its own context so concurrent consumers can track
// dependencies without interfering with each other.
type trackingContext struct {
	// currentScope owns newly created signals, memos and effects.
	currentScope *Scope

	// currentListener is what's currently tracking dependencies.
	// When a signal is read, it subscribes this listener.
	// nil means no tracking (reads don't create subscriptions).
	currentListener Listener

	// batchDepth tracks nested Batch() calls.
	// When > 0, signal updates queue notifications instead of firing immediately.
	batchDepth int

	// pendingUpdates accumulates listeners to notify when the batch completes.
	// Deduplicated by ID before notification.
	pendingUpdates []Listener
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getGoroutineID returns a unique identifier for the current goroutine,
// parsed from the runtime stack header. Implementation detail; never exposed.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// The stack starts with "goroutine <id> ".
	var id uint64
	for i := 10; i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// getTrackingContext returns the tracking context for the current goroutine,
// creating one if none exists.
func getTrackingContext() *trackingContext {
	gid := getGoroutineID()

	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}

	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// getCurrentListener returns the listener currently tracking dependencies,
// or nil if no tracking is active.
func getCurrentListener() Listener {
	return getTrackingContext().currentListener
}

// setCurrentListener installs a listener for dependency tracking and
// returns the previous one so it can be restored.
func setCurrentListener(l Listener) Listener {
	ctx := getTrackingContext()
	old := ctx.currentListener
	ctx.currentListener = l
	return old
}

// getCurrentScope returns the scope that owns newly created primitives,
// or nil if none is set.
func getCurrentScope() *Scope {
	return getTrackingContext().currentScope
}

// setCurrentScope installs the owning scope for primitive creation and
// returns the previous one so it can be restored.
func setCurrentScope(s *Scope) *Scope {
	ctx := getTrackingContext()
	old := ctx.currentScope
	ctx.currentScope = s
	return old
}

func getBatchDepth() int {
	return getTrackingContext().batchDepth
}

func incrementBatchDepth() {
	getTrackingContext().batchDepth++
}

// decrementBatchDepth reports true when the outermost batch completed.
func decrementBatchDepth() bool {
	ctx := getTrackingContext()
	ctx.batchDepth--
	return ctx.batchDepth == 0
}

// queuePendingUpdate records a listener to notify when the batch completes.
func queuePendingUpdate(l Listener) {
	ctx := getTrackingContext()
	ctx.pendingUpdates = append(ctx.pendingUpdates, l)
}

// drainPendingUpdates returns and clears the queued notifications.
func drainPendingUpdates() []Listener {
	ctx := getTrackingContext()
	updates := ctx.pendingUpdates
	ctx.pendingUpdates = nil
	return updates
}

// WithListener runs fn with l installed as the tracking listener.
// Used internally by memos and effects, and by tests that want to observe
// subscription behavior directly.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer setCurrentListener(old)
	fn()
}

// WithScope runs fn with s as the owning scope for any primitives created
// inside. Used when spawning goroutines that must create primitives
// belonging to an existing scope.
func WithScope(s *Scope, fn func()) {
	old := setCurrentScope(s)
	defer setCurrentScope(old)
	fn()
}
