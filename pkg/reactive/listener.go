package reactive

// Listener is anything that can be notified when a dependency changes.
// It is implemented by memos, effects, and test doubles.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	// For memos, this invalidates the cached value.
	// For effects, this triggers a re-run.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during batch processing.
	ID() uint64
}

// Cleanup is a function returned by effects to release resources.
// It is called before the effect re-runs and when the effect is disposed.
type Cleanup func()

// Readable is the uniform read surface shared by Signal and Memo.
// Code that only consumes values should accept a Readable so callers can
// hand it either primitive.
type Readable[T any] interface {
	// Get returns the current value and subscribes the current listener.
	// Panics with ErrScopeDisposed if the owning scope has been disposed.
	Get() T

	// Peek returns the current value without subscribing.
	// Panics with ErrScopeDisposed if the owning scope has been disposed.
	Peek() T

	// TryGet is Get, but reports false instead of panicking after disposal.
	TryGet() (T, bool)

	// TryPeek is Peek, but reports false instead of panicking after disposal.
	TryPeek() (T, bool)
}
