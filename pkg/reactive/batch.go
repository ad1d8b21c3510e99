package reactive

// Batch groups multiple signal updates into a single notification phase.
// Updates inside the batch are collected and deduplicated; affected
// listeners are notified once when the outermost batch completes.
//
//	reactive.Batch(func() {
//	    firstName.Set("John")
//	    lastName.Set("Doe")
//	})
//	// dependents re-run once with both changes
//
// Batches can be nested; notifications fire when the outermost completes.
func Batch(fn func()) {
	incrementBatchDepth()

	defer func() {
		if decrementBatchDepth() {
			processPendingUpdates()
		}
	}()

	fn()
}

// processPendingUpdates deduplicates and notifies all pending listeners.
func processPendingUpdates() {
	updates := drainPendingUpdates()
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	unique := make([]Listener, 0, len(updates))

	for _, listener := range updates {
		id := listener.ID()
		if !seen[id] {
			seen[id] = true
			unique = append(unique, listener)
		}
	}

	for _, listener := range unique {
		listener.MarkDirty()
	}
}

// Untracked runs fn without tracking signal reads as dependencies.
// For single reads prefer Peek, which is clearer in intent.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}

// UntrackedGet reads a value without creating a dependency.
// Convenience equivalent of src.Peek().
func UntrackedGet[T any](src Readable[T]) T {
	return src.Peek()
}
