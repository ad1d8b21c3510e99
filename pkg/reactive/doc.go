// Package reactive provides the fine-grained reactive runtime for Lumen.
//
// Dependencies are tracked automatically at runtime: reading a signal while
// a listener is installed (memo computation, effect execution, or an explicit
// WithListener block) subscribes that listener to the signal's changes.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	count := reactive.NewSignal(0)
//	value := count.Get()  // read (subscribes current listener)
//	count.Set(5)          // write (notifies subscribers if changed)
//
// Memo[T] is a lazy cached derivation:
//
//	doubled := reactive.NewMemo(func() int { return count.Get() * 2 })
//	value := doubled.Get()  // recomputes only if a dependency changed
//
// Effect runs side effects when dependencies change:
//
//	reactive.CreateEffect(func() reactive.Cleanup {
//	    fmt.Println("count is", count.Get())
//	    return nil
//	})
//
// # Scopes
//
// A Scope owns the primitives created inside its Run block. Disposing the
// scope tears them down: subsequent Get/Peek calls panic with
// ErrScopeDisposed, while TryGet/TryPeek report absence instead. Primitives
// created outside any scope are never disposed.
//
// # Propagation
//
// Change propagation is synchronous and push-based. Setting a signal marks
// dependents dirty immediately; effects re-run inline unless a Batch is
// active, in which case notifications are deduplicated and delivered once
// when the outermost batch completes.
package reactive
