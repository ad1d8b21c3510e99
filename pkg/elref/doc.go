// Package elref provides ElementRef, a polymorphic reference to "an element,
// maybe an element, or a live source of an element".
//
// Helper APIs that operate on a target element (event subscription, focus
// management, observers) shouldn't care how the caller produced that target:
// a literal element, an optional, a selector string, a reactive string, a
// signal, or a NodeRef bound later by the mounting layer. ElementRef unifies
// all of those behind one read surface:
//
//	func UseClicks[E dom.EventTarget](target elref.ElementRef[E]) { ... }
//
//	UseClicks(elref.Of[dom.EventTarget](btn))
//	UseClicks(elref.Query[dom.EventTarget](doc, "#submit"))
//	UseClicks(elref.FromNodeRef[dom.EventTarget](btnRef))
//
// A reference is either fixed (an immutable snapshot captured at
// construction) or live (a shared handle into the reactive runtime); the
// variant never changes after construction. Copying a fixed reference copies
// the snapshot; copying a live reference duplicates the handle, so every
// copy observes the same stream. The zero value is a fixed, absent
// reference.
//
// The type parameter E is the target capability: the interface the resolved
// element is narrowed to for the consumer's purposes (dom.Node,
// dom.EventTarget, or *dom.Element itself). It carries no runtime state.
//
// Static selector strings resolve eagerly, exactly once, at construction;
// reactive selector strings resolve lazily through a memo that re-runs the
// lookup only when the string's value actually changes: a literal selector
// is a snapshot request, a reactive one is a live subscription.
package elref
