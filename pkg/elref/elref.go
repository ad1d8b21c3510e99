package elref

import (
	"github.com/samber/mo"

	"github.com/lumen-ui/lumen/pkg/reactive"
)

// variant discriminates the two states of a reference. There is no third
// state: the capability type is a type parameter, not a runtime value.
type variant uint8

const (
	variantFixed variant = iota
	variantLive
)

// ElementRef is a reference to zero-or-one element of capability E, either
// fixed at construction or tracking a live reactive source. Construct with
// Of, OfOption, None, Query, QuerySignal, FromSource, FromOptionSource or
// FromNodeRef; the zero value is a fixed, absent reference.
//
// ElementRef is a small value type: pass it by value. Copies of a live
// reference share the underlying cell.
type ElementRef[E any] struct {
	variant variant

	// fixed is the snapshot for the fixed variant.
	fixed mo.Option[E]

	// live is the shared cell for the live variant.
	live reactive.Readable[mo.Option[E]]
}

// IsLive reports whether the reference tracks a live source.
func (r ElementRef[E]) IsLive() bool {
	return r.variant == variantLive
}

// Get returns the current resolution, tracked: inside a memo computation or
// effect, the caller is subscribed to future changes of a live reference.
// Panics with reactive.ErrScopeDisposed if the owning scope is gone; use
// TryGet when teardown races are expected. Fixed references never panic.
func (r ElementRef[E]) Get() mo.Option[E] {
	if r.variant == variantLive {
		return r.live.Get()
	}
	return r.fixed
}

// TryGet is Get, but reports false instead of panicking after the owning
// scope is disposed. Always succeeds for fixed references.
func (r ElementRef[E]) TryGet() (mo.Option[E], bool) {
	if r.variant == variantLive {
		return r.live.TryGet()
	}
	return r.fixed, true
}

// Peek returns the current resolution without subscribing.
func (r ElementRef[E]) Peek() mo.Option[E] {
	if r.variant == variantLive {
		return r.live.Peek()
	}
	return r.fixed
}

// TryPeek is Peek's fallible form.
func (r ElementRef[E]) TryPeek() (mo.Option[E], bool) {
	if r.variant == variantLive {
		return r.live.TryPeek()
	}
	return r.fixed, true
}

// With passes the current resolution to fn, with the same tracking and
// disposal semantics as Get.
func (r ElementRef[E]) With(fn func(mo.Option[E])) {
	fn(r.Get())
}

// TryWith is With's fallible form; fn is not called after disposal.
func (r ElementRef[E]) TryWith(fn func(mo.Option[E])) bool {
	v, ok := r.TryGet()
	if !ok {
		return false
	}
	fn(v)
	return true
}

// WithUntracked passes the current resolution to fn without subscribing.
func (r ElementRef[E]) WithUntracked(fn func(mo.Option[E])) {
	fn(r.Peek())
}

// TryWithUntracked is WithUntracked's fallible form.
func (r ElementRef[E]) TryWithUntracked(fn func(mo.Option[E])) bool {
	v, ok := r.TryPeek()
	if !ok {
		return false
	}
	fn(v)
	return true
}
