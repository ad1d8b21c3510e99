package elref

import (
	"github.com/samber/mo"

	"github.com/lumen-ui/lumen/pkg/dom"
	"github.com/lumen-ui/lumen/pkg/reactive"
)

// Of creates a fixed reference holding the given element.
func Of[E any](el E) ElementRef[E] {
	return ElementRef[E]{variant: variantFixed, fixed: mo.Some(el)}
}

// OfOption creates a fixed reference from an optional element, preserving
// absence.
func OfOption[E any](el mo.Option[E]) ElementRef[E] {
	return ElementRef[E]{variant: variantFixed, fixed: el}
}

// None creates a fixed, absent reference (the zero value, spelled out).
func None[E any]() ElementRef[E] {
	return ElementRef[E]{}
}

// Query creates a fixed reference by resolving the selector eagerly: the
// lookup runs exactly once, here, and the result is frozen into the
// reference. It is never re-evaluated, even if the document changes later.
// A selector matching nothing freezes absence.
func Query[E any](q dom.Queryer, selector string) ElementRef[E] {
	el, ok := q.Query(selector)
	if !ok {
		return ElementRef[E]{variant: variantFixed, fixed: mo.None[E]()}
	}
	return ElementRef[E]{variant: variantFixed, fixed: narrow[E](el)}
}

// QuerySignal creates a live reference from a reactive selector string, a
// Signal or anything else Readable. The lookup is lazy and memoized: it runs
// on first read and again only when the string's tracked value actually
// changes. Writing an equal string re-uses the cached resolution without
// touching the Queryer. Exactly one lookup runs per recomputation.
func QuerySignal[E any](q dom.Queryer, selector reactive.Readable[string]) ElementRef[E] {
	m := reactive.NewMemo(func() mo.Option[E] {
		el, ok := q.Query(selector.Get())
		if !ok {
			return mo.None[E]()
		}
		return narrow[E](el)
	}).WithEquals(sameResolved[E])

	return ElementRef[E]{variant: variantLive, live: m}
}

// FromOptionSource creates a live reference from a reactive cell that
// already yields optional elements. The cell is used as-is, no wrapping.
func FromOptionSource[E any](src reactive.Readable[mo.Option[E]]) ElementRef[E] {
	return ElementRef[E]{variant: variantLive, live: src}
}

// FromSource creates a live reference from a reactive cell whose element is
// never absent, wrapping each value in presence to match the optional
// contract.
func FromSource[E any](src reactive.Readable[E]) ElementRef[E] {
	m := reactive.NewMemo(func() mo.Option[E] {
		return mo.Some(src.Get())
	}).WithEquals(sameResolved[E])

	return ElementRef[E]{variant: variantLive, live: m}
}

// FromNodeRef creates a live reference from a forward-declared handle,
// narrowing the bound node to the target capability E. Reads yield absence
// until the mounting layer binds the handle; binding (and every rebind)
// notifies dependents like any other cell mutation.
func FromNodeRef[E any, T dom.Node](ref *dom.NodeRef[T]) ElementRef[E] {
	m := reactive.NewMemo(func() mo.Option[E] {
		node, ok := ref.Binding().Get()
		if !ok {
			return mo.None[E]()
		}
		return narrow[E](node)
	}).WithEquals(sameResolved[E])

	return ElementRef[E]{variant: variantLive, live: m}
}

// narrow converts a resolved node to the target capability. A node that
// does not satisfy E resolves to absence, keeping construction total.
func narrow[E any](node any) mo.Option[E] {
	if node == nil {
		return mo.None[E]()
	}
	if c, ok := node.(E); ok {
		return mo.Some(c)
	}
	return mo.None[E]()
}

// sameResolved compares resolutions by presence and element identity.
// Deep equality would walk subtrees (with parent cycles) on every
// recompute.
func sameResolved[E any](a, b mo.Option[E]) bool {
	av, aok := a.Get()
	bv, bok := b.Get()
	if aok != bok {
		return false
	}
	if !aok {
		return true
	}
	return any(av) == any(bv)
}
