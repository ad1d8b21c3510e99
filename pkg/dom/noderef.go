package dom

import (
	"github.com/samber/mo"

	"github.com/lumen-ui/lumen/pkg/reactive"
)

// NodeRef is a forward-declared handle to an element that does not exist
// yet: declared first, bound later (once or repeatedly across remounts) by
// the mounting layer. The binding is backed by a reactive signal, so a
// tracked read before binding subscribes the reader and a later Bind
// notifies it like any other cell mutation.
//
//	ref := dom.NewNodeRef[*dom.Element]()
//	// ... hand ref to something that reads it ...
//	doc.Mount(parent, el, ref) // binds, dependents re-run
type NodeRef[T Node] struct {
	binding *reactive.Signal[mo.Option[T]]
}

// NewNodeRef creates an unbound handle, owned by the current reactive scope
// if one is installed.
func NewNodeRef[T Node]() *NodeRef[T] {
	sig := reactive.NewSignal(mo.None[T]()).WithEquals(sameBinding[T])
	return &NodeRef[T]{binding: sig}
}

// Bind sets the handle's current binding. Rebinding to a different node
// notifies dependents; rebinding the same node is a no-op.
func (r *NodeRef[T]) Bind(node T) {
	r.binding.Set(mo.Some(node))
}

// Unbind clears the binding, notifying dependents.
func (r *NodeRef[T]) Unbind() {
	r.binding.Set(mo.None[T]())
}

// Binding returns the current binding, tracked.
func (r *NodeRef[T]) Binding() mo.Option[T] {
	return r.binding.Get()
}

// PeekBinding returns the current binding without subscribing.
func (r *NodeRef[T]) PeekBinding() mo.Option[T] {
	return r.binding.Peek()
}

// TryBinding is Binding, but reports false instead of panicking when the
// owning scope has been disposed.
func (r *NodeRef[T]) TryBinding() (mo.Option[T], bool) {
	return r.binding.TryGet()
}

// TryPeekBinding is PeekBinding's fallible form.
func (r *NodeRef[T]) TryPeekBinding() (mo.Option[T], bool) {
	return r.binding.TryPeek()
}

// IsBound reports whether a binding currently exists, without subscribing.
func (r *NodeRef[T]) IsBound() bool {
	return r.binding.Peek().IsPresent()
}

// sameBinding compares bindings by presence and node identity. DeepEqual
// would walk the whole subtree (and parent links) on every write.
func sameBinding[T Node](a, b mo.Option[T]) bool {
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
