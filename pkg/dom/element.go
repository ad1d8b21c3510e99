package dom

import "strings"

// Node is the capability common to everything in a document tree.
type Node interface {
	// NodeName returns the upper-cased tag name, mirroring DOM convention.
	NodeName() string
}

// EventTarget is the capability of anything that can receive events.
type EventTarget interface {
	Node

	// AddEventListener registers a handler for the given event type and
	// returns a function that removes it.
	AddEventListener(eventType string, handler func(Event)) (remove func())

	// DispatchEvent delivers an event to this target's handlers, then
	// bubbles it to ancestors.
	DispatchEvent(ev Event)
}

// Event is delivered to element listeners by DispatchEvent.
type Event struct {
	// Type is the event name ("click", "input", ...).
	Type string

	// Target is the element the event was dispatched on.
	Target *Element

	// Detail carries arbitrary payload.
	Detail any
}

type eventListener struct {
	id      uint64
	handler func(Event)
}

// Element is a mutable document tree node.
type Element struct {
	tag     string
	id      string
	classes []string
	attrs   map[string]string

	parent   *Element
	children []*Element

	listeners    map[string][]eventListener
	nextListener uint64
}

// NewElement creates a detached element with the given tag.
func NewElement(tag string) *Element {
	return &Element{tag: strings.ToLower(tag)}
}

// Tag returns the lower-cased tag name.
func (e *Element) Tag() string { return e.tag }

// NodeName implements the Node capability.
func (e *Element) NodeName() string { return strings.ToUpper(e.tag) }

// ID returns the element id ("" when unset).
func (e *Element) ID() string { return e.id }

// SetID sets the element id and returns the element for chaining.
func (e *Element) SetID(id string) *Element {
	e.id = id
	return e
}

// AddClass appends classes, skipping duplicates, and returns the element.
func (e *Element) AddClass(classes ...string) *Element {
	for _, c := range classes {
		if !e.HasClass(c) {
			e.classes = append(e.classes, c)
		}
	}
	return e
}

// RemoveClass removes a class if present.
func (e *Element) RemoveClass(class string) *Element {
	for i, c := range e.classes {
		if c == class {
			e.classes = append(e.classes[:i], e.classes[i+1:]...)
			break
		}
	}
	return e
}

// HasClass reports whether the element carries the given class.
func (e *Element) HasClass(class string) bool {
	for _, c := range e.classes {
		if c == class {
			return true
		}
	}
	return false
}

// Classes returns a copy of the class list.
func (e *Element) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// SetAttr sets an attribute and returns the element for chaining.
// "id" and "class" are routed to their dedicated fields.
func (e *Element) SetAttr(key, value string) *Element {
	switch key {
	case "id":
		return e.SetID(value)
	case "class":
		return e.AddClass(strings.Fields(value)...)
	}
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[key] = value
	return e
}

// Attr returns the attribute value and whether it is set.
func (e *Element) Attr(key string) (string, bool) {
	switch key {
	case "id":
		return e.id, e.id != ""
	case "class":
		return strings.Join(e.classes, " "), len(e.classes) > 0
	}
	v, ok := e.attrs[key]
	return v, ok
}

// Attrs returns a copy of the attribute map, including id and class.
func (e *Element) Attrs() map[string]string {
	out := make(map[string]string, len(e.attrs)+2)
	for k, v := range e.attrs {
		out[k] = v
	}
	if e.id != "" {
		out["id"] = e.id
	}
	if len(e.classes) > 0 {
		out["class"] = strings.Join(e.classes, " ")
	}
	return out
}

// Parent returns the parent element, nil when detached.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// AppendChild attaches child as the last child, detaching it from any
// previous parent first. Returns the element for chaining.
func (e *Element) AppendChild(child *Element) *Element {
	if child == nil || child == e {
		return e
	}
	child.Remove()
	child.parent = e
	e.children = append(e.children, child)
	return e
}

// Remove detaches the element from its parent. No-op when detached.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// AddEventListener implements the EventTarget capability.
func (e *Element) AddEventListener(eventType string, handler func(Event)) (remove func()) {
	if e.listeners == nil {
		e.listeners = make(map[string][]eventListener)
	}
	e.nextListener++
	id := e.nextListener
	e.listeners[eventType] = append(e.listeners[eventType], eventListener{id: id, handler: handler})

	return func() {
		ls := e.listeners[eventType]
		for i, l := range ls {
			if l.id == id {
				e.listeners[eventType] = append(ls[:i], ls[i+1:]...)
				return
			}
		}
	}
}

// DispatchEvent delivers ev to this element's handlers, then bubbles to
// ancestors. The event's Target is set to this element if unset.
func (e *Element) DispatchEvent(ev Event) {
	if ev.Target == nil {
		ev.Target = e
	}
	for n := e; n != nil; n = n.parent {
		// Copy before invoking: handlers may remove themselves.
		ls := append([]eventListener(nil), n.listeners[ev.Type]...)
		for _, l := range ls {
			l.handler(ev)
		}
	}
}

// walk visits e and its descendants depth-first in document order until
// visit returns false.
func (e *Element) walk(visit func(*Element) bool) bool {
	if !visit(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(visit) {
			return false
		}
	}
	return true
}

var (
	_ Node        = (*Element)(nil)
	_ EventTarget = (*Element)(nil)
)
