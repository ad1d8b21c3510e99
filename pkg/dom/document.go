package dom

import (
	"sync"
	"time"
)

// Queryer is the lookup capability consumed by element-reference
// constructors: resolve a selector to zero-or-one element. Satisfied by
// *Document; tests wrap it to count lookup executions.
type Queryer interface {
	Query(selector string) (*Element, bool)
}

// DocumentOption configures a Document.
type DocumentOption func(*Document)

// WithDocumentMetrics attaches prometheus instrumentation to the document's
// query and mount paths.
func WithDocumentMetrics(m *Metrics) DocumentOption {
	return func(d *Document) {
		d.metrics = m
	}
}

// Document owns an element tree and resolves selector queries against it.
//
// Tree structure is guarded by an internal lock: Mount and Unmount may run
// on one goroutine while Query, QueryAll and ReadTree run on others.
// Mutating elements directly (AppendChild, Remove) bypasses the lock and is
// only safe before the document is shared.
type Document struct {
	root    *Element
	metrics *Metrics

	// mu guards tree structure.
	mu sync.RWMutex
}

// NewDocument creates a document with an empty root element.
func NewDocument(opts ...DocumentOption) *Document {
	d := &Document{
		root: NewElement("root"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Root returns the document's root element.
func (d *Document) Root() *Element { return d.root }

// Query resolves a selector to the first matching element in document
// order. A selector that parses but matches nothing and a malformed
// selector both report false; absence is a valid, terminal answer.
func (d *Document) Query(selector string) (*Element, bool) {
	start := time.Now()
	d.mu.RLock()
	el, ok := d.query(selector)
	d.mu.RUnlock()
	if d.metrics != nil {
		d.metrics.observeQuery(ok, time.Since(start))
	}
	return el, ok
}

func (d *Document) query(selector string) (*Element, bool) {
	steps, ok := parseSelector(selector)
	if !ok {
		return nil, false
	}

	var found *Element
	d.root.walk(func(e *Element) bool {
		if e != d.root && selectorMatches(steps, e) {
			found = e
			return false
		}
		return true
	})
	return found, found != nil
}

// QueryAll returns every element matching the selector, in document order.
func (d *Document) QueryAll(selector string) []*Element {
	steps, ok := parseSelector(selector)
	if !ok {
		return nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []*Element
	d.root.walk(func(e *Element) bool {
		if e != d.root && selectorMatches(steps, e) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Mount attaches el under parent and binds ref to it. A nil parent mounts
// under the root; a nil ref just attaches the element. This is the mounting
// layer for forward-declared handles: dependents tracking ref observe the
// binding exactly like any other cell mutation.
func (d *Document) Mount(parent, el *Element, ref *NodeRef[*Element]) {
	if parent == nil {
		parent = d.root
	}
	d.mu.Lock()
	parent.AppendChild(el)
	d.mu.Unlock()

	// Bind outside the lock: dependents re-run synchronously and may query
	// the document.
	if ref != nil {
		ref.Bind(el)
	}
	if d.metrics != nil {
		d.metrics.observeMount()
	}
}

// Unmount detaches el from the tree and unbinds ref.
func (d *Document) Unmount(el *Element, ref *NodeRef[*Element]) {
	d.mu.Lock()
	el.Remove()
	d.mu.Unlock()

	if ref != nil {
		ref.Unbind()
	}
	if d.metrics != nil {
		d.metrics.observeUnmount()
	}
}

// ReadTree runs fn with the tree read-locked, so fn can walk the structure
// while Mount and Unmount run on other goroutines. fn must not retain the
// root or mutate the tree.
func (d *Document) ReadTree(fn func(root *Element)) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	fn(d.root)
}

var _ Queryer = (*Document)(nil)
