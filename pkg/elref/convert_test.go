package elref

import (
	"testing"

	"github.com/lumen-ui/lumen/pkg/dom"
	"github.com/lumen-ui/lumen/pkg/reactive"
)

// countingQueryer counts lookup executions against a backing document.
type countingQueryer struct {
	doc   *dom.Document
	calls int
}

func (q *countingQueryer) Query(selector string) (*dom.Element, bool) {
	q.calls++
	return q.doc.Query(selector)
}

func newTestDoc() *dom.Document {
	doc := dom.NewDocument()
	doc.Root().AppendChild(dom.NewElement("div").SetID("present"))
	doc.Root().AppendChild(dom.NewElement("div").SetID("a"))
	doc.Root().AppendChild(dom.NewElement("span").SetID("b"))
	return doc
}

func TestQueryEager(t *testing.T) {
	q := &countingQueryer{doc: newTestDoc()}

	ref := Query[*dom.Element](q, "#present")

	// Eager: the lookup ran at construction, before any read.
	if q.calls != 1 {
		t.Fatalf("expected 1 lookup at construction, got %d", q.calls)
	}
	if el, ok := ref.Get().Get(); !ok || el.ID() != "present" {
		t.Errorf("expected #present, got (%v, %v)", el, ok)
	}

	// Reads never re-execute the lookup.
	_ = ref.Get()
	_ = ref.Peek()
	if q.calls != 1 {
		t.Errorf("fixed reference re-ran the lookup, got %d calls", q.calls)
	}
}

func TestQueryMissingFreezesAbsence(t *testing.T) {
	doc := newTestDoc()
	ref := Query[*dom.Element](doc, "#missing")

	if ref.Get().IsPresent() {
		t.Fatal("missing selector should freeze absence")
	}

	// The snapshot stays absent even if a match appears later.
	doc.Root().AppendChild(dom.NewElement("div").SetID("missing"))
	if ref.Get().IsPresent() {
		t.Error("fixed reference must not observe later document changes")
	}
}

func TestQuerySignalLazyAndMemoized(t *testing.T) {
	q := &countingQueryer{doc: newTestDoc()}
	selector := reactive.NewSignal("#a")

	ref := QuerySignal[*dom.Element](q, selector)

	// Lazy: no lookup until first read.
	if q.calls != 0 {
		t.Fatalf("expected 0 lookups before first read, got %d", q.calls)
	}

	if el, ok := ref.Get().Get(); !ok || el.ID() != "a" {
		t.Fatalf("expected #a, got (%v, %v)", el, ok)
	}
	if q.calls != 1 {
		t.Fatalf("expected 1 lookup after first read, got %d", q.calls)
	}

	// Writing an equal string must not re-trigger resolution.
	selector.Set("#a")
	_ = ref.Get()
	if q.calls != 1 {
		t.Errorf("identical write re-triggered the lookup, got %d calls", q.calls)
	}
}

func TestQuerySignalRecomputesOnChange(t *testing.T) {
	q := &countingQueryer{doc: newTestDoc()}
	selector := reactive.NewSignal("#a")

	ref := QuerySignal[*dom.Element](q, selector)
	_ = ref.Get()

	selector.Set("#b")
	el, ok := ref.Get().Get()
	if !ok || el.ID() != "b" {
		t.Fatalf("expected #b after change, got (%v, %v)", el, ok)
	}
	if q.calls != 2 {
		t.Errorf("expected exactly 2 lookups, got %d", q.calls)
	}

	selector.Set("#missing")
	if ref.Get().IsPresent() {
		t.Error("expected absence for #missing")
	}
}

func TestQuerySignalAcceptsDerivedSelector(t *testing.T) {
	q := &countingQueryer{doc: newTestDoc()}
	id := reactive.NewSignal("a")
	selector := reactive.NewMemo(func() string { return "#" + id.Get() })

	ref := QuerySignal[*dom.Element](q, selector)

	if el, ok := ref.Get().Get(); !ok || el.ID() != "a" {
		t.Fatalf("expected #a, got (%v, %v)", el, ok)
	}
	if q.calls != 1 {
		t.Fatalf("expected 1 lookup, got %d", q.calls)
	}

	id.Set("b")
	if el, ok := ref.Get().Get(); !ok || el.ID() != "b" {
		t.Errorf("expected #b after derived change, got (%v, %v)", el, ok)
	}
	if q.calls != 2 {
		t.Errorf("expected 2 lookups, got %d", q.calls)
	}
}

func TestQuerySignalNotifiesDependents(t *testing.T) {
	doc := newTestDoc()
	selector := reactive.NewSignal("#a")
	ref := QuerySignal[*dom.Element](doc, selector)

	var seen []string
	reactive.CreateEffect(func() reactive.Cleanup {
		if el, ok := ref.Get().Get(); ok {
			seen = append(seen, el.ID())
		} else {
			seen = append(seen, "")
		}
		return nil
	})

	selector.Set("#b")

	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Errorf("expected [a b], got %v", seen)
	}
}

func TestFromSourceAlwaysPresent(t *testing.T) {
	el1 := dom.NewElement("div")
	el2 := dom.NewElement("span")
	src := reactive.NewSignal(el1)

	ref := FromSource[*dom.Element](src)

	if got, ok := ref.Get().Get(); !ok || got != el1 {
		t.Fatalf("expected Some(el1), got (%v, %v)", got, ok)
	}

	src.Set(el2)
	if got, ok := ref.Get().Get(); !ok || got != el2 {
		t.Errorf("expected Some(el2), got (%v, %v)", got, ok)
	}
}

func TestFromNodeRefLifecycle(t *testing.T) {
	doc := dom.NewDocument()
	nodeRef := dom.NewNodeRef[*dom.Element]()
	ref := FromNodeRef[dom.EventTarget](nodeRef)

	// Unbound handle resolves to absence.
	if ref.Get().IsPresent() {
		t.Fatal("expected absence before binding")
	}

	// A dependent tracking the reference before binding...
	var seen []bool
	reactive.CreateEffect(func() reactive.Cleanup {
		seen = append(seen, ref.Get().IsPresent())
		return nil
	})

	// ...is notified when the mounting layer binds the handle.
	el := dom.NewElement("button").SetID("go")
	doc.Mount(nil, el, nodeRef)

	if len(seen) != 2 || seen[0] || !seen[1] {
		t.Fatalf("expected [false true], got %v", seen)
	}

	// The resolution is the bound node, narrowed to the capability.
	target, ok := ref.Peek().Get()
	if !ok {
		t.Fatal("expected presence after binding")
	}
	if target.NodeName() != "BUTTON" {
		t.Errorf("expected BUTTON, got %s", target.NodeName())
	}
	if target != dom.EventTarget(el) {
		t.Error("capability should wrap the bound element")
	}

	// Remount rebinds and notifies again.
	doc.Unmount(el, nodeRef)
	if len(seen) != 3 || seen[2] {
		t.Errorf("expected unbind notification, got %v", seen)
	}
}

// narrowCap is a capability no element satisfies.
type narrowCap interface {
	NotAnElement()
}

func TestNarrowingFailureYieldsAbsence(t *testing.T) {
	doc := newTestDoc()

	ref := Query[narrowCap](doc, "#present")
	if ref.Get().IsPresent() {
		t.Error("unsatisfied capability should resolve to absence")
	}

	nodeRef := dom.NewNodeRef[*dom.Element]()
	nodeRef.Bind(dom.NewElement("div"))
	live := FromNodeRef[narrowCap](nodeRef)
	if live.Get().IsPresent() {
		t.Error("unsatisfied capability should resolve to absence for handles too")
	}
}
