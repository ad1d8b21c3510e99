package dom

import (
	"testing"

	"github.com/lumen-ui/lumen/pkg/reactive"
)

func TestNodeRefUnboundYieldsAbsence(t *testing.T) {
	ref := NewNodeRef[*Element]()

	if ref.Binding().IsPresent() {
		t.Error("unbound ref should yield absence")
	}
	if ref.IsBound() {
		t.Error("IsBound should be false before binding")
	}
}

func TestNodeRefBindNotifiesDependents(t *testing.T) {
	ref := NewNodeRef[*Element]()
	el := NewElement("div")

	runs := 0
	var last bool
	reactive.CreateEffect(func() reactive.Cleanup {
		last = ref.Binding().IsPresent()
		runs++
		return nil
	})

	if runs != 1 || last {
		t.Fatalf("before bind: runs=%d present=%v, want 1/false", runs, last)
	}

	ref.Bind(el)

	if runs != 2 || !last {
		t.Errorf("after bind: runs=%d present=%v, want 2/true", runs, last)
	}

	if got, _ := ref.PeekBinding().Get(); got != el {
		t.Error("binding should yield the mounted element")
	}
}

func TestNodeRefRebindSameNodeIsQuiet(t *testing.T) {
	ref := NewNodeRef[*Element]()
	el := NewElement("div")
	ref.Bind(el)

	runs := 0
	reactive.CreateEffect(func() reactive.Cleanup {
		_ = ref.Binding()
		runs++
		return nil
	})

	ref.Bind(el)
	if runs != 1 {
		t.Errorf("rebinding the same node should not notify, got %d runs", runs)
	}

	ref.Bind(NewElement("div"))
	if runs != 2 {
		t.Errorf("rebinding a different node should notify, got %d runs", runs)
	}
}

func TestNodeRefMountCycle(t *testing.T) {
	doc := NewDocument()
	ref := NewNodeRef[*Element]()
	el := NewElement("div").SetID("widget")

	doc.Mount(nil, el, ref)

	if !ref.IsBound() {
		t.Fatal("Mount should bind the ref")
	}
	if _, ok := doc.Query("#widget"); !ok {
		t.Error("mounted element should be queryable")
	}

	doc.Unmount(el, ref)

	if ref.IsBound() {
		t.Error("Unmount should unbind the ref")
	}
	if _, ok := doc.Query("#widget"); ok {
		t.Error("unmounted element should not be queryable")
	}
}

func TestNodeRefDisposedScope(t *testing.T) {
	scope := reactive.NewScope(nil)

	var ref *NodeRef[*Element]
	scope.Run(func() {
		ref = NewNodeRef[*Element]()
	})

	scope.Dispose()

	if _, ok := ref.TryBinding(); ok {
		t.Error("TryBinding after scope disposal should report false")
	}
}
