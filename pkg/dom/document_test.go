package dom

import (
	"sync"
	"testing"
)

func TestConcurrentMountAndQuery(t *testing.T) {
	doc := NewDocument()
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		defer close(done)
		for i := 0; i < 200; i++ {
			el := NewElement("div").SetID("spinner")
			doc.Mount(nil, el, nil)
			doc.Unmount(el, nil)
		}
	}()

	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			doc.Query("#spinner")
			doc.QueryAll("div")
		}
	}()

	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			doc.ReadTree(func(root *Element) {
				root.walk(func(*Element) bool { return true })
			})
		}
	}()

	wg.Wait()
}

func TestReadTreeSeesMounts(t *testing.T) {
	doc := NewDocument()
	doc.Mount(nil, NewElement("div").SetID("a"), nil)

	var ids []string
	doc.ReadTree(func(root *Element) {
		for _, c := range root.Children() {
			ids = append(ids, c.ID())
		}
	})

	if len(ids) != 1 || ids[0] != "a" {
		t.Errorf("expected [a], got %v", ids)
	}
}
