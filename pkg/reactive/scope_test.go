package reactive

import "testing"

func TestScopeCleanupOrder(t *testing.T) {
	scope := NewScope(nil)

	var order []int
	scope.OnCleanup(func() { order = append(order, 1) })
	scope.OnCleanup(func() { order = append(order, 2) })

	scope.Dispose()

	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("cleanups should run in reverse order, got %v", order)
	}
}

func TestScopeCleanupAfterDisposeRunsImmediately(t *testing.T) {
	scope := NewScope(nil)
	scope.Dispose()

	ran := false
	scope.OnCleanup(func() { ran = true })

	if !ran {
		t.Error("OnCleanup on a disposed scope should run immediately")
	}
}

func TestScopeChildDisposal(t *testing.T) {
	parent := NewScope(nil)
	child := NewScope(parent)

	parent.Dispose()

	if !child.IsDisposed() {
		t.Error("disposing parent should dispose child")
	}
}

func TestScopeDisposeIdempotent(t *testing.T) {
	scope := NewScope(nil)
	cleanups := 0
	scope.OnCleanup(func() { cleanups++ })

	scope.Dispose()
	scope.Dispose()

	if cleanups != 1 {
		t.Errorf("double dispose should run cleanups once, got %d", cleanups)
	}
}

func TestScopeRunInstallsOwner(t *testing.T) {
	scope := NewScope(nil)

	scope.Run(func() {
		if getCurrentScope() != scope {
			t.Error("Run should install the scope as current owner")
		}
	})

	if getCurrentScope() != nil {
		t.Error("scope should be restored after Run")
	}
}
