package reactive

import "testing"

func TestSignalBasic(t *testing.T) {
	count := NewSignal(0)

	if count.Get() != 0 {
		t.Errorf("expected initial value 0, got %d", count.Get())
	}

	count.Set(5)
	if count.Get() != 5 {
		t.Errorf("expected value 5, got %d", count.Get())
	}

	count.Update(func(n int) int { return n * 2 })
	if count.Get() != 10 {
		t.Errorf("expected value 10, got %d", count.Get())
	}
}

func TestSignalSubscription(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = count.Get()
	})

	count.Set(1)
	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification, got %d", listener.getDirtyCount())
	}

	// Same value should not notify.
	count.Set(1)
	if listener.getDirtyCount() != 1 {
		t.Errorf("same value should not notify, got %d", listener.getDirtyCount())
	}

	count.Set(2)
	if listener.getDirtyCount() != 2 {
		t.Errorf("expected 2 notifications, got %d", listener.getDirtyCount())
	}
}

func TestSignalPeekDoesNotSubscribe(t *testing.T) {
	count := NewSignal(42)
	listener := newTestListener()

	WithListener(listener, func() {
		if v := count.Peek(); v != 42 {
			t.Errorf("expected 42, got %d", v)
		}
	})

	count.Set(100)
	if listener.getDirtyCount() != 0 {
		t.Errorf("Peek should not subscribe, got %d notifications", listener.getDirtyCount())
	}
}

func TestSignalNoTrackingOutsideContext(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	// Read outside any tracking context.
	_ = count.Get()

	count.Set(1)
	if listener.getDirtyCount() != 0 {
		t.Errorf("untracked read should not subscribe, got %d notifications", listener.getDirtyCount())
	}
}

func TestSignalWithEquals(t *testing.T) {
	// Treat all even values as equal to each other.
	sig := NewSignal(0).WithEquals(func(a, b int) bool {
		return a%2 == b%2
	})
	listener := newTestListener()

	WithListener(listener, func() {
		_ = sig.Get()
	})

	sig.Set(2) // even -> even: no change under custom equality
	if listener.getDirtyCount() != 0 {
		t.Errorf("custom equality should suppress notification, got %d", listener.getDirtyCount())
	}

	sig.Set(3) // even -> odd: change
	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification, got %d", listener.getDirtyCount())
	}
}

func TestSignalTryGetLive(t *testing.T) {
	sig := NewSignal("hello")

	v, ok := sig.TryGet()
	if !ok || v != "hello" {
		t.Errorf("TryGet on live signal = (%q, %v), want (hello, true)", v, ok)
	}

	v, ok = sig.TryPeek()
	if !ok || v != "hello" {
		t.Errorf("TryPeek on live signal = (%q, %v), want (hello, true)", v, ok)
	}
}

func TestSignalDisposedScope(t *testing.T) {
	scope := NewScope(nil)

	var sig *Signal[int]
	scope.Run(func() {
		sig = NewSignal(7)
	})

	scope.Dispose()

	if _, ok := sig.TryGet(); ok {
		t.Error("TryGet after scope disposal should report false")
	}
	if _, ok := sig.TryPeek(); ok {
		t.Error("TryPeek after scope disposal should report false")
	}

	defer func() {
		if r := recover(); r != ErrScopeDisposed {
			t.Errorf("Get after disposal should panic with ErrScopeDisposed, got %v", r)
		}
	}()
	_ = sig.Get()
}
