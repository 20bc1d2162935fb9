package engine

import "testing"

func TestEventInvokeOrder(t *testing.T) {
	var e Event
	var order []int
	e.AddListener(func() { order = append(order, 1) })
	e.AddListener(func() { order = append(order, 2) })

	e.Invoke()

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("Expected [1 2], got %v", order)
	}
}

func TestEventRemoveListener(t *testing.T) {
	var e Event
	calls := 0
	id := e.AddListener(func() { calls++ })
	e.AddListener(func() { calls += 10 })

	e.RemoveListener(id)
	e.Invoke()

	if calls != 10 {
		t.Errorf("Expected only the second listener to fire, calls=%d", calls)
	}
	if e.GetListenerCount() != 1 {
		t.Errorf("Expected 1 listener, got %d", e.GetListenerCount())
	}
}

func TestEventNilListener(t *testing.T) {
	var e Event
	if id := e.AddListener(nil); id != 0 {
		t.Errorf("Expected 0 for nil listener, got %d", id)
	}
	e.Invoke() // Should not panic
}

func TestEventWithArg(t *testing.T) {
	var e EventWithArg[string]
	var got []string
	id := e.AddListener(func(s string) { got = append(got, "a:"+s) })
	e.AddListener(func(s string) { got = append(got, "b:"+s) })

	e.Invoke("x")
	e.RemoveListener(id)
	e.Invoke("y")

	want := []string{"a:x", "b:x", "b:y"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
		}
	}

	e.RemoveAllListeners()
	if e.GetListenerCount() != 0 {
		t.Error("RemoveAllListeners should clear listeners")
	}
}
