package engine

// ListenerID identifies a registered listener so it can be removed later.
// Function values cannot be compared in Go, so removal goes through the ID.
type ListenerID uint32

// Event is a multi-cast event with no argument.
type Event struct {
	listeners []listener[struct{}]
	nextID    ListenerID
}

type listener[T any] struct {
	id ListenerID
	fn func(T)
}

// AddListener adds a callback to be invoked when the event fires.
// A nil callback is ignored and returns 0.
func (e *Event) AddListener(callback func()) ListenerID {
	if callback == nil {
		return 0
	}
	e.nextID++
	e.listeners = append(e.listeners, listener[struct{}]{id: e.nextID, fn: func(struct{}) { callback() }})
	return e.nextID
}

// RemoveListener unregisters the listener with the given ID.
func (e *Event) RemoveListener(id ListenerID) {
	e.listeners = removeListener(e.listeners, id)
}

// RemoveAllListeners clears all listeners
func (e *Event) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls all registered listeners in registration order.
func (e *Event) Invoke() {
	for _, l := range e.listeners {
		l.fn(struct{}{})
	}
}

func (e *Event) GetListenerCount() int {
	return len(e.listeners)
}

// EventWithArg is a generic event with one argument
type EventWithArg[T any] struct {
	listeners []listener[T]
	nextID    ListenerID
}

func (e *EventWithArg[T]) AddListener(callback func(T)) ListenerID {
	if callback == nil {
		return 0
	}
	e.nextID++
	e.listeners = append(e.listeners, listener[T]{id: e.nextID, fn: callback})
	return e.nextID
}

func (e *EventWithArg[T]) RemoveListener(id ListenerID) {
	e.listeners = removeListener(e.listeners, id)
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, l := range e.listeners {
		l.fn(arg)
	}
}

func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}

func removeListener[T any](s []listener[T], id ListenerID) []listener[T] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener[T]{}
			return s[:len(s)-1]
		}
	}
	return s
}
