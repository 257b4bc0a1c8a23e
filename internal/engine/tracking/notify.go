package tracking

import "github.com/dshills/hexstorm/internal/engine/cursor"

// Observer is told about every edit after it has been applied.
type Observer interface {
	EditApplied(edit cursor.Edit)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(edit cursor.Edit)

// EditApplied calls f(edit).
func (f ObserverFunc) EditApplied(edit cursor.Edit) {
	f(edit)
}

// Notifier delivers edits to registered observers in registration order.
type Notifier struct {
	observers []subscription
	nextID    int
}

type subscription struct {
	id int
	o  Observer
}

// Subscribe registers an observer and returns a function that removes it.
func (n *Notifier) Subscribe(o Observer) (unsubscribe func()) {
	n.nextID++
	id := n.nextID
	n.observers = append(n.observers, subscription{id: id, o: o})
	return func() {
		for i, s := range n.observers {
			if s.id == id {
				n.observers = append(n.observers[:i], n.observers[i+1:]...)
				return
			}
		}
	}
}

// Notify delivers edit to every observer.
func (n *Notifier) Notify(edit cursor.Edit) {
	for _, s := range n.observers {
		s.o.EditApplied(edit)
	}
}

// Len returns the number of observers.
func (n *Notifier) Len() int {
	return len(n.observers)
}
