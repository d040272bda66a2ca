// Package events defines the typed in-process events the simulation core
// consumes and emits, with ordered queues drained once per tick.
package events

// Queue is an ordered single-producer event buffer. Producers Push during
// a tick; the owning system Drains exactly once per tick at its fixed
// place in the pipeline, so consumers always observe events in emission
// order.
type Queue[T any] struct {
	items []T
}

// Push appends an event.
func (q *Queue[T]) Push(ev T) {
	q.items = append(q.items, ev)
}

// Drain returns all queued events and empties the queue.
func (q *Queue[T]) Drain() []T {
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Clear drops all queued events without handing them out.
func (q *Queue[T]) Clear() {
	q.items = nil
}
