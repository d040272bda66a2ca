package events

import "testing"

func TestQueuePreservesOrder(t *testing.T) {
	var q Queue[int]
	for i := 0; i < 5; i++ {
		q.Push(i)
	}

	got := q.Drain()
	if len(got) != 5 {
		t.Fatalf("drained %d events, want 5", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Errorf("event %d = %d, want %d", i, v, i)
		}
	}
}

func TestQueueDrainEmpties(t *testing.T) {
	var q Queue[string]
	q.Push("a")
	q.Drain()

	if q.Len() != 0 {
		t.Errorf("Len = %d after drain, want 0", q.Len())
	}
	if again := q.Drain(); len(again) != 0 {
		t.Errorf("second drain returned %d events", len(again))
	}
}

func TestQueuePushAfterDrain(t *testing.T) {
	var q Queue[int]
	q.Push(1)
	first := q.Drain()
	q.Push(2)

	// The drained slice must not see later pushes
	if len(first) != 1 || first[0] != 1 {
		t.Errorf("first drain = %v, want [1]", first)
	}
	second := q.Drain()
	if len(second) != 1 || second[0] != 2 {
		t.Errorf("second drain = %v, want [2]", second)
	}
}

func TestQueueClear(t *testing.T) {
	var q Queue[int]
	q.Push(1)
	q.Push(2)
	q.Clear()
	if q.Len() != 0 {
		t.Errorf("Len = %d after clear, want 0", q.Len())
	}
}
