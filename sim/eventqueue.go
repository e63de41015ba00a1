package sim

import "container/heap"

// An eventQueue is a queue of events ordered by their times. Events at the
// same time are popped in the order they were pushed, so a run's outcome
// does not depend on heap internals.
type eventQueue struct {
	events eventHeap
	seq    uint64
}

func newEventQueue() *eventQueue {
	q := new(eventQueue)
	q.events = make(eventHeap, 0)
	heap.Init(&q.events)

	return q
}

func (q *eventQueue) Push(evt Event) {
	q.seq++
	heap.Push(&q.events, sequencedEvent{event: evt, seq: q.seq})
}

func (q *eventQueue) Pop() Event {
	return heap.Pop(&q.events).(sequencedEvent).event
}

func (q *eventQueue) Len() int {
	return q.events.Len()
}

func (q *eventQueue) Peek() Event {
	return q.events[0].event
}

type sequencedEvent struct {
	event Event
	seq   uint64
}

type eventHeap []sequencedEvent

func (h eventHeap) Len() int {
	return len(h)
}

// Less returns true if the i-th event happens before the j-th event.
func (h eventHeap) Less(i, j int) bool {
	if h[i].event.Time() != h[j].event.Time() {
		return h[i].event.Time() < h[j].event.Time()
	}

	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(sequencedEvent))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	event := old[n-1]
	*h = old[0 : n-1]

	return event
}
