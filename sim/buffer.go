package sim

import "log"

// A Buffer is a FIFO queue. A buffer created with a non-positive capacity is
// unbounded.
type Buffer[T any] struct {
	name     string
	capacity int
	elements []T
}

// NewBuffer creates a buffer with the given capacity.
func NewBuffer[T any](name string, capacity int) *Buffer[T] {
	return &Buffer[T]{
		name:     name,
		capacity: capacity,
	}
}

// Name returns the name of the buffer.
func (b *Buffer[T]) Name() string {
	return b.name
}

// CanPush returns true if the buffer is not full.
func (b *Buffer[T]) CanPush() bool {
	return b.capacity <= 0 || len(b.elements) < b.capacity
}

// Push adds an element at the tail of the buffer.
func (b *Buffer[T]) Push(e T) {
	if !b.CanPush() {
		log.Panicf("buffer %s overflow", b.name)
	}

	b.elements = append(b.elements, e)
}

// Pop removes and returns the element at the head of the buffer. Popping an
// empty buffer returns the zero value and false.
func (b *Buffer[T]) Pop() (T, bool) {
	var zero T
	if len(b.elements) == 0 {
		return zero, false
	}

	e := b.elements[0]
	b.elements[0] = zero
	b.elements = b.elements[1:]

	return e, true
}

// Peek returns the element at the head of the buffer without removing it.
func (b *Buffer[T]) Peek() (T, bool) {
	if len(b.elements) == 0 {
		var zero T
		return zero, false
	}

	return b.elements[0], true
}

// Capacity returns the capacity of the buffer. Non-positive means unbounded.
func (b *Buffer[T]) Capacity() int {
	return b.capacity
}

// Size returns the number of elements in the buffer.
func (b *Buffer[T]) Size() int {
	return len(b.elements)
}

// Clear removes all the elements in the buffer.
func (b *Buffer[T]) Clear() {
	b.elements = nil
}
