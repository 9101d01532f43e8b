package ring

// Queue is a fixed-capacity FIFO over a circular slice.
// It is not safe for concurrent use.
type Queue[T any] struct {
	items []T
	head  int
	count int
}

// NewQueue creates a queue that holds at most size items.
func NewQueue[T any](size int) *Queue[T] {
	if size <= 0 {
		panic("ring queue size must be positive")
	}
	return &Queue[T]{
		items: make([]T, size),
	}
}

// PushBack appends item and reports whether there was room for it.
func (q *Queue[T]) PushBack(item T) bool {
	if q.count == len(q.items) {
		return false
	}
	q.items[Add(q.head, q.count, len(q.items))] = item
	q.count++
	return true
}

// Add appends item, overwriting the oldest item when the queue is full.
func (q *Queue[T]) Add(item T) {
	if q.count < len(q.items) {
		q.PushBack(item)
		return
	}
	q.items[q.head] = item
	q.head = Next(q.head, len(q.items))
}

// PopFront removes and returns the oldest item.
func (q *Queue[T]) PopFront() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	item := q.items[q.head]
	q.items[q.head] = zero
	q.head = Next(q.head, len(q.items))
	q.count--
	return item, true
}

// Front returns the oldest item without removing it.
func (q *Queue[T]) Front() (T, bool) {
	if q.count == 0 {
		var zero T
		return zero, false
	}
	return q.items[q.head], true
}

func (q *Queue[T]) Len() int {
	return q.count
}

func (q *Queue[T]) Cap() int {
	return len(q.items)
}

func (q *Queue[T]) Full() bool {
	return q.count == len(q.items)
}

// Grow enlarges the queue to hold size items, keeping their order. A size
// not larger than Cap is ignored.
func (q *Queue[T]) Grow(size int) {
	if size <= len(q.items) {
		return
	}
	items := make([]T, size)
	Linearize(items, q.items, q.head, q.count)
	q.items = items
	q.head = 0
}

// Reset empties the queue and zeroes its storage.
func (q *Queue[T]) Reset() {
	Clear(q.items, q.head, q.count)
	q.head = 0
	q.count = 0
}

// All returns all items in the queue, oldest first
func (q *Queue[T]) All() []T {
	result := make([]T, q.count)
	Linearize(result, q.items, q.head, q.count)
	return result
}
