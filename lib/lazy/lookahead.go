package lazy

import (
	"math"

	"github.com/coder/memento/lib/ring"
)

// Ahead is an element together with how many elements follow it within the
// look-ahead horizon.
type Ahead[T any] struct {
	Value     T
	Remaining int
}

// LookAhead pairs each element of s with the number of elements after it,
// capped at maxAhead. A negative maxAhead is treated as zero.
//
// Non-list sources are read up to maxAhead elements ahead of the consumer.
// The pending buffer grows with what the source actually yields, so a
// horizon larger than the source costs nothing.
func LookAhead[T any](s Sequence[T], maxAhead int) Sequence[Ahead[T]] {
	maxAhead = max(maxAhead, 0)
	if l, ok := s.(List[T]); ok {
		return &lookList[T]{src: l, max: maxAhead}
	}
	return &lookSeq[T]{src: s, max: maxAhead}
}

type lookList[T any] struct {
	src List[T]
	max int
}

func (l *lookList[T]) Len() int { return l.src.Len() }

func (l *lookList[T]) At(i int) Ahead[T] {
	n := l.src.Len()
	checkIndex(i, n)
	return Ahead[T]{Value: l.src.At(i), Remaining: min(l.max, n-1-i)}
}

func (l *lookList[T]) Iter() Iterator[Ahead[T]] { return iterList[Ahead[T]](l, 0) }

type lookSeq[T any] struct {
	src Sequence[T]
	max int
}

func (s *lookSeq[T]) Iter() Iterator[Ahead[T]] {
	return &lookIter[T]{seq: s.src, max: s.max}
}

type lookIter[T any] struct {
	cursor[Ahead[T]]
	seq      Sequence[T]
	src      owned[T]
	pending  *ring.Queue[T]
	max      int
	// window is the most elements ever pending: the current one plus max
	// ahead of it, saturating at math.MaxInt.
	window   int
	draining bool
}

const lookInitialPending = 4

func (it *lookIter[T]) Next() bool {
	switch it.state {
	case stateExhausted, stateClosed:
		return false
	case stateNotStarted:
		it.window = it.max
		if it.window < math.MaxInt {
			it.window++
		}
		size := min(it.window, lookInitialPending)
		if n, ok := Count(it.seq); ok {
			size = min(it.window, max(n, 1))
		}
		it.src = owned[T]{it: it.seq.Iter()}
		it.pending = ring.NewQueue[T](size)
		for it.pending.Len() < it.window && it.fill() {
		}
	}

	v, ok := it.pending.PopFront()
	if !ok {
		it.pending = nil
		return it.stop()
	}
	remaining := it.pending.Len()
	it.fill()
	return it.yield(Ahead[T]{Value: v, Remaining: remaining})
}

// fill pulls one element from the source into the pending queue.
func (it *lookIter[T]) fill() bool {
	if it.draining {
		return false
	}
	v, ok := it.src.next()
	if !ok {
		it.draining = true
		return false
	}
	if it.pending.Full() {
		it.pending.Grow(ring.Grow(it.pending.Cap(), it.window))
	}
	it.pending.PushBack(v)
	return true
}

func (it *lookIter[T]) Close() error {
	it.close()
	it.pending = nil
	return it.src.release()
}
