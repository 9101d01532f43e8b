package lazy

import "iter"

type sliceList[T any] struct {
	s []T
}

// FromSlice returns a read-only List over s. The slice is not copied.
func FromSlice[T any](s []T) List[T] {
	return sliceList[T]{s: s}
}

// Empty returns a list with no elements.
func Empty[T any]() List[T] {
	return sliceList[T]{}
}

func (l sliceList[T]) Len() int { return len(l.s) }

func (l sliceList[T]) At(i int) T {
	checkIndex(i, len(l.s))
	return l.s[i]
}

func (l sliceList[T]) Iter() Iterator[T] { return iterList[T](l, 0) }

// listIter walks a List by position. It never wraps another iterator.
type listIter[T any] struct {
	cursor[T]
	list List[T]
	pos  int
}

func iterList[T any](l List[T], start int) *listIter[T] {
	return &listIter[T]{list: l, pos: start - 1}
}

func (it *listIter[T]) Next() bool {
	if it.done() {
		return false
	}
	it.pos++
	if it.pos >= it.list.Len() {
		return it.stop()
	}
	return it.yield(it.list.At(it.pos))
}

func (it *listIter[T]) Close() error {
	it.close()
	return nil
}

type seqSource[T any] struct {
	seq iter.Seq[T]
}

// FromSeq returns a Sequence whose iterators each pull a fresh run of seq.
func FromSeq[T any](seq iter.Seq[T]) Sequence[T] {
	return seqSource[T]{seq: seq}
}

func (s seqSource[T]) Iter() Iterator[T] {
	return &pullIter[T]{seq: s.seq}
}

type sizedSeq[T any] struct {
	seqSource[T]
	n int
}

// FromSizedSeq is FromSeq for a seq known to yield exactly n values. The
// count lets combinators size their buffers up front.
func FromSizedSeq[T any](seq iter.Seq[T], n int) Sequence[T] {
	return sizedSeq[T]{seqSource: seqSource[T]{seq: seq}, n: n}
}

func (s sizedSeq[T]) Len() int { return s.n }

// pullIter adapts a push iterator. The pull coroutine is only started on the
// first call to Next.
type pullIter[T any] struct {
	cursor[T]
	seq  iter.Seq[T]
	next func() (T, bool)
	halt func()
}

func (it *pullIter[T]) Next() bool {
	switch it.state {
	case stateNotStarted:
		it.next, it.halt = iter.Pull(it.seq)
	case stateExhausted, stateClosed:
		return false
	}
	v, ok := it.next()
	if !ok {
		it.release()
		return it.stop()
	}
	return it.yield(v)
}

func (it *pullIter[T]) release() {
	if it.halt != nil {
		it.halt()
		it.halt = nil
		it.next = nil
	}
}

func (it *pullIter[T]) Close() error {
	it.release()
	it.close()
	return nil
}
