package lazy

// Reverse yields s back to front. A List is read by index in reverse. Any
// other sequence is materialised once, on the iterator's first Next, and the
// copy is walked backwards.
func Reverse[T any](s Sequence[T]) Sequence[T] {
	if l, ok := s.(List[T]); ok {
		return &reverseList[T]{src: l}
	}
	return &reverseSeq[T]{src: s}
}

type reverseList[T any] struct {
	src List[T]
}

func (l *reverseList[T]) Len() int { return l.src.Len() }

func (l *reverseList[T]) At(i int) T {
	n := l.src.Len()
	checkIndex(i, n)
	return l.src.At(n - 1 - i)
}

func (l *reverseList[T]) Iter() Iterator[T] { return iterList[T](l, 0) }

type reverseSeq[T any] struct {
	src Sequence[T]
}

func (s *reverseSeq[T]) Iter() Iterator[T] {
	return &reverseIter[T]{src: s.src}
}

type reverseIter[T any] struct {
	cursor[T]
	src    Sequence[T]
	buffer []T
	pos    int
}

func (it *reverseIter[T]) Next() bool {
	switch it.state {
	case stateNotStarted:
		it.buffer = Collect(it.src)
		it.pos = len(it.buffer)
	case stateExhausted, stateClosed:
		return false
	}
	if it.pos == 0 {
		it.buffer = nil
		return it.stop()
	}
	it.pos--
	return it.yield(it.buffer[it.pos])
}

func (it *reverseIter[T]) Close() error {
	it.close()
	it.buffer = nil
	return nil
}
