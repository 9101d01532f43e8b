package lazy

// Select projects every element of s through fn. The projection runs each
// time an element is read, so a list result calls fn again on every At.
func Select[T, R any](s Sequence[T], fn func(T) R) Sequence[R] {
	return SelectIndexed(s, func(_ int, v T) R { return fn(v) })
}

// SelectIndexed is Select with the element's position passed to fn.
func SelectIndexed[T, R any](s Sequence[T], fn func(int, T) R) Sequence[R] {
	if l, ok := s.(List[T]); ok {
		return &selectList[T, R]{src: l, fn: fn}
	}
	return &selectSeq[T, R]{src: s, fn: fn}
}

// SelectCached is Select that remembers each projected element of a list
// source, so fn runs at most once per index for the lifetime of the result.
// Non-list sources behave exactly like Select.
func SelectCached[T, R any](s Sequence[T], fn func(T) R) Sequence[R] {
	l, ok := s.(List[T])
	if !ok {
		return Select(s, fn)
	}
	return &cachedList[T, R]{src: l, fn: fn}
}

type selectList[T, R any] struct {
	src List[T]
	fn  func(int, T) R
}

func (l *selectList[T, R]) Len() int { return l.src.Len() }

func (l *selectList[T, R]) At(i int) R {
	checkIndex(i, l.src.Len())
	return l.fn(i, l.src.At(i))
}

func (l *selectList[T, R]) Iter() Iterator[R] { return iterList[R](l, 0) }

type selectSeq[T, R any] struct {
	src Sequence[T]
	fn  func(int, T) R
}

func (s *selectSeq[T, R]) Iter() Iterator[R] {
	return &selectIter[T, R]{src: owned[T]{it: s.src.Iter()}, fn: s.fn}
}

type selectIter[T, R any] struct {
	cursor[R]
	src owned[T]
	fn  func(int, T) R
	pos int
}

func (it *selectIter[T, R]) Next() bool {
	if it.done() {
		return false
	}
	v, ok := it.src.next()
	if !ok {
		return it.stop()
	}
	r := it.fn(it.pos, v)
	it.pos++
	return it.yield(r)
}

func (it *selectIter[T, R]) Close() error {
	it.close()
	return it.src.release()
}

// cachedList memoises projections by index. The cache is sized lazily on
// first access and is shared by every iterator of the list.
type cachedList[T, R any] struct {
	src      List[T]
	fn       func(T) R
	values   []R
	computed []bool
}

func (l *cachedList[T, R]) Len() int { return l.src.Len() }

func (l *cachedList[T, R]) At(i int) R {
	n := l.src.Len()
	checkIndex(i, n)
	if len(l.values) != n {
		l.values = make([]R, n)
		l.computed = make([]bool, n)
	}
	if !l.computed[i] {
		l.values[i] = l.fn(l.src.At(i))
		l.computed[i] = true
	}
	return l.values[i]
}

func (l *cachedList[T, R]) Iter() Iterator[R] { return iterList[R](l, 0) }
