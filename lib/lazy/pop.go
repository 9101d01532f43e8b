package lazy

import "golang.org/x/xerrors"

// PopFront splits s into its first n elements and an iterator over the rest.
// The leading elements are read eagerly. The rest continues on the same
// source iterator, so the source is read once in total, and closing the rest
// releases it.
func PopFront[T any](s Sequence[T], n int) ([]T, Iterator[T]) {
	if l, ok := s.(List[T]); ok {
		k := min(max(n, 0), l.Len())
		leading := make([]T, k)
		for i := range leading {
			leading[i] = l.At(i)
		}
		return leading, iterList(l, k)
	}

	src := owned[T]{it: s.Iter()}
	var leading []T
	if n > 0 {
		if c, ok := Count(s); ok {
			leading = make([]T, 0, min(n, c))
		}
	}
	for len(leading) < n {
		v, ok := src.next()
		if !ok {
			break
		}
		leading = append(leading, v)
	}
	return leading, &restIter[T]{src: src}
}

// PopFirst returns the first element of s and an iterator over the rest.
// It fails with ErrEmptyCollection when s has no elements. The returned
// iterator owns the source iterator.
func PopFirst[T any](s Sequence[T]) (T, Iterator[T], error) {
	var zero T
	if n, ok := Count(s); ok && n == 0 {
		return zero, nil, xerrors.Errorf("pop first: %w", ErrEmptyCollection)
	}
	if l, ok := s.(List[T]); ok {
		return l.At(0), iterList(l, 1), nil
	}

	src := owned[T]{it: s.Iter()}
	first, ok := src.next()
	if !ok {
		return zero, nil, xerrors.Errorf("pop first: %w", ErrEmptyCollection)
	}
	return first, &restIter[T]{src: src}, nil
}

// restIter continues an iterator that was partly consumed elsewhere.
type restIter[T any] struct {
	cursor[T]
	src owned[T]
}

func (it *restIter[T]) Next() bool {
	if it.done() {
		return false
	}
	v, ok := it.src.next()
	if !ok {
		return it.stop()
	}
	return it.yield(v)
}

func (it *restIter[T]) Close() error {
	it.close()
	return it.src.release()
}
