package lazy

import "golang.org/x/xerrors"

// ReadOnlyList exposes a computed List through a list-shaped API. The list is
// a view over its source, so every mutating method fails with
// ErrIteratorImmutable.
type ReadOnlyList[T any] struct {
	List[T]
}

func View[T any](l List[T]) ReadOnlyList[T] {
	return ReadOnlyList[T]{List: l}
}

func (v ReadOnlyList[T]) Set(i int, _ T) error {
	return xerrors.Errorf("set index %d: %w", i, ErrIteratorImmutable)
}

func (v ReadOnlyList[T]) Insert(i int, _ T) error {
	return xerrors.Errorf("insert at %d: %w", i, ErrIteratorImmutable)
}

func (v ReadOnlyList[T]) RemoveAt(i int) error {
	return xerrors.Errorf("remove at %d: %w", i, ErrIteratorImmutable)
}

func (v ReadOnlyList[T]) Append(_ T) error {
	return xerrors.Errorf("append: %w", ErrIteratorImmutable)
}

func (v ReadOnlyList[T]) Clear() error {
	return xerrors.Errorf("clear: %w", ErrIteratorImmutable)
}

// IndexOf returns the first position holding a value equal to target
// according to eq, or -1.
func (v ReadOnlyList[T]) IndexOf(target T, eq func(a, b T) bool) int {
	for i := range v.Len() {
		if eq(v.At(i), target) {
			return i
		}
	}
	return -1
}

// Slice copies the list into a new slice.
func (v ReadOnlyList[T]) Slice() []T {
	result := make([]T, v.Len())
	for i := range result {
		result[i] = v.At(i)
	}
	return result
}
