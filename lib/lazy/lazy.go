// Package lazy provides pull iterators written as explicit state machines and
// the sequence combinators built on them.
//
// A Sequence is a recipe: every call to Iter returns a fresh iterator with
// its own state, so the same sequence can be walked any number of times, in
// parallel or interleaved. Sequences whose source supports random access are
// Lists and answer Len and At without running an iterator at all.
//
// Iterators are not safe for concurrent use. Lists only read the storage they
// wrap and never mutate it.
package lazy

import (
	"iter"

	"golang.org/x/xerrors"

	"github.com/coder/memento/lib/util"
)

var (
	ErrEmptyCollection   = util.ErrEmptyCollection
	ErrNotSupported      = util.ErrNotSupported
	ErrIteratorImmutable = util.ErrIteratorImmutable
	ErrIndexOutOfRange   = util.ErrIndexOutOfRange
)

// Iterator pulls values one at a time.
//
// Next advances and reports whether a value is available. Once it returns
// false it keeps returning false. Value returns the current value, or the
// zero value outside of a successful Next. Close releases any wrapped
// iterators; it is safe to call more than once and Next returns false
// afterwards.
type Iterator[T any] interface {
	Next() bool
	Value() T
	Close() error
}

// Sequence produces independent iterators over the same values.
type Sequence[T any] interface {
	Iter() Iterator[T]
}

// Sized is implemented by sequences that know their length without
// enumerating.
type Sized interface {
	Len() int
}

// List is a sequence with random access. At panics with an error wrapping
// ErrIndexOutOfRange when i is not in [0, Len()).
type List[T any] interface {
	Sequence[T]
	Len() int
	At(i int) T
}

// state is the lifecycle shared by every iterator. Combinators that need
// more phases keep them in a separate field.
type state int8

const (
	stateNotStarted state = iota
	stateRunning
	stateExhausted
	stateClosed
)

// cursor holds the current value and lifecycle state of an iterator.
type cursor[T any] struct {
	state state
	cur   T
}

func (c *cursor[T]) Value() T {
	return c.cur
}

// Reset is not supported: iterators run once. Call Iter on the sequence
// again to start over.
func (c *cursor[T]) Reset() error {
	return xerrors.Errorf("reset iterator: %w", ErrNotSupported)
}

func (c *cursor[T]) done() bool {
	return c.state >= stateExhausted
}

func (c *cursor[T]) yield(v T) bool {
	c.state = stateRunning
	c.cur = v
	return true
}

func (c *cursor[T]) stop() bool {
	if c.state != stateClosed {
		c.state = stateExhausted
	}
	var zero T
	c.cur = zero
	return false
}

func (c *cursor[T]) close() {
	c.state = stateClosed
	var zero T
	c.cur = zero
}

// owned is an exclusively owned sub-iterator. It is closed as soon as it
// runs dry, so combinators release their source without waiting for Close.
type owned[T any] struct {
	it Iterator[T]
}

func (o *owned[T]) next() (T, bool) {
	var zero T
	if o.it == nil {
		return zero, false
	}
	if o.it.Next() {
		return o.it.Value(), true
	}
	_ = o.release()
	return zero, false
}

func (o *owned[T]) release() error {
	if o.it == nil {
		return nil
	}
	err := o.it.Close()
	o.it = nil
	return err
}

func checkIndex(i, n int) {
	if !util.InRange(i, n) {
		panic(util.IndexError(i, n))
	}
}

// Count returns the length of s when it is known without enumerating.
func Count[T any](s Sequence[T]) (int, bool) {
	if sized, ok := s.(Sized); ok {
		return sized.Len(), true
	}
	return 0, false
}

// Collect drains a fresh iterator of s into a slice.
func Collect[T any](s Sequence[T]) []T {
	var result []T
	if n, ok := Count(s); ok {
		result = make([]T, 0, n)
	}
	it := s.Iter()
	defer it.Close()
	for it.Next() {
		result = append(result, it.Value())
	}
	return result
}

// All adapts s for range loops. Breaking out of the loop closes the
// iterator.
func All[T any](s Sequence[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		it := s.Iter()
		defer it.Close()
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}
