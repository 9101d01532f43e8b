package memento

import (
	"iter"

	"golang.org/x/xerrors"
)

type enumState int8

const (
	enumNotStarted enumState = iota
	enumRunning
	enumDone
)

// Enumerator walks the live region of a Buffer in logical order. It fails
// fast if the buffer is mutated after the enumerator was created.
type Enumerator[T any] struct {
	buf        *Buffer[T]
	version    uint64
	activeOnly bool
	state      enumState
	pos        int
	cur        Entry[T]
	err        error
}

// Entries enumerates every live entry, active and inactive, oldest first.
func (b *Buffer[T]) Entries() *Enumerator[T] {
	return &Enumerator[T]{buf: b, version: b.version}
}

// ActiveEntries enumerates the active entries only, oldest first.
func (b *Buffer[T]) ActiveEntries() *Enumerator[T] {
	return &Enumerator[T]{buf: b, version: b.version, activeOnly: true}
}

// Next advances to the next entry. It returns false at the end of the live
// region, or of the active region for ActiveEntries, and when the buffer was
// modified, in which case Err reports ErrCollectionModified.
func (e *Enumerator[T]) Next() bool {
	switch e.state {
	case enumDone:
		return false
	case enumNotStarted:
		e.state = enumRunning
		e.pos = 0
	case enumRunning:
		e.pos++
	}
	if e.version != e.buf.version {
		e.err = xerrors.Errorf("enumerate at %d: %w", e.pos, ErrCollectionModified)
		return e.finish()
	}
	limit := e.buf.count
	if e.activeOnly {
		limit = e.buf.active
	}
	if e.pos >= limit {
		return e.finish()
	}
	e.cur = e.buf.entry(e.pos)
	return true
}

func (e *Enumerator[T]) finish() bool {
	e.state = enumDone
	e.cur = Entry[T]{}
	return false
}

// Entry returns the current entry. It is the zero Entry before the first
// call to Next and after enumeration ends.
func (e *Enumerator[T]) Entry() Entry[T] {
	return e.cur
}

// Index returns the logical position of the current entry.
func (e *Enumerator[T]) Index() int {
	return e.pos
}

func (e *Enumerator[T]) Err() error {
	return e.err
}

// All ranges over the live entries with their logical positions. Mutating
// the buffer inside the loop panics with an error wrapping
// ErrCollectionModified.
func (b *Buffer[T]) All() iter.Seq2[int, Entry[T]] {
	return func(yield func(int, Entry[T]) bool) {
		e := b.Entries()
		for e.Next() {
			if !yield(e.Index(), e.Entry()) {
				return
			}
		}
		if err := e.Err(); err != nil {
			panic(err)
		}
	}
}
