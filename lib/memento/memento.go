// Package memento implements a bounded undo/redo history over a circular
// buffer.
//
// Entries are pushed onto the live region. Rollback makes the newest active
// entry inactive without discarding it and Reapply makes it active again.
// A push while inactive entries exist discards them, and a push at capacity
// evicts the oldest entry.
//
// A Buffer is not safe for concurrent use. Its version counter only detects
// mutation during enumeration by the same caller.
package memento

import (
	"fmt"

	"golang.org/x/xerrors"

	"github.com/coder/memento/lib/ring"
	"github.com/coder/memento/lib/util"
)

var (
	ErrEmptyCollection    = util.ErrEmptyCollection
	ErrCollectionModified = util.ErrCollectionModified
	ErrIndexOutOfRange    = util.ErrIndexOutOfRange
	ErrNothingToReapply   = xerrors.Errorf("nothing to reapply: %w", util.ErrEmptyCollection)
)

const defaultInitialCapacity = 4

// Entry is a live entry together with whether it is currently applied.
type Entry[T any] struct {
	Value  T
	Active bool
}

type options struct {
	initialCapacity int
}

type Option func(*options)

// WithInitialCapacity sets the length of the first backing array. It is
// clamped to [1, maxCapacity].
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		o.initialCapacity = n
	}
}

// Buffer is a bounded history of entries with rollback and reapply.
type Buffer[T any] struct {
	items []T
	// head is the offset of the oldest live entry, tail the offset just past
	// the newest live entry and index the offset just past the newest active
	// entry.
	head  int
	tail  int
	index int
	// count is the number of live entries and active the number of those
	// that are applied. Active entries always form a prefix of the live region.
	count       int
	active      int
	maxCapacity int
	version     uint64
}

// New creates a buffer that retains at most maxCapacity entries.
// It panics if maxCapacity is not positive.
func New[T any](maxCapacity int, opts ...Option) *Buffer[T] {
	if maxCapacity <= 0 {
		panic(fmt.Sprintf("memento: max capacity must be positive, got %d", maxCapacity))
	}
	o := options{initialCapacity: defaultInitialCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	initial := max(1, min(o.initialCapacity, maxCapacity))
	return &Buffer[T]{
		items:       make([]T, initial),
		maxCapacity: maxCapacity,
	}
}

// Push appends item as the newest active entry.
func (b *Buffer[T]) Push(item T) {
	n := len(b.items)
	switch {
	case b.active < b.count:
		// Overwrite the first inactive slot and drop the rest of the redo
		// history.
		b.items[b.index] = item
		b.index = ring.Next(b.index, n)
		ring.Clear(b.items, b.index, b.count-b.active-1)
		b.tail = b.index
		b.active++
		b.count = b.active
	case b.active == b.maxCapacity:
		// Full: evict the oldest entry. Here head == tail == index.
		b.items[b.tail] = item
		b.head = ring.Next(b.head, n)
		b.tail = ring.Next(b.tail, n)
		b.index = b.tail
	case b.count == n:
		b.grow()
		b.append(item)
	default:
		b.append(item)
	}
	b.version++
}

func (b *Buffer[T]) append(item T) {
	b.items[b.tail] = item
	b.tail = ring.Next(b.tail, len(b.items))
	b.index = b.tail
	b.count++
	b.active++
}

// grow moves the live region into a larger backing array starting at offset 0.
// It must only be called with no inactive entries and the backing array full.
func (b *Buffer[T]) grow() {
	if b.active != b.count || b.count != len(b.items) {
		panic(fmt.Sprintf("memento: grow with active=%d count=%d len=%d", b.active, b.count, len(b.items)))
	}
	items := make([]T, ring.Grow(len(b.items), b.maxCapacity))
	ring.Linearize(items, b.items, b.head, b.count)
	b.items = items
	b.head = 0
	b.tail = b.count
	b.index = b.count
}

// TryRollback deactivates the newest active entry and returns it.
func (b *Buffer[T]) TryRollback() (T, bool) {
	if b.active == 0 {
		var zero T
		return zero, false
	}
	b.index = ring.Prev(b.index, len(b.items))
	b.active--
	b.version++
	return b.items[b.index], true
}

// Rollback is TryRollback returning ErrEmptyCollection when nothing is active.
func (b *Buffer[T]) Rollback() (T, error) {
	item, ok := b.TryRollback()
	if !ok {
		return item, xerrors.Errorf("rollback: %w", ErrEmptyCollection)
	}
	return item, nil
}

// TryReapply reactivates the oldest inactive entry and returns it.
func (b *Buffer[T]) TryReapply() (T, bool) {
	if b.active == b.count {
		var zero T
		return zero, false
	}
	item := b.items[b.index]
	b.index = ring.Next(b.index, len(b.items))
	b.active++
	b.version++
	return item, true
}

// Reapply is TryReapply returning ErrNothingToReapply when no entry is
// inactive.
func (b *Buffer[T]) Reapply() (T, error) {
	item, ok := b.TryReapply()
	if !ok {
		return item, xerrors.Errorf("reapply: %w", ErrNothingToReapply)
	}
	return item, nil
}

// TryPeek returns the newest active entry.
func (b *Buffer[T]) TryPeek() (T, bool) {
	if b.active == 0 {
		var zero T
		return zero, false
	}
	return b.items[ring.Prev(b.index, len(b.items))], true
}

func (b *Buffer[T]) Peek() (T, error) {
	item, ok := b.TryPeek()
	if !ok {
		return item, xerrors.Errorf("peek: %w", ErrEmptyCollection)
	}
	return item, nil
}

// PeekReapply returns the entry the next reapply would return.
func (b *Buffer[T]) PeekReapply() (T, bool) {
	if b.active == b.count {
		var zero T
		return zero, false
	}
	return b.items[b.index], true
}

// Clear drops every entry and releases references held by the backing array.
func (b *Buffer[T]) Clear() {
	clear(b.items)
	b.head = 0
	b.tail = 0
	b.index = 0
	b.count = 0
	b.active = 0
	b.version++
}

// At returns the live entry at logical position i, oldest first.
func (b *Buffer[T]) At(i int) (Entry[T], error) {
	if !util.InRange(i, b.count) {
		return Entry[T]{}, util.IndexError(i, b.count)
	}
	return b.entry(i), nil
}

func (b *Buffer[T]) entry(i int) Entry[T] {
	return Entry[T]{
		Value:  b.items[ring.Add(b.head, i, len(b.items))],
		Active: i < b.active,
	}
}

// Items returns a copy of all live entries, oldest first.
func (b *Buffer[T]) Items() []T {
	result := make([]T, b.count)
	ring.Linearize(result, b.items, b.head, b.count)
	return result
}

// ActiveItems returns a copy of the active entries, oldest first.
func (b *Buffer[T]) ActiveItems() []T {
	result := make([]T, b.active)
	ring.Linearize(result, b.items, b.head, b.active)
	return result
}

// Len returns the number of live entries, active and inactive.
func (b *Buffer[T]) Len() int { return b.count }

func (b *Buffer[T]) ActiveLen() int { return b.active }

func (b *Buffer[T]) InactiveLen() int { return b.count - b.active }

func (b *Buffer[T]) MaxCapacity() int { return b.maxCapacity }

// Cap returns the length of the backing array.
func (b *Buffer[T]) Cap() int { return len(b.items) }

func (b *Buffer[T]) CanRollback() bool { return b.active > 0 }

func (b *Buffer[T]) CanReapply() bool { return b.active < b.count }

// Version returns the mutation counter.
func (b *Buffer[T]) Version() uint64 { return b.version }
