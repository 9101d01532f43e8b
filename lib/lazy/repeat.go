package lazy

import (
	"fmt"
	"math"
)

// Repeat yields s count times in a row. A count of 1 returns s itself and a
// count of zero or less yields nothing.
//
// Lists are repeated by index and Repeat panics if the repeated length
// overflows an int. Other sequences are read once: the first pass
// streams from the source while caching what it sees, and every later pass
// replays the cache.
func Repeat[T any](s Sequence[T], count int) Sequence[T] {
	switch {
	case count == 1:
		return s
	case count <= 0:
		return Empty[T]()
	}
	if l, ok := s.(List[T]); ok {
		rl := &repeatList[T]{src: l, count: count}
		rl.Len()
		return rl
	}
	return &repeatSeq[T]{src: s, count: count}
}

// RepeatForever cycles through s endlessly. An empty s yields nothing.
func RepeatForever[T any](s Sequence[T]) Sequence[T] {
	return &repeatSeq[T]{src: s, count: forever}
}

const forever = -1

type repeatList[T any] struct {
	src   List[T]
	count int
}

// Len panics when the repeated length does not fit in an int.
func (l *repeatList[T]) Len() int {
	n := l.src.Len()
	if n > 0 && l.count > math.MaxInt/n {
		panic(fmt.Sprintf("lazy: repeating %d elements %d times overflows int", n, l.count))
	}
	return n * l.count
}

func (l *repeatList[T]) At(i int) T {
	checkIndex(i, l.Len())
	return l.src.At(i % l.src.Len())
}

func (l *repeatList[T]) Iter() Iterator[T] { return iterList[T](l, 0) }

type repeatSeq[T any] struct {
	src   Sequence[T]
	count int
}

func (s *repeatSeq[T]) Iter() Iterator[T] {
	if l, ok := s.src.(List[T]); ok {
		return &cycleListIter[T]{src: l, count: s.count}
	}
	return &repeatIter[T]{seq: s.src, count: s.count}
}

type repeatPhase int8

const (
	// repeatFirstPass streams from the source and fills the cache.
	repeatFirstPass repeatPhase = iota
	// repeatReplay serves later passes from the cache.
	repeatReplay
)

type repeatIter[T any] struct {
	cursor[T]
	seq   Sequence[T]
	src   owned[T]
	phase repeatPhase
	cache []T
	count int
	pass  int
	pos   int
}

func (it *repeatIter[T]) Next() bool {
	switch it.state {
	case stateExhausted, stateClosed:
		return false
	case stateNotStarted:
		if n, ok := Count(it.seq); ok {
			if n == 0 {
				return it.stop()
			}
			it.cache = make([]T, 0, n)
		}
		it.src = owned[T]{it: it.seq.Iter()}
	}

	if it.phase == repeatFirstPass {
		if v, ok := it.src.next(); ok {
			it.cache = append(it.cache, v)
			return it.yield(v)
		}
		if len(it.cache) == 0 {
			return it.stop()
		}
		it.phase = repeatReplay
		it.pass = 1
		it.pos = len(it.cache)
	}

	if it.pos == len(it.cache) {
		if it.count != forever && it.pass >= it.count {
			it.cache = nil
			return it.stop()
		}
		it.pass++
		it.pos = 0
	}
	v := it.cache[it.pos]
	it.pos++
	return it.yield(v)
}

func (it *repeatIter[T]) Close() error {
	it.close()
	it.cache = nil
	return it.src.release()
}

// cycleListIter repeats a List by index without caching.
type cycleListIter[T any] struct {
	cursor[T]
	src   List[T]
	count int
	pass  int
	pos   int
}

func (it *cycleListIter[T]) Next() bool {
	if it.done() {
		return false
	}
	n := it.src.Len()
	if n == 0 {
		return it.stop()
	}
	if it.pos == n {
		it.pass++
		it.pos = 0
	}
	if it.count != forever && it.pass >= it.count {
		return it.stop()
	}
	v := it.src.At(it.pos)
	it.pos++
	return it.yield(v)
}

func (it *cycleListIter[T]) Close() error {
	it.close()
	return nil
}
