package lazy

type Pair[T any] struct {
	First, Second T
}

type Triple[T any] struct {
	First, Second, Third T
}

// ChunkPair groups s into pairs. A final odd element is paired with the zero
// value.
func ChunkPair[T any](s Sequence[T]) Sequence[Pair[T]] {
	var zero T
	return ChunkPairPad(s, zero)
}

// ChunkPairPad groups s into pairs, padding a final odd element with pad.
func ChunkPairPad[T any](s Sequence[T], pad T) Sequence[Pair[T]] {
	if l, ok := s.(List[T]); ok {
		return &pairList[T]{src: l, pad: pad}
	}
	return &pairSeq[T]{src: s, pad: pad}
}

type pairList[T any] struct {
	src List[T]
	pad T
}

func (l *pairList[T]) Len() int { return (l.src.Len() + 1) / 2 }

func (l *pairList[T]) At(i int) Pair[T] {
	checkIndex(i, l.Len())
	p := Pair[T]{First: l.src.At(2 * i), Second: l.pad}
	if 2*i+1 < l.src.Len() {
		p.Second = l.src.At(2*i + 1)
	}
	return p
}

func (l *pairList[T]) Iter() Iterator[Pair[T]] { return iterList[Pair[T]](l, 0) }

type pairSeq[T any] struct {
	src Sequence[T]
	pad T
}

func (s *pairSeq[T]) Iter() Iterator[Pair[T]] {
	return &pairIter[T]{src: owned[T]{it: s.src.Iter()}, pad: s.pad}
}

type pairIter[T any] struct {
	cursor[Pair[T]]
	src owned[T]
	pad T
}

func (it *pairIter[T]) Next() bool {
	if it.done() {
		return false
	}
	first, ok := it.src.next()
	if !ok {
		return it.stop()
	}
	second, ok := it.src.next()
	if !ok {
		second = it.pad
	}
	return it.yield(Pair[T]{First: first, Second: second})
}

func (it *pairIter[T]) Close() error {
	it.close()
	return it.src.release()
}

// ChunkTriple groups s into triples, padding the final group with the zero
// value.
func ChunkTriple[T any](s Sequence[T]) Sequence[Triple[T]] {
	var zero T
	return ChunkTriplePad(s, zero)
}

func ChunkTriplePad[T any](s Sequence[T], pad T) Sequence[Triple[T]] {
	if l, ok := s.(List[T]); ok {
		return &tripleList[T]{src: l, pad: pad}
	}
	return &tripleSeq[T]{src: s, pad: pad}
}

type tripleList[T any] struct {
	src List[T]
	pad T
}

func (l *tripleList[T]) Len() int { return (l.src.Len() + 2) / 3 }

func (l *tripleList[T]) At(i int) Triple[T] {
	checkIndex(i, l.Len())
	n := l.src.Len()
	t := Triple[T]{First: l.src.At(3 * i), Second: l.pad, Third: l.pad}
	if 3*i+1 < n {
		t.Second = l.src.At(3*i + 1)
	}
	if 3*i+2 < n {
		t.Third = l.src.At(3*i + 2)
	}
	return t
}

func (l *tripleList[T]) Iter() Iterator[Triple[T]] { return iterList[Triple[T]](l, 0) }

type tripleSeq[T any] struct {
	src Sequence[T]
	pad T
}

func (s *tripleSeq[T]) Iter() Iterator[Triple[T]] {
	return &tripleIter[T]{src: owned[T]{it: s.src.Iter()}, pad: s.pad}
}

type tripleIter[T any] struct {
	cursor[Triple[T]]
	src owned[T]
	pad T
}

func (it *tripleIter[T]) Next() bool {
	if it.done() {
		return false
	}
	first, ok := it.src.next()
	if !ok {
		return it.stop()
	}
	t := Triple[T]{First: first, Second: it.pad, Third: it.pad}
	if v, ok := it.src.next(); ok {
		t.Second = v
		if v, ok := it.src.next(); ok {
			t.Third = v
		}
	}
	return it.yield(t)
}

func (it *tripleIter[T]) Close() error {
	it.close()
	return it.src.release()
}

// AdjacentPairs yields each element paired with its successor. Sequences
// with fewer than two elements yield nothing.
func AdjacentPairs[T any](s Sequence[T]) Sequence[Pair[T]] {
	if l, ok := s.(List[T]); ok {
		return &adjacentList[T]{src: l}
	}
	return &adjacentSeq[T]{src: s}
}

type adjacentList[T any] struct {
	src List[T]
}

func (l *adjacentList[T]) Len() int { return max(l.src.Len()-1, 0) }

func (l *adjacentList[T]) At(i int) Pair[T] {
	checkIndex(i, l.Len())
	return Pair[T]{First: l.src.At(i), Second: l.src.At(i + 1)}
}

func (l *adjacentList[T]) Iter() Iterator[Pair[T]] { return iterList[Pair[T]](l, 0) }

type adjacentSeq[T any] struct {
	src Sequence[T]
}

func (s *adjacentSeq[T]) Iter() Iterator[Pair[T]] {
	return &adjacentIter[T]{src: owned[T]{it: s.src.Iter()}}
}

type adjacentIter[T any] struct {
	cursor[Pair[T]]
	src  owned[T]
	prev T
}

func (it *adjacentIter[T]) Next() bool {
	if it.done() {
		return false
	}
	if it.state == stateNotStarted {
		first, ok := it.src.next()
		if !ok {
			return it.stop()
		}
		it.prev = first
	}
	v, ok := it.src.next()
	if !ok {
		var zero T
		it.prev = zero
		return it.stop()
	}
	p := Pair[T]{First: it.prev, Second: v}
	it.prev = v
	return it.yield(p)
}

func (it *adjacentIter[T]) Close() error {
	it.close()
	var zero T
	it.prev = zero
	return it.src.release()
}
