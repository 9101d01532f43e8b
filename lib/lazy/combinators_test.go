package lazy_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coder/memento/lib/lazy"
)

// both runs fn against a list-backed and a streaming source holding vals.
func both(t *testing.T, vals []int, fn func(t *testing.T, s lazy.Sequence[int])) {
	t.Helper()
	t.Run("list", func(t *testing.T) { fn(t, lazy.FromSlice(vals)) })
	t.Run("stream", func(t *testing.T) { fn(t, stream(vals...)) })
}

func TestChunkPair(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want []lazy.Pair[int]
	}{
		{"odd", []int{1, 2, 3, 4, 5}, []lazy.Pair[int]{{1, 2}, {3, 4}, {5, 0}}},
		{"even", []int{1, 2, 3, 4}, []lazy.Pair[int]{{1, 2}, {3, 4}}},
		{"single", []int{9}, []lazy.Pair[int]{{9, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			both(t, tt.in, func(t *testing.T, s lazy.Sequence[int]) {
				assert.Equal(t, tt.want, lazy.Collect(lazy.ChunkPair(s)))
			})
		})
	}

	both(t, nil, func(t *testing.T, s lazy.Sequence[int]) {
		assert.Empty(t, lazy.Collect(lazy.ChunkPair(s)))
	})
}

func TestChunkPairPadList(t *testing.T) {
	l := lazy.ChunkPairPad[int](lazy.FromSlice([]int{1, 2, 3}), -1).(lazy.List[lazy.Pair[int]])
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, lazy.Pair[int]{First: 3, Second: -1}, l.At(1))
}

func TestChunkTriple(t *testing.T) {
	both(t, []int{1, 2, 3, 4, 5, 6, 7}, func(t *testing.T, s lazy.Sequence[int]) {
		got := lazy.Collect(lazy.ChunkTriplePad(s, -1))
		assert.Equal(t, []lazy.Triple[int]{{1, 2, 3}, {4, 5, 6}, {7, -1, -1}}, got)
	})
	both(t, []int{1, 2, 3, 4, 5}, func(t *testing.T, s lazy.Sequence[int]) {
		got := lazy.Collect(lazy.ChunkTriple(s))
		assert.Equal(t, []lazy.Triple[int]{{1, 2, 3}, {4, 5, 0}}, got)
	})
}

func TestReverse(t *testing.T) {
	both(t, []int{1, 2, 3}, func(t *testing.T, s lazy.Sequence[int]) {
		assert.Equal(t, []int{3, 2, 1}, lazy.Collect(lazy.Reverse(s)))
	})
	both(t, nil, func(t *testing.T, s lazy.Sequence[int]) {
		assert.Empty(t, lazy.Collect(lazy.Reverse(s)))
	})

	l := lazy.Reverse[int](lazy.FromSlice([]int{1, 2, 3})).(lazy.List[int])
	assert.Equal(t, 3, l.At(0))
	assert.Equal(t, 1, l.At(2))
}

func TestReverseMaterialisesOnFirstNext(t *testing.T) {
	src, tr := track(stream(1, 2, 3))
	it := lazy.Reverse[int](src).Iter()
	assert.Zero(t, tr.opened)

	require.True(t, it.Next())
	assert.Equal(t, 3, it.Value())
	assert.Equal(t, 1, tr.opened)
	assert.Equal(t, 1, tr.closed)

	assert.Equal(t, []int{2, 1}, drain(it))
	assert.Equal(t, 1, tr.opened)
}

func TestRepeat(t *testing.T) {
	both(t, []int{1, 2}, func(t *testing.T, s lazy.Sequence[int]) {
		assert.Equal(t, []int{1, 2, 1, 2, 1, 2}, lazy.Collect(lazy.Repeat(s, 3)))
		assert.Equal(t, []int{1, 2}, lazy.Collect(lazy.Repeat(s, 1)))
		assert.Empty(t, lazy.Collect(lazy.Repeat(s, 0)))
		assert.Empty(t, lazy.Collect(lazy.Repeat(s, -2)))
	})
	both(t, nil, func(t *testing.T, s lazy.Sequence[int]) {
		assert.Empty(t, lazy.Collect(lazy.Repeat(s, 4)))
	})
}

func TestRepeatOnceReturnsSource(t *testing.T) {
	src, tr := track(lazy.FromSlice([]int{1, 2}))
	s := lazy.Repeat[int](src, 1)
	assert.Equal(t, src, s)
	assert.Equal(t, []int{1, 2}, lazy.Collect(s))
	assert.Equal(t, 1, tr.opened)
}

func TestRepeatListLen(t *testing.T) {
	l := lazy.Repeat[int](lazy.FromSlice([]int{1, 2, 3}), 4).(lazy.List[int])
	assert.Equal(t, 12, l.Len())
	assert.Equal(t, 2, l.At(10))
}

func TestRepeatListLenOverflow(t *testing.T) {
	src := lazy.FromSlice([]int{1, 2})
	assert.Panics(t, func() { lazy.Repeat[int](src, math.MaxInt/2+2) })

	l := lazy.Repeat[int](src, math.MaxInt/2).(lazy.List[int])
	assert.Equal(t, math.MaxInt-1, l.Len())
	assert.Equal(t, 2, l.At(math.MaxInt-2))
}

func TestRepeatReadsStreamOnce(t *testing.T) {
	src, tr := track(stream(5, 6))
	assert.Equal(t, []int{5, 6, 5, 6, 5, 6}, lazy.Collect(lazy.Repeat[int](src, 3)))
	assert.Equal(t, 1, tr.opened)
	assert.Equal(t, 1, tr.closed)
	assert.Zero(t, tr.doubleClosed)
}

func TestRepeatForever(t *testing.T) {
	both(t, []int{1, 2, 3}, func(t *testing.T, s lazy.Sequence[int]) {
		leading, rest := lazy.PopFront(lazy.RepeatForever(s), 7)
		assert.Equal(t, []int{1, 2, 3, 1, 2, 3, 1}, leading)
		require.True(t, rest.Next())
		assert.Equal(t, 2, rest.Value())
		require.NoError(t, rest.Close())
	})
	both(t, nil, func(t *testing.T, s lazy.Sequence[int]) {
		assert.Empty(t, lazy.Collect(lazy.RepeatForever(s)))
	})
}

func TestSelect(t *testing.T) {
	square := func(v int) int { return v * v }
	both(t, []int{1, 2, 3}, func(t *testing.T, s lazy.Sequence[int]) {
		assert.Equal(t, []int{1, 4, 9}, lazy.Collect(lazy.Select(s, square)))
		assert.Equal(t, []int{1, 4, 9}, lazy.Collect(lazy.SelectCached(s, square)))

		indexed := lazy.SelectIndexed(s, func(i, v int) int { return i*100 + v })
		assert.Equal(t, []int{1, 102, 203}, lazy.Collect(indexed))
	})
}

func TestSelectCachedCallsOncePerIndex(t *testing.T) {
	calls := 0
	fn := func(v int) string {
		calls++
		return string(rune('a' + v))
	}

	l := lazy.SelectCached[int](lazy.FromSlice([]int{0, 1, 2}), fn).(lazy.List[string])
	assert.Equal(t, "b", l.At(1))
	assert.Equal(t, "b", l.At(1))
	assert.Equal(t, 1, calls)

	assert.Equal(t, []string{"a", "b", "c"}, lazy.Collect[string](l))
	assert.Equal(t, []string{"a", "b", "c"}, lazy.Collect[string](l))
	assert.Equal(t, 3, calls)
}

func TestSelectListRecomputes(t *testing.T) {
	calls := 0
	l := lazy.Select[int](lazy.FromSlice([]int{1}), func(v int) int {
		calls++
		return v
	}).(lazy.List[int])
	l.At(0)
	l.At(0)
	assert.Equal(t, 2, calls)
}

func TestLookAhead(t *testing.T) {
	tests := []struct {
		name     string
		maxAhead int
		want     []lazy.Ahead[int]
	}{
		{"horizon two", 2, []lazy.Ahead[int]{{1, 2}, {2, 1}, {3, 0}}},
		{"horizon one", 1, []lazy.Ahead[int]{{1, 1}, {2, 1}, {3, 0}}},
		{"zero", 0, []lazy.Ahead[int]{{1, 0}, {2, 0}, {3, 0}}},
		{"negative clamps", -4, []lazy.Ahead[int]{{1, 0}, {2, 0}, {3, 0}}},
		{"past the end", 10, []lazy.Ahead[int]{{1, 2}, {2, 1}, {3, 0}}},
		{"huge horizon", math.MaxInt / 8, []lazy.Ahead[int]{{1, 2}, {2, 1}, {3, 0}}},
		{"unbounded horizon", math.MaxInt, []lazy.Ahead[int]{{1, 2}, {2, 1}, {3, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			both(t, []int{1, 2, 3}, func(t *testing.T, s lazy.Sequence[int]) {
				assert.Equal(t, tt.want, lazy.Collect(lazy.LookAhead(s, tt.maxAhead)))
			})
		})
	}

	both(t, nil, func(t *testing.T, s lazy.Sequence[int]) {
		assert.Empty(t, lazy.Collect(lazy.LookAhead(s, 3)))
	})
}

func TestLookAheadLongStream(t *testing.T) {
	in := make([]int, 20)
	for i := range in {
		in[i] = i
	}
	got := lazy.Collect(lazy.LookAhead(stream(in...), 3))
	require.Len(t, got, 20)
	for i, a := range got {
		assert.Equal(t, i, a.Value)
		assert.Equal(t, min(3, 19-i), a.Remaining, "element %d", i)
	}
}

func TestLookAheadUnboundedLongStream(t *testing.T) {
	in := make([]int, 50)
	for i := range in {
		in[i] = i
	}
	src, tr := track(stream(in...))
	got := lazy.Collect(lazy.LookAhead[int](src, math.MaxInt))
	require.Len(t, got, 50)
	for i, a := range got {
		assert.Equal(t, i, a.Value)
		assert.Equal(t, 49-i, a.Remaining, "element %d", i)
	}
	assert.Equal(t, 1, tr.closed)
}

func TestAdjacentPairs(t *testing.T) {
	both(t, []int{1, 2, 3, 4}, func(t *testing.T, s lazy.Sequence[int]) {
		got := lazy.Collect(lazy.AdjacentPairs(s))
		assert.Equal(t, []lazy.Pair[int]{{1, 2}, {2, 3}, {3, 4}}, got)
	})
	for _, in := range [][]int{nil, {1}} {
		both(t, in, func(t *testing.T, s lazy.Sequence[int]) {
			assert.Empty(t, lazy.Collect(lazy.AdjacentPairs(s)))
		})
	}
}

func TestPopFront(t *testing.T) {
	tests := []struct {
		name        string
		n           int
		wantLeading []int
		wantRest    []int
	}{
		{"two", 2, []int{1, 2}, []int{3, 4, 5}},
		{"none", 0, []int{}, []int{1, 2, 3, 4, 5}},
		{"negative", -1, []int{}, []int{1, 2, 3, 4, 5}},
		{"all", 5, []int{1, 2, 3, 4, 5}, []int{}},
		{"more than available", 8, []int{1, 2, 3, 4, 5}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			both(t, []int{1, 2, 3, 4, 5}, func(t *testing.T, s lazy.Sequence[int]) {
				leading, rest := lazy.PopFront(s, tt.n)
				defer rest.Close()
				// append normalises nil to empty so both paths compare alike
				assert.Equal(t, tt.wantLeading, append([]int{}, leading...))
				assert.Equal(t, tt.wantRest, append([]int{}, drain(rest)...))
			})
		})
	}
}

func TestPopFrontSharesSourceIterator(t *testing.T) {
	src, tr := track(stream(1, 2, 3))
	leading, rest := lazy.PopFront[int](src, 1)
	assert.Equal(t, []int{1}, leading)
	assert.Equal(t, 1, tr.opened)
	assert.Zero(t, tr.closed)

	assert.Equal(t, []int{2, 3}, drain(rest))
	assert.Equal(t, 1, tr.opened)
	assert.Equal(t, 1, tr.closed)

	require.NoError(t, rest.Close())
	assert.Zero(t, tr.doubleClosed)
}

func TestPopFirst(t *testing.T) {
	both(t, []int{7, 8, 9}, func(t *testing.T, s lazy.Sequence[int]) {
		first, rest, err := lazy.PopFirst(s)
		require.NoError(t, err)
		defer rest.Close()
		assert.Equal(t, 7, first)
		assert.Equal(t, []int{8, 9}, drain(rest))
	})
	both(t, nil, func(t *testing.T, s lazy.Sequence[int]) {
		_, rest, err := lazy.PopFirst(s)
		assert.ErrorIs(t, err, lazy.ErrEmptyCollection)
		assert.Nil(t, rest)
	})
}

func TestPopFirstEmptyCountedWithoutEnumerating(t *testing.T) {
	src, tr := track(lazy.Empty[int]())
	// trackedSeq hides Len, so the source must be opened to find out.
	_, _, err := lazy.PopFirst[int](src)
	assert.ErrorIs(t, err, lazy.ErrEmptyCollection)
	assert.Equal(t, 1, tr.opened)
	assert.Equal(t, 1, tr.closed)

	_, _, err = lazy.PopFirst(lazy.FromSizedSeq(func(func(int) bool) {
		t.Fatal("sized source should not be enumerated")
	}, 0))
	assert.ErrorIs(t, err, lazy.ErrEmptyCollection)
}

func TestPopFirstClosesSourceOnce(t *testing.T) {
	src, tr := track(stream(1, 2, 3))
	_, rest, err := lazy.PopFirst[int](src)
	require.NoError(t, err)

	require.True(t, rest.Next())
	require.NoError(t, rest.Close())
	require.NoError(t, rest.Close())
	assert.Equal(t, 1, tr.opened)
	assert.Equal(t, 1, tr.closed)
	assert.Zero(t, tr.doubleClosed)
}

func TestInterleavedIterators(t *testing.T) {
	seqs := map[string]lazy.Sequence[lazy.Pair[int]]{
		"list":   lazy.ChunkPair[int](lazy.FromSlice([]int{1, 2, 3, 4})),
		"stream": lazy.ChunkPair(stream(1, 2, 3, 4)),
	}
	for name, s := range seqs {
		t.Run(name, func(t *testing.T) {
			a, b := s.Iter(), s.Iter()
			defer a.Close()
			defer b.Close()

			var gotA, gotB []lazy.Pair[int]
			for {
				okA, okB := a.Next(), b.Next()
				require.Equal(t, okA, okB)
				if !okA {
					break
				}
				gotA = append(gotA, a.Value())
				gotB = append(gotB, b.Value())
			}
			want := []lazy.Pair[int]{{1, 2}, {3, 4}}
			assert.Equal(t, want, gotA)
			assert.Equal(t, want, gotB)
		})
	}
}
