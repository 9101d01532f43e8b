package memento_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coder/memento/lib/memento"
)

func collect[T any](e *memento.Enumerator[T]) []memento.Entry[T] {
	var result []memento.Entry[T]
	for e.Next() {
		result = append(result, e.Entry())
	}
	return result
}

func TestEntries(t *testing.T) {
	b := memento.New[int](4)
	pushAll(b, 1, 2, 3, 4, 5)
	_, _ = b.TryRollback()
	_, _ = b.TryRollback()

	t.Run("all live entries", func(t *testing.T) {
		e := b.Entries()
		assert.Equal(t, []memento.Entry[int]{
			{Value: 2, Active: true},
			{Value: 3, Active: true},
			{Value: 4, Active: false},
			{Value: 5, Active: false},
		}, collect(e))
		assert.NoError(t, e.Err())
		assert.False(t, e.Next(), "stays exhausted")
	})

	t.Run("active only", func(t *testing.T) {
		e := b.ActiveEntries()
		assert.Equal(t, []memento.Entry[int]{
			{Value: 2, Active: true},
			{Value: 3, Active: true},
		}, collect(e))
		assert.NoError(t, e.Err())
	})

	t.Run("range", func(t *testing.T) {
		var values []int
		var positions []int
		for i, entry := range b.All() {
			positions = append(positions, i)
			values = append(values, entry.Value)
		}
		assert.Equal(t, []int{0, 1, 2, 3}, positions)
		assert.Equal(t, []int{2, 3, 4, 5}, values)
	})
}

func TestEntriesEmpty(t *testing.T) {
	b := memento.New[string](2)
	e := b.Entries()
	assert.False(t, e.Next())
	assert.Equal(t, memento.Entry[string]{}, e.Entry())
	assert.NoError(t, e.Err())
}

func TestEnumeratorFailsFastOnModification(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(b *memento.Buffer[int])
	}{
		{"push", func(b *memento.Buffer[int]) { b.Push(10) }},
		{"rollback", func(b *memento.Buffer[int]) { _, _ = b.TryRollback() }},
		{"reapply", func(b *memento.Buffer[int]) { _, _ = b.TryRollback(); _, _ = b.TryReapply() }},
		{"clear", func(b *memento.Buffer[int]) { b.Clear() }},
	}
	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			b := memento.New[int](5)
			pushAll(b, 1, 2, 3)

			e := b.Entries()
			require.True(t, e.Next())
			assert.Equal(t, 1, e.Entry().Value)

			tt.mutate(b)
			assert.False(t, e.Next())
			assert.ErrorIs(t, e.Err(), memento.ErrCollectionModified)
			assert.False(t, e.Next())
		})
	}
}

func TestEnumeratorUnaffectedByReads(t *testing.T) {
	b := memento.New[int](5)
	pushAll(b, 1, 2, 3)
	e := b.Entries()
	var values []int
	for e.Next() {
		_, _ = b.TryPeek()
		_ = b.Items()
		values = append(values, e.Entry().Value)
	}
	require.NoError(t, e.Err())
	assert.Equal(t, []int{1, 2, 3}, values)
}

func TestRangePanicsOnModification(t *testing.T) {
	b := memento.New[int](5)
	pushAll(b, 1, 2, 3)
	assert.PanicsWithError(t, "enumerate at 1: collection was modified during enumeration", func() {
		for _, entry := range b.All() {
			if entry.Value == 1 {
				b.Push(4)
			}
		}
	})
}
