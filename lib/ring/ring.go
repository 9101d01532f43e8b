// Package ring holds the wrap-around index arithmetic and circular copy
// helpers shared by the bounded history buffer and the look-ahead iterator.
//
// Every helper takes the ring length explicitly so the offset bookkeeping of
// callers stays auditable: an offset is always in [0, n).
package ring

const minGrowth = 4

// Next returns the offset after i in a ring of length n.
func Next(i, n int) int {
	i++
	if i == n {
		return 0
	}
	return i
}

// Prev returns the offset before i in a ring of length n.
func Prev(i, n int) int {
	if i == 0 {
		return n - 1
	}
	return i - 1
}

// Add moves i by k slots (k may be negative) in a ring of length n.
func Add(i, k, n int) int {
	r := (i + k) % n
	if r < 0 {
		r += n
	}
	return r
}

// Grow returns the backing length to use once a ring of length current is
// full. Lengths double from a floor of 4 and never exceed maxCapacity.
func Grow(current, maxCapacity int) int {
	next := current * 2
	if next < minGrowth {
		next = minGrowth
	}
	if next > maxCapacity {
		next = maxCapacity
	}
	return next
}

// Linearize copies count slots of the circular slice src, starting at head,
// into dst[0:count] in logical order. It returns the number of slots copied.
func Linearize[T any](dst, src []T, head, count int) int {
	if count == 0 {
		return 0
	}
	first := len(src) - head
	if first >= count {
		return copy(dst[:count], src[head:head+count])
	}
	n := copy(dst, src[head:])
	return n + copy(dst[n:count], src[:count-first])
}

// Clear zeroes count circular slots of s starting at start, releasing any
// references they hold.
func Clear[T any](s []T, start, count int) {
	if count <= 0 {
		return
	}
	if count >= len(s) {
		clear(s)
		return
	}
	end := start + count
	if end <= len(s) {
		clear(s[start:end])
		return
	}
	clear(s[start:])
	clear(s[:end-len(s)])
}
