package vector

import "iter"

// Iterator walks the elements of a vector front to back.
//
// It holds on to the current chunk (head buffer, spine leaf or tail buffer)
// and only looks up the next chunk when the current one is exhausted, so a
// full traversal costs O(n + (n/BranchFactor)·log n). An Iterator cannot be
// restarted, and it is invalidated by any in-place edit of a transient
// vector.
type Iterator[T any] struct {
	vec      *Vector[T]
	chunk    []T
	offset   int // index in chunk of the next element
	consumed int
	size     int
	current  T
}

// Iter returns an iterator positioned before the first element.
func (v *Vector[T]) Iter() *Iterator[T] {
	it := &Iterator[T]{
		vec:  v,
		size: v.Len(),
	}
	if it.size > 0 {
		it.chunk, it.offset = v.chunkAt(0)
	}
	return it
}

// HasNext returns true if Next would succeed.
func (it *Iterator[T]) HasNext() bool {
	return it.consumed < it.size
}

// Next advances to the next element.
// Returns true if there is an element, false if iteration is complete.
func (it *Iterator[T]) Next() bool {
	if it.consumed >= it.size {
		return false
	}
	if it.offset == len(it.chunk) {
		it.chunk, it.offset = it.vec.chunkAt(it.consumed)
	}
	it.current = it.chunk[it.offset]
	it.offset++
	it.consumed++
	return true
}

// Value returns the current element.
func (it *Iterator[T]) Value() T {
	return it.current
}

// Index returns the index of the current element.
func (it *Iterator[T]) Index() int {
	return it.consumed - 1
}

// All returns an iterator over index/element pairs in order.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := v.Iter()
		for it.Next() {
			if !yield(it.Index(), it.Value()) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := v.Iter()
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Backward returns an iterator over index/element pairs from last to first.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := v.Len() - 1
		for i >= 0 {
			chunk, off := v.chunkAt(i)
			for ; off >= 0; off-- {
				if !yield(i, chunk[off]) {
					return
				}
				i--
			}
		}
	}
}

// Chunks returns an iterator over the contiguous runs of elements backing
// the vector, in order. The yielded slices must not be modified.
func (v *Vector[T]) Chunks() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		size := v.Len()
		for i := 0; i < size; {
			chunk, off := v.chunkAt(i)
			run := chunk[off:]
			if !yield(run) {
				return
			}
			i += len(run)
		}
	}
}
