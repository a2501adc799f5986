package vector

import "iter"

// Of creates a vector holding xs.
func Of[T any](xs ...T) *Vector[T] {
	return FromSlice(xs)
}

// FromSlice creates a vector holding a copy of xs.
func FromSlice[T any](xs []T) *Vector[T] {
	v := New[T]().Linear()
	for _, x := range xs {
		v.AddLast(x)
	}
	return v.Forked()
}

// From creates a vector from a finite sequence.
func From[T any](seq iter.Seq[T]) *Vector[T] {
	v := New[T]().Linear()
	for x := range seq {
		v.AddLast(x)
	}
	return v.Forked()
}

// Repeat creates a vector holding n copies of x.
func Repeat[T any](x T, n int) *Vector[T] {
	v := New[T]().Linear()
	for range n {
		v.AddLast(x)
	}
	return v.Forked()
}

// Join concatenates vectors in order.
func Join[T any](vs ...*Vector[T]) *Vector[T] {
	if len(vs) == 0 {
		return New[T]()
	}
	if len(vs) == 1 {
		return vs[0]
	}

	result := vs[0]
	for _, v := range vs[1:] {
		result = result.Concat(v)
	}
	return result
}
