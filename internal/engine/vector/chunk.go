package vector

import "slices"

// Edge buffers absorb single-element edits at either end of a vector.
//
// The head buffer is right-aligned: its n live elements occupy
// buf[len(buf)-n:], so prepending writes to the left without shifting.
// The tail buffer is left-aligned: its n live elements occupy buf[:n].
//
// Buffers grow by doubling from initialEdgeCap up to BranchFactor. A buffer
// that reaches BranchFactor elements is handed to the spine as a leaf.
//
// Writes go to the existing array only when the caller owns it (inPlace);
// otherwise a copy is made first, which lets persistent vectors share
// buffer arrays.

// edgeCap returns the capacity to use when a buffer holding n elements in
// an array of length have must accept one more element.
func edgeCap(have, n int) int {
	if n < have {
		return have
	}
	return min(max(initialEdgeCap, 2*have), BranchFactor)
}

func headView[T any](buf []T, n int) []T {
	return buf[len(buf)-n:]
}

func tailView[T any](buf []T, n int) []T {
	return buf[:n]
}

// pushHead prepends x and returns the (possibly new) head buffer.
func pushHead[T any](buf []T, n int, x T, inPlace bool) []T {
	if !inPlace || n == len(buf) {
		c := edgeCap(len(buf), n)
		grown := make([]T, c)
		copy(grown[c-n:], headView(buf, n))
		buf = grown
	}
	buf[len(buf)-n-1] = x
	return buf
}

// pushTail appends x and returns the (possibly new) tail buffer.
func pushTail[T any](buf []T, n int, x T, inPlace bool) []T {
	if !inPlace || n == len(buf) {
		grown := make([]T, edgeCap(len(buf), n))
		copy(grown, tailView(buf, n))
		buf = grown
	}
	buf[n] = x
	return buf
}

// popHead removes the first live element of the head buffer. Shared
// buffers are left untouched; owned ones have the slot cleared so the
// element can be collected.
func popHead[T any](buf []T, n int, inPlace bool) T {
	i := len(buf) - n
	x := buf[i]
	if inPlace {
		var zero T
		buf[i] = zero
	}
	return x
}

// popTail removes the last live element of the tail buffer.
func popTail[T any](buf []T, n int, inPlace bool) T {
	x := buf[n-1]
	if inPlace {
		var zero T
		buf[n-1] = zero
	}
	return x
}

// setHead overwrites live element i of the head buffer.
func setHead[T any](buf []T, n, i int, x T, inPlace bool) []T {
	if !inPlace {
		buf = slices.Clone(buf)
	}
	buf[len(buf)-n+i] = x
	return buf
}

// setTail overwrites live element i of the tail buffer.
func setTail[T any](buf []T, i int, x T, inPlace bool) []T {
	if !inPlace {
		buf = slices.Clone(buf)
	}
	buf[i] = x
	return buf
}

// flushChunk turns a full buffer into a spine leaf. The leaf takes the array.
func flushChunk[T any](buf []T, owner *Owner) *node[T] {
	return newLeaf(buf, owner)
}

// partialChunk copies the live elements of a buffer into a new leaf.
func partialChunk[T any](live []T, owner *Owner) *node[T] {
	return newLeaf(slices.Clone(live), owner)
}

// adopt turns a leaf popped from the spine into a full edge buffer. The
// leaf's array is reused only when owner owns the leaf.
func adopt[T any](leaf *node[T], owner *Owner) []T {
	if owner.owns(leaf.owner) {
		return leaf.elems
	}
	return slices.Clone(leaf.elems)
}

// copyEdge returns a private copy of a buffer with the same capacity.
func copyEdge[T any](buf []T) []T {
	if buf == nil {
		return nil
	}
	return slices.Clone(buf)
}
