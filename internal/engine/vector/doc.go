// Package vector provides a confluently persistent, double-ended, chunked
// sequence.
//
// A Vector keeps the bulk of its elements in a relaxed radix tree (the
// spine) whose leaves are chunks of up to BranchFactor elements and whose
// interior nodes cache cumulative child sizes. Two small edge buffers absorb
// pushes and pops at either end and are folded into the spine one chunk at a
// time. Because interior nodes need not be full, slicing and concatenation
// only rebuild the nodes along one or two root-to-leaf paths.
//
// Key features:
//   - O(1) amortized AddFirst, AddLast, RemoveFirst and RemoveLast
//   - O(log n) Get, Set, Slice, Split and Concat
//   - Persistent handles are immutable and safe for concurrent reads
//   - Transient (linear) handles edit in place for batch construction
//
// Basic usage:
//
//	v := vector.Of(1, 2, 3)
//	v = v.AddFirst(0)              // [0 1 2 3]
//	w, _ := v.Slice(1, 3)          // [1 2]
//	v = v.Concat(w)                // [0 1 2 3 1 2]
//
// Batch edits go through a transient handle:
//
//	t := vector.New[int]().Linear()
//	for i := range 1000 {
//		t.AddLast(i)
//	}
//	v := t.Forked()
//
// A transient handle must not be used from more than one goroutine at a time
// and must not be touched after Forked has been called on it, other than
// through the returned persistent handle.
package vector
