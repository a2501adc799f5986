package vector

import "fmt"

// Stats describes the internal layout of a vector.
// Useful for debugging and for checking balance in tests.
type Stats struct {
	Len      int
	Height   int // spine height; 0 when the spine is empty
	Leaves   int
	Interior int
	HeadLen  int
	TailLen  int
	Owner    string // owner id, or "shared"
}

// Stats returns layout statistics for the vector.
func (v *Vector[T]) Stats() Stats {
	s := Stats{
		Len:     v.Len(),
		HeadLen: v.headLen,
		TailLen: v.tailLen,
		Owner:   v.owner.String(),
	}
	if v.root != nil {
		s.Height = int(v.root.height)
		countNodes(v.root, &s)
	}
	return s
}

func countNodes[T any](n *node[T], s *Stats) {
	if n.isLeaf() {
		s.Leaves++
		return
	}
	s.Interior++
	for _, child := range n.children {
		countNodes(child, s)
	}
}

// Height returns the height of the spine.
func (v *Vector[T]) Height() int {
	if v.root == nil {
		return 0
	}
	return int(v.root.height)
}

// Validate checks the structural invariants of the vector and returns the
// first violation found.
func (v *Vector[T]) Validate() error {
	if v.headLen < 0 || v.headLen >= BranchFactor || v.headLen > len(v.head) {
		return fmt.Errorf("vector: head length %d invalid for buffer of %d", v.headLen, len(v.head))
	}
	if v.tailLen < 0 || v.tailLen >= BranchFactor || v.tailLen > len(v.tail) {
		return fmt.Errorf("vector: tail length %d invalid for buffer of %d", v.tailLen, len(v.tail))
	}
	if err := checkSpine(v.root); err != nil {
		return fmt.Errorf("vector: %w", err)
	}
	return nil
}
