package vector

import "slices"

// Tree structure constants
const (
	// bitsPerLevel is log2 of the branching factor.
	bitsPerLevel = 5

	// BranchFactor is the maximum children per interior node and the
	// maximum elements per leaf chunk.
	BranchFactor = 1 << bitsPerLevel

	// initialEdgeCap is the capacity of a freshly allocated edge buffer.
	initialEdgeCap = 4
)

// node is a node of the spine.
// Leaf nodes (height == 0) hold between 1 and BranchFactor elements.
// Interior nodes (height > 0) hold between 1 and BranchFactor children, all
// of height-1. Children need not be full; sizes[i] is the number of elements
// in children[0..i], which keeps lookups O(log n) regardless of fill.
type node[T any] struct {
	height uint8  // 0 for leaves, >0 for interior
	owner  *Owner // handle allowed to edit this node in place, nil if shared

	// Leaf fields (height == 0)
	elems []T

	// Interior fields (height > 0)
	children []*node[T]
	sizes    []int // cumulative element counts
}

// newLeaf creates a leaf that takes ownership of elems.
func newLeaf[T any](elems []T, owner *Owner) *node[T] {
	return &node[T]{owner: owner, elems: elems}
}

// newInterior creates an interior node that takes ownership of children.
func newInterior[T any](children []*node[T], owner *Owner) *node[T] {
	n := &node[T]{
		height:   children[0].height + 1,
		owner:    owner,
		children: children,
		sizes:    make([]int, len(children), max(len(children), BranchFactor)),
	}
	n.recomputeSizes(0)
	return n
}

// isLeaf returns true if this is a leaf node.
func (n *node[T]) isLeaf() bool {
	return n.height == 0
}

// size returns the number of elements in this subtree.
func (n *node[T]) size() int {
	if n.isLeaf() {
		return len(n.elems)
	}
	return n.sizes[len(n.sizes)-1]
}

// base returns the number of elements left of children[i].
func (n *node[T]) base(i int) int {
	if i == 0 {
		return 0
	}
	return n.sizes[i-1]
}

// recomputeSizes rebuilds the cumulative sizes from child index i onwards.
func (n *node[T]) recomputeSizes(from int) {
	if len(n.sizes) != len(n.children) {
		n.sizes = slices.Grow(n.sizes[:0], len(n.children))[:len(n.children)]
		from = 0
	}
	total := n.base(from)
	for i := from; i < len(n.children); i++ {
		total += n.children[i].size()
		n.sizes[i] = total
	}
}

// clone creates a shallow copy of the node stamped with owner.
// The copy never shares backing arrays with the original.
func (n *node[T]) clone(owner *Owner) *node[T] {
	if n.isLeaf() {
		return &node[T]{owner: owner, elems: slices.Clone(n.elems)}
	}

	children := make([]*node[T], len(n.children), max(len(n.children), BranchFactor))
	copy(children, n.children)
	sizes := make([]int, len(n.sizes), max(len(n.sizes), BranchFactor))
	copy(sizes, n.sizes)

	return &node[T]{
		height:   n.height,
		owner:    owner,
		children: children,
		sizes:    sizes,
	}
}

// editable returns n itself if owner may edit it in place, otherwise a copy
// stamped with owner.
func (n *node[T]) editable(owner *Owner) *node[T] {
	if owner.owns(n.owner) {
		return n
	}
	return n.clone(owner)
}

// findChild finds the child containing element i.
// Returns the child index and the index within that child.
func (n *node[T]) findChild(i int) (int, int) {
	// A child of a height-h node holds at most BranchFactor^h elements, so
	// the radix guess never overshoots; scan forward from it.
	j := 0
	if shift := bitsPerLevel * int(n.height); shift < 63 {
		j = min(i>>shift, len(n.sizes)-1)
	}
	for n.sizes[j] <= i {
		j++
	}
	return j, i - n.base(j)
}

func (n *node[T]) first() *node[T] {
	return n.children[0]
}

func (n *node[T]) last() *node[T] {
	return n.children[len(n.children)-1]
}
