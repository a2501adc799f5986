package vector

import (
	"fmt"
	"slices"
)

// Spine operations. A spine is represented by its root node; nil is the
// canonical empty spine. A non-nil root is always an interior node, and a
// root with a single child is collapsed unless it sits directly above the
// leaves.

// spineSize returns the number of elements in the spine.
func spineSize[T any](root *node[T]) int {
	if root == nil {
		return 0
	}
	return root.size()
}

// nth returns element i of the spine. i must be in range.
func nth[T any](root *node[T], i int) T {
	n := root
	for !n.isLeaf() {
		j, off := n.findChild(i)
		n = n.children[j]
		i = off
	}
	return n.elems[i]
}

// leafAt returns the leaf chunk holding element i and the index within it.
func leafAt[T any](root *node[T], i int) ([]T, int) {
	n := root
	for !n.isLeaf() {
		j, off := n.findChild(i)
		n = n.children[j]
		i = off
	}
	return n.elems, i
}

// collapse removes single-child interior levels above height 1.
func collapse[T any](root *node[T]) *node[T] {
	for root != nil && root.height > 1 && len(root.children) == 1 {
		root = root.children[0]
	}
	return root
}

// pushLastLeaf appends leaf as the new rightmost leaf.
func pushLastLeaf[T any](root, leaf *node[T], owner *Owner) *node[T] {
	if root == nil {
		return newInterior([]*node[T]{leaf}, owner)
	}
	r, overflow := root.pushLast(leaf, owner)
	if overflow == nil {
		return r
	}
	return newInterior([]*node[T]{r, overflow}, owner)
}

// pushLast appends leaf along the right edge of n. When the edge is full it
// returns n unchanged plus an overflow node of n's height holding the leaf.
func (n *node[T]) pushLast(leaf *node[T], owner *Owner) (*node[T], *node[T]) {
	if n.height == 1 {
		if len(n.children) < BranchFactor {
			m := n.editable(owner)
			m.children = append(m.children, leaf)
			m.sizes = append(m.sizes, m.size()+leaf.size())
			return m, nil
		}
		return n, newInterior([]*node[T]{leaf}, owner)
	}

	last := len(n.children) - 1
	child, overflow := n.children[last].pushLast(leaf, owner)
	m := n.editable(owner)
	m.children[last] = child
	m.sizes[last] = m.base(last) + child.size()
	if overflow == nil {
		return m, nil
	}
	if len(m.children) < BranchFactor {
		m.children = append(m.children, overflow)
		m.sizes = append(m.sizes, m.size()+overflow.size())
		return m, nil
	}
	return m, newInterior([]*node[T]{overflow}, owner)
}

// pushFirstLeaf prepends leaf as the new leftmost leaf.
func pushFirstLeaf[T any](root, leaf *node[T], owner *Owner) *node[T] {
	if root == nil {
		return newInterior([]*node[T]{leaf}, owner)
	}
	r, overflow := root.pushFirst(leaf, owner)
	if overflow == nil {
		return r
	}
	return newInterior([]*node[T]{overflow, r}, owner)
}

// pushFirst is the mirror image of pushLast.
func (n *node[T]) pushFirst(leaf *node[T], owner *Owner) (*node[T], *node[T]) {
	if n.height == 1 {
		if len(n.children) < BranchFactor {
			m := n.editable(owner)
			m.children = slices.Insert(m.children, 0, leaf)
			m.recomputeSizes(0)
			return m, nil
		}
		return n, newInterior([]*node[T]{leaf}, owner)
	}

	child, overflow := n.children[0].pushFirst(leaf, owner)
	m := n.editable(owner)
	m.children[0] = child
	if overflow == nil {
		m.recomputeSizes(0)
		return m, nil
	}
	if len(m.children) < BranchFactor {
		m.children = slices.Insert(m.children, 0, overflow)
		m.recomputeSizes(0)
		return m, nil
	}
	m.recomputeSizes(0)
	return m, newInterior([]*node[T]{overflow}, owner)
}

// popLastLeaf removes the rightmost leaf. Returns ErrEmpty on an empty spine.
func popLastLeaf[T any](root *node[T], owner *Owner) (*node[T], *node[T], error) {
	if root == nil {
		return nil, nil, emptyError("pop last chunk")
	}
	leaf, rest := root.popLast(owner)
	return leaf, collapse(rest), nil
}

// popLast removes the rightmost leaf of n. The remainder is nil when n had
// no other leaves.
func (n *node[T]) popLast(owner *Owner) (*node[T], *node[T]) {
	last := len(n.children) - 1
	var leaf, child *node[T]
	if n.height == 1 {
		leaf = n.children[last]
	} else {
		leaf, child = n.children[last].popLast(owner)
	}

	if child == nil {
		if last == 0 {
			return leaf, nil
		}
		m := n.editable(owner)
		m.children[last] = nil
		m.children = m.children[:last]
		m.sizes = m.sizes[:last]
		return leaf, m
	}

	m := n.editable(owner)
	m.children[last] = child
	m.sizes[last] = m.base(last) + child.size()
	return leaf, m
}

// popFirstLeaf removes the leftmost leaf. Returns ErrEmpty on an empty spine.
func popFirstLeaf[T any](root *node[T], owner *Owner) (*node[T], *node[T], error) {
	if root == nil {
		return nil, nil, emptyError("pop first chunk")
	}
	leaf, rest := root.popFirst(owner)
	return leaf, collapse(rest), nil
}

// popFirst is the mirror image of popLast.
func (n *node[T]) popFirst(owner *Owner) (*node[T], *node[T]) {
	var leaf, child *node[T]
	if n.height == 1 {
		leaf = n.children[0]
	} else {
		leaf, child = n.children[0].popFirst(owner)
	}

	if child == nil && len(n.children) == 1 {
		return leaf, nil
	}

	m := n.editable(owner)
	if child == nil {
		m.children = slices.Delete(m.children, 0, 1)
	} else {
		m.children[0] = child
	}
	m.recomputeSizes(0)
	return leaf, m
}

// setSpine replaces element i, copying the root-to-leaf path unless owner
// already owns it.
func setSpine[T any](n *node[T], i int, x T, owner *Owner) *node[T] {
	m := n.editable(owner)
	if m.isLeaf() {
		m.elems[i] = x
		return m
	}
	j, off := m.findChild(i)
	m.children[j] = setSpine(m.children[j], off, x, owner)
	return m
}

// sliceSpine returns the spine holding elements [start, end).
// Only the nodes on the two boundary paths are rebuilt.
func sliceSpine[T any](root *node[T], start, end int, owner *Owner) *node[T] {
	if root == nil || end <= start {
		return nil
	}
	return collapse(root.slice(start, end, owner))
}

// slice returns a node of n's height holding elements [start, end).
// The range must be non-empty and inside n.
func (n *node[T]) slice(start, end int, owner *Owner) *node[T] {
	if start == 0 && end == n.size() {
		return n
	}
	if n.isLeaf() {
		return newLeaf(slices.Clone(n.elems[start:end]), owner)
	}

	js, offStart := n.findChild(start)
	je, offLast := n.findChild(end - 1)
	if js == je {
		child := n.children[js].slice(offStart, offLast+1, owner)
		return newInterior([]*node[T]{child}, owner)
	}

	children := make([]*node[T], 0, max(je-js+1, BranchFactor))
	first := n.children[js]
	children = append(children, first.slice(offStart, first.size(), owner))
	children = append(children, n.children[js+1:je]...)
	children = append(children, n.children[je].slice(0, offLast+1, owner))
	return newInterior(children, owner)
}

// concatSpine joins two spines. Work is confined to the seam between the
// right edge of left and the left edge of right.
func concatSpine[T any](left, right *node[T], owner *Owner) *node[T] {
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}
	nodes := mergeSeam(left, right, owner)
	if len(nodes) == 1 {
		return collapse(nodes[0])
	}
	return newInterior(nodes, owner)
}

// mergeSeam merges two subtrees into one or two nodes of the taller height.
func mergeSeam[T any](left, right *node[T], owner *Owner) []*node[T] {
	switch {
	case left.height == right.height && left.isLeaf():
		if len(left.elems)+len(right.elems) <= BranchFactor {
			elems := make([]T, 0, len(left.elems)+len(right.elems))
			elems = append(elems, left.elems...)
			elems = append(elems, right.elems...)
			return []*node[T]{newLeaf(elems, owner)}
		}
		return []*node[T]{left, right}

	case left.height == right.height:
		mid := mergeSeam(left.last(), right.first(), owner)
		children := make([]*node[T], 0, len(left.children)+len(right.children))
		children = append(children, left.children[:len(left.children)-1]...)
		children = append(children, mid...)
		children = append(children, right.children[1:]...)
		return pack(children, owner)

	case left.height > right.height:
		mid := mergeSeam(left.last(), right, owner)
		children := make([]*node[T], 0, len(left.children)+1)
		children = append(children, left.children[:len(left.children)-1]...)
		children = append(children, mid...)
		return pack(children, owner)

	default:
		mid := mergeSeam(left, right.first(), owner)
		children := make([]*node[T], 0, len(right.children)+1)
		children = append(children, mid...)
		children = append(children, right.children[1:]...)
		return pack(children, owner)
	}
}

// pack groups up to 2*BranchFactor siblings into one or two interior nodes.
// The left node absorbs as many children as fit.
func pack[T any](children []*node[T], owner *Owner) []*node[T] {
	if len(children) <= BranchFactor {
		return []*node[T]{newInterior(children, owner)}
	}
	return []*node[T]{
		newInterior(slices.Clone(children[:BranchFactor]), owner),
		newInterior(slices.Clone(children[BranchFactor:]), owner),
	}
}

// checkSpine verifies the structural invariants of a spine.
func checkSpine[T any](root *node[T]) error {
	if root == nil {
		return nil
	}
	if root.isLeaf() {
		return fmt.Errorf("spine root is a leaf")
	}
	_, err := root.check()
	return err
}

// check verifies n and its subtree, returning the subtree size.
func (n *node[T]) check() (int, error) {
	if n.isLeaf() {
		if len(n.elems) == 0 || len(n.elems) > BranchFactor {
			return 0, fmt.Errorf("leaf holds %d elements", len(n.elems))
		}
		return len(n.elems), nil
	}
	if len(n.children) == 0 || len(n.children) > BranchFactor {
		return 0, fmt.Errorf("node at height %d has %d children", n.height, len(n.children))
	}
	if len(n.sizes) != len(n.children) {
		return 0, fmt.Errorf("node at height %d has %d sizes for %d children", n.height, len(n.sizes), len(n.children))
	}
	total := 0
	for i, child := range n.children {
		if child.height+1 != n.height {
			return 0, fmt.Errorf("child %d has height %d under height %d", i, child.height, n.height)
		}
		size, err := child.check()
		if err != nil {
			return 0, err
		}
		total += size
		if n.sizes[i] != total {
			return 0, fmt.Errorf("node at height %d: sizes[%d] = %d, want %d", n.height, i, n.sizes[i], total)
		}
	}
	return total, nil
}
