package vector

import (
	"fmt"
	"slices"
	"strings"
)

// Vector is a double-ended sequence with cheap slicing and concatenation.
//
// A Vector is either persistent or transient. Persistent vectors are never
// modified: every edit returns a new Vector sharing structure with the old
// one, which makes them safe to alias and to read concurrently. A transient
// vector (obtained from Linear) is edited in place and every edit returns
// the receiver itself; it behaves like a builder with a single owner.
//
// The zero value is an empty persistent vector.
type Vector[T any] struct {
	root    *node[T] // spine; nil when empty
	head    []T      // right-aligned head buffer
	headLen int
	tail    []T // left-aligned tail buffer
	tailLen int
	owner   *Owner // nil for persistent vectors
}

// New creates an empty vector.
func New[T any]() *Vector[T] {
	return &Vector[T]{}
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int {
	return v.headLen + spineSize(v.root) + v.tailLen
}

// IsEmpty returns true if the vector has no elements.
func (v *Vector[T]) IsEmpty() bool {
	return v.Len() == 0
}

// IsLinear returns true if the vector is transient.
func (v *Vector[T]) IsLinear() bool {
	return v.owner != nil
}

// Owner returns the token of a transient vector, or nil.
func (v *Vector[T]) Owner() *Owner {
	return v.owner
}

// target returns the vector an edit should be applied to, and whether its
// edge buffers may be written in place.
func (v *Vector[T]) target() (*Vector[T], bool) {
	if v.owner != nil {
		return v, true
	}
	c := *v
	return &c, false
}

// Get returns the element at index i.
func (v *Vector[T]) Get(i int) (T, error) {
	if size := v.Len(); i < 0 || i >= size {
		var zero T
		return zero, indexError("get", i, size)
	}
	return v.at(i), nil
}

// At returns the element at index i. It panics if i is out of range.
func (v *Vector[T]) At(i int) T {
	x, err := v.Get(i)
	if err != nil {
		panic(err)
	}
	return x
}

func (v *Vector[T]) at(i int) T {
	if i < v.headLen {
		return headView(v.head, v.headLen)[i]
	}
	i -= v.headLen
	sz := spineSize(v.root)
	if i < sz {
		return nth(v.root, i)
	}
	return v.tail[i-sz]
}

// chunkAt returns the chunk holding element i and the index within it.
func (v *Vector[T]) chunkAt(i int) ([]T, int) {
	if i < v.headLen {
		return headView(v.head, v.headLen), i
	}
	i -= v.headLen
	sz := spineSize(v.root)
	if i < sz {
		return leafAt(v.root, i)
	}
	return tailView(v.tail, v.tailLen), i - sz
}

// First returns the first element.
func (v *Vector[T]) First() (T, error) {
	if v.IsEmpty() {
		var zero T
		return zero, emptyError("first")
	}
	return v.at(0), nil
}

// Last returns the last element.
func (v *Vector[T]) Last() (T, error) {
	if v.IsEmpty() {
		var zero T
		return zero, emptyError("last")
	}
	return v.at(v.Len() - 1), nil
}

// AddFirst prepends x.
func (v *Vector[T]) AddFirst(x T) *Vector[T] {
	t, inPlace := v.target()
	t.head = pushHead(t.head, t.headLen, x, inPlace)
	t.headLen++
	if t.headLen == BranchFactor {
		t.root = pushFirstLeaf(t.root, flushChunk(t.head, t.owner), t.owner)
		t.head, t.headLen = nil, 0
	}
	return t
}

// AddLast appends x.
func (v *Vector[T]) AddLast(x T) *Vector[T] {
	t, inPlace := v.target()
	t.tail = pushTail(t.tail, t.tailLen, x, inPlace)
	t.tailLen++
	if t.tailLen == BranchFactor {
		t.root = pushLastLeaf(t.root, flushChunk(t.tail, t.owner), t.owner)
		t.tail, t.tailLen = nil, 0
	}
	return t
}

// Append appends all of xs.
func (v *Vector[T]) Append(xs ...T) *Vector[T] {
	if len(xs) == 0 {
		return v
	}
	if v.owner != nil {
		for _, x := range xs {
			v.AddLast(x)
		}
		return v
	}
	t := v.Linear()
	for _, x := range xs {
		t.AddLast(x)
	}
	return t.Forked()
}

// RemoveFirst removes the first element.
// Returns ErrEmpty if the vector has no elements.
func (v *Vector[T]) RemoveFirst() (*Vector[T], error) {
	if v.IsEmpty() {
		return v, emptyError("remove first")
	}
	t, inPlace := v.target()
	if t.headLen == 0 {
		if t.root != nil {
			leaf, rest, err := popFirstLeaf(t.root, t.owner)
			if err != nil {
				return v, err
			}
			t.root = rest
			t.head = adopt(leaf, t.owner)
		} else {
			// Only the tail holds elements; it becomes the head.
			t.head = slices.Clone(tailView(t.tail, t.tailLen))
			t.tail, t.tailLen = nil, 0
		}
		t.headLen = len(t.head)
		inPlace = true
	}
	popHead(t.head, t.headLen, inPlace)
	t.headLen--
	if t.headLen == 0 && t.owner == nil {
		t.head = nil
	}
	return t, nil
}

// RemoveLast removes the last element.
// Returns ErrEmpty if the vector has no elements.
func (v *Vector[T]) RemoveLast() (*Vector[T], error) {
	if v.IsEmpty() {
		return v, emptyError("remove last")
	}
	t, inPlace := v.target()
	if t.tailLen == 0 {
		if t.root != nil {
			leaf, rest, err := popLastLeaf(t.root, t.owner)
			if err != nil {
				return v, err
			}
			t.root = rest
			t.tail = adopt(leaf, t.owner)
		} else {
			t.tail = slices.Clone(headView(t.head, t.headLen))
			t.head, t.headLen = nil, 0
		}
		t.tailLen = len(t.tail)
		inPlace = true
	}
	popTail(t.tail, t.tailLen, inPlace)
	t.tailLen--
	if t.tailLen == 0 && t.owner == nil {
		t.tail = nil
	}
	return t, nil
}

// Set replaces the element at index i with x.
func (v *Vector[T]) Set(i int, x T) (*Vector[T], error) {
	if size := v.Len(); i < 0 || i >= size {
		return v, indexError("set", i, size)
	}
	t, inPlace := v.target()
	sz := spineSize(t.root)
	switch {
	case i < t.headLen:
		t.head = setHead(t.head, t.headLen, i, x, inPlace)
	case i < t.headLen+sz:
		t.root = setSpine(t.root, i-t.headLen, x, t.owner)
	default:
		t.tail = setTail(t.tail, i-t.headLen-sz, x, inPlace)
	}
	return t, nil
}

// Update replaces the element at index i with fn applied to it.
func (v *Vector[T]) Update(i int, fn func(T) T) (*Vector[T], error) {
	x, err := v.Get(i)
	if err != nil {
		return v, err
	}
	return v.Set(i, fn(x))
}

// Slice returns the elements in [start, end).
// A range with end <= start yields an empty vector.
func (v *Vector[T]) Slice(start, end int) (*Vector[T], error) {
	if size := v.Len(); start < 0 || end > size {
		return v, rangeError("slice", start, end, size)
	}
	r := v.slice(start, end, v.owner)
	if v.owner != nil {
		*v = r
		return v, nil
	}
	return &r, nil
}

// Split splits the vector at k into [0, k) and [k, Len).
// On a transient vector the receiver becomes the left half and the right
// half is a new transient vector with its own owner.
func (v *Vector[T]) Split(k int) (*Vector[T], *Vector[T], error) {
	size := v.Len()
	if k < 0 || k > size {
		return v, nil, indexError("split", k, size+1)
	}
	if v.owner == nil {
		left := v.slice(0, k, nil)
		right := v.slice(k, size, nil)
		return &left, &right, nil
	}
	// Both halves may share subtrees stamped with the current owner, so
	// each gets a fresh one.
	left := v.slice(0, k, newOwner())
	right := v.slice(k, size, newOwner())
	*v = left
	return v, &right, nil
}

// slice builds a vector holding [start, end) whose new nodes and buffers
// belong to owner. The receiver is not modified.
func (v *Vector[T]) slice(start, end int, owner *Owner) Vector[T] {
	r := Vector[T]{owner: owner}
	if end <= start {
		return r
	}

	hl, sz := v.headLen, spineSize(v.root)
	if start < hl {
		r.head = slices.Clone(headView(v.head, hl)[start:min(end, hl)])
		r.headLen = len(r.head)
	}
	if s, e := max(start-hl, 0), min(end-hl, sz); s < e {
		r.root = sliceSpine(v.root, s, e, owner)
	}
	if s, e := max(start-hl-sz, 0), end-hl-sz; s < e {
		r.tail = slices.Clone(tailView(v.tail, v.tailLen)[s:e])
		r.tailLen = len(r.tail)
	}
	return r
}

// Concat appends all elements of other.
//
// The receiver's tail buffer and other's head buffer are folded into the
// spines as (possibly partial) chunks, then the spines are merged along
// their seam. If other is transient and its spine ends up shared with the
// result, other gets a new owner.
func (v *Vector[T]) Concat(other *Vector[T]) *Vector[T] {
	if other == nil || other.IsEmpty() {
		return v
	}
	if other.root == nil {
		// Fewer than two chunks: appending keeps the receiver's leaves full.
		return v.Append(other.ToSlice()...)
	}

	if other.owner != nil && other.owner == v.owner {
		// Concatenating a transient vector with itself: read from a
		// persistent snapshot and stop editing the old nodes in place.
		snap := *other
		snap.owner = nil
		other = &snap
		v.owner = newOwner()
	} else if other.owner != nil {
		other.owner = newOwner()
	}

	t, _ := v.target()
	left := t.root
	if t.tailLen > 0 {
		left = pushLastLeaf(left, partialChunk(tailView(t.tail, t.tailLen), t.owner), t.owner)
	}
	right := other.root
	if other.headLen > 0 {
		right = pushFirstLeaf(right, partialChunk(headView(other.head, other.headLen), t.owner), t.owner)
	}

	t.root = concatSpine(left, right, t.owner)
	t.tail, t.tailLen = other.tail, other.tailLen
	if t.owner != nil || other.owner != nil {
		t.tail = copyEdge(other.tail)
	}
	return t
}

// Linear returns a transient version of the vector. A vector that is
// already transient is returned as is.
func (v *Vector[T]) Linear() *Vector[T] {
	if v.owner != nil {
		return v
	}
	c := v.copyBuffers()
	c.owner = newOwner()
	return c
}

// Forked returns a persistent version of the vector. A transient receiver
// is converted in place and returned; it must not be edited through any
// other reference afterwards.
func (v *Vector[T]) Forked() *Vector[T] {
	v.owner = nil
	return v
}

// Clone returns a copy that shares the spine with v and has its own edge
// buffers. Cloning a transient vector yields a transient copy; both the copy
// and the receiver get fresh owners so neither edits the shared spine in
// place.
func (v *Vector[T]) Clone() *Vector[T] {
	c := v.copyBuffers()
	if v.owner != nil {
		c.owner = newOwner()
		v.owner = newOwner()
	}
	return c
}

func (v *Vector[T]) copyBuffers() *Vector[T] {
	c := *v
	c.head = copyEdge(v.head)
	c.tail = copyEdge(v.tail)
	return &c
}

// IndexFunc returns the first index i satisfying pred(v[i]), or -1.
func (v *Vector[T]) IndexFunc(pred func(T) bool) int {
	it := v.Iter()
	for it.Next() {
		if pred(it.Value()) {
			return it.Index()
		}
	}
	return -1
}

// LastIndexFunc returns the last index i satisfying pred(v[i]), or -1.
func (v *Vector[T]) LastIndexFunc(pred func(T) bool) int {
	for i, x := range v.Backward() {
		if pred(x) {
			return i
		}
	}
	return -1
}

// ToSlice returns the elements as a new slice.
func (v *Vector[T]) ToSlice() []T {
	out := make([]T, 0, v.Len())
	for chunk := range v.Chunks() {
		out = append(out, chunk...)
	}
	return out
}

// Reverse returns the elements in reverse order.
func (v *Vector[T]) Reverse() *Vector[T] {
	r := New[T]().Linear()
	for _, x := range v.Backward() {
		r.AddLast(x)
	}
	if v.owner != nil {
		r.owner = v.owner
		*v = *r
		return v
	}
	return r.Forked()
}

// String formats the vector like a Go slice.
func (v *Vector[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, x := range v.All() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, x)
	}
	sb.WriteByte(']')
	return sb.String()
}

// Equal reports whether a and b hold equal elements in the same order.
func Equal[T comparable](a, b *Vector[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc reports whether a and b are equal element-wise under eq.
func EqualFunc[T, U any](a *Vector[T], b *Vector[U], eq func(T, U) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	ia, ib := a.Iter(), b.Iter()
	for ia.Next() && ib.Next() {
		if !eq(ia.Value(), ib.Value()) {
			return false
		}
	}
	return true
}

// IndexOf returns the index of the first occurrence of x in v, or -1.
func IndexOf[T comparable](v *Vector[T], x T) int {
	return v.IndexFunc(func(y T) bool { return x == y })
}

// LastIndexOf returns the index of the last occurrence of x in v, or -1.
func LastIndexOf[T comparable](v *Vector[T], x T) int {
	return v.LastIndexFunc(func(y T) bool { return x == y })
}
