package vector

import (
	"slices"
	"testing"
)

// mixedVector has a head buffer, a relaxed spine and a tail buffer.
func mixedVector() (*Vector[int], []int) {
	v := FromSlice(rangeInts(0, 90)).Concat(FromSlice(rangeInts(90, 170)))
	for i := -1; i >= -5; i-- {
		v = v.AddFirst(i)
	}
	want := append([]int{-5, -4, -3, -2, -1}, rangeInts(0, 170)...)
	return v, want
}

func TestIterator(t *testing.T) {
	v, want := mixedVector()
	it := v.Iter()
	var got []int
	for it.Next() {
		if it.Index() != len(got) {
			t.Fatalf("Index() = %d, want %d", it.Index(), len(got))
		}
		got = append(got, it.Value())
	}
	if !slices.Equal(got, want) {
		t.Errorf("iterated %v, want %v", got, want)
	}
	if it.HasNext() || it.Next() {
		t.Error("exhausted iterator should stay exhausted")
	}
}

func TestIteratorEmpty(t *testing.T) {
	it := New[int]().Iter()
	if it.HasNext() || it.Next() {
		t.Error("iterator over an empty vector should yield nothing")
	}
}

func TestAll(t *testing.T) {
	v, want := mixedVector()
	for i, x := range v.All() {
		if x != want[i] {
			t.Fatalf("All yielded (%d, %d), want (%d, %d)", i, x, i, want[i])
		}
	}

	count := 0
	for range v.All() {
		count++
		if count == 10 {
			break
		}
	}
	if count != 10 {
		t.Errorf("early break stopped after %d elements", count)
	}
}

func TestValues(t *testing.T) {
	v, want := mixedVector()
	if got := slices.Collect(v.Values()); !slices.Equal(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
}

func TestBackward(t *testing.T) {
	v, want := mixedVector()
	next := len(want) - 1
	for i, x := range v.Backward() {
		if i != next || x != want[i] {
			t.Fatalf("Backward yielded (%d, %d), want (%d, %d)", i, x, next, want[next])
		}
		next--
	}
	if next != -1 {
		t.Errorf("Backward stopped at %d", next)
	}
}

func TestChunks(t *testing.T) {
	v, want := mixedVector()
	var got []int
	for chunk := range v.Chunks() {
		if len(chunk) == 0 || len(chunk) > BranchFactor {
			t.Errorf("chunk of length %d", len(chunk))
		}
		got = append(got, chunk...)
	}
	if !slices.Equal(got, want) {
		t.Errorf("Chunks() concatenated to %v, want %v", got, want)
	}
}

func TestFrom(t *testing.T) {
	v := From(slices.Values(rangeInts(0, 100)))
	assertContents(t, v, rangeInts(0, 100))
}
