package vector

import (
	"fmt"
	"math/rand"
	"testing"
)

var benchSizes = []int{1000, 100000, 1000000}

func BenchmarkFromSlice(b *testing.B) {
	for _, size := range benchSizes {
		xs := rangeInts(0, size)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = FromSlice(xs)
			}
		})
	}
}

func BenchmarkAddLastPersistent(b *testing.B) {
	for i := 0; i < b.N; i++ {
		v := New[int]()
		for j := 0; j < 10000; j++ {
			v = v.AddLast(j)
		}
	}
}

func BenchmarkAddLastTransient(b *testing.B) {
	for i := 0; i < b.N; i++ {
		v := New[int]().Linear()
		for j := 0; j < 10000; j++ {
			v.AddLast(j)
		}
	}
}

func BenchmarkAddFirstPersistent(b *testing.B) {
	for i := 0; i < b.N; i++ {
		v := New[int]()
		for j := 0; j < 10000; j++ {
			v = v.AddFirst(j)
		}
	}
}

func BenchmarkGetRandom(b *testing.B) {
	for _, size := range benchSizes {
		v := FromSlice(rangeInts(0, size))
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = v.Get(rand.Intn(size))
			}
		})
	}
}

func BenchmarkSet(b *testing.B) {
	for _, size := range benchSizes {
		v := FromSlice(rangeInts(0, size))
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = v.Set(rand.Intn(size), i)
			}
		})
	}
}

func BenchmarkSlice(b *testing.B) {
	for _, size := range benchSizes {
		v := FromSlice(rangeInts(0, size))
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = v.Slice(size/4, 3*size/4)
			}
		})
	}
}

func BenchmarkConcat(b *testing.B) {
	for _, size := range benchSizes {
		l := FromSlice(rangeInts(0, size))
		r := FromSlice(rangeInts(0, size/3))
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = l.Concat(r)
			}
		})
	}
}

func BenchmarkIterate(b *testing.B) {
	for _, size := range benchSizes {
		v := FromSlice(rangeInts(0, size))
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sum := 0
				for x := range v.Values() {
					sum += x
				}
				_ = sum
			}
		})
	}
}
