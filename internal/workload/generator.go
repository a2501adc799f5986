package workload

import (
	"errors"
	"math/rand/v2"

	"github.com/dshills/pvec/internal/engine/vector"
)

// selfConcatLimit is the size above which Concat never appends a vector to
// itself, so runs do not grow without bound.
const selfConcatLimit = 1 << 14

// Generator draws operations from a seeded source.
type Generator struct {
	rng        *rand.Rand
	kinds      []Kind
	cumulative []int
	total      int
	next       int
}

// NewGenerator creates a generator drawing kinds with the given relative
// weights, keyed by kind name. Kinds with zero weight are never drawn.
func NewGenerator(seed uint64, weights map[string]int) (*Generator, error) {
	g := &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
	for k := range numKinds {
		w := weights[k.String()]
		if w < 0 {
			return nil, errors.New("workload: negative weight for " + k.String())
		}
		if w == 0 {
			continue
		}
		g.total += w
		g.kinds = append(g.kinds, k)
		g.cumulative = append(g.cumulative, g.total)
	}
	if g.total == 0 {
		return nil, errors.New("workload: no operation has a positive weight")
	}
	return g, nil
}

// Next returns an operation for a vector currently holding size elements.
// Indexes are drawn in range, except that removals and Set are also
// generated for empty vectors to exercise their error paths.
func (g *Generator) Next(size int) Op {
	op := Op{Kind: g.kind()}
	switch op.Kind {
	case AddFirst, AddLast:
		op.Value = g.value()
	case Set:
		op.Index = g.rng.IntN(max(size, 1))
		op.Value = g.value()
	case Slice:
		if size > 0 {
			op.Index = g.rng.IntN(size/4 + 1)
			op.End = size - g.rng.IntN(size/4+1)
			op.End = max(op.End, op.Index)
		}
	case Concat:
		if size > 0 && size <= selfConcatLimit && g.rng.IntN(8) == 0 {
			op.Self = true
			break
		}
		op.Count = g.rng.IntN(3 * vector.BranchFactor)
		op.Value = g.next
		g.next += op.Count
	}
	return op
}

func (g *Generator) kind() Kind {
	x := g.rng.IntN(g.total)
	for i, c := range g.cumulative {
		if x < c {
			return g.kinds[i]
		}
	}
	return g.kinds[len(g.kinds)-1]
}

func (g *Generator) value() int {
	v := g.next
	g.next++
	return v
}
