// Package workload drives a vector through randomized edits and checks it
// against a plain slice model.
package workload

import (
	"fmt"

	"github.com/dshills/pvec/internal/config"
)

// Kind identifies an operation.
type Kind uint8

// Operation kinds, in the order of config.OpNames.
const (
	AddFirst Kind = iota
	AddLast
	RemoveFirst
	RemoveLast
	Set
	Slice
	Concat
	Linear
	Forked

	numKinds
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if k < numKinds {
		return config.OpNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the kind with the given configuration name.
func ParseKind(name string) (Kind, error) {
	for i, n := range config.OpNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", name)
}

// Op is one generated operation. Which fields are used depends on Kind.
type Op struct {
	Kind Kind
	// Index is the target of Set and the start of Slice.
	Index int
	// End is the end of Slice.
	End int
	// Value is the element written by AddFirst, AddLast and Set, and the
	// first element of the vector appended by Concat.
	Value int
	// Count is the length of the vector appended by Concat.
	Count int
	// Self makes Concat append the vector to itself.
	Self bool
}

func (o Op) String() string {
	switch o.Kind {
	case AddFirst, AddLast:
		return fmt.Sprintf("%s(%d)", o.Kind, o.Value)
	case Set:
		return fmt.Sprintf("set(%d, %d)", o.Index, o.Value)
	case Slice:
		return fmt.Sprintf("slice(%d, %d)", o.Index, o.End)
	case Concat:
		if o.Self {
			return "concat(self)"
		}
		return fmt.Sprintf("concat(%d..%d)", o.Value, o.Value+o.Count)
	default:
		return o.Kind.String()
	}
}
