package workload

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/pvec/internal/config"
	"github.com/dshills/pvec/internal/engine/vector"
)

// ErrMismatch is returned by Run when the vector diverges from the model.
var ErrMismatch = errors.New("vector diverged from model")

// Runner applies generated operations to a vector and to a slice model.
type Runner struct {
	cfg *config.Workload
	gen *Generator
	log zerolog.Logger
}

// NewRunner creates a runner for cfg. The configuration is validated first.
func NewRunner(cfg *config.Workload, log zerolog.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gen, err := NewGenerator(cfg.Seed, cfg.Weights)
	if err != nil && cfg.Ops > 0 {
		return nil, err
	}
	return &Runner{
		cfg: cfg,
		gen: gen,
		log: log.With().Str("component", "workload").Logger(),
	}, nil
}

// state is the pair under test plus the last checked persistent snapshot.
type state struct {
	v     *vector.Vector[int]
	model []int

	snap      *vector.Vector[int]
	snapModel []int
}

// Run applies the configured number of operations. It checks lengths
// after every step and runs a full comparison every CheckEvery steps and at
// the end. A divergence stops the run and is returned as ErrMismatch with
// the details in the report. Cancelling ctx stops the run between steps.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	rep := &Report{
		Seed: r.cfg.Seed,
		Ops:  make(map[string]int, numKinds),
	}
	s := &state{
		v:     vector.FromSlice(initial(r.cfg.Initial)),
		model: initial(r.cfg.Initial),
	}
	r.log.Info().
		Uint64("seed", r.cfg.Seed).
		Int("ops", r.cfg.Ops).
		Int("initial", r.cfg.Initial).
		Msg("workload started")

	finish := func(err error) (*Report, error) {
		rep.FinalLen = s.v.Len()
		rep.Height = s.v.Height()
		rep.Linear = s.v.IsLinear()
		rep.Elapsed = time.Since(start)
		if rep.Mismatch != nil {
			r.log.Error().
				Int("step", rep.Mismatch.Step).
				Str("op", rep.Mismatch.Op).
				Str("detail", rep.Mismatch.Detail).
				Msg("mismatch")
		}
		r.log.Info().
			Int("steps", rep.Steps).
			Int("len", rep.FinalLen).
			Int("height", rep.Height).
			Dur("elapsed", rep.Elapsed).
			Bool("ok", rep.OK()).
			Msg("workload finished")
		return rep, err
	}

	if err := r.check(s, -1, "initial", rep); err != nil {
		return finish(err)
	}

	for step := range r.cfg.Ops {
		if err := ctx.Err(); err != nil {
			r.log.Warn().Int("step", step).Msg("workload cancelled")
			return finish(err)
		}

		op := r.gen.Next(len(s.model))
		r.log.Trace().Int("step", step).Stringer("op", op).Msg("apply")
		expectedErr, detail := apply(s, op)
		rep.Steps++
		rep.Ops[op.Kind.String()]++
		if expectedErr {
			rep.Errors++
		}
		if detail == "" && s.v.Len() != len(s.model) {
			detail = fmt.Sprintf("length %d, model %d", s.v.Len(), len(s.model))
		}
		if detail != "" {
			rep.Mismatch = &Mismatch{Step: step, Op: op.String(), Detail: detail}
			return finish(ErrMismatch)
		}

		if r.cfg.CheckEvery > 0 && (step+1)%r.cfg.CheckEvery == 0 {
			if err := r.check(s, step, op.String(), rep); err != nil {
				return finish(err)
			}
		}
	}

	if err := r.check(s, rep.Steps-1, "final", rep); err != nil {
		return finish(err)
	}
	return finish(nil)
}

// check compares every element, validates the layout, verifies that the
// previous snapshot is unchanged and takes a new one.
func (r *Runner) check(s *state, step int, label string, rep *Report) error {
	rep.Checks++
	fail := func(format string, args ...any) error {
		rep.Mismatch = &Mismatch{Step: step, Op: label, Detail: fmt.Sprintf(format, args...)}
		return ErrMismatch
	}

	if err := s.v.Validate(); err != nil {
		return fail("invalid layout: %v", err)
	}
	if detail := compare(s.v, s.model); detail != "" {
		return fail("%s", detail)
	}
	if s.snap != nil {
		if detail := compare(s.snap, s.snapModel); detail != "" {
			return fail("snapshot changed: %s", detail)
		}
	}

	if s.v.IsLinear() {
		s.snap = s.v.Clone().Forked()
	} else {
		s.snap = s.v
	}
	s.snapModel = slices.Clone(s.model)

	r.log.Debug().
		Int("step", step).
		Int("len", s.v.Len()).
		Int("height", s.v.Height()).
		Msg("check passed")
	return nil
}

func compare(v *vector.Vector[int], model []int) string {
	if v.Len() != len(model) {
		return fmt.Sprintf("length %d, model %d", v.Len(), len(model))
	}
	for i, x := range v.All() {
		if x != model[i] {
			return fmt.Sprintf("element %d is %d, model %d", i, x, model[i])
		}
	}
	for i, want := range model {
		got, err := v.Get(i)
		if err != nil || got != want {
			return fmt.Sprintf("Get(%d) = %d, %v; model %d", i, got, err, want)
		}
	}
	return ""
}

// apply runs op on both sides. It reports whether the vector was expected to
// return an error, and a non-empty detail if it behaved unlike the model.
func apply(s *state, op Op) (bool, string) {
	switch op.Kind {
	case AddFirst:
		s.v = s.v.AddFirst(op.Value)
		s.model = slices.Insert(s.model, 0, op.Value)

	case AddLast:
		s.v = s.v.AddLast(op.Value)
		s.model = append(s.model, op.Value)

	case RemoveFirst, RemoveLast:
		var w *vector.Vector[int]
		var err error
		if op.Kind == RemoveFirst {
			w, err = s.v.RemoveFirst()
		} else {
			w, err = s.v.RemoveLast()
		}
		if len(s.model) == 0 {
			if !errors.Is(err, vector.ErrEmpty) {
				return true, fmt.Sprintf("want ErrEmpty, got %v", err)
			}
			return true, ""
		}
		if err != nil {
			return false, err.Error()
		}
		s.v = w
		if op.Kind == RemoveFirst {
			s.model = s.model[1:]
		} else {
			s.model = s.model[:len(s.model)-1]
		}

	case Set:
		w, err := s.v.Set(op.Index, op.Value)
		if op.Index >= len(s.model) {
			if !errors.Is(err, vector.ErrOutOfBounds) {
				return true, fmt.Sprintf("want ErrOutOfBounds, got %v", err)
			}
			return true, ""
		}
		if err != nil {
			return false, err.Error()
		}
		s.v = w
		s.model[op.Index] = op.Value

	case Slice:
		w, err := s.v.Slice(op.Index, op.End)
		if err != nil {
			return false, err.Error()
		}
		s.v = w
		s.model = s.model[op.Index:op.End]

	case Concat:
		if op.Self {
			s.v = s.v.Concat(s.v)
			s.model = append(slices.Clip(s.model), s.model...)
			break
		}
		piece := make([]int, op.Count)
		for i := range piece {
			piece[i] = op.Value + i
		}
		s.v = s.v.Concat(vector.FromSlice(piece))
		s.model = append(s.model, piece...)

	case Linear:
		s.v = s.v.Linear()

	case Forked:
		s.v = s.v.Forked()
	}
	return false, ""
}

func initial(n int) []int {
	xs := make([]int, n)
	for i := range xs {
		xs[i] = -1 - i
	}
	return xs
}
