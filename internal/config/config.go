package config

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/dshills/pvec/internal/config/loader"
)

// OpNames lists the operation names accepted as weight keys, in the order
// the workload generator assigns them kinds.
var OpNames = []string{
	"add_first",
	"add_last",
	"remove_first",
	"remove_last",
	"set",
	"slice",
	"concat",
	"linear",
	"forked",
}

// Log levels and formats accepted under [log].
var (
	LogLevels  = []string{"trace", "debug", "info", "warn", "error", "disabled"}
	LogFormats = []string{"console", "json"}
)

// maxIncludeDepth bounds nested include directives.
const maxIncludeDepth = 8

// Workload configures a randomized model-checking run.
type Workload struct {
	// Seed seeds the operation generator.
	Seed uint64
	// Ops is the number of operations to apply.
	Ops int
	// Initial is the number of elements appended before the run starts.
	Initial int
	// CheckEvery is the step interval of full comparisons against the
	// model; 0 only checks at the end.
	CheckEvery int
	// Weights gives the relative frequency of each operation, keyed by the
	// entries of OpNames.
	Weights map[string]int

	Log    Log
	Script Script
}

// Log configures the CLI logger.
type Log struct {
	Level  string
	Format string
}

// Script configures the Lua runtime.
type Script struct {
	// Timeout bounds the run time of a script; 0 disables the limit.
	Timeout time.Duration
}

// Default returns the built-in workload.
func Default() *Workload {
	return &Workload{
		Seed:       1,
		Ops:        10000,
		Initial:    0,
		CheckEvery: 1000,
		Weights: map[string]int{
			"add_first":    4,
			"add_last":     4,
			"remove_first": 2,
			"remove_last":  2,
			"set":          3,
			"slice":        1,
			"concat":       1,
			"linear":       1,
			"forked":       1,
		},
		Log:    Log{Level: "info", Format: "console"},
		Script: Script{Timeout: 5 * time.Second},
	}
}

// Map returns the workload as a configuration map, the layer every other
// source is merged over.
func (w *Workload) Map() map[string]any {
	weights := make(map[string]any, len(w.Weights))
	for k, v := range w.Weights {
		weights[k] = int64(v)
	}
	return map[string]any{
		"seed":        int64(w.Seed),
		"ops":         int64(w.Ops),
		"initial":     int64(w.Initial),
		"check_every": int64(w.CheckEvery),
		"weights":     weights,
		"log": map[string]any{
			"level":  w.Log.Level,
			"format": w.Log.Format,
		},
		"script": map[string]any{
			"timeout": w.Script.Timeout,
		},
	}
}

// Load builds the workload from defaults, the file at path (TOML or YAML by
// extension, skipped when path is empty) and PVEC_ environment variables,
// in increasing priority. The result is validated.
func Load(fsys loader.FileSystem, path string) (*Workload, error) {
	data := Default().Map()

	if path != "" {
		file, err := loader.LoadWithIncludes(fsys, path, maxIncludeDepth)
		if err != nil {
			return nil, err
		}
		data = loader.DeepMerge(data, file)
	}

	env, err := loader.NewEnvLoader(loader.EnvPrefix).Load()
	if err != nil {
		return nil, err
	}
	data = loader.DeepMerge(data, env)

	w, err := FromMap(data)
	if err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// FromMap decodes a configuration map. Missing keys keep their defaults.
// Unknown keys and badly typed values are reported together.
func FromMap(data map[string]any) (*Workload, error) {
	w := Default()
	d := decoder{data: data}

	if v, ok := d.int("seed"); ok {
		if v < 0 {
			d.fail("seed", "must not be negative", v, ErrCodeOutOfRange)
		} else {
			w.Seed = uint64(v)
		}
	}
	if v, ok := d.int("ops"); ok {
		w.Ops = int(v)
	}
	if v, ok := d.int("initial"); ok {
		w.Initial = int(v)
	}
	if v, ok := d.int("check_every"); ok {
		w.CheckEvery = int(v)
	}
	if weights, ok := d.table("weights"); ok {
		for name := range weights {
			path := "weights." + name
			if !slices.Contains(OpNames, name) {
				d.fail(path, "unknown operation", name, ErrCodeUnknownSetting)
				continue
			}
			if v, ok := d.int(path); ok {
				w.Weights[name] = int(v)
			}
		}
	}
	if v, ok := d.string("log.level"); ok {
		w.Log.Level = strings.ToLower(v)
	}
	if v, ok := d.string("log.format"); ok {
		w.Log.Format = strings.ToLower(v)
	}
	if v, ok := d.duration("script.timeout"); ok {
		w.Script.Timeout = v
	}

	known := []string{"seed", "ops", "initial", "check_every", "weights", "log", "script"}
	for key := range data {
		if !slices.Contains(known, key) {
			d.fail(key, "unknown setting", data[key], ErrCodeUnknownSetting)
		}
	}

	if err := d.err(); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate checks value ranges and enums.
func (w *Workload) Validate() error {
	var errs []error
	fail := func(path, msg string, v any, code ValidationErrorCode) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v, Code: code})
	}

	if w.Ops < 0 {
		fail("ops", "must not be negative", w.Ops, ErrCodeOutOfRange)
	}
	if w.Initial < 0 {
		fail("initial", "must not be negative", w.Initial, ErrCodeOutOfRange)
	}
	if w.CheckEvery < 0 {
		fail("check_every", "must not be negative", w.CheckEvery, ErrCodeOutOfRange)
	}

	total := 0
	for _, name := range slices.Sorted(maps.Keys(w.Weights)) {
		v := w.Weights[name]
		if !slices.Contains(OpNames, name) {
			fail("weights."+name, "unknown operation", name, ErrCodeUnknownSetting)
			continue
		}
		if v < 0 {
			fail("weights."+name, "must not be negative", v, ErrCodeOutOfRange)
			continue
		}
		total += v
	}
	if total == 0 && w.Ops > 0 {
		fail("weights", "at least one weight must be positive", w.Weights, ErrCodeOutOfRange)
	}

	if !slices.Contains(LogLevels, w.Log.Level) {
		fail("log.level", "must be one of "+strings.Join(LogLevels, ", "), w.Log.Level, ErrCodeInvalidEnum)
	}
	if !slices.Contains(LogFormats, w.Log.Format) {
		fail("log.format", "must be one of "+strings.Join(LogFormats, ", "), w.Log.Format, ErrCodeInvalidEnum)
	}
	if w.Script.Timeout < 0 {
		fail("script.timeout", "must not be negative", w.Script.Timeout, ErrCodeOutOfRange)
	}

	return errors.Join(errs...)
}

// decoder reads typed values out of a configuration map and accumulates
// errors.
type decoder struct {
	data map[string]any
	errs []error
}

func (d *decoder) err() error {
	return errors.Join(d.errs...)
}

func (d *decoder) fail(path, msg string, v any, code ValidationErrorCode) {
	d.errs = append(d.errs, &ValidationError{Path: path, Message: msg, Value: v, Code: code})
}

func (d *decoder) mismatch(path, expected string, v any) {
	d.errs = append(d.errs, &TypeError{Path: path, Expected: expected, Actual: fmt.Sprintf("%T", v)})
}

func (d *decoder) int(path string) (int64, bool) {
	v, ok := loader.Lookup(d.data, path)
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case uint64:
		if x <= math.MaxInt64 {
			return int64(x), true
		}
	case float64:
		if x == math.Trunc(x) && math.Abs(x) <= math.MaxInt64 {
			return int64(x), true
		}
	}
	d.mismatch(path, "integer", v)
	return 0, false
}

func (d *decoder) string(path string) (string, bool) {
	v, ok := loader.Lookup(d.data, path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		d.mismatch(path, "string", v)
	}
	return s, ok
}

func (d *decoder) duration(path string) (time.Duration, bool) {
	v, ok := loader.Lookup(d.data, path)
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case time.Duration:
		return x, true
	case string:
		dur, err := time.ParseDuration(x)
		if err == nil {
			return dur, true
		}
		d.fail(path, "invalid duration", x, ErrCodeTypeMismatch)
		return 0, false
	}
	d.mismatch(path, "duration", v)
	return 0, false
}

func (d *decoder) table(path string) (map[string]any, bool) {
	v, ok := loader.Lookup(d.data, path)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		d.mismatch(path, "table", v)
	}
	return m, ok
}
