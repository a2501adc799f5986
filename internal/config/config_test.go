package config

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	w := Default()
	require.NoError(t, w.Validate())
	for _, name := range OpNames {
		assert.Contains(t, w.Weights, name)
	}
}

func TestLoadDefaults(t *testing.T) {
	w, err := Load(fstest.MapFS{}, "")
	require.NoError(t, err)
	assert.Equal(t, Default(), w)
}

func TestLoadTOML(t *testing.T) {
	fsys := fstest.MapFS{
		"bench.toml": {Data: []byte(`
seed = 42
ops = 500
check_every = 50

[weights]
concat = 7

[log]
level = "DEBUG"
format = "json"

[script]
timeout = "250ms"
`)},
	}

	w, err := Load(fsys, "bench.toml")
	require.NoError(t, err)

	assert.Equal(t, uint64(42), w.Seed)
	assert.Equal(t, 500, w.Ops)
	assert.Equal(t, 50, w.CheckEvery)
	assert.Equal(t, 7, w.Weights["concat"])
	assert.Equal(t, Default().Weights["add_first"], w.Weights["add_first"], "unmentioned weights keep defaults")
	assert.Equal(t, "debug", w.Log.Level)
	assert.Equal(t, "json", w.Log.Format)
	assert.Equal(t, 250*time.Millisecond, w.Script.Timeout)
}

func TestLoadYAMLWithInclude(t *testing.T) {
	fsys := fstest.MapFS{
		"weights.toml": {Data: []byte("[weights]\nslice = 9\nset = 0\n")},
		"bench.yaml": {Data: []byte(`
include: weights.toml
ops: 20
initial: 100
weights:
  set: 2
`)},
	}

	w, err := Load(fsys, "bench.yaml")
	require.NoError(t, err)
	assert.Equal(t, 20, w.Ops)
	assert.Equal(t, 100, w.Initial)
	assert.Equal(t, 9, w.Weights["slice"])
	assert.Equal(t, 2, w.Weights["set"], "the including file wins")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	fsys := fstest.MapFS{
		"bench.toml": {Data: []byte("seed = 3\nops = 10\n")},
	}
	t.Setenv("PVEC_SEED", "11")
	t.Setenv("PVEC_LOG_FORMAT", "json")
	t.Setenv("PVEC_WEIGHTS_LINEAR", "6")

	w, err := Load(fsys, "bench.toml")
	require.NoError(t, err)
	assert.Equal(t, uint64(11), w.Seed)
	assert.Equal(t, 10, w.Ops)
	assert.Equal(t, "json", w.Log.Format)
	assert.Equal(t, 6, w.Weights["linear"])
}

func TestLoadMissingFile(t *testing.T) {
	w, err := Load(fstest.MapFS{}, "nope.toml")
	require.NoError(t, err)
	assert.Equal(t, Default().Ops, w.Ops)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(fstest.MapFS{}, "bench.ini")
	require.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		path    string
		message string
	}{
		{"negative ops", "ops = -1", "ops", "must not be negative"},
		{"negative seed", "seed = -5", "seed", "must not be negative"},
		{"bad level", "[log]\nlevel = \"loud\"", "log.level", "must be one of"},
		{"bad format", "[log]\nformat = \"xml\"", "log.format", "must be one of"},
		{"unknown weight", "[weights]\nrotate = 1", "weights.rotate", "unknown operation"},
		{"negative weight", "[weights]\nset = -2", "weights.set", "must not be negative"},
		{"unknown key", "colour = \"red\"", "colour", "unknown setting"},
		{"bad duration", "[script]\ntimeout = \"soon\"", "script.timeout", "invalid duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"bench.toml": {Data: []byte(tt.content)}}
			_, err := Load(fsys, "bench.toml")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidationFailed)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.path, verr.Path)
			assert.Contains(t, verr.Message, tt.message)
		})
	}
}

func TestLoadTypeMismatch(t *testing.T) {
	fsys := fstest.MapFS{"bench.toml": {Data: []byte("ops = \"many\"\n[log]\nlevel = 3\n")}}
	_, err := Load(fsys, "bench.toml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	var terr *TypeError
	require.True(t, errors.As(err, &terr))
	assert.Contains(t, []string{"ops", "log.level"}, terr.Path)
}

func TestValidateAllWeightsZero(t *testing.T) {
	w := Default()
	for name := range w.Weights {
		w.Weights[name] = 0
	}
	assert.ErrorIs(t, w.Validate(), ErrValidationFailed)

	w.Ops = 0
	assert.NoError(t, w.Validate(), "no weights are needed when no ops run")
}

func TestFromMapRoundTrip(t *testing.T) {
	w := Default()
	w.Seed = 99
	w.Weights["slice"] = 12
	got, err := FromMap(w.Map())
	require.NoError(t, err)
	assert.Equal(t, w, got)
}

func TestValidationErrorCodeString(t *testing.T) {
	assert.Equal(t, "out_of_range", ErrCodeOutOfRange.String())
	assert.Equal(t, "invalid_enum", ErrCodeInvalidEnum.String())
	assert.Equal(t, "unknown", ValidationErrorCode(200).String())
}
