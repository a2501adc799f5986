package script

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

func newTestState(t *testing.T, opts ...StateOption) (*State, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s, err := NewState(append([]StateOption{WithOutput(&out)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, &out
}

func run(t *testing.T, s *State, code string) {
	t.Helper()
	require.NoError(t, s.DoString(context.Background(), code))
}

func TestVectorBasics(t *testing.T) {
	s, out := newTestState(t)
	run(t, s, `
local vector = require("vector")
local v = vector.of(1, 2, 3)
assert(#v == 3)
assert(v:len() == 3)
assert(v[1] == 1 and v[3] == 3)
assert(v[0] == nil and v[4] == nil)
assert(v:get(2) == 2)
assert(vector.is(v) and not vector.is({}))

local w = v:push(4, 5):unshift(0)
assert(#w == 6 and w[1] == 0 and w[6] == 5)
assert(#v == 3, "push must not change a persistent vector")

local x = v:set(1, "a")
assert(x[1] == "a" and v[1] == 1)

print(w)
`)
	assert.Equal(t, "[0 1 2 3 4 5]\n", out.String())
}

func TestVectorPopShift(t *testing.T) {
	s, _ := newTestState(t)
	run(t, s, `
local vector = require("vector")
local v = vector.of(1, 2, 3)
local rest, last = v:pop()
assert(last == 3 and #rest == 2)
local tail, first = rest:shift()
assert(first == 1 and #tail == 1 and tail[1] == 2)
assert(#v == 3)
assert(vector.new():first() == nil)
`)
}

func TestVectorSliceConcat(t *testing.T) {
	s, _ := newTestState(t)
	run(t, s, `
local vector = require("vector")
local t = {}
for i = 1, 70 do t[i] = i end
local v = vector.from(t)

local mid = v:slice(11, 60)
assert(#mid == 50 and mid[1] == 11)

local c = mid:concat(v:slice(1, 10))
assert(#c == 60)
assert(c[1] == 11 and c[50] == 60 and c[51] == 1 and c[60] == 10)

local d = mid .. v:slice(1, 10)
assert(d == c, "__concat and concat agree")
assert(v:slice(5) == v:slice(5, 70))
assert(#v:slice(10, 9) == 0)
`)
}

func TestVectorLinear(t *testing.T) {
	s, _ := newTestState(t)
	run(t, s, `
local vector = require("vector")
local p = vector.of(1, 2)
local l = p:linear()
assert(l:islinear() and not p:islinear())
assert(l:push(3) == l)
assert(rawequal(l:push(4), l), "linear edits return the receiver")
assert(#p == 2)
local f = l:forked()
assert(rawequal(f, l) and not f:islinear())
assert(not rawequal(f:push(5), f))
`)
}

func TestVectorIterationAndTables(t *testing.T) {
	s, _ := newTestState(t)
	run(t, s, `
local vector = require("vector")
local v = vector.of("a", "b", "c")
local seen = {}
for i, x in v:ipairs() do seen[i] = x end
assert(#seen == 3 and seen[1] == "a" and seen[3] == "c")

local t = v:reverse():totable()
assert(t[1] == "c" and t[3] == "a")
result = table.concat(t, ",")
`)
	assert.Equal(t, lua.LString("c,b,a"), s.GetGlobal("result"))
}

func TestVectorErrors(t *testing.T) {
	s, _ := newTestState(t)
	tests := []struct {
		name string
		code string
		want string
	}{
		{"get out of range", `require("vector").of(1):get(2)`, "out of range"},
		{"pop empty", `require("vector").new():pop()`, "empty"},
		{"slice out of range", `require("vector").of(1):slice(1, 5)`, "out of bounds"},
		{"concat non vector", `require("vector").of(1):concat({})`, "vector expected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.DoString(context.Background(), tt.code)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSandbox(t *testing.T) {
	s, _ := newTestState(t)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "io", "os", "debug"} {
		assert.Equal(t, lua.LNil, s.GetGlobal(name), name)
	}

	err := s.DoString(context.Background(), `require("os")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")

	run(t, s, `local m = require("math"); assert(m.floor(1.5) == 1)`)
}

func TestTimeout(t *testing.T) {
	s, _ := newTestState(t, WithTimeout(50*time.Millisecond))
	err := s.DoString(context.Background(), `while true do end`)
	assert.ErrorIs(t, err, ErrTimeout)

	run(t, s, `x = 1`)
}

func TestCancelledContext(t *testing.T) {
	s, _ := newTestState(t, WithTimeout(0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.DoString(ctx, `while true do end`)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCall(t *testing.T) {
	s, _ := newTestState(t)
	run(t, s, `
local vector = require("vector")
function build(n)
  local v = vector.new():linear()
  for i = 1, n do v:push(i * i) end
  return v:forked(), n
end
`)

	results, err := s.Call(context.Background(), "build", lua.LNumber(5))
	require.NoError(t, err)
	require.Len(t, results, 2)

	v, ok := ToVector(results[0])
	require.True(t, ok)
	assert.Equal(t, 5, v.Len())
	assert.Equal(t, lua.LNumber(25), v.At(4))
	assert.False(t, v.IsLinear())

	_, err = s.Call(context.Background(), "missing")
	assert.Error(t, err)
}

func TestDoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.lua")
	require.NoError(t, os.WriteFile(path, []byte(`
local vector = require("vector")
print(#vector.of(1, 2, 3):concat(vector.of(4)))
`), 0o644))

	var logs bytes.Buffer
	s, out := newTestState(t, WithLogger(zerolog.New(&logs)))
	require.NoError(t, s.DoFile(context.Background(), path))
	assert.Equal(t, "4\n", out.String())
	assert.Contains(t, logs.String(), `"component":"script"`)
}

func TestClosedState(t *testing.T) {
	s, err := NewState()
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.True(t, s.IsClosed())
	assert.ErrorIs(t, s.DoString(context.Background(), `x = 1`), ErrStateClosed)
	_, err = s.Call(context.Background(), "f")
	assert.ErrorIs(t, err, ErrStateClosed)
	assert.NoError(t, s.Close())
}
