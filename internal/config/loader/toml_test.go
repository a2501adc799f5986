package loader

import (
	"errors"
	"io/fs"
	"reflect"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bench.toml", `
seed = 42
ops = 100000
check_every = 500

[weights]
add_first = 3
concat = 1

[log]
level = "debug"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/bench.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config["seed"] != int64(42) {
		t.Errorf("seed = %v (%T), want 42", config["seed"], config["seed"])
	}
	if v, ok := getByPath(config, "weights.add_first"); !ok || v != int64(3) {
		t.Errorf("weights.add_first = %v, want 3", v)
	}
	if v, ok := getByPath(config, "log.level"); !ok || v != "debug" {
		t.Errorf("log.level = %v, want debug", v)
	}
}

func TestTOMLLoader_LoadNonExistent(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml").Load()
	if err != nil {
		t.Errorf("Load should not error for a missing file, got: %v", err)
	}
	if config != nil {
		t.Errorf("config should be nil for a missing file, got: %v", config)
	}
}

func TestTOMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "seed = 1\nops = = 2\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	if err == nil {
		t.Fatal("expected error for invalid TOML")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q, want /bad.toml", perr.Path)
	}
	if perr.Line != 2 {
		t.Errorf("Line = %d, want 2", perr.Line)
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	config, err := NewTOMLLoader("").LoadFromReader(strings.NewReader(`ops = 7`))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if config["ops"] != int64(7) {
		t.Errorf("ops = %v, want 7", config["ops"])
	}
}

func TestTOMLLoader_LoadEmpty(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.toml", "")
	config, err := NewTOMLLoaderWithFS(memfs, "/empty.toml").Load()
	if err != nil {
		t.Fatal(err)
	}
	if config == nil || len(config) != 0 {
		t.Errorf("empty file should give an empty map, got %v", config)
	}
}

func TestForPath(t *testing.T) {
	memfs := NewMemFS()
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"/a.toml", "*loader.TOMLLoader", false},
		{"/a.TOML", "*loader.TOMLLoader", false},
		{"/a.yaml", "*loader.YAMLLoader", false},
		{"/a.yml", "*loader.YAMLLoader", false},
		{"/a.json", "", true},
		{"/a", "", true},
	}

	for _, tt := range tests {
		l, err := ForPath(memfs, tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ForPath(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ForPath(%q) error: %v", tt.path, err)
			continue
		}
		if got := reflect.TypeOf(l).String(); got != tt.want {
			t.Errorf("ForPath(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestLoadWithIncludes(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/conf/base.yaml", "seed: 1\nops: 10\nlog:\n  level: warn\n  format: json\n")
	memfs.AddFile("/conf/weights.toml", "[weights]\nset = 5\n")
	memfs.AddFile("/conf/main.toml", `
include = ["base.yaml", "weights.toml"]
seed = 99

[log]
level = "debug"
`)

	config, err := LoadWithIncludes(memfs, "/conf/main.toml", 4)
	if err != nil {
		t.Fatalf("LoadWithIncludes failed: %v", err)
	}

	if _, ok := config[IncludeKey]; ok {
		t.Error("include key should be removed from the result")
	}
	checks := map[string]any{
		"seed":        int64(99),
		"ops":         int64(10),
		"log.level":   "debug",
		"log.format":  "json",
		"weights.set": int64(5),
	}
	for path, want := range checks {
		if got, ok := getByPath(config, path); !ok || got != want {
			t.Errorf("%s = %v (%T), want %v", path, got, got, want)
		}
	}
}

func TestLoadWithIncludes_DepthExceeded(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.toml", `include = "b.toml"`)
	memfs.AddFile("/b.toml", `include = "a.toml"`)

	_, err := LoadWithIncludes(memfs, "/a.toml", 5)
	if err == nil || !strings.Contains(err.Error(), "include depth exceeded") {
		t.Errorf("expected depth error, got %v", err)
	}
}

func TestLoadWithIncludes_BadIncludeType(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.toml", `include = 3`)
	if _, err := LoadWithIncludes(memfs, "/a.toml", 2); err == nil {
		t.Error("expected error for a non-string include")
	}
}

func TestDeepMerge(t *testing.T) {
	tests := []struct {
		name     string
		dst      map[string]any
		src      map[string]any
		expected map[string]any
	}{
		{
			name:     "nil dst",
			dst:      nil,
			src:      map[string]any{"a": 1},
			expected: map[string]any{"a": 1},
		},
		{
			name:     "nil src",
			dst:      map[string]any{"a": 1},
			src:      nil,
			expected: map[string]any{"a": 1},
		},
		{
			name:     "override scalar",
			dst:      map[string]any{"seed": int64(1), "ops": int64(2)},
			src:      map[string]any{"seed": int64(3)},
			expected: map[string]any{"seed": int64(3), "ops": int64(2)},
		},
		{
			name: "nested merge",
			dst: map[string]any{
				"log": map[string]any{"level": "info", "format": "console"},
			},
			src: map[string]any{
				"log": map[string]any{"level": "debug"},
			},
			expected: map[string]any{
				"log": map[string]any{"level": "debug", "format": "console"},
			},
		},
		{
			name:     "map replaces scalar",
			dst:      map[string]any{"weights": "none"},
			src:      map[string]any{"weights": map[string]any{"set": 1}},
			expected: map[string]any{"weights": map[string]any{"set": 1}},
		},
		{
			name:     "slice replaced",
			dst:      map[string]any{"include": []any{"a"}},
			src:      map[string]any{"include": []any{"b", "c"}},
			expected: map[string]any{"include": []any{"b", "c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DeepMerge(tt.dst, tt.src)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("DeepMerge() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestClone(t *testing.T) {
	original := map[string]any{
		"seed":    int64(1),
		"log":     map[string]any{"level": "info"},
		"include": []any{"a", map[string]any{"x": 1}},
	}

	cloned := Clone(original)
	if !reflect.DeepEqual(cloned, original) {
		t.Fatalf("Clone() = %v, want %v", cloned, original)
	}

	cloned["log"].(map[string]any)["level"] = "debug"
	cloned["include"].([]any)[1].(map[string]any)["x"] = 2

	if original["log"].(map[string]any)["level"] != "info" {
		t.Error("modifying the clone changed a nested map of the original")
	}
	if original["include"].([]any)[1].(map[string]any)["x"] != 1 {
		t.Error("modifying the clone changed a map inside a slice of the original")
	}

	if Clone(nil) != nil {
		t.Error("Clone(nil) should return nil")
	}
}
