package script

import (
	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts a Lua state to computation on values and vectors.
type Sandbox struct {
	L *lua.LState

	// modules lists the names require accepts.
	modules map[string]bool
}

// NewSandbox creates a sandbox for L.
func NewSandbox(L *lua.LState) *Sandbox {
	return &Sandbox{
		L: L,
		modules: map[string]bool{
			"string": true,
			"table":  true,
			"math":   true,
		},
	}
}

// Allow adds a preloaded module to the require whitelist.
func (s *Sandbox) Allow(name string) {
	s.modules[name] = true
}

// Install removes the loaders that reach the file system and replaces
// require with a whitelisted version.
func (s *Sandbox) Install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installSafeRequire()
}

// installSafeRequire clears package.path and package.cpath and wraps
// require so only whitelisted names load. Modules must come from
// package.preload or the standard libraries already opened.
func (s *Sandbox) installSafeRequire() {
	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	originalRequire := s.L.GetGlobal("require")
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !s.modules[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
}
