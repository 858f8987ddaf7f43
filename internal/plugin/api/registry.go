package api

import (
	"fmt"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Version is reported to scripts as ks.version.
const Version = "1.0.0"

// Module represents a Lua API module that can be registered with a state.
type Module interface {
	// Name returns the module name (e.g., "doc").
	Name() string

	// Register registers the module functions into the Lua state.
	// The module should register itself under the _ks_<name> global.
	Register(L *lua.LState) error
}

// Registry manages API modules and their registration.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates a new API registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]Module),
	}
}

// Register adds a module to the registry.
func (r *Registry) Register(mod Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[mod.Name()]; exists {
		return fmt.Errorf("module %q already registered", mod.Name())
	}

	r.modules[mod.Name()] = mod
	return nil
}

// Get returns a module by name.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mod, ok := r.modules[name]
	return mod, ok
}

// List returns all registered module names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InjectAll registers all modules into the Lua state and installs the
// "ks" module loader.
func (r *Registry) InjectAll(L *lua.LState) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name, mod := range r.modules {
		if err := mod.Register(L); err != nil {
			return fmt.Errorf("failed to register module %q: %w", name, err)
		}
		names = append(names, name)
	}

	installKSLoader(L, names)
	return nil
}

// installKSLoader installs the ks module that aggregates the given modules.
// Scripts use: local ks = require("ks")
func installKSLoader(L *lua.LState, names []string) {
	ksModule := L.NewTable()

	for _, name := range names {
		globalName := "_ks_" + name
		val := L.GetGlobal(globalName)
		if val != lua.LNil {
			L.SetField(ksModule, name, val)
			L.SetGlobal(globalName, lua.LNil)
		}
	}

	L.SetField(ksModule, "version", lua.LString(Version))
	L.SetField(ksModule, "api_version", lua.LNumber(1))

	L.PreloadModule("ks", func(L *lua.LState) int {
		L.Push(ksModule)
		return 1
	})
}
