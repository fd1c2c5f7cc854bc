package loader

import (
	"context"
	"fmt"
	"log"
	"sync"

	"casino-webapp-backend/internal/auth"
	"casino-webapp-backend/internal/registry"
)

// Module is a mounted game unit ready to be handed to the client.
type Module interface {
	// EntryURL is where the client fetches the game bundle.
	EntryURL() string
	Version() string
}

// Factory produces a module for one component path. Resolution may do
// real work (manifest fetch in a code-split deployment) and may fail;
// such a failure is retryable and distinct from an unknown slug.
type Factory func(ctx context.Context) (Module, error)

// Modules maps component paths to factories. Registration happens at
// startup and the set is frozen before serving, mirroring the
// deployment-time nature of the catalog itself.
type Modules struct {
	mu        sync.Mutex
	frozen    bool
	factories map[string]Factory
}

func NewModules() *Modules {
	return &Modules{factories: make(map[string]Factory)}
}

func (m *Modules) Register(componentPath string, factory Factory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.frozen {
		return fmt.Errorf("module registration is closed")
	}
	if componentPath == "" || factory == nil {
		return fmt.Errorf("component path and factory required")
	}
	if _, ok := m.factories[componentPath]; ok {
		return fmt.Errorf("duplicate component path: %s", componentPath)
	}

	m.factories[componentPath] = factory
	return nil
}

func (m *Modules) Freeze() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frozen = true
}

func (m *Modules) resolve(componentPath string) (Factory, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.factories[componentPath]
	return f, ok
}

// State classifies a launch attempt.
type State int

const (
	// Ready: the module is mounted and can be handed to the client.
	Ready State = iota
	// NotFound: unknown or retired slug. Expected, user-facing.
	NotFound
	// LoadFailed: the module could not be loaded. Retryable and
	// reported distinctly from NotFound.
	LoadFailed
	// Denied: the descriptor requires an admitted context and none was
	// present. Composition normally prevents this from being reached.
	Denied
)

// Launch is the outcome of resolving and mounting one game.
type Launch struct {
	State      State
	Descriptor registry.Descriptor
	Module     Module
	Launcher   bool
	Err        error
}

// Loader resolves slugs through the registry and mounts the matching
// module. It performs no role policy of its own: for games requiring
// authentication it only demands the admission marker a guard stamped
// on the context, so policy lives in exactly one place.
type Loader struct {
	registry *registry.Registry
	modules  *Modules
}

func NewLoader(reg *registry.Registry, modules *Modules) *Loader {
	return &Loader{registry: reg, modules: modules}
}

func (l *Loader) Load(ctx context.Context, slug string, launcher bool) Launch {
	descriptor, ok := l.registry.GetBySlug(slug)
	if !ok {
		return Launch{State: NotFound, Launcher: launcher}
	}

	if descriptor.RequiresAuth && !auth.Admitted(ctx) {
		log.Printf("loader: refusing to mount %s outside an admitted context", slug)
		return Launch{State: Denied, Descriptor: descriptor, Launcher: launcher}
	}

	factory, ok := l.modules.resolve(descriptor.ComponentPath)
	if !ok {
		err := fmt.Errorf("no module registered for %s", descriptor.ComponentPath)
		log.Printf("loader: %v", err)
		return Launch{State: LoadFailed, Descriptor: descriptor, Launcher: launcher, Err: err}
	}

	module, err := factory(ctx)
	if err != nil {
		log.Printf("loader: failed to load %s: %v", descriptor.ComponentPath, err)
		return Launch{State: LoadFailed, Descriptor: descriptor, Launcher: launcher, Err: err}
	}

	return Launch{State: Ready, Descriptor: descriptor, Module: module, Launcher: launcher}
}

// StaticModule is the common case: a module whose bundle lives at a
// fixed URL known at registration time.
type StaticModule struct {
	Entry string
	Tag   string
}

func (m StaticModule) EntryURL() string { return m.Entry }
func (m StaticModule) Version() string  { return m.Tag }

// Static wraps a StaticModule in a Factory.
func Static(entry, version string) Factory {
	return func(context.Context) (Module, error) {
		return StaticModule{Entry: entry, Tag: version}, nil
	}
}
