package console

import (
	"fmt"
	"sort"
	"sync"
)

// PageDefinition describes a console navigation page: where it lives, who can
// see it, and the schema its per-deployment settings must satisfy.
type PageDefinition struct {
	Code     string         `json:"code" yaml:"code"`
	Title    string         `json:"title" yaml:"title"`
	Icon     string         `json:"icon,omitempty" yaml:"icon,omitempty"`
	Path     string         `json:"path,omitempty" yaml:"path,omitempty"`
	Roles    []string       `json:"roles,omitempty" yaml:"roles,omitempty"`
	Order    int            `json:"order,omitempty" yaml:"order,omitempty"`
	Settings map[string]any `json:"settings,omitempty" yaml:"settings,omitempty"`
	Schema   map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// VisibleTo reports whether the page is offered to the given role. A page
// without role restrictions is visible to everyone signed in.
func (d PageDefinition) VisibleTo(role string) bool {
	if len(d.Roles) == 0 {
		return true
	}
	for _, allowed := range d.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// PageHook lets packages register pages during init().
type PageHook func(reg *NavRegistry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []PageHook
)

// RegisterPageHook registers a hook executed against new registries.
func RegisterPageHook(h PageHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// NavRegistry holds the navigation pages the console renders, with hook and
// manifest support.
type NavRegistry struct {
	mu           sync.RWMutex
	definitions  map[string]PageDefinition
	manifestMeta map[string]ManifestModule
}

// NewNavRegistry builds a registry seeded with the built-in pages and applies
// global hooks.
func NewNavRegistry() *NavRegistry {
	reg := &NavRegistry{
		definitions:  map[string]PageDefinition{},
		manifestMeta: map[string]ManifestModule{},
	}
	reg.registerDefaults()
	_ = reg.ApplyHooks()
	return reg
}

func (r *NavRegistry) registerDefaults() {
	for _, def := range DefaultPageDefinitions() {
		_ = r.RegisterDefinition(def)
	}
}

// ApplyHooks executes registered page hooks.
func (r *NavRegistry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDefinition stores page metadata. Re-registering a code replaces the
// previous definition, which is how manifests override built-ins.
func (r *NavRegistry) RegisterDefinition(def PageDefinition) error {
	if def.Code == "" {
		return fmt.Errorf("page definition code is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.Code] = def
	return nil
}

// Definition fetches a page definition by code.
func (r *NavRegistry) Definition(code string) (PageDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[code]
	return def, ok
}

// Definitions returns every registered page ordered for rendering.
func (r *NavRegistry) Definitions() []PageDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]PageDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Order != defs[j].Order {
			return defs[i].Order < defs[j].Order
		}
		return defs[i].Code < defs[j].Code
	})
	return defs
}

// DefinitionsFor returns the ordered pages visible to a role.
func (r *NavRegistry) DefinitionsFor(role string) []PageDefinition {
	return Filter(r.Definitions(), func(def PageDefinition) bool {
		return def.VisibleTo(role)
	})
}

// ModuleMetadata returns any manifest metadata registered for a page.
func (r *NavRegistry) ModuleMetadata(code string) (ManifestModule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.manifestMeta[code]
	return meta, ok
}

func (r *NavRegistry) recordModuleMetadata(code string, meta ManifestModule) {
	if meta.isZero() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manifestMeta[code] = meta
}

// DefaultPageDefinitions lists the pages every console deployment starts
// with. Manifests can override or extend them.
func DefaultPageDefinitions() []PageDefinition {
	return []PageDefinition{
		{
			Code:  "usuarios",
			Title: "Usuarios",
			Icon:  "users",
			Path:  "/admin/usuarios",
			Roles: []string{"admin"},
			Order: 10,
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"page_size": map[string]any{"type": "integer", "minimum": float64(1), "maximum": float64(100)},
				},
			},
		},
		{
			Code:  "moderacion",
			Title: "Moderación",
			Icon:  "message-square",
			Path:  "/admin/moderacion",
			Roles: []string{"admin", "empleado"},
			Order: 20,
		},
		{
			Code:  "crm",
			Title: "Solicitudes",
			Icon:  "inbox",
			Path:  "/admin/crm",
			Roles: []string{"admin", "empleado"},
			Order: 30,
		},
		{
			Code:  "auditoria",
			Title: "Auditoría",
			Icon:  "activity",
			Path:  "/admin/auditoria",
			Roles: []string{"admin"},
			Order: 40,
		},
		{
			Code:  "faq",
			Title: "Preguntas Frecuentes",
			Icon:  "help-circle",
			Path:  "/admin/faq",
			Roles: []string{"admin", "empleado"},
			Order: 50,
		},
	}
}
