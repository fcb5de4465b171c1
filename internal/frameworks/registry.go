package frameworks

import (
	"fmt"
	"strings"
	"sync"

	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/vadererr"
)

// Info describes a registered framework.
type Info struct {
	Name        string   // Registry key: "react"
	Description string   // One-line summary for listings
	Language    string   // Language of the generated code: "javascript"
	Extension   string   // Output file extension: ".jsx"
	Keywords    []string // Words counted by Detect
	// Transpiler produces single-file output. Every framework has one.
	Transpiler transpiler.Transpiler
	// Generator, when set, produces a multi-file project.
	Generator transpiler.ProjectGenerator
}

// Transpile runs the framework's transpiler.
func (i *Info) Transpile(src string) (string, error) {
	return i.Transpiler.Transpile(src)
}

// Registry maps framework names to their transpilers and keyword sets.
//
// Thread-safe: all methods can be called concurrently.
type Registry struct {
	mu sync.RWMutex

	// infos maps lowercase name to info
	infos map[string]*Info

	// order keeps registration order; Detect breaks ties with it
	order []string

	// keywordIndex maps a keyword to every framework listing it
	keywordIndex map[string][]*Info
}

// NewRegistry creates an empty framework registry.
func NewRegistry() *Registry {
	return &Registry{
		infos:        make(map[string]*Info),
		keywordIndex: make(map[string][]*Info),
	}
}

// Register adds a framework. Registering a name twice is an error.
func (r *Registry) Register(info Info) error {
	if info.Name == "" {
		return fmt.Errorf("framework without name")
	}
	if info.Transpiler == nil {
		return fmt.Errorf("framework %s: no transpiler", info.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(info.Name)
	if _, ok := r.infos[key]; ok {
		return fmt.Errorf("framework %s already registered", info.Name)
	}
	infoCopy := info
	r.infos[key] = &infoCopy
	r.order = append(r.order, key)
	for _, kw := range info.Keywords {
		kw = accents.Replace(strings.ToLower(kw))
		r.keywordIndex[kw] = append(r.keywordIndex[kw], &infoCopy)
	}
	return nil
}

// MustRegister is Register that panics on error. For static tables.
func (r *Registry) MustRegister(info Info) {
	if err := r.Register(info); err != nil {
		panic(err)
	}
}

// Lookup returns the framework registered under name (case-insensitive).
func (r *Registry) Lookup(name string) (*Info, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if info, ok := r.infos[strings.ToLower(strings.TrimSpace(name))]; ok {
		return info, nil
	}
	return nil, vadererr.NewUnknownTargetError(name, append([]string(nil), r.order...))
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// All returns every registered framework in registration order.
func (r *Registry) All() []*Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Info, len(r.order))
	for i, name := range r.order {
		out[i] = r.infos[name]
	}
	return out
}

// ByKeyword returns the frameworks that list kw, ignoring case and accents.
func (r *Registry) ByKeyword(kw string) []*Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Info(nil), r.keywordIndex[accents.Replace(strings.ToLower(kw))]...)
}

// Len returns the number of registered frameworks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
