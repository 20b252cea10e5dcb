package script

import (
	"sort"
	"sync"

	"github.com/vango-dev/seqtree/pkg/rendertree"
)

// Factory creates a fresh component instance for one use in a script.
type Factory func() rendertree.Component

// Registry maps component names to factories. It is safe for concurrent
// use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a registry holding the built-in components.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register("Wrapper", func() rendertree.Component { return &Wrapper{} })
	return r
}

// Register adds or replaces a component factory.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Names returns the registered component names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Wrapper renders its child content inside one element. Parameters:
// "tag" (default "div") and "class".
type Wrapper struct {
	Tag     string
	Class   string
	Content rendertree.Fragment
}

// SetParameters implements rendertree.ParameterSetter.
func (w *Wrapper) SetParameters(params map[string]any) {
	w.Tag, _ = params["tag"].(string)
	w.Class, _ = params["class"].(string)
	w.Content, _ = params[rendertree.ChildContentParam].(rendertree.Fragment)
}

// BuildRenderTree implements rendertree.Component.
func (w *Wrapper) BuildRenderTree(sink rendertree.Sink) error {
	tag := w.Tag
	if tag == "" {
		tag = "div"
	}
	sink.OpenElement(0, tag)
	if w.Class != "" {
		sink.AddAttribute(1, "class", w.Class)
	}
	if w.Content != nil {
		sink.OpenRegion(2)
		w.Content(sink)
		sink.CloseRegion()
	}
	sink.CloseElement()
	return nil
}
