package view

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/a-h/templ"
)

// Data is what every view is rendered with.
type Data struct {
	Title     string
	Path      string
	Params    map[string]string
	Subject   string
	LoginPath string
	HomePath  string
	// DevLogin enables the development sign-in form on the login view.
	DevLogin bool
}

// Factory builds the component for a view name. Layout factories render
// their nested view through templ.GetChildren.
type Factory func(d Data) templ.Component

// Registry maps view names to factories.
type Registry struct {
	mu    sync.RWMutex
	views map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{views: make(map[string]Factory)}
}

// Register binds name to f, replacing any previous factory.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[name] = f
}

// Lookup returns the factory for name. Unknown names get a placeholder.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.views[name]
	if !ok {
		return func(d Data) templ.Component { return Placeholder(name, d) }, false
	}
	return f, true
}

// Names returns the registered view names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.views))
	for n := range r.views {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Compose nests the view inside its layouts, outermost first, and wraps the
// result in the HTML document.
func (r *Registry) Compose(layouts []string, view string, d Data) templ.Component {
	f, _ := r.Lookup(view)
	c := f(d)
	for i := len(layouts) - 1; i >= 0; i-- {
		lf, _ := r.Lookup(layouts[i])
		c = nest(lf(d), c)
	}
	return nest(Document(d.Title), c)
}

// nest renders outer with inner as its children.
func nest(outer, inner templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return outer.Render(templ.WithChildren(ctx, inner), w)
	})
}
