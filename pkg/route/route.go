package route

// Meta holds the access-control tags of a route record.
type Meta struct {
	RequiresAuth  bool `yaml:"requiresAuth,omitempty" json:"requiresAuth,omitempty"`
	RequiresGuest bool `yaml:"requiresGuest,omitempty" json:"requiresGuest,omitempty"`
}

// merge combines parent and child tags. A tag set anywhere in the chain applies.
func (m Meta) merge(child Meta) Meta {
	return Meta{
		RequiresAuth:  m.RequiresAuth || child.RequiresAuth,
		RequiresGuest: m.RequiresGuest || child.RequiresGuest,
	}
}

// Route is a single record of the route tree.
//
// Child paths are relative to the parent unless they start with "/".
// An empty child path resolves to the parent path. "*" is a catch-all
// segment and ":name" captures a single segment.
type Route struct {
	Path     string  `yaml:"path" json:"path"`
	Name     string  `yaml:"name,omitempty" json:"name,omitempty"`
	View     string  `yaml:"view,omitempty" json:"view,omitempty"`
	Redirect string  `yaml:"redirect,omitempty" json:"redirect,omitempty"`
	Meta     Meta    `yaml:"meta,omitempty" json:"meta,omitempty"`
	Children []Route `yaml:"children,omitempty" json:"children,omitempty"`
}

// Entry is a compiled, matchable record with its absolute path.
type Entry struct {
	FullPath string
	Name     string
	View     string
	Redirect string
	// Meta is merged from every record between the root and this one.
	Meta Meta
	// Layouts lists the views of ancestor records, outermost first.
	Layouts []string

	segments []segment
	order    int
}

// Match is the result of resolving a request path.
type Match struct {
	// Path is the final path after route-level redirects.
	Path  string
	Entry Entry
	// Params holds the values captured by ":name" segments.
	Params map[string]string
	// RedirectedFrom is the requested path when at least one redirect was followed.
	RedirectedFrom string
}

// Redirected reports whether resolution followed a route-level redirect.
func (m Match) Redirected() bool {
	return m.RedirectedFrom != ""
}
