package route

import (
	"fmt"
	"slices"
	"strings"
)

// maxRedirects bounds the number of route-level redirects followed by Resolve.
const maxRedirects = 8

// Table is a compiled, immutable route tree.
type Table struct {
	entries []Entry
	byName  map[string]int
	names   map[string]struct{}
}

// New validates routes and compiles them into a Table.
func New(routes []Route) (*Table, error) {
	t := &Table{
		byName: make(map[string]int),
		names:  make(map[string]struct{}),
	}
	for _, r := range routes {
		if r.Path == "" {
			return nil, fmt.Errorf("%w: top-level route %q has an empty path", ErrInvalidRoute, r.Name)
		}
		if err := t.compile(r, "/", Meta{}, nil); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustNew is like New but panics on error. Intended for static tables.
func MustNew(routes []Route) *Table {
	t, err := New(routes)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) compile(r Route, parent string, meta Meta, layouts []string) error {
	full := join(parent, r.Path)
	meta = meta.merge(r.Meta)

	switch {
	case r.View == "" && r.Redirect == "" && len(r.Children) == 0:
		return fmt.Errorf("%w: %s has no view, redirect or children", ErrInvalidRoute, full)
	case r.Redirect != "" && (r.View != "" || len(r.Children) > 0):
		return fmt.Errorf("%w: %s combines a redirect with a view or children", ErrInvalidRoute, full)
	case r.Redirect != "" && !strings.HasPrefix(r.Redirect, "/"):
		return fmt.Errorf("%w: %s redirects to relative path %q", ErrInvalidRoute, full, r.Redirect)
	}

	if r.Name != "" {
		if _, ok := t.names[r.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateName, r.Name)
		}
		t.names[r.Name] = struct{}{}
	}

	segs := parseSegments(full)
	for i, s := range segs {
		if s.kind == segmentWildcard && i != len(segs)-1 {
			return fmt.Errorf("%w: %s has a catch-all before the last segment", ErrInvalidRoute, full)
		}
	}

	if len(r.Children) == 0 || (r.View != "" && !hasIndexChild(r)) {
		t.add(Entry{
			FullPath: full,
			Name:     r.Name,
			View:     r.View,
			Redirect: r.Redirect,
			Meta:     meta,
			Layouts:  slices.Clone(layouts),
			segments: segs,
		})
	}

	childLayouts := layouts
	if r.View != "" && len(r.Children) > 0 {
		childLayouts = append(slices.Clone(layouts), r.View)
	}
	for _, child := range r.Children {
		if err := t.compile(child, full, meta, childLayouts); err != nil {
			return err
		}
	}
	return nil
}

func hasIndexChild(r Route) bool {
	for _, c := range r.Children {
		if c.Path == "" {
			return true
		}
	}
	return false
}

func (t *Table) add(e Entry) {
	if e.Name != "" {
		t.byName[e.Name] = len(t.entries)
	}
	e.order = len(t.entries)
	t.entries = append(t.entries, e)
}

// Resolve matches path against the table and follows route-level redirects.
func (t *Table) Resolve(p string) (Match, error) {
	requested := normalize(p)
	current := requested
	seen := make(map[string]struct{}, 1)

	for hop := 0; hop <= maxRedirects; hop++ {
		if _, ok := seen[current]; ok {
			return Match{}, fmt.Errorf("%w: %s revisits %s", ErrRedirectLoop, requested, current)
		}
		seen[current] = struct{}{}

		e, params, ok := t.match(current)
		if !ok {
			return Match{}, fmt.Errorf("%w: %s", ErrNotFound, current)
		}
		if e.Redirect == "" {
			m := Match{Path: current, Entry: e, Params: params}
			if hop > 0 {
				m.RedirectedFrom = requested
			}
			return m, nil
		}
		current = normalize(e.Redirect)
	}

	return Match{}, fmt.Errorf("%w: %s exceeds %d redirects", ErrRedirectLoop, requested, maxRedirects)
}

func (t *Table) match(p string) (Entry, map[string]string, bool) {
	parts := splitPath(p)

	var (
		best       Entry
		bestParams map[string]string
		found      bool
	)
	for _, e := range t.entries {
		params, ok := matchEntry(e, parts)
		if !ok {
			continue
		}
		if !found || better(e, best) {
			best, bestParams, found = e, params, true
		}
	}
	return best, bestParams, found
}

// Lookup returns the entry registered under name.
func (t *Table) Lookup(name string) (Entry, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Entries returns the compiled entries in definition order.
func (t *Table) Entries() []Entry {
	return slices.Clone(t.entries)
}
