// Package route implements the static route table of the portal.
//
// A route tree maps URL paths to view names. Records can nest: a parent
// contributes its path prefix, its access-control tags and, when it has a
// view, a shared layout for its children. Records can also redirect, which is
// how the root path and the catch-all ("*") send visitors to the login page.
//
// The tree is compiled once by New and never mutated afterwards. Resolve
// picks the best matching record for a path (static segments outrank ":name"
// params, params outrank "*"; ties go to definition order), follows
// route-level redirects and returns the final Match with the merged Meta.
//
// # Usage
//
//	table, err := route.New(route.Default("/login", "/dashboard"))
//	if err != nil {
//	    // invalid tree
//	}
//
//	m, err := table.Resolve("/foo/bar")
//	// m.Path == "/login", m.RedirectedFrom == "/foo/bar"
//
// Trees can also be kept in YAML and loaded with LoadFile or Parse.
package route
