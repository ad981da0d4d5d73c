package route

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the on-disk shape of a route tree.
type file struct {
	Routes []Route `yaml:"routes"`
}

// Parse decodes a YAML route tree, either as a bare list of routes or under
// a top-level "routes" key:
//
//	routes:
//	  - path: /dashboard
//	    view: dashboard-layout
//	    meta: {requiresAuth: true}
//	    children:
//	      - path: ""
//	        name: dashboard-home
//	        view: dashboard-home
func Parse(data []byte) ([]Route, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrParseRoutes, err)
	}

	var f file
	if len(doc.Content) > 0 {
		var err error
		if root := doc.Content[0]; root.Kind == yaml.SequenceNode {
			err = root.Decode(&f.Routes)
		} else {
			err = root.Decode(&f)
		}
		if err != nil {
			return nil, errors.Join(ErrParseRoutes, err)
		}
	}
	if len(f.Routes) == 0 {
		return nil, errors.Join(ErrParseRoutes, errors.New("no routes defined"))
	}
	return f.Routes, nil
}

// LoadFile reads and parses a YAML route tree from path.
func LoadFile(path string) ([]Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrParseRoutes, err)
	}
	return Parse(data)
}
