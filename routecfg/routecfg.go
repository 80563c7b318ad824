package routecfg

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ariadne-web/ariadne/urlmap"
)

// Route is one declared route.
type Route struct {
	Pattern  string   `yaml:"pattern"`
	Endpoint string   `yaml:"endpoint"`
	Methods  []string `yaml:"methods,omitempty"`
}

// File is a declarative route table:
//
//	routes:
//	  - pattern: /projects/
//	    endpoint: projects
//	    methods: [GET]
//	  - pattern: /user/<username>
//	    endpoint: profile
type File struct {
	Routes []Route `yaml:"routes"`
}

// Load decodes a route file. Unknown fields are rejected so typos in route
// declarations fail at startup instead of silently registering nothing.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("routecfg: decode: %w", err)
	}

	for i, route := range f.Routes {
		if route.Pattern == "" {
			return nil, fmt.Errorf("routecfg: route %d: missing pattern", i)
		}
		if route.Endpoint == "" {
			return nil, fmt.Errorf("routecfg: route %d (%s): missing endpoint", i, route.Pattern)
		}
	}

	return &f, nil
}

// LoadPath reads and decodes a route file from disk.
func LoadPath(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("routecfg: %w", err)
	}
	defer fh.Close()

	return Load(fh)
}

// Apply registers every declared route on the rule table, in file order.
// Registration order is meaningful: earlier declarations win ties during
// matching, exactly as with direct Map.Register calls.
func (f *File) Apply(m *urlmap.Map) error {
	for _, route := range f.Routes {
		if _, err := m.Register(route.Pattern, route.Endpoint, route.Methods...); err != nil {
			return err
		}
	}
	return nil
}
