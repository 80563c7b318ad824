package urlmap

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/net/http/httpguts"
)

// Map is the ordered collection of rules for an application: registration
// order is preserved and is the only tiebreak during matching. A Map is
// populated during setup and becomes read-only once the first match has been
// served; concurrent Match and Build calls need no locking after that.
type Map struct {
	registry  *Registry
	rules     []*Rule
	endpoints map[string][]*Rule
	frozen    atomic.Bool
}

// Option configures a Map.
type Option func(*Map)

// WithRegistry sets the converter registry used to compile patterns. The
// default is NewRegistry with only the built-in converters.
func WithRegistry(reg *Registry) Option {
	return func(m *Map) {
		m.registry = reg
	}
}

// New returns an empty rule table.
func New(opts ...Option) *Map {
	m := &Map{
		registry:  NewRegistry(),
		endpoints: make(map[string][]*Rule),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register compiles a pattern and appends the rule to the table. Methods
// default to GET when none are given; HEAD is implicitly allowed whenever GET
// is. Registration fails once the table has served its first match.
//
// Two rules whose shapes are identical down to converter types and whose
// method sets overlap are rejected as ambiguous. Rules that differ only in
// converter type at the same position are accepted; the first-registered one
// wins whenever both converters accept a segment, so register the more
// specific rule first.
func (m *Map) Register(pattern, endpoint string, methods ...string) (*Rule, error) {
	if m.frozen.Load() {
		return nil, fmt.Errorf("urlmap: register %q: %w", pattern, ErrTableFrozen)
	}
	if endpoint == "" {
		return nil, fmt.Errorf("urlmap: register %q: empty endpoint name", pattern)
	}
	for _, meth := range methods {
		// Methods are tokens per RFC 9110 Section 9.1, the same grammar
		// as header field names.
		if meth == "" || !httpguts.ValidHeaderFieldName(meth) {
			return nil, fmt.Errorf("urlmap: register %q: %w: %q", pattern, ErrInvalidMethod, meth)
		}
	}

	rule, err := compileRule(pattern, endpoint, methods, m.registry)
	if err != nil {
		return nil, err
	}

	shape := rule.shapeKey()
	for _, existing := range m.rules {
		if existing.shapeKey() != shape {
			continue
		}
		if methodsOverlap(existing, rule) {
			return nil, fmt.Errorf("urlmap: register %q: %w: identical to %q for endpoint %q",
				pattern, ErrAmbiguousRoute, existing.pattern, existing.endpoint)
		}
	}

	m.rules = append(m.rules, rule)
	m.endpoints[endpoint] = append(m.endpoints[endpoint], rule)
	return rule, nil
}

// Rules returns the registered rules in registration order.
func (m *Map) Rules() []*Rule {
	out := make([]*Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

// EndpointRules returns the rules sharing an endpoint name, in registration
// order.
func (m *Map) EndpointRules(endpoint string) []*Rule {
	rules := m.endpoints[endpoint]
	out := make([]*Rule, len(rules))
	copy(out, rules)
	return out
}

// Frozen reports whether the table has served a match and no longer accepts
// registrations.
func (m *Map) Frozen() bool {
	return m.frozen.Load()
}

// methodsOverlap reports whether two rules share any allowed method,
// including the HEAD-implied-by-GET case.
func methodsOverlap(a, b *Rule) bool {
	for meth := range a.methods {
		if b.allows(meth) {
			return true
		}
	}
	for meth := range b.methods {
		if a.allows(meth) {
			return true
		}
	}
	return false
}
