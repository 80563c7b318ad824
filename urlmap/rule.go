package urlmap

import (
	"fmt"
	"sort"
	"strings"
)

// segment is one slash-delimited component of a compiled pattern: either a
// literal or a variable bound to a converter.
type segment struct {
	literal  string
	varName  string
	convName string
	conv     Converter
}

func (s segment) isVar() bool {
	return s.varName != ""
}

// Rule is one compiled route: an ordered segment sequence, an endpoint name,
// an allowed method set and the trailing-slash policy. Rules are created by
// Map.Register and never mutated afterwards.
type Rule struct {
	pattern     string
	endpoint    string
	segments    []segment
	methods     map[string]bool
	varNames    []string
	strictSlash bool
	pathTail    bool
}

// Pattern returns the raw pattern the rule was compiled from.
func (r *Rule) Pattern() string {
	return r.pattern
}

// Endpoint returns the endpoint name used for reverse lookup.
func (r *Rule) Endpoint() string {
	return r.endpoint
}

// StrictSlash reports whether the rule's canonical form ends with a path
// separator.
func (r *Rule) StrictSlash() bool {
	return r.strictSlash
}

// Methods returns the allowed methods, sorted. HEAD is not listed even though
// it is implicitly allowed whenever GET is.
func (r *Rule) Methods() []string {
	out := make([]string, 0, len(r.methods))
	for m := range r.methods {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// VarNames returns the variable names in pattern order.
func (r *Rule) VarNames() []string {
	out := make([]string, len(r.varNames))
	copy(out, r.varNames)
	return out
}

// allows reports whether the method is in the rule's allowed set, treating
// HEAD as implied by GET per RFC 9110 Section 9.3.2.
func (r *Rule) allows(method string) bool {
	if r.methods[method] {
		return true
	}
	return method == "HEAD" && r.methods["GET"]
}

// shapeKey identifies the rule's match shape: literal texts, variable
// positions with their converter names, and the slash policy. Two rules with
// equal shape keys would always match the same paths.
func (r *Rule) shapeKey() string {
	var b strings.Builder
	for _, s := range r.segments {
		if s.isVar() {
			b.WriteString("/<")
			b.WriteString(s.convName)
			b.WriteByte('>')
		} else {
			b.WriteByte('/')
			b.WriteString(s.literal)
		}
	}
	if r.strictSlash {
		b.WriteByte('/')
	}
	return b.String()
}

// compileRule parses a pattern into a Rule. Variables use <name> for an
// implicit string converter and <converter:name> for an explicit one.
func compileRule(pattern, endpoint string, methods []string, reg *Registry) (*Rule, error) {
	if pattern == "" || pattern[0] != '/' {
		return nil, fmt.Errorf("urlmap: %w: %q does not start with a separator", ErrMalformedPattern, pattern)
	}

	r := &Rule{
		pattern:     pattern,
		endpoint:    endpoint,
		strictSlash: strings.HasSuffix(pattern, "/") && pattern != "/",
		methods:     make(map[string]bool, len(methods)),
	}
	for _, m := range methods {
		r.methods[strings.ToUpper(m)] = true
	}
	if len(r.methods) == 0 {
		r.methods["GET"] = true
	}

	core := strings.TrimPrefix(pattern, "/")
	if r.strictSlash {
		core = strings.TrimSuffix(core, "/")
	}
	if core == "" {
		// Root pattern: zero segments.
		return r, nil
	}

	pieces := strings.Split(core, "/")
	for i, piece := range pieces {
		if piece == "" {
			return nil, fmt.Errorf("urlmap: %w: empty segment in %q", ErrMalformedPattern, pattern)
		}

		if !strings.HasPrefix(piece, "<") {
			if strings.ContainsAny(piece, "<>") {
				return nil, fmt.Errorf("urlmap: %w: stray bracket in segment %q of %q", ErrMalformedPattern, piece, pattern)
			}
			r.segments = append(r.segments, segment{literal: piece})
			continue
		}

		if !strings.HasSuffix(piece, ">") {
			return nil, fmt.Errorf("urlmap: %w: unbalanced brackets in segment %q of %q", ErrMalformedPattern, piece, pattern)
		}
		inner := piece[1 : len(piece)-1]
		if strings.ContainsAny(inner, "<>") {
			return nil, fmt.Errorf("urlmap: %w: nested brackets in segment %q of %q", ErrMalformedPattern, piece, pattern)
		}

		convName := "string"
		name := inner
		if before, after, ok := strings.Cut(inner, ":"); ok {
			convName = before
			name = after
		}
		if name == "" || convName == "" {
			return nil, fmt.Errorf("urlmap: %w: missing name in segment %q of %q", ErrMalformedPattern, piece, pattern)
		}

		conv, err := reg.resolve(convName)
		if err != nil {
			return nil, fmt.Errorf("urlmap: %w: %w %q in %q", ErrMalformedPattern, ErrUnknownConverter, convName, pattern)
		}
		if convName == "path" {
			if i != len(pieces)-1 {
				return nil, fmt.Errorf("urlmap: %w: path converter must be the final segment of %q", ErrMalformedPattern, pattern)
			}
			r.pathTail = true
		}

		for _, seen := range r.varNames {
			if seen == name {
				return nil, fmt.Errorf("urlmap: %w: duplicated variable %q in %q", ErrMalformedPattern, name, pattern)
			}
		}
		r.varNames = append(r.varNames, name)
		r.segments = append(r.segments, segment{varName: name, convName: convName, conv: conv})
	}

	return r, nil
}

// mismatch is the typed reason a rule did not match a path.
type mismatch int

const (
	matchOK mismatch = iota
	// mismatchContent: a literal segment differs or a converter rejected
	// its segment.
	mismatchContent
	// mismatchSlash: segment content matches but the trailing-slash flags
	// disagree. Drives the redirect-vs-404 policy.
	mismatchSlash
	// mismatchArity: segment counts cannot be aligned.
	mismatchArity
)

// match aligns already-split path segments with the rule's segments. On a
// content match it returns the typed variable values; the slash flag is
// checked last so a slash mismatch is reported as its own outcome.
func (r *Rule) match(segs []string, trailing bool) (map[string]any, mismatch) {
	want := len(r.segments)
	if r.pathTail {
		if len(segs) < want {
			return nil, mismatchArity
		}
	} else if len(segs) != want {
		return nil, mismatchArity
	}

	var vars map[string]any
	for i, s := range r.segments {
		if !s.isVar() {
			if segs[i] != s.literal {
				return nil, mismatchContent
			}
			continue
		}

		raw := segs[i]
		if r.pathTail && i == want-1 {
			raw = strings.Join(segs[i:], "/")
		}
		value, err := s.conv.Parse(raw)
		if err != nil {
			return nil, mismatchContent
		}
		if vars == nil {
			vars = make(map[string]any, len(r.varNames))
		}
		vars[s.varName] = value
	}

	if trailing != r.strictSlash {
		return nil, mismatchSlash
	}
	return vars, matchOK
}

// splitPath splits a request path into segments and reports whether the path
// carries a trailing separator. The root path has zero segments and no
// trailing flag, matching the root pattern's compiled form.
func splitPath(path string) ([]string, bool) {
	p := strings.TrimPrefix(path, "/")
	if p == "" {
		return nil, false
	}
	trailing := strings.HasSuffix(p, "/")
	if trailing {
		p = strings.TrimSuffix(p, "/")
	}
	return strings.Split(p, "/"), trailing
}
