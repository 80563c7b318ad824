package urlmap

import "sort"

// Outcome classifies a match result. Redirects, missing routes and method
// mismatches are first-class outcomes, not errors; the dispatch layer turns
// them into the appropriate response status.
type Outcome int

const (
	// NotFound: no rule has matching segment content, or the only
	// content-matching rule forbids a trailing slash the request carries.
	NotFound Outcome = iota

	// Matched: a rule matched; Rule and Vars are set.
	Matched

	// RedirectToSlash: the rule requires a trailing slash the request
	// lacks; Location carries the canonical path.
	RedirectToSlash

	// MethodNotAllowed: the path exists but no rule accepts the method;
	// Allowed carries the union of declared method sets, sorted.
	MethodNotAllowed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case RedirectToSlash:
		return "redirect-to-slash"
	case MethodNotAllowed:
		return "method-not-allowed"
	default:
		return "not-found"
	}
}

// MatchResult is the routing decision for one request.
type MatchResult struct {
	Outcome Outcome

	// Rule and Vars are set when Outcome is Matched. Vars holds the typed
	// values produced by each variable segment's converter.
	Rule *Rule
	Vars map[string]any

	// Location is the canonical path when Outcome is RedirectToSlash.
	Location string

	// Allowed is the sorted union of declared method sets when Outcome is
	// MethodNotAllowed.
	Allowed []string
}

// Match resolves a request path and method against the table. The path must
// already be percent-decoded and the method uppercased.
//
// The first rule whose segment content matches, in registration order,
// decides the trailing-slash policy: a strict-slash rule missing its slash
// redirects before any method checking, and a non-strict rule given an extra
// slash is a plain not-found. Only when content and slash both match is the
// method checked, scanning the remaining content+slash matches so that the
// same path registered under different verbs dispatches correctly.
//
// The first call freezes the table against further registration.
func (m *Map) Match(path, method string) MatchResult {
	m.frozen.Store(true)

	segs, trailing := splitPath(path)

	contentSeen := false
	var allowed map[string]bool

	for _, rule := range m.rules {
		vars, reason := rule.match(segs, trailing)
		switch reason {
		case matchOK:
			contentSeen = true
			if rule.allows(method) {
				return MatchResult{Outcome: Matched, Rule: rule, Vars: vars}
			}
			if allowed == nil {
				allowed = make(map[string]bool)
			}
			for meth := range rule.methods {
				allowed[meth] = true
			}
		case mismatchSlash:
			if contentSeen {
				continue
			}
			// The first content match has a slash mismatch: the
			// outcome is decided here, independent of method.
			if rule.strictSlash && !trailing {
				return MatchResult{Outcome: RedirectToSlash, Location: path + "/"}
			}
			return MatchResult{Outcome: NotFound}
		}
	}

	if len(allowed) > 0 {
		out := make([]string, 0, len(allowed))
		for meth := range allowed {
			out = append(out, meth)
		}
		sort.Strings(out)
		return MatchResult{Outcome: MethodNotAllowed, Allowed: out}
	}
	return MatchResult{Outcome: NotFound}
}
