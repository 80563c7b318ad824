package urlmap

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Build constructs a path for an endpoint from ordered key/value pairs:
//
//	m.Build("profile", "username", "John Doe")
//
// Among rules sharing the endpoint, the one whose variable names are all
// present in the supplied keys and which consumes the most of them is chosen;
// the first-registered rule wins ties. Pairs not consumed by variable
// segments are appended as a query string in the order they were supplied,
// percent-encoded with spaces as %20 and path separators kept literal.
//
// Returns ErrEndpointNotFound for an unregistered endpoint and
// ErrBuildMismatch when no candidate rule is satisfiable or a value fails
// converter formatting.
func (m *Map) Build(endpoint string, args ...any) (string, error) {
	pairs, err := buildPairs(args)
	if err != nil {
		return "", err
	}

	rules := m.endpoints[endpoint]
	if len(rules) == 0 {
		return "", fmt.Errorf("urlmap: build %q: %w", endpoint, ErrEndpointNotFound)
	}

	rule := selectRule(rules, pairs)
	if rule == nil {
		return "", fmt.Errorf("urlmap: build %q: %w: variables are not covered by the given keys",
			endpoint, ErrBuildMismatch)
	}

	var b strings.Builder
	for _, s := range rule.segments {
		b.WriteByte('/')
		if !s.isVar() {
			b.WriteString(s.literal)
			continue
		}
		value, ok := popPair(pairs, s.varName)
		if !ok {
			return "", fmt.Errorf("urlmap: build %q: %w: missing variable %q", endpoint, ErrBuildMismatch, s.varName)
		}
		raw, err := s.conv.Format(value)
		if err != nil {
			return "", fmt.Errorf("urlmap: build %q: %w: variable %q: %v", endpoint, ErrBuildMismatch, s.varName, err)
		}
		if s.convName == "path" {
			b.WriteString(escapePathTail(raw))
		} else {
			b.WriteString(url.PathEscape(raw))
		}
	}
	if len(rule.segments) == 0 {
		b.WriteByte('/')
	}
	if rule.strictSlash {
		b.WriteByte('/')
	}

	query := encodeQuery(pairs)
	if query != "" {
		b.WriteByte('?')
		b.WriteString(query)
	}
	return b.String(), nil
}

// buildPair is one ordered Build argument. Order is preserved so unconsumed
// pairs serialize to the query string in the order they were supplied.
type buildPair struct {
	key      string
	value    any
	consumed bool
}

// buildPairs validates the variadic key/value list: even length, string keys.
func buildPairs(args []any) ([]*buildPair, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("urlmap: build: number of arguments must be a multiple of 2, got %d", len(args))
	}
	pairs := make([]*buildPair, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			return nil, fmt.Errorf("urlmap: build: argument key must be a string, got %T", args[i])
		}
		pairs = append(pairs, &buildPair{key: key, value: args[i+1]})
	}
	return pairs, nil
}

// selectRule picks the most specific candidate: every variable name must have
// a supplied key, and among satisfiable rules the one consuming the most keys
// wins. Registration order breaks ties because candidates are scanned in
// order and only strictly better ones replace the current pick.
func selectRule(rules []*Rule, pairs []*buildPair) *Rule {
	keys := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		keys[p.key] = true
	}

	var best *Rule
	for _, rule := range rules {
		satisfiable := true
		for _, name := range rule.varNames {
			if !keys[name] {
				satisfiable = false
				break
			}
		}
		if !satisfiable {
			continue
		}
		if best == nil || len(rule.varNames) > len(best.varNames) {
			best = rule
		}
	}
	return best
}

// popPair consumes the first unconsumed pair with the given key.
func popPair(pairs []*buildPair, key string) (any, bool) {
	for _, p := range pairs {
		if !p.consumed && p.key == key {
			p.consumed = true
			return p.value, true
		}
	}
	return nil, false
}

// encodeQuery serializes the unconsumed pairs in supplied order.
func encodeQuery(pairs []*buildPair) string {
	var b strings.Builder
	for _, p := range pairs {
		if p.consumed {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(queryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(queryEscape(stringifyValue(p.value)))
	}
	return b.String()
}

// escapePathTail escapes a path-converter value segment by segment, keeping
// its embedded separators literal.
func escapePathTail(raw string) string {
	parts := strings.Split(raw, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

// queryEscape percent-encodes a query component with spaces as %20 rather
// than +, leaving path separators literal. url.QueryEscape follows the
// form-encoding rules instead, which is why this is hand-rolled.
func queryEscape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '-' || c == '.' || c == '_' || c == '~' || c == '/':
			b.WriteByte(c)
		default:
			const upperhex = "0123456789ABCDEF"
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xf])
		}
	}
	return b.String()
}

// stringifyValue renders a query value. Converter-typed values and plain Go
// scalars all serialize to their obvious text form.
func stringifyValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
