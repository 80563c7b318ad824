package urlmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Converter parses a raw path segment into a typed value and formats a typed
// value back into a raw segment. Converters are stateless and registered once
// per type name.
type Converter interface {
	// Parse converts a raw, percent-decoded path segment into a typed
	// value. An error means the segment does not belong to this converter's
	// value space; the rule is then treated as not matching.
	Parse(raw string) (any, error)

	// Format renders a typed value back into a raw segment for URL
	// building. An error means the value cannot be represented by this
	// converter (for example a negative number given to int).
	Format(value any) (string, error)
}

// Registry maps converter names to converters. A new Registry carries the
// built-in converters (string, int, float, path, uuid).
type Registry struct {
	converters map[string]Converter
}

// NewRegistry returns a Registry pre-loaded with the built-in converters.
func NewRegistry() *Registry {
	return &Registry{
		converters: map[string]Converter{
			"string": stringConverter{},
			"int":    intConverter{},
			"float":  floatConverter{},
			"path":   pathConverter{},
			"uuid":   uuidConverter{},
		},
	}
}

// Register adds a named converter. Returns ErrDuplicateConverter if the name
// is already taken, including the built-in names.
func (reg *Registry) Register(name string, conv Converter) error {
	if _, ok := reg.converters[name]; ok {
		return fmt.Errorf("urlmap: %w: %q", ErrDuplicateConverter, name)
	}
	reg.converters[name] = conv
	return nil
}

// resolve looks up a converter by name. Only called at rule-compile time, so
// match-time parsing never needs a fallible lookup.
func (reg *Registry) resolve(name string) (Converter, error) {
	conv, ok := reg.converters[name]
	if !ok {
		return nil, fmt.Errorf("urlmap: %w: %q", ErrUnknownConverter, name)
	}
	return conv, nil
}

// --- Built-in converters ---

// stringConverter accepts any non-empty text without a path separator.
type stringConverter struct{}

func (stringConverter) Parse(raw string) (any, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty segment")
	}
	if strings.Contains(raw, "/") {
		return nil, fmt.Errorf("segment contains a path separator")
	}
	return raw, nil
}

func (stringConverter) Format(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("string converter wants a string, got %T", value)
	}
	if _, err := (stringConverter{}).Parse(s); err != nil {
		return "", err
	}
	return s, nil
}

// intConverter accepts a non-negative base-10 integer with no leading sign.
// Leading zeros are allowed: "042" parses to 42.
type intConverter struct{}

func (intConverter) Parse(raw string) (any, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty segment")
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return nil, fmt.Errorf("non-digit character %q", raw[i])
		}
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (intConverter) Format(value any) (string, error) {
	var v int64
	switch n := value.(type) {
	case int:
		v = int64(n)
	case int32:
		v = int64(n)
	case int64:
		v = n
	case uint:
		v = int64(n)
	case uint32:
		v = int64(n)
	case uint64:
		v = int64(n)
	default:
		return "", fmt.Errorf("int converter wants an integer, got %T", value)
	}
	if v < 0 {
		return "", fmt.Errorf("int converter rejects negative value %d", v)
	}
	return strconv.FormatInt(v, 10), nil
}

// floatConverter accepts a non-negative decimal with no leading sign, such as
// "3.14", "42" or ".5".
type floatConverter struct{}

func (floatConverter) Parse(raw string) (any, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty segment")
	}
	dots := 0
	digits := 0
	for i := 0; i < len(raw); i++ {
		switch {
		case raw[i] == '.':
			dots++
		case raw[i] >= '0' && raw[i] <= '9':
			digits++
		default:
			return nil, fmt.Errorf("non-numeric character %q", raw[i])
		}
	}
	if digits == 0 || dots > 1 {
		return nil, fmt.Errorf("not a decimal number %q", raw)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (floatConverter) Format(value any) (string, error) {
	var v float64
	switch n := value.(type) {
	case float32:
		v = float64(n)
	case float64:
		v = n
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	default:
		return "", fmt.Errorf("float converter wants a number, got %T", value)
	}
	if v < 0 {
		return "", fmt.Errorf("float converter rejects negative value %v", v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

// pathConverter accepts any non-empty remainder, including embedded path
// separators. Only valid as the final segment of a pattern; rule compilation
// enforces that.
type pathConverter struct{}

func (pathConverter) Parse(raw string) (any, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty remainder")
	}
	return raw, nil
}

func (pathConverter) Format(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("path converter wants a string, got %T", value)
	}
	if s == "" {
		return "", fmt.Errorf("empty remainder")
	}
	return s, nil
}

// uuidConverter accepts the canonical 8-4-4-4-12 form of RFC 9562, with
// case-insensitive hex digits. Braced, URN and unhyphenated forms are
// rejected even though uuid.Parse would accept them.
type uuidConverter struct{}

func (uuidConverter) Parse(raw string) (any, error) {
	if !isCanonicalUUID(raw) {
		return nil, fmt.Errorf("not a canonical uuid %q", raw)
	}
	v, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (uuidConverter) Format(value any) (string, error) {
	switch v := value.(type) {
	case uuid.UUID:
		return v.String(), nil
	case string:
		if !isCanonicalUUID(v) {
			return "", fmt.Errorf("not a canonical uuid %q", v)
		}
		return strings.ToLower(v), nil
	default:
		return "", fmt.Errorf("uuid converter wants a uuid.UUID or string, got %T", value)
	}
}

// isCanonicalUUID reports whether s has the exact 8-4-4-4-12 hex shape with
// literal hyphens.
func isCanonicalUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i == 8 || i == 13 || i == 18 || i == 23 {
			if c != '-' {
				return false
			}
			continue
		}
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
