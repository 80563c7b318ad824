package urlmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRegister(t *testing.T) {
	t.Run("defaults methods to GET", func(t *testing.T) {
		m := New()
		rule, err := m.Register("/about", "about")
		require.NoError(t, err)
		assert.Equal(t, []string{"GET"}, rule.Methods())
	})

	t.Run("keeps registration order", func(t *testing.T) {
		m := New()
		_, err := m.Register("/a", "a")
		require.NoError(t, err)
		_, err = m.Register("/b", "b")
		require.NoError(t, err)

		rules := m.Rules()
		require.Len(t, rules, 2)
		assert.Equal(t, "a", rules[0].Endpoint())
		assert.Equal(t, "b", rules[1].Endpoint())
	})

	t.Run("rejects empty endpoint", func(t *testing.T) {
		m := New()
		_, err := m.Register("/a", "")
		assert.Error(t, err)
	})

	t.Run("rejects invalid method token", func(t *testing.T) {
		m := New()
		_, err := m.Register("/a", "a", "GET SOMETHING")
		assert.ErrorIs(t, err, ErrInvalidMethod)
	})

	t.Run("rejects identical shape with overlapping methods", func(t *testing.T) {
		m := New()
		_, err := m.Register("/post/<int:id>", "show_post")
		require.NoError(t, err)

		_, err = m.Register("/post/<int:other>", "other_post")
		assert.ErrorIs(t, err, ErrAmbiguousRoute)
	})

	t.Run("same shape with disjoint methods is allowed", func(t *testing.T) {
		m := New()
		_, err := m.Register("/posts", "list_posts", "GET")
		require.NoError(t, err)

		_, err = m.Register("/posts", "create_post", "POST")
		require.NoError(t, err)
	})

	t.Run("head overlap with get is ambiguous", func(t *testing.T) {
		m := New()
		_, err := m.Register("/x", "a", "GET")
		require.NoError(t, err)

		_, err = m.Register("/x", "b", "HEAD")
		assert.ErrorIs(t, err, ErrAmbiguousRoute)
	})

	t.Run("same variable position with different converters is allowed", func(t *testing.T) {
		m := New()
		_, err := m.Register("/item/<int:id>", "item_by_number")
		require.NoError(t, err)

		_, err = m.Register("/item/<string:id>", "item_by_name")
		require.NoError(t, err)
	})

	t.Run("slash policy is part of the shape", func(t *testing.T) {
		m := New()
		_, err := m.Register("/projects/", "projects")
		require.NoError(t, err)

		_, err = m.Register("/projects", "projects_flat")
		require.NoError(t, err)
	})

	t.Run("frozen after first match", func(t *testing.T) {
		m := New()
		_, err := m.Register("/about", "about")
		require.NoError(t, err)
		assert.False(t, m.Frozen())

		m.Match("/about", "GET")
		assert.True(t, m.Frozen())

		_, err = m.Register("/late", "late")
		assert.ErrorIs(t, err, ErrTableFrozen)
	})

	t.Run("custom registry converter", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register("upper", upperConverter{}))

		m := New(WithRegistry(reg))
		_, err := m.Register("/tag/<upper:tag>", "tag")
		require.NoError(t, err)

		res := m.Match("/tag/go", "GET")
		require.Equal(t, Matched, res.Outcome)
		assert.Equal(t, "GO", res.Vars["tag"])
	})
}

// upperConverter uppercases its value; used to exercise custom registration.
type upperConverter struct{}

func (upperConverter) Parse(raw string) (any, error) {
	v, err := (stringConverter{}).Parse(raw)
	if err != nil {
		return nil, err
	}
	return toUpperASCII(v.(string)), nil
}

func (upperConverter) Format(value any) (string, error) {
	return (stringConverter{}).Format(value)
}

func toUpperASCII(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}

func TestEndpointRules(t *testing.T) {
	m := New()
	_, err := m.Register("/user/<username>", "profile")
	require.NoError(t, err)
	_, err = m.Register("/user/<username>/<int:page>", "profile")
	require.NoError(t, err)

	rules := m.EndpointRules("profile")
	require.Len(t, rules, 2)
	assert.Equal(t, "/user/<username>", rules[0].Pattern())

	assert.Empty(t, m.EndpointRules("missing"))
}
