package urlmap

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	m := New()
	_, err := m.Register("/user/<username>", "profile")
	require.NoError(t, err)
	_, err = m.Register("/projects/", "projects")
	require.NoError(t, err)
	_, err = m.Register("/login", "login")
	require.NoError(t, err)
	_, err = m.Register("/post/<int:post_id>", "show_post")
	require.NoError(t, err)
	_, err = m.Register("/files/<path:name>", "serve_file")
	require.NoError(t, err)
	_, err = m.Register("/doc/<uuid:id>", "show_doc")
	require.NoError(t, err)
	_, err = m.Register("/", "index")
	require.NoError(t, err)

	t.Run("variable is percent-encoded", func(t *testing.T) {
		path, err := m.Build("profile", "username", "John Doe")
		require.NoError(t, err)
		assert.Equal(t, "/user/John%20Doe", path)
	})

	t.Run("strict rule keeps trailing slash", func(t *testing.T) {
		path, err := m.Build("projects")
		require.NoError(t, err)
		assert.Equal(t, "/projects/", path)
	})

	t.Run("extra key becomes query string", func(t *testing.T) {
		path, err := m.Build("login", "next", "/")
		require.NoError(t, err)
		assert.Equal(t, "/login?next=/", path)
	})

	t.Run("query keeps supplied order and encodes spaces as %20", func(t *testing.T) {
		path, err := m.Build("login", "next", "/admin panel", "msg", "see you")
		require.NoError(t, err)
		assert.Equal(t, "/login?next=/admin%20panel&msg=see%20you", path)
	})

	t.Run("typed variable formats", func(t *testing.T) {
		path, err := m.Build("show_post", "post_id", 7)
		require.NoError(t, err)
		assert.Equal(t, "/post/7", path)
	})

	t.Run("path tail keeps separators literal", func(t *testing.T) {
		path, err := m.Build("serve_file", "name", "docs/guide intro.txt")
		require.NoError(t, err)
		assert.Equal(t, "/files/docs/guide%20intro.txt", path)
	})

	t.Run("uuid value formats canonically", func(t *testing.T) {
		id := uuid.MustParse("550E8400-E29B-41D4-A716-446655440000")
		path, err := m.Build("show_doc", "id", id)
		require.NoError(t, err)
		assert.Equal(t, "/doc/550e8400-e29b-41d4-a716-446655440000", path)
	})

	t.Run("root endpoint", func(t *testing.T) {
		path, err := m.Build("index")
		require.NoError(t, err)
		assert.Equal(t, "/", path)
	})

	t.Run("root endpoint with query", func(t *testing.T) {
		path, err := m.Build("index", "page", 2)
		require.NoError(t, err)
		assert.Equal(t, "/?page=2", path)
	})

	t.Run("typed query values stringify", func(t *testing.T) {
		path, err := m.Build("login", "retries", int64(3), "debug", true, "ratio", 0.5)
		require.NoError(t, err)
		assert.Equal(t, "/login?retries=3&debug=true&ratio=0.5", path)
	})
}

func TestBuildErrors(t *testing.T) {
	m := New()
	_, err := m.Register("/user/<username>", "profile")
	require.NoError(t, err)
	_, err = m.Register("/post/<int:post_id>", "show_post")
	require.NoError(t, err)

	t.Run("unknown endpoint", func(t *testing.T) {
		_, err := m.Build("missing")
		assert.ErrorIs(t, err, ErrEndpointNotFound)
	})

	t.Run("missing variable key", func(t *testing.T) {
		_, err := m.Build("profile")
		assert.ErrorIs(t, err, ErrBuildMismatch)
	})

	t.Run("negative value rejected by int converter", func(t *testing.T) {
		_, err := m.Build("show_post", "post_id", -5)
		assert.ErrorIs(t, err, ErrBuildMismatch)
	})

	t.Run("wrong value type rejected", func(t *testing.T) {
		_, err := m.Build("show_post", "post_id", "seven")
		assert.ErrorIs(t, err, ErrBuildMismatch)
	})

	t.Run("odd argument count", func(t *testing.T) {
		_, err := m.Build("profile", "username")
		assert.Error(t, err)
	})

	t.Run("non-string key", func(t *testing.T) {
		_, err := m.Build("profile", 42, "jane")
		assert.Error(t, err)
	})
}

func TestBuildEndpointOverloads(t *testing.T) {
	m := New()
	_, err := m.Register("/archive", "archive")
	require.NoError(t, err)
	_, err = m.Register("/archive/<int:year>", "archive")
	require.NoError(t, err)
	_, err = m.Register("/archive/<int:year>/<int:month>", "archive")
	require.NoError(t, err)

	t.Run("no keys picks the bare rule", func(t *testing.T) {
		path, err := m.Build("archive")
		require.NoError(t, err)
		assert.Equal(t, "/archive", path)
	})

	t.Run("most specific satisfiable rule wins", func(t *testing.T) {
		path, err := m.Build("archive", "year", 2024)
		require.NoError(t, err)
		assert.Equal(t, "/archive/2024", path)

		path, err = m.Build("archive", "year", 2024, "month", 6)
		require.NoError(t, err)
		assert.Equal(t, "/archive/2024/6", path)
	})

	t.Run("unmatched keys fall through to query", func(t *testing.T) {
		path, err := m.Build("archive", "year", 2024, "sort", "desc")
		require.NoError(t, err)
		assert.Equal(t, "/archive/2024?sort=desc", path)
	})
}

func TestQueryEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "unreserved pass through", in: "abc-XYZ_0.9~", want: "abc-XYZ_0.9~"},
		{name: "separator stays literal", in: "/a/b", want: "/a/b"},
		{name: "space is %20", in: "a b", want: "a%20b"},
		{name: "plus is escaped", in: "a+b", want: "a%2Bb"},
		{name: "ampersand is escaped", in: "a&b=c", want: "a%26b%3Dc"},
		{name: "control byte has two hex digits", in: "\t", want: "%09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, queryEscape(tt.in))
		})
	}
}
