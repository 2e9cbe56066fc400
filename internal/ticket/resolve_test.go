package ticket

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Bare key", input: "RW-1931", expected: "RW-1931"},
		{name: "Single letter project", input: "A-1", expected: "A-1"},
		{name: "Lowercase key is passed through", input: "rw-1931", expected: "rw-1931"},
		{name: "Arbitrary text is passed through", input: "not a key", expected: "not a key"},
		{name: "Browse URL", input: "https://x.atlassian.net/browse/RW-1931", expected: "RW-1931"},
		{name: "Browse URL with trailing segment", input: "https://x.atlassian.net/browse/RW-1931/comments", expected: "RW-1931"},
		{name: "Browse URL with trailing slash", input: "https://x.atlassian.net/browse/RW-1931/", expected: "RW-1931"},
		{name: "Plain http", input: "http://jira.local:8080/browse/OPS-7", expected: "OPS-7"},
		{name: "First match wins", input: "https://x.atlassian.net/browse/AB-1/browse/CD-2", expected: "AB-1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key, err := Resolve(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, key)
		})
	}
}

func TestResolveFailures(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "No key after browse", input: "https://x.atlassian.net/browse/"},
		{name: "No browse segment", input: "https://x.atlassian.net/jira/software/projects/RW/boards/1"},
		{name: "Key runs into a longer token", input: "https://x.atlassian.net/browse/RW-1931abc"},
		{name: "Query string directly after key", input: "https://x.atlassian.net/browse/RW-1931?focusedCommentId=1"},
		{name: "Lowercase key in URL", input: "https://x.atlassian.net/browse/rw-1931"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key, err := Resolve(tc.input)
			require.Error(t, err)
			assert.Empty(t, key)
			assert.True(t, errors.Is(err, ErrNoKeyInURL))

			var resErr *ResolutionError
			require.True(t, errors.As(err, &resErr))
			assert.Equal(t, tc.input, resErr.Input)
			assert.Contains(t, err.Error(), tc.input)
		})
	}
}

func TestResolveBareKeysUnchanged(t *testing.T) {
	for _, key := range []string{"RW-1", "PROJ-123", "ABCDEFGHIJ-9999999"} {
		resolved, err := Resolve(key)
		require.NoError(t, err)
		assert.Equal(t, key, resolved)
	}
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://x"))
	assert.True(t, IsURL("http://x"))
	assert.False(t, IsURL("ftp://x/browse/RW-1"))
	assert.False(t, IsURL("RW-1"))
}
