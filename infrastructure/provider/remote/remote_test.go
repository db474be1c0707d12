package remote_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/gitfleet/domain"
	"github.com/rios0rios0/gitfleet/infrastructure/provider/remote"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "should treat transport errors as request failures",
			err:      &url.Error{Op: "Get", URL: "https://example.com", Err: io.EOF},
			expected: domain.ErrRemoteRequestFailed,
		},
		{
			name:     "should treat syntax errors as decode failures",
			err:      json.Unmarshal([]byte(`[{`), &[]any{}),
			expected: domain.ErrRemoteDecodeFailed,
		},
		{
			name:     "should treat type mismatches as decode failures",
			err:      json.Unmarshal([]byte(`{"a":1}`), &[]any{}),
			expected: domain.ErrRemoteDecodeFailed,
		},
		{
			name:     "should treat a truncated body as a decode failure",
			err:      fmt.Errorf("decoding: %w", io.ErrUnexpectedEOF),
			expected: domain.ErrRemoteDecodeFailed,
		},
		{
			name:     "should treat anything else as a request failure",
			err:      errors.New("GET https://example.com: 500 Internal Server Error"),
			expected: domain.ErrRemoteRequestFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			err := remote.Classify("projects of group \"acme\"", tt.err)

			// then
			assert.ErrorIs(t, err, tt.expected)
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), "projects of group \"acme\"")
		})
	}
}

func TestDestination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		localPath string
		fullPath  string
		expected  string
	}{
		{name: "should join plain segments", localPath: "code", fullPath: "acme/a", expected: "code/acme/a"},
		{name: "should drop a trailing separator", localPath: "code/", fullPath: "acme/a", expected: "code/acme/a"},
		{name: "should drop a leading separator", localPath: "code", fullPath: "/acme/a", expected: "code/acme/a"},
		{name: "should keep an absolute prefix", localPath: "/srv/", fullPath: "/acme/a/", expected: "/srv/acme/a"},
		{name: "should allow an empty prefix", localPath: "", fullPath: "acme/a", expected: "acme/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			result := remote.Destination(tt.localPath, tt.fullPath)

			// then
			assert.Equal(t, tt.expected, result)
		})
	}
}
