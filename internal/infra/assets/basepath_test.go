package assets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasePathResolver(t *testing.T) {
	tests := []struct {
		base     string
		path     string
		expected string
	}{
		{"", "./projects/broll/a.mp4", "/projects/broll/a.mp4"},
		{"", "projects/broll/a.mp4", "/projects/broll/a.mp4"},
		{"/demo_heroxshorts2", "/projects/a.mp4", "/demo_heroxshorts2/projects/a.mp4"},
		{"/demo_heroxshorts2/", "./projects/a.mp4", "/demo_heroxshorts2/projects/a.mp4"},
	}

	for _, tt := range tests {
		got, err := NewBasePathResolver(tt.base).Resolve(context.Background(), tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got)
	}
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "projects/x.mp4", ObjectKey("./projects/x.mp4"))
	assert.Equal(t, "projects/x.mp4", ObjectKey("//projects/x.mp4"))
}
