package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "home directory with slash", input: "~/.tokenlist/cache", expected: filepath.Join(home, ".tokenlist", "cache")},
		{name: "home directory only", input: "~", expected: home},
		{name: "absolute path", input: "/tmp/tokenlist", expected: "/tmp/tokenlist"},
		{name: "relative path", input: "./cache", expected: "./cache"},
		{name: "tilde in the middle", input: "/tmp/~/cache", expected: "/tmp/~/cache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.input))
		})
	}
}
