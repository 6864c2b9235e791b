package util

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

	assert.Equal(t, filepath.Join(home, ".kube", "config"), ExpandPath("~/.kube/config"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/etc/kstack.yml", ExpandPath("/etc/kstack.yml"))
	assert.Equal(t, "relative/path", ExpandPath("relative/path"))
}
