package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(`
# database settings
DB_HOST=localhost
DB_PORT = 5432

DB_URL=postgres://localhost:5432/app?sslmode=disable
`), 0644))

	out, err := ParseEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"DB_HOST": "localhost",
		"DB_PORT": "5432",
		"DB_URL":  "postgres://localhost:5432/app?sslmode=disable",
	}, out)
}

func TestParseEnvFileMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JUSTAKEY\n"), 0644))

	_, err := ParseEnvFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected KEY=VALUE")
}

func TestParseEnvFileMissing(t *testing.T) {
	_, err := ParseEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestParseLiterals(t *testing.T) {
	out, err := ParseLiterals([]string{"A=1", "B=two words"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "two words"}, out)

	_, err = ParseLiterals([]string{"novalue"})
	assert.Error(t, err)
}
