package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func decodePorts(t *testing.T, in string) []PortEntry {
	t.Helper()
	var out []PortEntry
	require.NoError(t, yaml.Unmarshal([]byte(in), &out))
	return out
}

func TestPortEntryScalar(t *testing.T) {
	entries := decodePorts(t, `["8080:80", "9000:9000/udp"]`)
	require.Len(t, entries, 2)
	assert.Equal(t, "8080:80", entries[0].String)
	assert.Nil(t, entries[0].Mapping)
	assert.Equal(t, "9000:9000/udp", entries[1].String)
}

func TestPortEntryStructured(t *testing.T) {
	entries := decodePorts(t, `
- published: 8080
  target: 80
  protocol: udp
`)
	require.Len(t, entries, 1)
	m := entries[0].Mapping
	require.NotNil(t, m)
	require.NotNil(t, m.Published)
	assert.Equal(t, 8080, *m.Published)
	require.NotNil(t, m.Target)
	assert.Equal(t, 80, *m.Target)
	assert.Equal(t, "udp", m.Protocol)
	assert.Nil(t, m.Port)
	assert.Nil(t, m.Domain)
}

func TestPortEntryLegacy(t *testing.T) {
	entries := decodePorts(t, `
- port: 5432
  protocol: tcp
`)
	require.Len(t, entries, 1)
	m := entries[0].Mapping
	require.NotNil(t, m)
	require.NotNil(t, m.Port)
	assert.Equal(t, 5432, *m.Port)
	assert.Equal(t, "tcp", m.Protocol)
}

func TestPortEntryDomainKeyed(t *testing.T) {
	entries := decodePorts(t, `
- example.com:
    port: 8080
    protocol: http
  other.com:
    port: 9090
`)
	require.Len(t, entries, 1)
	m := entries[0].Mapping
	require.NotNil(t, m)
	require.NotNil(t, m.Domain)
	// first domain carrying a port wins
	assert.Equal(t, "example.com", m.Domain.Host)
	assert.Equal(t, 8080, m.Domain.Port)
	assert.Equal(t, "http", m.Domain.Protocol)
}

func TestPortEntryDomainAndLegacyCoexist(t *testing.T) {
	entries := decodePorts(t, `
- port: 80
  example.com:
    port: 443
`)
	require.Len(t, entries, 1)
	m := entries[0].Mapping
	require.NotNil(t, m.Port)
	assert.Equal(t, 80, *m.Port)
	require.NotNil(t, m.Domain)
	assert.Equal(t, 443, m.Domain.Port)
}

func TestPortEntryDomainWithoutPortIgnored(t *testing.T) {
	entries := decodePorts(t, `
- example.com:
    protocol: http
`)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Mapping.Domain)
}

func TestPortEntryBadValue(t *testing.T) {
	var out []PortEntry
	err := yaml.Unmarshal([]byte(`[{published: not-a-number}]`), &out)
	assert.Error(t, err)
}

func decodeExpose(t *testing.T, in string) []ExposeEntry {
	t.Helper()
	var out []ExposeEntry
	require.NoError(t, yaml.Unmarshal([]byte(in), &out))
	return out
}

func TestExposeEntryURL(t *testing.T) {
	entries := decodeExpose(t, `["https://example.com/api"]`)
	require.Len(t, entries, 1)
	assert.Equal(t, "https://example.com/api", entries[0].URL)
	assert.Empty(t, entries[0].Host)
}

func TestExposeEntryHostMapping(t *testing.T) {
	entries := decodeExpose(t, `
- example.com:
    port: 8080
    path: /app
    ingressClassName: nginx
`)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "example.com", e.Host)
	require.NotNil(t, e.Options)
	require.NotNil(t, e.Options.Port)
	assert.Equal(t, 8080, *e.Options.Port)
	assert.Equal(t, "/app", e.Options.Path)
	assert.Equal(t, "nginx", e.Options.IngressClassName)
}

func TestExposeEntryHostWithScalarValue(t *testing.T) {
	// A host keyed to a scalar keeps nil Options for the generator to warn on.
	entries := decodeExpose(t, `
- example.com: yes
`)
	require.Len(t, entries, 1)
	assert.Equal(t, "example.com", entries[0].Host)
	assert.Nil(t, entries[0].Options)
}
