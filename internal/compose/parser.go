package compose

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/eznix86/kstack/internal/model"
)

// Load reads and parses a kstack descriptor from disk.
func Load(path string) (*model.Compose, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a kstack descriptor. Unknown fields are rejected so the
// descriptor shape itself acts as the structural schema.
func Parse(data []byte) (*model.Compose, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("descriptor must be a YAML mapping")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var c model.Compose
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ExternalConfigs returns the names of configs marked external.
func ExternalConfigs(c *model.Compose) map[string]bool {
	out := make(map[string]bool)
	for name, cfg := range c.Configs {
		if cfg.External {
			out[name] = true
		}
	}
	return out
}

// ExternalSecrets returns the names of secrets marked external.
func ExternalSecrets(c *model.Compose) map[string]bool {
	out := make(map[string]bool)
	for name, sec := range c.Secrets {
		if sec.External {
			out[name] = true
		}
	}
	return out
}

// ReferencedConfigs returns the names of configs referenced by any app
// or sidecar, through volumesFrom or envFrom.
func ReferencedConfigs(c *model.Compose) map[string]bool {
	out := make(map[string]bool)
	collect := func(volumesFrom []model.VolumeFromEntry, envFrom []model.EnvFromEntry) {
		for _, v := range volumesFrom {
			if v.Config != nil && v.Config.Name != "" {
				out[v.Config.Name] = true
			}
		}
		for _, e := range envFrom {
			if e.Config != nil && e.Config.Name != "" {
				out[e.Config.Name] = true
			}
		}
	}
	for _, app := range c.Apps {
		collect(app.VolumesFrom, app.EnvFrom)
		for _, sc := range app.Sidecars {
			collect(sc.VolumesFrom, sc.EnvFrom)
		}
	}
	return out
}

// ReferencedSecrets returns the names of secrets referenced by any app
// or sidecar through envFrom.
func ReferencedSecrets(c *model.Compose) map[string]bool {
	out := make(map[string]bool)
	collect := func(envFrom []model.EnvFromEntry) {
		for _, e := range envFrom {
			if e.Secret != nil && e.Secret.Name != "" {
				out[e.Secret.Name] = true
			}
		}
	}
	for _, app := range c.Apps {
		collect(app.EnvFrom)
		for _, sc := range app.Sidecars {
			collect(sc.EnvFrom)
		}
	}
	return out
}

// Intersect returns the sorted intersection of two name sets.
func Intersect(a, b map[string]bool) []string {
	var out []string
	for name := range a {
		if b[name] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// SortedNames returns the sorted keys of a name set.
func SortedNames(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
