package compose

import (
	"fmt"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/eznix86/kstack/internal/model"
)

// ValidationError reports a structural or referential problem in the
// descriptor, pinned to the app (and sidecar) that declared it.
type ValidationError struct {
	App     string
	Sidecar string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Sidecar != "" {
		fmt.Fprintf(&b, "sidecar %q in ", e.Sidecar)
	}
	if e.App != "" {
		fmt.Fprintf(&b, "app %q: ", e.App)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, "%s: ", e.Field)
	}
	b.WriteString(e.Message)
	return b.String()
}

// Validate checks the descriptor structurally and referentially. The
// external sets come from the parser's resolution pass; a config marked
// external locally but missing from the resolved set signals an
// inconsistent configuration. The first violation found aborts.
func Validate(c *model.Compose, externalConfigs, externalSecrets map[string]bool) error {
	for _, volName := range sortedVolumeNames(c) {
		spec := c.Volumes[volName]
		if spec.Size == "" {
			continue
		}
		if _, err := resource.ParseQuantity(spec.Size); err != nil {
			return &ValidationError{
				Field:   fmt.Sprintf("volumes.%s.size", volName),
				Message: fmt.Sprintf("invalid size %q: %v", spec.Size, err),
			}
		}
	}

	for _, appName := range sortedAppNames(c) {
		app := c.Apps[appName]
		if app.Image == "" {
			return &ValidationError{App: appName, Field: "image", Message: "image is required"}
		}
		if app.Deploy.Replicas != nil && *app.Deploy.Replicas < 0 {
			return &ValidationError{App: appName, Field: "deploy.replicas", Message: "replicas must not be negative"}
		}
		if err := validateVolumes(c, appName, "", app.Volumes); err != nil {
			return err
		}
		if err := validateRefs(c, appName, "", app.VolumesFrom, app.EnvFrom, externalConfigs, externalSecrets); err != nil {
			return err
		}

		scNames := make([]string, 0, len(app.Sidecars))
		for name := range app.Sidecars {
			scNames = append(scNames, name)
		}
		sort.Strings(scNames)
		for _, scName := range scNames {
			sc := app.Sidecars[scName]
			if sc.Image == "" {
				return &ValidationError{App: appName, Sidecar: scName, Field: "image", Message: "image is required"}
			}
			if err := validateVolumes(c, appName, scName, sc.Volumes); err != nil {
				return err
			}
			if err := validateRefs(c, appName, scName, sc.VolumesFrom, sc.EnvFrom, externalConfigs, externalSecrets); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateVolumes(c *model.Compose, app, sidecar string, volumes []string) error {
	for i, vol := range volumes {
		parts := strings.SplitN(vol, ":", 2)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return &ValidationError{
				App: app, Sidecar: sidecar,
				Field:   fmt.Sprintf("volumes[%d]", i),
				Message: fmt.Sprintf("%q must be in \"source:mountPath\" form", vol),
			}
		}
		// A non-path source is a PVC claim and must be declared.
		if !strings.HasPrefix(parts[0], "/") {
			if _, ok := c.Volumes[parts[0]]; !ok {
				return &ValidationError{
					App: app, Sidecar: sidecar,
					Field:   fmt.Sprintf("volumes[%d]", i),
					Message: fmt.Sprintf("references volume %q which does not exist", parts[0]),
				}
			}
		}
	}
	return nil
}

func validateRefs(c *model.Compose, app, sidecar string, volumesFrom []model.VolumeFromEntry, envFrom []model.EnvFromEntry, externalConfigs, externalSecrets map[string]bool) error {
	for _, v := range volumesFrom {
		if v.Config == nil || v.Config.Name == "" {
			continue
		}
		if err := validateConfigRef(c, app, sidecar, v.Config.Name, externalConfigs); err != nil {
			return err
		}
	}
	for _, e := range envFrom {
		switch {
		case e.Config != nil && e.Config.Name != "":
			if err := validateConfigRef(c, app, sidecar, e.Config.Name, externalConfigs); err != nil {
				return err
			}
		case e.Secret != nil && e.Secret.Name != "":
			if !externalSecrets[e.Secret.Name] {
				return &ValidationError{
					App: app, Sidecar: sidecar,
					Message: fmt.Sprintf("references secret %q which is not marked as external", e.Secret.Name),
				}
			}
		}
	}
	return nil
}

func validateConfigRef(c *model.Compose, app, sidecar, name string, externalConfigs map[string]bool) error {
	cfg, ok := c.Configs[name]
	if !ok {
		return &ValidationError{
			App: app, Sidecar: sidecar,
			Message: fmt.Sprintf("references config %q which does not exist", name),
		}
	}
	if cfg.External && !externalConfigs[name] {
		return &ValidationError{
			App: app, Sidecar: sidecar,
			Message: fmt.Sprintf("references config %q which is marked as external but not found in external configs", name),
		}
	}
	return nil
}

func sortedAppNames(c *model.Compose) []string {
	out := make([]string, 0, len(c.Apps))
	for name := range c.Apps {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func sortedVolumeNames(c *model.Compose) []string {
	out := make([]string, 0, len(c.Volumes))
	for name := range c.Volumes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
