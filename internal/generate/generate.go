// Package generate derives Kubernetes manifests from a parsed kstack
// descriptor: one Deployment per app with sidecars fanned out as extra
// containers, up to three tiers of Services, an Ingress per exposed
// app, PVCs for declared volumes and ConfigMaps for inline configs.
package generate

import (
	"sort"

	corev1 "k8s.io/api/core/v1"

	"github.com/eznix86/kstack/internal/model"
)

// Generator sequences the per-resource generators into a Bundle.
type Generator struct {
	Namespace string

	deployments *DeploymentGenerator
	services    *ServiceGenerator
	ingresses   *IngressGenerator
}

// New returns a Generator targeting the given namespace.
func New(namespace string) *Generator {
	return &Generator{
		Namespace:   namespace,
		deployments: &DeploymentGenerator{Namespace: namespace},
		services:    &ServiceGenerator{Namespace: namespace},
		ingresses:   &IngressGenerator{Namespace: namespace},
	}
}

// Generate builds the full resource bundle: PVCs for every declared
// volume, then per app the Deployment with its inline ConfigMaps, the
// Services when any are needed, and the Ingress when the app is exposed
// and a main-component Service exists. Warnings carry every descriptor
// entry that was skipped.
func (g *Generator) Generate(c *model.Compose) (*Bundle, []Warning) {
	bundle := &Bundle{}
	var warnings []Warning

	for _, volName := range sortedKeys(c.Volumes) {
		pvc, w := PVC(volName, c.Volumes[volName], g.Namespace)
		warnings = append(warnings, w...)
		bundle.PVCs = append(bundle.PVCs, pvc)
	}

	seenConfigMaps := make(map[string]bool)
	for _, appName := range sortedKeys(c.Apps) {
		app := c.Apps[appName]

		deployment, configMaps, w := g.deployments.Generate(appName, app, c)
		warnings = append(warnings, w...)
		bundle.Deployments = append(bundle.Deployments, deployment)
		for _, cm := range configMaps {
			if seenConfigMaps[cm.Name] {
				continue
			}
			seenConfigMaps[cm.Name] = true
			bundle.ConfigMaps = append(bundle.ConfigMaps, cm)
		}

		if !g.services.NeedsService(app) {
			continue
		}
		services, w := g.services.Generate(appName, app)
		warnings = append(warnings, w...)
		bundle.Services = append(bundle.Services, services...)

		if len(app.Expose) == 0 || !hasMainService(services) {
			continue
		}
		ingress, w := g.ingresses.Generate(appName, app)
		warnings = append(warnings, w...)
		if ingress != nil {
			bundle.Ingresses = append(bundle.Ingresses, ingress)
		}
	}

	return bundle, warnings
}

// hasMainService reports whether any generated service carries the
// component=main label; without one there is nothing for an Ingress to
// route to.
func hasMainService(services []*corev1.Service) bool {
	for _, s := range services {
		if s.Labels["component"] == "main" {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
