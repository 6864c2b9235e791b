package generate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	netv1 "k8s.io/api/networking/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/yaml"
)

// Resource-kind tags used for bundle grouping and output file names.
const (
	KindConfigMaps  = "configmaps"
	KindPVCs        = "pvcs"
	KindDeployments = "deployments"
	KindServices    = "services"
	KindIngress     = "ingress"
)

var gvrByKind = map[string]schema.GroupVersionResource{
	KindConfigMaps:  {Version: "v1", Resource: "configmaps"},
	KindPVCs:        {Version: "v1", Resource: "persistentvolumeclaims"},
	KindDeployments: {Group: "apps", Version: "v1", Resource: "deployments"},
	KindServices:    {Version: "v1", Resource: "services"},
	KindIngress:     {Group: "networking.k8s.io", Version: "v1", Resource: "ingresses"},
}

// Bundle is the complete set of generated manifests grouped by kind.
// It is derived fresh on every generation call and has no identity
// beyond the invocation.
type Bundle struct {
	ConfigMaps  []*corev1.ConfigMap
	PVCs        []*corev1.PersistentVolumeClaim
	Deployments []*appsv1.Deployment
	Services    []*corev1.Service
	Ingresses   []*netv1.Ingress
}

// Group is one resource kind of a bundle, ready for cluster operations.
type Group struct {
	Kind    string
	GVR     schema.GroupVersionResource
	Objects []runtime.Object
}

// ApplyOrder returns the non-empty kinds in dependency order:
// configmaps, pvcs, services, deployments, ingress.
func (b *Bundle) ApplyOrder() []Group {
	return b.groups(KindConfigMaps, KindPVCs, KindServices, KindDeployments, KindIngress)
}

// DeleteOrder returns the non-empty kinds in reverse dependency order:
// ingress, deployments, services, configmaps, pvcs.
func (b *Bundle) DeleteOrder() []Group {
	return b.groups(KindIngress, KindDeployments, KindServices, KindConfigMaps, KindPVCs)
}

// Empty reports whether the bundle holds no manifests at all.
func (b *Bundle) Empty() bool {
	return len(b.ApplyOrder()) == 0
}

// Counts returns the number of manifests per non-empty kind, keyed by
// kind tag.
func (b *Bundle) Counts() map[string]int {
	counts := make(map[string]int)
	for _, g := range b.ApplyOrder() {
		counts[g.Kind] = len(g.Objects)
	}
	return counts
}

func (b *Bundle) groups(kinds ...string) []Group {
	var out []Group
	for _, kind := range kinds {
		objects := b.objects(kind)
		if len(objects) == 0 {
			continue
		}
		out = append(out, Group{Kind: kind, GVR: gvrByKind[kind], Objects: objects})
	}
	return out
}

func (b *Bundle) objects(kind string) []runtime.Object {
	var out []runtime.Object
	switch kind {
	case KindConfigMaps:
		for _, o := range b.ConfigMaps {
			out = append(out, o)
		}
	case KindPVCs:
		for _, o := range b.PVCs {
			out = append(out, o)
		}
	case KindDeployments:
		for _, o := range b.Deployments {
			out = append(out, o)
		}
	case KindServices:
		for _, o := range b.Services {
			out = append(out, o)
		}
	case KindIngress:
		for _, o := range b.Ingresses {
			out = append(out, o)
		}
	}
	return out
}

// WriteFiles writes one multi-document YAML file per non-empty kind
// into dir, named "{kind}.yaml".
func (b *Bundle) WriteFiles(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	for _, g := range b.ApplyOrder() {
		var buf bytes.Buffer
		for i, obj := range g.Objects {
			if i > 0 {
				buf.WriteString("---\n")
			}
			data, err := yaml.Marshal(obj)
			if err != nil {
				return fmt.Errorf("marshaling %s: %w", g.Kind, err)
			}
			buf.Write(data)
		}
		path := filepath.Join(dir, g.Kind+".yaml")
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
