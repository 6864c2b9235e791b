// Package reconcile applies and deletes generated resource bundles
// against a cluster with create-or-patch semantics. Apply walks kinds
// in dependency order, delete in reverse; neither is transactional, so
// every attempted resource is tracked and reported.
package reconcile

import (
	"context"
	"encoding/json"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/eznix86/kstack/internal/cluster"
	"github.com/eznix86/kstack/internal/generate"
)

// Outcome is the result of one resource during an apply pass.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomePatched Outcome = "patched"
	OutcomeFailed  Outcome = "failed"
)

// Result records what happened to one manifest.
type Result struct {
	Kind    string
	Name    string
	Outcome Outcome
	Err     error
}

// Summary aggregates the per-resource outcomes of an apply pass. When
// apply aborts on an error, the summary still lists everything that was
// already created or patched.
type Summary struct {
	Results []Result
}

// Count returns how many resources ended with the given outcome.
func (s *Summary) Count(outcome Outcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == outcome {
			n++
		}
	}
	return n
}

// Manager reconciles bundles against a cluster through the injected
// client, one blocking call at a time.
type Manager struct {
	client    cluster.Client
	namespace string
}

// NewManager returns a Manager targeting the given namespace.
func NewManager(c cluster.Client, namespace string) *Manager {
	return &Manager{client: c, namespace: namespace}
}

// Apply reconciles every manifest in the bundle, kind by kind in the
// order configmaps, pvcs, services, deployments, ingress: an existing
// resource is patched (server-side strategic merge), a missing one is
// created. The first non-NotFound error aborts the pass; resources
// already applied stay applied and are listed in the summary.
func (m *Manager) Apply(ctx context.Context, b *generate.Bundle) (*Summary, error) {
	summary := &Summary{}

	for _, group := range b.ApplyOrder() {
		for _, obj := range group.Objects {
			u, err := toUnstructured(obj)
			if err != nil {
				return summary, fmt.Errorf("converting %s: %w", group.Kind, err)
			}
			name := u.GetName()
			namespace := u.GetNamespace()
			if namespace == "" {
				namespace = m.namespace
			}

			_, err = m.client.Get(ctx, group.GVR, namespace, name)
			switch {
			case err == nil:
				data, merr := json.Marshal(obj)
				if merr != nil {
					return summary, fmt.Errorf("marshaling %s %q: %w", group.Kind, name, merr)
				}
				if perr := m.client.Patch(ctx, group.GVR, namespace, name, data); perr != nil {
					summary.Results = append(summary.Results, Result{Kind: group.Kind, Name: name, Outcome: OutcomeFailed, Err: perr})
					return summary, fmt.Errorf("failed to apply %s %q: %w", group.Kind, name, perr)
				}
				summary.Results = append(summary.Results, Result{Kind: group.Kind, Name: name, Outcome: OutcomePatched})

			case apierrors.IsNotFound(err):
				if cerr := m.client.Create(ctx, group.GVR, namespace, u); cerr != nil {
					summary.Results = append(summary.Results, Result{Kind: group.Kind, Name: name, Outcome: OutcomeFailed, Err: cerr})
					return summary, fmt.Errorf("failed to apply %s %q: %w", group.Kind, name, cerr)
				}
				summary.Results = append(summary.Results, Result{Kind: group.Kind, Name: name, Outcome: OutcomeCreated})

			default:
				summary.Results = append(summary.Results, Result{Kind: group.Kind, Name: name, Outcome: OutcomeFailed, Err: err})
				return summary, fmt.Errorf("failed to apply %s %q: %w", group.Kind, name, err)
			}
		}
	}
	return summary, nil
}

// Delete removes every manifest in the bundle, kind by kind in the
// order ingress, deployments, services, configmaps, pvcs. Missing
// resources are a no-op; any other error aborts, already-deleted
// resources stay deleted.
func (m *Manager) Delete(ctx context.Context, b *generate.Bundle) error {
	for _, group := range b.DeleteOrder() {
		for _, obj := range group.Objects {
			u, err := toUnstructured(obj)
			if err != nil {
				return fmt.Errorf("converting %s: %w", group.Kind, err)
			}
			name := u.GetName()
			namespace := u.GetNamespace()
			if namespace == "" {
				namespace = m.namespace
			}

			if err := m.client.Delete(ctx, group.GVR, namespace, name); err != nil {
				if apierrors.IsNotFound(err) {
					continue
				}
				return fmt.Errorf("failed to delete %s %q: %w", group.Kind, name, err)
			}
		}
	}
	return nil
}

func toUnstructured(obj runtime.Object) (*unstructured.Unstructured, error) {
	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, err
	}
	return &unstructured.Unstructured{Object: content}, nil
}
