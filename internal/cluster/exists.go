package cluster

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

var (
	configMapsGVR = schema.GroupVersionResource{Version: "v1", Resource: "configmaps"}
	secretsGVR    = schema.GroupVersionResource{Version: "v1", Resource: "secrets"}
)

// ExistenceError reports an external resource the descriptor relies on
// that is absent from the cluster.
type ExistenceError struct {
	Kind      string
	Name      string
	Namespace string
}

func (e *ExistenceError) Error() string {
	return fmt.Sprintf("%s %q not found in namespace %q", e.Kind, e.Name, e.Namespace)
}

// ValidateExternalResources confirms every referenced external
// ConfigMap and Secret exists in the target namespace. NotFound becomes
// an ExistenceError; any other cluster error propagates unchanged.
func ValidateExternalResources(ctx context.Context, c Client, namespace string, configs, secrets []string) error {
	for _, name := range configs {
		if _, err := c.Get(ctx, configMapsGVR, namespace, name); err != nil {
			if apierrors.IsNotFound(err) {
				return &ExistenceError{Kind: "ConfigMap", Name: name, Namespace: namespace}
			}
			return err
		}
	}
	for _, name := range secrets {
		if _, err := c.Get(ctx, secretsGVR, namespace, name); err != nil {
			if apierrors.IsNotFound(err) {
				return &ExistenceError{Kind: "Secret", Name: name, Namespace: namespace}
			}
			return err
		}
	}
	return nil
}
