// Package cluster provides the narrow cluster capability the pipeline
// consumes: read, create, patch and delete of namespaced resources by
// group/version/resource and name. Authentication and transport stay
// behind client-go.
package cluster

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/tools/clientcmd"
)

// FieldManager tags every write this tool performs.
const FieldManager = "kstack"

// Client is the cluster-resource capability consumed by the validators
// and the reconciler. NotFound surfaces as an apierrors.IsNotFound
// error; anything else propagates unchanged.
type Client interface {
	Get(ctx context.Context, gvr schema.GroupVersionResource, namespace, name string) (*unstructured.Unstructured, error)
	Create(ctx context.Context, gvr schema.GroupVersionResource, namespace string, obj *unstructured.Unstructured) error
	Patch(ctx context.Context, gvr schema.GroupVersionResource, namespace, name string, data []byte) error
	Delete(ctx context.Context, gvr schema.GroupVersionResource, namespace, name string) error
}

type dynamicClient struct {
	dyn dynamic.Interface
}

// NewFromKubeconfig builds a Client from a kubeconfig path, falling
// back to the default loading rules (KUBECONFIG, ~/.kube/config) when
// the path is empty.
func NewFromKubeconfig(kubeconfig string) (Client, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		rules.ExplicitPath = kubeconfig
	}
	cfg, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("loading kubeconfig: %w", err)
	}
	dyn, err := dynamic.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("building cluster client: %w", err)
	}
	return &dynamicClient{dyn: dyn}, nil
}

func (c *dynamicClient) Get(ctx context.Context, gvr schema.GroupVersionResource, namespace, name string) (*unstructured.Unstructured, error) {
	return c.dyn.Resource(gvr).Namespace(namespace).Get(ctx, name, metav1.GetOptions{})
}

func (c *dynamicClient) Create(ctx context.Context, gvr schema.GroupVersionResource, namespace string, obj *unstructured.Unstructured) error {
	_, err := c.dyn.Resource(gvr).Namespace(namespace).Create(ctx, obj, metav1.CreateOptions{FieldManager: FieldManager})
	return err
}

func (c *dynamicClient) Patch(ctx context.Context, gvr schema.GroupVersionResource, namespace, name string, data []byte) error {
	_, err := c.dyn.Resource(gvr).Namespace(namespace).Patch(ctx, name, types.StrategicMergePatchType, data, metav1.PatchOptions{FieldManager: FieldManager})
	return err
}

func (c *dynamicClient) Delete(ctx context.Context, gvr schema.GroupVersionResource, namespace, name string) error {
	return c.dyn.Resource(gvr).Namespace(namespace).Delete(ctx, name, metav1.DeleteOptions{})
}
