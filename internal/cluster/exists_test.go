package cluster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// stubClient answers Get from a fixed set; other verbs are unused here.
type stubClient struct {
	existing map[string]bool // "resource/name"
	getErr   error
}

func (s *stubClient) Get(ctx context.Context, gvr schema.GroupVersionResource, namespace, name string) (*unstructured.Unstructured, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.existing[gvr.Resource+"/"+name] {
		return &unstructured.Unstructured{}, nil
	}
	return nil, apierrors.NewNotFound(schema.GroupResource{Resource: gvr.Resource}, name)
}

func (s *stubClient) Create(ctx context.Context, gvr schema.GroupVersionResource, namespace string, obj *unstructured.Unstructured) error {
	return nil
}

func (s *stubClient) Patch(ctx context.Context, gvr schema.GroupVersionResource, namespace, name string, data []byte) error {
	return nil
}

func (s *stubClient) Delete(ctx context.Context, gvr schema.GroupVersionResource, namespace, name string) error {
	return nil
}

func TestValidateExternalResourcesAllPresent(t *testing.T) {
	c := &stubClient{existing: map[string]bool{
		"configmaps/settings": true,
		"secrets/creds":       true,
	}}
	err := ValidateExternalResources(context.Background(), c, "prod", []string{"settings"}, []string{"creds"})
	assert.NoError(t, err)
}

func TestValidateExternalResourcesMissingConfigMap(t *testing.T) {
	c := &stubClient{existing: map[string]bool{}}
	err := ValidateExternalResources(context.Background(), c, "prod", []string{"settings"}, nil)
	require.Error(t, err)

	var existErr *ExistenceError
	require.ErrorAs(t, err, &existErr)
	assert.Equal(t, "ConfigMap", existErr.Kind)
	assert.Equal(t, "settings", existErr.Name)
	assert.Equal(t, "prod", existErr.Namespace)
	assert.Equal(t, `ConfigMap "settings" not found in namespace "prod"`, err.Error())
}

func TestValidateExternalResourcesMissingSecret(t *testing.T) {
	c := &stubClient{existing: map[string]bool{"configmaps/settings": true}}
	err := ValidateExternalResources(context.Background(), c, "prod", []string{"settings"}, []string{"creds"})
	require.Error(t, err)

	var existErr *ExistenceError
	require.ErrorAs(t, err, &existErr)
	assert.Equal(t, "Secret", existErr.Kind)
	assert.Equal(t, "creds", existErr.Name)
}

func TestValidateExternalResourcesPropagatesOtherErrors(t *testing.T) {
	c := &stubClient{getErr: errors.New("connection refused")}
	err := ValidateExternalResources(context.Background(), c, "prod", []string{"settings"}, nil)
	require.Error(t, err)

	var existErr *ExistenceError
	assert.False(t, errors.As(err, &existErr))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestValidateExternalResourcesNothingToCheck(t *testing.T) {
	c := &stubClient{existing: map[string]bool{}}
	assert.NoError(t, ValidateExternalResources(context.Background(), c, "prod", nil, nil))
}
