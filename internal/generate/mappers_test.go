package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/eznix86/kstack/internal/model"
)

func intp(v int) *int { return &v }

func TestContainerPorts(t *testing.T) {
	tests := []struct {
		name     string
		entry    model.PortEntry
		want     []corev1.ContainerPort
		warnings int
	}{
		{
			name:  "published:target string takes target",
			entry: model.PortEntry{String: "8080:80"},
			want:  []corev1.ContainerPort{{ContainerPort: 80, Protocol: corev1.ProtocolTCP}},
		},
		{
			name:  "protocol suffix stripped",
			entry: model.PortEntry{String: "9000:9000/udp"},
			want:  []corev1.ContainerPort{{ContainerPort: 9000, Protocol: corev1.ProtocolTCP}},
		},
		{
			name:  "bare port string",
			entry: model.PortEntry{String: "6379"},
			want:  []corev1.ContainerPort{{ContainerPort: 6379, Protocol: corev1.ProtocolTCP}},
		},
		{
			name:  "http url with explicit port",
			entry: model.PortEntry{String: "http://example.com:8080"},
			want:  []corev1.ContainerPort{{ContainerPort: 8080, Protocol: corev1.ProtocolTCP}},
		},
		{
			name:  "http url defaults to 80",
			entry: model.PortEntry{String: "http://example.com"},
			want:  []corev1.ContainerPort{{ContainerPort: 80, Protocol: corev1.ProtocolTCP}},
		},
		{
			name:  "https url defaults to 443",
			entry: model.PortEntry{String: "https://example.com"},
			want:  []corev1.ContainerPort{{ContainerPort: 443, Protocol: corev1.ProtocolTCP}},
		},
		{
			name:     "non-numeric target warns",
			entry:    model.PortEntry{String: "8080:web"},
			warnings: 1,
		},
		{
			name:  "legacy port mapping",
			entry: model.PortEntry{Mapping: &model.PortMapping{Port: intp(5432), Protocol: "udp"}},
			want:  []corev1.ContainerPort{{ContainerPort: 5432, Protocol: corev1.ProtocolUDP}},
		},
		{
			name: "domain-keyed mapping",
			entry: model.PortEntry{Mapping: &model.PortMapping{
				Domain: &model.DomainPort{Host: "example.com", Port: 9090},
			}},
			want: []corev1.ContainerPort{{ContainerPort: 9090, Protocol: corev1.ProtocolTCP}},
		},
		{
			name: "domain and legacy both emit",
			entry: model.PortEntry{Mapping: &model.PortMapping{
				Port:   intp(80),
				Domain: &model.DomainPort{Host: "example.com", Port: 443},
			}},
			want: []corev1.ContainerPort{
				{ContainerPort: 443, Protocol: corev1.ProtocolTCP},
				{ContainerPort: 80, Protocol: corev1.ProtocolTCP},
			},
		},
		{
			name:  "published/target mapping emits nothing without warning",
			entry: model.PortEntry{Mapping: &model.PortMapping{Published: intp(8080), Target: intp(80)}},
		},
		{
			name:     "empty mapping warns",
			entry:    model.PortEntry{Mapping: &model.PortMapping{}},
			warnings: 1,
		},
		{
			name:     "empty entry warns",
			entry:    model.PortEntry{},
			warnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ports, warnings := ContainerPorts([]model.PortEntry{tt.entry})
			assert.Equal(t, tt.want, ports)
			assert.Len(t, warnings, tt.warnings)
		})
	}
}

func TestServicePorts(t *testing.T) {
	tests := []struct {
		name     string
		entry    model.PortEntry
		want     []corev1.ServicePort
		warnings int
	}{
		{
			name:  "string published:target",
			entry: model.PortEntry{String: "8080:80"},
			want: []corev1.ServicePort{{
				Name: "port-8080", Port: 8080, TargetPort: intstr.FromInt32(80), Protocol: corev1.ProtocolTCP,
			}},
		},
		{
			name:  "protocol suffix stripped from target",
			entry: model.PortEntry{String: "9000:9000/udp"},
			want: []corev1.ServicePort{{
				Name: "port-9000", Port: 9000, TargetPort: intstr.FromInt32(9000), Protocol: corev1.ProtocolTCP,
			}},
		},
		{
			name:     "bare port warns",
			entry:    model.PortEntry{String: "8080"},
			warnings: 1,
		},
		{
			name:     "non-numeric published warns",
			entry:    model.PortEntry{String: "web:80"},
			warnings: 1,
		},
		{
			name:  "mapping with published and target",
			entry: model.PortEntry{Mapping: &model.PortMapping{Published: intp(8443), Target: intp(443), Protocol: "udp"}},
			want: []corev1.ServicePort{{
				Name: "port-8443", Port: 8443, TargetPort: intstr.FromInt32(443), Protocol: corev1.ProtocolUDP,
			}},
		},
		{
			name:  "mapping defaults to 80/80 tcp",
			entry: model.PortEntry{Mapping: &model.PortMapping{}},
			want: []corev1.ServicePort{{
				Name: "port-80", Port: 80, TargetPort: intstr.FromInt32(80), Protocol: corev1.ProtocolTCP,
			}},
		},
		{
			name:     "empty entry warns",
			entry:    model.PortEntry{},
			warnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ports, warnings := ServicePorts([]model.PortEntry{tt.entry})
			assert.Equal(t, tt.want, ports)
			assert.Len(t, warnings, tt.warnings)
		})
	}
}

func TestEnvVarsSorted(t *testing.T) {
	vars := EnvVars(map[string]string{"ZED": "3", "ALPHA": "1", "MID": "2"})
	require.Len(t, vars, 3)
	assert.Equal(t, "ALPHA", vars[0].Name)
	assert.Equal(t, "MID", vars[1].Name)
	assert.Equal(t, "ZED", vars[2].Name)

	assert.Nil(t, EnvVars(nil))
}

func TestEnvFromSources(t *testing.T) {
	sources := EnvFromSources([]model.EnvFromEntry{
		{Config: &model.NameRef{Name: "settings"}},
		{Secret: &model.NameRef{Name: "creds"}},
		{},
	})
	require.Len(t, sources, 2)
	require.NotNil(t, sources[0].ConfigMapRef)
	assert.Equal(t, "settings", sources[0].ConfigMapRef.Name)
	require.NotNil(t, sources[1].SecretRef)
	assert.Equal(t, "creds", sources[1].SecretRef.Name)
}

func TestIsExternalPort(t *testing.T) {
	assert.True(t, isExternalPort(model.PortEntry{String: "8080:80"}))
	assert.False(t, isExternalPort(model.PortEntry{String: "8080"}))
	assert.True(t, isExternalPort(model.PortEntry{Mapping: &model.PortMapping{Published: intp(8080)}}))
	assert.False(t, isExternalPort(model.PortEntry{Mapping: &model.PortMapping{Published: intp(0)}}))
	assert.False(t, isExternalPort(model.PortEntry{Mapping: &model.PortMapping{Port: intp(80)}}))
	assert.False(t, isExternalPort(model.PortEntry{}))
}
