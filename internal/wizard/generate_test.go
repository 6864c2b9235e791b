package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eznix86/kstack/internal/compose"
)

func TestGenerateDescriptorMinimal(t *testing.T) {
	answers := Answers{
		AppName:  "whoami",
		Image:    "traefik/whoami:latest",
		Port:     "8080:80",
		Replicas: "1",
	}

	out, err := GenerateDescriptor(answers)
	require.NoError(t, err)

	assert.Contains(t, out, "whoami:")
	assert.Contains(t, out, "image: traefik/whoami:latest")
	assert.Contains(t, out, `- "8080:80"`)
	assert.NotContains(t, out, "replicas:")
	assert.NotContains(t, out, "expose:")
	assert.NotContains(t, out, "volumes:")
}

func TestGenerateDescriptorFull(t *testing.T) {
	answers := Answers{
		AppName:     "web",
		Image:       "nginx:1.27",
		Port:        "8080:80",
		Replicas:    "3",
		Expose:      true,
		ExposeHost:  "example.com",
		WithVolume:  true,
		VolumeName:  "data",
		VolumeMount: "/data",
		VolumeSize:  "5Gi",
	}

	out, err := GenerateDescriptor(answers)
	require.NoError(t, err)

	assert.Contains(t, out, "replicas: 3")
	assert.Contains(t, out, "- example.com")
	assert.Contains(t, out, "- data:/data")
	assert.Contains(t, out, "size: 5Gi")
}

func TestGenerateDescriptorDefaults(t *testing.T) {
	out, err := GenerateDescriptor(Answers{Image: "nginx", WithVolume: true})
	require.NoError(t, err)

	assert.Contains(t, out, "app:")
	assert.Contains(t, out, `- "8080:80"`)
	assert.Contains(t, out, "- data:/data")
	assert.Contains(t, out, "size: 1Gi")
}

// The scaffolded descriptor must round-trip through the parser.
func TestGenerateDescriptorParses(t *testing.T) {
	answers := Answers{
		AppName:    "web",
		Image:      "nginx:1.27",
		Port:       "8080:80",
		Replicas:   "2",
		Expose:     true,
		ExposeHost: "example.com",
		WithVolume: true,
	}

	out, err := GenerateDescriptor(answers)
	require.NoError(t, err)

	c, err := compose.Parse([]byte(out))
	require.NoError(t, err)
	require.Contains(t, c.Apps, "web")
	assert.Equal(t, "nginx:1.27", c.Apps["web"].Image)
	assert.Contains(t, c.Volumes, "data")
}
