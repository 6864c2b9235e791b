package model

// Compose is the top-level parsed kstack descriptor. It uses the "apps"
// vocabulary rather than compose's "services" and supports sidecars.
type Compose struct {
	Apps    map[string]AppSpec    `yaml:"apps"`
	Volumes map[string]VolumeSpec `yaml:"volumes"`
	Configs map[string]ConfigSpec `yaml:"configs"`
	Secrets map[string]SecretSpec `yaml:"secrets"`
}

// AppSpec describes one deployable app and its sidecars.
type AppSpec struct {
	Image       string                 `yaml:"image"`
	Ports       []PortEntry            `yaml:"ports"`
	Expose      []ExposeEntry          `yaml:"expose"`
	Environment map[string]string      `yaml:"environment"`
	EnvFrom     []EnvFromEntry         `yaml:"envFrom"`
	Volumes     []string               `yaml:"volumes"`
	VolumesFrom []VolumeFromEntry      `yaml:"volumesFrom"`
	Networks    []string               `yaml:"networks"`
	EnvFile     []string               `yaml:"env_file"`
	Sidecars    map[string]SidecarSpec `yaml:"sidecars"`
	Deploy      DeploySpec             `yaml:"deploy"`
}

// SidecarSpec is an AppSpec minus sidecars and expose. Unset inheritable
// fields are filled from the owning app by MergeSidecar.
type SidecarSpec struct {
	Image       string            `yaml:"image"`
	Ports       []PortEntry       `yaml:"ports"`
	Environment map[string]string `yaml:"environment"`
	EnvFrom     []EnvFromEntry    `yaml:"envFrom"`
	Volumes     []string          `yaml:"volumes"`
	VolumesFrom []VolumeFromEntry `yaml:"volumesFrom"`
	Networks    []string          `yaml:"networks"`
	EnvFile     []string          `yaml:"env_file"`
}

// DeploySpec carries deployment-time settings.
type DeploySpec struct {
	Replicas *int32 `yaml:"replicas"`
}

// ReplicaCount returns the configured replica count, defaulting to 1.
func (d DeploySpec) ReplicaCount() int32 {
	if d.Replicas == nil {
		return 1
	}
	return *d.Replicas
}

// ConfigSpec declares a config: either external (pre-existing in the
// cluster) or inline key/value data rendered into a ConfigMap.
type ConfigSpec struct {
	External bool              `yaml:"external"`
	Data     map[string]string `yaml:"data"`
}

// SecretSpec declares a secret. Secrets are only ever consumed as
// external resources; no inline secret data is generated.
type SecretSpec struct {
	External bool `yaml:"external"`
}

// VolumeSpec declares a named volume backed by a PVC.
type VolumeSpec struct {
	Size string `yaml:"size"`
}

// StorageSize returns the requested PVC size, defaulting to 1Gi.
func (v VolumeSpec) StorageSize() string {
	if v.Size == "" {
		return "1Gi"
	}
	return v.Size
}

// NameRef references a config or secret by name.
type NameRef struct {
	Name string `yaml:"name"`
}

// EnvFromEntry maps a whole config or secret into a container's
// environment. Exactly one of Config/Secret is set.
type EnvFromEntry struct {
	Config *NameRef `yaml:"config"`
	Secret *NameRef `yaml:"secret"`
}

// ConfigMount references a config to be mounted as a volume.
type ConfigMount struct {
	Name      string `yaml:"name"`
	MountPath string `yaml:"mountPath"`
}

// VolumeFromEntry mounts a config as a volume.
type VolumeFromEntry struct {
	Config *ConfigMount `yaml:"config"`
}

// MergeSidecar resolves a sidecar's effective spec: volumes, networks,
// env_file and volumesFrom are inherited from the owning app when the
// sidecar leaves them unset; a sidecar value always wins.
func MergeSidecar(app AppSpec, sc SidecarSpec) SidecarSpec {
	merged := sc
	if merged.Volumes == nil {
		merged.Volumes = app.Volumes
	}
	if merged.Networks == nil {
		merged.Networks = app.Networks
	}
	if merged.EnvFile == nil {
		merged.EnvFile = app.EnvFile
	}
	if merged.VolumesFrom == nil {
		merged.VolumesFrom = app.VolumesFrom
	}
	return merged
}
