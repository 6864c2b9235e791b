package generate

import "fmt"

// The deployment and volume generators must agree on these names: a
// volume mount produced for one generator has to resolve to a pod
// volume produced by the other. All naming conventions live here so
// the contract cannot drift.

// ConfigMapName names the ConfigMap (and its pod volume) backing a
// declared config.
func ConfigMapName(configName string) string {
	return "config-" + configName
}

// VolumeName names the pod volume for a positional volumes entry of an
// owner (app or "{app}-{sidecar}") at a given index.
func VolumeName(owner string, index int) string {
	return fmt.Sprintf("vol-%s-%d", owner, index)
}

// SidecarName names a sidecar's container, services and volume owner.
func SidecarName(app, sidecar string) string {
	return app + "-" + sidecar
}

// LBName names the LoadBalancer companion of a service.
func LBName(name string) string {
	return name + "-lb"
}

// IngressServiceName names the ClusterIP service backing an app's
// ingress rules.
func IngressServiceName(app string) string {
	return app + "-ingress"
}

// DefaultConfigMountPath is where a config volume lands when the
// descriptor does not pick a mount path.
func DefaultConfigMountPath(configName string) string {
	return "/config/" + configName
}
