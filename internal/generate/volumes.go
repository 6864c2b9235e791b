package generate

import (
	"strings"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/eznix86/kstack/internal/model"
)

// PodVolumes builds the pod-level volume list for an app and its
// sidecars. Sidecars inherit the app's volumes when they declare none;
// inherited entries resolve to the same names for every owner of a
// config, so the final list is deduplicated by name, first occurrence
// wins.
func PodVolumes(appName string, app model.AppSpec) []corev1.Volume {
	volumes := ownerVolumes(appName, app.VolumesFrom, app.Volumes)

	for _, scName := range sortedKeys(app.Sidecars) {
		merged := model.MergeSidecar(app, app.Sidecars[scName])
		volumes = append(volumes, ownerVolumes(SidecarName(appName, scName), merged.VolumesFrom, merged.Volumes)...)
	}

	seen := make(map[string]bool, len(volumes))
	unique := volumes[:0]
	for _, v := range volumes {
		if seen[v.Name] {
			continue
		}
		seen[v.Name] = true
		unique = append(unique, v)
	}
	return unique
}

// ownerVolumes builds the volumes for a single container owner. Config
// mounts become configMap volumes; positional entries become hostPath
// volumes when the source is an absolute path and PVC volumes
// otherwise.
func ownerVolumes(owner string, volumesFrom []model.VolumeFromEntry, volumes []string) []corev1.Volume {
	var out []corev1.Volume

	for _, v := range volumesFrom {
		if v.Config == nil || v.Config.Name == "" {
			continue
		}
		name := ConfigMapName(v.Config.Name)
		out = append(out, corev1.Volume{
			Name: name,
			VolumeSource: corev1.VolumeSource{
				ConfigMap: &corev1.ConfigMapVolumeSource{
					LocalObjectReference: corev1.LocalObjectReference{Name: name},
				},
			},
		})
	}

	hostPathDir := corev1.HostPathDirectory
	for i, vol := range volumes {
		parts := strings.SplitN(vol, ":", 2)
		if len(parts) < 2 {
			continue
		}
		source := parts[0]
		v := corev1.Volume{Name: VolumeName(owner, i)}
		if strings.HasPrefix(source, "/") {
			v.VolumeSource = corev1.VolumeSource{
				HostPath: &corev1.HostPathVolumeSource{Path: source, Type: &hostPathDir},
			}
		} else {
			v.VolumeSource = corev1.VolumeSource{
				PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{ClaimName: source},
			}
		}
		out = append(out, v)
	}
	return out
}

// PVC builds the PersistentVolumeClaim manifest for a declared volume.
// An unparsable size falls back to the 1Gi default with a warning.
func PVC(name string, spec model.VolumeSpec, namespace string) (*corev1.PersistentVolumeClaim, []Warning) {
	var warnings []Warning
	size := spec.StorageSize()
	qty, err := resource.ParseQuantity(size)
	if err != nil {
		warnings = append(warnings, Warning{
			App:     name,
			Field:   "size",
			Message: "invalid quantity " + size + ", using 1Gi",
		})
		qty = resource.MustParse("1Gi")
	}

	return &corev1.PersistentVolumeClaim{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "PersistentVolumeClaim"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{corev1.ResourceStorage: qty},
			},
		},
	}, warnings
}
