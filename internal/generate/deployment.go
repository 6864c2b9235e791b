package generate

import (
	"strings"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/eznix86/kstack/internal/model"
)

// DeploymentGenerator builds one Deployment per app, fanning sidecars
// out as additional containers, plus ConfigMaps for the inline
// (non-external) configs declared at the top level.
type DeploymentGenerator struct {
	Namespace string
}

// Generate returns the app's Deployment and the inline ConfigMaps.
func (g *DeploymentGenerator) Generate(name string, app model.AppSpec, c *model.Compose) (*appsv1.Deployment, []*corev1.ConfigMap, []Warning) {
	var warnings []Warning

	configMaps := g.inlineConfigMaps(c)

	main, w := g.container(name, containerSpec{
		image:       app.Image,
		ports:       app.Ports,
		environment: app.Environment,
		envFrom:     app.EnvFrom,
		volumes:     app.Volumes,
		volumesFrom: app.VolumesFrom,
	})
	warnings = append(warnings, tagWarnings(name, w)...)
	containers := []corev1.Container{main}

	for _, scName := range sortedKeys(app.Sidecars) {
		merged := model.MergeSidecar(app, app.Sidecars[scName])
		ctrName := SidecarName(name, scName)
		ctr, w := g.container(ctrName, containerSpec{
			image:       merged.Image,
			ports:       merged.Ports,
			environment: merged.Environment,
			envFrom:     merged.EnvFrom,
			volumes:     merged.Volumes,
			volumesFrom: merged.VolumesFrom,
		})
		warnings = append(warnings, tagWarnings(ctrName, w)...)
		containers = append(containers, ctr)
	}

	replicas := app.Deploy.ReplicaCount()
	deployment := &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: g.Namespace,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{
				MatchLabels: map[string]string{"app": name},
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: map[string]string{"app": name, "component": "main"},
				},
				Spec: corev1.PodSpec{
					Containers: containers,
					Volumes:    PodVolumes(name, app),
				},
			},
		},
	}
	return deployment, configMaps, warnings
}

type containerSpec struct {
	image       string
	ports       []model.PortEntry
	environment map[string]string
	envFrom     []model.EnvFromEntry
	volumes     []string
	volumesFrom []model.VolumeFromEntry
}

func (g *DeploymentGenerator) container(name string, spec containerSpec) (corev1.Container, []Warning) {
	ports, warnings := ContainerPorts(spec.ports)

	mounts := volumeMounts(name, spec.volumes)
	for _, v := range spec.volumesFrom {
		if v.Config == nil || v.Config.Name == "" {
			continue
		}
		mountPath := v.Config.MountPath
		if mountPath == "" {
			mountPath = DefaultConfigMountPath(v.Config.Name)
		}
		mounts = append(mounts, corev1.VolumeMount{
			Name:      ConfigMapName(v.Config.Name),
			MountPath: mountPath,
		})
	}

	return corev1.Container{
		Name:         name,
		Image:        spec.image,
		Ports:        ports,
		Env:          EnvVars(spec.environment),
		EnvFrom:      EnvFromSources(spec.envFrom),
		VolumeMounts: mounts,
	}, warnings
}

// volumeMounts converts positional volume entries into mounts. Mount
// names follow the VolumeName contract so they resolve against the pod
// volumes built by PodVolumes for the same owner.
func volumeMounts(owner string, volumes []string) []corev1.VolumeMount {
	var mounts []corev1.VolumeMount
	for i, vol := range volumes {
		parts := strings.SplitN(vol, ":", 2)
		if len(parts) < 2 {
			continue
		}
		mounts = append(mounts, corev1.VolumeMount{
			Name:      VolumeName(owner, i),
			MountPath: parts[1],
		})
	}
	return mounts
}

// inlineConfigMaps renders every non-external top-level config.
func (g *DeploymentGenerator) inlineConfigMaps(c *model.Compose) []*corev1.ConfigMap {
	if c == nil {
		return nil
	}
	var out []*corev1.ConfigMap
	for _, name := range sortedKeys(c.Configs) {
		cfg := c.Configs[name]
		if cfg.External {
			continue
		}
		out = append(out, &corev1.ConfigMap{
			TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
			ObjectMeta: metav1.ObjectMeta{
				Name:      ConfigMapName(name),
				Namespace: g.Namespace,
			},
			Data: cfg.Data,
		})
	}
	return out
}
