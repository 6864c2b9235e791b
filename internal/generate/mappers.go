package generate

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/eznix86/kstack/internal/model"
)

// ContainerPorts converts a ports list into container ports. URL-form
// strings imply a port from their scheme when none is present; for
// plain strings the last colon-delimited segment (protocol stripped) is
// the container port. Mapping entries contribute their domain-keyed
// and/or legacy {port, protocol} ports.
func ContainerPorts(entries []model.PortEntry) ([]corev1.ContainerPort, []Warning) {
	var ports []corev1.ContainerPort
	var warnings []Warning

	for i, e := range entries {
		field := fmt.Sprintf("ports[%d]", i)
		switch {
		case e.String != "":
			s := e.String
			if strings.HasPrefix(s, "http") {
				u, err := url.Parse(s)
				if err != nil {
					warnings = append(warnings, Warning{Field: field, Message: fmt.Sprintf("unparsable URL %q", e.String)})
					continue
				}
				if p := u.Port(); p != "" {
					s = p
				} else if u.Scheme == "https" {
					s = "443"
				} else {
					s = "80"
				}
			}
			seg := s[strings.LastIndex(s, ":")+1:]
			seg, _, _ = strings.Cut(seg, "/")
			n, err := strconv.Atoi(seg)
			if err != nil {
				warnings = append(warnings, Warning{Field: field, Message: fmt.Sprintf("container port %q is not a number", seg)})
				continue
			}
			ports = append(ports, corev1.ContainerPort{ContainerPort: int32(n), Protocol: corev1.ProtocolTCP})

		case e.Mapping != nil:
			m := e.Mapping
			matched := false
			if m.Domain != nil {
				ports = append(ports, corev1.ContainerPort{
					ContainerPort: int32(m.Domain.Port),
					Protocol:      protocolOrTCP(m.Domain.Protocol),
				})
				matched = true
			}
			if m.Port != nil {
				ports = append(ports, corev1.ContainerPort{
					ContainerPort: int32(*m.Port),
					Protocol:      protocolOrTCP(m.Protocol),
				})
				matched = true
			}
			// published/target entries are service-port shapes; they
			// contribute no container port but are not malformed.
			if !matched && m.Published == nil && m.Target == nil {
				warnings = append(warnings, Warning{Field: field, Message: "no usable container port in mapping entry"})
			}

		default:
			warnings = append(warnings, Warning{Field: field, Message: "empty port entry"})
		}
	}
	return ports, warnings
}

// ServicePorts converts a ports list into service ports. Strings yield
// published:target from their first two segments; mapping entries
// default both published and target to 80. Each port is named after its
// published port.
func ServicePorts(entries []model.PortEntry) ([]corev1.ServicePort, []Warning) {
	var ports []corev1.ServicePort
	var warnings []Warning

	for i, e := range entries {
		field := fmt.Sprintf("ports[%d]", i)
		switch {
		case e.String != "":
			parts := strings.Split(e.String, ":")
			if len(parts) < 2 {
				warnings = append(warnings, Warning{Field: field, Message: fmt.Sprintf("%q has no published:target mapping", e.String)})
				continue
			}
			target, _, _ := strings.Cut(parts[1], "/")
			published, err := strconv.Atoi(parts[0])
			if err != nil {
				warnings = append(warnings, Warning{Field: field, Message: fmt.Sprintf("published port %q is not a number", parts[0])})
				continue
			}
			targetPort, err := strconv.Atoi(target)
			if err != nil {
				warnings = append(warnings, Warning{Field: field, Message: fmt.Sprintf("target port %q is not a number", target)})
				continue
			}
			ports = append(ports, corev1.ServicePort{
				Name:       fmt.Sprintf("port-%d", published),
				Port:       int32(published),
				TargetPort: intstr.FromInt32(int32(targetPort)),
				Protocol:   corev1.ProtocolTCP,
			})

		case e.Mapping != nil:
			m := e.Mapping
			published := 80
			if m.Published != nil {
				published = *m.Published
			}
			target := 80
			if m.Target != nil {
				target = *m.Target
			}
			proto := "tcp"
			if m.Protocol != "" {
				proto = m.Protocol
			}
			ports = append(ports, corev1.ServicePort{
				Name:       fmt.Sprintf("port-%d", published),
				Port:       int32(published),
				TargetPort: intstr.FromInt32(int32(target)),
				Protocol:   corev1.Protocol(strings.ToUpper(proto)),
			})

		default:
			warnings = append(warnings, Warning{Field: field, Message: "empty port entry"})
		}
	}
	return ports, warnings
}

// EnvVars converts an environment mapping into env vars, sorted by name
// for stable manifests.
func EnvVars(env map[string]string) []corev1.EnvVar {
	if len(env) == 0 {
		return nil
	}
	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]corev1.EnvVar, 0, len(names))
	for _, name := range names {
		out = append(out, corev1.EnvVar{Name: name, Value: env[name]})
	}
	return out
}

// EnvFromSources converts envFrom entries into configMapRef/secretRef
// sources.
func EnvFromSources(entries []model.EnvFromEntry) []corev1.EnvFromSource {
	var out []corev1.EnvFromSource
	for _, e := range entries {
		switch {
		case e.Config != nil:
			out = append(out, corev1.EnvFromSource{
				ConfigMapRef: &corev1.ConfigMapEnvSource{
					LocalObjectReference: corev1.LocalObjectReference{Name: e.Config.Name},
				},
			})
		case e.Secret != nil:
			out = append(out, corev1.EnvFromSource{
				SecretRef: &corev1.SecretEnvSource{
					LocalObjectReference: corev1.LocalObjectReference{Name: e.Secret.Name},
				},
			})
		}
	}
	return out
}

// isExternalPort reports whether a raw port entry publishes a port
// externally: a string with a published:target mapping, or a mapping
// with a non-zero published port.
func isExternalPort(e model.PortEntry) bool {
	if e.String != "" {
		return strings.Contains(e.String, ":")
	}
	if e.Mapping != nil {
		return e.Mapping.Published != nil && *e.Mapping.Published != 0
	}
	return false
}

func protocolOrTCP(proto string) corev1.Protocol {
	if proto == "" {
		return corev1.ProtocolTCP
	}
	return corev1.Protocol(strings.ToUpper(proto))
}
