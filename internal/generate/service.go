package generate

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/eznix86/kstack/internal/model"
)

// ServiceGenerator builds up to three tiers of services per app plus
// per-sidecar services.
//
// Known limitation: sidecar services select on app + component labels,
// but all containers share one pod template labeled component=main, so
// a sidecar selector matches no pod. Fixing it needs sidecars split
// into their own Deployments; the descriptor format does not decide
// that yet, so the selectors are emitted as declared.
type ServiceGenerator struct {
	Namespace string
}

// NeedsService reports whether an app warrants any Service at all.
func (g *ServiceGenerator) NeedsService(app model.AppSpec) bool {
	return len(app.Ports) > 0 || len(app.Expose) > 0
}

// Generate builds the services for an app:
//
//  1. default ClusterIP (app name), first converted port only
//  2. "{app}-lb" LoadBalancer, second converted port only, when two or
//     more ports are declared
//  3. "{app}-ingress" ClusterIP with a fixed 80:80 port when expose is set
//  4. per-sidecar ClusterIP with all converted ports, plus a LoadBalancer
//     variant when any raw entry publishes externally
func (g *ServiceGenerator) Generate(name string, app model.AppSpec) ([]*corev1.Service, []Warning) {
	var services []*corev1.Service
	var warnings []Warning

	mainLabels := map[string]string{"app": name, "component": "main"}

	converted, w := ServicePorts(app.Ports)
	warnings = append(warnings, tagWarnings(name, w)...)

	if len(app.Ports) > 0 {
		if len(converted) == 0 {
			warnings = append(warnings, Warning{App: name, Field: "ports", Message: "no usable service port, default service skipped"})
		} else {
			first := converted[0]
			first.Name = "default"
			services = append(services, g.service(name, mainLabels, corev1.ServiceTypeClusterIP, []corev1.ServicePort{first}))
		}
	}

	for _, scName := range sortedKeys(app.Sidecars) {
		sc := app.Sidecars[scName]
		if len(sc.Ports) == 0 {
			continue
		}
		scServices, w := g.sidecarServices(name, scName, sc)
		warnings = append(warnings, w...)
		services = append(services, scServices...)
	}

	if len(app.Ports) > 1 {
		if len(converted) < 2 {
			warnings = append(warnings, Warning{App: name, Field: "ports", Message: "no usable second service port, lb service skipped"})
		} else {
			second := converted[1]
			second.Name = "lb-https"
			services = append(services, g.service(LBName(name), mainLabels, corev1.ServiceTypeLoadBalancer, []corev1.ServicePort{second}))
		}
	}

	if len(app.Expose) > 0 {
		services = append(services, g.service(IngressServiceName(name), mainLabels, corev1.ServiceTypeClusterIP, []corev1.ServicePort{{
			Name:       "ingress-http",
			Port:       80,
			TargetPort: intstr.FromInt32(80),
			Protocol:   corev1.ProtocolTCP,
		}}))
	}

	return services, warnings
}

func (g *ServiceGenerator) sidecarServices(appName, scName string, sc model.SidecarSpec) ([]*corev1.Service, []Warning) {
	serviceName := SidecarName(appName, scName)
	labels := map[string]string{"app": appName, "component": "sidecar-" + scName}

	converted, warnings := ServicePorts(sc.Ports)
	warnings = tagWarnings(serviceName, warnings)
	if len(converted) == 0 {
		return nil, warnings
	}

	ports := make([]corev1.ServicePort, len(converted))
	for i, p := range converted {
		p.Name = fmt.Sprintf("port-%d", i)
		ports[i] = p
	}
	services := []*corev1.Service{g.service(serviceName, labels, corev1.ServiceTypeClusterIP, ports)}

	external := false
	for _, e := range sc.Ports {
		if isExternalPort(e) {
			external = true
			break
		}
	}
	if external {
		lbPorts := make([]corev1.ServicePort, len(converted))
		for i, p := range converted {
			p.Name = fmt.Sprintf("lb-port-%d", i)
			lbPorts[i] = p
		}
		services = append(services, g.service(LBName(serviceName), labels, corev1.ServiceTypeLoadBalancer, lbPorts))
	}

	return services, warnings
}

func (g *ServiceGenerator) service(name string, labels map[string]string, svcType corev1.ServiceType, ports []corev1.ServicePort) *corev1.Service {
	selector := make(map[string]string, len(labels))
	for k, v := range labels {
		selector[k] = v
	}
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: g.Namespace,
			Labels:    labels,
		},
		Spec: corev1.ServiceSpec{
			Type:     svcType,
			Ports:    ports,
			Selector: selector,
		},
	}
}
