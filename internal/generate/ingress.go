package generate

import (
	"fmt"
	"net/url"
	"strings"

	netv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/eznix86/kstack/internal/model"
)

// DefaultIngressClass backs every Ingress unless an expose entry
// overrides it.
const DefaultIngressClass = "traefik"

// IngressGenerator turns an app's expose entries into a single Ingress
// with one rule per usable entry.
type IngressGenerator struct {
	Namespace string
}

// Generate returns nil when expose is absent or no entry yields a rule.
// An ingressClassName in any entry overrides the class for the whole
// Ingress, last seen wins. Duplicate hosts are kept as separate rules.
func (g *IngressGenerator) Generate(name string, app model.AppSpec) (*netv1.Ingress, []Warning) {
	if len(app.Expose) == 0 {
		return nil, nil
	}

	var rules []netv1.IngressRule
	var warnings []Warning
	className := DefaultIngressClass
	pathType := netv1.PathTypePrefix

	for i, e := range app.Expose {
		field := fmt.Sprintf("expose[%d]", i)
		var host, path string
		var port int32

		switch {
		case e.URL != "":
			if !strings.HasPrefix(e.URL, "http://") && !strings.HasPrefix(e.URL, "https://") {
				warnings = append(warnings, Warning{App: name, Field: field, Message: fmt.Sprintf("%q is not an http(s) URL", e.URL)})
				continue
			}
			u, err := url.Parse(e.URL)
			if err != nil {
				warnings = append(warnings, Warning{App: name, Field: field, Message: fmt.Sprintf("unparsable URL %q", e.URL)})
				continue
			}
			host = u.Hostname()
			path = u.Path
			if path == "" {
				path = "/"
			}
			port = 80
			if u.Scheme == "https" {
				port = 443
			}

		case e.Host != "":
			if e.Options == nil {
				warnings = append(warnings, Warning{App: name, Field: field, Message: fmt.Sprintf("host %q has no settings mapping", e.Host)})
				continue
			}
			host = strings.TrimRight(e.Host, ":")
			path = e.Options.Path
			if path == "" {
				path = "/"
			}
			port = 80
			if e.Options.Port != nil {
				port = int32(*e.Options.Port)
			}
			if e.Options.IngressClassName != "" {
				className = e.Options.IngressClassName
			}

		default:
			warnings = append(warnings, Warning{App: name, Field: field, Message: "empty expose entry"})
			continue
		}

		rules = append(rules, netv1.IngressRule{
			Host: host,
			IngressRuleValue: netv1.IngressRuleValue{
				HTTP: &netv1.HTTPIngressRuleValue{
					Paths: []netv1.HTTPIngressPath{{
						Path:     path,
						PathType: &pathType,
						Backend: netv1.IngressBackend{
							Service: &netv1.IngressServiceBackend{
								Name: name,
								Port: netv1.ServiceBackendPort{Number: port},
							},
						},
					}},
				},
			},
		})
	}

	if len(rules) == 0 {
		return nil, warnings
	}

	return &netv1.Ingress{
		TypeMeta: metav1.TypeMeta{APIVersion: "networking.k8s.io/v1", Kind: "Ingress"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: g.Namespace,
		},
		Spec: netv1.IngressSpec{
			IngressClassName: &className,
			Rules:            rules,
		},
	}, warnings
}
