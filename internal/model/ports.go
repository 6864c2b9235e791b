package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PortEntry is one element of a ports list. The descriptor accepts
// several shapes:
//
//	"8080:80"                          compact string, optionally "/udp"
//	"http://example.com:8080"          URL string (scheme implies a port)
//	{published: 8080, target: 80}      structured form
//	{port: 80, protocol: http}         legacy structured form
//	{example.com: {port: 80}}          domain-keyed form
//
// A scalar lands in String; any mapping lands in Mapping. Shapes that
// match none of the above are kept as-is and reported as warnings by the
// generators instead of aborting the parse.
type PortEntry struct {
	String  string
	Mapping *PortMapping
}

// PortMapping is the decoded mapping form of a PortEntry. Legacy and
// domain-keyed fields may coexist in one entry; the generators handle
// each independently.
type PortMapping struct {
	Port      *int
	Published *int
	Target    *int
	Protocol  string
	Domain    *DomainPort
}

// DomainPort is the domain-keyed port form: the first mapping value
// under a non-reserved key that itself carries a port.
type DomainPort struct {
	Host     string
	Port     int
	Protocol string
}

// UnmarshalYAML accepts both the scalar and mapping shapes.
func (p *PortEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		p.String = node.Value
		return nil
	case yaml.MappingNode:
		m := &PortMapping{}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			val := node.Content[i+1]
			switch key.Value {
			case "port":
				var v int
				if err := val.Decode(&v); err != nil {
					return fmt.Errorf("ports: port: %w", err)
				}
				m.Port = &v
			case "published":
				var v int
				if err := val.Decode(&v); err != nil {
					return fmt.Errorf("ports: published: %w", err)
				}
				m.Published = &v
			case "target":
				var v int
				if err := val.Decode(&v); err != nil {
					return fmt.Errorf("ports: target: %w", err)
				}
				m.Target = &v
			case "protocol":
				m.Protocol = val.Value
			default:
				// Domain-keyed form; the first domain carrying a port wins.
				if m.Domain != nil || val.Kind != yaml.MappingNode {
					continue
				}
				var dp struct {
					Port     *int   `yaml:"port"`
					Protocol string `yaml:"protocol"`
				}
				if err := val.Decode(&dp); err != nil || dp.Port == nil {
					continue
				}
				m.Domain = &DomainPort{Host: key.Value, Port: *dp.Port, Protocol: dp.Protocol}
			}
		}
		p.Mapping = m
		return nil
	default:
		return fmt.Errorf("ports: unsupported YAML node kind %d", node.Kind)
	}
}

// ExposeEntry is one element of an expose list: either a URL string or a
// single-key mapping from host to its options.
type ExposeEntry struct {
	URL     string
	Host    string
	Options *ExposeOptions
}

// ExposeOptions configure one exposed host.
type ExposeOptions struct {
	Port             *int   `yaml:"port"`
	Protocol         string `yaml:"protocol"`
	Path             string `yaml:"path"`
	IngressClassName string `yaml:"ingressClassName"`
}

// UnmarshalYAML accepts the URL string and host-mapping shapes. A
// mapping whose value is not itself a mapping is kept with nil Options
// so the ingress generator can warn about it.
func (e *ExposeEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		e.URL = node.Value
		return nil
	case yaml.MappingNode:
		if len(node.Content) < 2 {
			return nil
		}
		key := node.Content[0]
		val := node.Content[1]
		e.Host = key.Value
		if val.Kind != yaml.MappingNode {
			return nil
		}
		opts := &ExposeOptions{}
		if err := val.Decode(opts); err != nil {
			return fmt.Errorf("expose %q: %w", key.Value, err)
		}
		e.Options = opts
		return nil
	default:
		return fmt.Errorf("expose: unsupported YAML node kind %d", node.Kind)
	}
}
