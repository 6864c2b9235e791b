package cluster

import (
	"fmt"

	"k8s.io/client-go/tools/clientcmd"
)

// ContextInfo describes the kubeconfig context a command will talk to.
type ContextInfo struct {
	Context   string
	Cluster   string
	Server    string
	Namespace string
}

// CurrentContext reads the active context from the kubeconfig without
// contacting the cluster.
func CurrentContext(kubeconfig string) (*ContextInfo, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		rules.ExplicitPath = kubeconfig
	}
	raw, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).RawConfig()
	if err != nil {
		return nil, fmt.Errorf("loading kubeconfig: %w", err)
	}
	if raw.CurrentContext == "" {
		return nil, fmt.Errorf("kubeconfig has no current-context")
	}
	ctx, ok := raw.Contexts[raw.CurrentContext]
	if !ok {
		return nil, fmt.Errorf("current-context %q not found in kubeconfig", raw.CurrentContext)
	}

	info := &ContextInfo{
		Context:   raw.CurrentContext,
		Cluster:   ctx.Cluster,
		Namespace: ctx.Namespace,
	}
	if info.Namespace == "" {
		info.Namespace = "default"
	}
	if cluster, ok := raw.Clusters[ctx.Cluster]; ok {
		info.Server = cluster.Server
	}
	return info, nil
}
