package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/eznix86/kstack/internal/cluster"
	"github.com/eznix86/kstack/internal/compose"
	"github.com/eznix86/kstack/internal/config"
	"github.com/eznix86/kstack/internal/generate"
	"github.com/eznix86/kstack/internal/model"
	"github.com/eznix86/kstack/internal/ui"
	"github.com/eznix86/kstack/internal/util"
)

// loadDescriptor parses the descriptor and runs the structural and
// referential validator. Validation-time failures mean nothing was
// changed anywhere.
func loadDescriptor(cfg *config.Config) (*model.Compose, error) {
	c, err := compose.Load(util.ExpandPath(cfg.ComposeFile))
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Invalid descriptor", err.Error(), "check "+cfg.ComposeFile))
		return nil, err
	}
	if err := compose.Validate(c, compose.ExternalConfigs(c), compose.ExternalSecrets(c)); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Validation failed", err.Error(), ""))
		return nil, err
	}
	return c, nil
}

// checkExternalResources verifies that every referenced external config
// and secret exists in the cluster, unless the check is disabled.
func checkExternalResources(ctx context.Context, cfg *config.Config, c *model.Compose) error {
	if cfg.SkipClusterCheck {
		ui.StepSkipped("cluster existence check")
		return nil
	}
	client, err := cluster.NewFromKubeconfig(util.ExpandPath(cfg.Kubeconfig))
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Cluster connection failed", err.Error(), "use --skip-cluster-check to generate offline"))
		return err
	}
	configs := compose.Intersect(compose.ExternalConfigs(c), compose.ReferencedConfigs(c))
	secrets := compose.Intersect(compose.ExternalSecrets(c), compose.ReferencedSecrets(c))
	if err := cluster.ValidateExternalResources(ctx, client, cfg.Namespace, configs, secrets); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("External resource missing", err.Error(), "create it first or remove the reference"))
		return err
	}
	ui.StepDone("cluster existence check", fmt.Sprintf("%d configs, %d secrets", len(configs), len(secrets)))
	return nil
}

func printWarnings(warnings []generate.Warning) {
	for _, w := range warnings {
		ui.Warn(w.String())
	}
}

func printBundleSummary(b *generate.Bundle) {
	fmt.Println(ui.Bold("Generated resources:"))
	for _, g := range b.ApplyOrder() {
		ui.Item(fmt.Sprintf("%s: %d", g.Kind, len(g.Objects)))
	}
}

func printExternalResources(c *model.Compose) {
	configs := compose.SortedNames(compose.ExternalConfigs(c))
	secrets := compose.SortedNames(compose.ExternalSecrets(c))
	if len(configs) == 0 && len(secrets) == 0 {
		return
	}
	fmt.Println(ui.Bold("External resources (must already exist):"))
	for _, name := range configs {
		ui.Item("ConfigMap " + name)
	}
	for _, name := range secrets {
		ui.Item("Secret " + name)
	}
}
