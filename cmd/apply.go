package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eznix86/kstack/internal/cluster"
	"github.com/eznix86/kstack/internal/generate"
	"github.com/eznix86/kstack/internal/reconcile"
	"github.com/eznix86/kstack/internal/ui"
	"github.com/eznix86/kstack/internal/util"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Generate manifests and apply them to the cluster",
	Long: `Run the full pipeline and reconcile the generated bundle against the
cluster: existing resources are patched, missing ones created. With
--skip-cluster-check only the conversion runs.`,
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	addPipelineFlags(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	c, err := loadDescriptor(cfg)
	if err != nil {
		return err
	}
	if err := checkExternalResources(cmd.Context(), cfg, c); err != nil {
		return err
	}

	bundle, warnings := generate.New(cfg.Namespace).Generate(c)
	printWarnings(warnings)
	printBundleSummary(bundle)

	if cfg.SkipClusterCheck {
		ui.StepSkipped("apply")
		return nil
	}

	client, err := cluster.NewFromKubeconfig(util.ExpandPath(cfg.Kubeconfig))
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Cluster connection failed", err.Error(), ""))
		return err
	}

	manager := reconcile.NewManager(client, cfg.Namespace)
	summary, err := manager.Apply(cmd.Context(), bundle)
	printApplySummary(summary)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Apply failed", err.Error(),
			"resources listed above were already applied and remain in place"))
		return err
	}

	ui.Success(fmt.Sprintf("Applied resources to namespace %q", cfg.Namespace))
	return nil
}

func printApplySummary(summary *reconcile.Summary) {
	for _, r := range summary.Results {
		switch r.Outcome {
		case reconcile.OutcomeFailed:
			ui.ValidationErr(fmt.Sprintf("%s/%s", r.Kind, r.Name), r.Err.Error(), "")
		default:
			ui.ValidationOK(fmt.Sprintf("%s/%s", r.Kind, r.Name), string(r.Outcome))
		}
	}
}
