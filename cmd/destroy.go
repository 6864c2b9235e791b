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

var destroyForce bool

var destroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Delete the resources a descriptor generates",
	Long: `Regenerate the bundle from the descriptor and delete every resource it
contains, in reverse dependency order. Resources already absent are
skipped.`,
	RunE: runDestroy,
}

func init() {
	rootCmd.AddCommand(destroyCmd)
	addPipelineFlags(destroyCmd)
	destroyCmd.Flags().BoolVar(&destroyForce, "force", false, "delete without confirmation")
}

func runDestroy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	c, err := loadDescriptor(cfg)
	if err != nil {
		return err
	}

	bundle, warnings := generate.New(cfg.Namespace).Generate(c)
	printWarnings(warnings)
	printBundleSummary(bundle)

	if !destroyForce {
		fmt.Print("Delete these resources? [y/N] ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	client, err := cluster.NewFromKubeconfig(util.ExpandPath(cfg.Kubeconfig))
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Cluster connection failed", err.Error(), ""))
		return err
	}

	manager := reconcile.NewManager(client, cfg.Namespace)
	if err := manager.Delete(cmd.Context(), bundle); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Destroy failed", err.Error(),
			"resources deleted before the failure stay deleted"))
		return err
	}

	ui.Success(fmt.Sprintf("Deleted resources from namespace %q", cfg.Namespace))
	return nil
}
