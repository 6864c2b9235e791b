package cmd

import (
	"github.com/spf13/cobra"

	"github.com/eznix86/kstack/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a descriptor without generating anything",
	Long: `Check the descriptor structurally and referentially, and confirm that
referenced external resources exist in the cluster (unless skipped).`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addPipelineFlags(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
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

	printExternalResources(c)
	ui.Success("Descriptor is valid")
	return nil
}
