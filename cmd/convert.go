package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eznix86/kstack/internal/config"
	"github.com/eznix86/kstack/internal/generate"
	"github.com/eznix86/kstack/internal/ui"
)

var (
	composeFile      string
	outputDir        string
	namespace        string
	skipClusterCheck bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a descriptor into Kubernetes manifests",
	Long: `Parse and validate the descriptor, then generate the Kubernetes
resource bundle. With --output-dir, one multi-document YAML file is
written per resource kind.`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	addPipelineFlags(convertCmd)
	convertCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for the generated YAML files")
}

// addPipelineFlags registers the flags shared by every command that
// runs the parse-validate-generate pipeline.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&composeFile, "file", "f", "", "descriptor file (default: kstack-compose.yml)")
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "target Kubernetes namespace (default: default)")
	cmd.Flags().BoolVar(&skipClusterCheck, "skip-cluster-check", false, "skip checks against the live cluster")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), ""))
		return nil, err
	}
	if composeFile != "" {
		cfg.ComposeFile = composeFile
	}
	if namespace != "" {
		cfg.Namespace = namespace
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if skipClusterCheck {
		cfg.SkipClusterCheck = true
	}
	return cfg, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
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

	if cfg.OutputDir != "" {
		if err := bundle.WriteFiles(cfg.OutputDir); err != nil {
			fmt.Fprint(os.Stderr, ui.FormatError("Failed to write manifests", err.Error(), ""))
			return err
		}
	}

	printBundleSummary(bundle)
	printExternalResources(c)
	if cfg.OutputDir != "" {
		ui.Success(fmt.Sprintf("Wrote manifests to %s", cfg.OutputDir))
	}
	return nil
}
