package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eznix86/kstack/internal/ui"
	"github.com/eznix86/kstack/internal/wizard"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a kstack-compose.yml descriptor interactively",
	Long: `Scan the working directory for existing compose files and a kubeconfig,
then scaffold a starter app descriptor through an interactive wizard.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	descriptorPath := "kstack-compose.yml"

	if _, err := os.Stat(descriptorPath); err == nil {
		fmt.Printf("%s already exists.\n", descriptorPath)
		fmt.Print("Overwrite? [y/N] ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	fmt.Println(ui.Bold("Scanning environment..."))
	detection := wizard.Detect(nil)

	answers, err := wizard.Run(detection)
	if err != nil {
		return fmt.Errorf("wizard: %w", err)
	}

	content, err := wizard.GenerateDescriptor(*answers)
	if err != nil {
		return fmt.Errorf("generating descriptor: %w", err)
	}

	if err := os.WriteFile(descriptorPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing descriptor: %w", err)
	}

	ui.Success(fmt.Sprintf("Created %s", descriptorPath))
	fmt.Println()
	fmt.Printf("Next step: %s\n", ui.Bold("kstack validate"))
	fmt.Printf("           %s\n", ui.Hint("then kstack apply to deploy the stack"))

	return nil
}
