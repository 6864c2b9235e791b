package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eznix86/kstack/internal/cluster"
	"github.com/eznix86/kstack/internal/ui"
	"github.com/eznix86/kstack/internal/util"
)

var contextKubeconfig string

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Show the current Kubernetes context",
	RunE:  runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.Flags().StringVar(&contextKubeconfig, "kubeconfig", "", "path to kubeconfig (default: standard loading rules)")
}

func runContext(cmd *cobra.Command, args []string) error {
	info, err := cluster.CurrentContext(util.ExpandPath(contextKubeconfig))
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("No Kubernetes context", err.Error(),
			"set KUBECONFIG or ensure ~/.kube/config exists"))
		return err
	}

	fmt.Println(ui.Bold("Current context:"))
	ui.Item("context:   " + info.Context)
	ui.Item("cluster:   " + info.Cluster)
	ui.Item("server:    " + info.Server)
	ui.Item("namespace: " + info.Namespace)
	return nil
}
