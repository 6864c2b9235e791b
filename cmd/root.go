package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "kstack",
	Short: "Convert compose-style app descriptors into Kubernetes resources",
	Long: `kstack translates a Docker-Compose-like descriptor (the "apps" format,
extended with sidecars) into Kubernetes Deployments, Services, Ingresses,
PersistentVolumeClaims and ConfigMaps, and can apply the result to a cluster.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: kstack.yml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("kstack")
		viper.SetConfigType("yml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("KSTACK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	}
}
