package config

import "github.com/spf13/viper"

// Config is the tool configuration loaded from kstack.yml and
// KSTACK_* environment variables. The compose descriptor itself is a
// separate file.
type Config struct {
	ComposeFile      string `mapstructure:"compose_file"`
	Namespace        string `mapstructure:"namespace"`
	OutputDir        string `mapstructure:"output_dir"`
	Kubeconfig       string `mapstructure:"kubeconfig"`
	SkipClusterCheck bool   `mapstructure:"skip_cluster_check"`
}

// Load builds the config from defaults overridden by viper's sources.
func Load() (*Config, error) {
	cfg := &Config{
		ComposeFile: "kstack-compose.yml",
		Namespace:   "default",
	}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
