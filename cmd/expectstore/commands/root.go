package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/expectstore/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "expectstore",
	Short: "Inspect validation artifact stores",
	Long: `expectstore is a CLI tool for inspecting the stores and validation
operators declared in an expectstore YAML configuration.

Every command binds the configuration with the library's fail-fast rules,
so a configuration that passes "expectstore validate" is one the process
will accept at startup.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "file", "f", "expectstore.yaml", "path to the configuration file")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(storesCmd)
	rootCmd.AddCommand(showCmd)
}

// bind loads and builds the configured runtime shared by all subcommands.
func bind() (*config.Runtime, error) {
	cfg, err := config.LoadFile(cfgFile)
	if err != nil {
		return nil, err
	}
	rt, err := config.Build(cfg)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", cfgFile, err)
	}
	return rt, nil
}
