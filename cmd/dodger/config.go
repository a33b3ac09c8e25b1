package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-dodger/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration a game would use, after the search order
--config -> ~/.dodger/configs/dodger.yaml -> ./configs/dodger.yaml ->
built-in defaults.

Examples:
  dodger config > ~/.dodger/configs/dodger.yaml
  dodger config --defaults`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults file")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults {
		os.Stdout.Write(config.GetDefaultYAML("dodger"))
		return
	}

	cfg, err := config.LoadDodger(flagConfig)
	if err != nil {
		fatal("%v", err)
	}
	data, err := config.MarshalDodger(cfg)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Print(string(data))
}
