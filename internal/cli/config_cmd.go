package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/haskel/mlpipe/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Config helpers",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		return yaml.NewEncoder(os.Stdout).Encode(cfg)
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no config file given")
		}

		if _, err := config.Load(path); err != nil {
			return err
		}

		fmt.Printf("%s is valid\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}
