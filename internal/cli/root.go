package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	jsonOut bool
	verbose bool

	// Version info (set from main)
	Version = "0.1.0"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mlpipe",
	Short: "Train, deploy and query a housing-price model on a managed ML platform",
	Long: `Mlpipe drives the classic tabular regression workflow against a managed
ML platform: fetch the Boston Housing dataset, split it, upload the training
CSVs to object storage, launch an XGBoost training job, deploy the trained
artifact behind an inference endpoint, and send the held-out rows to it.

Run "mlpipe devserver" to emulate the platform locally and exercise the
whole pipeline without cloud credentials.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	Version = v
	rootCmd.Version = v
}
