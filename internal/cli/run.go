package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the full pipeline end to end",
	Long: `Run the whole sequence: fetch and split the dataset, upload the train
and validation CSVs, launch the training job, deploy the artifact behind an
endpoint, predict the held-out test rows, and tear the endpoint down.

The endpoint is scoped to this command: it is terminated on every exit
path, including failures and Ctrl-C.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	p, _, err := newPipeline(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	fmt.Printf("run %s complete\n", result.Run.ID)
	fmt.Printf("  split:       %d train / %d validation / %d test\n",
		result.TrainSize, result.ValidationSize, result.TestSize)
	fmt.Printf("  job:         %s\n", result.Run.JobName)
	fmt.Printf("  artifact:    %s\n", result.Run.ArtifactURI)
	fmt.Printf("  predictions: %d\n", len(result.Predictions))
	fmt.Printf("  test RMSE:   %.4f\n", result.RMSE)

	return nil
}
