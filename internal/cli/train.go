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

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Prepare data, upload it and run the training job",
	Long: `Fetch and split the dataset, write the train and validation CSVs,
upload them to the configured object store, submit the training job and
block until it finishes. The resulting artifact locator is recorded so
"mlpipe deploy" can pick it up.`,
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
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

	run := p.NewRun()

	if _, err := p.Prepare(ctx, run); err != nil {
		return err
	}

	if err := p.Upload(ctx, run); err != nil {
		return err
	}

	if err := p.Train(ctx, run); err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(run)
	}

	fmt.Printf("training job %s complete\n", run.JobName)
	fmt.Printf("  artifact: %s\n", run.ArtifactURI)
	return nil
}
