package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/haskel/mlpipe/internal/dataset"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Send the held-out test rows to the live endpoint",
	Long: `Re-derive the test subset from the recorded seed and split ratios,
send its feature rows to the deployed endpoint, and print one prediction
per row alongside the actual median value.`,
	RunE: runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)
}

type predictOutput struct {
	Predictions []float64 `json:"predictions"`
	RMSE        float64   `json:"rmse"`
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	p, states, err := newPipeline(cfg, log)
	if err != nil {
		return err
	}

	run, err := lastRun(states)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	splits, err := p.ResolveSplits(ctx, run)
	if err != nil {
		return err
	}

	predictions, err := p.Predict(ctx, run, splits.Test)
	if err != nil {
		return err
	}

	rmse := dataset.RMSE(predictions, splits.Test)

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(predictOutput{
			Predictions: predictions,
			RMSE:        rmse,
		})
	}

	fmt.Printf("%-12s %-12s\n", "predicted", "actual")
	for i, pred := range predictions {
		fmt.Printf("%-12.2f %-12.2f\n", pred, splits.Test[i].Target)
	}
	fmt.Printf("\n%d predictions, test RMSE %.4f\n", len(predictions), rmse)

	return nil
}
