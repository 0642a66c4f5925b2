package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/haskel/mlpipe/internal/platform"
	"github.com/haskel/mlpipe/internal/state"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last run and its remote resources",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusOutput struct {
	Run      *state.Run            `json:"run"`
	Job      *platform.TrainingJob `json:"job,omitempty"`
	Endpoint *platform.Endpoint    `json:"endpoint,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	states := state.New(cfg.Local.StateDir)
	run, err := lastRun(states)
	if err != nil {
		return err
	}

	client := newPlatformClient(cfg)
	ctx := context.Background()

	out := statusOutput{Run: run}

	if run.JobName != "" {
		if job, err := client.GetTrainingJob(ctx, run.JobName); err == nil {
			out.Job = job
		}
	}

	if run.EndpointName != "" {
		if ep, err := client.GetEndpoint(ctx, run.EndpointName); err == nil {
			out.Endpoint = ep
		}
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	fmt.Printf("run %s (created %s)\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  dataset:  %s\n", run.DatasetURL)
	fmt.Printf("  split:    test %.2f / validation %.2f, seed %d\n", run.TestRatio, run.ValidationRatio, run.Seed)

	if run.TrainURI != "" {
		fmt.Printf("  uploaded: %s\n", run.TrainURI)
		fmt.Printf("            %s\n", run.ValidationURI)
	}

	if out.Job != nil {
		fmt.Printf("  job:      %s (%s)\n", out.Job.Name, out.Job.State)
		if out.Job.ArtifactURI != "" {
			fmt.Printf("  artifact: %s\n", out.Job.ArtifactURI)
		}
		if out.Job.FailureReason != "" {
			fmt.Printf("  failure:  %s\n", out.Job.FailureReason)
		}
	} else if run.JobName != "" {
		fmt.Printf("  job:      %s (unreachable)\n", run.JobName)
	}

	if out.Endpoint != nil {
		fmt.Printf("  endpoint: %s (%s)\n", out.Endpoint.Name, out.Endpoint.State)
	} else if run.EndpointName != "" {
		fmt.Printf("  endpoint: %s (unreachable)\n", run.EndpointName)
	} else {
		fmt.Println("  endpoint: none")
	}

	return nil
}
