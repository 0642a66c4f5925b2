package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/haskel/mlpipe/internal/cli/tui"
	"github.com/haskel/mlpipe/internal/state"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live dashboard for the last run's job and endpoint",
	Long: `Open a terminal dashboard that polls the platform for the recorded
training job and endpoint, streaming the job's log lines as they appear.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 2*time.Second, "refresh interval")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	states := state.New(cfg.Local.StateDir)
	run, err := lastRun(states)
	if err != nil {
		return err
	}

	return tui.Run(tui.Config{
		BaseURL:         cfg.Platform.BaseURL,
		Token:           cfg.Platform.Token,
		JobName:         run.JobName,
		EndpointName:    run.EndpointName,
		RefreshInterval: watchInterval,
	})
}
