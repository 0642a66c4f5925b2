package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var teardownCmd = &cobra.Command{
	Use:   "teardown",
	Short: "Terminate the deployed inference endpoint",
	Long: `Request termination of the endpoint recorded by the last deploy.
Safe to call again after the endpoint is gone; a second teardown is a no-op.`,
	RunE: runTeardown,
}

func init() {
	rootCmd.AddCommand(teardownCmd)
}

func runTeardown(cmd *cobra.Command, args []string) error {
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

	if run.EndpointName == "" {
		fmt.Println("no endpoint to tear down")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	name := run.EndpointName
	if err := p.Teardown(ctx, run); err != nil {
		return err
	}

	fmt.Printf("endpoint %s terminated\n", name)
	return nil
}
