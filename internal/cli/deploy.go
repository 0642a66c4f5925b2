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

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the last trained artifact behind an inference endpoint",
	Long: `Provision an inference endpoint from the artifact produced by the most
recent "mlpipe train" and block until it is in service.

The endpoint keeps running (and billing) until "mlpipe teardown" is called.`,
	RunE: runDeploy,
}

func init() {
	rootCmd.AddCommand(deployCmd)
}

func runDeploy(cmd *cobra.Command, args []string) error {
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

	if err := p.Deploy(ctx, run); err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(run)
	}

	fmt.Printf("endpoint %s in service\n", run.EndpointName)
	fmt.Println("remember: the endpoint bills until \"mlpipe teardown\" is run")
	return nil
}
