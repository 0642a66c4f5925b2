package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/haskel/mlpipe/internal/devserver"
)

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run the local platform emulator",
	Long: `Serve the platform API locally: training jobs fit a small regressor
on the uploaded CSVs, endpoints serve predictions from the stored artifact.
Point platform.base_url at it (the default already does) and the whole
pipeline runs without cloud credentials.`,
	RunE: runDevserver,
}

func init() {
	rootCmd.AddCommand(devserverCmd)
}

func runDevserver(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	srv := devserver.New(cfg.DevServer, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
