package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-syntrophic/internal/config"
	"github.com/goliatone/go-syntrophic/internal/logging"
	"github.com/goliatone/go-syntrophic/pkg/dispatch"
	"github.com/goliatone/go-syntrophic/pkg/renderers/tui"
)

const clientTimeout = 15 * time.Second

// app carries what the subcommands share once the root pre-run has loaded
// the environment.
type app struct {
	out     io.Writer
	cfg     config.Config
	logger  *zap.Logger
	verbose bool

	// driver overrides the survey prompts, for tests.
	driver tui.PromptDriver
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:          "syntrophic",
		Short:        "Syntrophic site server and onboarding client",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Parse()
			if err != nil {
				return err
			}
			a.cfg = cfg
			level := cfg.LogLevel
			if a.verbose {
				level = "debug"
			}
			logger, err := logging.New(level, cfg.LogDev)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newOnboardCmd(a),
		newSubscribeCmd(a),
		newWaitlistCmd(a),
	)
	return root
}

// transport posts to endpoint, or to the configured endpoint when empty.
func (a *app) transport(endpoint string) dispatch.Transport {
	if endpoint == "" {
		endpoint = a.cfg.Endpoint
	}
	return dispatch.NewHTTPTransport(endpoint, &http.Client{Timeout: clientTimeout})
}
