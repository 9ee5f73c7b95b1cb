// motionmockd - mock Motion SDK data services for client conformance
// testing.
//
// Runs the five SDK data services (preview, sensor, raw, configurable,
// console) plus the diagnostic error-injection service, each on its own
// canonical port. With a positional command, runs that command to
// completion against the live services and exits with its return code;
// without one, serves until interrupted.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mocapkit/motionmock/pkg/config"
	"github.com/mocapkit/motionmock/pkg/harness"
	"github.com/mocapkit/motionmock/pkg/logging"
	"github.com/mocapkit/motionmock/pkg/service"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configFile string
		host       string
		logLevel   string
		logFormat  string
		seed       int64
	)

	exitCode := 0

	rootCmd := &cobra.Command{
		Use:   "motionmockd [command...]",
		Short: "Mock Motion SDK data services for client testing",
		Long: `motionmockd emulates the Motion SDK data services on their canonical
ports so a client implementation can be exercised without capture
hardware. Outbound frames are duplicated and fragmented at random to
stress the client's stream reassembly.

The ports match the ones the real service deploys with, so running this
harness conflicts with installed software by design.`,
		Example: `  # Serve until interrupted
  motionmockd

  # Run a client test binary against the services, propagate its exit code
  motionmockd ./test_client

  # Reproducible fragmentation
  motionmockd --seed 42 ./test_client`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configFile != "" {
				loaded, err := config.LoadFromFile(configFile)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			// Flags override the file.
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}

			code, err := serve(cmd.Context(), cfg, args)
			exitCode = code
			return err
		},
	}

	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to YAML config file")
	rootCmd.Flags().StringVar(&host, "host", config.DefaultHost, "Bind address for the service listeners")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Jitter RNG seed (0 = derive from clock)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "motionmockd:", err)
		if exitCode <= 0 {
			exitCode = 1
		}
	}
	return exitCode
}

// serve starts the server set, optionally runs argv to completion, and
// tears everything down. The returned code is the subprocess's exit
// code, or 0 in standalone mode.
func serve(ctx context.Context, cfg config.Config, argv []string) (int, error) {
	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
	})

	set := harness.New(harness.Config{
		Host:         cfg.Host,
		Seed:         cfg.Seed,
		Session:      service.SessionConfig{Samples: cfg.SamplesPerSession},
		ChunkDelay:   cfg.ChunkDelay(),
		SamplePeriod: cfg.SamplePeriod(),
		Logger:       logger,
	})
	if err := set.Start(); err != nil {
		return 1, err
	}
	defer set.Stop()

	if len(argv) > 0 {
		return harness.RunCommand(ctx, argv)
	}

	// Standalone mode: poll worker liveness until interrupted.
	for !set.Join(time.Second) {
		if ctx.Err() != nil {
			logger.Info("interrupted, shutting down")
			break
		}
	}
	return 0, nil
}
