// Command lumend runs the token economic engine with the system clock and
// a prometheus metrics endpoint.
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmossdk.io/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/lumen-chain/lumen/config"
	"github.com/lumen-chain/lumen/engine"
	"github.com/lumen-chain/lumen/pkg/clock"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lumend",
		Short: "Lumen token economic engine",
	}
	rootCmd.AddCommand(startCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func startCmd() *cobra.Command {
	var (
		configPath  string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the engine and serve metrics until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.NewLogger(os.Stderr)

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			eng, err := engine.New(cfg, clock.NewSystemClock(), logger)
			if err != nil {
				return fmt.Errorf("build engine: %w", err)
			}
			if err := eng.Start(); err != nil {
				return fmt.Errorf("start engine: %w", err)
			}

			metricsSrv := &http.Server{
				Addr:              metricsAddr,
				Handler:           promhttp.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			go func() {
				logger.Info("metrics server listening", "addr", metricsAddr)
				if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("metrics server failed", "error", err)
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			sig := <-quit
			logger.Info("shutting down", "signal", sig.String())

			eng.Stop()
			if err := metricsSrv.Close(); err != nil {
				logger.Error("metrics server close failed", "error", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to yaml config (defaults apply when empty)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "prometheus metrics listen address")
	return cmd
}
