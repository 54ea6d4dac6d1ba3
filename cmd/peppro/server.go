package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/zx0223winner/peppro/internal/api"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the resolver API server",
	Long: `Start the HTTP API server for programmatic access to the resolver.

The server provides:
- POST /api/v1/resolve to expand a sample into a pipeline command
- Registry listings under /api/v1/genomes
- The recorded run log under /api/v1/runs`,
	Example: `  peppro server
  peppro server --port 3000 --genome-config genomes.yaml`,
	RunE: runServer,
}

var (
	serverPort       int
	serverHost       string
	serverGenomes    string
	serverEnableCORS bool
)

func init() {
	serverCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Port to listen on")
	serverCmd.Flags().StringVar(&serverHost, "host", "0.0.0.0", "Host to bind to")
	serverCmd.Flags().StringVarP(&serverGenomes, "genome-config", "g", "", "Genome config file (default: from runner config)")
	serverCmd.Flags().BoolVar(&serverEnableCORS, "enable-cors", true, "Enable CORS for web access")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg, serverGenomes)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	srv, err := api.NewServer(&api.Config{
		Host:       serverHost,
		Port:       serverPort,
		EnableCORS: serverEnableCORS,
		Runner:     cfg,
		Registry:   reg,
	})
	if err != nil {
		return err
	}

	// Handle shutdown signals
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	printInfo("API server listening on %s:%d", serverHost, serverPort)

	select {
	case err := <-errCh:
		return err
	case <-done:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
