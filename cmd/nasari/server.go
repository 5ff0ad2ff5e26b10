package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyperjump/nasari/internal/lookup"
	"github.com/hyperjump/nasari/internal/server"
	"github.com/hyperjump/nasari/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServerCmd(opts *rootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Load the data files and start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(opts, port)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")
	return cmd
}

func runServer(opts *rootOptions, port int) error {
	cfg, resolvedConfigPath, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	debugMode := cfg.Debug || opts.debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	// Both tables must load before the listener opens.
	engine, err := lookup.Load(context.Background(), &cfg.Data, &cfg.Similarity, logger)
	if err != nil {
		logger.Fatal("Failed to load data", zap.Error(err))
	}

	srv := server.NewServer(engine, cfg, logger, version)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
		return nil
	case <-sigChan:
	}

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}
