package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swapScope/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve quotes over HTTP",
		RunE:  runServe,
	}

	addCommonFlags(cmd)
	cmd.Flags().String("listen", ":8080", "listen address")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, chainClient, err := buildService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer chainClient.Close()

	app := fiber.New()
	quoteHandler := server.NewQuoteHandler(logger, service)
	app.Get("/quote", quoteHandler.Handle())

	logger.Info("server start", zap.String("listen", cfg.ListenAddr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.ListenAddr)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			_ = app.Shutdown()
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	logger.Info("server stop")
	return app.ShutdownWithContext(shutdownCtx)
}
