package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/doccrop/farm-assist/internal/server"
	"github.com/doccrop/farm-assist/internal/storage"
	"github.com/doccrop/farm-assist/internal/translate"
	"github.com/doccrop/farm-assist/internal/weather"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the farm assistant API server",
		RunE:  runServe,
	}
	cmd.Flags().String("addr", "", "listen address (default :5000)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg := storage.Config{
		SQLitePath:      viper.GetString("database.path"),
		MongoURI:        viper.GetString("mongodb.uri"),
		MongoDB:         viper.GetString("mongodb.db"),
		MongoCollection: viper.GetString("mongodb.collection"),
		MongoNotes:      viper.GetString("mongodb.notes_collection"),
	}

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	backend := "sqlite"
	if cfg.MongoURI != "" {
		backend = "mongodb"
	}
	slog.Info("storage ready", "backend", backend)

	srv := server.New(
		store,
		weather.NewClient(viper.GetString("weather.api_key")),
		translate.NewClient(),
		viper.GetString("schemes.path"),
	)

	addr := viper.GetString("server.addr")
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down cleanly: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}
