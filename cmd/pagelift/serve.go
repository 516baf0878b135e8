package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpAdapter "github.com/pagelift/pagelift/internal/adapters/http"
	"github.com/pagelift/pagelift/internal/config"
	"github.com/pagelift/pagelift/internal/logging"
	"github.com/pagelift/pagelift/pkg/adapters/memory"
	"github.com/pagelift/pagelift/pkg/adapters/redis"
	"github.com/pagelift/pagelift/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the render API server",
	Long:  `Starts the pagelift render API: clients post page fragments and the server drives transitions, exposing restoration state over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		addr, _ := cmd.Flags().GetString("addr")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if addr != "" {
			cfg.Addr = addr
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		store, err := buildStore(cfg)
		if err != nil {
			fmt.Printf("Error initializing store: %v\n", err)
			os.Exit(1)
		}

		handler := httpAdapter.NewHandler(store, logger)
		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting pagelift server", "addr", srv.Addr, "store", cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			logger.Error("server error", "err", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				_ = srv.Close()
			}
		}
	},
}

func buildStore(cfg *config.Config) (ports.PageStore, error) {
	switch cfg.Store.Backend {
	case "", "memory":
		return memory.NewStore(), nil
	case "redis":
		opts := []redis.Option{}
		if ttl := time.Duration(cfg.Store.Redis.TTL); ttl > 0 {
			opts = append(opts, redis.WithTTL(ttl))
		}
		if cfg.Store.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Store.Redis.Prefix))
		}
		return redis.New(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB, opts...), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Store.Backend)
	}
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
