package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/freshko/app/store"
	"github.com/shashiranjanraj/freshko/config"
	"github.com/shashiranjanraj/freshko/database/seeders"
	"github.com/shashiranjanraj/freshko/pkg/bus"
	"github.com/shashiranjanraj/freshko/pkg/logger"
	"github.com/shashiranjanraj/freshko/pkg/metrics"
	"github.com/shashiranjanraj/freshko/pkg/migrate"
)

// freshko serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ops endpoint (health, metrics) over a booted store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		facade, engine, fallback, err := boot(ctx)
		if err != nil {
			return err
		}

		events := bus.New()

		// Run the one-time legacy copy before anything reads.
		if !facade.Degraded() {
			c := migrate.New(engine, fallback, events)
			if c.NeedsMigration(ctx) {
				if _, err := c.Run(ctx); err != nil {
					logger.Warn("serve: migration incomplete", "error", err)
				}
			}
		}

		if err := seeders.RunAll(ctx, facade); err != nil {
			return err
		}

		s := store.New(facade, events)
		s.Hydrate(ctx)

		r := chi.NewRouter()
		r.Use(middleware.Recoverer)
		r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
			status := "ok"
			if facade.Degraded() {
				status = "degraded"
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"status":%q}`+"\n", status)
		})
		r.Get("/metrics", metrics.Handler())

		srv := &http.Server{
			Addr:              ":" + config.OpsPort(),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		logger.Info("serve: ops endpoint listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}
