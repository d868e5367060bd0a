package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/tpv/internal/app"
	"github.com/MrJamesThe3rd/tpv/internal/config"
	tpvHttp "github.com/MrJamesThe3rd/tpv/internal/http"
	customerHandler "github.com/MrJamesThe3rd/tpv/internal/http/customer"
	importHandler "github.com/MrJamesThe3rd/tpv/internal/http/importcsv"
	productHandler "github.com/MrJamesThe3rd/tpv/internal/http/product"
	reportHandler "github.com/MrJamesThe3rd/tpv/internal/http/report"
	saleHandler "github.com/MrJamesThe3rd/tpv/internal/http/sale"
	sessionHandler "github.com/MrJamesThe3rd/tpv/internal/http/session"
	settingsHandler "github.com/MrJamesThe3rd/tpv/internal/http/settings"
	stockHandler "github.com/MrJamesThe3rd/tpv/internal/http/stock"
	supplierHandler "github.com/MrJamesThe3rd/tpv/internal/http/supplier"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(cfg.Logger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	router := tpvHttp.New(tpvHttp.Handlers{
		Session:   sessionHandler.NewHandler(a.Auth),
		Products:  productHandler.NewHandler(a.Store),
		Customers: customerHandler.NewHandler(a.Store),
		Suppliers: supplierHandler.NewHandler(a.Store),
		Sales:     saleHandler.NewHandler(a.Store, a.Sales, a.Reports, a.Invoices),
		Stock:     stockHandler.NewHandler(a.Stock),
		Reports:   reportHandler.NewHandler(a.Reports),
		Settings:  settingsHandler.NewHandler(a.Store),
		Import:    importHandler.NewHandler(a.Importer),
	}, tpvHttp.Options{
		Verifier:       a.Auth,
		AllowedOrigins: cfg.Server.CORSOrigins,
		Metrics:        a.Metrics.Handler(),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           http.TimeoutHandler(router, cfg.Server.Timeout, "request timed out"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "port", srv.Addr, "storage", cfg.Storage.Driver)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		slog.Info("shutting down server")

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
