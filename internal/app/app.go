// Package app wires the store and the services on top of it from the
// configuration. Every front end (API, terminal, admin CLI) starts here.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/tpv/internal/auth"
	"github.com/MrJamesThe3rd/tpv/internal/config"
	"github.com/MrJamesThe3rd/tpv/internal/importer"
	"github.com/MrJamesThe3rd/tpv/internal/invoice"
	"github.com/MrJamesThe3rd/tpv/internal/metrics"
	"github.com/MrJamesThe3rd/tpv/internal/persistence"
	"github.com/MrJamesThe3rd/tpv/internal/persistence/slots"
	"github.com/MrJamesThe3rd/tpv/internal/report"
	"github.com/MrJamesThe3rd/tpv/internal/sale"
	"github.com/MrJamesThe3rd/tpv/internal/stock"
	"github.com/MrJamesThe3rd/tpv/internal/store"
)

type App struct {
	Config   *config.Config
	Adapter  *persistence.Adapter
	Store    *store.Store
	Sales    *sale.Service
	Stock    *stock.Service
	Reports  *report.Service
	Invoices *invoice.Service
	Importer *importer.Service
	Auth     *auth.Service
	Metrics  *metrics.Metrics

	slot slots.Slot
}

type options struct {
	now  func() time.Time
	auth []auth.Option
}

type Option func(*options)

// WithClock sets the clock of the store and of the sample dataset.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func WithAuthOptions(opts ...auth.Option) Option {
	return func(o *options) {
		o.auth = append(o.auth, opts...)
	}
}

// New opens the configured slot and builds the App on top of it.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	slot, err := slots.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s slot: %w", cfg.Storage.Driver, err)
	}

	a, err := Build(ctx, cfg, slot, opts...)
	if err != nil {
		_ = slot.Close()
		return nil, err
	}

	return a, nil
}

// Build wires the App over an already open slot. The App owns the slot from
// here on and closes it in Close.
func Build(ctx context.Context, cfg *config.Config, slot slots.Slot, opts ...Option) (*App, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	m := metrics.New()
	adapter := persistence.NewAdapter(slot, cfg.Storage.Key, persistence.WithClock(o.now))

	storeOpts := []store.Option{
		store.WithClock(o.now),
		store.WithGeneralCustomer(cfg.Shop.GeneralCustomerID),
	}

	st, err := store.New(ctx, m.Persister(adapter), storeOpts...)
	if err != nil {
		return nil, err
	}

	authSvc, err := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL, auth.Passwords{
		Admin:  cfg.Auth.AdminPassword,
		Seller: cfg.Auth.SellerPassword,
		User:   cfg.Auth.UserPassword,
	}, o.auth...)
	if err != nil {
		return nil, fmt.Errorf("building auth: %w", err)
	}

	stockSvc := stock.NewService(st,
		stock.WithThreshold(cfg.Shop.LowStockThreshold),
		stock.WithObserver(m.ObserveAdjustment),
	)

	return &App{
		Config:  cfg,
		Adapter: adapter,
		Store:   st,
		Sales: sale.NewService(st,
			sale.WithDefaultCustomer(cfg.Shop.GeneralCustomerID),
			sale.WithObserver(m.ObserveSale),
		),
		Stock:    stockSvc,
		Reports:  report.NewService(st, report.WithLowStock(stockSvc.IsLow)),
		Invoices: invoice.NewService(st),
		Importer: importer.NewService(st),
		Auth:     authSvc,
		Metrics:  m,
		slot:     slot,
	}, nil
}

func (a *App) Close() error {
	return a.slot.Close()
}
