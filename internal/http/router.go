package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/tpv/internal/http/customer"
	"github.com/MrJamesThe3rd/tpv/internal/http/guard"
	"github.com/MrJamesThe3rd/tpv/internal/http/importcsv"
	"github.com/MrJamesThe3rd/tpv/internal/http/product"
	"github.com/MrJamesThe3rd/tpv/internal/http/report"
	"github.com/MrJamesThe3rd/tpv/internal/http/sale"
	"github.com/MrJamesThe3rd/tpv/internal/http/session"
	"github.com/MrJamesThe3rd/tpv/internal/http/settings"
	"github.com/MrJamesThe3rd/tpv/internal/http/stock"
	"github.com/MrJamesThe3rd/tpv/internal/http/supplier"
)

type Handlers struct {
	Session   *session.Handler
	Products  *product.Handler
	Customers *customer.Handler
	Suppliers *supplier.Handler
	Sales     *sale.Handler
	Stock     *stock.Handler
	Reports   *report.Handler
	Settings  *settings.Handler
	Import    *importcsv.Handler
}

type Options struct {
	Verifier       guard.Verifier
	AllowedOrigins []string
	// Metrics is served at /metrics without authentication when set.
	Metrics http.Handler
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if opts.Metrics != nil {
		router.Handle("/metrics", opts.Metrics)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Group(h.Session.Routes)

		r.Group(func(r chi.Router) {
			r.Use(guard.Authenticate(opts.Verifier))

			h.Session.MeRoutes(r)
			h.Reports.Routes(r)

			r.Route("/products", func(r chi.Router) {
				r.Route("/import", h.Import.Routes)
				h.Products.Routes(r)
			})
			r.Route("/customers", h.Customers.Routes)
			r.Route("/suppliers", h.Suppliers.Routes)
			r.Route("/sales", h.Sales.Routes)
			r.Route("/stock", h.Stock.Routes)
			r.Route("/settings", h.Settings.Routes)
		})
	})

	return router
}
