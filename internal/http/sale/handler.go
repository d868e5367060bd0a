package sale

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tpv/internal/auth"
	"github.com/MrJamesThe3rd/tpv/internal/http/guard"
	"github.com/MrJamesThe3rd/tpv/internal/http/respond"
	"github.com/MrJamesThe3rd/tpv/internal/invoice"
	"github.com/MrJamesThe3rd/tpv/internal/pos"
	"github.com/MrJamesThe3rd/tpv/internal/report"
	"github.com/MrJamesThe3rd/tpv/internal/sale"
	"github.com/MrJamesThe3rd/tpv/internal/store"
)

type Handler struct {
	store    *store.Store
	sales    *sale.Service
	reports  *report.Service
	invoices *invoice.Service
}

func NewHandler(s *store.Store, sales *sale.Service, reports *report.Service, invoices *invoice.Service) *Handler {
	return &Handler{store: s, sales: sales, reports: reports, invoices: invoices}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(guard.Write(auth.ModuleSales)).Post("/", h.checkout)
	r.With(guard.Read(auth.ModuleSales)).Get("/", h.list)
	r.With(guard.Read(auth.ModuleSales)).Get("/{id}", h.get)
	r.With(guard.Read(auth.ModuleSales)).Get("/{id}/invoice", h.invoice)
}

type checkoutItem struct {
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type checkoutRequest struct {
	CustomerID string         `json:"customerId"`
	Items      []checkoutItem `json:"items"`
}

// checkout fills a cart from the current catalogue, so the oversell policy
// and price snapshot apply exactly as at the till, then records the sale. The
// cart check is advisory; Checkout re-checks stock under the store lock.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	cart := sale.NewCart(req.CustomerID)

	for _, it := range req.Items {
		p, ok := h.store.Product(it.ProductID)
		if !ok {
			respond.Error(w, fmt.Errorf("%w: unknown product %s", sale.ErrInvalidItem, it.ProductID))
			return
		}

		if err := cart.AddQuantity(p, it.Quantity); err != nil {
			respond.Error(w, err)
			return
		}
	}

	recorded, err := h.sales.Checkout(r.Context(), cart.Request())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, report.SaleRow{
		Sale:         recorded,
		CustomerName: h.store.Resolver().CustomerName(recorded.CustomerID),
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	s := r.URL.Query().Get("period")
	if s == "" {
		respond.JSON(w, http.StatusOK, h.reports.History())
		return
	}

	p, err := report.ParsePeriod(s)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, h.reports.FilteredHistory(p))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s, ok := h.store.Sale(id)
	if !ok {
		respond.Error(w, fmt.Errorf("sale %s: %w", id, pos.ErrNotFound))
		return
	}

	respond.JSON(w, http.StatusOK, report.SaleRow{Sale: s, CustomerName: h.store.Resolver().CustomerName(s.CustomerID)})
}

// invoice renders plain text unless ?format=json asks for the document.
func (h *Handler) invoice(w http.ResponseWriter, r *http.Request) {
	doc, err := h.invoices.Document(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		respond.JSON(w, http.StatusOK, doc)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", invoice.FileName(doc.Number)))

	if err := invoice.Render(w, doc); err != nil {
		respond.Error(w, err)
	}
}
