package product

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tpv/internal/auth"
	"github.com/MrJamesThe3rd/tpv/internal/http/guard"
	"github.com/MrJamesThe3rd/tpv/internal/http/respond"
	"github.com/MrJamesThe3rd/tpv/internal/pos"
	"github.com/MrJamesThe3rd/tpv/internal/store"
)

type Handler struct {
	store *store.Store
}

func NewHandler(s *store.Store) *Handler {
	return &Handler{store: s}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(guard.Read(auth.ModuleProducts)).Get("/", h.list)
	r.With(guard.Read(auth.ModuleProducts)).Get("/{id}", h.get)
	r.With(guard.Write(auth.ModuleProducts)).Post("/", h.create)
	r.With(guard.Write(auth.ModuleProducts)).Patch("/{id}", h.update)
	r.With(guard.Write(auth.ModuleProducts)).Delete("/{id}", h.delete)
}

// productResponse adds the resolved supplier name; "N/A" when the supplier
// no longer exists.
type productResponse struct {
	pos.Product
	SupplierName string `json:"supplierName"`
}

func toResponse(p pos.Product, r *pos.Resolver) productResponse {
	return productResponse{Product: p, SupplierName: r.SupplierName(p.SupplierID)}
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	r := h.store.Resolver()
	products := h.store.Products()

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toResponse(p, r)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok := h.store.Product(id)
	if !ok {
		respond.Error(w, fmt.Errorf("product %s: %w", id, pos.ErrNotFound))
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p, h.store.Resolver()))
}

type createProductRequest struct {
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	Stock      decimal.Decimal `json:"stock"`
	SupplierID string          `json:"supplierId"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	p, err := h.store.AddProduct(r.Context(), pos.Product{
		Name:       req.Name,
		Category:   req.Category,
		Price:      req.Price,
		Stock:      req.Stock,
		SupplierID: req.SupplierID,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p, h.store.Resolver()))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var patch pos.ProductPatch
	if err := respond.Decode(r, &patch); err != nil {
		respond.Error(w, err)
		return
	}

	patch.ID = chi.URLParam(r, "id")

	p, ok, err := h.store.UpdateProduct(r.Context(), patch)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if !ok {
		respond.Error(w, fmt.Errorf("product %s: %w", patch.ID, pos.ErrNotFound))
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p, h.store.Resolver()))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
