package supplier

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

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
	r.With(guard.Read(auth.ModuleSuppliers)).Get("/", h.list)
	r.With(guard.Read(auth.ModuleSuppliers)).Get("/{id}", h.get)
	r.With(guard.Write(auth.ModuleSuppliers)).Post("/", h.create)
	r.With(guard.Write(auth.ModuleSuppliers)).Patch("/{id}", h.update)
	r.With(guard.Write(auth.ModuleSuppliers)).Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, h.store.Suppliers())
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sp, ok := h.store.Supplier(id)
	if !ok {
		respond.Error(w, fmt.Errorf("supplier %s: %w", id, pos.ErrNotFound))
		return
	}

	respond.JSON(w, http.StatusOK, sp)
}

type createSupplierRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createSupplierRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	sp, err := h.store.AddSupplier(r.Context(), pos.Supplier{Name: req.Name, Contact: req.Contact, Phone: req.Phone})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, sp)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var patch pos.SupplierPatch
	if err := respond.Decode(r, &patch); err != nil {
		respond.Error(w, err)
		return
	}

	patch.ID = chi.URLParam(r, "id")

	sp, ok, err := h.store.UpdateSupplier(r.Context(), patch)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if !ok {
		respond.Error(w, fmt.Errorf("supplier %s: %w", patch.ID, pos.ErrNotFound))
		return
	}

	respond.JSON(w, http.StatusOK, sp)
}

// delete leaves products pointing at the supplier untouched; they list "N/A".
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.DeleteSupplier(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
