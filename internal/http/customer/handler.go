package customer

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
	r.With(guard.Read(auth.ModuleCustomers)).Get("/", h.list)
	r.With(guard.Read(auth.ModuleCustomers)).Get("/{id}", h.get)
	r.With(guard.Write(auth.ModuleCustomers)).Post("/", h.create)
	r.With(guard.Write(auth.ModuleCustomers)).Patch("/{id}", h.update)
	r.With(guard.Write(auth.ModuleCustomers)).Delete("/{id}", h.delete)
}

type customerResponse struct {
	pos.Customer
	Protected bool `json:"protected"`
}

func (h *Handler) toResponse(c pos.Customer) customerResponse {
	return customerResponse{Customer: c, Protected: h.store.IsGeneralCustomer(c)}
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	customers := h.store.Customers()

	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = h.toResponse(c)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, ok := h.store.Customer(id)
	if !ok {
		respond.Error(w, fmt.Errorf("customer %s: %w", id, pos.ErrNotFound))
		return
	}

	respond.JSON(w, http.StatusOK, h.toResponse(c))
}

type createCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	c, err := h.store.AddCustomer(r.Context(), pos.Customer{Name: req.Name, Email: req.Email, Phone: req.Phone})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, h.toResponse(c))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var patch pos.CustomerPatch
	if err := respond.Decode(r, &patch); err != nil {
		respond.Error(w, err)
		return
	}

	patch.ID = chi.URLParam(r, "id")

	c, ok, err := h.store.UpdateCustomer(r.Context(), patch)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if !ok {
		respond.Error(w, fmt.Errorf("customer %s: %w", patch.ID, pos.ErrNotFound))
		return
	}

	respond.JSON(w, http.StatusOK, h.toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
