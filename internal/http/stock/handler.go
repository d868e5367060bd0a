package stock

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tpv/internal/auth"
	"github.com/MrJamesThe3rd/tpv/internal/http/guard"
	"github.com/MrJamesThe3rd/tpv/internal/http/respond"
	"github.com/MrJamesThe3rd/tpv/internal/pos"
	"github.com/MrJamesThe3rd/tpv/internal/stock"
)

type Handler struct {
	svc *stock.Service
}

func NewHandler(svc *stock.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(guard.Read(auth.ModuleStock)).Get("/low", h.low)
	r.With(guard.Write(auth.ModuleStock)).Post("/{id}/adjust", h.adjust)
}

func (h *Handler) low(w http.ResponseWriter, _ *http.Request) {
	products := h.svc.LowStock()
	if products == nil {
		products = []pos.Product{}
	}

	respond.JSON(w, http.StatusOK, products)
}

// adjustRequest takes the adjustment as typed by the operator, e.g. "-3".
type adjustRequest struct {
	Adjustment string `json:"adjustment"`
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	p, err := h.svc.Adjust(r.Context(), chi.URLParam(r, "id"), req.Adjustment)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, p)
}
