package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tpv/internal/http/respond"
	"github.com/MrJamesThe3rd/tpv/internal/report"
)

// Handler serves reports and the dashboard to any authenticated user.
type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/reports", h.report)
	r.Get("/dashboard", h.dashboard)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	p, err := report.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, h.svc.Report(p))
}

func (h *Handler) dashboard(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, h.svc.Dashboard())
}
