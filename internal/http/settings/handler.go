package settings

import (
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
	r.With(guard.Read(auth.ModuleSettings)).Get("/", h.get)
	r.With(guard.Write(auth.ModuleSettings)).Patch("/", h.update)
	r.With(guard.Write(auth.ModuleSettings)).Post("/reset", h.reset)
}

func (h *Handler) get(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, h.store.Settings())
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var patch pos.SettingsPatch
	if err := respond.Decode(r, &patch); err != nil {
		respond.Error(w, err)
		return
	}

	res, err := h.store.UpdateSettings(r.Context(), patch)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, res)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	res, err := h.store.ResetSettings(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, res)
}
