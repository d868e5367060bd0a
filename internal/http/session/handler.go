package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tpv/internal/auth"
	"github.com/MrJamesThe3rd/tpv/internal/http/respond"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the unauthenticated login endpoint.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
}

// MeRoutes mounts endpoints that need an authenticated user.
func (h *Handler) MeRoutes(r chi.Router) {
	r.Get("/me", h.me)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type meResponse struct {
	User        auth.User              `json:"user"`
	Permissions map[auth.Module]string `json:"permissions"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	s, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, s)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFrom(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	perms := make(map[auth.Module]string)

	for _, m := range []auth.Module{
		auth.ModuleSales, auth.ModuleProducts, auth.ModuleStock,
		auth.ModuleCustomers, auth.ModuleSuppliers, auth.ModuleSettings,
	} {
		perms[m] = auth.Permission(u.Role, m).String()
	}

	respond.JSON(w, http.StatusOK, meResponse{User: u, Permissions: perms})
}
