// Package guard authenticates bearer tokens and enforces the permission table.
package guard

import (
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/tpv/internal/auth"
	"github.com/MrJamesThe3rd/tpv/internal/http/respond"
)

type Verifier interface {
	Verify(token string) (auth.User, error)
}

// Authenticate rejects requests without a valid "Authorization: Bearer"
// token and stores the user in the request context.
func Authenticate(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			user, err := v.Verify(strings.TrimSpace(token))
			if err != nil {
				respond.Error(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

// Require lets the request through when the authenticated user has at least
// need access to module.
func Require(module auth.Module, need auth.Access) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFrom(r.Context())
			if !ok {
				http.Error(w, "not authenticated", http.StatusUnauthorized)
				return
			}

			if err := auth.Authorize(user, module, need); err != nil {
				respond.Error(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func Read(module auth.Module) func(http.Handler) http.Handler {
	return Require(module, auth.AccessRead)
}

func Write(module auth.Module) func(http.Handler) http.Handler {
	return Require(module, auth.AccessWrite)
}
