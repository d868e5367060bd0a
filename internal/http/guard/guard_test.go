package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/tpv/internal/auth"
)

func TestAuthenticateRequire(t *testing.T) {
	svc, err := auth.NewService("secret", time.Hour, auth.Passwords{Admin: "a", Seller: "s", User: "u"}, auth.WithCost(bcrypt.MinCost))
	require.NoError(t, err)

	token := func(user, pw string) string {
		s, err := svc.Login(user, pw)
		require.NoError(t, err)

		return "Bearer " + s.Token
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, _ := auth.UserFrom(r.Context())
		_, _ = w.Write([]byte(u.Username))
	})

	handler := Authenticate(svc)(Write(auth.ModuleStock)(ok))

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{name: "no header", wantCode: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic YWRtaW46YQ==", wantCode: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", wantCode: http.StatusUnauthorized},
		{name: "seller cannot write stock", header: token("vendedor", "s"), wantCode: http.StatusForbidden},
		{name: "admin writes stock", header: token("Administrador", "a"), wantCode: http.StatusOK, wantBody: "administrador"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/stock/p1/adjust", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRequire_WithoutUser(t *testing.T) {
	rec := httptest.NewRecorder()
	Read(auth.ModuleSales)(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
