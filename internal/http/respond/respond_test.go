package respond

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tpv/internal/auth"
	"github.com/MrJamesThe3rd/tpv/internal/pos"
	"github.com/MrJamesThe3rd/tpv/internal/sale"
	"github.com/MrJamesThe3rd/tpv/internal/stock"
	"github.com/MrJamesThe3rd/tpv/internal/store"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("product p9: %w", pos.ErrNotFound), http.StatusNotFound},
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("%w: expired", auth.ErrInvalidToken), http.StatusUnauthorized},
		{auth.ErrForbidden, http.StatusForbidden},
		{store.ErrProtectedCustomer, http.StatusConflict},
		{sale.ErrInsufficientStock, http.StatusConflict},
		{sale.ErrEmptyCart, http.StatusBadRequest},
		{stock.ErrInvalidAdjustment, http.StatusBadRequest},
		{pos.ErrInvalid, http.StatusBadRequest},
		{errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestError_HidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, errors.New("open /var/lib/tpv: permission denied"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error\n", rec.Body.String())
}

func TestDecode(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Sal"}`))
	require.NoError(t, Decode(req, &v))
	assert.Equal(t, "Sal", v.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.ErrorIs(t, Decode(req, &v), ErrBadRequest)
}
