// Package respond writes JSON bodies and maps domain errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/tpv/internal/auth"
	"github.com/MrJamesThe3rd/tpv/internal/importer/catalog"
	"github.com/MrJamesThe3rd/tpv/internal/pos"
	"github.com/MrJamesThe3rd/tpv/internal/report"
	"github.com/MrJamesThe3rd/tpv/internal/sale"
	"github.com/MrJamesThe3rd/tpv/internal/stock"
	"github.com/MrJamesThe3rd/tpv/internal/store"
)

var ErrBadRequest = errors.New("malformed request body")

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Decode reads a JSON request body into v.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	return nil
}

// Status maps an error to the response status. Unrecognised errors are 500.
func Status(err error) int {
	switch {
	case errors.Is(err, pos.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, store.ErrProtectedCustomer), errors.Is(err, sale.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, pos.ErrInvalid),
		errors.Is(err, sale.ErrEmptyCart),
		errors.Is(err, sale.ErrInvalidItem),
		errors.Is(err, stock.ErrInvalidAdjustment),
		errors.Is(err, report.ErrInvalidPeriod),
		errors.Is(err, catalog.ErrNoHeader):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as a plain-text response. Internal errors are logged and
// their message is not sent to the client.
func Error(w http.ResponseWriter, err error) {
	status := Status(err)

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}
