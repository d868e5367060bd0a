package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tpv/internal/auth"
	"github.com/MrJamesThe3rd/tpv/internal/http/guard"
	"github.com/MrJamesThe3rd/tpv/internal/http/respond"
	"github.com/MrJamesThe3rd/tpv/internal/importer"
	"github.com/MrJamesThe3rd/tpv/internal/pos"
)

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(guard.Write(auth.ModuleProducts))
	r.Post("/", h.importProducts)
	r.Post("/confirm", h.confirmImport)
}

type importSuccessResponse struct {
	Imported int           `json:"imported"`
	Products []pos.Product `json:"products"`
}

type confirmRequest struct {
	Products []pos.Product `json:"products"`
}

// importProducts adds every row of the uploaded file when none conflicts
// with the catalogue. Otherwise nothing is added and the preview is returned
// with 409 so the client can confirm a selection.
func (h *Handler) importProducts(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatCSV
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	preview, err := h.importSvc.Preview(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(preview.Conflicts) > 0 {
		respond.JSON(w, http.StatusConflict, preview)
		return
	}

	h.confirm(w, r, preview.New)
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	h.confirm(w, r, req.Products)
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request, products []pos.Product) {
	n, err := h.importSvc.Confirm(r.Context(), products)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importSuccessResponse{Imported: n, Products: products[:n]})
}
