package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"moto-repaint-backend/internal/domain"
	"moto-repaint-backend/internal/pricelist"
)

const maxImportSize = 10 << 20

type priceItemRequest struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

func (req priceItemRequest) item(id int64) domain.CatalogItem {
	return domain.CatalogItem{
		ID:          id,
		Category:    strings.TrimSpace(req.Category),
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Description: strings.TrimSpace(req.Description),
	}
}

// GET/POST /api/admin/price-list
func (e *Env) HandleAdminPriceList(w http.ResponseWriter, r *http.Request) {
	if _, ok := e.requireAdmin(w, r); !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		items, err := e.Store.ListItems(r.Context())
		if err != nil {
			e.internalError(w, r, err)
			return
		}
		e.writeJSON(w, items)

	case http.MethodPost:
		var req priceItemRequest
		if err := decodeJSON(r, &req); err != nil {
			e.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		item := req.item(0)
		if err := item.Validate(); err != nil {
			e.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := e.Store.CreateItem(r.Context(), &item); err != nil {
			e.internalError(w, r, err)
			return
		}
		e.writeJSONStatus(w, http.StatusCreated, item)

	default:
		e.methodNotAllowed(w)
	}
}

// PUT/DELETE /api/admin/price-list/{id}
func (e *Env) HandleAdminPriceItem(w http.ResponseWriter, r *http.Request) {
	if _, ok := e.requireAdmin(w, r); !ok {
		return
	}
	id, err := pathInt64(r, "id")
	if err != nil {
		e.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req priceItemRequest
		if err := decodeJSON(r, &req); err != nil {
			e.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		item := req.item(id)
		if err := item.Validate(); err != nil {
			e.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := e.Store.UpdateItem(r.Context(), item); err != nil {
			if notFound(err) {
				e.writeError(w, http.StatusNotFound, "item not found")
				return
			}
			e.internalError(w, r, err)
			return
		}
		e.writeJSON(w, item)

	case http.MethodDelete:
		if err := e.Store.DeleteItem(r.Context(), id); err != nil {
			if notFound(err) {
				e.writeError(w, http.StatusNotFound, "item not found")
				return
			}
			e.internalError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		e.methodNotAllowed(w)
	}
}

type importResponse struct {
	Sheet    string               `json:"sheet"`
	Imported int                  `json:"imported"`
	Skipped  []pricelist.RowError `json:"skipped"`
}

// POST /api/admin/price-list/import replaces the price list with the first
// sheet of an uploaded xlsx file (multipart field "file").
func (e *Env) HandleAdminPriceImport(w http.ResponseWriter, r *http.Request) {
	admin, ok := e.requireAdmin(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		e.methodNotAllowed(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		e.writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		e.writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	res, err := pricelist.Parse(file)
	if err != nil {
		if res != nil && errors.Is(err, pricelist.ErrNoRows) {
			e.writeJSONStatus(w, http.StatusUnprocessableEntity, importResponse{Skipped: res.Skipped})
			return
		}
		e.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := e.Store.ReplaceItems(r.Context(), res.Items); err != nil {
		e.internalError(w, r, err)
		return
	}
	e.Log.Info("price list imported",
		zap.String("by", admin.Email),
		zap.Int("items", len(res.Items)),
		zap.Int("skipped", len(res.Skipped)),
	)
	e.writeJSON(w, importResponse{Sheet: res.Sheet, Imported: len(res.Items), Skipped: res.Skipped})
}
