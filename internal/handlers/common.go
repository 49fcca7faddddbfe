package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"moto-repaint-backend/internal/cartstore"
	"moto-repaint-backend/internal/content"
	"moto-repaint-backend/internal/domain"
	"moto-repaint-backend/internal/notify"
	"moto-repaint-backend/internal/storage"
)

// DefaultProjectPath is where the price list hands the cart over to.
const DefaultProjectPath = "/projects/new"

const maxJSONBody = 1 << 20

// Env holds handler dependencies.
type Env struct {
	Store    storage.Store
	Carts    *cartstore.Store
	Content  *content.Provider
	Money    *domain.PriceFormatter
	Notifier notify.Notifier
	Log      *zap.Logger

	UploadDir        string
	ProjectPath      string
	CarouselInterval time.Duration

	now     func() time.Time
	streams streamRegistry
}

// clock is time.Now unless a test pinned it.
func (e *Env) clock() time.Time {
	if e.now != nil {
		return e.now()
	}
	return time.Now().UTC()
}

// projectPath is where checkout sends the visitor.
func (e *Env) projectPath() string {
	if e.ProjectPath == "" {
		return DefaultProjectPath
	}
	return e.ProjectPath
}

func (e *Env) writeJSON(w http.ResponseWriter, v any) {
	e.writeJSONStatus(w, http.StatusOK, v)
}

func (e *Env) writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		e.Log.Warn("write json response", zap.Error(err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError answers {"error": msg}.
func (e *Env) writeError(w http.ResponseWriter, status int, msg string) {
	e.writeJSONStatus(w, status, errorResponse{Error: msg})
}

// internalError logs err and answers 500 without leaking details.
func (e *Env) internalError(w http.ResponseWriter, r *http.Request, err error) {
	e.Log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	e.writeError(w, http.StatusInternalServerError, "internal error")
}

func (e *Env) methodNotAllowed(w http.ResponseWriter) {
	e.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// decodeJSON reads one JSON value, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("bad json: %w", err)
	}
	return nil
}

// isFormPost reports whether the body is an HTML form submission.
func isFormPost(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data"
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := r.ParseMultipartForm(maxJSONBody); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return fmt.Errorf("bad form: %w", err)
	}
	return nil
}

// pathInt64 parses a positive id from a path wildcard.
func pathInt64(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// notFound reports whether err means a missing record.
func notFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound) || errors.Is(err, cartstore.ErrCartNotFound)
}
