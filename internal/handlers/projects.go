package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"moto-repaint-backend/internal/domain"
	"moto-repaint-backend/internal/notify"
)

type projectRequestBody struct {
	Name       string            `json:"name"`
	Phone      string            `json:"phone"`
	Email      string            `json:"email"`
	Motorcycle string            `json:"motorcycle"`
	Notes      string            `json:"notes"`
	Items      []domain.CartLine `json:"items"`
}

// POST /api/projects accepts JSON or the project page form. Line prices are
// taken from the price list, never from the request.
func (e *Env) HandleProjectCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		e.methodNotAllowed(w)
		return
	}

	var req projectRequestBody
	form := isFormPost(r)
	if form {
		if err := parseForm(w, r); err != nil {
			e.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		req = projectRequestBody{
			Name:       r.PostFormValue("name"),
			Phone:      r.PostFormValue("phone"),
			Email:      r.PostFormValue("email"),
			Motorcycle: r.PostFormValue("motorcycle"),
			Notes:      r.PostFormValue("notes"),
			Items:      domain.DecodeHandoff(r.PostFormValue(domain.HandoffParam)).Serialize(),
		}
	} else if err := decodeJSON(r, &req); err != nil {
		e.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	catalog, err := e.Store.ListItems(r.Context())
	if err != nil {
		e.internalError(w, r, err)
		return
	}
	cart, err := domain.PriceLines(req.Items, catalog)
	if err != nil {
		e.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p := &domain.ProjectRequest{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(req.Name),
		Phone:      strings.TrimSpace(req.Phone),
		Email:      strings.TrimSpace(req.Email),
		Motorcycle: strings.TrimSpace(req.Motorcycle),
		Notes:      strings.TrimSpace(req.Notes),
		Items:      cart.Serialize(),
		Total:      cart.TotalPrice(),
		Status:     domain.ProjectNew,
		CreatedAt:  e.clock(),
	}
	if err := p.Validate(); err != nil {
		e.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := e.Store.CreateProject(r.Context(), p); err != nil {
		e.internalError(w, r, err)
		return
	}
	e.Log.Info("project request received",
		zap.String("id", p.ID),
		zap.Int("lines", len(p.Items)),
		zap.Int64("total", p.Total),
	)
	e.notify(r, notify.ProjectText(p, e.Money))

	if form {
		http.Redirect(w, r, e.projectPath()+"?sent=1", http.StatusSeeOther)
		return
	}
	e.writeJSONStatus(w, http.StatusCreated, p)
}

type contactRequestBody struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// POST /api/contact accepts JSON or the landing page form.
func (e *Env) HandleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		e.methodNotAllowed(w)
		return
	}

	var req contactRequestBody
	form := isFormPost(r)
	if form {
		if err := parseForm(w, r); err != nil {
			e.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		req = contactRequestBody{
			Name:    r.PostFormValue("name"),
			Phone:   r.PostFormValue("phone"),
			Email:   r.PostFormValue("email"),
			Message: r.PostFormValue("message"),
		}
	} else if err := decodeJSON(r, &req); err != nil {
		e.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	m := &domain.ContactMessage{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: e.clock(),
	}
	if err := m.Validate(); err != nil {
		e.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := e.Store.CreateMessage(r.Context(), m); err != nil {
		e.internalError(w, r, err)
		return
	}
	e.notify(r, notify.ContactText(m))

	if form {
		http.Redirect(w, r, "/?sent=contact#contact", http.StatusSeeOther)
		return
	}
	e.writeJSONStatus(w, http.StatusCreated, m)
}

// notify never fails the request.
func (e *Env) notify(r *http.Request, text string) {
	if e.Notifier == nil {
		return
	}
	if err := e.Notifier.Notify(r.Context(), text); err != nil {
		e.Log.Warn("notification not sent", zap.Error(err))
	}
}

// GET /api/admin/projects
func (e *Env) HandleAdminProjects(w http.ResponseWriter, r *http.Request) {
	if _, ok := e.requireAdmin(w, r); !ok {
		return
	}
	if r.Method != http.MethodGet {
		e.methodNotAllowed(w)
		return
	}

	list, err := e.Store.ListProjects(r.Context())
	if err != nil {
		e.internalError(w, r, err)
		return
	}
	e.writeJSON(w, list)
}

type projectStatusRequest struct {
	Status string `json:"status"`
}

var errUnknownStatus = errors.New("unknown project status")

// PUT /api/admin/projects/{id}
func (e *Env) HandleAdminProjectStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := e.requireAdmin(w, r); !ok {
		return
	}
	if r.Method != http.MethodPut {
		e.methodNotAllowed(w)
		return
	}

	var req projectStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		e.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	status, ok := domain.ParseProjectStatus(req.Status)
	if !ok {
		e.writeError(w, http.StatusBadRequest, errUnknownStatus.Error())
		return
	}

	id := r.PathValue("id")
	if err := e.Store.UpdateProjectStatus(r.Context(), id, status); err != nil {
		if notFound(err) {
			e.writeError(w, http.StatusNotFound, "project not found")
			return
		}
		e.internalError(w, r, err)
		return
	}
	e.writeJSON(w, map[string]string{"id": id, "status": string(status)})
}

// GET /api/admin/messages
func (e *Env) HandleAdminMessages(w http.ResponseWriter, r *http.Request) {
	if _, ok := e.requireAdmin(w, r); !ok {
		return
	}
	if r.Method != http.MethodGet {
		e.methodNotAllowed(w)
		return
	}

	list, err := e.Store.ListMessages(r.Context())
	if err != nil {
		e.internalError(w, r, err)
		return
	}
	e.writeJSON(w, list)
}
