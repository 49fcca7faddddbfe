package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"moto-repaint-backend/internal/domain"
	"moto-repaint-backend/internal/storage"
)

const minPasswordLength = 8

type adminUserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toAdminUserDTO(u *domain.User) adminUserDTO {
	return adminUserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// GET/POST /api/admin/users
func (e *Env) HandleAdminUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := e.requireAdmin(w, r); !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		users, err := e.Store.ListUsers(r.Context())
		if err != nil {
			e.internalError(w, r, err)
			return
		}
		list := make([]adminUserDTO, 0, len(users))
		for _, u := range users {
			list = append(list, toAdminUserDTO(u))
		}
		e.writeJSON(w, list)

	case http.MethodPost:
		e.handleAdminUserCreate(w, r)

	default:
		e.methodNotAllowed(w)
	}
}

// POST /api/admin/users
func (e *Env) handleAdminUserCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		e.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		e.writeError(w, http.StatusBadRequest, "valid email is required")
		return
	}
	role := domain.RoleStaff
	if req.Role != "" {
		parsed, ok := domain.ParseRole(req.Role)
		if !ok {
			e.writeError(w, http.StatusBadRequest, "unknown role")
			return
		}
		role = parsed
	}
	if len(req.Password) < minPasswordLength {
		e.writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	if ok := e.checkEmailFree(w, r, email, ""); !ok {
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		e.internalError(w, r, err)
		return
	}
	u := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		CreatedAt:    e.clock(),
		PasswordHash: hash,
	}
	if err := e.Store.CreateUser(r.Context(), u); err != nil {
		e.internalError(w, r, err)
		return
	}
	e.writeJSONStatus(w, http.StatusCreated, toAdminUserDTO(u))
}

// checkEmailFree answers 409 when another user already has email.
func (e *Env) checkEmailFree(w http.ResponseWriter, r *http.Request, email, selfID string) bool {
	existing, err := e.Store.GetUserByEmail(r.Context(), email)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return true
	case err != nil:
		e.internalError(w, r, err)
		return false
	case existing.ID != selfID:
		e.writeError(w, http.StatusConflict, "email is already in use")
		return false
	}
	return true
}

// HandleAdminUserDetail serves
//
//	PUT    /api/admin/users/{id}
//	DELETE /api/admin/users/{id}
func (e *Env) HandleAdminUserDetail(w http.ResponseWriter, r *http.Request) {
	admin, ok := e.requireAdmin(w, r)
	if !ok {
		return
	}

	user, err := e.Store.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		if notFound(err) {
			e.writeError(w, http.StatusNotFound, "user not found")
			return
		}
		e.internalError(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodPut:
		e.handleAdminUserUpdate(w, r, admin, user)
	case http.MethodDelete:
		if user.ID == admin.ID {
			e.writeError(w, http.StatusBadRequest, "cannot delete the current administrator")
			return
		}
		if user.IsAdmin() {
			last, err := e.isLastAdmin(r, user.ID)
			if err != nil {
				e.internalError(w, r, err)
				return
			}
			if last {
				e.writeError(w, http.StatusBadRequest, "cannot delete the last administrator")
				return
			}
		}
		if err := e.Store.DeleteUser(r.Context(), user.ID); err != nil {
			e.internalError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		e.methodNotAllowed(w)
	}
}

// isLastAdmin reports whether id is the only remaining admin.
func (e *Env) isLastAdmin(r *http.Request, id string) (bool, error) {
	users, err := e.Store.ListUsers(r.Context())
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.ID != id && u.IsAdmin() {
			return false, nil
		}
	}
	return true, nil
}

type updateUserRequest struct {
	Email *string `json:"email,omitempty"`
	Name  *string `json:"name,omitempty"`
	Role  *string `json:"role,omitempty"`
}

func (e *Env) handleAdminUserUpdate(w http.ResponseWriter, r *http.Request, admin, user *domain.User) {
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		e.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" || !strings.Contains(email, "@") {
			e.writeError(w, http.StatusBadRequest, "valid email is required")
			return
		}
		if ok := e.checkEmailFree(w, r, email, user.ID); !ok {
			return
		}
		user.Email = email
	}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		role, ok := domain.ParseRole(*req.Role)
		if !ok {
			e.writeError(w, http.StatusBadRequest, "unknown role")
			return
		}
		if user.IsAdmin() && role != domain.RoleAdmin {
			if user.ID == admin.ID {
				e.writeError(w, http.StatusBadRequest, "cannot demote the current administrator")
				return
			}
			last, err := e.isLastAdmin(r, user.ID)
			if err != nil {
				e.internalError(w, r, err)
				return
			}
			if last {
				e.writeError(w, http.StatusBadRequest, "cannot demote the last administrator")
				return
			}
		}
		user.Role = role
	}

	if err := e.Store.UpdateUser(r.Context(), user); err != nil {
		if notFound(err) {
			e.writeError(w, http.StatusNotFound, "user not found")
			return
		}
		e.internalError(w, r, err)
		return
	}
	e.writeJSON(w, toAdminUserDTO(user))
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

// POST /api/admin/users/{id}/password
func (e *Env) HandleAdminUserPassword(w http.ResponseWriter, r *http.Request) {
	if _, ok := e.requireAdmin(w, r); !ok {
		return
	}
	if r.Method != http.MethodPost {
		e.methodNotAllowed(w)
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		e.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Password) < minPasswordLength {
		e.writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		e.internalError(w, r, err)
		return
	}
	if err := e.Store.SetPasswordHash(r.Context(), r.PathValue("id"), hash); err != nil {
		if notFound(err) {
			e.writeError(w, http.StatusNotFound, "user not found")
			return
		}
		e.internalError(w, r, err)
		return
	}
	e.writeJSON(w, map[string]string{"status": "ok"})
}
