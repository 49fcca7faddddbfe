package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"moto-repaint-backend/internal/domain"
	"moto-repaint-backend/internal/storage"
)

const authRealm = `Basic realm="moto-repaint admin", charset="UTF-8"`

var errBadCredentials = errors.New("invalid email or password")

// HashPassword is the bcrypt hash stored for back-office users.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// authenticate resolves HTTP basic credentials to a user.
func (e *Env) authenticate(r *http.Request) (*domain.User, error) {
	email, password, ok := r.BasicAuth()
	if !ok {
		return nil, errBadCredentials
	}
	u, err := e.Store.GetUserByEmail(r.Context(), strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errBadCredentials
	}
	return u, nil
}

// requireAdmin checks that the caller is an admin user.
func (e *Env) requireAdmin(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	u, err := e.authenticate(r)
	if err != nil {
		if !errors.Is(err, errBadCredentials) {
			e.internalError(w, r, err)
			return nil, false
		}
		w.Header().Set("WWW-Authenticate", authRealm)
		e.writeError(w, http.StatusUnauthorized, err.Error())
		return nil, false
	}
	if !u.IsAdmin() {
		e.Log.Info("non-admin tried the management console", zap.String("user", u.Email))
		e.writeError(w, http.StatusForbidden, "forbidden")
		return nil, false
	}
	return u, true
}
