package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

// settingsRequest fields are optional; nil leaves the stored value alone.
type settingsRequest struct {
	TelegramBotToken *string `json:"telegramBotToken,omitempty"`
	TelegramChatID   *string `json:"telegramChatId,omitempty"`
}

// GET/POST /api/admin/settings
func (e *Env) HandleAdminSettings(w http.ResponseWriter, r *http.Request) {
	if _, ok := e.requireAdmin(w, r); !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		s, err := e.Store.LoadSettings(r.Context())
		if err != nil {
			e.internalError(w, r, err)
			return
		}
		e.writeJSON(w, s)

	case http.MethodPost:
		var req settingsRequest
		if err := decodeJSON(r, &req); err != nil {
			e.writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		s, err := e.Store.LoadSettings(r.Context())
		if err != nil {
			e.internalError(w, r, err)
			return
		}
		if req.TelegramBotToken != nil {
			s.TelegramBotToken = strings.TrimSpace(*req.TelegramBotToken)
		}
		if req.TelegramChatID != nil {
			chat := strings.TrimSpace(*req.TelegramChatID)
			if chat != "" {
				if _, err := strconv.ParseInt(chat, 10, 64); err != nil {
					e.writeError(w, http.StatusBadRequest, "telegramChatId must be a number")
					return
				}
			}
			s.TelegramChatID = chat
		}

		if err := e.Store.SaveSettings(r.Context(), s); err != nil {
			e.internalError(w, r, err)
			return
		}
		e.writeJSON(w, s)

	default:
		e.methodNotAllowed(w)
	}
}
