package wire

import (
	"event-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireNickname(r chi.Router, nicknameHandler *adaptor.NicknameHandler) {
	// POST /api/nicknames - Proxy to the external generator (public; used
	// during username selection before a profile exists)
	r.Post("/api/nicknames", nicknameHandler.Generate)
}
