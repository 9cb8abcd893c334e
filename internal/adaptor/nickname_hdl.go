package adaptor

import (
	"encoding/json"
	"net/http"

	"event-booking/internal/dto/request"
	"event-booking/internal/usecase"
	"event-booking/pkg/utils"

	"go.uber.org/zap"
)

type NicknameHandler struct {
	service usecase.NicknameService
	log     *zap.Logger
}

func NewNicknameHandler(service usecase.NicknameService, log *zap.Logger) *NicknameHandler {
	return &NicknameHandler{
		service: service,
		log:     log.With(zap.String("handler", "nickname")),
	}
}

// Generate handles POST /api/nicknames (public)
func (h *NicknameHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req request.GenerateNicknamesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	nicknames, err := h.service.Generate(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "generate nicknames")
		return
	}

	utils.ResponseSuccess(w, "success", nicknames)
}
