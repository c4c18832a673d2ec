package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/propostas-backend/internal/dto"
	"github.com/ignatzorin/propostas-backend/internal/http/handlers/common"
	"github.com/ignatzorin/propostas-backend/internal/service"
)

// WebhookHandler принимает события провайдера электронной подписи.
type WebhookHandler struct {
	signatures *service.SignatureService
}

func NewWebhookHandler(signatures *service.SignatureService) *WebhookHandler {
	return &WebhookHandler{signatures: signatures}
}

// Signature POST /webhooks/signatures
func (h *WebhookHandler) Signature(c *gin.Context) {
	var req dto.SignatureWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	res, err := h.signatures.Handle(c.Request.Context(), req.ToEvent())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
