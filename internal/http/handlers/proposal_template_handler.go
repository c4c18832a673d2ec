package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/propostas-backend/internal/dto"
	"github.com/ignatzorin/propostas-backend/internal/http/handlers/common"
	"github.com/ignatzorin/propostas-backend/internal/service"
)

type ProposalTemplateHandler struct {
	svc *service.ProposalTemplateService
}

func NewProposalTemplateHandler(s *service.ProposalTemplateService) *ProposalTemplateHandler {
	return &ProposalTemplateHandler{svc: s}
}

// CreateTemplate POST /proposal-templates
func (h *ProposalTemplateHandler) CreateTemplate(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	t, err := h.svc.Create(c.Request.Context(), userID, req.Title, req.Content)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// ListTemplates GET /proposal-templates
func (h *ProposalTemplateHandler) ListTemplates(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	templates, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetTemplate GET /proposal-templates/:id
func (h *ProposalTemplateHandler) GetTemplate(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}
	templateID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	t, err := h.svc.Get(c.Request.Context(), userID, templateID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// UpdateTemplate PUT /proposal-templates/:id
func (h *ProposalTemplateHandler) UpdateTemplate(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}
	templateID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.svc.Update(c.Request.Context(), userID, templateID, req.Title, req.Content); err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, http.StatusOK, "modelo atualizado", nil)
}

// DeleteTemplate DELETE /proposal-templates/:id
func (h *ProposalTemplateHandler) DeleteTemplate(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}
	templateID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, templateID); err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, http.StatusOK, "modelo removido", nil)
}
