package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/propostas-backend/internal/dto"
	"github.com/ignatzorin/propostas-backend/internal/http/handlers/common"
	"github.com/ignatzorin/propostas-backend/internal/service"
)

// ProposalHandler обслуживает /api/proposals и генерацию документов.
type ProposalHandler struct {
	proposals *service.ProposalService
	documents *service.DocumentService
}

func NewProposalHandler(proposals *service.ProposalService, documents *service.DocumentService) *ProposalHandler {
	return &ProposalHandler{proposals: proposals, documents: documents}
}

// Create POST /proposals
func (h *ProposalHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.ProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	in, err := req.ToInput()
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	p, err := h.proposals.Create(c.Request.Context(), userID, in)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// List GET /proposals?status=&limit=&offset=
func (h *ProposalHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	limit, offset := common.GetPagination(c)
	proposals, total, err := h.proposals.List(c.Request.Context(), userID, c.Query("status"), limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedProposalsResponse{
		Data:       proposals,
		Pagination: dto.NewPagination(total, limit, offset),
	})
}

// Get GET /proposals/:id
func (h *ProposalHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	p, err := h.proposals.Get(c.Request.Context(), userID, id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update PUT /proposals/:id
func (h *ProposalHandler) Update(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.ProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	in, err := req.ToInput()
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	p, err := h.proposals.Update(c.Request.Context(), userID, id, in)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateStatus PATCH /proposals/:id/status
func (h *ProposalHandler) UpdateStatus(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateProposalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	p, err := h.proposals.ChangeStatus(c.Request.Context(), userID, id, req.Status)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete DELETE /proposals/:id
func (h *ProposalHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.proposals.Delete(c.Request.Context(), userID, id); err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Document GET /proposals/:id/document?template_id=
func (h *ProposalHandler) Document(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	templateID, err := common.ParseUUIDQuery(c, "template_id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	doc, err := h.documents.RenderProposal(c.Request.Context(), userID, id, templateID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
