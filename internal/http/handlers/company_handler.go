package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/propostas-backend/internal/dto"
	"github.com/ignatzorin/propostas-backend/internal/http/handlers/common"
	"github.com/ignatzorin/propostas-backend/internal/service"
)

// CompanyHandler обслуживает профиль компании /api/company.
type CompanyHandler struct {
	companies *service.CompanyService
}

func NewCompanyHandler(companies *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// Get GET /company
func (h *CompanyHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	company, err := h.companies.Get(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// Save PUT /company
func (h *CompanyHandler) Save(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	company, err := h.companies.Save(c.Request.Context(), userID, req.ToModel())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}
