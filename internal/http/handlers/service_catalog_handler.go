package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/propostas-backend/internal/dto"
	"github.com/ignatzorin/propostas-backend/internal/http/handlers/common"
	"github.com/ignatzorin/propostas-backend/internal/service"
)

// ServiceCatalogHandler обслуживает /api/services (каталог услуг пользователя).
type ServiceCatalogHandler struct {
	catalog *service.CatalogService
}

func NewServiceCatalogHandler(catalog *service.CatalogService) *ServiceCatalogHandler {
	return &ServiceCatalogHandler{catalog: catalog}
}

// Create POST /services
func (h *ServiceCatalogHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	svc, err := h.catalog.Create(c.Request.Context(), userID, req.ToModel())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// List GET /services
func (h *ServiceCatalogHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	services, err := h.catalog.List(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// Get GET /services/:id
func (h *ServiceCatalogHandler) Get(c *gin.Context) {
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

	svc, err := h.catalog.Get(c.Request.Context(), userID, id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// Update PUT /services/:id
func (h *ServiceCatalogHandler) Update(c *gin.Context) {
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

	var req dto.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	svc, err := h.catalog.Update(c.Request.Context(), userID, id, req.ToModel())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// Delete DELETE /services/:id
func (h *ServiceCatalogHandler) Delete(c *gin.Context) {
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

	if err := h.catalog.Delete(c.Request.Context(), userID, id); err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
