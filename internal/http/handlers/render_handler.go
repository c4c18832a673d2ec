package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/ignatzorin/propostas-backend/internal/dto"
	"github.com/ignatzorin/propostas-backend/internal/http/handlers/common"
	"github.com/ignatzorin/propostas-backend/internal/render"
	"github.com/ignatzorin/propostas-backend/internal/service"
)

// RenderHandler отдаёт каталог токенов и рендерит предпросмотр шаблона.
type RenderHandler struct {
	documents *service.DocumentService
	policy    *bluemonday.Policy
}

func NewRenderHandler(documents *service.DocumentService) *RenderHandler {
	return &RenderHandler{
		documents: documents,
		policy:    newPreviewPolicy(),
	}
}

// newPreviewPolicy: разметка UGC (включая таблицы) и базовое выравнивание текста.
func newPreviewPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyles("text-align", "font-weight").OnElements("p", "span", "div", "td", "th")
	return p
}

// Tokens GET /template-tokens
func (h *RenderHandler) Tokens(c *gin.Context) {
	c.JSON(http.StatusOK, dto.TokenCatalogResponse{
		Tokens:     render.Catalog(),
		ByCategory: render.CatalogByCategory(),
		Colors:     render.CategoryColors(),
	})
}

// Preview POST /render/preview
func (h *RenderHandler) Preview(c *gin.Context) {
	var req dto.RenderPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	doc := h.documents.RenderContent(req.Template, req.Data)
	c.JSON(http.StatusOK, dto.RenderPreviewResponse{
		Content:    doc.Content,
		SafeHTML:   h.policy.Sanitize(doc.Content),
		RenderedAt: doc.RenderedAt,
	})
}
