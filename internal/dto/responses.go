package dto

import (
	"time"

	"github.com/ignatzorin/propostas-backend/internal/models"
	"github.com/ignatzorin/propostas-backend/internal/render"
)

// Pagination represents pagination metadata
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// NewPagination builds pagination metadata for a page
func NewPagination(total, limit, offset int) Pagination {
	return Pagination{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}
}

// PaginatedProposalsResponse represents paginated proposals list
type PaginatedProposalsResponse struct {
	Data       []models.Proposal `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// RenderPreviewResponse holds the raw rendered output and its sanitized HTML
type RenderPreviewResponse struct {
	Content    string    `json:"conteudo"`
	SafeHTML   string    `json:"conteudo_html"`
	RenderedAt time.Time `json:"rendered_at"`
}

// TokenCatalogResponse lists template tokens grouped for the editor UI
type TokenCatalogResponse struct {
	Tokens     []render.TokenInfo                     `json:"tokens"`
	ByCategory map[render.Category][]render.TokenInfo `json:"por_categoria"`
	Colors     map[render.Category]string             `json:"cores"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
