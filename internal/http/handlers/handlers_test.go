package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/propostas-backend/internal/dto"
	"github.com/ignatzorin/propostas-backend/internal/http/middleware"
	"github.com/ignatzorin/propostas-backend/internal/models"
	"github.com/ignatzorin/propostas-backend/internal/render"
	"github.com/ignatzorin/propostas-backend/internal/repository"
	"github.com/ignatzorin/propostas-backend/internal/service"
)

func newTestRouter(userID *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if userID != nil {
		id := *userID
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextUserIDKey, id)
			c.Next()
		})
	}
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func fixedDocuments() *service.DocumentService {
	renderer := render.New(
		render.WithLocation(time.UTC),
		render.WithClock(func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }),
	)
	return service.NewDocumentService(nil, nil, nil, nil, renderer)
}

func TestClientHandler_Create_Unauthorized(t *testing.T) {
	r := newTestRouter(nil)
	handler := &ClientHandler{clients: nil}
	r.POST("/clients", handler.Create)

	w := doJSON(r, http.MethodPost, "/clients", `{"nome":"Ana"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClientHandler_Get_InvalidID(t *testing.T) {
	userID := uuid.New()
	r := newTestRouter(&userID)
	handler := &ClientHandler{clients: nil}
	r.GET("/clients/:id", handler.Get)

	w := doJSON(r, http.MethodGet, "/clients/abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServiceCatalogHandler_Create_MissingPrice(t *testing.T) {
	userID := uuid.New()
	r := newTestRouter(&userID)
	handler := &ServiceCatalogHandler{catalog: nil}
	r.POST("/services", handler.Create)

	w := doJSON(r, http.MethodPost, "/services", `{"nome":"Consultoria"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProposalHandler_Create_InvalidPayload(t *testing.T) {
	userID := uuid.New()
	r := newTestRouter(&userID)
	handler := &ProposalHandler{}
	r.POST("/proposals", handler.Create)

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"numero":"X"}`},
		{"bad client id", `{"titulo":"Site","client_id":"nope"}`},
		{"bad date", `{"titulo":"Site","data_validade":"31/12/2024"}`},
		{"bad service id", `{"titulo":"Site","servicos":[{"service_id":"x","quantidade":1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/proposals", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestProposalHandler_Document_RequiresTemplateID(t *testing.T) {
	userID := uuid.New()
	r := newTestRouter(&userID)
	handler := &ProposalHandler{}
	r.GET("/proposals/:id/document", handler.Document)

	w := doJSON(r, http.MethodGet, "/proposals/"+uuid.NewString()+"/document", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "template_id")
}

func TestRenderHandler_Tokens(t *testing.T) {
	r := newTestRouter(nil)
	handler := NewRenderHandler(fixedDocuments())
	r.GET("/template-tokens", handler.Tokens)

	w := doJSON(r, http.MethodGet, "/template-tokens", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.TokenCatalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Tokens, len(render.Catalog()))
	assert.NotEmpty(t, resp.Colors[render.CategoryClient])
	assert.NotEmpty(t, resp.ByCategory[render.CategoryValues])
}

func TestRenderHandler_Preview(t *testing.T) {
	userID := uuid.New()
	r := newTestRouter(&userID)
	handler := NewRenderHandler(fixedDocuments())
	r.POST("/render/preview", handler.Preview)

	body := `{
		"template": "<p>Olá {{cliente_nome}}</p><script>alert(1)</script>{{servicos_tabela}}",
		"data": {
			"cliente": {"nome": "Ana <b>Lima</b>"},
			"servicos": [{"nome": "Logo", "quantidade": 1, "preco": 500}]
		}
	}`
	w := doJSON(r, http.MethodPost, "/render/preview", body)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.RenderPreviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Content, "<script>")
	assert.Contains(t, resp.Content, "Olá Ana <b>Lima</b>")
	assert.NotContains(t, resp.SafeHTML, "<script>")
	assert.Contains(t, resp.SafeHTML, "<td>Logo</td>")
	assert.Contains(t, resp.SafeHTML, "R$ 500,00")
}

func TestRenderHandler_Preview_NonStringTemplate(t *testing.T) {
	userID := uuid.New()
	r := newTestRouter(&userID)
	handler := NewRenderHandler(fixedDocuments())
	r.POST("/render/preview", handler.Preview)

	for _, body := range []string{`{"template": 42}`, `{"template": ["a"]}`, `{}`} {
		w := doJSON(r, http.MethodPost, "/render/preview", body)
		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.RenderPreviewResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, render.ErrorMarker, resp.Content, body)
	}
}

type mockProposalRepo struct {
	mock.Mock
}

func (m *mockProposalRepo) Create(ctx context.Context, p *models.Proposal) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProposalRepo) Update(ctx context.Context, p *models.Proposal) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProposalRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Proposal, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Proposal), args.Error(1)
}

func (m *mockProposalRepo) GetByNumber(ctx context.Context, number string) (*models.Proposal, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Proposal), args.Error(1)
}

func (m *mockProposalRepo) ListByUser(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]models.Proposal, int, error) {
	args := m.Called(ctx, userID, status, limit, offset)
	return args.Get(0).([]models.Proposal), args.Int(1), args.Error(2)
}

func (m *mockProposalRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockProposalRepo) MarkSigned(ctx context.Context, id uuid.UUID, signedAt time.Time) error {
	return m.Called(ctx, id, signedAt).Error(0)
}

func (m *mockProposalRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func TestWebhookHandler_Signature(t *testing.T) {
	repo := new(mockProposalRepo)
	p := &models.Proposal{ID: uuid.New(), UserID: uuid.New(), Number: "PROP-20240315-A1B2", Status: models.ProposalStatusSent}
	repo.On("GetByNumber", mock.Anything, "PROP-20240315-A1B2").Return(p, nil)
	repo.On("GetByNumber", mock.Anything, "PROP-X").Return(nil, repository.ErrProposalNotFound)
	repo.On("MarkSigned", mock.Anything, p.ID, mock.AnythingOfType("time.Time")).Return(nil)

	r := newTestRouter(nil)
	handler := NewWebhookHandler(service.NewSignatureService(repo))
	r.POST("/webhooks/signatures", handler.Signature)

	w := doJSON(r, http.MethodPost, "/webhooks/signatures", `{"event":"signed","proposal_number":"PROP-20240315-A1B2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var res service.SignatureResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, models.ProposalStatusSigned, res.Status)
	assert.True(t, res.Changed)

	w = doJSON(r, http.MethodPost, "/webhooks/signatures", `{"event":"signed","proposal_number":"PROP-X"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPost, "/webhooks/signatures", `{"proposal_number":"PROP-X"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookHandler_InvalidTransitionIsConflict(t *testing.T) {
	repo := new(mockProposalRepo)
	repo.On("GetByNumber", mock.Anything, "PROP-1").Return(&models.Proposal{Number: "PROP-1", Status: models.ProposalStatusDraft}, nil)

	r := newTestRouter(nil)
	r.POST("/webhooks/signatures", NewWebhookHandler(service.NewSignatureService(repo)).Signature)

	w := doJSON(r, http.MethodPost, "/webhooks/signatures", `{"event":"refused","proposal_number":"PROP-1"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "transição"))
}

func TestWSHandler_RequiresToken(t *testing.T) {
	r := newTestRouter(nil)
	handler := NewWSHandler(nil, service.NewTokenVerifier("test-secret-test-secret-test-secret"), nil)
	r.GET("/ws", handler.Handle)

	w := doJSON(r, http.MethodGet, "/ws", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/ws?token=garbage", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
