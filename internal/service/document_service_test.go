package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/propostas-backend/internal/models"
	"github.com/ignatzorin/propostas-backend/internal/pkg/apperror"
	"github.com/ignatzorin/propostas-backend/internal/render"
	"github.com/ignatzorin/propostas-backend/internal/repository"
)

type documentFixture struct {
	proposals *mockProposalRepo
	clients   *mockClientRepo
	companies *mockCompanyRepo
	templates *mockTemplateRepo
	svc       *DocumentService
}

func newDocumentFixture() *documentFixture {
	f := &documentFixture{
		proposals: new(mockProposalRepo),
		clients:   new(mockClientRepo),
		companies: new(mockCompanyRepo),
		templates: new(mockTemplateRepo),
	}
	fixed := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	renderer := render.New(render.WithLocation(time.UTC), render.WithClock(func() time.Time { return fixed }))
	f.svc = NewDocumentService(f.proposals, f.clients, f.companies, NewProposalTemplateService(f.templates), renderer)
	f.svc.now = func() time.Time { return fixed }
	return f
}

func strPtr(s string) *string { return &s }

func TestBundleFromModels(t *testing.T) {
	validUntil := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	override := 80.0
	p := &models.Proposal{
		Number:          "PROP-1",
		Title:           "Identidade visual",
		Status:          models.ProposalStatusSent,
		Subtotal:        280,
		DiscountPercent: 10,
		Total:           252,
		PaymentTerms:    strPtr("50% na aprovação"),
		ValidUntil:      &validUntil,
		CreatedAt:       time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC),
		Items: []models.ProposalItem{
			{ServiceName: "Logo", Quantity: 1, ServicePrice: 200},
			{ServiceName: "Cartão", Quantity: 1, ServicePrice: 100, UnitPrice: &override},
		},
	}
	c := &models.Client{Name: "Maria", City: strPtr("Recife")}

	b := BundleFromModels(p, c, nil)

	require.NotNil(t, b.Proposal)
	assert.Equal(t, "PROP-1", b.Proposal.Number)
	assert.Equal(t, "50% na aprovação", b.Proposal.PaymentTerms)
	assert.Empty(t, b.Proposal.Notes)
	require.NotNil(t, b.Proposal.Total)
	assert.InDelta(t, 252.0, *b.Proposal.Total, 0.001)
	require.Len(t, b.Services, 2)
	assert.InDelta(t, 80.0, b.Services[1].UnitPrice(), 0.001)
	assert.Equal(t, "Recife", b.Client.City)
	assert.Empty(t, b.Client.Email)
	assert.Nil(t, b.Company)
}

func TestBundleFromModels_AllNil(t *testing.T) {
	b := BundleFromModels(nil, nil, nil)
	assert.Equal(t, render.Bundle{}, b)
}

func TestDocumentService_RenderProposal(t *testing.T) {
	f := newDocumentFixture()
	ctx := context.Background()
	userID, proposalID, templateID, clientID := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	f.templates.On("GetByID", ctx, templateID).Return(&models.ProposalTemplate{
		ID:      templateID,
		UserID:  userID,
		Content: "{{proposta_numero}} para {{cliente_nome}}: {{valor_total}} ({{servicos_total}} itens) em {{data_atual}}",
	}, nil)
	f.proposals.On("GetByID", ctx, userID, proposalID).Return(&models.Proposal{
		ID:       proposalID,
		UserID:   userID,
		ClientID: &clientID,
		Number:   "PROP-20240315-A1B2",
		Subtotal: 1500,
		Total:    1500,
		Items:    []models.ProposalItem{{ServiceName: "Site", Quantity: 1, ServicePrice: 1500}},
	}, nil)
	f.clients.On("GetByID", ctx, userID, clientID).Return(&models.Client{Name: "Padaria Sol"}, nil)
	f.companies.On("GetByUser", ctx, userID).Return(nil, repository.ErrCompanyNotFound)

	doc, err := f.svc.RenderProposal(ctx, userID, proposalID, templateID)

	require.NoError(t, err)
	assert.Equal(t, "PROP-20240315-A1B2 para Padaria Sol: R$ 1.500,00 (1 itens) em 15/03/2024", doc.Content)
	assert.Equal(t, proposalID, *doc.ProposalID)
	assert.Equal(t, templateID, *doc.TemplateID)
}

func TestDocumentService_RenderProposal_DeletedClient(t *testing.T) {
	f := newDocumentFixture()
	ctx := context.Background()
	userID, proposalID, templateID, clientID := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	f.templates.On("GetByID", ctx, templateID).Return(&models.ProposalTemplate{UserID: userID, Content: "Olá {{cliente_nome}}"}, nil)
	f.proposals.On("GetByID", ctx, userID, proposalID).Return(&models.Proposal{ID: proposalID, ClientID: &clientID}, nil)
	f.clients.On("GetByID", ctx, userID, clientID).Return(nil, repository.ErrClientNotFound)
	f.companies.On("GetByUser", ctx, userID).Return(&models.Company{Name: "Estúdio"}, nil)

	doc, err := f.svc.RenderProposal(ctx, userID, proposalID, templateID)

	require.NoError(t, err)
	assert.Equal(t, "Olá [Nome do Cliente]", doc.Content)
}

func TestDocumentService_RenderProposal_ForeignTemplate(t *testing.T) {
	f := newDocumentFixture()
	ctx := context.Background()
	templateID := uuid.New()
	f.templates.On("GetByID", ctx, templateID).Return(&models.ProposalTemplate{UserID: uuid.New()}, nil)

	_, err := f.svc.RenderProposal(ctx, uuid.New(), uuid.New(), templateID)

	assert.ErrorIs(t, err, apperror.ErrForbidden)
	f.proposals.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentService_RenderProposal_MissingProposal(t *testing.T) {
	f := newDocumentFixture()
	ctx := context.Background()
	userID, proposalID, templateID := uuid.New(), uuid.New(), uuid.New()
	f.templates.On("GetByID", ctx, templateID).Return(&models.ProposalTemplate{UserID: userID}, nil)
	f.proposals.On("GetByID", ctx, userID, proposalID).Return(nil, repository.ErrProposalNotFound)

	_, err := f.svc.RenderProposal(ctx, userID, proposalID, templateID)

	assert.ErrorIs(t, err, apperror.ErrProposalNotFound)
}

func TestDocumentService_RenderContent(t *testing.T) {
	f := newDocumentFixture()
	data := render.Bundle{Client: &render.Client{Name: "João"}}

	assert.Equal(t, "Prezado João", f.svc.RenderContent("Prezado {{cliente_nome}}", data).Content)
	assert.Equal(t, render.ErrorMarker, f.svc.RenderContent(42.0, data).Content)
	assert.Equal(t, render.ErrorMarker, f.svc.RenderContent(nil, data).Content)
}
