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
	"github.com/ignatzorin/propostas-backend/internal/repository"
)

type proposalFixture struct {
	repo    *mockProposalRepo
	clients *mockClientRepo
	catalog *mockCatalogRepo
	hub     *mockNotifier
	svc     *ProposalService
}

func newProposalFixture() *proposalFixture {
	f := &proposalFixture{
		repo:    new(mockProposalRepo),
		clients: new(mockClientRepo),
		catalog: new(mockCatalogRepo),
		hub:     new(mockNotifier),
	}
	f.svc = NewProposalService(f.repo, f.clients, f.catalog)
	f.svc.SetHub(f.hub)
	f.svc.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	f.svc.newCode = func() string { return "A1B2" }
	return f
}

func TestGenerateNumber(t *testing.T) {
	at := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "PROP-20240105-ZZ99", GenerateNumber(at, "ZZ99"))
}

func TestProposalService_Create_ComputesTotals(t *testing.T) {
	f := newProposalFixture()
	ctx := context.Background()
	userID := uuid.New()
	design, dev := uuid.New(), uuid.New()
	override := 250.0

	f.catalog.On("GetMany", ctx, userID, []uuid.UUID{design, dev}).Return(map[uuid.UUID]models.Service{
		design: {ID: design, Name: "Design", Price: 100},
		dev:    {ID: dev, Name: "Desenvolvimento", Price: 300},
	}, nil)
	f.repo.On("Create", ctx, mock.AnythingOfType("*models.Proposal")).Return(nil)

	p, err := f.svc.Create(ctx, userID, ProposalInput{
		Title:            "  Site institucional ",
		DiscountPercent:  10,
		SurchargePercent: 5,
		Items: []ProposalItemInput{
			{ServiceID: design, Quantity: 2},
			{ServiceID: dev, Quantity: 1, UnitPrice: &override},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Site institucional", p.Title)
	assert.Equal(t, models.ProposalStatusDraft, p.Status)
	assert.Equal(t, "PROP-20240315-A1B2", p.Number)
	assert.InDelta(t, 450.0, p.Subtotal, 0.001)
	assert.InDelta(t, 427.5, p.Total, 0.001)
	require.Len(t, p.Items, 2)
	assert.Equal(t, "Design", p.Items[0].ServiceName)
	assert.InDelta(t, 250.0, p.Items[1].EffectivePrice(), 0.001)
	f.repo.AssertExpectations(t)
}

func TestProposalService_Create_RetriesNumberCollision(t *testing.T) {
	f := newProposalFixture()
	ctx := context.Background()
	codes := []string{"AAAA", "BBBB"}
	f.svc.newCode = func() string {
		c := codes[0]
		codes = codes[1:]
		return c
	}

	f.repo.On("Create", ctx, mock.MatchedBy(func(p *models.Proposal) bool {
		return p.Number == "PROP-20240315-AAAA"
	})).Return(repository.ErrProposalNumberTaken).Once()
	f.repo.On("Create", ctx, mock.MatchedBy(func(p *models.Proposal) bool {
		return p.Number == "PROP-20240315-BBBB"
	})).Return(nil).Once()

	p, err := f.svc.Create(ctx, uuid.New(), ProposalInput{Title: "Consultoria"})

	require.NoError(t, err)
	assert.Equal(t, "PROP-20240315-BBBB", p.Number)
	f.repo.AssertExpectations(t)
}

func TestProposalService_Create_ExplicitNumberTaken(t *testing.T) {
	f := newProposalFixture()
	ctx := context.Background()
	f.repo.On("Create", ctx, mock.Anything).Return(repository.ErrProposalNumberTaken)

	_, err := f.svc.Create(ctx, uuid.New(), ProposalInput{Title: "Consultoria", Number: "ORC-1"})

	assert.ErrorIs(t, err, apperror.ErrProposalNumberUsed)
	f.repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestProposalService_Create_ValidationErrors(t *testing.T) {
	f := newProposalFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		in   ProposalInput
	}{
		{"empty title", ProposalInput{Title: "  "}},
		{"discount above 100", ProposalInput{Title: "Proposta", DiscountPercent: 120}},
		{"negative surcharge", ProposalInput{Title: "Proposta", SurchargePercent: -1}},
		{"zero quantity", ProposalInput{Title: "Proposta", Items: []ProposalItemInput{{ServiceID: uuid.New()}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, uuid.New(), tt.in)
			assert.True(t, apperror.IsValidation(err))
		})
	}
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProposalService_Create_UnknownService(t *testing.T) {
	f := newProposalFixture()
	ctx := context.Background()
	userID := uuid.New()
	missing := uuid.New()
	f.catalog.On("GetMany", ctx, userID, []uuid.UUID{missing}).Return(map[uuid.UUID]models.Service{}, nil)

	_, err := f.svc.Create(ctx, userID, ProposalInput{
		Title: "Proposta",
		Items: []ProposalItemInput{{ServiceID: missing, Quantity: 1}},
	})

	assert.ErrorIs(t, err, apperror.ErrServiceNotFound)
}

func TestProposalService_Create_ForeignClient(t *testing.T) {
	f := newProposalFixture()
	ctx := context.Background()
	userID, clientID := uuid.New(), uuid.New()
	f.clients.On("GetByID", ctx, userID, clientID).Return(nil, repository.ErrClientNotFound)

	_, err := f.svc.Create(ctx, userID, ProposalInput{Title: "Proposta", ClientID: &clientID})

	assert.ErrorIs(t, err, apperror.ErrClientNotFound)
}

func TestProposalService_Update_SignedIsLocked(t *testing.T) {
	f := newProposalFixture()
	ctx := context.Background()
	userID, id := uuid.New(), uuid.New()
	f.repo.On("GetByID", ctx, userID, id).Return(&models.Proposal{ID: id, UserID: userID, Status: models.ProposalStatusSigned}, nil)

	_, err := f.svc.Update(ctx, userID, id, ProposalInput{Title: "Nova versão"})

	assert.ErrorIs(t, err, apperror.ErrProposalLocked)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProposalService_ChangeStatus_SendsEvent(t *testing.T) {
	f := newProposalFixture()
	ctx := context.Background()
	userID, id := uuid.New(), uuid.New()
	f.repo.On("GetByID", ctx, userID, id).Return(&models.Proposal{ID: id, UserID: userID, Number: "PROP-1", Status: models.ProposalStatusDraft}, nil)
	f.repo.On("UpdateStatus", ctx, id, models.ProposalStatusSent).Return(nil)
	f.hub.On("BroadcastToUser", userID, models.EventProposalStatusChanged, StatusChange{
		ProposalID:     id,
		Number:         "PROP-1",
		PreviousStatus: models.ProposalStatusDraft,
		Status:         models.ProposalStatusSent,
		Source:         "usuario",
	}).Return(nil)

	p, err := f.svc.ChangeStatus(ctx, userID, id, models.ProposalStatusSent)

	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusSent, p.Status)
	f.repo.AssertExpectations(t)
	f.hub.AssertExpectations(t)
}

func TestProposalService_ChangeStatus_SignedUsesMarkSigned(t *testing.T) {
	f := newProposalFixture()
	ctx := context.Background()
	userID, id := uuid.New(), uuid.New()
	f.repo.On("GetByID", ctx, userID, id).Return(&models.Proposal{ID: id, UserID: userID, Status: models.ProposalStatusApproved}, nil)
	f.repo.On("MarkSigned", ctx, id, f.svc.now()).Return(nil)
	f.hub.On("BroadcastToUser", userID, models.EventProposalStatusChanged, mock.Anything).Return(nil)

	p, err := f.svc.ChangeStatus(ctx, userID, id, models.ProposalStatusSigned)

	require.NoError(t, err)
	require.NotNil(t, p.SignedAt)
	assert.Equal(t, models.ProposalStatusSigned, p.Status)
	f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestProposalService_ChangeStatus_InvalidTransition(t *testing.T) {
	f := newProposalFixture()
	ctx := context.Background()
	userID, id := uuid.New(), uuid.New()
	f.repo.On("GetByID", ctx, userID, id).Return(&models.Proposal{ID: id, UserID: userID, Status: models.ProposalStatusDraft}, nil)

	_, err := f.svc.ChangeStatus(ctx, userID, id, models.ProposalStatusSigned)

	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
	f.hub.AssertNotCalled(t, "BroadcastToUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestProposalService_ChangeStatus_UnknownStatus(t *testing.T) {
	f := newProposalFixture()

	_, err := f.svc.ChangeStatus(context.Background(), uuid.New(), uuid.New(), "arquivada")

	assert.True(t, apperror.IsValidation(err))
}

func TestProposalService_Get_NotFound(t *testing.T) {
	f := newProposalFixture()
	ctx := context.Background()
	userID, id := uuid.New(), uuid.New()
	f.repo.On("GetByID", ctx, userID, id).Return(nil, repository.ErrProposalNotFound)

	_, err := f.svc.Get(ctx, userID, id)

	assert.True(t, apperror.IsNotFound(err))
}

func TestProposalService_List_FiltersStatus(t *testing.T) {
	f := newProposalFixture()
	ctx := context.Background()
	userID := uuid.New()
	f.repo.On("ListByUser", ctx, userID, models.ProposalStatusSent, 20, 0).Return([]models.Proposal{{Number: "PROP-1"}}, 1, nil)

	items, total, err := f.svc.List(ctx, userID, models.ProposalStatusSent, 20, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, items, 1)

	_, _, err = f.svc.List(ctx, userID, "qualquer", 20, 0)
	assert.True(t, apperror.IsValidation(err))
}
