package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/propostas-backend/internal/models"
)

type mockProposalRepo struct {
	mock.Mock
}

func (m *mockProposalRepo) Create(ctx context.Context, p *models.Proposal) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockProposalRepo) Update(ctx context.Context, p *models.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
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
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockProposalRepo) MarkSigned(ctx context.Context, id uuid.UUID, signedAt time.Time) error {
	args := m.Called(ctx, id, signedAt)
	return args.Error(0)
}

func (m *mockProposalRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type mockClientRepo struct {
	mock.Mock
}

func (m *mockClientRepo) Create(ctx context.Context, c *models.Client) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockClientRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Client, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *mockClientRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Client, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Client), args.Error(1)
}

func (m *mockClientRepo) Update(ctx context.Context, c *models.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockClientRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) Create(ctx context.Context, s *models.Service) error {
	args := m.Called(ctx, s)
	if args.Error(0) == nil {
		s.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockCatalogRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Service, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *mockCatalogRepo) GetMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]models.Service, error) {
	args := m.Called(ctx, userID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]models.Service), args.Error(1)
}

func (m *mockCatalogRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Service, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *mockCatalogRepo) Update(ctx context.Context, s *models.Service) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockCatalogRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type mockCompanyRepo struct {
	mock.Mock
}

func (m *mockCompanyRepo) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Company, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Company), args.Error(1)
}

func (m *mockCompanyRepo) Upsert(ctx context.Context, c *models.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type mockTemplateRepo struct {
	mock.Mock
}

func (m *mockTemplateRepo) Create(ctx context.Context, t *models.ProposalTemplate) error {
	args := m.Called(ctx, t)
	if args.Error(0) == nil {
		t.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockTemplateRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProposalTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProposalTemplate), args.Error(1)
}

func (m *mockTemplateRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ProposalTemplate, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.ProposalTemplate), args.Error(1)
}

func (m *mockTemplateRepo) Update(ctx context.Context, id uuid.UUID, title, content string) error {
	args := m.Called(ctx, id, title, content)
	return args.Error(0)
}

func (m *mockTemplateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) BroadcastToUser(userID uuid.UUID, event string, data any) error {
	args := m.Called(userID, event, data)
	return args.Error(0)
}
