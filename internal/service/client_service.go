package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/propostas-backend/internal/models"
	"github.com/ignatzorin/propostas-backend/internal/pkg/apperror"
	"github.com/ignatzorin/propostas-backend/internal/repository"
	"github.com/ignatzorin/propostas-backend/internal/validation"
)

type ClientRepository interface {
	Create(ctx context.Context, c *models.Client) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Client, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Client, error)
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ClientService управляет клиентами пользователя.
type ClientService struct {
	repo ClientRepository
}

func NewClientService(repo ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

func validateClient(c *models.Client) error {
	if c.State != nil {
		upper := strings.ToUpper(strings.TrimSpace(*c.State))
		c.State = &upper
	}
	err := firstError(
		validation.ValidateName("nome do cliente", c.Name),
		validation.ValidateOptionalEmail(c.Email),
		validation.ValidatePhone(c.Phone),
		validation.ValidateState(c.State),
		validation.ValidateTaxID(c.TaxID),
		validation.ValidateOptionalText("endereço", c.Address, validation.MaxNameLength*2),
	)
	if err != nil {
		return apperror.Validation(err)
	}
	return nil
}

// Create создаёт клиента.
func (s *ClientService) Create(ctx context.Context, userID uuid.UUID, c *models.Client) (*models.Client, error) {
	c.UserID = userID
	c.Name = strings.TrimSpace(c.Name)
	if err := validateClient(c); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, mapRepoError(err, repository.ErrClientNotFound, apperror.ErrClientNotFound)
	}
	return c, nil
}

func (s *ClientService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Client, error) {
	c, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrClientNotFound, apperror.ErrClientNotFound)
	}
	return c, nil
}

func (s *ClientService) List(ctx context.Context, userID uuid.UUID) ([]models.Client, error) {
	clients, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrClientNotFound, apperror.ErrClientNotFound)
	}
	return clients, nil
}

// Update заменяет данные клиента.
func (s *ClientService) Update(ctx context.Context, userID, id uuid.UUID, c *models.Client) (*models.Client, error) {
	c.ID = id
	c.UserID = userID
	c.Name = strings.TrimSpace(c.Name)
	if err := validateClient(c); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, mapRepoError(err, repository.ErrClientNotFound, apperror.ErrClientNotFound)
	}
	return c, nil
}

func (s *ClientService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return mapRepoError(s.repo.Delete(ctx, userID, id), repository.ErrClientNotFound, apperror.ErrClientNotFound)
}
