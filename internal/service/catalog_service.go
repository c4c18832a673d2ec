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

type CatalogRepository interface {
	Create(ctx context.Context, s *models.Service) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Service, error)
	GetMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]models.Service, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Service, error)
	Update(ctx context.Context, s *models.Service) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// CatalogService управляет каталогом услуг.
type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func validateService(s *models.Service) error {
	err := firstError(
		validation.ValidateName("nome do serviço", s.Name),
		validation.ValidateOptionalText("descrição", s.Description, validation.MaxServiceDescription),
		validation.ValidatePrice("preço", s.Price),
	)
	if err != nil {
		return apperror.Validation(err)
	}
	return nil
}

func (s *CatalogService) Create(ctx context.Context, userID uuid.UUID, svc *models.Service) (*models.Service, error) {
	svc.UserID = userID
	svc.Name = strings.TrimSpace(svc.Name)
	if err := validateService(svc); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, mapRepoError(err, repository.ErrServiceNotFound, apperror.ErrServiceNotFound)
	}
	return svc, nil
}

func (s *CatalogService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Service, error) {
	svc, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrServiceNotFound, apperror.ErrServiceNotFound)
	}
	return svc, nil
}

func (s *CatalogService) List(ctx context.Context, userID uuid.UUID) ([]models.Service, error) {
	services, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrServiceNotFound, apperror.ErrServiceNotFound)
	}
	return services, nil
}

func (s *CatalogService) Update(ctx context.Context, userID, id uuid.UUID, svc *models.Service) (*models.Service, error) {
	svc.ID = id
	svc.UserID = userID
	svc.Name = strings.TrimSpace(svc.Name)
	if err := validateService(svc); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, mapRepoError(err, repository.ErrServiceNotFound, apperror.ErrServiceNotFound)
	}
	return svc, nil
}

func (s *CatalogService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return mapRepoError(s.repo.Delete(ctx, userID, id), repository.ErrServiceNotFound, apperror.ErrServiceNotFound)
}
