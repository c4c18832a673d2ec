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

type CompanyRepository interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.Company, error)
	Upsert(ctx context.Context, c *models.Company) error
}

// CompanyService хранит реквизиты компании-исполнителя.
type CompanyService struct {
	repo CompanyRepository
}

func NewCompanyService(repo CompanyRepository) *CompanyService {
	return &CompanyService{repo: repo}
}

func (s *CompanyService) Get(ctx context.Context, userID uuid.UUID) (*models.Company, error) {
	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrCompanyNotFound, apperror.ErrCompanyNotFound)
	}
	return c, nil
}

// Save создаёт или обновляет профиль компании.
func (s *CompanyService) Save(ctx context.Context, userID uuid.UUID, c *models.Company) (*models.Company, error) {
	c.UserID = userID
	c.Name = strings.TrimSpace(c.Name)
	err := firstError(
		validation.ValidateName("nome da empresa", c.Name),
		validation.ValidateTaxID(c.TaxID),
		validation.ValidateOptionalEmail(c.Email),
		validation.ValidatePhone(c.Phone),
		validation.ValidateURL("logo", c.LogoURL),
	)
	if err != nil {
		return nil, apperror.Validation(err)
	}
	if err := s.repo.Upsert(ctx, c); err != nil {
		return nil, mapRepoError(err, repository.ErrCompanyNotFound, apperror.ErrCompanyNotFound)
	}
	return c, nil
}
