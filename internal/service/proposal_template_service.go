package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/propostas-backend/internal/models"
	"github.com/ignatzorin/propostas-backend/internal/pkg/apperror"
	"github.com/ignatzorin/propostas-backend/internal/repository"
	"github.com/ignatzorin/propostas-backend/internal/validation"
)

type TemplateRepository interface {
	Create(ctx context.Context, t *models.ProposalTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProposalTemplate, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ProposalTemplate, error)
	Update(ctx context.Context, id uuid.UUID, title, content string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProposalTemplateService struct {
	repo TemplateRepository
}

func NewProposalTemplateService(r TemplateRepository) *ProposalTemplateService {
	return &ProposalTemplateService{repo: r}
}

func (s *ProposalTemplateService) Create(ctx context.Context, userID uuid.UUID, title, content string) (*models.ProposalTemplate, error) {
	if err := validation.ValidateTemplate(title, content); err != nil {
		return nil, apperror.Validation(err)
	}
	t := &models.ProposalTemplate{UserID: userID, Title: title, Content: content}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, mapRepoError(err, repository.ErrTemplateNotFound, apperror.ErrTemplateNotFound)
	}
	return t, nil
}

func (s *ProposalTemplateService) List(ctx context.Context, userID uuid.UUID) ([]models.ProposalTemplate, error) {
	templates, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrTemplateNotFound, apperror.ErrTemplateNotFound)
	}
	return templates, nil
}

// Get возвращает шаблон, если он принадлежит пользователю.
func (s *ProposalTemplateService) Get(ctx context.Context, userID, templateID uuid.UUID) (*models.ProposalTemplate, error) {
	t, err := s.repo.GetByID(ctx, templateID)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrTemplateNotFound, apperror.ErrTemplateNotFound)
	}
	if t.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return t, nil
}

func (s *ProposalTemplateService) Update(ctx context.Context, userID, templateID uuid.UUID, title, content string) error {
	if err := validation.ValidateTemplate(title, content); err != nil {
		return apperror.Validation(err)
	}
	if _, err := s.Get(ctx, userID, templateID); err != nil {
		return err
	}
	return mapRepoError(s.repo.Update(ctx, templateID, title, content), repository.ErrTemplateNotFound, apperror.ErrTemplateNotFound)
}

func (s *ProposalTemplateService) Delete(ctx context.Context, userID, templateID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, templateID); err != nil {
		return err
	}
	return mapRepoError(s.repo.Delete(ctx, templateID), repository.ErrTemplateNotFound, apperror.ErrTemplateNotFound)
}
