package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/propostas-backend/internal/models"
	"github.com/ignatzorin/propostas-backend/internal/repository/common"
)

// ErrTemplateNotFound возвращается, когда шаблон не найден.
var ErrTemplateNotFound = errors.New("template not found")

// ProposalTemplateRepository хранит шаблоны документов.
type ProposalTemplateRepository struct {
	db *sqlx.DB
}

func NewProposalTemplateRepository(db *sqlx.DB) *ProposalTemplateRepository {
	return &ProposalTemplateRepository{db: db}
}

func (r *ProposalTemplateRepository) Create(ctx context.Context, t *models.ProposalTemplate) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO proposal_templates (user_id, titulo, conteudo)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, t.UserID, t.Title, t.Content).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("template repository: create %w", err)
	}
	return nil
}

// GetByID ищет шаблон без учёта владельца; владельца проверяет сервис.
func (r *ProposalTemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProposalTemplate, error) {
	var t models.ProposalTemplate
	err := r.db.GetContext(ctx, &t, `SELECT * FROM proposal_templates WHERE id = $1`, id)
	if err != nil {
		return nil, notFoundOr(err, ErrTemplateNotFound, "template repository: get")
	}
	return &t, nil
}

func (r *ProposalTemplateRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ProposalTemplate, error) {
	return common.ListOwned[models.ProposalTemplate](ctx, r.db, "proposal_templates", userID, "updated_at DESC")
}

func (r *ProposalTemplateRepository) Update(ctx context.Context, id uuid.UUID, title, content string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE proposal_templates SET titulo = $2, conteudo = $3, updated_at = NOW() WHERE id = $1
	`, id, title, content)
	if err != nil {
		return fmt.Errorf("template repository: update %w", err)
	}
	return common.ExpectAffected(res, ErrTemplateNotFound)
}

func (r *ProposalTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM proposal_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("template repository: delete %w", err)
	}
	return common.ExpectAffected(res, ErrTemplateNotFound)
}
