package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/propostas-backend/internal/models"
	"github.com/ignatzorin/propostas-backend/internal/repository/common"
)

var (
	// ErrProposalNotFound возвращается, когда предложение не найдено.
	ErrProposalNotFound = errors.New("proposal not found")
	// ErrProposalNumberTaken возвращается при дубликате номера предложения.
	ErrProposalNumberTaken = errors.New("proposal number already exists")
)

const insertItemsQuery = `INSERT INTO proposal_services (proposal_id, service_id, quantidade, preco_unitario, position)`

// ProposalRepository отвечает за предложения и их строки услуг.
type ProposalRepository struct {
	db *sqlx.DB
}

// NewProposalRepository создаёт экземпляр репозитория.
func NewProposalRepository(db *sqlx.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

// Create сохраняет предложение вместе со строками услуг в одной транзакции.
func (r *ProposalRepository) Create(ctx context.Context, p *models.Proposal) error {
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO proposals (user_id, client_id, numero, titulo, status, subtotal,
				desconto_percentual, acrescimo_percentual, valor_total, condicoes_pagamento,
				prazo_entrega, observacoes, data_validade)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING id, created_at, updated_at
		`
		if err := tx.QueryRowxContext(ctx, query,
			p.UserID, p.ClientID, p.Number, p.Title, p.Status, p.Subtotal,
			p.DiscountPercent, p.SurchargePercent, p.Total, p.PaymentTerms,
			p.DeliveryTime, p.Notes, p.ValidUntil,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		return insertItems(ctx, tx, p.ID, p.Items)
	})
	if err != nil {
		if common.IsUniqueViolation(err) {
			return ErrProposalNumberTaken
		}
		return fmt.Errorf("proposal repository: create %w", err)
	}
	return nil
}

// Update обновляет поля предложения и полностью заменяет строки услуг.
func (r *ProposalRepository) Update(ctx context.Context, p *models.Proposal) error {
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE proposals
			SET client_id = $3, titulo = $4, subtotal = $5, desconto_percentual = $6,
				acrescimo_percentual = $7, valor_total = $8, condicoes_pagamento = $9,
				prazo_entrega = $10, observacoes = $11, data_validade = $12, updated_at = NOW()
			WHERE id = $1 AND user_id = $2
			RETURNING updated_at
		`
		if err := tx.QueryRowxContext(ctx, query,
			p.ID, p.UserID, p.ClientID, p.Title, p.Subtotal, p.DiscountPercent,
			p.SurchargePercent, p.Total, p.PaymentTerms, p.DeliveryTime, p.Notes, p.ValidUntil,
		).Scan(&p.UpdatedAt); err != nil {
			return notFoundOr(err, ErrProposalNotFound, "update proposal")
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM proposal_services WHERE proposal_id = $1`, p.ID); err != nil {
			return fmt.Errorf("delete items: %w", err)
		}
		return insertItems(ctx, tx, p.ID, p.Items)
	})
	if errors.Is(err, ErrProposalNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("proposal repository: update %w", err)
	}
	return nil
}

func insertItems(ctx context.Context, tx *sqlx.Tx, proposalID uuid.UUID, items []models.ProposalItem) error {
	inserter := common.NewBatchInserter(tx, insertItemsQuery, 5, 100)
	for i, item := range items {
		if err := inserter.Add(ctx, proposalID, item.ServiceID, item.Quantity, item.UnitPrice, i); err != nil {
			return err
		}
	}
	return inserter.Flush(ctx)
}

// GetByID возвращает предложение пользователя со строками услуг.
func (r *ProposalRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Proposal, error) {
	p, err := common.GetOwned[models.Proposal](ctx, r.db, "proposals", id, userID, ErrProposalNotFound)
	if err != nil {
		return nil, err
	}
	if p.Items, err = r.ListItems(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByNumber ищет предложение по номеру (используется вебхуками подписи).
func (r *ProposalRepository) GetByNumber(ctx context.Context, number string) (*models.Proposal, error) {
	var p models.Proposal
	if err := r.db.GetContext(ctx, &p, `SELECT * FROM proposals WHERE numero = $1`, number); err != nil {
		return nil, notFoundOr(err, ErrProposalNotFound, "proposal repository: get by number")
	}
	return &p, nil
}

// ListItems возвращает строки услуг с названием и ценой из каталога.
func (r *ProposalRepository) ListItems(ctx context.Context, proposalID uuid.UUID) ([]models.ProposalItem, error) {
	items := make([]models.ProposalItem, 0)
	query := `
		SELECT ps.id, ps.proposal_id, ps.service_id, ps.quantidade, ps.preco_unitario,
		       s.nome AS service_nome, s.preco AS service_preco
		FROM proposal_services ps
		JOIN services s ON s.id = ps.service_id
		WHERE ps.proposal_id = $1
		ORDER BY ps.position ASC
	`
	if err := r.db.SelectContext(ctx, &items, query, proposalID); err != nil {
		return nil, fmt.Errorf("proposal repository: list items %w", err)
	}
	return items, nil
}

// ListByUser возвращает страницу предложений пользователя и общее количество.
// Пустой status означает все статусы.
func (r *ProposalRepository) ListByUser(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]models.Proposal, int, error) {
	proposals := make([]models.Proposal, 0)
	query := `
		SELECT * FROM proposals
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	if err := r.db.SelectContext(ctx, &proposals, query, userID, status, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("proposal repository: list %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM proposals WHERE user_id = $1 AND ($2 = '' OR status = $2)`
	if err := r.db.GetContext(ctx, &total, countQuery, userID, status); err != nil {
		return nil, 0, fmt.Errorf("proposal repository: count %w", err)
	}
	return proposals, total, nil
}

// UpdateStatus меняет статус предложения.
func (r *ProposalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE proposals SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("proposal repository: update status %w", err)
	}
	return common.ExpectAffected(res, ErrProposalNotFound)
}

// MarkSigned фиксирует подпись предложения.
func (r *ProposalRepository) MarkSigned(ctx context.Context, id uuid.UUID, signedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE proposals SET status = $2, signed_at = $3, updated_at = NOW() WHERE id = $1
	`, id, models.ProposalStatusSigned, signedAt)
	if err != nil {
		return fmt.Errorf("proposal repository: mark signed %w", err)
	}
	return common.ExpectAffected(res, ErrProposalNotFound)
}

// Delete удаляет предложение (строки услуг удаляются каскадом).
func (r *ProposalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return common.DeleteOwned(ctx, r.db, "proposals", id, userID, ErrProposalNotFound)
}
