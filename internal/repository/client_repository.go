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

// ErrClientNotFound возвращается, когда клиент не найден.
var ErrClientNotFound = errors.New("client not found")

// ClientRepository отвечает за работу с клиентами.
type ClientRepository struct {
	db *sqlx.DB
}

// NewClientRepository создаёт экземпляр репозитория.
func NewClientRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create сохраняет нового клиента.
func (r *ClientRepository) Create(ctx context.Context, c *models.Client) error {
	query := `
		INSERT INTO clients (user_id, nome, empresa, email, telefone, endereco, cidade, estado, cpf_cnpj)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	if err := r.db.QueryRowxContext(ctx, query,
		c.UserID, c.Name, c.Company, c.Email, c.Phone, c.Address, c.City, c.State, c.TaxID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("client repository: create %w", err)
	}
	return nil
}

// GetByID возвращает клиента пользователя.
func (r *ClientRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Client, error) {
	return common.GetOwned[models.Client](ctx, r.db, "clients", id, userID, ErrClientNotFound)
}

// ListByUser возвращает клиентов пользователя по алфавиту.
func (r *ClientRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Client, error) {
	return common.ListOwned[models.Client](ctx, r.db, "clients", userID, "nome ASC")
}

// Update обновляет данные клиента.
func (r *ClientRepository) Update(ctx context.Context, c *models.Client) error {
	query := `
		UPDATE clients
		SET nome = $3, empresa = $4, email = $5, telefone = $6, endereco = $7,
		    cidade = $8, estado = $9, cpf_cnpj = $10, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		c.ID, c.UserID, c.Name, c.Company, c.Email, c.Phone, c.Address, c.City, c.State, c.TaxID,
	).Scan(&c.UpdatedAt)
	return notFoundOr(err, ErrClientNotFound, "client repository: update")
}

// Delete удаляет клиента.
func (r *ClientRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return common.DeleteOwned(ctx, r.db, "clients", id, userID, ErrClientNotFound)
}
