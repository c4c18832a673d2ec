package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/propostas-backend/internal/models"
)

// ErrCompanyNotFound возвращается, если профиль компании ещё не заполнен.
var ErrCompanyNotFound = errors.New("company not found")

// CompanyRepository хранит реквизиты компании пользователя.
type CompanyRepository struct {
	db *sqlx.DB
}

// NewCompanyRepository создаёт экземпляр репозитория.
func NewCompanyRepository(db *sqlx.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// GetByUser возвращает профиль компании.
func (r *CompanyRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Company, error) {
	var c models.Company
	if err := r.db.GetContext(ctx, &c, `SELECT * FROM companies WHERE user_id = $1`, userID); err != nil {
		return nil, notFoundOr(err, ErrCompanyNotFound, "company repository: get")
	}
	return &c, nil
}

// Upsert создаёт или обновляет профиль компании.
func (r *CompanyRepository) Upsert(ctx context.Context, c *models.Company) error {
	query := `
		INSERT INTO companies (user_id, nome, cnpj, email, telefone, endereco, logo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE
		SET nome = EXCLUDED.nome, cnpj = EXCLUDED.cnpj, email = EXCLUDED.email,
		    telefone = EXCLUDED.telefone, endereco = EXCLUDED.endereco,
		    logo_url = EXCLUDED.logo_url, updated_at = NOW()
		RETURNING updated_at
	`
	if err := r.db.QueryRowxContext(ctx, query,
		c.UserID, c.Name, c.TaxID, c.Email, c.Phone, c.Address, c.LogoURL,
	).Scan(&c.UpdatedAt); err != nil {
		return fmt.Errorf("company repository: upsert %w", err)
	}
	return nil
}
