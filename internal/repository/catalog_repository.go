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

// ErrServiceNotFound возвращается, когда услуга каталога не найдена.
var ErrServiceNotFound = errors.New("service not found")

// CatalogRepository хранит каталог услуг пользователя.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository создаёт экземпляр репозитория.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Create добавляет услугу в каталог.
func (r *CatalogRepository) Create(ctx context.Context, s *models.Service) error {
	query := `
		INSERT INTO services (user_id, nome, descricao, preco)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	if err := r.db.QueryRowxContext(ctx, query, s.UserID, s.Name, s.Description, s.Price).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("catalog repository: create %w", err)
	}
	return nil
}

// GetByID возвращает услугу пользователя.
func (r *CatalogRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Service, error) {
	return common.GetOwned[models.Service](ctx, r.db, "services", id, userID, ErrServiceNotFound)
}

// ListByUser возвращает каталог пользователя.
func (r *CatalogRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Service, error) {
	return common.ListOwned[models.Service](ctx, r.db, "services", userID, "nome ASC")
}

// GetMany возвращает услуги пользователя по списку ID.
func (r *CatalogRepository) GetMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]models.Service, error) {
	result := make(map[uuid.UUID]models.Service, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM services WHERE user_id = ? AND id IN (?)`, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("catalog repository: build query %w", err)
	}

	var services []models.Service
	if err := r.db.SelectContext(ctx, &services, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("catalog repository: get many %w", err)
	}
	for _, s := range services {
		result[s.ID] = s
	}
	return result, nil
}

// Update обновляет услугу.
func (r *CatalogRepository) Update(ctx context.Context, s *models.Service) error {
	query := `
		UPDATE services SET nome = $3, descricao = $4, preco = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, s.ID, s.UserID, s.Name, s.Description, s.Price).Scan(&s.UpdatedAt)
	return notFoundOr(err, ErrServiceNotFound, "catalog repository: update")
}

// Delete удаляет услугу из каталога.
func (r *CatalogRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return common.DeleteOwned(ctx, r.db, "services", id, userID, ErrServiceNotFound)
}
