package models

import (
	"time"

	"github.com/google/uuid"
)

// Service позиция каталога услуг пользователя с базовой ценой.
type Service struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Name        string    `db:"nome" json:"nome"`
	Description *string   `db:"descricao" json:"descricao,omitempty"`
	Price       float64   `db:"preco" json:"preco"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
