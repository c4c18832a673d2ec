package models

import (
	"time"

	"github.com/google/uuid"
)

// Company реквизиты компании-исполнителя (одна на пользователя).
type Company struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Name      string    `db:"nome" json:"nome"`
	TaxID     *string   `db:"cnpj" json:"cnpj,omitempty"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Phone     *string   `db:"telefone" json:"telefone,omitempty"`
	Address   *string   `db:"endereco" json:"endereco,omitempty"`
	LogoURL   *string   `db:"logo_url" json:"logo_url,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
