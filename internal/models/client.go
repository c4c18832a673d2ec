package models

import (
	"time"

	"github.com/google/uuid"
)

// Client клиент, которому адресованы предложения.
type Client struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Name      string    `db:"nome" json:"nome"`
	Company   *string   `db:"empresa" json:"empresa,omitempty"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Phone     *string   `db:"telefone" json:"telefone,omitempty"`
	Address   *string   `db:"endereco" json:"endereco,omitempty"`
	City      *string   `db:"cidade" json:"cidade,omitempty"`
	State     *string   `db:"estado" json:"estado,omitempty"`
	TaxID     *string   `db:"cpf_cnpj" json:"cpf_cnpj,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
