package models

import (
	"time"

	"github.com/google/uuid"
)

// ProposalTemplate пользовательский шаблон документа с токенами {{...}}.
type ProposalTemplate struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Title     string    `db:"titulo" json:"titulo"`
	Content   string    `db:"conteudo" json:"conteudo"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
