package models

import (
	"time"

	"github.com/google/uuid"
)

// Proposal коммерческое предложение клиенту.
type Proposal struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	UserID           uuid.UUID      `db:"user_id" json:"user_id"`
	ClientID         *uuid.UUID     `db:"client_id" json:"client_id,omitempty"`
	Number           string         `db:"numero" json:"numero"`
	Title            string         `db:"titulo" json:"titulo"`
	Status           string         `db:"status" json:"status"`
	Subtotal         float64        `db:"subtotal" json:"subtotal"`
	DiscountPercent  float64        `db:"desconto_percentual" json:"desconto_percentual"`
	SurchargePercent float64        `db:"acrescimo_percentual" json:"acrescimo_percentual"`
	Total            float64        `db:"valor_total" json:"valor_total"`
	PaymentTerms     *string        `db:"condicoes_pagamento" json:"condicoes_pagamento,omitempty"`
	DeliveryTime     *string        `db:"prazo_entrega" json:"prazo_entrega,omitempty"`
	Notes            *string        `db:"observacoes" json:"observacoes,omitempty"`
	ValidUntil       *time.Time     `db:"data_validade" json:"data_validade,omitempty"`
	SignedAt         *time.Time     `db:"signed_at" json:"signed_at,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
	Items            []ProposalItem `db:"-" json:"servicos,omitempty"`
}

// ProposalItem строка услуги в предложении.
// UnitPrice переопределяет цену каталога, если задана.
type ProposalItem struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ProposalID   uuid.UUID `db:"proposal_id" json:"proposal_id"`
	ServiceID    uuid.UUID `db:"service_id" json:"service_id"`
	Quantity     float64   `db:"quantidade" json:"quantidade"`
	UnitPrice    *float64  `db:"preco_unitario" json:"preco_unitario,omitempty"`
	ServiceName  string    `db:"service_nome" json:"service_nome"`
	ServicePrice float64   `db:"service_preco" json:"service_preco"`
}

// EffectivePrice возвращает цену за единицу с учётом переопределения.
func (i ProposalItem) EffectivePrice() float64 {
	if i.UnitPrice != nil {
		return *i.UnitPrice
	}
	return i.ServicePrice
}
