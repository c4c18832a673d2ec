package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/propostas-backend/internal/models"
	"github.com/ignatzorin/propostas-backend/internal/render"
	"github.com/ignatzorin/propostas-backend/internal/service"
)

// DateLayout is the wire format for calendar dates (data_validade)
const DateLayout = "2006-01-02"

// ClientRequest represents the request to create or update a client
type ClientRequest struct {
	Name    string  `json:"nome" binding:"required"`
	Company *string `json:"empresa"`
	Email   *string `json:"email"`
	Phone   *string `json:"telefone"`
	Address *string `json:"endereco"`
	City    *string `json:"cidade"`
	State   *string `json:"estado"`
	TaxID   *string `json:"cpf_cnpj"`
}

// ToModel converts the request into a client model
func (r ClientRequest) ToModel() *models.Client {
	return &models.Client{
		Name:    r.Name,
		Company: r.Company,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		City:    r.City,
		State:   r.State,
		TaxID:   r.TaxID,
	}
}

// ServiceRequest represents the request to create or update a catalog service
type ServiceRequest struct {
	Name        string   `json:"nome" binding:"required"`
	Description *string  `json:"descricao"`
	Price       *float64 `json:"preco" binding:"required"`
}

// ToModel converts the request into a service model
func (r ServiceRequest) ToModel() *models.Service {
	s := &models.Service{Name: r.Name, Description: r.Description}
	if r.Price != nil {
		s.Price = *r.Price
	}
	return s
}

// TemplateRequest represents the request to create or update a document template
type TemplateRequest struct {
	Title   string `json:"titulo" binding:"required"`
	Content string `json:"conteudo" binding:"required"`
}

// CompanyRequest represents the company profile update
type CompanyRequest struct {
	Name    string  `json:"nome" binding:"required"`
	TaxID   *string `json:"cnpj"`
	Email   *string `json:"email"`
	Phone   *string `json:"telefone"`
	Address *string `json:"endereco"`
	LogoURL *string `json:"logo_url"`
}

// ToModel converts the request into a company model
func (r CompanyRequest) ToModel() *models.Company {
	return &models.Company{
		Name:    r.Name,
		TaxID:   r.TaxID,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		LogoURL: r.LogoURL,
	}
}

// ProposalItemRequest represents a service line of a proposal
type ProposalItemRequest struct {
	ServiceID string   `json:"service_id" binding:"required"`
	Quantity  float64  `json:"quantidade"`
	UnitPrice *float64 `json:"preco_unitario"`
}

// ProposalRequest represents the request to create or update a proposal
type ProposalRequest struct {
	ClientID         *string               `json:"client_id"`
	Number           string                `json:"numero"`
	Title            string                `json:"titulo" binding:"required"`
	DiscountPercent  float64               `json:"desconto_percentual"`
	SurchargePercent float64               `json:"acrescimo_percentual"`
	PaymentTerms     *string               `json:"condicoes_pagamento"`
	DeliveryTime     *string               `json:"prazo_entrega"`
	Notes            *string               `json:"observacoes"`
	ValidUntil       *string               `json:"data_validade"`
	Items            []ProposalItemRequest `json:"servicos"`
}

// ToInput parses identifiers and dates into the service input
func (r ProposalRequest) ToInput() (service.ProposalInput, error) {
	in := service.ProposalInput{
		Number:           r.Number,
		Title:            r.Title,
		DiscountPercent:  r.DiscountPercent,
		SurchargePercent: r.SurchargePercent,
		PaymentTerms:     r.PaymentTerms,
		DeliveryTime:     r.DeliveryTime,
		Notes:            r.Notes,
	}

	if r.ClientID != nil && *r.ClientID != "" {
		id, err := uuid.Parse(*r.ClientID)
		if err != nil {
			return in, fmt.Errorf("client_id inválido")
		}
		in.ClientID = &id
	}

	if r.ValidUntil != nil && *r.ValidUntil != "" {
		t, err := time.Parse(DateLayout, *r.ValidUntil)
		if err != nil {
			return in, fmt.Errorf("data_validade deve estar no formato AAAA-MM-DD")
		}
		in.ValidUntil = &t
	}

	for i, item := range r.Items {
		id, err := uuid.Parse(item.ServiceID)
		if err != nil {
			return in, fmt.Errorf("servicos[%d].service_id inválido", i)
		}
		in.Items = append(in.Items, service.ProposalItemInput{
			ServiceID: id,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return in, nil
}

// UpdateProposalStatusRequest represents the request to update proposal status
type UpdateProposalStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RenderPreviewRequest carries an ad-hoc template and its data.
// Template is untyped: non-string values render to the error marker.
type RenderPreviewRequest struct {
	Template any           `json:"template"`
	Data     render.Bundle `json:"data"`
}

// SignatureWebhookRequest represents an event posted by the signature provider
type SignatureWebhookRequest struct {
	Event          string     `json:"event" binding:"required"`
	ProposalNumber string     `json:"proposal_number" binding:"required"`
	Signer         string     `json:"signer"`
	OccurredAt     *time.Time `json:"occurred_at"`
}

// ToEvent converts the request into a service event
func (r SignatureWebhookRequest) ToEvent() service.SignatureEvent {
	return service.SignatureEvent{
		Event:          r.Event,
		ProposalNumber: r.ProposalNumber,
		Signer:         r.Signer,
		OccurredAt:     r.OccurredAt,
	}
}
