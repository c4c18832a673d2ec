package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/propostas-backend/internal/logger"
	"github.com/ignatzorin/propostas-backend/internal/models"
	"github.com/ignatzorin/propostas-backend/internal/pkg/apperror"
	"github.com/ignatzorin/propostas-backend/internal/render"
	"github.com/ignatzorin/propostas-backend/internal/repository"
)

// Document результат рендеринга шаблона для предложения.
type Document struct {
	ProposalID *uuid.UUID `json:"proposal_id,omitempty"`
	TemplateID *uuid.UUID `json:"template_id,omitempty"`
	Content    string     `json:"conteudo"`
	RenderedAt time.Time  `json:"rendered_at"`
}

// DocumentService собирает данные предложения и рендерит шаблоны документов.
type DocumentService struct {
	proposals ProposalRepository
	clients   ClientRepository
	companies CompanyRepository
	templates *ProposalTemplateService
	renderer  *render.Renderer
	now       func() time.Time
}

func NewDocumentService(
	proposals ProposalRepository,
	clients ClientRepository,
	companies CompanyRepository,
	templates *ProposalTemplateService,
	renderer *render.Renderer,
) *DocumentService {
	return &DocumentService{
		proposals: proposals,
		clients:   clients,
		companies: companies,
		templates: templates,
		renderer:  renderer,
		now:       time.Now,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatPtr(v float64) *float64 {
	return &v
}

// BundleFromModels переводит модели хранилища в данные для шаблона.
// nil-модели дают отсутствующие секции.
func BundleFromModels(p *models.Proposal, c *models.Client, co *models.Company) render.Bundle {
	var b render.Bundle
	if p != nil {
		createdAt := p.CreatedAt
		b.Proposal = &render.Proposal{
			Number:           p.Number,
			Title:            p.Title,
			Status:           p.Status,
			ValidUntil:       p.ValidUntil,
			Subtotal:         floatPtr(p.Subtotal),
			DiscountPercent:  floatPtr(p.DiscountPercent),
			SurchargePercent: floatPtr(p.SurchargePercent),
			Total:            floatPtr(p.Total),
			PaymentTerms:     deref(p.PaymentTerms),
			DeliveryTime:     deref(p.DeliveryTime),
			Notes:            deref(p.Notes),
		}
		if !createdAt.IsZero() {
			b.Proposal.CreatedAt = &createdAt
		}
		for _, item := range p.Items {
			b.Services = append(b.Services, render.ServiceItem{
				Name:          item.ServiceName,
				Quantity:      item.Quantity,
				Price:         item.ServicePrice,
				OverridePrice: item.UnitPrice,
			})
		}
	}
	if c != nil {
		b.Client = &render.Client{
			Name:    c.Name,
			Company: deref(c.Company),
			Email:   deref(c.Email),
			Phone:   deref(c.Phone),
			Address: deref(c.Address),
			City:    deref(c.City),
			State:   deref(c.State),
			TaxID:   deref(c.TaxID),
		}
	}
	if co != nil {
		b.Company = &render.Company{
			Name:    co.Name,
			TaxID:   deref(co.TaxID),
			Email:   deref(co.Email),
			Phone:   deref(co.Phone),
			Address: deref(co.Address),
			LogoURL: deref(co.LogoURL),
		}
	}
	return b
}

// BuildBundle загружает предложение, клиента и компанию пользователя.
// Удалённый клиент или незаполненный профиль компании не являются ошибкой.
func (s *DocumentService) BuildBundle(ctx context.Context, userID, proposalID uuid.UUID) (render.Bundle, error) {
	p, err := s.proposals.GetByID(ctx, userID, proposalID)
	if err != nil {
		return render.Bundle{}, mapRepoError(err, repository.ErrProposalNotFound, apperror.ErrProposalNotFound)
	}

	var client *models.Client
	if p.ClientID != nil {
		client, err = s.clients.GetByID(ctx, userID, *p.ClientID)
		if err != nil && !errors.Is(err, repository.ErrClientNotFound) {
			return render.Bundle{}, mapRepoError(err, repository.ErrClientNotFound, apperror.ErrClientNotFound)
		}
	}

	company, err := s.companies.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrCompanyNotFound) {
		return render.Bundle{}, mapRepoError(err, repository.ErrCompanyNotFound, apperror.ErrCompanyNotFound)
	}

	return BundleFromModels(p, client, company), nil
}

// RenderProposal рендерит сохранённый шаблон пользователя по данным предложения.
func (s *DocumentService) RenderProposal(ctx context.Context, userID, proposalID, templateID uuid.UUID) (*Document, error) {
	tmpl, err := s.templates.Get(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}
	bundle, err := s.BuildBundle(ctx, userID, proposalID)
	if err != nil {
		return nil, err
	}

	content := s.renderer.Render(tmpl.Content, bundle)
	logger.Log.WithFields(logrus.Fields{
		"user_id":     userID,
		"proposal_id": proposalID,
		"template_id": templateID,
		"size":        len(content),
	}).Debug("proposal document rendered")

	return &Document{
		ProposalID: &proposalID,
		TemplateID: &templateID,
		Content:    content,
		RenderedAt: s.now(),
	}, nil
}

// RenderContent рендерит произвольный шаблон по переданным данным.
// Нестроковый шаблон даёт маркер ошибки, а не ошибку.
func (s *DocumentService) RenderContent(template any, data render.Bundle) *Document {
	content := s.renderer.RenderAny(template, data)
	if content == render.ErrorMarker {
		logger.Log.WithField("template_type", typeName(template)).Warn("template is not a string")
	}
	return &Document{Content: content, RenderedAt: s.now()}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return "other"
}
