package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/propostas-backend/internal/logger"
	"github.com/ignatzorin/propostas-backend/internal/models"
	"github.com/ignatzorin/propostas-backend/internal/pkg/apperror"
	"github.com/ignatzorin/propostas-backend/internal/render"
	"github.com/ignatzorin/propostas-backend/internal/repository"
	"github.com/ignatzorin/propostas-backend/internal/validation"
)

// numberAttempts сколько раз пробуем сгенерировать свободный номер.
const numberAttempts = 5

type ProposalRepository interface {
	Create(ctx context.Context, p *models.Proposal) error
	Update(ctx context.Context, p *models.Proposal) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Proposal, error)
	GetByNumber(ctx context.Context, number string) (*models.Proposal, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]models.Proposal, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	MarkSigned(ctx context.Context, id uuid.UUID, signedAt time.Time) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// WSNotifier интерфейс для отправки WebSocket уведомлений.
type WSNotifier interface {
	BroadcastToUser(userID uuid.UUID, event string, data any) error
}

// ProposalItemInput строка услуги во входных данных.
type ProposalItemInput struct {
	ServiceID uuid.UUID
	Quantity  float64
	UnitPrice *float64
}

// ProposalInput данные для создания и обновления предложения.
type ProposalInput struct {
	ClientID         *uuid.UUID
	Number           string
	Title            string
	DiscountPercent  float64
	SurchargePercent float64
	PaymentTerms     *string
	DeliveryTime     *string
	Notes            *string
	ValidUntil       *time.Time
	Items            []ProposalItemInput
}

// StatusChange полезная нагрузка события proposal.status_changed.
type StatusChange struct {
	ProposalID     uuid.UUID `json:"proposal_id"`
	Number         string    `json:"numero"`
	PreviousStatus string    `json:"status_anterior"`
	Status         string    `json:"status"`
	Source         string    `json:"origem"`
}

// ProposalService содержит бизнес-логику предложений: расчёт сумм, нумерацию и статусы.
type ProposalService struct {
	repo    ProposalRepository
	clients ClientRepository
	catalog CatalogRepository
	hub     WSNotifier
	now     func() time.Time
	newCode func() string
}

func NewProposalService(repo ProposalRepository, clients ClientRepository, catalog CatalogRepository) *ProposalService {
	return &ProposalService{
		repo:    repo,
		clients: clients,
		catalog: catalog,
		now:     time.Now,
		newCode: randomCode,
	}
}

// SetHub устанавливает WebSocket hub для отправки уведомлений.
func (s *ProposalService) SetHub(hub WSNotifier) {
	s.hub = hub
}

func randomCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
}

// GenerateNumber формирует номер вида PROP-YYYYMMDD-XXXX.
func GenerateNumber(at time.Time, code string) string {
	return fmt.Sprintf("PROP-%s-%s", at.Format("20060102"), code)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func validateProposalInput(in *ProposalInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Number = strings.TrimSpace(in.Number)
	errs := []error{
		validation.ValidateProposalTitle(in.Title),
		validation.ValidatePercent("desconto", in.DiscountPercent),
		validation.ValidatePercent("acréscimo", in.SurchargePercent),
		validation.ValidateOptionalText("condições de pagamento", in.PaymentTerms, validation.MaxTextFieldLength),
		validation.ValidateOptionalText("prazo de entrega", in.DeliveryTime, validation.MaxTextFieldLength),
		validation.ValidateOptionalText("observações", in.Notes, validation.MaxTextFieldLength),
	}
	if in.Number != "" {
		errs = append(errs, validation.ValidateLength("número", in.Number, 1, 50))
	}
	for _, item := range in.Items {
		errs = append(errs, validation.ValidateQuantity(item.Quantity))
		if item.UnitPrice != nil {
			errs = append(errs, validation.ValidatePrice("preço unitário", *item.UnitPrice))
		}
	}
	if err := firstError(errs...); err != nil {
		return apperror.Validation(err)
	}
	return nil
}

// buildItems подтягивает названия и цены каталога для строк предложения.
func (s *ProposalService) buildItems(ctx context.Context, userID uuid.UUID, inputs []ProposalItemInput) ([]models.ProposalItem, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ServiceID)
	}
	services, err := s.catalog.GetMany(ctx, userID, ids)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrServiceNotFound, apperror.ErrServiceNotFound)
	}

	items := make([]models.ProposalItem, 0, len(inputs))
	for _, in := range inputs {
		svc, ok := services[in.ServiceID]
		if !ok {
			return nil, apperror.ErrServiceNotFound
		}
		items = append(items, models.ProposalItem{
			ServiceID:    in.ServiceID,
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			ServiceName:  svc.Name,
			ServicePrice: svc.Price,
		})
	}
	return items, nil
}

// applyInput переносит входные данные в модель и пересчитывает суммы.
func applyInput(p *models.Proposal, in ProposalInput, items []models.ProposalItem) {
	p.ClientID = in.ClientID
	p.Title = in.Title
	p.DiscountPercent = in.DiscountPercent
	p.SurchargePercent = in.SurchargePercent
	p.PaymentTerms = in.PaymentTerms
	p.DeliveryTime = in.DeliveryTime
	p.Notes = in.Notes
	p.ValidUntil = in.ValidUntil
	p.Items = items

	var subtotal float64
	for _, item := range items {
		subtotal += item.EffectivePrice() * item.Quantity
	}
	totals := render.ComputeTotals(subtotal, in.DiscountPercent, in.SurchargePercent)
	p.Subtotal = roundCents(totals.Subtotal)
	p.Total = roundCents(totals.Total)
}

func (s *ProposalService) checkClient(ctx context.Context, userID uuid.UUID, clientID *uuid.UUID) error {
	if clientID == nil {
		return nil
	}
	_, err := s.clients.GetByID(ctx, userID, *clientID)
	return mapRepoError(err, repository.ErrClientNotFound, apperror.ErrClientNotFound)
}

// Create создаёт предложение в статусе rascunho.
func (s *ProposalService) Create(ctx context.Context, userID uuid.UUID, in ProposalInput) (*models.Proposal, error) {
	if err := validateProposalInput(&in); err != nil {
		return nil, err
	}
	if err := s.checkClient(ctx, userID, in.ClientID); err != nil {
		return nil, err
	}
	items, err := s.buildItems(ctx, userID, in.Items)
	if err != nil {
		return nil, err
	}

	p := &models.Proposal{UserID: userID, Status: models.ProposalStatusDraft}
	applyInput(p, in, items)

	if in.Number != "" {
		p.Number = in.Number
		if err := s.repo.Create(ctx, p); err != nil {
			if errors.Is(err, repository.ErrProposalNumberTaken) {
				return nil, apperror.ErrProposalNumberUsed
			}
			return nil, mapRepoError(err, repository.ErrProposalNotFound, apperror.ErrProposalNotFound)
		}
		return p, nil
	}

	for attempt := 0; attempt < numberAttempts; attempt++ {
		p.Number = GenerateNumber(s.now(), s.newCode())
		err = s.repo.Create(ctx, p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, repository.ErrProposalNumberTaken) {
			return nil, mapRepoError(err, repository.ErrProposalNotFound, apperror.ErrProposalNotFound)
		}
		logger.Log.WithFields(logrus.Fields{"numero": p.Number, "attempt": attempt + 1}).Warn("proposal number collision")
	}
	return nil, apperror.ErrProposalNumberUsed
}

// Get возвращает предложение со строками услуг.
func (s *ProposalService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Proposal, error) {
	p, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrProposalNotFound, apperror.ErrProposalNotFound)
	}
	return p, nil
}

// List возвращает страницу предложений и общее количество.
func (s *ProposalService) List(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]models.Proposal, int, error) {
	if status != "" {
		if _, ok := models.ValidProposalStatuses[status]; !ok {
			return nil, 0, apperror.New(apperror.ErrCodeValidation, "status inválido")
		}
	}
	proposals, total, err := s.repo.ListByUser(ctx, userID, status, limit, offset)
	if err != nil {
		return nil, 0, mapRepoError(err, repository.ErrProposalNotFound, apperror.ErrProposalNotFound)
	}
	return proposals, total, nil
}

// Update заменяет поля и строки услуг. Номер и статус не меняются.
func (s *ProposalService) Update(ctx context.Context, userID, id uuid.UUID, in ProposalInput) (*models.Proposal, error) {
	if err := validateProposalInput(&in); err != nil {
		return nil, err
	}
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if p.Status == models.ProposalStatusSigned {
		return nil, apperror.ErrProposalLocked
	}
	if err := s.checkClient(ctx, userID, in.ClientID); err != nil {
		return nil, err
	}
	items, err := s.buildItems(ctx, userID, in.Items)
	if err != nil {
		return nil, err
	}

	applyInput(p, in, items)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, mapRepoError(err, repository.ErrProposalNotFound, apperror.ErrProposalNotFound)
	}
	return p, nil
}

// ChangeStatus переводит предложение в новый статус по таблице переходов.
func (s *ProposalService) ChangeStatus(ctx context.Context, userID, id uuid.UUID, status string) (*models.Proposal, error) {
	if _, ok := models.ValidProposalStatuses[status]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "status inválido")
	}
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, p, status, "usuario"); err != nil {
		return nil, err
	}
	return p, nil
}

// transition применяет переход, сохраняет его и уведомляет владельца.
func (s *ProposalService) transition(ctx context.Context, p *models.Proposal, status, source string) error {
	if !models.CanTransition(p.Status, status) {
		return apperror.ErrInvalidTransition
	}

	var err error
	if status == models.ProposalStatusSigned {
		signedAt := s.now()
		err = s.repo.MarkSigned(ctx, p.ID, signedAt)
		if err == nil {
			p.SignedAt = &signedAt
		}
	} else {
		err = s.repo.UpdateStatus(ctx, p.ID, status)
	}
	if err != nil {
		return mapRepoError(err, repository.ErrProposalNotFound, apperror.ErrProposalNotFound)
	}

	previous := p.Status
	p.Status = status
	s.notify(p.UserID, StatusChange{
		ProposalID:     p.ID,
		Number:         p.Number,
		PreviousStatus: previous,
		Status:         status,
		Source:         source,
	})
	return nil
}

func (s *ProposalService) notify(userID uuid.UUID, change StatusChange) {
	if s.hub == nil {
		return
	}
	if err := s.hub.BroadcastToUser(userID, models.EventProposalStatusChanged, change); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"proposal_id": change.ProposalID,
			"status":      change.Status,
		}).WithError(err).Warn("failed to push proposal status event")
	}
}

func (s *ProposalService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return mapRepoError(s.repo.Delete(ctx, userID, id), repository.ErrProposalNotFound, apperror.ErrProposalNotFound)
}
