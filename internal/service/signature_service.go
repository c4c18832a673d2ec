package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/propostas-backend/internal/logger"
	"github.com/ignatzorin/propostas-backend/internal/models"
	"github.com/ignatzorin/propostas-backend/internal/pkg/apperror"
	"github.com/ignatzorin/propostas-backend/internal/repository"
)

// SignatureEvent событие от провайдера электронной подписи.
type SignatureEvent struct {
	Event          string     `json:"event"`
	ProposalNumber string     `json:"proposal_number"`
	Signer         string     `json:"signer,omitempty"`
	OccurredAt     *time.Time `json:"occurred_at,omitempty"`
}

// SignatureResult итог обработки события.
type SignatureResult struct {
	ProposalNumber string `json:"proposal_number"`
	Status         string `json:"status"`
	Changed        bool   `json:"changed"`
}

// SignatureService обрабатывает вебхуки провайдера подписи.
type SignatureService struct {
	repo ProposalRepository
	hub  WSNotifier
	now  func() time.Time
}

func NewSignatureService(repo ProposalRepository) *SignatureService {
	return &SignatureService{repo: repo, now: time.Now}
}

// SetHub устанавливает WebSocket hub для отправки уведомлений.
func (s *SignatureService) SetHub(hub WSNotifier) {
	s.hub = hub
}

// Handle применяет событие к предложению, найденному по номеру.
// signed: enviada или aprovada переходят в assinada, повтор для assinada ничего не меняет.
// refused: enviada переходит в rejeitada. viewed только уведомляет владельца.
func (s *SignatureService) Handle(ctx context.Context, ev SignatureEvent) (*SignatureResult, error) {
	number := strings.TrimSpace(ev.ProposalNumber)
	if number == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "número da proposta é obrigatório")
	}

	p, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrProposalNotFound, apperror.ErrProposalNotFound)
	}

	log := logger.Log.WithFields(logrus.Fields{
		"event":       ev.Event,
		"proposal_id": p.ID,
		"numero":      p.Number,
		"status":      p.Status,
	})

	result := &SignatureResult{ProposalNumber: p.Number, Status: p.Status}
	previous := p.Status

	switch ev.Event {
	case models.SignatureEventViewed:
		log.Info("proposal viewed by signer")
		s.notify(p, previous, ev.Event)
		return result, nil

	case models.SignatureEventSigned:
		if p.Status == models.ProposalStatusSigned {
			return result, nil
		}
		if p.Status != models.ProposalStatusSent && p.Status != models.ProposalStatusApproved {
			return nil, apperror.ErrInvalidTransition
		}
		signedAt := s.now()
		if ev.OccurredAt != nil {
			signedAt = *ev.OccurredAt
		}
		if err := s.repo.MarkSigned(ctx, p.ID, signedAt); err != nil {
			return nil, mapRepoError(err, repository.ErrProposalNotFound, apperror.ErrProposalNotFound)
		}
		p.Status = models.ProposalStatusSigned

	case models.SignatureEventRefused:
		if p.Status == models.ProposalStatusRejected {
			return result, nil
		}
		if p.Status != models.ProposalStatusSent {
			return nil, apperror.ErrInvalidTransition
		}
		if err := s.repo.UpdateStatus(ctx, p.ID, models.ProposalStatusRejected); err != nil {
			return nil, mapRepoError(err, repository.ErrProposalNotFound, apperror.ErrProposalNotFound)
		}
		p.Status = models.ProposalStatusRejected

	default:
		return nil, apperror.New(apperror.ErrCodeValidation, "evento de assinatura desconhecido")
	}

	log.WithField("new_status", p.Status).Info("proposal status changed by signature event")
	s.notify(p, previous, ev.Event)
	result.Status = p.Status
	result.Changed = true
	return result, nil
}

func (s *SignatureService) notify(p *models.Proposal, previous, event string) {
	if s.hub == nil {
		return
	}
	change := StatusChange{
		ProposalID:     p.ID,
		Number:         p.Number,
		PreviousStatus: previous,
		Status:         p.Status,
		Source:         "assinatura:" + event,
	}
	if err := s.hub.BroadcastToUser(p.UserID, models.EventProposalStatusChanged, change); err != nil {
		logger.Log.WithField("proposal_id", p.ID).WithError(err).Warn("failed to push signature event")
	}
}
