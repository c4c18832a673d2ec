package models

// ProposalStatus константы статусов предложений
const (
	ProposalStatusDraft    = "rascunho"
	ProposalStatusSent     = "enviada"
	ProposalStatusApproved = "aprovada"
	ProposalStatusRejected = "rejeitada"
	ProposalStatusSigned   = "assinada"
)

// ValidProposalStatuses список валидных статусов предложений
var ValidProposalStatuses = map[string]struct{}{
	ProposalStatusDraft:    {},
	ProposalStatusSent:     {},
	ProposalStatusApproved: {},
	ProposalStatusRejected: {},
	ProposalStatusSigned:   {},
}

// proposalTransitions допустимые переходы между статусами
var proposalTransitions = map[string][]string{
	ProposalStatusDraft:    {ProposalStatusSent},
	ProposalStatusSent:     {ProposalStatusApproved, ProposalStatusRejected, ProposalStatusDraft},
	ProposalStatusApproved: {ProposalStatusSigned},
	ProposalStatusRejected: {ProposalStatusDraft},
}

// CanTransition проверяет, можно ли перевести предложение из from в to.
func CanTransition(from, to string) bool {
	for _, next := range proposalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SignatureEvent типы событий от провайдера электронной подписи
const (
	SignatureEventViewed  = "viewed"
	SignatureEventSigned  = "signed"
	SignatureEventRefused = "refused"
)

// WebSocket события
const (
	EventProposalStatusChanged = "proposal.status_changed"
)
