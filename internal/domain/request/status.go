package request

import "github.com/oficinaflow/oficina-api/internal/httperr"

// ===============================
// Request Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
	StatusRejected   Status = "rejected"
	StatusCancelled  Status = "cancelled"
)

// Normalize trata status vazio/nulo legado como pendente
func Normalize(s string) Status {
	if s == "" {
		return StatusPending
	}
	return Status(s)
}

// ===============================
// Transitions
// ===============================

// NextOnAccept devolve o próximo status ao aceitar a solicitação:
// pendente → em andamento → concluída; rejeitada pode ser reaceita.
func NextOnAccept(current Status) (Status, error) {
	switch current {
	case StatusPending:
		return StatusInProgress, nil
	case StatusInProgress:
		return StatusFinished, nil
	case StatusRejected:
		return StatusInProgress, nil
	default:
		return "", httperr.InvalidTransition("request_not_acceptable", "A solicitação não pode ser aceita.")
	}
}

// NextOnReject devolve o próximo status ao recusar. Uma solicitação já
// aceita não volta para rejeitada: ela é cancelada. A assimetria é
// intencional.
func NextOnReject(current Status) (Status, error) {
	switch current {
	case StatusPending:
		return StatusRejected, nil
	case StatusInProgress:
		return StatusCancelled, nil
	default:
		return "", httperr.InvalidTransition("request_not_rejectable", "A solicitação não pode ser recusada.")
	}
}

// CanDelete: solicitação concluída não pode ser removida
func CanDelete(current Status) error {
	if current == StatusFinished {
		return httperr.Conflict("request_finished", "Solicitação concluída não pode ser removida.")
	}
	return nil
}

// IsOutstanding indica se a solicitação ainda bloqueia a OS
// (conta para o status aguardando peças)
func IsOutstanding(current Status) bool {
	return current == StatusPending || current == StatusInProgress
}
