package order

import "github.com/oficinaflow/oficina-api/internal/httperr"

// ===============================
// Service Order Status
// ===============================

type Status string

const (
	StatusPending           Status = "pending"
	StatusInProgress        Status = "in_progress"
	StatusApproved          Status = "approved"
	StatusCancelled         Status = "cancelled"
	StatusRejected          Status = "rejected"
	StatusAwaitingParts     Status = "awaiting_parts"
	StatusServiceStopped    Status = "service_stopped"
	StatusUnderSupervision  Status = "under_supervision"
	StatusServicesFinalized Status = "services_finalized"
	StatusServiceReopened   Status = "service_reopened"
	StatusFinalized         Status = "finalized"
)

var allStatuses = map[Status]bool{
	StatusPending:           true,
	StatusInProgress:        true,
	StatusApproved:          true,
	StatusCancelled:         true,
	StatusRejected:          true,
	StatusAwaitingParts:     true,
	StatusServiceStopped:    true,
	StatusUnderSupervision:  true,
	StatusServicesFinalized: true,
	StatusServiceReopened:   true,
	StatusFinalized:         true,
}

func InitialStatus() Status {
	return StatusPending
}

func IsValid(s Status) bool {
	return allStatuses[s]
}

// IsTerminal: finalized encerra a OS de vez; cancelled/rejected abandonam
// sem acerto financeiro. Nos três casos itens/solicitações/checklist
// ficam congelados.
func IsTerminal(s Status) bool {
	return s == StatusFinalized || s == StatusCancelled || s == StatusRejected
}

// ===============================
// Validations
// ===============================

// CanSetStatus valida apenas pertencimento ao enum. Não há tabela de
// transição origem→destino: qualquer status é alcançável por ação
// explícita do usuário (decisão registrada no DESIGN.md).
func CanSetStatus(target Status) error {
	if !IsValid(target) {
		return httperr.Validation("invalid_status", "Status inválido.")
	}
	return nil
}

// CanAccept define se uma OS pendente pode ser aceita
func CanAccept(current Status) error {
	if current != StatusPending {
		return httperr.InvalidTransition("order_not_pending", "A OS não está pendente.")
	}
	return nil
}

// CanFinalize define se a OS pode ser encerrada de vez
func CanFinalize(current Status) error {
	if current != StatusServicesFinalized {
		return httperr.InvalidTransition("services_not_finalized", "Os serviços ainda não foram finalizados.")
	}
	return nil
}

// CanMutateContents bloqueia itens/solicitações/checklist em OS terminal
func CanMutateContents(current Status) error {
	if IsTerminal(current) {
		return httperr.Conflict("order_closed", "A OS está encerrada.")
	}
	return nil
}
