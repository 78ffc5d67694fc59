package order

import (
	"time"

	"github.com/oficinaflow/oficina-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// SetStatus aplica uma mudança direta de status, com troca opcional de
// responsável (já validado quanto ao papel pelo caso de uso).
func SetStatus(o *models.ServiceOrder, target Status, responsibleID *uint) error {
	if err := CanSetStatus(target); err != nil {
		return err
	}

	o.Status = string(target)
	if responsibleID != nil {
		o.ResponsibleID = responsibleID
	}
	return nil
}

// Accept aceita uma OS pendente e atribui o responsável.
func Accept(o *models.ServiceOrder, responsibleID uint) error {
	if err := CanAccept(Status(o.Status)); err != nil {
		return err
	}

	o.Status = string(StatusInProgress)
	o.ResponsibleID = &responsibleID
	return nil
}

// ToggleServicesFinalized alterna entre "serviços finalizados" e
// "serviço reaberto". De services_finalized volta para service_reopened;
// de qualquer outro status não terminal vai para services_finalized.
func ToggleServicesFinalized(o *models.ServiceOrder) (Status, error) {
	current := Status(o.Status)

	if IsTerminal(current) {
		return "", CanMutateContents(current)
	}

	target := StatusServicesFinalized
	if current == StatusServicesFinalized {
		target = StatusServiceReopened
	}

	o.Status = string(target)
	return target, nil
}

// Finalize encerra a OS. Só vale a partir de services_finalized.
func Finalize(o *models.ServiceOrder, closedBy uint, now time.Time) error {
	if err := CanFinalize(Status(o.Status)); err != nil {
		return err
	}

	o.Status = string(StatusFinalized)
	o.ClosedByID = &closedBy
	o.ClosedAt = &now
	return nil
}

// MarkAwaitingParts move a OS para aguardando peças quando uma
// solicitação de peça entra em uma OS em andamento.
func MarkAwaitingParts(o *models.ServiceOrder) bool {
	if Status(o.Status) != StatusInProgress {
		return false
	}
	o.Status = string(StatusAwaitingParts)
	return true
}

// ReturnFromAwaitingParts devolve a OS para em andamento quando não
// restam solicitações de peça pendentes.
func ReturnFromAwaitingParts(o *models.ServiceOrder) bool {
	if Status(o.Status) != StatusAwaitingParts {
		return false
	}
	o.Status = string(StatusInProgress)
	return true
}
