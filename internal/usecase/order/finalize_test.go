package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/models"
)

func TestFinalizeOrder(t *testing.T) {
	repo := new(mockRepo)
	uc := NewFinalizeOrder(repo, noopNotifier(), noopAudit())

	o := &models.ServiceOrder{
		ID:         1,
		Code:       "OS-ABC12345",
		Status:     "services_finalized",
		OpenedByID: 2,
	}

	repo.On("GetOrderForUpdate", mock.Anything, uint(1), uint(1)).Return(o, nil)
	repo.On("UpdateOrder", mock.Anything, o).Return(nil)

	updated, err := uc.Execute(context.Background(), 1, 1, 3)
	assert.NoError(t, err)
	assert.Equal(t, "finalized", updated.Status)
	assert.Equal(t, uint(3), *updated.ClosedByID)
	assert.NotNil(t, updated.ClosedAt)
	repo.AssertExpectations(t)
}

func TestFinalizeOrderExigeServicosFinalizados(t *testing.T) {
	repo := new(mockRepo)
	uc := NewFinalizeOrder(repo, noopNotifier(), noopAudit())

	o := &models.ServiceOrder{ID: 1, Status: "in_progress"}
	repo.On("GetOrderForUpdate", mock.Anything, uint(1), uint(1)).Return(o, nil)

	_, err := uc.Execute(context.Background(), 1, 1, 3)
	assert.True(t, httperr.IsBusiness(err, "services_not_finalized"))
	repo.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything)
}

func TestFinalizeServicesAlterna(t *testing.T) {
	repo := new(mockRepo)
	uc := NewFinalizeServices(repo, noopNotifier(), noopAudit())

	o := &models.ServiceOrder{ID: 1, Code: "OS-X", Status: "in_progress", OpenedByID: 2}
	repo.On("GetOrderForUpdate", mock.Anything, uint(1), uint(1)).Return(o, nil)
	repo.On("UpdateOrder", mock.Anything, o).Return(nil)

	updated, err := uc.Execute(context.Background(), 1, 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, "services_finalized", updated.Status)

	updated, err = uc.Execute(context.Background(), 1, 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, "service_reopened", updated.Status)
}

func TestAcceptPendingOrder(t *testing.T) {
	repo := new(mockRepo)
	uc := NewAcceptPendingOrder(repo, noopNotifier(), noopAudit())

	mecanico := &models.User{ID: 3, Role: models.RoleMechanic, Name: "João"}
	o := &models.ServiceOrder{ID: 1, Code: "OS-Y", Status: "pending", OpenedByID: 2}

	repo.On("GetUser", mock.Anything, uint(1), uint(3)).Return(mecanico, nil)
	repo.On("GetOrderForUpdate", mock.Anything, uint(1), uint(1)).Return(o, nil)
	repo.On("UpdateOrder", mock.Anything, o).Return(nil)

	updated, err := uc.Execute(context.Background(), 1, 1, 3)
	assert.NoError(t, err)
	assert.Equal(t, "in_progress", updated.Status)
	assert.Equal(t, uint(3), *updated.ResponsibleID)
}

func TestAcceptPendingOrderPapelInvalido(t *testing.T) {
	repo := new(mockRepo)
	uc := NewAcceptPendingOrder(repo, noopNotifier(), noopAudit())

	atendente := &models.User{ID: 4, Role: models.RoleAttendant}
	repo.On("GetUser", mock.Anything, uint(1), uint(4)).Return(atendente, nil)

	_, err := uc.Execute(context.Background(), 1, 1, 4)
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
	repo.AssertNotCalled(t, "GetOrderForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetStatusPermissivoDentroDoEnum(t *testing.T) {
	repo := new(mockRepo)
	uc := NewSetStatus(repo, noopNotifier(), noopAudit())

	o := &models.ServiceOrder{ID: 1, Code: "OS-Z", Status: "finalized", OpenedByID: 2}
	repo.On("GetOrderForUpdate", mock.Anything, uint(1), uint(1)).Return(o, nil)
	repo.On("UpdateOrder", mock.Anything, o).Return(nil)

	// não há tabela origem→destino: até OS finalizada pode ser reaberta
	// por ação explícita
	updated, err := uc.Execute(context.Background(), SetStatusInput{
		EstablishmentID: 1,
		OrderID:         1,
		ActorID:         2,
		Status:          "in_progress",
	})
	assert.NoError(t, err)
	assert.Equal(t, "in_progress", updated.Status)
}

func TestSetStatusForaDoEnum(t *testing.T) {
	repo := new(mockRepo)
	uc := NewSetStatus(repo, noopNotifier(), noopAudit())

	o := &models.ServiceOrder{ID: 1, Status: "pending"}
	repo.On("GetOrderForUpdate", mock.Anything, uint(1), uint(1)).Return(o, nil)

	_, err := uc.Execute(context.Background(), SetStatusInput{
		EstablishmentID: 1,
		OrderID:         1,
		Status:          "teleported",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestDeleteOrderCascata(t *testing.T) {
	repo := new(mockRepo)
	uc := NewDeleteOrder(repo, noopNotifier(), noopAudit())

	resp := uint(3)
	o := &models.ServiceOrder{
		ID:            1,
		Code:          "OS-DEL",
		Status:        "in_progress",
		OpenedByID:    2,
		ResponsibleID: &resp,
	}

	repo.On("GetOrderForUpdate", mock.Anything, uint(1), uint(1)).Return(o, nil)
	repo.On("DeleteOrderCascade", mock.Anything, uint(1)).Return(nil)

	err := uc.Execute(context.Background(), 1, 1, 9)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
