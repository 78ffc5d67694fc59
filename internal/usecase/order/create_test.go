package order

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/models"
)

func TestCreateOrder(t *testing.T) {
	repo := new(mockRepo)
	uc := NewCreateOrder(repo, noopNotifier(), noopAudit())

	client := &models.Client{ID: 10, EstablishmentID: 1}
	vehicle := &models.Vehicle{ID: 20, EstablishmentID: 1, ClientID: 10}

	repo.On("GetClient", mock.Anything, uint(1), uint(10)).Return(client, nil)
	repo.On("GetVehicle", mock.Anything, uint(1), uint(20)).Return(vehicle, nil)
	repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*models.ServiceOrder")).Return(nil)

	o, err := uc.Execute(context.Background(), CreateOrderInput{
		EstablishmentID: 1,
		OpenedBy:        2,
		ClientID:        10,
		VehicleID:       20,
		Description:     "Barulho na suspensão dianteira",
	})

	assert.NoError(t, err)
	assert.Equal(t, "pending", o.Status)
	assert.Equal(t, uint(2), o.OpenedByID)
	assert.Nil(t, o.ResponsibleID)
	assert.False(t, o.OpenedAt.IsZero())

	// código legível: OS- + 8 caracteres
	assert.True(t, strings.HasPrefix(o.Code, "OS-"))
	assert.Len(t, o.Code, 11)
}

func TestCreateOrderResponsavelPrecisaDePapel(t *testing.T) {
	repo := new(mockRepo)
	uc := NewCreateOrder(repo, noopNotifier(), noopAudit())

	client := &models.Client{ID: 10}
	vehicle := &models.Vehicle{ID: 20}
	atendente := &models.User{ID: 4, Role: models.RoleAttendant}

	repo.On("GetClient", mock.Anything, uint(1), uint(10)).Return(client, nil)
	repo.On("GetVehicle", mock.Anything, uint(1), uint(20)).Return(vehicle, nil)
	repo.On("GetUser", mock.Anything, uint(1), uint(4)).Return(atendente, nil)

	resp := uint(4)
	_, err := uc.Execute(context.Background(), CreateOrderInput{
		EstablishmentID: 1,
		OpenedBy:        2,
		ClientID:        10,
		VehicleID:       20,
		Description:     "x",
		ResponsibleID:   &resp,
	})

	assert.True(t, httperr.IsBusiness(err, "responsible_role_not_allowed"))
	repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestCreateOrderClienteInexistente(t *testing.T) {
	repo := new(mockRepo)
	uc := NewCreateOrder(repo, noopNotifier(), noopAudit())

	repo.On("GetClient", mock.Anything, uint(1), uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.Execute(context.Background(), CreateOrderInput{
		EstablishmentID: 1,
		ClientID:        99,
		VehicleID:       20,
	})

	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}
