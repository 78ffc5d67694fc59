package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGatewaySemTokenDesativaProvedor(t *testing.T) {
	g, err := NewGateway("")

	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestNewGatewayComTokenMontaMercadoPago(t *testing.T) {
	g, err := NewGateway("TEST-TOKEN")

	require.NoError(t, err)
	require.NotNil(t, g)
	assert.IsType(t, &MercadoPagoGateway{}, g)
}

func TestNewMercadoPagoGatewayExigeToken(t *testing.T) {
	g, err := NewMercadoPagoGateway("")

	assert.Nil(t, g)
	assert.ErrorIs(t, err, ErrMissingAccessToken)
}
