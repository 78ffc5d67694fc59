package cash

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCanOpen(t *testing.T) {
	assert.NoError(t, CanOpen(dec("0")))
	assert.NoError(t, CanOpen(dec("150.50")))

	err := CanOpen(dec("-1"))
	assert.True(t, httperr.IsBusiness(err, "invalid_opening_value"))
}

func TestValidateMovement(t *testing.T) {
	open := &models.CashSession{}

	assert.NoError(t, ValidateMovement(open, models.MovementEntry, dec("10")))
	assert.NoError(t, ValidateMovement(open, models.MovementExit, dec("0.01")))

	err := ValidateMovement(open, "transfer", dec("10"))
	assert.True(t, httperr.IsBusiness(err, "invalid_movement_type"))

	err = ValidateMovement(open, models.MovementEntry, dec("0"))
	assert.True(t, httperr.IsBusiness(err, "invalid_value"))

	err = ValidateMovement(open, models.MovementEntry, dec("-5"))
	assert.True(t, httperr.IsBusiness(err, "invalid_value"))
}

func TestValidateMovementSessaoFechada(t *testing.T) {
	now := time.Now()
	closed := &models.CashSession{ClosedAt: &now}

	err := ValidateMovement(closed, models.MovementEntry, dec("10"))
	assert.True(t, httperr.IsBusiness(err, "session_closed"))
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
}

func TestApplyMovement(t *testing.T) {
	s := &models.CashSession{}

	ApplyMovement(s, models.MovementEntry, dec("50"))
	ApplyMovement(s, models.MovementEntry, dec("25.50"))
	ApplyMovement(s, models.MovementExit, dec("20"))

	assert.True(t, s.EntriesTotal.Equal(dec("75.50")))
	assert.True(t, s.ExitsTotal.Equal(dec("20")))
	// receita não se mistura com entradas manuais
	assert.True(t, s.RevenueTotal.IsZero())
}

func TestApplyPayment(t *testing.T) {
	s := &models.CashSession{}

	ApplyPayment(s, dec("300"))
	ApplyPayment(s, dec("149.90"))

	assert.True(t, s.RevenueTotal.Equal(dec("449.90")))
	assert.True(t, s.EntriesTotal.IsZero())
}

func TestClose(t *testing.T) {
	s := &models.CashSession{OpeningValue: dec("100")}
	ApplyMovement(s, models.MovementEntry, dec("50"))
	ApplyMovement(s, models.MovementExit, dec("20"))

	err := Close(s, dec("130"), 5, time.Now())
	assert.NoError(t, err)

	// saldo = 100 + 50 − 20 = 130; contado 130 → quebra zero
	assert.True(t, s.BalanceTotal.Equal(dec("130")))
	assert.True(t, s.Difference.IsZero())
	assert.True(t, s.ClosingValue.Equal(dec("130")))
	assert.Equal(t, uint(5), *s.ClosedByID)
	assert.False(t, s.IsOpen())
}

func TestCloseComQuebra(t *testing.T) {
	s := &models.CashSession{OpeningValue: dec("200")}
	ApplyMovement(s, models.MovementExit, dec("50"))

	err := Close(s, dec("140"), 1, time.Now())
	assert.NoError(t, err)

	// saldo 150, contado 140 → faltam 10
	assert.True(t, s.BalanceTotal.Equal(dec("150")))
	assert.True(t, s.Difference.Equal(dec("-10")))
}

func TestCloseDuasVezes(t *testing.T) {
	s := &models.CashSession{OpeningValue: dec("100")}

	assert.NoError(t, Close(s, dec("100"), 1, time.Now()))

	err := Close(s, dec("100"), 1, time.Now())
	assert.True(t, httperr.IsBusiness(err, "session_closed"))
}
