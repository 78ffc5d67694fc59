package cash

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/models"
	"github.com/oficinaflow/oficina-api/internal/money"
)

// ===============================
// Validations
// ===============================

func CanOpen(openingValue decimal.Decimal) error {
	if openingValue.IsNegative() {
		return httperr.Validation("invalid_opening_value", "Valor de abertura não pode ser negativo.")
	}
	return nil
}

func ValidateMovement(s *models.CashSession, movType string, value decimal.Decimal) error {
	if !s.IsOpen() {
		return httperr.InvalidTransition("session_closed", "O caixa já está fechado.")
	}
	if movType != models.MovementEntry && movType != models.MovementExit {
		return httperr.Validation("invalid_movement_type", "Tipo de movimentação inválido.")
	}
	if !value.IsPositive() {
		return httperr.Validation("invalid_value", "Valor deve ser maior que zero.")
	}
	return nil
}

func CanClose(s *models.CashSession) error {
	if !s.IsOpen() {
		return httperr.InvalidTransition("session_closed", "O caixa já está fechado.")
	}
	return nil
}

// ===============================
// Domain Actions
// ===============================

// ApplyMovement acumula a movimentação nos totais da sessão.
func ApplyMovement(s *models.CashSession, movType string, value decimal.Decimal) {
	switch movType {
	case models.MovementEntry:
		s.EntriesTotal = s.EntriesTotal.Add(value)
	case models.MovementExit:
		s.ExitsTotal = s.ExitsTotal.Add(value)
	}
}

// ApplyPayment acumula um pagamento confirmado na receita da sessão.
// Receita é distinta de entradas manuais; relatórios não misturam os dois.
func ApplyPayment(s *models.CashSession, value decimal.Decimal) {
	s.RevenueTotal = s.RevenueTotal.Add(value)
}

// Close concilia e fecha a sessão:
//
//	saldo  = abertura + entradas − saídas
//	quebra = valor contado − saldo
//
// Depois do fechamento a sessão é imutável.
func Close(s *models.CashSession, closingValue decimal.Decimal, closedBy uint, now time.Time) error {
	if err := CanClose(s); err != nil {
		return err
	}

	balance := money.Balance(s.OpeningValue, s.EntriesTotal, s.ExitsTotal)
	difference := money.Difference(closingValue, balance)

	s.ClosingValue = &closingValue
	s.BalanceTotal = &balance
	s.Difference = &difference
	s.ClosedByID = &closedBy
	s.ClosedAt = &now
	return nil
}
