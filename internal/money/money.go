package money

import "github.com/shopspring/decimal"

// Aritmética monetária do caixa. Toda acumulação interna usa decimal exato;
// arredondamento de 2 casas só acontece na borda de exibição/relatório.

var Zero = decimal.Zero

// Round2 arredonda para 2 casas decimais (borda de exibição).
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// LineTotal calcula o total de uma linha: preço unitário × quantidade.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// OrderTotal aplica desconto e acréscimo sobre o subtotal.
// Nunca retorna valor negativo.
func OrderTotal(subtotal, discount, surcharge decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discount).Add(surcharge)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Balance é o saldo esperado da sessão: abertura + entradas − saídas.
func Balance(opening, entries, exits decimal.Decimal) decimal.Decimal {
	return opening.Add(entries).Sub(exits)
}

// Difference é a quebra de caixa: valor contado − saldo esperado.
func Difference(closing, balance decimal.Decimal) decimal.Decimal {
	return closing.Sub(balance)
}

// DenominationCount representa a contagem de uma cédula/moeda na conferência
// de abertura. A contagem é apoio de tela; o caixa persiste só o total.
type DenominationCount struct {
	Denomination decimal.Decimal `json:"denomination"`
	Count        int             `json:"count"`
}

// SumDenominations soma a conferência de cédulas/moedas.
func SumDenominations(counts []DenominationCount) decimal.Decimal {
	total := decimal.Zero
	for _, c := range counts {
		if c.Count <= 0 {
			continue
		}
		total = total.Add(c.Denomination.Mul(decimal.NewFromInt(int64(c.Count))))
	}
	return total
}
