package payments

import (
	"context"
	"encoding/json"
)

// Gateway abstrai o provedor de pagamento externo (Mercado Pago).
// O caixa registra o pagamento só depois da confirmação do provedor;
// a resposta crua é guardada para rastreabilidade.
type Gateway interface {
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}

// NewGateway monta o gateway a partir do token configurado. Token vazio
// desativa o provedor: o caixa continua registrando pagamentos, só que
// sem confirmação externa.
func NewGateway(accessToken string) (Gateway, error) {
	if accessToken == "" {
		return nil, nil
	}
	return NewMercadoPagoGateway(accessToken)
}
