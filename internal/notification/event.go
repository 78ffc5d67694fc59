package notification

// Eventos de domínio devolvidos pelos casos de uso. Cada transição
// relevante gera zero ou mais eventos, entregues ao Dispatcher. Não há
// barramento ambiente.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderPaymentReady  = "order.payment_ready"
	EventOrderDeleted       = "order.deleted"

	EventRequestCreated  = "request.created"
	EventRequestAccepted = "request.accepted"
	EventRequestRejected = "request.rejected"
	EventRequestDeleted  = "request.deleted"

	EventCashOpened = "cash.opened"
	EventCashClosed = "cash.closed"

	EventPaymentConfirmed = "payment.confirmed"
)

type Event struct {
	Type        string
	RecipientID uint
	Title       string
	Message     string
	Metadata    map[string]any
}
