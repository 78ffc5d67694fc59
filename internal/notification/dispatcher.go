package notification

import "log"

// Dispatcher consome eventos de domínio fora do caminho da requisição.
// Enfileiramento nunca bloqueia: fila cheia descarta e loga.
type Dispatcher struct {
	store *Store
	queue chan Event
}

func NewDispatcher(store *Store) *Dispatcher {
	d := &Dispatcher{
		store: store,
		queue: make(chan Event, 100), // buffer seguro
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.store.Save(ev); err != nil {
			log.Println("notification error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos a notificação (nunca quebrar API)
		log.Println("notification queue full, dropping event")
	}
}

// DispatchAll entrega os eventos produzidos por um caso de uso.
func (d *Dispatcher) DispatchAll(evs []Event) {
	for _, ev := range evs {
		d.Dispatch(ev)
	}
}
