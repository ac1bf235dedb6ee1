package appointment

import "github.com/BruksfildServices01/barber-booking/internal/events"

// Emitter receives the domain events raised by the use cases.
type Emitter interface {
	Dispatch(ev events.Event)
}

type noopEmitter struct{}

func (noopEmitter) Dispatch(events.Event) {}

func orNoop(e Emitter) Emitter {
	if e == nil {
		return noopEmitter{}
	}
	return e
}
