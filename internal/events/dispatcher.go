package events

import (
	"sync"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

const (
	AppointmentCreated   = "appointment.created"
	AppointmentFailed    = "appointment.failed"
	AppointmentConfirmed = "appointment.confirmed"
	AppointmentCompleted = "appointment.completed"
	AppointmentCancelled = "appointment.cancelled"
	ReviewSubmitted      = "review.submitted"
)

// Topics lists every event name the client publishes.
var Topics = []string{
	AppointmentCreated,
	AppointmentFailed,
	AppointmentConfirmed,
	AppointmentCompleted,
	AppointmentCancelled,
	ReviewSubmitted,
}

type Event struct {
	Name          string
	AppointmentID uint
	ShopName      string
	CustomerName  string
	Date          string
	Time          string
	Message       string
}

// Dispatcher delivers events to subscribers on a single worker goroutine so
// publishers never wait on consumers.
type Dispatcher struct {
	bus   EventBus.Bus
	queue chan Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 100
	}
	d := &Dispatcher{
		bus:   EventBus.New(),
		queue: make(chan Event, buffer),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) Subscribe(name string, fn func(Event)) error {
	return d.bus.Subscribe(name, fn)
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		d.bus.Publish(ev.Name, ev)
	}
}

// Dispatch enqueues ev. A full queue or a closed dispatcher drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		zap.S().Warnw("event dispatcher closed, dropping event", "event", ev.Name)
		return
	}

	select {
	case d.queue <- ev:
	default:
		zap.S().Warnw("event queue full, dropping event", "event", ev.Name)
	}
}

// Close stops accepting events and waits until queued ones are delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}
