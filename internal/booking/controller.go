// Package booking drives the four step booking flow for one barber: pick a
// service, pick a date, pick a free slot, submit.
//
// Slot lists are fetched on their own goroutine. Every fetch carries the
// key it was issued for and only the response whose key is still current
// may change state, so quickly changing the date or service never shows
// slots for a previous selection.
package booking

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/observable"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type State string

const (
	Idle            State = "idle"
	ServiceSelected State = "service_selected"
	SlotsLoading    State = "slots_loading"
	SlotsReady      State = "slots_ready"
	SlotSelected    State = "slot_selected"
	Submitting      State = "submitting"
	Booked          State = "booked"
	Failed          State = "failed"
)

var (
	ErrNoService        = errors.New("booking: select a service first")
	ErrNoSlot           = errors.New("booking: select a time slot first")
	ErrSlotUnavailable  = errors.New("booking: slot is not available")
	ErrSubmitInProgress = errors.New("booking: submission already in progress")
	ErrNotAuthenticated = errors.New("booking: sign in to book an appointment")
	ErrNotCustomer      = errors.New("booking: only customers can book appointments")
)

// SlotFetcher is satisfied by *api.BarberClient.
type SlotFetcher interface {
	AvailableSlots(ctx context.Context, id uint, date string, durationMinutes int) (*models.AvailableSlotsResponse, error)
}

// AppointmentCreator is satisfied by *api.AppointmentClient.
type AppointmentCreator interface {
	Create(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error)
}

// Identity is satisfied by *session.Store.
type Identity interface {
	IsAuthenticated() bool
	IsCustomer() bool
}

type Emitter interface {
	Dispatch(ev events.Event)
}

// Snapshot is a copy of the flow state for rendering.
type Snapshot struct {
	State       State
	BarberID    uint
	ShopName    string
	Service     *models.Service
	Date        string
	Slots       []models.TimeSlot
	Slot        *models.TimeSlot
	Appointment *models.Appointment

	// Err is the slot fetch failure in Failed, or the last rejected
	// submission in SlotsReady.
	Err error
}

// fetchKey identifies the selection a slot request was issued for.
type fetchKey struct {
	barberID  uint
	date      string
	serviceID uint
	duration  int
	seq       uint64
}

type Controller struct {
	barberID uint
	shopName string

	slotsAPI SlotFetcher
	appts    AppointmentCreator
	identity Identity
	events   Emitter

	mu          sync.Mutex
	state       State
	service     *models.Service
	date        string
	slots       []models.TimeSlot
	slot        *models.TimeSlot
	appointment *models.Appointment
	err         error

	seq       uint64
	key       fetchKey
	cancel    context.CancelFunc
	submitSeq uint64

	inflight sync.WaitGroup
	view     *observable.Value[Snapshot]
}

func New(
	barber models.BarberDetail,
	slots SlotFetcher,
	appts AppointmentCreator,
	identity Identity,
	emitter Emitter,
) *Controller {
	c := &Controller{
		barberID: barber.ID,
		shopName: barber.ShopName,
		slotsAPI: slots,
		appts:    appts,
		identity: identity,
		events:   emitter,
		state:    Idle,
	}
	c.view = observable.New(c.snapshotLocked())
	return c
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	return c.view.Get()
}

// Subscribe calls fn after every state change. fn runs synchronously and
// must not call back into the controller.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	return c.view.Subscribe(fn)
}

// Wait blocks until every issued slot fetch has returned.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// SelectService switches to svc. The slot list and any selected slot are
// dropped; if a date is already set the slots are fetched again for the new
// duration.
func (c *Controller) SelectService(ctx context.Context, svc models.Service) error {
	if err := validators.RequiredID("serviceId", svc.ID); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Submitting {
		return ErrSubmitInProgress
	}

	c.invalidateLocked()
	c.service = &svc
	c.slots = nil
	c.slot = nil
	c.appointment = nil
	c.err = nil

	if c.date != "" {
		c.startFetchLocked(ctx)
	} else {
		c.state = ServiceSelected
	}

	c.publishLocked()
	return nil
}

// SetDate sets the booking date (YYYY-MM-DD) and fetches its slots.
func (c *Controller) SetDate(ctx context.Context, date string) error {
	if err := validators.Date("date", date); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.service == nil {
		return ErrNoService
	}
	if c.state == Submitting {
		return ErrSubmitInProgress
	}

	c.date = date
	c.appointment = nil
	c.startFetchLocked(ctx)
	c.publishLocked()
	return nil
}

// startFetchLocked supersedes any running fetch and issues a new one for the
// current selection.
func (c *Controller) startFetchLocked(parent context.Context) {
	c.invalidateLocked()

	c.key = fetchKey{
		barberID:  c.barberID,
		date:      c.date,
		serviceID: c.service.ID,
		duration:  c.service.DurationMinutes,
		seq:       c.seq,
	}
	c.state = SlotsLoading
	c.slots = nil
	c.slot = nil
	c.err = nil

	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel

	key := c.key
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		defer cancel()

		resp, err := c.slotsAPI.AvailableSlots(ctx, key.barberID, key.date, key.duration)
		c.onSlotsFetched(key, resp, err)
	}()
}

// invalidateLocked makes every outstanding fetch stale.
func (c *Controller) invalidateLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
	c.key = fetchKey{}
}

func (c *Controller) onSlotsFetched(key fetchKey, resp *models.AvailableSlotsResponse, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key != c.key || c.state != SlotsLoading {
		zap.S().Debugw("dropping stale slot response", "date", key.date, "service_id", key.serviceID)
		return
	}
	c.cancel = nil

	if err != nil {
		c.state = Failed
		c.err = err
		zap.S().Warnw("slot fetch failed", "barber_id", key.barberID, "date", key.date, "error", err)
		c.publishLocked()
		return
	}

	var slots []models.TimeSlot
	if resp != nil {
		slots = append(slots, resp.Slots...)
	}
	c.slots = slots
	c.state = SlotsReady
	c.publishLocked()
}

// SelectSlot picks slot from the current list. Slots that are missing or
// marked unavailable are refused and the state is left unchanged.
func (c *Controller) SelectSlot(slot models.TimeSlot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != SlotsReady && c.state != SlotSelected {
		return ErrSlotUnavailable
	}

	for _, s := range c.slots {
		if models.ShortTime(s.StartTime) != models.ShortTime(slot.StartTime) {
			continue
		}
		if !s.Available {
			return ErrSlotUnavailable
		}
		picked := s
		c.slot = &picked
		c.err = nil
		c.state = SlotSelected
		c.publishLocked()
		return nil
	}

	return ErrSlotUnavailable
}

// Submit books the selected slot. Only one submission runs at a time; a
// second call while one is in flight returns ErrSubmitInProgress without
// sending anything. A rejected submission returns the server error, clears
// the selected slot and goes back to SlotsReady. Nothing is retried.
func (c *Controller) Submit(ctx context.Context) (*models.Appointment, error) {
	c.mu.Lock()

	switch {
	case c.state == Submitting:
		c.mu.Unlock()
		return nil, ErrSubmitInProgress
	case c.state != SlotSelected || c.slot == nil:
		c.mu.Unlock()
		return nil, ErrNoSlot
	case !c.identity.IsAuthenticated():
		c.mu.Unlock()
		return nil, ErrNotAuthenticated
	case !c.identity.IsCustomer():
		c.mu.Unlock()
		return nil, ErrNotCustomer
	}

	slot := *c.slot
	req := models.CreateAppointmentRequest{
		BarberProfileID: c.barberID,
		ServiceID:       c.service.ID,
		AppointmentDate: c.date,
		StartTime:       models.ShortTime(slot.StartTime),
	}

	c.submitSeq++
	seq := c.submitSeq
	c.state = Submitting
	c.err = nil
	c.publishLocked()
	c.mu.Unlock()

	ap, err := c.appts.Create(ctx, req)

	c.mu.Lock()
	current := c.state == Submitting && c.submitSeq == seq
	if current {
		if err != nil {
			c.state = SlotsReady
			c.slot = nil
			c.err = err
		} else {
			c.state = Booked
			c.appointment = ap
		}
		c.publishLocked()
	}
	c.mu.Unlock()

	if err != nil {
		zap.S().Infow("booking rejected", "barber_id", req.BarberProfileID, "date", req.AppointmentDate, "time", req.StartTime, "error", err)
		c.emit(events.Event{
			Name:     events.AppointmentFailed,
			ShopName: c.shopName,
			Date:     req.AppointmentDate,
			Time:     req.StartTime,
			Message:  httperr.Message(err),
		})
		return nil, err
	}

	var id uint
	if ap != nil {
		id = ap.ID
	}
	c.emit(events.Event{
		Name:          events.AppointmentCreated,
		AppointmentID: id,
		ShopName:      c.shopName,
		Date:          req.AppointmentDate,
		Time:          req.StartTime,
	})
	return ap, nil
}

// Reset returns to Idle and makes any running fetch stale. A submission in
// flight still completes on the server but no longer changes the state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.invalidateLocked()
	c.submitSeq++
	c.state = Idle
	c.service = nil
	c.date = ""
	c.slots = nil
	c.slot = nil
	c.appointment = nil
	c.err = nil
	c.publishLocked()
}

func (c *Controller) emit(ev events.Event) {
	if c.events != nil {
		c.events.Dispatch(ev)
	}
}

func (c *Controller) publishLocked() {
	c.view.Set(c.snapshotLocked())
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		State:    c.state,
		BarberID: c.barberID,
		ShopName: c.shopName,
		Date:     c.date,
		Err:      c.err,
	}
	if c.service != nil {
		svc := *c.service
		s.Service = &svc
	}
	if c.slots != nil {
		s.Slots = append([]models.TimeSlot(nil), c.slots...)
	}
	if c.slot != nil {
		slot := *c.slot
		s.Slot = &slot
	}
	if c.appointment != nil {
		ap := *c.appointment
		s.Appointment = &ap
	}
	return s
}
