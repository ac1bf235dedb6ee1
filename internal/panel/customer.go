package panel

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

const CustomerPageSize = 10

// CustomerAPI is satisfied by *api.AppointmentClient.
type CustomerAPI interface {
	Mine(ctx context.Context, page, size int) (*models.Page[models.Appointment], error)
	Cancel(ctx context.Context, id uint) error
	CreateReview(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error)
}

// CustomerGuard is satisfied by *session.Store.
type CustomerGuard interface {
	RequireCustomer() error
}

// Customer is the "my appointments" view.
type Customer struct {
	base
	api   CustomerAPI
	guard CustomerGuard

	mu           sync.Mutex
	appointments []models.Appointment
}

func NewCustomer(api CustomerAPI, guard CustomerGuard, confirm Confirmer, toasts Toaster, emitter Emitter) *Customer {
	return &Customer{
		base:  base{confirm: confirm, toasts: toasts, events: emitter},
		api:   api,
		guard: guard,
	}
}

// Load fetches the first page of the customer's bookings.
func (p *Customer) Load(ctx context.Context) ([]models.Appointment, error) {
	if err := p.guard.RequireCustomer(); err != nil {
		return nil, err
	}

	page, err := p.api.Mine(ctx, 0, CustomerPageSize)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.appointments = append([]models.Appointment(nil), page.Content...)
	out := append([]models.Appointment(nil), p.appointments...)
	p.mu.Unlock()
	return out, nil
}

func (p *Customer) Appointments() []models.Appointment {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Appointment(nil), p.appointments...)
}

func (p *Customer) find(id uint) (models.Appointment, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ap := range p.appointments {
		if ap.ID == id {
			return ap, true
		}
	}
	return models.Appointment{}, false
}

// Cancel asks for confirmation, cancels the booking and reloads the list.
func (p *Customer) Cancel(ctx context.Context, id uint) error {
	if err := p.guard.RequireCustomer(); err != nil {
		return err
	}

	ap, known := p.find(id)
	if known {
		if err := appointment.CanCancel(appointment.Status(ap.Status)); err != nil {
			return p.fail(httperr.ErrBusinessMsg("invalid_state", "This appointment can no longer be cancelled"))
		}
	}

	if err := p.ask("Are you sure you want to cancel this appointment?"); err != nil {
		return err
	}

	if err := p.api.Cancel(ctx, id); err != nil {
		return p.fail(err)
	}

	p.emit(events.Event{
		Name:          events.AppointmentCancelled,
		AppointmentID: id,
		ShopName:      ap.BarberShopName,
		Date:          ap.AppointmentDate,
		Time:          ap.StartTime,
	})
	p.reload(ctx)
	return nil
}

// SubmitReview rates a completed appointment. A rating outside 1..5 is
// refused before any request.
func (p *Customer) SubmitReview(ctx context.Context, id uint, rating int, comment string) (*models.Review, error) {
	if err := p.guard.RequireCustomer(); err != nil {
		return nil, err
	}
	if rating == 0 {
		return nil, &validators.FieldError{Field: "rating", Reason: "please choose a rating"}
	}
	if err := validators.Var("rating", rating, "min=1,max=5"); err != nil {
		return nil, err
	}

	if ap, known := p.find(id); known && !ap.CanReview {
		return nil, p.fail(httperr.ErrBusinessMsg("cannot_review", "This appointment cannot be reviewed"))
	}

	review, err := p.api.CreateReview(ctx, models.CreateReviewRequest{
		AppointmentID: id,
		Rating:        rating,
		Comment:       comment,
	})
	if err != nil {
		return nil, p.fail(err)
	}

	p.emit(events.Event{Name: events.ReviewSubmitted, AppointmentID: id})
	p.reload(ctx)
	return review, nil
}

func (p *Customer) reload(ctx context.Context) {
	if _, err := p.Load(ctx); err != nil {
		zap.S().Warnw("reloading appointments failed", "error", err)
	}
}
