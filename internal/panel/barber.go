package panel

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	BarberPageSize = 50

	DefaultOpening = "09:00"
	DefaultClosing = "19:00"
)

// BarberAPI is satisfied by *api.BarberClient.
type BarberAPI interface {
	MyProfile(ctx context.Context) (*models.BarberDetail, error)
	CreateProfile(ctx context.Context, req models.ProfileRequest) (*models.BarberDetail, error)
	UpdateProfile(ctx context.Context, req models.ProfileRequest) (*models.BarberDetail, error)
	AddService(ctx context.Context, req models.ServiceRequest) (*models.Service, error)
	DeleteService(ctx context.Context, id uint) error
	UpdateWorkingHours(ctx context.Context, req models.WorkingHoursRequest) ([]models.WorkingHours, error)
}

// BookingsAPI is satisfied by *api.AppointmentClient.
type BookingsAPI interface {
	Mine(ctx context.Context, page, size int) (*models.Page[models.Appointment], error)
	UpdateStatus(ctx context.Context, id uint, status string) (*models.Appointment, error)
	Cancel(ctx context.Context, id uint) error
}

// BarberGuard is satisfied by *session.Store.
type BarberGuard interface {
	RequireBarber() error
}

// Barber manages the signed-in barber's shop: profile, services, weekly
// hours and incoming appointments.
type Barber struct {
	base
	barbers  BarberAPI
	bookings BookingsAPI
	guard    BarberGuard

	mu           sync.Mutex
	profile      *models.BarberDetail
	appointments []models.Appointment
}

func NewBarber(barbers BarberAPI, bookings BookingsAPI, guard BarberGuard, confirm Confirmer, toasts Toaster) *Barber {
	return &Barber{
		base:     base{confirm: confirm, toasts: toasts},
		barbers:  barbers,
		bookings: bookings,
		guard:    guard,
	}
}

// LoadProfile fetches the barber's own profile. A barber without one gets
// httperr.ErrNoProfile and HasProfile reports false.
func (p *Barber) LoadProfile(ctx context.Context) (*models.BarberDetail, error) {
	if err := p.guard.RequireBarber(); err != nil {
		return nil, err
	}

	profile, err := p.barbers.MyProfile(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if errors.Is(err, httperr.ErrNoProfile) {
		p.profile = nil
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	p.profile = profile
	return copyProfile(profile), nil
}

func (p *Barber) HasProfile() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile != nil
}

func (p *Barber) Profile() *models.BarberDetail {
	p.mu.Lock()
	defer p.mu.Unlock()
	return copyProfile(p.profile)
}

// SaveProfile creates the profile on first save and updates it afterwards.
// New profiles wait for admin approval.
func (p *Barber) SaveProfile(ctx context.Context, req models.ProfileRequest) (*models.BarberDetail, error) {
	if err := p.guard.RequireBarber(); err != nil {
		return nil, err
	}

	exists := p.HasProfile()

	var (
		profile *models.BarberDetail
		err     error
	)
	if exists {
		profile, err = p.barbers.UpdateProfile(ctx, req)
	} else {
		profile, err = p.barbers.CreateProfile(ctx, req)
	}
	if err != nil {
		return nil, p.fail(err)
	}

	p.mu.Lock()
	p.profile = profile
	p.mu.Unlock()

	if exists {
		p.success("Profile updated.")
	} else {
		p.success("Profile created. Waiting for admin approval.")
	}
	return copyProfile(profile), nil
}

func (p *Barber) AddService(ctx context.Context, req models.ServiceRequest) (*models.Service, error) {
	if err := p.guard.RequireBarber(); err != nil {
		return nil, err
	}

	svc, err := p.barbers.AddService(ctx, req)
	if err != nil {
		return nil, p.fail(err)
	}

	p.mu.Lock()
	if p.profile != nil {
		p.profile.Services = append(p.profile.Services, *svc)
	}
	p.mu.Unlock()

	p.success("Service added.")
	return svc, nil
}

// DeleteService asks for confirmation before removing the service.
func (p *Barber) DeleteService(ctx context.Context, id uint) error {
	if err := p.guard.RequireBarber(); err != nil {
		return err
	}
	if err := p.ask("Are you sure you want to delete this service?"); err != nil {
		return err
	}

	if err := p.barbers.DeleteService(ctx, id); err != nil {
		return p.fail(err)
	}

	p.mu.Lock()
	if p.profile != nil {
		kept := p.profile.Services[:0]
		for _, s := range p.profile.Services {
			if s.ID != id {
				kept = append(kept, s)
			}
		}
		p.profile.Services = kept
	}
	p.mu.Unlock()

	p.success("Service deleted.")
	return nil
}

// WorkingHoursForm returns one entry per weekday, prefilled from the stored
// hours. Days without stored hours default to 09:00-19:00, Sunday closed.
func (p *Barber) WorkingHoursForm() []models.WorkingDay {
	p.mu.Lock()
	defer p.mu.Unlock()

	stored := map[string]models.WorkingHours{}
	if p.profile != nil {
		for _, wh := range p.profile.WorkingHours {
			stored[wh.DayOfWeek] = wh
		}
	}

	form := make([]models.WorkingDay, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		opening, closing := DefaultOpening, DefaultClosing
		closed := day == "SUNDAY"

		if wh, ok := stored[day]; ok {
			closed = wh.IsClosed
			if wh.StartTime != "" {
				opening = models.ShortTime(wh.StartTime)
			}
			if wh.EndTime != "" {
				closing = models.ShortTime(wh.EndTime)
			}
		}

		form = append(form, models.WorkingDay{
			DayOfWeek: day,
			StartTime: &opening,
			EndTime:   &closing,
			IsClosed:  closed,
		})
	}
	return form
}

// SaveWorkingHours replaces the weekly schedule. Closed days are sent
// without times.
func (p *Barber) SaveWorkingHours(ctx context.Context, days []models.WorkingDay) ([]models.WorkingHours, error) {
	if err := p.guard.RequireBarber(); err != nil {
		return nil, err
	}

	req := models.WorkingHoursRequest{WorkingHours: make([]models.WorkingDay, 0, len(days))}
	for _, d := range days {
		if d.IsClosed {
			d.StartTime, d.EndTime = nil, nil
		}
		req.WorkingHours = append(req.WorkingHours, d)
	}

	hours, err := p.barbers.UpdateWorkingHours(ctx, req)
	if err != nil {
		return nil, p.fail(err)
	}

	p.mu.Lock()
	if p.profile != nil {
		p.profile.WorkingHours = append([]models.WorkingHours(nil), hours...)
	}
	p.mu.Unlock()

	p.success("Working hours saved.")
	return hours, nil
}

// LoadAppointments fetches the incoming appointments. A failure leaves the
// list empty.
func (p *Barber) LoadAppointments(ctx context.Context) ([]models.Appointment, error) {
	if err := p.guard.RequireBarber(); err != nil {
		return nil, err
	}

	page, err := p.bookings.Mine(ctx, 0, BarberPageSize)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.appointments = nil
		return nil, err
	}
	p.appointments = append([]models.Appointment(nil), page.Content...)
	return append([]models.Appointment(nil), p.appointments...), nil
}

func (p *Barber) Appointments() []models.Appointment {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Appointment(nil), p.appointments...)
}

func (p *Barber) Confirm(ctx context.Context, id uint) error {
	return p.transition(ctx, id, appointment.StatusConfirmed, "Appointment confirmed.")
}

func (p *Barber) Complete(ctx context.Context, id uint) error {
	return p.transition(ctx, id, appointment.StatusCompleted, "Appointment marked as completed.")
}

// Cancel asks for confirmation before cancelling on the customer's behalf.
func (p *Barber) Cancel(ctx context.Context, id uint) error {
	if err := p.guard.RequireBarber(); err != nil {
		return err
	}
	if err := p.checkTransition(id, appointment.StatusCancelled); err != nil {
		return p.fail(err)
	}
	if err := p.ask("Are you sure you want to cancel this appointment?"); err != nil {
		return err
	}

	if err := p.bookings.Cancel(ctx, id); err != nil {
		return p.fail(err)
	}

	p.success("Appointment cancelled.")
	p.reload(ctx)
	return nil
}

func (p *Barber) transition(ctx context.Context, id uint, to appointment.Status, done string) error {
	if err := p.guard.RequireBarber(); err != nil {
		return err
	}
	if err := p.checkTransition(id, to); err != nil {
		return p.fail(err)
	}

	if _, err := p.bookings.UpdateStatus(ctx, id, string(to)); err != nil {
		return p.fail(err)
	}

	p.success(done)
	p.reload(ctx)
	return nil
}

// checkTransition applies the status rules to appointments already in the
// loaded list. Unknown ids are left to the server.
func (p *Barber) checkTransition(id uint, to appointment.Status) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, ap := range p.appointments {
		if ap.ID != id {
			continue
		}
		if err := appointment.CanTransition(appointment.Status(ap.Status), to); err != nil {
			return httperr.ErrBusinessMsg("invalid_state", "This appointment cannot be changed to "+string(to))
		}
		return nil
	}
	return nil
}

func (p *Barber) reload(ctx context.Context) {
	if _, err := p.LoadAppointments(ctx); err != nil {
		zap.S().Warnw("reloading appointments failed", "error", err)
	}
}

func copyProfile(b *models.BarberDetail) *models.BarberDetail {
	if b == nil {
		return nil
	}
	out := *b
	out.Services = append([]models.Service(nil), b.Services...)
	out.WorkingHours = append([]models.WorkingHours(nil), b.WorkingHours...)
	return &out
}
