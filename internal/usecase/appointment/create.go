package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/records"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CustomerID uint
	models.CreateAppointmentRequest
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	events Emitter
	now    func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	emitter Emitter,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		events: orNoop(emitter),
		now:    timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*records.Appointment, error) {

	// --------------------------------------------------
	// 1. Barber profile
	// --------------------------------------------------
	profile, err := uc.repo.GetProfile(ctx, in.BarberProfileID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, httperr.ErrBusinessMsg("barber_not_found", "Barber not found")
		}
		return nil, err
	}

	if profile.UserID == in.CustomerID {
		return nil, httperr.ErrBusinessMsg("own_shop", "You cannot book an appointment at your own shop")
	}

	if profile.Status != string(models.ProfileApproved) {
		return nil, httperr.ErrBusinessMsg("barber_not_accepting", "This barber is not accepting appointments")
	}

	// --------------------------------------------------
	// 2. Service
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, profile.ID, in.ServiceID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, httperr.ErrBusinessMsg("service_not_found", "Service not found")
		}
		return nil, err
	}
	if !service.IsActive {
		return nil, httperr.ErrBusinessMsg("service_inactive", "This service is no longer offered")
	}

	// --------------------------------------------------
	// 3. Date / time in the shop timezone
	// --------------------------------------------------
	day, err := timezone.ParseDate(in.AppointmentDate)
	if err != nil {
		return nil, httperr.ErrBusinessMsg("invalid_date", "Invalid appointment date")
	}
	if in.AppointmentDate < uc.now().Format(timezone.DateLayout) {
		return nil, httperr.ErrBusinessMsg("past_date", "Cannot book an appointment in the past")
	}

	start, err := timezone.ParseClock(day, in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusinessMsg("invalid_time", "Invalid start time")
	}
	end := start.Add(time.Duration(service.DurationMinutes) * time.Minute)

	// --------------------------------------------------
	// 4. Working hours
	// --------------------------------------------------
	wd, err := uc.repo.GetWorkingDay(ctx, profile.ID, domain.DayOfWeek(day))
	if err != nil && !repository.IsNotFound(err) {
		return nil, err
	}
	if end.Day() != start.Day() || !domain.IsWithinWorkingHours(wd, start, end) {
		return nil, httperr.ErrBusinessMsg("outside_working_hours", "The barber is not working at this time")
	}

	// --------------------------------------------------
	// 5. Create (conflict checked inside the transaction)
	// --------------------------------------------------
	ap := &records.Appointment{
		CustomerID:      in.CustomerID,
		BarberProfileID: profile.ID,
		ServiceID:       service.ID,
		Date:            in.AppointmentDate,
		StartTime:       start.Format("15:04"),
		EndTime:         end.Format("15:04"),
		Status:          string(domain.InitialStatus()),
		TotalPrice:      service.Price,
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	created, err := uc.repo.GetAppointment(ctx, ap.ID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Event
	// --------------------------------------------------
	uc.events.Dispatch(events.Event{
		Name:          events.AppointmentCreated,
		AppointmentID: created.ID,
		ShopName:      created.BarberProfile.ShopName,
		CustomerName:  created.Customer.Name,
		Date:          created.Date,
		Time:          created.StartTime,
	})

	return created, nil
}
