package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/records"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type UpdateStatus struct {
	repo   domain.Repository
	events Emitter
	now    func() time.Time
}

func NewUpdateStatus(
	repo domain.Repository,
	emitter Emitter,
) *UpdateStatus {
	return &UpdateStatus{
		repo:   repo,
		events: orNoop(emitter),
		now:    timezone.Now,
	}
}

var statusTopics = map[domain.Status]string{
	domain.StatusConfirmed: events.AppointmentConfirmed,
	domain.StatusCompleted: events.AppointmentCompleted,
	domain.StatusCancelled: events.AppointmentCancelled,
}

// Execute moves the appointment to status on behalf of userID, who must be
// either its customer or its barber.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
	status domain.Status,
) (*records.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, httperr.ErrBusinessMsg("appointment_not_found", "Appointment not found")
		}
		return nil, err
	}

	isBarber := ap.BarberProfile.UserID == userID
	isCustomer := ap.CustomerID == userID
	if !isBarber && !isCustomer {
		return nil, httperr.ErrBusinessMsg("not_participant", "You are not allowed to update this appointment")
	}

	if err := domain.Apply(ap, status, isBarber, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		Name:          statusTopics[status],
		AppointmentID: ap.ID,
		ShopName:      ap.BarberProfile.ShopName,
		CustomerName:  ap.Customer.Name,
		Date:          ap.Date,
		Time:          ap.StartTime,
	})

	return ap, nil
}

// Cancel is the dedicated cancel endpoint: same rules as a status update
// to CANCELLED.
func (uc *UpdateStatus) Cancel(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) error {
	_, err := uc.Execute(ctx, userID, appointmentID, domain.StatusCancelled)
	return err
}
