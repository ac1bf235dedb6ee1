package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/records"
)

type Repository interface {
	// -------- Barber profile --------
	GetProfile(ctx context.Context, id uint) (*records.BarberProfile, error)
	GetProfileByUser(ctx context.Context, userID uint) (*records.BarberProfile, error)

	// -------- Service --------
	GetService(ctx context.Context, profileID, serviceID uint) (*records.Service, error)

	// -------- Availability --------
	GetWorkingDay(ctx context.Context, profileID uint, dayOfWeek string) (*records.WorkingDay, error)

	// ListAppointmentsForDay returns the non-cancelled appointments of one
	// date ordered by start time.
	ListAppointmentsForDay(ctx context.Context, profileID uint, date string) ([]records.Appointment, error)

	// -------- Appointment --------
	// CreateAppointment inserts ap unless it overlaps a non-cancelled
	// appointment of the same barber, in which case it returns a
	// "slot_taken" business error.
	CreateAppointment(ctx context.Context, ap *records.Appointment) error
	GetAppointment(ctx context.Context, id uint) (*records.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *records.Appointment) error

	ListForCustomer(ctx context.Context, customerID uint, page, size int) ([]records.Appointment, int64, error)
	ListForProfile(ctx context.Context, profileID uint, page, size int) ([]records.Appointment, int64, error)

	// Reviewed reports which of ids already carry a review.
	Reviewed(ctx context.Context, ids []uint) (map[uint]bool, error)
}
