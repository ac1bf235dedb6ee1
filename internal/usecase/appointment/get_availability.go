package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type AvailabilityInput struct {
	BarberProfileID uint
	Date            string
	DurationMinutes int
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*models.AvailableSlotsResponse, error) {

	if _, err := uc.repo.GetProfile(ctx, in.BarberProfileID); err != nil {
		if repository.IsNotFound(err) {
			return nil, httperr.ErrBusinessMsg("barber_not_found", "Barber not found")
		}
		return nil, err
	}

	day, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusinessMsg("invalid_date", "Invalid date")
	}

	duration := in.DurationMinutes
	if duration <= 0 {
		duration = domain.DefaultSlotMinutes
	}

	out := &models.AvailableSlotsResponse{
		Date:  in.Date,
		Slots: []models.TimeSlot{},
	}

	wd, err := uc.repo.GetWorkingDay(ctx, in.BarberProfileID, domain.DayOfWeek(day))
	if err != nil {
		if repository.IsNotFound(err) {
			return out, nil
		}
		return nil, err
	}
	if !domain.IsOpen(wd) {
		return out, nil
	}

	opening, closing, err := domain.Bounds(wd, day)
	if err != nil {
		return out, nil
	}

	appointments, err := uc.repo.ListAppointmentsForDay(ctx, in.BarberProfileID, in.Date)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.Busy, 0, len(appointments))
	for _, ap := range appointments {
		start, err1 := timezone.ParseClock(day, ap.StartTime)
		end, err2 := timezone.ParseClock(day, ap.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		busy = append(busy, domain.Busy{Start: start, End: end})
	}

	out.Slots = domain.Slots(opening, closing, time.Duration(duration)*time.Minute, busy)
	return out, nil
}
