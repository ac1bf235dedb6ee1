package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/records"
)

func Confirm(ap *records.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusConfirmed)
	ap.UpdatedAt = now
	return nil
}

func Complete(ap *records.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusCompleted)
	ap.UpdatedAt = now
	return nil
}

func Cancel(ap *records.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusCancelled)
	ap.UpdatedAt = now
	return nil
}

// Apply moves ap to the requested status. Customers may only cancel.
func Apply(ap *records.Appointment, to Status, byBarber bool, now time.Time) error {
	if !byBarber && to != StatusCancelled {
		return httperr.ErrBusinessMsg("forbidden_transition", "customers can only cancel appointments")
	}
	if Status(ap.Status).Final() {
		return httperr.ErrBusinessMsg("invalid_state", "appointment is already completed or cancelled")
	}

	switch to {
	case StatusConfirmed:
		return Confirm(ap, now)
	case StatusCompleted:
		return Complete(ap, now)
	case StatusCancelled:
		return Cancel(ap, now)
	default:
		return httperr.ErrBusiness("invalid_status")
	}
}
