package appointment

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Final statuses accept no further transition.
func (s Status) Final() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func InitialStatus() Status {
	return StatusPending
}

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanTransition checks a requested status change. Statuses only move
// forward: PENDING -> CONFIRMED -> COMPLETED, with CANCELLED reachable from
// either open status.
func CanTransition(from, to Status) error {
	switch to {
	case StatusConfirmed:
		return CanConfirm(from)
	case StatusCompleted:
		return CanComplete(from)
	case StatusCancelled:
		return CanCancel(from)
	default:
		return httperr.ErrBusiness("invalid_status")
	}
}

// CanReview reports whether a customer may still review the appointment.
func CanReview(current Status, reviewed bool) bool {
	return current == StatusCompleted && !reviewed
}
