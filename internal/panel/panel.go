// Package panel holds the role specific workflows of the client: the
// customer's appointment list, the barber's shop management and the admin
// moderation queue. Each panel checks the session role before it talks to
// the API and reports outcomes as toasts.
package panel

import (
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ErrNotConfirmed is returned when the user declines a destructive action.
// Nothing has been sent to the API.
var ErrNotConfirmed = errors.New("panel: action not confirmed")

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm approves every prompt. Used for non-interactive runs.
var AlwaysConfirm = ConfirmFunc(func(string) bool { return true })

// Toaster is satisfied by *notify.Store.
type Toaster interface {
	ShowSuccess(message string) uint64
	ShowError(message string) uint64
}

type Emitter interface {
	Dispatch(ev events.Event)
}

type base struct {
	confirm Confirmer
	toasts  Toaster
	events  Emitter
}

// ask gates a destructive action. Without a Confirmer nothing can approve
// it, so the action is refused.
func (b base) ask(prompt string) error {
	if b.confirm == nil || !b.confirm.Confirm(prompt) {
		return ErrNotConfirmed
	}
	return nil
}

func (b base) success(msg string) {
	if b.toasts != nil {
		b.toasts.ShowSuccess(msg)
	}
}

// fail shows err as an error toast and returns it unchanged.
func (b base) fail(err error) error {
	if b.toasts != nil {
		b.toasts.ShowError(httperr.Message(err))
	}
	return err
}

func (b base) emit(ev events.Event) {
	if b.events != nil {
		b.events.Dispatch(ev)
	}
}
