package notify

import (
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func (s *Store) NotifyAppointmentCreated(shopName, date, clock string) {
	s.addNotification(
		Success,
		"Appointment created",
		fmt.Sprintf("Your appointment at %s on %s at %s has been created.", shopName, date, models.ShortTime(clock)),
		"Appointment created.",
	)
}

func (s *Store) NotifyAppointmentConfirmed(shopName, date string) {
	s.AddNotification(
		Success,
		"Appointment confirmed",
		fmt.Sprintf("Your appointment at %s has been confirmed! %s", shopName, date),
	)
}

func (s *Store) NotifyAppointmentCancelled(shopName string) {
	s.AddNotification(
		Warning,
		"Appointment cancelled",
		fmt.Sprintf("Your appointment at %s has been cancelled.", shopName),
	)
}

func (s *Store) NotifyAppointmentReminder(shopName, date, clock string) {
	s.AddNotification(
		Info,
		"Appointment reminder",
		fmt.Sprintf("You have an appointment at %s tomorrow at %s.", shopName, models.ShortTime(clock)),
	)
}

func (s *Store) NotifyNewAppointmentForBarber(customerName, date, clock string) {
	s.AddNotification(
		Info,
		"New appointment request",
		fmt.Sprintf("%s wants an appointment on %s at %s.", customerName, date, models.ShortTime(clock)),
	)
}

// Attach renders the domain events published by the booking flow and the
// panels.
func (s *Store) Attach(d *events.Dispatcher) error {
	handlers := map[string]func(events.Event){
		events.AppointmentCreated: func(ev events.Event) {
			s.NotifyAppointmentCreated(ev.ShopName, ev.Date, ev.Time)
		},
		events.AppointmentFailed: func(ev events.Event) {
			s.ShowError(ev.Message)
		},
		events.AppointmentConfirmed: func(ev events.Event) {
			s.NotifyAppointmentConfirmed(ev.ShopName, ev.Date)
		},
		events.AppointmentCancelled: func(ev events.Event) {
			s.NotifyAppointmentCancelled(ev.ShopName)
		},
		events.AppointmentCompleted: func(ev events.Event) {
			s.ShowSuccess("Appointment marked as completed.")
		},
		events.ReviewSubmitted: func(ev events.Event) {
			s.ShowSuccess("Your review has been submitted.")
		},
	}

	for topic, fn := range handlers {
		if err := d.Subscribe(topic, fn); err != nil {
			return err
		}
	}
	return nil
}
