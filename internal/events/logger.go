package events

import "go.uber.org/zap"

// LogAll writes every published event to the process logger.
func LogAll(d *Dispatcher) error {
	for _, topic := range Topics {
		if err := d.Subscribe(topic, logEvent); err != nil {
			return err
		}
	}
	return nil
}

func logEvent(ev Event) {
	zap.S().Infow("event",
		"name", ev.Name,
		"appointment_id", ev.AppointmentID,
		"shop", ev.ShopName,
		"date", ev.Date,
		"time", ev.Time,
	)
}
