package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// DefaultSlotMinutes is used when the caller sends no duration.
const DefaultSlotMinutes = 30

// Busy is a booked interval on the slot's day, already resolved to times.
type Busy struct {
	Start time.Time
	End   time.Time
}

// Slots steps from opening to closing by d. Every window that fits is returned;
// one that overlaps a busy interval is marked unavailable rather than
// skipped. busy must be sorted by Start.
func Slots(opening, closing time.Time, d time.Duration, busy []Busy) []models.TimeSlot {
	slots := []models.TimeSlot{}
	if d <= 0 {
		return slots
	}

	idx := 0
	for cur := opening; !cur.Add(d).After(closing); cur = cur.Add(d) {
		slotStart := cur
		slotEnd := cur.Add(d)

		for idx < len(busy) && !busy[idx].End.After(slotStart) {
			idx++
		}

		available := true
		for i := idx; i < len(busy) && busy[i].Start.Before(slotEnd); i++ {
			if Overlaps(slotStart, slotEnd, busy[i].Start, busy[i].End) {
				available = false
				break
			}
		}

		slots = append(slots, models.TimeSlot{
			StartTime: slotStart.Format("15:04"),
			EndTime:   slotEnd.Format("15:04"),
			Available: available,
		})
	}

	return slots
}

func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
