package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/records"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

// Update replaces the given days of the signed-in barber's week.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	var req models.WorkingHoursRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, ok := myProfile(c, h.db)
	if !ok {
		return
	}

	rows := make([]records.WorkingDay, 0, len(req.WorkingHours))
	for _, d := range req.WorkingHours {
		row, err := workingDayRow(profile.ID, d)
		if err != nil {
			writeError(c, err)
			return
		}
		rows = append(rows, row)
	}

	if len(rows) > 0 {
		err := h.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barber_profile_id"}, {Name: "day_of_week"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "is_closed"}),
		}).Create(&rows).Error
		if err != nil {
			writeError(c, err)
			return
		}
	}

	days, err := workingDays(h.db, profile.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, workingHoursOut(days))
}

func workingDayRow(profileID uint, d models.WorkingDay) (records.WorkingDay, error) {
	row := records.WorkingDay{
		BarberProfileID: profileID,
		DayOfWeek:       d.DayOfWeek,
		IsClosed:        d.IsClosed,
	}
	if d.IsClosed {
		return row, nil
	}

	// Clock syntax is checked by the binding tags; an open day must carry both.
	if d.StartTime == nil || d.EndTime == nil || *d.StartTime == "" || *d.EndTime == "" {
		return row, &validators.FieldError{Field: d.DayOfWeek, Reason: "needs start and end time"}
	}

	row.StartTime = normalizeClock(*d.StartTime)
	row.EndTime = normalizeClock(*d.EndTime)
	if row.StartTime >= row.EndTime {
		return row, httperr.ErrBusinessMsg("invalid_hours", "Closing time must be after opening time")
	}
	return row, nil
}

// normalizeClock renders an already validated clock value as HH:MM.
func normalizeClock(v string) string {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("15:04")
		}
	}
	return v
}
