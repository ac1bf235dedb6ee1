package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/records"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

type ReviewHandler struct {
	db     *gorm.DB
	events ucAppointment.Emitter
}

func NewReviewHandler(db *gorm.DB, emitter ucAppointment.Emitter) *ReviewHandler {
	return &ReviewHandler{db: db, events: emitter}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req models.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	var ap records.Appointment
	if err := h.db.Preload("BarberProfile").First(&ap, req.AppointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "Appointment not found")
			return
		}
		writeError(c, err)
		return
	}

	userID := currentUserID(c)
	if ap.CustomerID != userID {
		httperr.BadRequest(c, "You can only review your own appointments")
		return
	}

	var count int64
	if err := h.db.Model(&records.Review{}).Where("appointment_id = ?", ap.ID).Count(&count).Error; err != nil {
		writeError(c, err)
		return
	}
	if !domain.CanReview(domain.Status(ap.Status), count > 0) {
		if count > 0 {
			httperr.BadRequest(c, "This appointment has already been reviewed")
			return
		}
		httperr.BadRequest(c, "Only completed appointments can be reviewed")
		return
	}

	review := records.Review{
		CustomerID:      userID,
		BarberProfileID: ap.BarberProfileID,
		AppointmentID:   ap.ID,
		Rating:          req.Rating,
		Comment:         req.Comment,
		IsVisible:       true,
	}
	if err := h.db.Create(&review).Error; err != nil {
		writeError(c, err)
		return
	}
	if err := h.db.Preload("Customer").First(&review, review.ID).Error; err != nil {
		writeError(c, err)
		return
	}

	if h.events != nil {
		h.events.Dispatch(events.Event{
			Name:          events.ReviewSubmitted,
			AppointmentID: ap.ID,
			ShopName:      ap.BarberProfile.ShopName,
		})
	}

	httpresp.Created(c, dto.Review(&review))
}
