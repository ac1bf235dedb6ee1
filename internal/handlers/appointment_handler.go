package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *ucAppointment.CreateAppointment
	availabilityUC *ucAppointment.GetAvailability
	updateStatusUC *ucAppointment.UpdateStatus
	listMineUC     *ucAppointment.ListMine
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	availabilityUC *ucAppointment.GetAvailability,
	updateStatusUC *ucAppointment.UpdateStatus,
	listMineUC *ucAppointment.ListMine,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		availabilityUC: availabilityUC,
		updateStatusUC: updateStatusUC,
		listMineUC:     listMineUC,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req models.CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		CustomerID:               currentUserID(c),
		CreateAppointmentRequest: req,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, dto.Appointment(ap, false))
}

// ======================================================
// SLOTS
// ======================================================

func (h *AppointmentHandler) Slots(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	date := c.Query("date")
	if err := validators.Date("date", date); err != nil {
		writeError(c, err)
		return
	}

	duration := 0
	if raw := c.Query("serviceDuration"); raw != "" {
		n, err := parsePositive(raw)
		if err != nil {
			writeError(c, &validators.FieldError{Field: "serviceDuration", Reason: "must be positive"})
			return
		}
		duration = n
	}

	out, err := h.availabilityUC.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		BarberProfileID: id,
		Date:            date,
		DurationMinutes: duration,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) Mine(c *gin.Context) {
	page, size := pageParams(c)

	out, err := h.listMineUC.Execute(c.Request.Context(), currentUserID(c), currentRole(c), page, size)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	status := domain.Status(req.Status)
	if !status.Valid() {
		writeError(c, &validators.FieldError{Field: "status", Reason: "is not a known status"})
		return
	}

	ap, err := h.updateStatusUC.Execute(c.Request.Context(), currentUserID(c), id, status)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.Appointment(ap, false))
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.updateStatusUC.Cancel(c.Request.Context(), currentUserID(c), id); err != nil {
		writeError(c, err)
		return
	}

	httpresp.NoContent(c)
}
