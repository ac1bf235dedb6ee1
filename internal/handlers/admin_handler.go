package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/records"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

func (h *AdminHandler) Pending(c *gin.Context) {
	var profiles []records.BarberProfile
	if err := h.db.
		Where("status = ?", string(models.ProfilePending)).
		Order("created_at ASC, id ASC").
		Find(&profiles).Error; err != nil {
		writeError(c, err)
		return
	}

	items, err := listItems(h.db, profiles)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, items)
}

func (h *AdminHandler) Approve(c *gin.Context) {
	h.moderate(c, models.ProfileApproved)
}

func (h *AdminHandler) Reject(c *gin.Context) {
	h.moderate(c, models.ProfileRejected)
}

func (h *AdminHandler) moderate(c *gin.Context, status models.ProfileStatus) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var profile records.BarberProfile
	if err := h.db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "Barber not found")
			return
		}
		writeError(c, err)
		return
	}

	if profile.Status != string(models.ProfilePending) {
		httperr.BadRequest(c, "Only pending barbers can be moderated")
		return
	}

	if err := h.db.Model(&profile).Update("status", string(status)).Error; err != nil {
		writeError(c, err)
		return
	}

	zap.S().Infow("barber moderated",
		"barber_id", profile.ID,
		"status", status,
		"admin_id", currentUserID(c),
	)

	items, err := listItems(h.db, []records.BarberProfile{profile})
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, items[0])
}
