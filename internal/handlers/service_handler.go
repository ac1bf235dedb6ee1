package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/records"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Handlers ---------

func (h *ServiceHandler) Create(c *gin.Context) {
	var req models.ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, ok := myProfile(c, h.db)
	if !ok {
		return
	}

	service := records.Service{
		BarberProfileID: profile.ID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	}
	if err := h.db.Create(&service).Error; err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, dto.Service(&service))
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req models.ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	service, ok := h.ownService(c, id)
	if !ok {
		return
	}

	service.Name = strings.TrimSpace(req.Name)
	service.Description = req.Description
	service.DurationMinutes = req.DurationMinutes
	service.Price = req.Price

	if err := h.db.Save(service).Error; err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.Service(service))
}

// Delete deactivates the service; booked appointments keep referring to it.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	service, ok := h.ownService(c, id)
	if !ok {
		return
	}

	if err := h.db.Model(service).Update("is_active", false).Error; err != nil {
		writeError(c, err)
		return
	}

	httpresp.NoContent(c)
}

func (h *ServiceHandler) ownService(c *gin.Context, id uint) (*records.Service, bool) {
	profile, ok := myProfile(c, h.db)
	if !ok {
		return nil, false
	}

	var service records.Service
	if err := h.db.
		Where("id = ? AND barber_profile_id = ? AND is_active = ?", id, profile.ID, true).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "Service not found")
			return nil, false
		}
		writeError(c, err)
		return nil, false
	}
	return &service, true
}
