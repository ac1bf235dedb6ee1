package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type AppointmentClient struct {
	c *Client
}

func (a *AppointmentClient) Create(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	var out models.Appointment
	if err := a.c.do(ctx, http.MethodPost, "/appointments", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Mine lists the appointments of the signed-in user: bookings for a
// customer, incoming appointments for a barber.
func (a *AppointmentClient) Mine(ctx context.Context, page, size int) (*models.Page[models.Appointment], error) {
	var out models.Page[models.Appointment]
	if err := a.c.do(ctx, http.MethodGet, "/appointments", pageQuery(page, size), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AppointmentClient) UpdateStatus(ctx context.Context, id uint, status string) (*models.Appointment, error) {
	if err := validators.RequiredID("appointmentId", id); err != nil {
		return nil, err
	}
	req := models.UpdateStatusRequest{Status: status}
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	var out models.Appointment
	if err := a.c.do(ctx, http.MethodPatch, fmt.Sprintf("/appointments/%d/status", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AppointmentClient) Cancel(ctx context.Context, id uint) error {
	if err := validators.RequiredID("appointmentId", id); err != nil {
		return err
	}
	return a.c.do(ctx, http.MethodDelete, fmt.Sprintf("/appointments/%d", id), nil, nil, nil)
}

func (a *AppointmentClient) CreateReview(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error) {
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	var out models.Review
	if err := a.c.do(ctx, http.MethodPost, "/reviews", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
