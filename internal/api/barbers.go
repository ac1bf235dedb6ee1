package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type BarberClient struct {
	c *Client
}

// ---------- public ----------

func (b *BarberClient) List(ctx context.Context, filter models.BarberFilter, page, size int) (*models.Page[models.BarberListItem], error) {
	q := pageQuery(page, size)
	if filter.City != "" {
		q.Set("city", filter.City)
	}
	if filter.District != "" {
		q.Set("district", filter.District)
	}

	var out models.Page[models.BarberListItem]
	if err := b.c.do(ctx, http.MethodGet, "/barbers", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BarberClient) Get(ctx context.Context, id uint) (*models.BarberDetail, error) {
	if err := validators.RequiredID("barberId", id); err != nil {
		return nil, err
	}

	var out models.BarberDetail
	if err := b.c.do(ctx, http.MethodGet, fmt.Sprintf("/barbers/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BarberClient) Services(ctx context.Context, id uint) ([]models.Service, error) {
	if err := validators.RequiredID("barberId", id); err != nil {
		return nil, err
	}

	var out []models.Service
	if err := b.c.do(ctx, http.MethodGet, fmt.Sprintf("/barbers/%d/services", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BarberClient) Reviews(ctx context.Context, id uint, page, size int) (*models.Page[models.Review], error) {
	if err := validators.RequiredID("barberId", id); err != nil {
		return nil, err
	}

	var out models.Page[models.Review]
	if err := b.c.do(ctx, http.MethodGet, fmt.Sprintf("/barbers/%d/reviews", id), pageQuery(page, size), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BarberClient) WorkingHours(ctx context.Context, id uint) ([]models.WorkingHours, error) {
	if err := validators.RequiredID("barberId", id); err != nil {
		return nil, err
	}

	var out []models.WorkingHours
	if err := b.c.do(ctx, http.MethodGet, fmt.Sprintf("/barbers/%d/working-hours", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AvailableSlots asks the server for the slots of one date. A zero duration
// lets the server pick its default slot length.
func (b *BarberClient) AvailableSlots(ctx context.Context, id uint, date string, durationMinutes int) (*models.AvailableSlotsResponse, error) {
	if err := validators.RequiredID("barberId", id); err != nil {
		return nil, err
	}
	if err := validators.Date("date", date); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("date", date)
	if durationMinutes > 0 {
		q.Set("serviceDuration", fmt.Sprint(durationMinutes))
	}

	var out models.AvailableSlotsResponse
	if err := b.c.do(ctx, http.MethodGet, fmt.Sprintf("/appointments/barbers/%d/slots", id), q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------- barber owned ----------

// MyProfile returns httperr.ErrNoProfile when the signed-in barber has not
// created a profile yet.
func (b *BarberClient) MyProfile(ctx context.Context) (*models.BarberDetail, error) {
	var out models.BarberDetail
	err := b.c.do(ctx, http.MethodGet, "/barbers/profile/me", nil, nil, &out)
	if httperr.IsNotFound(err) {
		return nil, httperr.ErrNoProfile
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BarberClient) CreateProfile(ctx context.Context, req models.ProfileRequest) (*models.BarberDetail, error) {
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	var out models.BarberDetail
	if err := b.c.do(ctx, http.MethodPost, "/barbers/profile", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BarberClient) UpdateProfile(ctx context.Context, req models.ProfileRequest) (*models.BarberDetail, error) {
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	var out models.BarberDetail
	if err := b.c.do(ctx, http.MethodPut, "/barbers/profile", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BarberClient) AddService(ctx context.Context, req models.ServiceRequest) (*models.Service, error) {
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	var out models.Service
	if err := b.c.do(ctx, http.MethodPost, "/barbers/services", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BarberClient) UpdateService(ctx context.Context, id uint, req models.ServiceRequest) (*models.Service, error) {
	if err := validators.RequiredID("serviceId", id); err != nil {
		return nil, err
	}
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	var out models.Service
	if err := b.c.do(ctx, http.MethodPut, fmt.Sprintf("/barbers/services/%d", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BarberClient) DeleteService(ctx context.Context, id uint) error {
	if err := validators.RequiredID("serviceId", id); err != nil {
		return err
	}
	return b.c.do(ctx, http.MethodDelete, fmt.Sprintf("/barbers/services/%d", id), nil, nil, nil)
}

func (b *BarberClient) UpdateWorkingHours(ctx context.Context, req models.WorkingHoursRequest) ([]models.WorkingHours, error) {
	if err := validators.Struct(req); err != nil {
		return nil, err
	}
	for _, d := range req.WorkingHours {
		if d.IsClosed {
			continue
		}
		if d.StartTime == nil || d.EndTime == nil || *d.StartTime == "" || *d.EndTime == "" {
			return nil, &validators.FieldError{Field: d.DayOfWeek, Reason: "needs start and end time"}
		}
	}

	var out []models.WorkingHours
	if err := b.c.do(ctx, http.MethodPut, "/barbers/working-hours", nil, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}
