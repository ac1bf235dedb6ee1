package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type AdminClient struct {
	c *Client
}

func (a *AdminClient) PendingBarbers(ctx context.Context) ([]models.BarberListItem, error) {
	var out []models.BarberListItem
	if err := a.c.do(ctx, http.MethodGet, "/admin/barbers/pending", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AdminClient) Approve(ctx context.Context, barberID uint) (*models.BarberListItem, error) {
	return a.moderate(ctx, barberID, "approve")
}

func (a *AdminClient) Reject(ctx context.Context, barberID uint) (*models.BarberListItem, error) {
	return a.moderate(ctx, barberID, "reject")
}

func (a *AdminClient) moderate(ctx context.Context, barberID uint, action string) (*models.BarberListItem, error) {
	if err := validators.RequiredID("barberId", barberID); err != nil {
		return nil, err
	}

	var out models.BarberListItem
	path := fmt.Sprintf("/admin/barbers/%d/%s", barberID, action)
	if err := a.c.do(ctx, http.MethodPatch, path, nil, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
