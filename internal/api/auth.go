package api

import (
	"context"
	"net/http"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type AuthClient struct {
	c *Client
}

func (a *AuthClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	var out models.AuthResponse
	if err := a.c.do(ctx, http.MethodPost, "/auth/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	var out models.AuthResponse
	if err := a.c.do(ctx, http.MethodPost, "/auth/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
