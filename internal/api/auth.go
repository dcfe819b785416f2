package api

import (
	"context"
	"net/http"

	"github.com/valeriaulyamaeva/ga-financas/models"
)

// Login POST /login/.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login/", "", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register POST /register/.
func (c *Client) Register(ctx context.Context, reg models.Registration) error {
	return c.do(ctx, http.MethodPost, "/register/", "", reg, nil)
}

func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/me/", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe частично обновляет профиль через PUT /users/me/.
func (c *Client) UpdateMe(ctx context.Context, token string, in models.ProfileInput) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/users/me/", token, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
