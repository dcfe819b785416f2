package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/ga-financas/models"
)

func (c *Client) ListGoals(ctx context.Context, token string) ([]models.Goal, error) {
	return getList[models.Goal](ctx, c, "/metas/", token)
}

func (c *Client) GetGoal(ctx context.Context, token string, id int) (*models.Goal, error) {
	var goal models.Goal
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/metas/%d/", id), token, nil, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// CreateGoal создает цель с нулевым текущим значением.
func (c *Client) CreateGoal(ctx context.Context, token string, in models.GoalInput) (*models.Goal, error) {
	zero := decimal.Zero
	in.Current = &zero
	var goal models.Goal
	if err := c.do(ctx, http.MethodPost, "/metas/", token, in, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateGoal PATCH без valor_atual.
func (c *Client) UpdateGoal(ctx context.Context, token string, id int, in models.GoalInput) (*models.Goal, error) {
	in.Current = nil
	var goal models.Goal
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/metas/%d/", id), token, in, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (c *Client) DeleteGoal(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/metas/%d/", id), token, nil, nil)
}
