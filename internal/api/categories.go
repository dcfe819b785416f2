package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/valeriaulyamaeva/ga-financas/models"
	"github.com/valeriaulyamaeva/ga-financas/utils"
)

func (c *Client) ListCategories(ctx context.Context, token string) ([]models.Category, error) {
	return getList[models.Category](ctx, c, "/categorias/", token)
}

func (c *Client) GetCategory(ctx context.Context, token string, id int) (*models.Category, error) {
	var cat models.Category
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categorias/%d/", id), token, nil, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// CreateCategory создает категорию. Цвет отправляется без '#'.
func (c *Client) CreateCategory(ctx context.Context, token string, in models.CategoryInput) (*models.Category, error) {
	in.Color = utils.ColorForAPI(in.Color)
	var cat models.Category
	if err := c.do(ctx, http.MethodPost, "/categorias/", token, in, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) UpdateCategory(ctx context.Context, token string, id int, in models.CategoryInput) (*models.Category, error) {
	in.Color = utils.ColorForAPI(in.Color)
	var cat models.Category
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categorias/%d/", id), token, in, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) DeleteCategory(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categorias/%d/", id), token, nil, nil)
}
