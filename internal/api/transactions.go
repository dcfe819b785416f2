package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/valeriaulyamaeva/ga-financas/models"
)

// ListTransactions загружает транзакции; пустой kind возвращает все.
func (c *Client) ListTransactions(ctx context.Context, token string, kind models.Kind) ([]models.Transaction, error) {
	path := "/transacoes/"
	if kind != "" {
		path += "?tipo=" + url.QueryEscape(string(kind))
	}
	return getList[models.Transaction](ctx, c, path, token)
}

func (c *Client) GetTransaction(ctx context.Context, token string, id int) (*models.Transaction, error) {
	var tx models.Transaction
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/transacoes/%d/", id), token, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *Client) CreateTransaction(ctx context.Context, token string, in models.TransactionInput) (*models.Transaction, error) {
	var tx models.Transaction
	if err := c.do(ctx, http.MethodPost, "/transacoes/", token, in, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, token string, id int, in models.TransactionInput) (*models.Transaction, error) {
	var tx models.Transaction
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/transacoes/%d/", id), token, in, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/transacoes/%d/", id), token, nil, nil)
}

// Statistics GET /transacoes/estatisticas/.
func (c *Client) Statistics(ctx context.Context, token string) (*models.Statistics, error) {
	var stats models.Statistics
	if err := c.do(ctx, http.MethodGet, "/transacoes/estatisticas/", token, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
