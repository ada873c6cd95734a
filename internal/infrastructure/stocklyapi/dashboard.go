package stocklyapi

import (
	"context"
	"net/http"

	"github.com/jhoicas/stockly-web/internal/domain/entity"
)

// GetDashboardStats GET /api/dashboard/stats.
func (c *Client) GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	var out dashboardStatsWire
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	s := out.toEntity()
	return &s, nil
}

// GetLowStockProducts GET /api/dashboard/low-stock.
func (c *Client) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	var out []productWire
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/low-stock", nil, nil, &out); err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(out))
	for _, p := range out {
		products = append(products, p.toEntity())
	}
	return products, nil
}

// GetRecentMovements GET /api/dashboard/recent.
func (c *Client) GetRecentMovements(ctx context.Context) ([]entity.Movement, error) {
	var out []movementWire
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/recent", nil, nil, &out); err != nil {
		return nil, err
	}
	movements := make([]entity.Movement, 0, len(out))
	for _, m := range out {
		movements = append(movements, m.toEntity())
	}
	return movements, nil
}
