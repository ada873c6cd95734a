package stocklyapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/stockly-web/internal/application/dto"
	"github.com/jhoicas/stockly-web/internal/domain/entity"
)

// ListMovements GET /api/movements, más recientes primero.
func (c *Client) ListMovements(ctx context.Context, q dto.MovementQuery) (*entity.MovementPage, error) {
	params := url.Values{}
	if q.ProductID != 0 {
		params.Set("product_id", strconv.FormatInt(q.ProductID, 10))
	}
	if q.Type != "" {
		params.Set("type", string(q.Type))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var out movementListWire
	if err := c.do(ctx, http.MethodGet, "/api/movements", params, nil, &out); err != nil {
		return nil, err
	}
	page := &entity.MovementPage{Data: make([]entity.Movement, 0, len(out.Data)), Total: out.Total}
	for _, m := range out.Data {
		page.Data = append(page.Data, m.toEntity())
	}
	return page, nil
}

// CreateMovement POST /api/movements. El servicio ajusta la cantidad del producto.
func (c *Client) CreateMovement(ctx context.Context, in dto.MovementCreate) (*entity.Movement, error) {
	var out movementWire
	if err := c.do(ctx, http.MethodPost, "/api/movements", nil, newMovementCreateWire(in), &out); err != nil {
		return nil, err
	}
	m := out.toEntity()
	return &m, nil
}
