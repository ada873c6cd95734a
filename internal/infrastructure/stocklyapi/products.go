package stocklyapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/stockly-web/internal/application/dto"
	"github.com/jhoicas/stockly-web/internal/domain/entity"
)

// ListProducts GET /api/products. Sólo se envían los filtros con valor.
func (c *Client) ListProducts(ctx context.Context, q dto.ProductQuery) (*entity.ProductPage, error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.LowStock {
		params.Set("low_stock", "true")
	}
	if q.SortBy != "" {
		params.Set("sort_by", q.SortBy)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var out productListWire
	if err := c.do(ctx, http.MethodGet, "/api/products", params, nil, &out); err != nil {
		return nil, err
	}
	page := &entity.ProductPage{
		Data:  make([]entity.Product, 0, len(out.Data)),
		Total: out.Total,
		Page:  out.Page,
		Pages: out.Pages,
	}
	for _, p := range out.Data {
		page.Data = append(page.Data, p.toEntity())
	}
	return page, nil
}

// GetProduct GET /api/products/{id}.
func (c *Client) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	var out productWire
	if err := c.do(ctx, http.MethodGet, productPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	p := out.toEntity()
	return &p, nil
}

// CreateProduct POST /api/products.
func (c *Client) CreateProduct(ctx context.Context, in dto.ProductCreate) (*entity.Product, error) {
	var out productWire
	if err := c.do(ctx, http.MethodPost, "/api/products", nil, newProductCreateWire(in), &out); err != nil {
		return nil, err
	}
	p := out.toEntity()
	return &p, nil
}

// UpdateProduct PUT /api/products/{id} (parcial; nunca incluye sku).
func (c *Client) UpdateProduct(ctx context.Context, id int64, in dto.ProductUpdate) (*entity.Product, error) {
	var out productWire
	if err := c.do(ctx, http.MethodPut, productPath(id), nil, newProductUpdateWire(in), &out); err != nil {
		return nil, err
	}
	p := out.toEntity()
	return &p, nil
}

// DeleteProduct DELETE /api/products/{id}. El servicio responde 204 sin cuerpo.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, productPath(id), nil, nil, nil)
}

// ListCategories GET /api/products/categories.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/api/products/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func productPath(id int64) string {
	return "/api/products/" + strconv.FormatInt(id, 10)
}
