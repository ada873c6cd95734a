package repository

import (
	"context"

	"github.com/jhoicas/stockly-web/internal/application/dto"
	"github.com/jhoicas/stockly-web/internal/domain/entity"
)

// ProductRepository puerto hacia el catálogo remoto (servicio REST de inventario).
type ProductRepository interface {
	ListProducts(ctx context.Context, q dto.ProductQuery) (*entity.ProductPage, error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	CreateProduct(ctx context.Context, in dto.ProductCreate) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id int64, in dto.ProductUpdate) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]string, error)
}
