package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product copia de lectura de un producto del servicio de inventario.
// Quantity sólo cambia como efecto de un movimiento; IsLowStock lo calcula el servicio
// (quantity <= min_stock) y el cliente nunca lo recalcula.
type Product struct {
	ID          int64
	Name        string
	SKU         string  // único e inmutable después de la creación
	Description *string // opcional
	Category    string
	Price       decimal.Decimal
	Quantity    int
	MinStock    int
	IsLowStock  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DescriptionOr devuelve la descripción o fallback si es nula o vacía.
func (p Product) DescriptionOr(fallback string) string {
	if p.Description == nil || *p.Description == "" {
		return fallback
	}
	return *p.Description
}

// ProductPage página de productos tal como la devuelve el servicio.
type ProductPage struct {
	Data  []Product
	Total int
	Page  int
	Pages int
}
