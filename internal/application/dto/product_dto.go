package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockly-web/internal/domain/entity"
)

// Mensajes del formulario de producto.
const (
	MsgProductRequired = "Preencha os campos obrigatórios"
	MsgProductSaveFail = "Erro ao salvar"
	MsgDeleteConfirm   = "Excluir este produto?"
)

// DefaultMinStock estoque mínimo sugerido al crear.
const DefaultMinStock = 5

// ProductQuery filtros de GET /api/products. Los valores cero no se envían.
type ProductQuery struct {
	Search   string
	Category string
	LowStock bool
	SortBy   string
	Page     int
	Limit    int
}

// ProductCreate cuerpo de POST /api/products.
type ProductCreate struct {
	Name        string
	SKU         string
	Description *string
	Category    string
	Price       decimal.Decimal
	Quantity    int
	MinStock    int
}

// ProductUpdate cuerpo parcial de PUT /api/products/{id}. No existe SKU: es inmutable,
// y Quantity sólo cambia vía movimientos.
type ProductUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Price       *decimal.Decimal
	MinStock    *int
}

// ProductFormInput valores del modal de producto tal como llegan del navegador.
type ProductFormInput struct {
	Name        string
	SKU         string
	Description string
	Category    string
	Price       decimal.Decimal
	Quantity    int
	MinStock    int
}

// NewProductFormInput valores iniciales del modal: vacío para crear, datos de p para editar.
func NewProductFormInput(p *entity.Product) ProductFormInput {
	if p == nil {
		return ProductFormInput{Price: decimal.Zero, MinStock: DefaultMinStock}
	}
	return ProductFormInput{
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.DescriptionOr(""),
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
		MinStock:    p.MinStock,
	}
}

// Validate revisa los campos obligatorios antes de enviar. Al editar el SKU no se valida
// porque no se envía.
func (in ProductFormInput) Validate(editing bool) *FormError {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" {
		return NewFormError(MsgProductRequired)
	}
	if !editing && strings.TrimSpace(in.SKU) == "" {
		return NewFormError(MsgProductRequired)
	}
	return nil
}

// ToCreate convierte el formulario en el cuerpo de creación.
func (in ProductFormInput) ToCreate() ProductCreate {
	out := ProductCreate{
		Name:     in.Name,
		SKU:      in.SKU,
		Category: in.Category,
		Price:    in.Price,
		Quantity: in.Quantity,
		MinStock: in.MinStock,
	}
	if in.Description != "" {
		d := in.Description
		out.Description = &d
	}
	return out
}

// ToUpdate convierte el formulario en una actualización parcial sin SKU ni cantidad.
func (in ProductFormInput) ToUpdate() ProductUpdate {
	name, desc, cat := in.Name, in.Description, in.Category
	price, minStock := in.Price, in.MinStock
	return ProductUpdate{
		Name:        &name,
		Description: &desc,
		Category:    &cat,
		Price:       &price,
		MinStock:    &minStock,
	}
}
