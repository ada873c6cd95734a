package stocklyapi

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockly-web/internal/application/dto"
	"github.com/jhoicas/stockly-web/internal/domain/entity"
)

// ── Formato de fechas ─────────────────────────────────────────────────────────

// apiTime acepta RFC 3339 y también los datetime "naive" que emite el servicio
// (sin zona), interpretados como UTC.
type apiTime struct{ time.Time }

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *apiTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = ts
		return nil
	}
	for _, layout := range naiveLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = ts
			return nil
		}
	}
	return fmt.Errorf("fecha inválida %q", s)
}

// ── Respuestas ────────────────────────────────────────────────────────────────

type productWire struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Description *string         `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	MinStock    int             `json:"min_stock"`
	IsLowStock  bool            `json:"is_low_stock"`
	CreatedAt   apiTime         `json:"created_at"`
	UpdatedAt   apiTime         `json:"updated_at"`
}

func (w productWire) toEntity() entity.Product {
	return entity.Product{
		ID:          w.ID,
		Name:        w.Name,
		SKU:         w.SKU,
		Description: w.Description,
		Category:    w.Category,
		Price:       w.Price,
		Quantity:    w.Quantity,
		MinStock:    w.MinStock,
		IsLowStock:  w.IsLowStock,
		CreatedAt:   w.CreatedAt.Time,
		UpdatedAt:   w.UpdatedAt.Time,
	}
}

type productListWire struct {
	Data  []productWire `json:"data"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
}

type movementWire struct {
	ID          int64               `json:"id"`
	ProductID   int64               `json:"product_id"`
	ProductName *string             `json:"product_name"`
	Type        entity.MovementType `json:"type"`
	Quantity    int                 `json:"quantity"`
	Notes       *string             `json:"notes"`
	CreatedAt   apiTime             `json:"created_at"`
}

func (w movementWire) toEntity() entity.Movement {
	return entity.Movement{
		ID:          w.ID,
		ProductID:   w.ProductID,
		ProductName: w.ProductName,
		Type:        w.Type,
		Quantity:    w.Quantity,
		Notes:       w.Notes,
		CreatedAt:   w.CreatedAt.Time,
	}
}

type movementListWire struct {
	Data  []movementWire `json:"data"`
	Total int            `json:"total"`
}

type dashboardStatsWire struct {
	TotalProducts int             `json:"total_products"`
	TotalQuantity int             `json:"total_quantity"`
	LowStockCount int             `json:"low_stock_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
	EntriesToday  int             `json:"entries_today"`
	ExitsToday    int             `json:"exits_today"`
}

func (w dashboardStatsWire) toEntity() entity.DashboardStats {
	return entity.DashboardStats(w)
}

// errorWire cuerpo de error del servicio. detail puede no ser string (errores 422 de
// validación traen un arreglo); en ese caso se ignora.
type errorWire struct {
	Detail json.RawMessage `json:"detail"`
}

func (w errorWire) detail() string {
	var s string
	if len(w.Detail) == 0 || json.Unmarshal(w.Detail, &s) != nil {
		return ""
	}
	return s
}

// ── Peticiones ────────────────────────────────────────────────────────────────

// Los precios viajan como número JSON; decimal.Decimal por defecto se serializa entre comillas.

type productCreateWire struct {
	Name        string      `json:"name"`
	SKU         string      `json:"sku"`
	Description *string     `json:"description,omitempty"`
	Category    string      `json:"category"`
	Price       json.Number `json:"price"`
	Quantity    int         `json:"quantity"`
	MinStock    int         `json:"min_stock"`
}

func newProductCreateWire(in dto.ProductCreate) productCreateWire {
	return productCreateWire{
		Name:        in.Name,
		SKU:         in.SKU,
		Description: in.Description,
		Category:    in.Category,
		Price:       json.Number(in.Price.String()),
		Quantity:    in.Quantity,
		MinStock:    in.MinStock,
	}
}

type productUpdateWire struct {
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Category    *string      `json:"category,omitempty"`
	Price       *json.Number `json:"price,omitempty"`
	MinStock    *int         `json:"min_stock,omitempty"`
}

func newProductUpdateWire(in dto.ProductUpdate) productUpdateWire {
	out := productUpdateWire{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		MinStock:    in.MinStock,
	}
	if in.Price != nil {
		n := json.Number(in.Price.String())
		out.Price = &n
	}
	return out
}

type movementCreateWire struct {
	ProductID int64               `json:"product_id"`
	Type      entity.MovementType `json:"type"`
	Quantity  int                 `json:"quantity"`
	Notes     *string             `json:"notes,omitempty"`
}

func newMovementCreateWire(in dto.MovementCreate) movementCreateWire {
	return movementCreateWire(in)
}
