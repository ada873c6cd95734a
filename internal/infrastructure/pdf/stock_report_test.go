package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockly-web/internal/domain/entity"
)

func TestGenerate_ProduceUnPDF(t *testing.T) {
	g := NewStockReportGenerator("stockly-web")
	g.now = func() time.Time { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) }

	products := []entity.Product{
		{ID: 1, Name: "Café", SKU: "CAF01", Category: "Bebidas", Price: decimal.RequireFromString("12.5"), Quantity: 3, IsLowStock: true},
		{ID: 2, Name: "Teclado", SKU: "TEC-001", Category: "Periféricos", Price: decimal.RequireFromString("299.9"), Quantity: 40},
	}

	out, err := g.Generate(context.Background(), products, 2)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "cabecera PDF")
}

func TestGenerate_ListaVacia(t *testing.T) {
	out, err := NewStockReportGenerator("stockly-web").Generate(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
