package format_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockly-web/pkg/format"
)

func TestCurrency(t *testing.T) {
	cases := map[string]string{
		"0":       "R$\u00a00,00",
		"12.5":    "R$\u00a012,50",
		"1234.5":  "R$\u00a01.234,50",
		"1000000": "R$\u00a01.000.000,00",
		"299.999": "R$\u00a0300,00",
		"-45.1":   "-R$\u00a045,10",
	}
	for in, want := range cases {
		assert.Equal(t, want, format.Currency(decimal.RequireFromString(in)), in)
	}
}

func TestInt(t *testing.T) {
	assert.Equal(t, "3", format.Int(3))
	assert.Equal(t, "12.500", format.Int(12500))
	assert.Equal(t, "-1.000", format.Int(-1000))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "16 de out. de 2026", format.Date(time.Date(2026, 10, 16, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "05 de mai. de 2025", format.Date(time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)))
}

func TestDateTime(t *testing.T) {
	assert.Equal(t, "16 de out., 14:05", format.DateTime(time.Date(2026, 10, 16, 14, 5, 0, 0, time.UTC)))
	assert.Equal(t, "01 de jan., 09:00", format.DateTime(time.Date(2027, 1, 1, 9, 0, 0, 0, time.UTC)))
}
