package entity

import "github.com/shopspring/decimal"

// DashboardStats agregado efímero; se recalcula en cada consulta y nunca se persiste.
type DashboardStats struct {
	TotalProducts int
	TotalQuantity int
	LowStockCount int
	TotalValue    decimal.Decimal
	EntriesToday  int
	ExitsToday    int
}
