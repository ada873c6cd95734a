package dto

import "github.com/jhoicas/stockly-web/internal/domain/entity"

// DashboardSummaryDTO resultado de las tres cargas del dashboard. Cada sección es
// independiente: un fallo en una no afecta a las otras.
type DashboardSummaryDTO struct {
	Stats    *entity.DashboardStats // nil mientras carga o si falló
	StatsErr string

	LowStock    []entity.Product
	LowStockErr string

	Recent    []entity.Movement
	RecentErr string
}

// StatCard tarjeta de métrica ya formateada para la vista. Value es "—" sin datos.
type StatCard struct {
	Label string
	Value string
	Icon  string
	Color string
}
