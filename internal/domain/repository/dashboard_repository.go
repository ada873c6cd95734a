package repository

import (
	"context"

	"github.com/jhoicas/stockly-web/internal/domain/entity"
)

// DashboardRepository consultas read-only del dashboard. Cada método es independiente.
type DashboardRepository interface {
	// GetDashboardStats métricas agregadas calculadas por el servicio.
	GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error)

	// GetLowStockProducts productos con quantity <= min_stock (el servicio limita la lista).
	GetLowStockProducts(ctx context.Context) ([]entity.Product, error)

	// GetRecentMovements últimos movimientos, más recientes primero.
	GetRecentMovements(ctx context.Context) ([]entity.Movement, error)
}
