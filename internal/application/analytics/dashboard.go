// Package analytics arma el dashboard: métricas agregadas, productos con estoque baixo y
// movimentações recientes, cada uno con su propia carga.
package analytics

import (
	"context"
	"errors"

	"github.com/jhoicas/stockly-web/internal/application/dto"
	"github.com/jhoicas/stockly-web/internal/application/fetch"
	"github.com/jhoicas/stockly-web/internal/domain/entity"
	"github.com/jhoicas/stockly-web/internal/domain/repository"
	"github.com/jhoicas/stockly-web/pkg/logger"
)

// Dashboard tres loaders independientes sobre DashboardRepository.
type Dashboard struct {
	Stats    *fetch.Loader[entity.DashboardStats]
	LowStock *fetch.Loader[[]entity.Product]
	Recent   *fetch.Loader[[]entity.Movement]
}

// NewDashboard construye los loaders sin montarlos.
func NewDashboard(repo repository.DashboardRepository, log *logger.Logger) *Dashboard {
	if log == nil {
		log = logger.Nop()
	}
	return &Dashboard{
		Stats: fetch.New(func(ctx context.Context) (entity.DashboardStats, error) {
			s, err := repo.GetDashboardStats(ctx)
			if err != nil {
				return entity.DashboardStats{}, err
			}
			return *s, nil
		}, fetch.WithLogger(log, "dashboard.stats")),
		LowStock: fetch.New(repo.GetLowStockProducts, fetch.WithLogger(log, "dashboard.low_stock")),
		Recent:   fetch.New(repo.GetRecentMovements, fetch.WithLogger(log, "dashboard.recent")),
	}
}

// Load monta las tres cargas en paralelo y espera a que terminen todas. Sólo devuelve error
// si ctx termina antes; los fallos de cada carga quedan en su estado.
func (d *Dashboard) Load(ctx context.Context) error {
	d.Stats.Mount(ctx)
	d.LowStock.Mount(ctx)
	d.Recent.Mount(ctx)
	return errors.Join(d.Stats.Wait(ctx), d.LowStock.Wait(ctx), d.Recent.Wait(ctx))
}

// Summary instantánea de las tres secciones.
func (d *Dashboard) Summary() dto.DashboardSummaryDTO {
	stats := d.Stats.State()
	low := d.LowStock.State()
	recent := d.Recent.State()

	out := dto.DashboardSummaryDTO{
		Stats:       stats.Data,
		StatsErr:    stats.Err,
		LowStockErr: low.Err,
		RecentErr:   recent.Err,
	}
	if low.Data != nil {
		out.LowStock = *low.Data
	}
	if recent.Data != nil {
		out.Recent = *recent.Data
	}
	return out
}
