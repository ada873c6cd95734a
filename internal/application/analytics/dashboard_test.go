package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockly-web/internal/application/analytics"
	"github.com/jhoicas/stockly-web/internal/domain/entity"
)

type fakeDashboardRepo struct {
	stats    *entity.DashboardStats
	statsErr error
	low      []entity.Product
	recent   []entity.Movement
	delay    time.Duration
}

func (f *fakeDashboardRepo) GetDashboardStats(context.Context) (*entity.DashboardStats, error) {
	time.Sleep(f.delay)
	return f.stats, f.statsErr
}

func (f *fakeDashboardRepo) GetLowStockProducts(context.Context) ([]entity.Product, error) {
	time.Sleep(f.delay)
	return f.low, nil
}

func (f *fakeDashboardRepo) GetRecentMovements(context.Context) ([]entity.Movement, error) {
	time.Sleep(f.delay)
	return f.recent, nil
}

func TestDashboard_EstadoInicialCargando(t *testing.T) {
	d := analytics.NewDashboard(&fakeDashboardRepo{}, nil)
	assert.True(t, d.Stats.State().Loading)
	assert.True(t, d.LowStock.State().Loading)
	assert.True(t, d.Recent.State().Loading)
	assert.Nil(t, d.Summary().Stats)
}

func TestDashboard_CargaCompleta(t *testing.T) {
	repo := &fakeDashboardRepo{
		stats: &entity.DashboardStats{TotalProducts: 4, TotalValue: decimal.RequireFromString("1234.5")},
		low:   []entity.Product{{ID: 1, Name: "Café", Quantity: 3}},
		recent: []entity.Movement{
			{ID: 2, Type: entity.MovementSaida, Quantity: 2},
			{ID: 1, Type: entity.MovementEntrada, Quantity: 10},
		},
	}
	d := analytics.NewDashboard(repo, nil)
	require.NoError(t, d.Load(context.Background()))

	s := d.Summary()
	require.NotNil(t, s.Stats)
	assert.Equal(t, 4, s.Stats.TotalProducts)
	assert.Len(t, s.LowStock, 1)
	assert.Len(t, s.Recent, 2)
	assert.Empty(t, s.StatsErr)
}

func TestDashboard_FalloParcialNoAfectaOtras(t *testing.T) {
	repo := &fakeDashboardRepo{
		statsErr: errors.New("Internal Server Error"),
		low:      []entity.Product{{ID: 1}},
	}
	d := analytics.NewDashboard(repo, nil)
	require.NoError(t, d.Load(context.Background()))

	s := d.Summary()
	assert.Nil(t, s.Stats)
	assert.Equal(t, "Internal Server Error", s.StatsErr)
	assert.Len(t, s.LowStock, 1)
	assert.Empty(t, s.LowStockErr)
	assert.Empty(t, s.Recent)
	assert.Empty(t, s.RecentErr)
}

func TestDashboard_CargasEnParalelo(t *testing.T) {
	repo := &fakeDashboardRepo{stats: &entity.DashboardStats{}, delay: 100 * time.Millisecond}
	d := analytics.NewDashboard(repo, nil)

	start := time.Now()
	require.NoError(t, d.Load(context.Background()))
	assert.Less(t, time.Since(start), 250*time.Millisecond, "las tres cargas no deben ir en serie")
}

func TestDashboard_LoadRespetaContexto(t *testing.T) {
	repo := &fakeDashboardRepo{stats: &entity.DashboardStats{}, delay: 200 * time.Millisecond}
	d := analytics.NewDashboard(repo, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Load(ctx), context.DeadlineExceeded)
}
