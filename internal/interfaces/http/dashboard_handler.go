package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stockly-web/internal/application/analytics"
	"github.com/jhoicas/stockly-web/internal/application/dto"
	"github.com/jhoicas/stockly-web/internal/domain/entity"
	"github.com/jhoicas/stockly-web/internal/domain/repository"
	"github.com/jhoicas/stockly-web/pkg/format"
	"github.com/jhoicas/stockly-web/pkg/logger"
)

type dashboardView struct {
	Title   string
	Active  string
	Cards   []dto.StatCard
	Summary dto.DashboardSummaryDTO
}

// DashboardHandler página inicial con métricas, estoque baixo y movimentações recientes.
type DashboardHandler struct {
	repo repository.DashboardRepository
	log  *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(repo repository.DashboardRepository, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{repo: repo, log: log}
}

// Page GET /: las tres secciones se cargan en paralelo; cada una falla por separado.
func (h *DashboardHandler) Page(c *fiber.Ctx) error {
	d := appanalytics.NewDashboard(h.repo, h.log)
	if err := d.Load(c.UserContext()); err != nil {
		return err
	}
	summary := d.Summary()
	return c.Render("dashboard", dashboardView{
		Title:   "Dashboard",
		Active:  "dashboard",
		Cards:   statCards(summary.Stats),
		Summary: summary,
	}, "layouts/main")
}

// statCards las seis tarjetas; sin stats todas muestran "—".
func statCards(s *entity.DashboardStats) []dto.StatCard {
	value := func(fn func(*entity.DashboardStats) string) string {
		if s == nil {
			return format.Placeholder
		}
		return fn(s)
	}
	return []dto.StatCard{
		{Label: "Total Produtos", Icon: "package", Color: "indigo",
			Value: value(func(s *entity.DashboardStats) string { return format.Int(s.TotalProducts) })},
		{Label: "Itens em Estoque", Icon: "boxes", Color: "blue",
			Value: value(func(s *entity.DashboardStats) string { return format.Int(s.TotalQuantity) })},
		{Label: "Estoque Baixo", Icon: "alert", Color: "red",
			Value: value(func(s *entity.DashboardStats) string { return format.Int(s.LowStockCount) })},
		{Label: "Valor Total", Icon: "money", Color: "emerald",
			Value: value(func(s *entity.DashboardStats) string { return format.Currency(s.TotalValue) })},
		{Label: "Entradas Hoje", Icon: "down", Color: "green",
			Value: value(func(s *entity.DashboardStats) string { return format.Int(s.EntriesToday) })},
		{Label: "Saídas Hoje", Icon: "up", Color: "amber",
			Value: value(func(s *entity.DashboardStats) string { return format.Int(s.ExitsToday) })},
	}
}
