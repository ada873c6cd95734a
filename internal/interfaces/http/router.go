package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockly-web/internal/domain/repository"
	infrapdf "github.com/jhoicas/stockly-web/internal/infrastructure/pdf"
	"github.com/jhoicas/stockly-web/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	Products  repository.ProductRepository
	Dashboard repository.DashboardRepository
	Sessions  *SessionStore
	Report    *infrapdf.StockReportGenerator
	Log       *logger.Logger
}

// Router registra las páginas.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	// Dashboard (sin sesión: cada visita carga de nuevo)
	dashboardHandler := NewDashboardHandler(deps.Dashboard, log.Named("dashboard"))
	app.Get("/", dashboardHandler.Page)

	// Relatório (sin sesión)
	reportHandler := NewReportHandler(deps.Products, deps.Report, log.Named("report"))
	app.Get("/products/report.pdf", reportHandler.StockPDF)

	// Páginas con estado por navegador
	session := SessionMiddleware(deps.Sessions)

	products := app.Group("/products", session)
	productHandler := NewProductHandler(log.Named("products"))
	products.Get("/", productHandler.Page)
	products.Get("/rows", productHandler.Rows)
	products.Get("/new", productHandler.New)
	products.Get("/:id/edit", productHandler.Edit)
	products.Post("/", productHandler.Create)
	products.Post("/:id", productHandler.Update)
	products.Post("/:id/delete", productHandler.Delete)

	movements := app.Group("/movements", session)
	movementHandler := NewMovementHandler(log.Named("movements"))
	movements.Get("/", movementHandler.Page)
	movements.Get("/new", movementHandler.New)
	movements.Post("/", movementHandler.Create)
}
