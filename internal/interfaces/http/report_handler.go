package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockly-web/internal/application/dto"
	"github.com/jhoicas/stockly-web/internal/domain/repository"
	infrapdf "github.com/jhoicas/stockly-web/internal/infrastructure/pdf"
	"github.com/jhoicas/stockly-web/pkg/logger"
)

// reportLimit máximo de productos que acepta el servicio por página.
const reportLimit = 100

// ReportHandler relatório de estoque en PDF.
type ReportHandler struct {
	products  repository.ProductRepository
	generator *infrapdf.StockReportGenerator
	log       *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(products repository.ProductRepository, generator *infrapdf.StockReportGenerator, log *logger.Logger) *ReportHandler {
	return &ReportHandler{products: products, generator: generator, log: log}
}

// StockPDF GET /products/report.pdf?search=: mismo filtro que la tabla.
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	page, err := h.products.ListProducts(c.UserContext(), dto.ProductQuery{
		Search: c.Query("search"),
		Limit:  reportLimit,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("relatório: listar produtos")
		return fiber.NewError(fiber.StatusBadGateway, "Erro ao carregar produtos")
	}

	out, err := h.generator.Generate(c.UserContext(), page.Data, page.Total)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="estoque.pdf"`)
	return c.Send(out)
}
