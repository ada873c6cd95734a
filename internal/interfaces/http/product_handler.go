package http

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockly-web/internal/application/catalog"
	"github.com/jhoicas/stockly-web/internal/application/dto"
	"github.com/jhoicas/stockly-web/internal/domain"
	"github.com/jhoicas/stockly-web/pkg/logger"
)

// productsView datos de la página de productos.
type productsView struct {
	Title      string
	Active     string
	State      catalog.State
	Categories []string
}

// ProductHandler página de productos: listado, búsqueda, modal y borrado.
type ProductHandler struct {
	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(log *logger.Logger) *ProductHandler {
	return &ProductHandler{log: log}
}

// Page GET /products?search=: monta la página (cierra el modal) y espera el listado.
func (h *ProductHandler) Page(c *fiber.Ctx) error {
	ctl := GetWorkspace(c).Products
	ctl.CloseForm()
	ctl.Mount(c.Query("search"))
	return h.render(c, ctl, fiber.StatusOK)
}

// Rows GET /products/rows?search=: tabla parcial para la búsqueda mientras se escribe.
// Peticiones seguidas reinician la espera; todas responden con el último listado.
func (h *ProductHandler) Rows(c *fiber.Ctx) error {
	ctl := GetWorkspace(c).Products
	ctl.SetSearch(c.Query("search"))
	if err := ctl.WaitIdle(c.UserContext()); err != nil {
		return err
	}
	return c.Render("partials/product_rows", ctl.State())
}

// New GET /products/new: abre el modal de alta.
func (h *ProductHandler) New(c *fiber.Ctx) error {
	ctl := h.mounted(c)
	ctl.OpenCreate()
	return h.render(c, ctl, fiber.StatusOK)
}

// Edit GET /products/:id/edit: abre el modal con los datos del producto.
func (h *ProductHandler) Edit(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	ctl := h.mounted(c)
	if err := ctl.WaitIdle(c.UserContext()); err != nil {
		return err
	}
	if err := ctl.OpenEdit(c.UserContext(), id); err != nil {
		return h.editFailed(c, id, err)
	}
	return h.render(c, ctl, fiber.StatusOK)
}

// Create POST /products.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	ctl := h.mounted(c)
	if st := ctl.State(); !st.Form.Open || st.Form.Editing {
		ctl.OpenCreate()
	}
	return h.submit(c, ctl)
}

// Update POST /products/:id.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	ctl := h.mounted(c)
	if st := ctl.State(); !st.Form.Open || !st.Form.Editing || st.Form.ProductID != id {
		if err := ctl.OpenEdit(c.UserContext(), id); err != nil {
			return h.editFailed(c, id, err)
		}
	}
	return h.submit(c, ctl)
}

// Delete POST /products/:id/delete. El navegador envía confirm=true tras preguntar
// "Excluir este produto?"; sin confirmación no se hace ninguna petición.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	ctl := h.mounted(c)
	confirmed := c.FormValue("confirm") == "true"

	err = ctl.Delete(c.UserContext(), id, func(string) bool { return confirmed })
	if err != nil && !errors.Is(err, domain.ErrNotConfirmed) {
		h.log.Error().Err(err).Int64("product_id", id).Msg("excluir produto")
	}
	return h.render(c, ctl, fiber.StatusOK)
}

// editFailed un producto inexistente responde 404; cualquier otro fallo vuelve al listado.
func (h *ProductHandler) editFailed(c *fiber.Ctx, id int64, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		h.log.Warn().Int64("product_id", id).Msg("produto não encontrado")
		return fiber.NewError(fiber.StatusNotFound, "Produto não encontrado")
	}
	h.log.Error().Err(err).Int64("product_id", id).Msg("abrir edición")
	return c.Redirect("/products", fiber.StatusSeeOther)
}

func (h *ProductHandler) submit(c *fiber.Ctx, ctl *catalog.ListController) error {
	err := ctl.SubmitForm(c.UserContext(), parseProductForm(c))
	var fe *dto.FormError
	switch {
	case err == nil:
		return h.render(c, ctl, fiber.StatusOK)
	case errors.As(err, &fe):
		return h.render(c, ctl, fiber.StatusUnprocessableEntity)
	default:
		return err
	}
}

// mounted devuelve el controlador montado; una sesión nueva que entra directo al modal
// también necesita el listado.
func (h *ProductHandler) mounted(c *fiber.Ctx) *catalog.ListController {
	ctl := GetWorkspace(c).Products
	if !ctl.Mounted() {
		ctl.Mount(c.Query("search"))
	}
	return ctl
}

func (h *ProductHandler) render(c *fiber.Ctx, ctl *catalog.ListController, status int) error {
	if err := ctl.WaitIdle(c.UserContext()); err != nil {
		return err
	}
	st := ctl.State()
	view := productsView{Title: "Produtos", Active: "products", State: st}
	if st.Form.Open {
		view.Categories = h.categories(c.UserContext(), ctl)
	}
	return c.Status(status).Render("products", view, "layouts/main")
}

func (h *ProductHandler) categories(ctx context.Context, ctl *catalog.ListController) []string {
	cats, err := ctl.Categories(ctx)
	if err != nil {
		h.log.Warn().Err(err).Msg("categorias")
		return nil
	}
	return cats
}

func productID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id inválido")
	}
	return id, nil
}

// parseProductForm lee el modal. Números inválidos quedan en cero, como en un input
// numérico vacío.
func parseProductForm(c *fiber.Ctx) dto.ProductFormInput {
	return dto.ProductFormInput{
		Name:        strings.TrimSpace(c.FormValue("name")),
		SKU:         strings.TrimSpace(c.FormValue("sku")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Category:    strings.TrimSpace(c.FormValue("category")),
		Price:       formDecimal(c.FormValue("price")),
		Quantity:    formInt(c.FormValue("quantity")),
		MinStock:    formInt(c.FormValue("min_stock")),
	}
}

func formDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func formInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
