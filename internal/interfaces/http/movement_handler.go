package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockly-web/internal/application/dto"
	"github.com/jhoicas/stockly-web/internal/application/inventory"
	"github.com/jhoicas/stockly-web/internal/domain/entity"
	"github.com/jhoicas/stockly-web/pkg/logger"
)

type movementsView struct {
	Title  string
	Active string
	State  inventory.State
}

// MovementHandler página de movimentações.
type MovementHandler struct {
	log *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(log *logger.Logger) *MovementHandler {
	return &MovementHandler{log: log}
}

// Page GET /movements: monta la página y lista los últimos 100 movimientos.
func (h *MovementHandler) Page(c *fiber.Ctx) error {
	ctl := GetWorkspace(c).Movements
	ctl.CloseForm()
	_ = ctl.Mount(c.UserContext())
	return h.render(c, ctl, fiber.StatusOK)
}

// New GET /movements/new: abre el modal con el selector de productos.
func (h *MovementHandler) New(c *fiber.Ctx) error {
	ctl := GetWorkspace(c).Movements
	if ctl.State().Loading {
		_ = ctl.Mount(c.UserContext())
	}
	ctl.OpenForm(c.UserContext())
	return h.render(c, ctl, fiber.StatusOK)
}

// Create POST /movements: registra el movimiento. Con error el modal sigue abierto con
// el mensaje; en éxito se cierra y la lista ya viene actualizada.
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	ctl := GetWorkspace(c).Movements
	if !ctl.State().Form.Open {
		ctl.OpenForm(c.UserContext())
	}

	err := ctl.SubmitForm(c.UserContext(), parseMovementForm(c))
	var fe *dto.FormError
	switch {
	case err == nil:
		return h.render(c, ctl, fiber.StatusOK)
	case errors.As(err, &fe):
		if ctl.State().Loading {
			_ = ctl.Mount(c.UserContext())
		}
		return h.render(c, ctl, fiber.StatusUnprocessableEntity)
	default:
		return err
	}
}

func (h *MovementHandler) render(c *fiber.Ctx, ctl *inventory.MovementsController, status int) error {
	if err := ctl.WaitIdle(c.UserContext()); err != nil {
		return err
	}
	view := movementsView{Title: "Movimentações", Active: "movements", State: ctl.State()}
	return c.Status(status).Render("movements", view, "layouts/main")
}

func parseMovementForm(c *fiber.Ctx) dto.MovementFormInput {
	productID, _ := strconv.ParseInt(strings.TrimSpace(c.FormValue("product_id")), 10, 64)
	return dto.MovementFormInput{
		ProductID: productID,
		Type:      entity.MovementType(c.FormValue("type")),
		Quantity:  formInt(c.FormValue("quantity")),
		Notes:     strings.TrimSpace(c.FormValue("notes")),
	}
}
