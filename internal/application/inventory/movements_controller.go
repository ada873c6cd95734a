// Package inventory controla la página de movimentações: listado de las últimas entradas y
// salidas y el modal para registrar una nueva.
package inventory

import (
	"context"
	"sync"

	"github.com/jhoicas/stockly-web/internal/application/dto"
	"github.com/jhoicas/stockly-web/internal/domain"
	"github.com/jhoicas/stockly-web/internal/domain/entity"
	"github.com/jhoicas/stockly-web/internal/domain/repository"
	"github.com/jhoicas/stockly-web/pkg/logger"
)

// ListLimit tamaño fijo del listado y del selector de productos.
const ListLimit = 100

// Form estado del modal "Nova Movimentação".
type Form struct {
	Open     bool
	Products []entity.Product
	Input    dto.MovementFormInput
	Err      *dto.FormError
}

// State instantánea de la página.
type State struct {
	Movements []entity.Movement
	Loading   bool
	Form      Form
}

// MovementsController estado de la página de movimientos de un navegador.
type MovementsController struct {
	movements repository.MovementRepository
	products  repository.ProductRepository
	log       *logger.Logger

	mu      sync.Mutex
	state   State
	seq     uint64
	pending int
	idle    chan struct{}
}

// NewMovementsController construye el controlador. log puede ser nil.
func NewMovementsController(
	movements repository.MovementRepository,
	products repository.ProductRepository,
	log *logger.Logger,
) *MovementsController {
	if log == nil {
		log = logger.Nop()
	}
	return &MovementsController{
		movements: movements,
		products:  products,
		log:       log,
		state:     State{Loading: true},
	}
}

// State devuelve una copia del estado.
func (c *MovementsController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Movements = append([]entity.Movement(nil), c.state.Movements...)
	s.Form.Products = append([]entity.Product(nil), c.state.Form.Products...)
	return s
}

// Mount lista los últimos movimientos (sin filtros ni paginación).
func (c *MovementsController) Mount(ctx context.Context) error {
	return c.Fetch(ctx)
}

// Fetch vuelve a listar. Un fallo se registra y deja la lista anterior.
func (c *MovementsController) Fetch(ctx context.Context) error {
	c.mu.Lock()
	c.acquireLocked()
	c.seq++
	seq := c.seq
	c.state.Loading = true
	c.mu.Unlock()
	defer c.release()

	page, err := c.movements.ListMovements(ctx, dto.MovementQuery{Limit: ListLimit})

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return err
	}
	c.state.Loading = false
	if err != nil {
		c.log.Error().Err(err).Msg("erro ao carregar movimentações")
		return err
	}
	c.state.Movements = page.Data
	return nil
}

// OpenForm abre el modal y carga los productos del selector. Si el catálogo falla el
// selector queda vacío y el envío pedirá elegir un producto.
func (c *MovementsController) OpenForm(ctx context.Context) {
	var products []entity.Product
	page, err := c.products.ListProducts(ctx, dto.ProductQuery{Limit: ListLimit})
	if err != nil {
		c.log.Warn().Err(err).Msg("produtos do formulário")
	} else {
		products = page.Data
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Form = Form{
		Open:     true,
		Products: products,
		Input:    dto.NewMovementFormInput(products),
	}
}

// CloseForm descarta el modal.
func (c *MovementsController) CloseForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Form = Form{}
}

// SubmitForm valida y registra el movimiento. En éxito cierra el modal y vuelve a listar;
// la cantidad del producto la ajusta el servicio.
func (c *MovementsController) SubmitForm(ctx context.Context, in dto.MovementFormInput) error {
	c.mu.Lock()
	open := c.state.Form.Open
	c.mu.Unlock()
	if !open {
		return domain.ErrFormClosed
	}

	if fe := in.Validate(); fe != nil {
		c.setFormError(in, fe)
		return fe
	}

	if _, err := c.movements.CreateMovement(ctx, in.ToCreate()); err != nil {
		c.log.Warn().Err(err).Int64("product_id", in.ProductID).Str("type", string(in.Type)).Msg("registrar movimentação")
		fe := dto.FormErrorFrom(err, dto.MsgMovementSaveFail)
		c.setFormError(in, fe)
		return fe
	}

	c.CloseForm()
	_ = c.Fetch(ctx)
	return nil
}

// WaitIdle bloquea hasta que no haya listados en vuelo.
func (c *MovementsController) WaitIdle(ctx context.Context) error {
	c.mu.Lock()
	if c.pending == 0 {
		c.mu.Unlock()
		return nil
	}
	idle := c.idle
	c.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *MovementsController) setFormError(in dto.MovementFormInput, fe *dto.FormError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Form.Input = in
	c.state.Form.Err = fe
}

func (c *MovementsController) acquireLocked() {
	if c.pending == 0 {
		c.idle = make(chan struct{})
	}
	c.pending++
}

func (c *MovementsController) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending--
	if c.pending == 0 {
		close(c.idle)
	}
}
