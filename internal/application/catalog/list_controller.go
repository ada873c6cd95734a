// Package catalog contiene el controlador de la página de productos: listado con búsqueda
// diferida, modal de alta/edición y borrado con confirmación.
package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/stockly-web/internal/application/dto"
	"github.com/jhoicas/stockly-web/internal/domain/entity"
	"github.com/jhoicas/stockly-web/internal/domain/repository"
	"github.com/jhoicas/stockly-web/pkg/logger"
)

// MsgLoadFailed se registra (no se muestra) cuando falla el listado.
const MsgLoadFailed = "Erro ao carregar produtos"

const (
	defaultDebounce = 300 * time.Millisecond
	defaultLimit    = 100
)

// Confirmer pregunta al usuario; false cancela la acción.
type Confirmer func(message string) bool

// Form estado del modal de producto.
type Form struct {
	Open      bool
	Editing   bool
	ProductID int64
	Input     dto.ProductFormInput
	Err       *dto.FormError
}

// State instantánea de la página.
type State struct {
	Products []entity.Product
	Total    int
	Search   string
	Loading  bool
	Form     Form
}

// Option configura un ListController.
type Option func(*ListController)

// WithDebounce cambia la ventana de espera de la búsqueda.
func WithDebounce(d time.Duration) Option {
	return func(c *ListController) { c.debounce = d }
}

// WithLimit cambia el tamaño de página pedido al servicio.
func WithLimit(n int) Option {
	return func(c *ListController) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithLogger inyecta el logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *ListController) { c.log = l }
}

// ListController estado de la página de productos de un navegador.
type ListController struct {
	repo     repository.ProductRepository
	log      *logger.Logger
	debounce time.Duration
	limit    int

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	state   State
	timer   *time.Timer
	seq     uint64
	mounted bool
	closed  bool

	pending int
	idle    chan struct{}
}

// NewListController construye el controlador. Hasta el primer listado Loading es true.
func NewListController(repo repository.ProductRepository, opts ...Option) *ListController {
	ctx, cancel := context.WithCancel(context.Background())
	c := &ListController{
		repo:     repo,
		log:      logger.Nop(),
		debounce: defaultDebounce,
		limit:    defaultLimit,
		ctx:      ctx,
		cancel:   cancel,
		state:    State{Loading: true},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State devuelve una copia del estado.
func (c *ListController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Products = append([]entity.Product(nil), c.state.Products...)
	return s
}

// Mount programa el primer listado tras la ventana de espera.
func (c *ListController) Mount(search string) {
	c.SetSearch(search)
}

// SetSearch actualiza el término y reinicia el temporizador; sólo el último término se
// consulta.
func (c *ListController) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.mounted = true
	c.state.Search = term
	if c.timer != nil && c.timer.Stop() {
		c.releaseLocked()
	}
	c.acquireLocked()
	c.timer = time.AfterFunc(c.debounce, func() {
		defer c.release()
		_ = c.Fetch(c.ctx)
	})
}

// Fetch lista los productos con el término actual. Un fallo se registra y deja el estado
// anterior intacto.
func (c *ListController) Fetch(ctx context.Context) error {
	c.mu.Lock()
	c.acquireLocked()
	c.seq++
	seq := c.seq
	q := dto.ProductQuery{Search: c.state.Search, Limit: c.limit}
	c.state.Loading = true
	c.mu.Unlock()
	defer c.release()

	page, err := c.repo.ListProducts(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		c.log.Debug().Uint64("seq", seq).Str("search", q.Search).Msg("listado obsoleto descartado")
		return err
	}
	c.state.Loading = false
	if err != nil {
		c.log.Error().Err(err).Str("search", q.Search).Msg(MsgLoadFailed)
		return err
	}
	c.state.Products = page.Data
	c.state.Total = page.Total
	return nil
}

// WaitIdle bloquea hasta que no haya búsqueda pendiente ni listado en vuelo.
func (c *ListController) WaitIdle(ctx context.Context) error {
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

// Mounted indica si ya se programó algún listado.
func (c *ListController) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

// Close desmonta el controlador: cancela la búsqueda pendiente y las peticiones en vuelo.
func (c *ListController) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.timer != nil && c.timer.Stop() {
		c.releaseLocked()
	}
	c.mu.Unlock()
	c.cancel()
}

// Context contexto de vida del controlador; termina con Close.
func (c *ListController) Context() context.Context {
	return c.ctx
}

func (c *ListController) acquireLocked() {
	if c.pending == 0 {
		c.idle = make(chan struct{})
	}
	c.pending++
}

func (c *ListController) releaseLocked() {
	c.pending--
	if c.pending == 0 {
		close(c.idle)
	}
}

func (c *ListController) release() {
	c.mu.Lock()
	c.releaseLocked()
	c.mu.Unlock()
}
