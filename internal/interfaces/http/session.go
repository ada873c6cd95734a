package http

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/stockly-web/internal/application/catalog"
	"github.com/jhoicas/stockly-web/internal/application/inventory"
	"github.com/jhoicas/stockly-web/internal/domain/repository"
	"github.com/jhoicas/stockly-web/pkg/logger"
)

// SessionCookie nombre de la cookie con el id de sesión del navegador.
const SessionCookie = "stockly_sid"

// LocalWorkspace key en c.Locals para el Workspace de la petición.
const LocalWorkspace = "workspace"

// Workspace controladores de página de un navegador.
type Workspace struct {
	Products  *catalog.ListController
	Movements *inventory.MovementsController

	mu       sync.Mutex
	lastSeen time.Time
}

// WorkspaceConfig parámetros comunes a todos los Workspace.
type WorkspaceConfig struct {
	Products  repository.ProductRepository
	Movements repository.MovementRepository
	Debounce  time.Duration
	ListLimit int
	Log       *logger.Logger
}

// NewWorkspace construye los controladores de un navegador.
func NewWorkspace(cfg WorkspaceConfig) *Workspace {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Workspace{
		Products: catalog.NewListController(cfg.Products,
			catalog.WithDebounce(cfg.Debounce),
			catalog.WithLimit(cfg.ListLimit),
			catalog.WithLogger(log.Named("products")),
		),
		Movements: inventory.NewMovementsController(cfg.Movements, cfg.Products, log.Named("movements")),
		lastSeen:  time.Now(),
	}
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince(now time.Time) time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return now.Sub(w.lastSeen)
}

// Close desmonta los controladores.
func (w *Workspace) Close() {
	w.Products.Close()
}

// SessionStore Workspaces por id de sesión, con expiración por inactividad.
type SessionStore struct {
	factory func() *Workspace
	idle    time.Duration
	log     *logger.Logger

	mu    sync.Mutex
	items map[string]*Workspace
}

// NewSessionStore construye el store. factory crea el Workspace de cada sesión nueva.
func NewSessionStore(factory func() *Workspace, idle time.Duration, log *logger.Logger) *SessionStore {
	if log == nil {
		log = logger.Nop()
	}
	return &SessionStore{
		factory: factory,
		idle:    idle,
		log:     log,
		items:   make(map[string]*Workspace),
	}
}

// Get devuelve el Workspace de id y renueva su actividad.
func (s *SessionStore) Get(id string) (*Workspace, bool) {
	s.mu.Lock()
	ws, ok := s.items[id]
	s.mu.Unlock()
	if ok {
		ws.touch(time.Now())
	}
	return ws, ok
}

// Create abre una sesión nueva.
func (s *SessionStore) Create() (string, *Workspace) {
	id := uuid.New().String()
	ws := s.factory()
	s.mu.Lock()
	s.items[id] = ws
	s.mu.Unlock()
	s.log.Debug().Str("session", id).Msg("sesión creada")
	return id, ws
}

// Len número de sesiones abiertas.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep cierra las sesiones inactivas desde hace más de idle. Devuelve cuántas cerró.
func (s *SessionStore) Sweep(now time.Time) int {
	var expired []*Workspace
	s.mu.Lock()
	for id, ws := range s.items {
		if ws.idleSince(now) > s.idle {
			expired = append(expired, ws)
			delete(s.items, id)
		}
	}
	s.mu.Unlock()

	for _, ws := range expired {
		ws.Close()
	}
	if len(expired) > 0 {
		s.log.Info().Int("closed", len(expired)).Msg("sesiones inactivas cerradas")
	}
	return len(expired)
}

// Run ejecuta Sweep periódicamente hasta que ctx termine.
func (s *SessionStore) Run(ctx context.Context) {
	interval := s.idle / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}

// Close cierra todas las sesiones.
func (s *SessionStore) Close() {
	s.mu.Lock()
	items := s.items
	s.items = make(map[string]*Workspace)
	s.mu.Unlock()
	for _, ws := range items {
		ws.Close()
	}
}

// SessionMiddleware asocia cada petición a su Workspace, creando la sesión y la cookie si
// no existe o expiró.
func SessionMiddleware(store *SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(SessionCookie)
		ws, ok := store.Get(id)
		if id == "" || !ok {
			id, ws = store.Create()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(LocalWorkspace, ws)
		return c.Next()
	}
}

// GetWorkspace devuelve el Workspace del contexto (después de SessionMiddleware).
func GetWorkspace(c *fiber.Ctx) *Workspace {
	ws, _ := c.Locals(LocalWorkspace).(*Workspace)
	return ws
}
