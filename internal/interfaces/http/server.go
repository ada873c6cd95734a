package http

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	nethttp "net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"

	"github.com/jhoicas/stockly-web/pkg/format"
	"github.com/jhoicas/stockly-web/pkg/logger"
)

//go:embed views static
var assets embed.FS

// ServerConfig opciones de la aplicación Fiber.
type ServerConfig struct {
	AppName string
	Log     *logger.Logger
}

// NewApp crea la aplicación Fiber con vistas embebidas, recover, request id y log de
// peticiones. Las rutas se registran aparte con Router.
func NewApp(cfg ServerConfig) (*fiber.App, error) {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}

	views, err := fs.Sub(assets, "views")
	if err != nil {
		return nil, fmt.Errorf("http: vistas: %w", err)
	}
	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, fmt.Errorf("http: estáticos: %w", err)
	}

	engine := html.NewFileSystem(nethttp.FS(views), ".html")
	engine.AddFuncMap(viewFuncs())

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		Views:        engine,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestContext())
	app.Use(RequestLogger(log))
	app.Use("/static", filesystem.New(filesystem.Config{Root: nethttp.FS(static)}))
	return app, nil
}

func viewFuncs() map[string]any {
	return map[string]any{
		"currency": format.Currency,
		"int":      format.Int,
		"date":     func(t time.Time) string { return format.Date(t.Local()) },
		"datetime": func(t time.Time) string { return format.DateTime(t.Local()) },
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
}

// RequestContext deja en c.UserContext un contexto que termina cuando el handler responde
// o cuando el servidor se apaga. fasthttp no avisa si el navegador se desconecta.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithCancel(c.UserContext())
		stop := context.AfterFunc(c.Context(), cancel)
		defer func() {
			stop()
			cancel()
		}()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// RequestLogger registra cada petición con método, ruta, estado, latencia y request id.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		rid, _ := c.Locals("requestid").(string)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", rid).
			Msg("http")
		return err
	}
}

func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := ""
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code, msg = fe.Code, fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		}
		// mensajes internos no llegan al navegador
		if msg == "" || code == fiber.StatusInternalServerError {
			msg = nethttp.StatusText(code)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(msg)
	}
}
