package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/stockly-web/internal/interfaces/http"
)

func TestRequestContext_TerminaAlResponder(t *testing.T) {
	app, err := apphttp.NewApp(apphttp.ServerConfig{AppName: "stockly-web-test"})
	require.NoError(t, err)

	var captured context.Context
	var errDuring error
	app.Get("/ctx", func(c *fiber.Ctx) error {
		captured = c.UserContext()
		errDuring = captured.Err()
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ctx", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	require.NotNil(t, captured)
	assert.NoError(t, errDuring, "activo mientras el handler corre")
	assert.ErrorIs(t, captured.Err(), context.Canceled, "cancelado al terminar la petición")
}

func TestErrorHandler_MensajeDelHandler(t *testing.T) {
	app, err := apphttp.NewApp(apphttp.ServerConfig{AppName: "stockly-web-test"})
	require.NoError(t, err)
	app.Get("/gone", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Produto não encontrado")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "detalle interno")
	})

	b := &browser{t: t, app: app}
	resp, body := b.get("/gone")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Produto não encontrado", body)

	resp, body = b.get("/boom")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal Server Error", body)
}
