package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpRouter "github.com/jhoicas/stockly-web/internal/interfaces/http"
	infrapdf "github.com/jhoicas/stockly-web/internal/infrastructure/pdf"
	"github.com/jhoicas/stockly-web/internal/infrastructure/stocklyapi"
	"github.com/jhoicas/stockly-web/pkg/config"
	"github.com/jhoicas/stockly-web/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("api_url", cfg.API.BaseURL).
		Msg("iniciando aplicación")

	client, err := stocklyapi.New(cfg.API.BaseURL, stocklyapi.WithLogger(log.Named("stocklyapi")))
	if err != nil {
		log.Fatal().Err(err).Msg("cliente del servicio de inventario")
	}

	sessions := httpRouter.NewSessionStore(func() *httpRouter.Workspace {
		return httpRouter.NewWorkspace(httpRouter.WorkspaceConfig{
			Products:  client,
			Movements: client,
			Debounce:  cfg.UI.SearchDebounce(),
			ListLimit: cfg.UI.ListLimit,
			Log:       log,
		})
	}, cfg.Session.IdleTimeout(), log.Named("sessions"))
	defer sessions.Close()

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go sessions.Run(janitorCtx)

	app, err := httpRouter.NewApp(httpRouter.ServerConfig{AppName: cfg.App.Name, Log: log.Named("http")})
	if err != nil {
		log.Fatal().Err(err).Msg("crear aplicación HTTP")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		Products:  client,
		Dashboard: client,
		Sessions:  sessions,
		Report:    infrapdf.NewStockReportGenerator(cfg.App.Name),
		Log:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
