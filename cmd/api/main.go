package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/assetcache"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/export"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/recenterrors"
	httpRouter "github.com/jhoicas/inventario-bodega/internal/interfaces/http"
	"github.com/jhoicas/inventario-bodega/pkg/config"
	"github.com/jhoicas/inventario-bodega/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.URL).
		Msg("iniciando gateway")

	ctx := context.Background()

	backend, err := apiclient.New(apiclient.Config{
		BaseURL:           cfg.Backend.URL,
		BasePath:          cfg.Backend.BasePath,
		Timeout:           cfg.Backend.Timeout,
		CSRFCookieName:    cfg.Backend.CSRFCookieName,
		CSRFHeaderName:    cfg.Backend.CSRFHeaderName,
		CSRFBootstrapPath: cfg.Backend.CSRFBootstrapPath,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cliente del backend")
	}

	recent, closeRecent, err := recenterrors.Open(ctx, recenterrors.Options{
		Driver:      cfg.RecentErrors.Driver,
		Dir:         cfg.RecentErrors.Dir,
		RedisAddr:   cfg.RecentErrors.RedisAddr,
		DatabaseURL: cfg.RecentErrors.DatabaseURL,
		TTL:         cfg.RecentErrors.TTL,
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.RecentErrors.Driver).Msg("almacenamiento de errores recientes")
	}
	defer closeRecent()

	origin, err := assetcache.NewHTTPOrigin(cfg.Static.OriginURL, cfg.Backend.Timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("origen de estáticos")
	}
	assets := assetcache.NewPolicy(assetcache.Config{
		Version: cfg.Static.CacheVersion,
		Prefix:  cfg.Static.Prefix,
	}, assetcache.NewStorage(), origin, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // exportaciones grandes
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario bodega gateway",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Backend:  backend,
		Services: httpRouter.NewServicesFactory(recent, export.CSVOptions{Delimiter: cfg.Export.Delimiter}, log),
		Session: httpRouter.SessionConfig{
			SessionCookie: cfg.Backend.SessionCookieName,
			CSRFCookie:    cfg.Backend.CSRFCookieName,
			CSRFHeader:    cfg.Backend.CSRFHeaderName,
			Required:      cfg.App.Env == "production",
		},
		Assets: assets,
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
	assets.Wait()

	log.Info().Msg("aplicación detenida")
}
