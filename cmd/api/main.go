package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/brewery-tracker-api/internal/application/seed"
	"github.com/jhoicas/brewery-tracker-api/internal/bootstrap"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	httpRouter "github.com/jhoicas/brewery-tracker-api/internal/interfaces/http"
	"github.com/jhoicas/brewery-tracker-api/pkg/config"
	"github.com/jhoicas/brewery-tracker-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("consumption_policy", cfg.Brew.ConsumptionPolicy).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.Close()

	svc, err := bootstrap.NewServices(store.TxRunner, cfg.Brew, log)
	if err != nil {
		log.Fatal().Err(err).Msg("construir casos de uso")
	}

	if cfg.App.SeedDemo {
		_, err := seed.Load(ctx, seed.Services{
			Catalog:     svc.Catalog,
			Ingredients: svc.Ingredients,
			Ledger:      svc.Ledger,
			Recipes:     svc.Recipes,
			Batches:     svc.Batches,
		}, log)
		if err != nil && !errors.Is(err, domain.ErrDuplicate) {
			log.Fatal().Err(err).Msg("cargar datos de demostración")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		Catalog:     svc.Catalog,
		Ingredients: svc.Ingredients,
		Ledger:      svc.Ledger,
		Recipes:     svc.Recipes,
		Batches:     svc.Batches,
		Products:    svc.Products,
		Health:      store.Health,
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
