// Command seed carga los datos de demostración de la cervecería en un almacenamiento vacío.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/jhoicas/brewery-tracker-api/internal/application/seed"
	"github.com/jhoicas/brewery-tracker-api/internal/bootstrap"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/pkg/config"
	"github.com/jhoicas/brewery-tracker-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name + "-seed"})

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

	res, err := seed.Load(ctx, seed.Services{
		Catalog:     svc.Catalog,
		Ingredients: svc.Ingredients,
		Ledger:      svc.Ledger,
		Recipes:     svc.Recipes,
		Batches:     svc.Batches,
	}, log)
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		log.Warn().Msg("el almacenamiento ya tiene recetas, no se cargó nada")
		return
	case err != nil:
		log.Error().Err(err).Msg("carga de datos de demostración")
		store.Close()
		os.Exit(1)
	}

	for name, id := range res.Recipes {
		log.Info().Str("recipe", name).Str("id", id).Msg("receta")
	}
}
