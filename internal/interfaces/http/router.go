package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/brewery-tracker-api/internal/application/brewing"
	"github.com/jhoicas/brewery-tracker-api/internal/application/inventory"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	Catalog     *inventory.CatalogUseCase
	Ingredients *inventory.IngredientUseCase
	Ledger      *inventory.LedgerUseCase
	Recipes     *brewing.RecipeUseCase
	Batches     *brewing.BatchUseCase
	Products    *brewing.ProductUseCase
	Health      repository.HealthChecker
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	health := NewHealthHandler(deps.AppName, deps.Health)
	app.Get("/health", health.Live)
	app.Get("/health/ready", health.Ready)

	api := app.Group("/api")

	// Catálogos de referencia
	catalogHandler := NewCatalogHandler(deps.Catalog)
	api.Get("/unit-types", catalogHandler.ListUnitTypes)
	api.Put("/unit-types/:id", catalogHandler.PutUnitType)
	api.Get("/styles", catalogHandler.ListStyles)
	api.Put("/styles/:id", catalogHandler.PutStyle)

	// Ingredientes y libro de inventario
	ingredientHandler := NewIngredientHandler(deps.Ingredients, deps.Ledger)
	ingredients := api.Group("/ingredients")
	ingredients.Get("/", ingredientHandler.List)
	ingredients.Post("/", ingredientHandler.Create)
	ingredients.Get("/:id", ingredientHandler.GetByID)
	ingredients.Delete("/:id", ingredientHandler.Delete)
	ingredients.Get("/:id/on-hand", ingredientHandler.OnHand)
	ingredients.Get("/:id/ledger", ingredientHandler.LedgerHistory)
	ingredients.Post("/:id/additions", ingredientHandler.RecordAddition)
	ingredients.Post("/:id/consumptions", ingredientHandler.RecordConsumption)
	api.Get("/inventory/reorder-list", ingredientHandler.ReorderList)

	// Recetas
	recipeHandler := NewRecipeHandler(deps.Recipes, deps.Batches)
	recipes := api.Group("/recipes")
	recipes.Get("/", recipeHandler.List)
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/:id", recipeHandler.GetByID)
	recipes.Put("/:id", recipeHandler.Update)
	recipes.Delete("/:id", recipeHandler.Delete)
	recipes.Get("/:id/last-brewed", recipeHandler.LastBrewed)
	recipes.Get("/:id/schedule", recipeHandler.UpcomingSchedule)
	recipes.Get("/:id/batches", recipeHandler.Batches)

	// Batches (rutas estáticas antes de /:id)
	batchHandler := NewBatchHandler(deps.Batches, deps.Products)
	batches := api.Group("/batches")
	batches.Get("/", batchHandler.List)
	batches.Post("/", batchHandler.Create)
	batches.Get("/scheduled", batchHandler.ListScheduled)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Put("/:id", batchHandler.Update)
	batches.Delete("/:id", batchHandler.Delete)
	batches.Post("/:id/schedule", batchHandler.Schedule)
	batches.Post("/:id/start", batchHandler.Start)
	batches.Post("/:id/finish", batchHandler.Finish)
	batches.Put("/:id/dates", batchHandler.CorrectDates)
	batches.Get("/:id/products", batchHandler.ListProducts)
	batches.Post("/:id/products", batchHandler.Rack)

	// Producto envasado
	api.Post("/products/:id/depletions", batchHandler.Deplete)
}
