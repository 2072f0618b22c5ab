package repository

import "context"

// Repositories conjunto de repositorios atados a una misma transacción.
type Repositories struct {
	Ingredients  IngredientRepository
	Ledger       LedgerRepository
	Recipes      RecipeRepository
	Batches      BatchRepository
	Products     ProductRepository
	Transactions InventoryTransactionRepository
	Catalog      CatalogRepository
}

// HealthChecker superficie de salud del almacenamiento (usada por el probe de readiness).
type HealthChecker interface {
	CanConnect(ctx context.Context) bool
	CanQuery(ctx context.Context) bool
}
