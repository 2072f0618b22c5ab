package inventory

import (
	"context"

	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback en cualquier otro caso. Los errores transitorios del
// almacenamiento se reintentan una vez y luego se reportan como domain.ErrStoreUnavailable.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}
