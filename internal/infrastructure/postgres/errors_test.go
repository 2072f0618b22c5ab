package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
)

func pgErr(code string) error {
	return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code, Message: "test"})
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación de errores de PostgreSQL
// ──────────────────────────────────────────────────────────────────────────────

func TestClasificacion(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		serialization bool
		transient     bool
	}{
		{"serialización", pgErr(codeSerializationFailure), true, false},
		{"deadlock", pgErr(codeDeadlockDetected), true, false},
		{"conexión perdida", pgErr("08006"), false, true},
		{"demasiadas conexiones", pgErr(codeTooManyConnections), false, true},
		{"apagado del servidor", pgErr(codeAdminShutdown), false, true},
		{"único", pgErr(codeUniqueViolation), false, false},
		{"timeout", context.DeadlineExceeded, false, true},
		{"cancelado", context.Canceled, false, false},
		{"genérico", errors.New("x"), false, false},
		{"nil", nil, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.serialization, isSerializationConflict(tt.err))
			assert.Equal(t, tt.transient, isTransient(tt.err))
			assert.Equal(t, tt.serialization || tt.transient, isRetryable(tt.err))
		})
	}
}

func TestSurface(t *testing.T) {
	assert.NoError(t, surface(nil))
	assert.ErrorIs(t, surface(pgErr(codeSerializationFailure)), domain.ErrConcurrencyConflict)
	assert.ErrorIs(t, surface(pgErr(codeCannotConnectNow)), domain.ErrStoreUnavailable)
	assert.ErrorIs(t, surface(context.DeadlineExceeded), domain.ErrStoreUnavailable)

	plain := errors.New("otro")
	assert.Same(t, plain, surface(plain))
}

func TestTranslateWrite(t *testing.T) {
	assert.NoError(t, translateWrite("op", nil))
	assert.ErrorIs(t, translateWrite("crear receta", pgErr(codeUniqueViolation)), domain.ErrDuplicate)
	assert.ErrorIs(t, translateWrite("borrar", pgErr(codeForeignKeyViolation)), domain.ErrReferentialConflict)
	assert.ErrorIs(t, translateWrite("lote", pgErr(codeCheckViolation)), domain.ErrLedgerInconsistent)

	err := translateWrite("crear receta", pgErr(codeUniqueViolation))
	assert.Contains(t, err.Error(), "crear receta")
}
