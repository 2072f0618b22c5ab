package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
)

// Códigos SQLSTATE relevantes.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeTooManyConnections   = "53300"
	codeAdminShutdown        = "57P01"
	codeCannotConnectNow     = "57P03"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isSerializationConflict conflicto entre transacciones concurrentes que se resuelve reintentando.
func isSerializationConflict(err error) bool {
	code := pgCode(err)
	return code == codeSerializationFailure || code == codeDeadlockDetected
}

// isTransient errores de conexión o timeout del almacenamiento.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	code := pgCode(err)
	switch {
	case strings.HasPrefix(code, "08"), code == codeTooManyConnections, code == codeAdminShutdown, code == codeCannotConnectNow:
		return true
	case code != "":
		return false
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}

// isRetryable el TxRunner reintenta una vez estos errores.
func isRetryable(err error) bool {
	return isTransient(err) || isSerializationConflict(err)
}

// surface traduce el error final de una transacción al vocabulario del dominio.
func surface(err error) error {
	switch {
	case err == nil:
		return nil
	case isSerializationConflict(err):
		return fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
	case isTransient(err):
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return err
}

// translateWrite mapea violaciones de integridad de escrituras a errores de dominio.
func translateWrite(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrReferentialConflict)
	case pgCode(err) == codeCheckViolation:
		return fmt.Errorf("%s: %w: %v", op, domain.ErrLedgerInconsistent, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
