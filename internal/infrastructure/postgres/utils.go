package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/radiator-inventory/internal/domain"
)

// Querier subconjunto común de *pgxpool.Pool y pgx.Tx; los repos funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation 23503: la fila sigue referenciada (RESTRICT) o la referencia no existe.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// isCheckViolation 23514 (ej: quantity >= 0).
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}

// isInvalidTextRepresentation 22P02: p. ej. un id que no es UUID.
func isInvalidTextRepresentation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// mapWriteError traduce violaciones de constraints a ConflictError y un id mal formado a
// NotFoundError; el resto se envuelve con op.
func mapWriteError(resource, op string, err error) error {
	switch {
	case isInvalidTextRepresentation(err):
		return domain.NewNotFoundError(resource, "")
	case isUniqueViolation(err):
		return domain.NewConflictError(resource, "ya existe un registro con la misma clave")
	case isForeignKeyViolation(err):
		return domain.NewConflictError(resource, "referenciado por otros registros")
	case isCheckViolation(err):
		return domain.NewConflictError(resource, "viola una restricción de integridad")
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isNotFound sin filas, o un id que Postgres no puede convertir a UUID (no puede existir).
func isNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err)
}

// nullable convierte "" en NULL para columnas opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
