package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/radiator-inventory/internal/domain"
	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/domain/repository"
)

var _ repository.RadiatorRepository = (*RadiatorRepo)(nil)

const radiatorColumns = `id, brand, code, name, year, retail_price, trade_price,
	is_price_overridden, overridden_price, created_at, updated_at`

// RadiatorRepo catálogo de radiadores sobre PostgreSQL (pool o tx).
type RadiatorRepo struct {
	q Querier
}

// NewRadiatorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRadiatorRepository(q Querier) *RadiatorRepo {
	return &RadiatorRepo{q: q}
}

// Create persiste un radiador. Código duplicado -> ConflictError.
func (r *RadiatorRepo) Create(ctx context.Context, rad *entity.Radiator) error {
	query := `
		INSERT INTO radiators (` + radiatorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		rad.ID, rad.Brand, rad.Code, rad.Name, rad.Year, rad.RetailPrice, rad.TradePrice,
		rad.IsPriceOverridden, rad.OverriddenPrice, rad.CreatedAt, rad.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("radiator", "insert radiator", err)
	}
	return nil
}

// GetByID obtiene un radiador por ID.
func (r *RadiatorRepo) GetByID(ctx context.Context, id string) (*entity.Radiator, error) {
	return r.getOne(ctx, `SELECT `+radiatorColumns+` FROM radiators WHERE id = $1`, id)
}

// GetByCode obtiene un radiador por código de catálogo.
func (r *RadiatorRepo) GetByCode(ctx context.Context, code string) (*entity.Radiator, error) {
	return r.getOne(ctx, `SELECT `+radiatorColumns+` FROM radiators WHERE code = $1`, code)
}

func (r *RadiatorRepo) getOne(ctx context.Context, query, arg string) (*entity.Radiator, error) {
	rad, err := scanRadiator(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get radiator: %w", err)
	}
	return rad, nil
}

// Update actualiza datos y precios del radiador.
func (r *RadiatorRepo) Update(ctx context.Context, rad *entity.Radiator) error {
	query := `
		UPDATE radiators SET brand = $2, code = $3, name = $4, year = $5, retail_price = $6,
			trade_price = $7, is_price_overridden = $8, overridden_price = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		rad.ID, rad.Brand, rad.Code, rad.Name, rad.Year, rad.RetailPrice, rad.TradePrice,
		rad.IsPriceOverridden, rad.OverriddenPrice, rad.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("radiator", "update radiator", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("radiator", rad.ID)
	}
	return nil
}

// List filtra por marca, código o nombre (ILIKE) cuando search no está vacío.
func (r *RadiatorRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Radiator, error) {
	query := `SELECT ` + radiatorColumns + ` FROM radiators`
	args := []any{}
	pos := 1
	if search != "" {
		query += fmt.Sprintf(" WHERE brand ILIKE $%d OR code ILIKE $%d OR name ILIKE $%d", pos, pos, pos)
		args = append(args, "%"+search+"%")
		pos++
	}
	query += fmt.Sprintf(" ORDER BY brand, code LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list radiators: %w", err)
	}
	defer rows.Close()
	var list []*entity.Radiator
	for rows.Next() {
		rad, err := scanRadiator(rows)
		if err != nil {
			return nil, fmt.Errorf("scan radiator: %w", err)
		}
		list = append(list, rad)
	}
	return list, rows.Err()
}

// Delete elimina un radiador sin stock ni historial; si no, ConflictError.
func (r *RadiatorRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM radiators WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("radiator", "delete radiator", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("radiator", id)
	}
	return nil
}

func scanRadiator(row pgx.Row) (*entity.Radiator, error) {
	var rad entity.Radiator
	if err := row.Scan(&rad.ID, &rad.Brand, &rad.Code, &rad.Name, &rad.Year, &rad.RetailPrice,
		&rad.TradePrice, &rad.IsPriceOverridden, &rad.OverriddenPrice, &rad.CreatedAt, &rad.UpdatedAt); err != nil {
		return nil, err
	}
	return &rad, nil
}
