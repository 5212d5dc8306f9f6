package repository

import (
	"context"

	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
)

// RadiatorRepository define el puerto de persistencia para el catálogo de radiadores.
type RadiatorRepository interface {
	Create(ctx context.Context, radiator *entity.Radiator) error
	GetByID(ctx context.Context, id string) (*entity.Radiator, error)
	GetByCode(ctx context.Context, code string) (*entity.Radiator, error)
	Update(ctx context.Context, radiator *entity.Radiator) error
	// List filtra por brand/code/name cuando search no está vacío.
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Radiator, error)
	Delete(ctx context.Context, id string) error
}
