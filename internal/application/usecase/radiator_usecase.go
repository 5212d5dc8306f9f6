package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/radiator-inventory/internal/application/dto"
	"github.com/jhoicas/radiator-inventory/internal/domain"
	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/domain/repository"
	"github.com/jhoicas/radiator-inventory/internal/domain/stock"
)

// RadiatorUseCase catálogo de radiadores. El stock se muestra sumado; solo cambia vía el libro.
type RadiatorUseCase struct {
	repo      repository.RadiatorRepository
	stockRepo repository.StockLevelRepository
}

// NewRadiatorUseCase construye el caso de uso.
func NewRadiatorUseCase(repo repository.RadiatorRepository, stockRepo repository.StockLevelRepository) *RadiatorUseCase {
	return &RadiatorUseCase{repo: repo, stockRepo: stockRepo}
}

// Create crea un radiador con código único.
func (uc *RadiatorUseCase) Create(ctx context.Context, in dto.CreateRadiatorRequest) (*dto.RadiatorResponse, error) {
	code := strings.TrimSpace(in.Code)
	switch {
	case code == "":
		return nil, domain.NewValidationError("code", "es obligatorio")
	case strings.TrimSpace(in.Name) == "":
		return nil, domain.NewValidationError("name", "es obligatorio")
	case strings.TrimSpace(in.Brand) == "":
		return nil, domain.NewValidationError("brand", "es obligatorio")
	case in.RetailPrice.IsNegative():
		return nil, domain.NewValidationError("retailPrice", "no puede ser negativo")
	case in.TradePrice.IsNegative():
		return nil, domain.NewValidationError("tradePrice", "no puede ser negativo")
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflictError("radiator", "el código "+code+" ya existe")
	}
	now := time.Now().UTC()
	r := &entity.Radiator{
		ID:          uuid.New().String(),
		Brand:       strings.TrimSpace(in.Brand),
		Code:        code,
		Name:        strings.TrimSpace(in.Name),
		Year:        in.Year,
		RetailPrice: in.RetailPrice,
		TradePrice:  in.TradePrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return uc.toResponse(r, 0), nil
}

// GetByID radiador con su stock total.
func (uc *RadiatorUseCase) GetByID(ctx context.Context, id string) (*dto.RadiatorResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.NewNotFoundError("radiator", id)
	}
	total, err := uc.stockRepo.SumByRadiator(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(r, total), nil
}

// Update actualiza datos y precios. ClearOverride quita el precio sobreescrito.
func (uc *RadiatorUseCase) Update(ctx context.Context, id string, in dto.UpdateRadiatorRequest) (*dto.RadiatorResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.NewNotFoundError("radiator", id)
	}
	if in.Brand != nil {
		r.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Name != nil {
		r.Name = strings.TrimSpace(*in.Name)
	}
	if in.Year != nil {
		r.Year = *in.Year
	}
	if in.RetailPrice != nil {
		if in.RetailPrice.IsNegative() {
			return nil, domain.NewValidationError("retailPrice", "no puede ser negativo")
		}
		r.RetailPrice = *in.RetailPrice
	}
	if in.TradePrice != nil {
		if in.TradePrice.IsNegative() {
			return nil, domain.NewValidationError("tradePrice", "no puede ser negativo")
		}
		r.TradePrice = *in.TradePrice
	}
	switch {
	case in.ClearOverride:
		r.IsPriceOverridden = false
		r.OverriddenPrice = nil
	case in.OverriddenPrice != nil:
		if in.OverriddenPrice.IsNegative() {
			return nil, domain.NewValidationError("overriddenPrice", "no puede ser negativo")
		}
		p := *in.OverriddenPrice
		r.IsPriceOverridden = true
		r.OverriddenPrice = &p
	}
	r.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	total, err := uc.stockRepo.SumByRadiator(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(r, total), nil
}

// List catálogo paginado con búsqueda por marca, código o nombre.
func (uc *RadiatorUseCase) List(ctx context.Context, search string, limit, offset int) (*dto.RadiatorListResponse, error) {
	list, err := uc.repo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RadiatorResponse, 0, len(list))
	for _, r := range list {
		total, err := uc.stockRepo.SumByRadiator(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *uc.toResponse(r, total))
	}
	return &dto.RadiatorListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un radiador; falla con ConflictError si tiene stock, historial o ventas.
func (uc *RadiatorUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *RadiatorUseCase) toResponse(r *entity.Radiator, total int) *dto.RadiatorResponse {
	return &dto.RadiatorResponse{
		ID:                r.ID,
		Brand:             r.Brand,
		Code:              r.Code,
		Name:              r.Name,
		Year:              r.Year,
		RetailPrice:       r.RetailPrice,
		TradePrice:        r.TradePrice,
		IsPriceOverridden: r.IsPriceOverridden,
		OverriddenPrice:   r.OverriddenPrice,
		TotalStock:        total,
		StockStatus:       stock.Status(total),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
