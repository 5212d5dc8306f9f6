package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/radiator-inventory/internal/domain"
	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/domain/repository"
)

var (
	_ repository.StockLevelRepository   = (*StockLevelRepo)(nil)
	_ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)
	_ repository.SaleRepository         = (*SaleRepo)(nil)
)

// StockLevelRepo cantidades por par radiador+bodega.
type StockLevelRepo struct{ a access }

// GetForUpdate crea la fila en cero si no existe. El bloqueo lo da la transacción serializada.
func (r *StockLevelRepo) GetForUpdate(_ context.Context, radiatorID, warehouseID string) (*entity.StockLevel, error) {
	var out *entity.StockLevel
	err := r.a.write(func(st *state) error {
		k := pairKey{radiatorID, warehouseID}
		l, ok := st.levels[k]
		if !ok {
			now := time.Now().UTC()
			l = entity.StockLevel{
				ID:          uuid.New().String(),
				RadiatorID:  radiatorID,
				WarehouseID: warehouseID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			st.levels[k] = l
		}
		out = &l
		return nil
	})
	return out, err
}

func (r *StockLevelRepo) Get(_ context.Context, radiatorID, warehouseID string) (*entity.StockLevel, error) {
	var out *entity.StockLevel
	r.a.read(func(st *state) {
		if l, ok := st.levels[pairKey{radiatorID, warehouseID}]; ok {
			out = &l
		}
	})
	return out, nil
}

func (r *StockLevelRepo) Update(_ context.Context, level *entity.StockLevel) error {
	return r.a.write(func(st *state) error {
		if level.Quantity < 0 {
			return domain.NewConflictError("stock_levels", "violates check constraint quantity >= 0")
		}
		k := pairKey{level.RadiatorID, level.WarehouseID}
		if _, ok := st.levels[k]; !ok {
			return domain.NewNotFoundError("stock_level", level.ID)
		}
		st.levels[k] = *level
		return nil
	})
}

func (r *StockLevelRepo) ListByRadiator(_ context.Context, radiatorID string) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	r.a.read(func(st *state) {
		for _, l := range st.levels {
			if l.RadiatorID == radiatorID {
				l := l
				out = append(out, &l)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].WarehouseID < out[j].WarehouseID })
	return out, nil
}

func (r *StockLevelRepo) SumByRadiator(_ context.Context, radiatorID string) (int, error) {
	total := 0
	r.a.read(func(st *state) {
		for _, l := range st.levels {
			if l.RadiatorID == radiatorID {
				total += l.Quantity
			}
		}
	})
	return total, nil
}

// StockHistoryRepo historial append-only.
type StockHistoryRepo struct{ a access }

func (r *StockHistoryRepo) Create(_ context.Context, history *entity.StockHistory) error {
	return r.a.write(func(st *state) error {
		st.history = append(st.history, *history)
		return nil
	})
}

func (r *StockHistoryRepo) ListByRadiator(_ context.Context, radiatorID, warehouseID string, limit, offset int) ([]*entity.StockHistory, error) {
	var out []*entity.StockHistory
	r.a.read(func(st *state) {
		for _, h := range sortedHistory(st) {
			if h.RadiatorID != radiatorID || (warehouseID != "" && h.WarehouseID != warehouseID) {
				continue
			}
			h := h
			out = append(out, &h)
		}
	})
	return page(out, limit, offset), nil
}

func (r *StockHistoryRepo) ListBySale(_ context.Context, saleID string) ([]*entity.StockHistory, error) {
	var out []*entity.StockHistory
	r.a.read(func(st *state) {
		for _, h := range st.history {
			if h.SaleID != nil && *h.SaleID == saleID {
				h := h
				out = append(out, &h)
			}
		}
	})
	return out, nil
}

// SaleRepo ventas y líneas.
type SaleRepo struct{ a access }

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.a.write(func(st *state) error {
		for _, s := range st.sales {
			if s.SaleNumber == sale.SaleNumber {
				return domain.NewConflictError("sale", "número de venta duplicado "+sale.SaleNumber)
			}
		}
		cp := *sale
		cp.Items = nil
		st.sales[sale.ID] = cp
		return nil
	})
}

func (r *SaleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.sales[item.SaleID]; !ok {
			return domain.NewNotFoundError("sale", item.SaleID)
		}
		st.items[item.SaleID] = append(st.items[item.SaleID], *item)
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	r.a.read(func(st *state) {
		s, ok := st.sales[id]
		if !ok {
			return
		}
		for _, it := range st.items[id] {
			it := it
			s.Items = append(s.Items, &it)
		}
		out = &s
	})
	return out, nil
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	return r.a.write(func(st *state) error {
		s, ok := st.sales[id]
		if !ok {
			return domain.NewNotFoundError("sale", id)
		}
		s.Status = status
		s.UpdatedAt = updatedAt
		st.sales[id] = s
		return nil
	})
}

func (r *SaleRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Sale, int, error) {
	var out []*entity.Sale
	r.a.read(func(st *state) {
		for _, s := range st.sales {
			if status != "" && s.Status != status {
				continue
			}
			s := s
			out = append(out, &s)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	return page(out, limit, offset), len(out), nil
}

func (r *SaleRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.sales[id]; !ok {
			return domain.NewNotFoundError("sale", id)
		}
		delete(st.sales, id)
		delete(st.items, id)
		for i := range st.history {
			if st.history[i].SaleID != nil && *st.history[i].SaleID == id {
				st.history[i].SaleID = nil
			}
		}
		return nil
	})
}
