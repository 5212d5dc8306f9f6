package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de reporte sobre el estado publicado.
type ReportRepo struct{ a access }

func (r *ReportRepo) ListStock(_ context.Context, f repository.StockFilter) ([]repository.StockRow, error) {
	var rows []repository.StockRow
	r.a.read(func(st *state) {
		for _, l := range st.levels {
			if f.WarehouseID != "" && l.WarehouseID != f.WarehouseID {
				continue
			}
			if l.Quantity < f.MinQuantity || (f.MaxQuantity != nil && l.Quantity > *f.MaxQuantity) {
				continue
			}
			rad := st.radiators[l.RadiatorID]
			wh := st.warehouses[l.WarehouseID]
			rows = append(rows, repository.StockRow{
				RadiatorID:    l.RadiatorID,
				RadiatorCode:  rad.Code,
				RadiatorBrand: rad.Brand,
				RadiatorName:  rad.Name,
				WarehouseID:   l.WarehouseID,
				WarehouseCode: wh.Code,
				WarehouseName: wh.Name,
				Quantity:      l.Quantity,
				UpdatedAt:     l.UpdatedAt,
			})
		}
	})
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Quantity != rows[j].Quantity {
			return rows[i].Quantity < rows[j].Quantity
		}
		if rows[i].RadiatorCode != rows[j].RadiatorCode {
			return rows[i].RadiatorCode < rows[j].RadiatorCode
		}
		return rows[i].WarehouseCode < rows[j].WarehouseCode
	})
	return page(rows, f.Limit, f.Offset), nil
}

func (r *ReportRepo) WarehouseSummaries(_ context.Context, lowThreshold int) ([]repository.WarehouseSummary, error) {
	var out []repository.WarehouseSummary
	r.a.read(func(st *state) {
		byID := map[string]*repository.WarehouseSummary{}
		for _, wh := range st.warehouses {
			s := &repository.WarehouseSummary{WarehouseID: wh.ID, WarehouseCode: wh.Code, WarehouseName: wh.Name}
			byID[wh.ID] = s
		}
		for _, l := range st.levels {
			s, ok := byID[l.WarehouseID]
			if !ok {
				continue
			}
			s.RadiatorCount++
			s.TotalUnits += l.Quantity
			switch {
			case l.Quantity == 0:
				s.OutOfStockCount++
			case l.Quantity <= lowThreshold:
				s.LowStockCount++
			}
		}
		for _, s := range byID {
			out = append(out, *s)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].WarehouseCode < out[j].WarehouseCode })
	return out, nil
}

func (r *ReportRepo) StockTotals(_ context.Context, lowThreshold int) (repository.StockTotals, error) {
	var t repository.StockTotals
	r.a.read(func(st *state) {
		t.RadiatorCount = len(st.radiators)
		t.WarehouseCount = len(st.warehouses)
		for _, l := range st.levels {
			t.TotalUnits += l.Quantity
			switch {
			case l.Quantity == 0:
				t.OutOfStockCount++
			case l.Quantity <= lowThreshold:
				t.LowStockCount++
			}
		}
	})
	return t, nil
}

func (r *ReportRepo) SalesTotals(_ context.Context, from, to time.Time) (int, decimal.Decimal, error) {
	count := 0
	revenue := decimal.Zero
	r.a.read(func(st *state) {
		for _, s := range st.sales {
			if s.Status == entity.SaleStatusCancelled || s.Status == entity.SaleStatusRefunded {
				continue
			}
			if s.SaleDate.Before(from) || s.SaleDate.After(to) {
				continue
			}
			count++
			revenue = revenue.Add(s.TotalAmount)
		}
	})
	return count, revenue, nil
}

func (r *ReportRepo) MovementFeed(_ context.Context, f repository.MovementFilter, limit, offset int) ([]repository.MovementRow, int, error) {
	var rows []repository.MovementRow
	r.a.read(func(st *state) {
		for _, h := range sortedHistory(st) {
			if f.RadiatorID != "" && h.RadiatorID != f.RadiatorID {
				continue
			}
			if f.WarehouseID != "" && h.WarehouseID != f.WarehouseID {
				continue
			}
			if f.MovementType != "" && h.MovementType != f.MovementType {
				continue
			}
			if f.From != nil && h.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && h.CreatedAt.After(*f.To) {
				continue
			}
			rad := st.radiators[h.RadiatorID]
			wh := st.warehouses[h.WarehouseID]
			row := repository.MovementRow{
				ID:             h.ID,
				RadiatorID:     h.RadiatorID,
				RadiatorCode:   rad.Code,
				RadiatorName:   rad.Name,
				WarehouseID:    h.WarehouseID,
				WarehouseCode:  wh.Code,
				WarehouseName:  wh.Name,
				OldQuantity:    h.OldQuantity,
				NewQuantity:    h.NewQuantity,
				QuantityChange: h.QuantityChange,
				MovementType:   h.MovementType,
				ChangeType:     h.ChangeType,
				CreatedAt:      h.CreatedAt,
			}
			if h.SaleID != nil {
				row.SaleID = *h.SaleID
				if s, ok := st.sales[*h.SaleID]; ok {
					row.SaleNumber = s.SaleNumber
					if c, ok := st.customers[s.CustomerID]; ok {
						row.CustomerName = c.FullName()
					}
				}
			}
			if h.UpdatedBy != nil {
				if u, ok := st.users[*h.UpdatedBy]; ok {
					row.UpdatedByName = fullName(u.FirstName, u.LastName, u.Email)
				}
			}
			rows = append(rows, row)
		}
	})
	return page(rows, limit, offset), len(rows), nil
}

func fullName(first, last, fallback string) string {
	switch {
	case first == "" && last == "":
		return fallback
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
