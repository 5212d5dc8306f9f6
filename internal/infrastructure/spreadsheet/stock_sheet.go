// Package spreadsheet lee y escribe planillas xlsx de stock con excelize.
// La exportación incluye las columnas radiator_id, warehouse_code y quantity, por lo que
// una planilla exportada y editada se puede volver a importar como ajuste masivo.
package spreadsheet

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/radiator-inventory/internal/application/dto"
	"github.com/jhoicas/radiator-inventory/internal/application/reporting"
	"github.com/jhoicas/radiator-inventory/internal/domain"
)

const stockSheet = "Stock"

var _ reporting.StockSheetWriter = (*StockSheet)(nil)

var exportHeader = []interface{}{
	"radiator_id", "radiator_code", "brand", "name",
	"warehouse_code", "warehouse_name", "quantity", "status", "updated_at",
}

// StockSheet adaptador xlsx para importación y exportación de stock.
type StockSheet struct{}

// NewStockSheet construye el adaptador.
func NewStockSheet() *StockSheet { return &StockSheet{} }

// WriteStock genera un xlsx con una fila por radiador+bodega.
func (s *StockSheet) WriteStock(rows []dto.StockRowDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), stockSheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if err := f.SetSheetRow(stockSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx: celda: %w", err)
		}
		values := []interface{}{
			r.RadiatorID, r.RadiatorCode, r.RadiatorBrand, r.RadiatorName,
			r.WarehouseCode, r.WarehouseName, r.Quantity, r.Status,
			r.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(stockSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(stockSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("xlsx: panes: %w", err)
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseBulkItems lee la hoja activa y devuelve un ítem de ajuste por fila con datos.
// La primera fila es la cabecera; se buscan las columnas radiator_id, warehouse_code y
// quantity por nombre (sin distinguir mayúsculas). Filas vacías se ignoran.
func (s *StockSheet) ParseBulkItems(r io.Reader) ([]dto.BulkStockItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.NewValidationError("file", "no es un archivo xlsx válido")
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer filas: %w", err)
	}
	if len(rows) < 2 {
		return nil, domain.NewValidationError("file", "la planilla no tiene filas de datos")
	}

	idx := map[string]int{}
	for i, h := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{"radiator_id", "warehouse_code", "quantity"} {
		if _, ok := idx[col]; !ok {
			return nil, domain.NewValidationError("file", fmt.Sprintf("falta la columna '%s'", col))
		}
	}

	get := func(row []string, col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	items := make([]dto.BulkStockItem, 0, len(rows)-1)
	for n, row := range rows[1:] {
		radiatorID, code, qty := get(row, "radiator_id"), get(row, "warehouse_code"), get(row, "quantity")
		if radiatorID == "" && code == "" && qty == "" {
			continue
		}
		q, err := strconv.Atoi(qty)
		if err != nil {
			return nil, domain.NewValidationError(
				fmt.Sprintf("row[%d].quantity", n+2), fmt.Sprintf("cantidad inválida '%s'", qty))
		}
		items = append(items, dto.BulkStockItem{
			RadiatorID:    radiatorID,
			WarehouseCode: strings.ToUpper(code),
			Quantity:      q,
		})
	}
	return items, nil
}
