package spreadsheet

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/radiator-inventory/internal/application/dto"
	"github.com/jhoicas/radiator-inventory/internal/domain"
)

func TestStockSheet_ExportThenImport(t *testing.T) {
	s := NewStockSheet()
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	data, err := s.WriteStock([]dto.StockRowDTO{
		{RadiatorID: "r1", RadiatorCode: "KOY-1", RadiatorBrand: "Koyo", RadiatorName: "Corolla",
			WarehouseCode: "WH_AKL", WarehouseName: "Auckland", Quantity: 0, Status: "Out of Stock", UpdatedAt: now},
		{RadiatorID: "r2", RadiatorCode: "DEN-1", RadiatorBrand: "Denso", RadiatorName: "Hilux",
			WarehouseCode: "WH_WLG", WarehouseName: "Wellington", Quantity: 12, Status: "In Stock", UpdatedAt: now},
	})
	require.NoError(t, err)

	items, err := s.ParseBulkItems(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []dto.BulkStockItem{
		{RadiatorID: "r1", WarehouseCode: "WH_AKL", Quantity: 0},
		{RadiatorID: "r2", WarehouseCode: "WH_WLG", Quantity: 12},
	}, items)
}

func buildSheet(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf := &bytes.Buffer{}
	require.NoError(t, f.Write(buf))
	return buf.Bytes()
}

func TestParseBulkItems_HeaderOrderAndBlankRows(t *testing.T) {
	data := buildSheet(t, [][]interface{}{
		{"Quantity", "Warehouse_Code", "Radiator_ID"},
		{7, "wh_akl", "r1"},
		{"", "", ""},
		{-1, "WH_WLG", "r2"},
	})

	items, err := NewStockSheet().ParseBulkItems(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, dto.BulkStockItem{RadiatorID: "r1", WarehouseCode: "WH_AKL", Quantity: 7}, items[0])
	assert.Equal(t, -1, items[1].Quantity)
}

func TestParseBulkItems_Errors(t *testing.T) {
	s := NewStockSheet()

	_, err := s.ParseBulkItems(bytes.NewReader([]byte("not a spreadsheet")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.ParseBulkItems(bytes.NewReader(buildSheet(t, [][]interface{}{
		{"radiator_id", "quantity"},
		{"r1", 3},
	})))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "warehouse_code")

	_, err = s.ParseBulkItems(bytes.NewReader(buildSheet(t, [][]interface{}{
		{"radiator_id", "warehouse_code", "quantity"},
		{"r1", "WH_AKL", "muchos"},
	})))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "row[2].quantity", verr.Field)

	_, err = s.ParseBulkItems(bytes.NewReader(buildSheet(t, [][]interface{}{
		{"radiator_id", "warehouse_code", "quantity"},
	})))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
