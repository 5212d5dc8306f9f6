package reporting

import "github.com/jhoicas/radiator-inventory/internal/application/dto"

// StockSheetWriter serializa un listado de stock como planilla (xlsx).
type StockSheetWriter interface {
	WriteStock(rows []dto.StockRowDTO) ([]byte, error)
}
