package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/radiator-inventory/internal/application/inventory"
	"github.com/jhoicas/radiator-inventory/internal/application/reporting"
	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/infrastructure/memory"
	"github.com/jhoicas/radiator-inventory/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/radiator-inventory/internal/interfaces/cli"
)

func memoryOpener(t *testing.T) (cli.Opener, *inventory.LedgerUseCase) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Radiators().Create(ctx, &entity.Radiator{ID: "koy", Brand: "Koyo", Code: "KOY-1", Name: "Corolla"}))
	require.NoError(t, store.Warehouses().Create(ctx, &entity.Warehouse{ID: "akl", Code: "WH_AKL", Name: "Auckland"}))
	require.NoError(t, store.Warehouses().Create(ctx, &entity.Warehouse{ID: "wlg", Code: "WH_WLG", Name: "Wellington"}))

	ledger := inventory.NewLedgerUseCase(store, store.Radiators(), store.Warehouses(), store.StockLevels(), store.History(), nil, nil)
	sheets := spreadsheet.NewStockSheet()
	services := &cli.Services{
		Ledger:  ledger,
		Reports: reporting.NewReportUseCase(store.Reports(), store.Warehouses(), sheets),
		Sheets:  sheets,
	}
	return func(context.Context) (*cli.Services, error) { return services, nil }, ledger
}

func run(t *testing.T, open cli.Opener, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd(open)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestStockStatus(t *testing.T) {
	open, ledger := memoryOpener(t)
	_, err := ledger.AdjustStock(context.Background(), inventory.AdjustInput{RadiatorID: "koy", WarehouseCode: "WH_AKL", Quantity: 3})
	require.NoError(t, err)
	_, err = ledger.AdjustStock(context.Background(), inventory.AdjustInput{RadiatorID: "koy", WarehouseCode: "WH_WLG", Quantity: 9})
	require.NoError(t, err)

	out, err := run(t, open, "stock", "status", "koy")
	require.NoError(t, err)
	assert.Contains(t, out, "WH_AKL")
	assert.Contains(t, out, "Low Stock")
	assert.Regexp(t, `TOTAL\s+12\s+Good`, out)

	_, err = run(t, open, "stock", "status", "no-existe")
	assert.Error(t, err)
}

func TestStockExportThenImport(t *testing.T) {
	open, ledger := memoryOpener(t)
	ctx := context.Background()
	_, err := ledger.AdjustStock(ctx, inventory.AdjustInput{RadiatorID: "koy", WarehouseCode: "WH_AKL", Quantity: 7})
	require.NoError(t, err)

	dir := t.TempDir()
	out, err := run(t, open, "stock", "export", "--warehouse", "WH_AKL", "--out", dir)
	require.NoError(t, err)
	path := strings.TrimSpace(out)
	_, err = os.Stat(path)
	require.NoError(t, err)

	// la planilla exportada se puede reimportar tal cual
	_, err = ledger.AdjustStock(ctx, inventory.AdjustInput{RadiatorID: "koy", WarehouseCode: "WH_AKL", Quantity: 1})
	require.NoError(t, err)
	out, err = run(t, open, "stock", "import", path, "--user", "ops")
	require.NoError(t, err)
	assert.Contains(t, out, "aplicados: 1, con error: 0")

	total, err := ledger.GetTotalStock(ctx, "koy")
	require.NoError(t, err)
	assert.Equal(t, 7, total)
}

func TestStockImport_MissingFile(t *testing.T) {
	open, _ := memoryOpener(t)
	_, err := run(t, open, "stock", "import", filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}

func TestMigrate_SinMigrador(t *testing.T) {
	open, _ := memoryOpener(t)
	_, err := run(t, open, "migrate", "up")
	assert.ErrorContains(t, err, "migraciones no disponibles")
}
