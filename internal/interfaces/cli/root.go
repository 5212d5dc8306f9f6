package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/radiator-inventory/internal/application/dto"
	"github.com/jhoicas/radiator-inventory/internal/application/inventory"
	"github.com/jhoicas/radiator-inventory/internal/application/reporting"
)

// Migrator aplica y consulta las migraciones del esquema.
type Migrator interface {
	Up(ctx context.Context) error
	Status(ctx context.Context) error
	Version(ctx context.Context) (int64, error)
}

// SheetParser lee ajustes masivos desde una planilla.
type SheetParser interface {
	ParseBulkItems(r io.Reader) ([]dto.BulkStockItem, error)
}

// Services lo que los comandos necesitan; Close libera conexiones.
type Services struct {
	Ledger   *inventory.LedgerUseCase
	Reports  *reporting.ReportUseCase
	Sheets   SheetParser
	Migrator Migrator // nil = sin base SQL
	Close    func()
}

// Opener construye los servicios al ejecutar un comando (no al parsear flags).
type Opener func(ctx context.Context) (*Services, error)

// NewRootCmd arma ledgerctl con sus subcomandos.
func NewRootCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Operaciones de mantenimiento del inventario de radiadores",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newMigrateCmd(open))
	cmd.AddCommand(newStockCmd(open))
	return cmd
}

// withServices abre los servicios, ejecuta fn y los cierra.
func withServices(cmd *cobra.Command, open Opener, fn func(ctx context.Context, s *Services) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := open(ctx)
	if err != nil {
		return err
	}
	if s.Close != nil {
		defer s.Close()
	}
	return fn(ctx, s)
}
