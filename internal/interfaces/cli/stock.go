package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStockCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Importar, exportar y consultar stock",
	}
	cmd.AddCommand(newStockImportCmd(open))
	cmd.AddCommand(newStockExportCmd(open))
	cmd.AddCommand(newStockStatusCmd(open))
	return cmd
}

func newStockImportCmd(open Opener) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Fija cantidades absolutas desde una planilla (radiator_id, warehouse_code, quantity)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("abrir planilla: %w", err)
			}
			defer f.Close()

			return withServices(cmd, open, func(ctx context.Context, s *Services) error {
				items, err := s.Sheets.ParseBulkItems(f)
				if err != nil {
					return err
				}
				res := s.Ledger.BulkAdjustStock(ctx, items, user)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "aplicados: %d, con error: %d\n", res.SuccessCount, res.ErrorCount)
				for _, e := range res.Errors {
					fmt.Fprintf(out, "  entrada %d (%s @ %s): %s\n", e.Index+1, e.RadiatorID, e.WarehouseCode, e.Message)
				}
				if res.ErrorCount > 0 {
					return fmt.Errorf("%d entradas no se aplicaron", res.ErrorCount)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "ID de usuario a registrar en el historial")
	return cmd
}

func newStockExportCmd(open Opener) *cobra.Command {
	var (
		warehouse string
		outDir    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta el stock actual a xlsx",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, open, func(ctx context.Context, s *Services) error {
				data, filename, err := s.Reports.ExportStock(ctx, warehouse)
				if err != nil {
					return err
				}
				path := filepath.Join(outDir, filename)
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("escribir %s: %w", path, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&warehouse, "warehouse", "", "código de bodega (ej: WH_AKL); vacío = todas")
	cmd.Flags().StringVar(&outDir, "out", ".", "directorio de salida")
	return cmd
}

func newStockStatusCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "status <radiator_id>",
		Short: "Stock de un radiador por bodega",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, open, func(ctx context.Context, s *Services) error {
				st, err := s.Ledger.GetRadiatorStock(ctx, args[0])
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "BODEGA\tCANTIDAD\tESTADO")
				for _, wh := range st.Warehouses {
					fmt.Fprintf(w, "%s\t%d\t%s\n", wh.WarehouseCode, wh.Quantity, wh.Status)
				}
				fmt.Fprintf(w, "TOTAL\t%d\t%s\n", st.TotalStock, st.Status)
				return w.Flush()
			})
		},
	}
}
