package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/paperquant/aitrader/store"
)

var exportCmd = &cobra.Command{
	Use:   "export <orders|positions>",
	Short: "Export the order journal or holdings as CSV",
	Long: `Write the order journal or the current holdings to a CSV file,
or to stdout when --out is omitted.

Examples:
  aitrader export orders --out orders.csv
  aitrader export positions`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"orders", "positions"},
	RunE:      runExport,
}

var exportOut string

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, st, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	w := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch args[0] {
	case "orders":
		orders, err := engine.Orders()
		if err != nil {
			return err
		}
		return store.WriteOrdersCSV(w, orders)
	case "positions":
		positions, err := engine.Positions()
		if err != nil {
			return err
		}
		return store.WritePositionsCSV(w, positions)
	default:
		return fmt.Errorf("export target must be 'orders' or 'positions'")
	}
}
