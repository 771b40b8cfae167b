package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"topodaily/pkg/db"
	"topodaily/pkg/server/store"
	gormstore "topodaily/pkg/server/store/gorm"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export survey records as CSV",
	Long: `Export survey records as CSV to a file or stdout.

The same filters as the HTTP export endpoint apply.

Example:
  topoctl export
  topoctl export --out leves.csv --topographe alice
  topoctl export --start-date 2026-01-01 --end-date 2026-06-30`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runExport(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("out", "o", "", "output file (default: stdout)")
	exportCmd.Flags().String("start-date", "", "start date (YYYY-MM-DD)")
	exportCmd.Flags().String("end-date", "", "end date (YYYY-MM-DD)")
	exportCmd.Flags().String("village", "", "filter by village")
	exportCmd.Flags().String("region", "", "filter by region")
	exportCmd.Flags().String("commune", "", "filter by commune")
	exportCmd.Flags().String("type", "", "filter by survey type")
	exportCmd.Flags().String("appareil", "", "filter by instrument")
	exportCmd.Flags().String("topographe", "", "filter by surveyor")
}

func filterFromFlags(cmd *cobra.Command) (store.RecordFilter, error) {
	var filter store.RecordFilter
	filter.Village, _ = cmd.Flags().GetString("village")
	filter.Region, _ = cmd.Flags().GetString("region")
	filter.Commune, _ = cmd.Flags().GetString("commune")
	filter.Type, _ = cmd.Flags().GetString("type")
	filter.Appareil, _ = cmd.Flags().GetString("appareil")
	filter.Topographe, _ = cmd.Flags().GetString("topographe")

	if raw, _ := cmd.Flags().GetString("start-date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, fmt.Errorf("bad --start-date: %w", err)
		}
		filter.StartDate = &t
	}
	if raw, _ := cmd.Flags().GetString("end-date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, fmt.Errorf("bad --end-date: %w", err)
		}
		filter.EndDate = &t
	}
	return filter, nil
}

func runExport(cmd *cobra.Command) error {
	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	records, err := gormstore.NewRecordsStore(database).ListRecords(filter, 0)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	writer := csv.NewWriter(out)
	if err := writer.Write([]string{
		"id", "date", "village", "region", "commune",
		"type", "quantite", "appareil", "topographe",
	}); err != nil {
		return err
	}
	for i := range records {
		record := &records[i]
		if err := writer.Write([]string{
			strconv.FormatInt(record.ID, 10),
			record.Date.Format("2006-01-02"),
			record.Village,
			record.Region,
			record.Commune,
			record.Type,
			strconv.Itoa(record.Quantite),
			record.Appareil,
			record.Topographe,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Exported %d record(s)\n", len(records))
	return nil
}
