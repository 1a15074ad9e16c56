package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"transitboard.dev/transit/model"
	"transitboard.dev/transit/tableapi"
)

var exportCmd = &cobra.Command{
	Use:   "export <table>",
	Short: "Dumps a remote table as CSV",
	Long:  "Dumps a snapshot of one remote table (stops, routes, trips, stop_times, calendar, calendar_dates) as CSV, for debugging and offline inspection",
	Args:  cobra.ExactArgs(1),
	RunE:  export,
}

var (
	exportLimit int
	exportOut   string
)

func init() {
	exportCmd.Flags().IntVarP(&exportLimit, "limit", "l", 10000, "Max number of rows to export")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func export(cmd *cobra.Command, args []string) error {
	table := args[0]

	client, _, err := newClient()
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	ctx := cmd.Context()
	switch table {
	case "stops":
		return exportRows[model.Stop](ctx, client, table, "stop_id", out)
	case "routes":
		return exportRows[model.Route](ctx, client, table, "route_id", out)
	case "trips":
		return exportRows[model.Trip](ctx, client, table, "trip_id", out)
	case "stop_times":
		return exportRows[model.StopTime](ctx, client, table, "trip_id", out)
	case "calendar":
		return exportRows[model.Calendar](ctx, client, table, "service_id", out)
	case "calendar_dates":
		return exportRows[model.CalendarDate](ctx, client, table, "service_id", out)
	default:
		return fmt.Errorf("unknown table %q", table)
	}
}

func exportRows[T any](ctx context.Context, client *tableapi.Client, table, order string, out io.Writer) error {
	rows, err := tableapi.Rows[T](ctx, client, table, tableapi.Query{
		Order: order,
		Limit: exportLimit,
	})
	if err != nil {
		return err
	}
	return gocsv.Marshal(&rows, out)
}
