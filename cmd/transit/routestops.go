package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"transitboard.dev/transit/model"
)

var routeStopsCmd = &cobra.Command{
	Use:   "route-stops <route_id>",
	Short: "Lists the stops a route serves, in order",
	Args:  cobra.ExactArgs(1),
	RunE:  routeStops,
}

var routeStopsDate string

func init() {
	routeStopsCmd.Flags().StringVarP(&routeStopsDate, "date", "d", "", "Service date as YYYYMMDD (default today)")
	rootCmd.AddCommand(routeStopsCmd)
}

func routeStops(cmd *cobra.Command, args []string) error {
	routeID := args[0]

	on := time.Now()
	if routeStopsDate != "" {
		var err error
		on, err = time.Parse(model.DateFormat, routeStopsDate)
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	stops, err := engine.StopsForRoute(cmd.Context(), routeID, on)
	if err != nil {
		return err
	}

	for _, stop := range stops {
		fmt.Printf("%s: %s\n", stop.ID, stop.Name)
	}

	return nil
}
