package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"transitboard.dev/transit"
)

var departuresCmd = &cobra.Command{
	Use:   "departures <stop_id>",
	Short: "Shows the departure board for a stop",
	Args:  cobra.ExactArgs(1),
	RunE:  departures,
}

var (
	horizonMinutes int
	depLimit       int
	groupByRoute   bool
)

func init() {
	departuresCmd.Flags().IntVarP(&horizonMinutes, "horizon", "H", 120, "Look-ahead window in minutes")
	departuresCmd.Flags().IntVarP(&depLimit, "limit", "l", 20, "Max number of departures returned")
	departuresCmd.Flags().BoolVarP(&groupByRoute, "group", "g", false, "Group departures by route")
	rootCmd.AddCommand(departuresCmd)
}

func departures(cmd *cobra.Command, args []string) error {
	stopID := args[0]

	engine, err := newEngine()
	if err != nil {
		return err
	}

	deps, err := engine.Departures(cmd.Context(), stopID, time.Now(), depLimit, horizonMinutes)
	if err != nil {
		return err
	}

	if groupByRoute {
		for _, group := range transit.GroupByRoute(deps) {
			fmt.Printf("%s %s\n", group.RouteShortName, group.RouteLongName)
			for _, dep := range group.Departures {
				fmt.Printf("  %s %s in %d min\n", dep.Scheduled, dep.Headsign, dep.ETAMinutes)
			}
		}
		return nil
	}

	for _, dep := range deps {
		fmt.Printf("%s %s %s in %d min\n", dep.RouteShortName, dep.Scheduled, dep.Headsign, dep.ETAMinutes)
	}

	return nil
}
