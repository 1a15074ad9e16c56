package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var nearbyCmd = &cobra.Command{
	Use:   "nearby <lat> <lon>",
	Short: "Lists stops near a geographical location",
	Args:  cobra.ExactArgs(2),
	RunE:  nearby,
}

var (
	radiusMeters float64
	maxResults   int
)

func init() {
	nearbyCmd.Flags().Float64VarP(&radiusMeters, "radius", "r", 1000, "Search radius in meters")
	nearbyCmd.Flags().IntVarP(&maxResults, "limit", "l", 10, "Max number of stops returned")
	rootCmd.AddCommand(nearbyCmd)
}

func nearby(cmd *cobra.Command, args []string) error {
	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid lat: %w", err)
	}
	lon, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid lon: %w", err)
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	stops, err := engine.NearbyStops(cmd.Context(), lat, lon, radiusMeters, maxResults)
	if err != nil {
		return err
	}

	for _, stop := range stops {
		fmt.Printf("%s: %s (%.0f m)\n", stop.ID, stop.Name, stop.DistanceMeters)
	}

	return nil
}
