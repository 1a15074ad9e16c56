package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes <short_name>",
	Short: "Looks up routes by short name",
	Args:  cobra.ExactArgs(1),
	RunE:  routes,
}

func init() {
	rootCmd.AddCommand(routesCmd)
}

func routes(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	found, err := engine.RoutesByShortName(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	for _, route := range found {
		fmt.Printf("%s: %s %s\n", route.ID, route.ShortName, route.LongName)
	}

	return nil
}
