package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"transitboard.dev/transit/model"
)

var servicesCmd = &cobra.Command{
	Use:   "services [date]",
	Short: "Lists service ids active on a date (default today)",
	Args:  cobra.RangeArgs(0, 1),
	RunE:  services,
}

func init() {
	rootCmd.AddCommand(servicesCmd)
}

func services(cmd *cobra.Command, args []string) error {
	on := time.Now()
	if len(args) == 1 {
		var err error
		on, err = time.Parse(model.DateFormat, args[0])
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	serviceIDs, err := engine.ActiveServices(cmd.Context(), on)
	if err != nil {
		return err
	}

	for _, serviceID := range serviceIDs {
		fmt.Println(serviceID)
	}

	return nil
}
