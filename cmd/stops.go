package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStopsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stops [EXPR]",
		Short: "Lists stops, optionally those with names containing EXPR",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := ""
			if len(args) == 1 {
				expr = args[0]
			}
			return o.stops(cmd, expr)
		},
	}
}

func (o *options) stops(cmd *cobra.Command, expr string) error {
	logger, err := o.logger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	dir, s, err := o.loadDirectory(logger)
	if err != nil {
		return err
	}
	defer s.Close()

	// sorted by name
	stops, err := dir.Search(expr)
	if err != nil {
		return err
	}

	for _, stop := range stops {
		fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", stop.ID, stop.Name)
	}

	return nil
}
