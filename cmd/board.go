package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/deeplook/vbbvg"
	"github.com/deeplook/vbbvg/model"
	"github.com/deeplook/vbbvg/render"
)

func (o *options) board(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if o.numLineGroups < 1 {
		return fmt.Errorf("--num-line-groups must be >= 1, got %d", o.numLineGroups)
	}

	if o.selfTest {
		return selfTest(cmd.Context(), out, o.stop, o.config)
	}

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

	// Shared between the stop prompt and the disambiguation prompt.
	in := bufio.NewReader(cmd.InOrStdin())

	input := o.stop
	if input == "" {
		bold.Fprint(out, "Please enter a stop name or ID: ")
		line, err := vbbvg.ReadLine(cmd.Context(), in)
		if err != nil && (err != io.EOF || line == "") {
			fmt.Fprintln(out)
			return nil
		}
		input = line
	}

	query := vbbvg.ParseStopQuery(input)
	stop, err := dir.Resolve(cmd.Context(), query, vbbvg.Prompt{In: in, Out: out})
	var ambiguous *vbbvg.AmbiguousSelectionError
	switch {
	case errors.Is(err, vbbvg.ErrNoMatch):
		fmt.Fprintf(out, "No stop name matching '%v' found.\n", query)
		return nil
	case errors.Is(err, vbbvg.ErrStopNotFound):
		fmt.Fprintf(out, "No stop with ID %v found.\n", query)
		return nil
	case errors.As(err, &ambiguous):
		// The prompt has told the user already.
		logger.Debug(ambiguous.Error())
		return nil
	case err != nil:
		return err
	}

	client := o.client(logger)
	now := client.TimeNow()
	departures, err := client.Departures(
		cmd.Context(),
		strconv.Itoa(stop.ID),
		vbbvg.DepartureOptions{
			NumLineGroups: o.numLineGroups,
			FilterLine:    o.filterLine,
			Now:           now,
		},
	)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out)
		return nil
	}
	if err != nil {
		return err
	}

	if o.header {
		fmt.Fprintf(out, "Now: %s\n", now.Format("15:04:05"))
		fmt.Fprintf(out, "Stop-Name: %s\n", stop.Name)
		fmt.Fprintf(out, "Stop-ID: %d\n", stop.ID)
		fmt.Fprintln(out)
	}

	if len(departures) == 0 {
		fmt.Fprintln(out, "No departures found.")
		return nil
	}

	rows := make([][]string, 0, len(departures))
	for _, d := range departures {
		rows = append(rows, d.Row())
	}

	return render.Render(out, o.tablefmt, model.DepartureColumns, rows)
}
