package vbbvg

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/deeplook/vbbvg/model"
)

// Disambiguator picks one of several stops matching a name query.
//
// Select returns an index into candidates, or an error if no stop was
// picked.
type Disambiguator interface {
	Select(ctx context.Context, query string, candidates []model.Stop) (int, error)
}

// Always picks the first candidate.
type PickFirst struct{}

func (PickFirst) Select(ctx context.Context, query string, candidates []model.Stop) (int, error) {
	return 0, nil
}

// Never picks a candidate. For when nobody is around to ask.
type FailFast struct{}

func (FailFast) Select(ctx context.Context, query string, candidates []model.Stop) (int, error) {
	return 0, ErrSelectionCancelled
}

// Asks on the console. Candidates are listed with 0-based indices,
// and the answer is read as a single line from In. Cancelling ctx
// while waiting for the answer cancels the selection.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

var (
	bold = color.New(color.Bold)
	red  = color.New(color.FgRed, color.Bold)
)

func (p Prompt) Select(ctx context.Context, query string, candidates []model.Stop) (int, error) {
	bold.Fprintln(p.Out, "Please pick one of the following matching stop names:")

	width := len(strconv.Itoa(len(candidates)))
	for i, stop := range candidates {
		fmt.Fprintf(p.Out, "%*d. %s\n", width, i, stop.Name)
	}

	bold.Fprintf(p.Out, "Please select index of desired stop in list above (0-%d): ", len(candidates)-1)

	answer, err := ReadLine(ctx, bufio.NewReader(p.In))
	if err != nil && (err != io.EOF || answer == "") {
		fmt.Fprintln(p.Out)
		return 0, ErrSelectionCancelled
	}
	answer = strings.TrimSpace(answer)

	i, err := strconv.Atoi(answer)
	if err != nil {
		red.Fprintf(p.Out, "'%s' is not an integer number.\n", answer)
		return 0, fmt.Errorf("'%s': %w", answer, ErrInvalidIndex)
	}

	if i < 0 || i >= len(candidates) {
		red.Fprintln(p.Out, "Invalid index.")
		return 0, fmt.Errorf("%d: %w", i, ErrInvalidIndex)
	}

	return i, nil
}

// Reads a line from r, giving up with ctx.Err() when ctx is done
// first. The read itself cannot be interrupted, so r must not be used
// again after a cancelled read.
func ReadLine(ctx context.Context, r *bufio.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}

	done := make(chan result, 1)
	go func() {
		line, err := r.ReadString('\n')
		done <- result{line, err}
	}()

	select {
	case res := <-done:
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
