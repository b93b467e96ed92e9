package vbbvg_test

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/deeplook/vbbvg"
	"github.com/deeplook/vbbvg/model"
	"github.com/deeplook/vbbvg/testutil"
)

var backends = []string{"memory", "sqlite"}

func TestLoadBundledDirectory(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			d := testutil.LoadDirectory(t, backend)

			stops, err := d.Stops()
			require.NoError(t, err)
			assert.Equal(t, 28, len(stops))

			berlin, err := d.FilterByName("(Berlin)").Stops()
			require.NoError(t, err)
			assert.Equal(t, 21, len(berlin))
			for _, stop := range berlin {
				assert.Contains(t, stop.Name, "(Berlin)")
			}
		})
	}
}

func TestLoadDirectoryErrors(t *testing.T) {
	logger := zaptest.NewLogger(t)

	for _, tc := range []struct {
		name    string
		content string
		missing bool
	}{
		{"missing file", "", true},
		{"wrong columns", "id,name\n1,a", false},
		{"non-integer id", "stop_id,stop_name\nx,a", false},
		{"empty", "", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := testutil.WriteFile(t, "stops.csv", tc.content)
			if tc.missing {
				path += ".missing"
			}

			_, err := vbbvg.LoadDirectory(logger, testutil.BuildStorage(t, "memory"), path)
			require.Error(t, err)

			var loadErr *vbbvg.DataLoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, path, loadErr.Path)
		})
	}
}

func TestFilterByName(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			d := testutil.LoadDirectory(t, backend)

			all, err := d.Stops()
			require.NoError(t, err)

			for _, sub := range []string{"", "(Berlin)", "Bhf", "Potsdam", "bhf", "Nowhere"} {
				stops, err := d.FilterByName(sub).Stops()
				require.NoError(t, err)
				assert.LessOrEqual(t, len(stops), len(all))
				for _, stop := range stops {
					assert.True(t, strings.Contains(stop.Name, sub), "%q lacks %q", stop.Name, sub)
				}
			}

			// Empty filter is the identity
			assert.Same(t, d, d.FilterByName(""))

			// Case-sensitive
			stops, err := d.FilterByName("bhf").Stops()
			require.NoError(t, err)
			assert.Equal(t, 0, len(stops))

			// Filters compose
			stops, err = d.FilterByName("(Berlin)").FilterByName("Bhf").Stops()
			require.NoError(t, err)
			names := []string{}
			for _, stop := range stops {
				names = append(names, stop.Name)
			}
			assert.Equal(t, []string{
				"S+U Alexanderplatz Bhf (Berlin)",
				"S+U Friedrichstr. Bhf (Berlin)",
				"S+U Zoologischer Garten Bhf (Berlin)",
				"S Südkreuz Bhf (Berlin)",
				"S Ostkreuz Bhf (Berlin)",
				"S Charlottenburg Bhf (Berlin)",
				"S+U Gesundbrunnen Bhf (Berlin)",
				"S+U Lichtenberg Bhf (Berlin)",
			}, names)
		})
	}
}

func TestParseStopQuery(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected vbbvg.StopQuery
	}{
		{"9017104", vbbvg.ByID(9017104)},
		{" 9017104 ", vbbvg.ByID(9017104)},
		{"0", vbbvg.ByID(0)},
		{"Möckernbrücke", vbbvg.ByName("Möckernbrücke")},
		{"S+U   Bundesplatz", vbbvg.ByName("S+U Bundesplatz")},
		{"9017104a", vbbvg.ByName("9017104a")},
		{"-12", vbbvg.ByName("-12")},
		{"123 456", vbbvg.ByName("123 456")},
		{"99999999999999999999999", vbbvg.ByName("99999999999999999999999")},
		{"", vbbvg.ByName("")},
	} {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.expected, vbbvg.ParseStopQuery(tc.in))
		})
	}
}

// Picks a fixed index and records what it was offered.
type fixedPick struct {
	index      int
	candidates []model.Stop
}

func (p *fixedPick) Select(ctx context.Context, query string, candidates []model.Stop) (int, error) {
	p.candidates = candidates
	return p.index, nil
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			d := testutil.LoadDirectory(t, backend).FilterByName("(Berlin)")

			// By ID
			stop, err := d.Resolve(ctx, vbbvg.ByID(9017104), vbbvg.FailFast{})
			require.NoError(t, err)
			assert.Equal(t, model.Stop{ID: 9017104, Name: "U Möckernbrücke (Berlin)"}, stop)

			// By ID outside the filtered directory
			_, err = d.Resolve(ctx, vbbvg.ByID(9230999), vbbvg.FailFast{})
			assert.ErrorIs(t, err, vbbvg.ErrStopNotFound)

			// By unique name, ignoring case
			stop, err = d.Resolve(ctx, vbbvg.ByName("möckernbrücke"), vbbvg.FailFast{})
			require.NoError(t, err)
			assert.Equal(t, 9017104, stop.ID)

			// No match
			_, err = d.Resolve(ctx, vbbvg.ByName("Potsdam"), vbbvg.FailFast{})
			assert.ErrorIs(t, err, vbbvg.ErrNoMatch)

			// Several matches are offered sorted by name
			pick := &fixedPick{index: 1}
			stop, err = d.Resolve(ctx, vbbvg.ByName("platz"), pick)
			require.NoError(t, err)
			names := []string{}
			for _, c := range pick.candidates {
				names = append(names, c.Name)
			}
			assert.Equal(t, []string{
				"S+U Alexanderplatz Bhf (Berlin)",
				"S+U Bundesplatz (Berlin)",
				"U Hermannplatz (Berlin)",
				"U Richard-Wagner-Platz (Berlin)",
			}, names)
			assert.Equal(t, model.Stop{ID: 9044101, Name: "S+U Bundesplatz (Berlin)"}, stop)

			stop, err = d.Resolve(ctx, vbbvg.ByName("lichtenberg"), vbbvg.PickFirst{})
			require.NoError(t, err)
			assert.Equal(t, model.Stop{ID: 9160004, Name: "Bahnhof Lichtenberg (Berlin)"}, stop)

			// Cancelled and invalid selections
			_, err = d.Resolve(ctx, vbbvg.ByName("lichtenberg"), vbbvg.FailFast{})
			var ambiguous *vbbvg.AmbiguousSelectionError
			require.True(t, errors.As(err, &ambiguous))
			assert.Equal(t, 2, ambiguous.Candidates)
			assert.Equal(t, "lichtenberg", ambiguous.Query)
			assert.ErrorIs(t, err, vbbvg.ErrSelectionCancelled)

			_, err = d.Resolve(ctx, vbbvg.ByName("lichtenberg"), &fixedPick{index: 2})
			require.True(t, errors.As(err, &ambiguous))
			assert.ErrorIs(t, err, vbbvg.ErrInvalidIndex)

			_, err = d.Resolve(ctx, vbbvg.ByName("lichtenberg"), &fixedPick{index: -1})
			assert.ErrorIs(t, err, vbbvg.ErrInvalidIndex)
		})
	}
}

func TestResolveDuplicateID(t *testing.T) {
	ctx := context.Background()

	d := testutil.LoadDirectory(
		t,
		"sqlite",
		"stop_id,stop_name",
		"1,Zeta",
		"2,Beta",
		"1,Alpha",
	)

	stop, err := d.Resolve(ctx, vbbvg.ByID(1), vbbvg.FailFast{})
	require.NoError(t, err)
	assert.Equal(t, model.Stop{ID: 1, Name: "Zeta"}, stop)
}

func TestPrompt(t *testing.T) {
	candidates := []model.Stop{
		{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"},
		{ID: 4, Name: "D"}, {ID: 5, Name: "E"}, {ID: 6, Name: "F"},
		{ID: 7, Name: "G"}, {ID: 8, Name: "H"}, {ID: 9, Name: "I"},
		{ID: 10, Name: "J"}, {ID: 11, Name: "K"},
	}

	for _, tc := range []struct {
		name     string
		input    string
		expected int
		err      error
		message  string
	}{
		{"valid", "3\n", 3, nil, ""},
		{"surrounding space", "  10 \n", 10, nil, ""},
		{"no trailing newline", "0", 0, nil, ""},
		{"not a number", "x\n", 0, vbbvg.ErrInvalidIndex, "'x' is not an integer number."},
		{"out of range", "11\n", 0, vbbvg.ErrInvalidIndex, "Invalid index."},
		{"negative", "-1\n", 0, vbbvg.ErrInvalidIndex, "Invalid index."},
		{"end of input", "", 0, vbbvg.ErrSelectionCancelled, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out := &strings.Builder{}
			p := vbbvg.Prompt{In: strings.NewReader(tc.input), Out: out}

			i, err := p.Select(context.Background(), "x", candidates)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, i)
			}

			assert.Contains(t, out.String(), "Please pick one of the following matching stop names:")
			assert.Contains(t, out.String(), " 0. A\n")
			assert.Contains(t, out.String(), "10. K\n")
			assert.Contains(t, out.String(), "(0-10): ")
			assert.Contains(t, out.String(), tc.message)
		})
	}
}

func TestPromptCancelled(t *testing.T) {
	// Input that never arrives
	in, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	d := testutil.LoadDirectory(t, "memory").FilterByName("(Berlin)")
	out := &strings.Builder{}
	_, err := d.Resolve(ctx, vbbvg.ByName("lichtenberg"), vbbvg.Prompt{In: in, Out: out})

	var ambiguous *vbbvg.AmbiguousSelectionError
	require.True(t, errors.As(err, &ambiguous))
	assert.ErrorIs(t, err, vbbvg.ErrSelectionCancelled)
	assert.True(t, strings.HasSuffix(out.String(), "(0-1): \n"))
}

func TestReadLine(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("first\nsecond"))

	line, err := vbbvg.ReadLine(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "first\n", line)

	line, err = vbbvg.ReadLine(context.Background(), r)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "second", line)

	in, w := io.Pipe()
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = vbbvg.ReadLine(ctx, bufio.NewReader(in))
	assert.ErrorIs(t, err, context.Canceled)
}
