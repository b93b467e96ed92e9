package vbbvg

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/deeplook/vbbvg/data"
	"github.com/deeplook/vbbvg/model"
	"github.com/deeplook/vbbvg/parse"
	"github.com/deeplook/vbbvg/storage"
)

// Directory is the stop reference table, optionally narrowed to stops
// whose names contain a set of substrings.
type Directory struct {
	storage storage.Storage
	filters []string
}

// Loads the stop reference table at path into s. An empty path loads
// the table bundled with the binary.
func LoadDirectory(logger *zap.Logger, s storage.Storage, path string) (*Directory, error) {
	var r io.Reader
	name := path
	if path == "" {
		r = data.Stops()
		name = data.StopsName
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, &DataLoadError{Path: path, Err: err}
		}
		defer f.Close()
		r = f
	}

	n, err := parse.ParseStops(s, r)
	if err != nil {
		return nil, &DataLoadError{Path: name, Err: err}
	}

	logger.Info("loaded stops", zap.Int("count", n), zap.String("path", name))

	return &Directory{storage: s}, nil
}

// Returns the directory narrowed to stops with names containing
// substring. Matching is case-sensitive. An empty substring returns
// the directory unchanged.
func (d *Directory) FilterByName(substring string) *Directory {
	if substring == "" {
		return d
	}
	filters := make([]string, 0, len(d.filters)+1)
	filters = append(filters, d.filters...)
	filters = append(filters, substring)
	return &Directory{storage: d.storage, filters: filters}
}

// All stops in the directory, in reference table order.
func (d *Directory) Stops() ([]model.Stop, error) {
	stops, err := d.storage.ListStops(storage.ListStopsFilter{NameContains: d.filters})
	if err != nil {
		return nil, fmt.Errorf("listing stops: %w", err)
	}
	return stops, nil
}

// Stops with names containing substring, ignoring case, sorted by
// name.
func (d *Directory) Search(substring string) ([]model.Stop, error) {
	stops, err := d.Stops()
	if err != nil {
		return nil, err
	}

	substring = strings.ToLower(substring)
	matches := []model.Stop{}
	for _, stop := range stops {
		if strings.Contains(strings.ToLower(stop.Name), substring) {
			matches = append(matches, stop)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Name < matches[j].Name
	})

	return matches, nil
}

// Resolves a query to a single stop.
//
// ByID queries return the first stop with that ID, or
// ErrStopNotFound. ByName queries match case-insensitively; if more
// than one stop matches, disambiguator picks one of them, sorted by
// name. ErrNoMatch is returned when nothing matches, and an
// AmbiguousSelectionError when no candidate was picked.
func (d *Directory) Resolve(ctx context.Context, query StopQuery, disambiguator Disambiguator) (model.Stop, error) {
	switch q := query.(type) {
	case ByID:
		stops, err := d.storage.ListStops(storage.ListStopsFilter{
			IDs:          []int{int(q)},
			NameContains: d.filters,
		})
		if err != nil {
			return model.Stop{}, fmt.Errorf("listing stops: %w", err)
		}
		if len(stops) == 0 {
			return model.Stop{}, fmt.Errorf("stop %d: %w", int(q), ErrStopNotFound)
		}
		return stops[0], nil

	case ByName:
		candidates, err := d.Search(string(q))
		if err != nil {
			return model.Stop{}, err
		}

		switch len(candidates) {
		case 0:
			return model.Stop{}, fmt.Errorf("'%s': %w", string(q), ErrNoMatch)
		case 1:
			return candidates[0], nil
		}

		i, err := disambiguator.Select(ctx, string(q), candidates)
		if err == nil && (i < 0 || i >= len(candidates)) {
			err = ErrInvalidIndex
		}
		if err != nil {
			return model.Stop{}, &AmbiguousSelectionError{
				Query:      string(q),
				Candidates: len(candidates),
				Err:        err,
			}
		}
		return candidates[i], nil
	}

	return model.Stop{}, fmt.Errorf("unsupported stop query %T", query)
}

// StopQuery identifies a stop either by name or by ID. It is either
// a ByName or a ByID.
type StopQuery interface {
	isStopQuery()
}

// A case-insensitive substring of a stop name.
type ByName string

// A stop ID.
type ByID int

func (ByName) isStopQuery() {}
func (ByID) isStopQuery()   {}

var (
	digits = regexp.MustCompile(`^[0-9]+$`)
	spaces = regexp.MustCompile(` +`)
)

// Turns user input into a StopQuery. Runs of spaces are collapsed
// and input made up of digits only is taken to be an ID.
func ParseStopQuery(s string) StopQuery {
	s = spaces.ReplaceAllString(strings.TrimSpace(s), " ")
	if digits.MatchString(s) {
		if id, err := strconv.Atoi(s); err == nil {
			return ByID(id)
		}
	}
	return ByName(s)
}
