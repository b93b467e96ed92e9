package storage

import (
	"fmt"
	"strings"

	"github.com/deeplook/vbbvg/model"
)

// Storage holds the stop directory for the duration of a single
// invocation. Implementations are written once and only read
// afterwards.
type Storage interface {
	// Writes a stop. Stops are kept in the order they are
	// written, and duplicate IDs are allowed.
	WriteStop(stop model.Stop) error

	// Retrieves all stops matching the given filter, in the
	// order they were written.
	ListStops(filter ListStopsFilter) ([]model.Stop, error)

	Close() error
}

type ListStopsFilter struct {
	// If set, only include stops with one of the given IDs.
	IDs []int

	// Only include stops whose name contains every one of these
	// substrings. Matching is case-sensitive.
	NameContains []string
}

func (f ListStopsFilter) matches(stop model.Stop) bool {
	if len(f.IDs) > 0 {
		found := false
		for _, id := range f.IDs {
			if stop.ID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, sub := range f.NameContains {
		if !strings.Contains(stop.Name, sub) {
			return false
		}
	}
	return true
}

// Backends accepted by New.
var Backends = []string{"memory", "sqlite"}

// Creates an empty storage of the named backend.
func New(backend string) (Storage, error) {
	switch backend {
	case "memory":
		return NewMemoryStorage(), nil
	case "sqlite":
		return NewSQLiteStorage()
	}
	return nil, fmt.Errorf("unknown storage backend '%s'", backend)
}
