package vbbvg

import (
	"errors"
	"fmt"
)

var (
	// No stop name matched the query.
	ErrNoMatch = errors.New("no matching stop")

	// No stop has the requested ID.
	ErrStopNotFound = errors.New("stop not found")

	// The user declined to pick one of several matching stops.
	ErrSelectionCancelled = errors.New("stop selection cancelled")

	// The picked index is not one of the offered candidates.
	ErrInvalidIndex = errors.New("invalid index")
)

// The stop reference table is missing or malformed.
type DataLoadError struct {
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("loading stops from %s: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// Several stops matched a name query and no single one was picked.
type AmbiguousSelectionError struct {
	Query      string
	Candidates int
	Err        error
}

func (e *AmbiguousSelectionError) Error() string {
	return fmt.Sprintf("%d stops match '%s': %v", e.Candidates, e.Query, e.Err)
}

func (e *AmbiguousSelectionError) Unwrap() error {
	return e.Err
}

// The upstream departure service could not be reached.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
