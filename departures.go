package vbbvg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/deeplook/vbbvg/downloader"
	"github.com/deeplook/vbbvg/model"
	"github.com/deeplook/vbbvg/parse"
)

const (
	// The BVG online service wrapped by this tool. {stop} is
	// replaced by a stop name or ID.
	DefaultURLTemplate = "http://mobil.bvg.de/Fahrinfo/bin/stboard.bin/dox?input={stop}&start=Suchen&boardType=depRT"

	DefaultTimeout = 30 * time.Second
	DefaultMaxSize = 4 << 20 // 4 MB

	stopPlaceholder = "{stop}"
)

// Client fetches departure boards from the upstream service.
type Client struct {
	URLTemplate string
	Timeout     time.Duration
	MaxSize     int
	UserAgent   string
	Downloader  downloader.Downloader

	// Reference time for wait computations.
	TimeNow func() time.Time

	logger *zap.Logger
}

func NewClient(logger *zap.Logger) *Client {
	return &Client{
		URLTemplate: DefaultURLTemplate,
		Timeout:     DefaultTimeout,
		MaxSize:     DefaultMaxSize,
		UserAgent:   "vbbvg",
		Downloader:  downloader.HTTP{},
		TimeNow:     time.Now,

		logger: logger,
	}
}

// The upstream URL for a stop name or ID.
func (c *Client) URL(stop string) string {
	return strings.ReplaceAll(c.URLTemplate, stopPlaceholder, url.QueryEscape(stop))
}

// Retrieves the raw departure board for a stop name or ID.
//
// Failing to reach the service gives a NetworkError, unless ctx was
// cancelled. A page without a departure table gives no departures and
// no error.
func (c *Client) Fetch(ctx context.Context, stop string) ([]model.RawDeparture, error) {
	u := c.URL(stop)
	c.logger.Info("fetching departures", zap.String("url", u))

	body, err := c.Downloader.Get(
		ctx,
		u,
		map[string]string{"User-Agent": c.UserAgent},
		downloader.GetOptions{
			Timeout: c.Timeout,
			MaxSize: c.MaxSize,
		},
	)
	if errors.Is(err, context.Canceled) {
		return nil, fmt.Errorf("fetching departures: %w", err)
	}
	if err != nil {
		return nil, &NetworkError{URL: u, Err: err}
	}

	var r io.Reader = bytes.NewReader(body)
	if !utf8.Valid(body) {
		// Older pages come in whatever their meta tag declares.
		r, err = charset.NewReader(r, "")
		if err != nil {
			return nil, fmt.Errorf("decoding departures: %w", err)
		}
	}

	departures, err := parse.ParseDepartureTable(r)
	if err != nil {
		return nil, err
	}

	c.logger.Info("got departures", zap.Int("count", len(departures)), zap.String("stop", stop))

	return departures, nil
}

type DepartureOptions struct {
	// Keep at most this many departures per line and destination.
	NumLineGroups int

	// If set, only keep lines containing this, ignoring case.
	FilterLine string

	// Waits are computed from this. Zero means Client.TimeNow().
	Now time.Time
}

// Returns the cleaned departure board for a stop name or ID.
func (c *Client) Departures(ctx context.Context, stop string, opts DepartureOptions) ([]model.Departure, error) {
	raw, err := c.Fetch(ctx, stop)
	if err != nil {
		return nil, err
	}

	// The order matters: grouping must see every row, and
	// filtering must not change which rows come first in a group.
	rows := Clean(raw)
	rows = SelectLineGroups(rows, opts.NumLineGroups)
	now := opts.Now
	if now.IsZero() {
		now = c.TimeNow()
	}
	departures, err := AnnotateWait(rows, now)
	if err != nil {
		return nil, err
	}
	departures = FilterByLine(departures, opts.FilterLine)

	c.logger.Debug(
		"processed departures",
		zap.Int("fetched", len(raw)),
		zap.Int("kept", len(departures)),
	)

	return departures, nil
}

var (
	asterisk = regexp.MustCompile(`\s*\*\s*`)
	blanks   = regexp.MustCompile(` +`)
)

// Removes scrape noise: asterisks (and surrounding whitespace) from
// departure times, and repeated spaces from lines.
func Clean(rows []model.RawDeparture) []model.RawDeparture {
	cleaned := make([]model.RawDeparture, 0, len(rows))
	for _, row := range rows {
		cleaned = append(cleaned, model.RawDeparture{
			Time:        asterisk.ReplaceAllString(row.Time, ""),
			Line:        blanks.ReplaceAllString(row.Line, " "),
			Destination: row.Destination,
		})
	}
	return cleaned
}

type lineGroup struct {
	line        string
	destination string
}

// Keeps the first n departures of every distinct line and destination
// pair. Pairs with fewer departures keep all of them. The original
// order is preserved.
func SelectLineGroups(rows []model.RawDeparture, n int) []model.RawDeparture {
	seen := map[lineGroup]int{}
	selected := []model.RawDeparture{}
	for _, row := range rows {
		key := lineGroup{row.Line, row.Destination}
		if seen[key] >= n {
			continue
		}
		seen[key]++
		selected = append(selected, row)
	}
	return selected
}

// Adds the wait until each departure, as seen from now.
func AnnotateWait(rows []model.RawDeparture, now time.Time) ([]model.Departure, error) {
	departures := make([]model.Departure, 0, len(rows))
	for i, row := range rows {
		wait, err := WaitTime(row.Time, now)
		if err != nil {
			return nil, fmt.Errorf("departure %d (%s to %s): %w", i+1, row.Line, row.Destination, err)
		}
		departures = append(departures, model.Departure{
			Wait:         wait,
			RawDeparture: row,
		})
	}
	return departures, nil
}

// Keeps departures with lines containing substring, ignoring case. An
// empty substring keeps everything.
func FilterByLine(rows []model.Departure, substring string) []model.Departure {
	if substring == "" {
		return rows
	}

	substring = strings.ToLower(substring)
	filtered := []model.Departure{}
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Line), substring) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
