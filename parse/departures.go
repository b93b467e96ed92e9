package parse

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"

	"github.com/deeplook/vbbvg/model"
)

// Parses the departure board from the upstream HTML page.
//
// Only the first <table> in the document is considered. Its header
// text is ignored: the first three cells of every row are taken to be
// departure time, line and destination, in that order. Rows made of
// header cells only, and rows with fewer than three cells, are
// skipped.
//
// A document without a table yields no departures and no error.
func ParseDepartureTable(data io.Reader) ([]model.RawDeparture, error) {
	doc, err := goquery.NewDocumentFromReader(data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing departures html")
	}

	departures := []model.RawDeparture{}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return departures, nil
	}

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		// Nested tables would otherwise contribute rows too.
		if row.Closest("table").Get(0) != table.Get(0) {
			return
		}

		cells := row.ChildrenFiltered("td")
		if cells.Length() < 3 {
			return
		}

		departures = append(departures, model.RawDeparture{
			Time:        cellText(cells.Eq(0)),
			Line:        cellText(cells.Eq(1)),
			Destination: cellText(cells.Eq(2)),
		})
	})

	return departures, nil
}

var cellWhitespace = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ", "\u00a0", " ")

func cellText(cell *goquery.Selection) string {
	return strings.TrimSpace(cellWhitespace.Replace(cell.Text()))
}
