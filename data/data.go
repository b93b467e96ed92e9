// Package data bundles the stop reference table with the binary.
//
// vbbvg_stops.csv is an excerpt of the VBB stop list published at
// http://daten.berlin.de/kategorie/verkehr (CC-BY 3.0). A complete
// table with the same columns can be used instead via --stops-file.
package data

import (
	"bytes"
	"io"

	_ "embed"
)

// Name under which the bundled table is reported in logs and errors.
const StopsName = "vbbvg_stops.csv"

//go:embed vbbvg_stops.csv
var stops []byte

// Stops returns a reader over the bundled stop reference table.
func Stops() io.Reader {
	return bytes.NewReader(stops)
}
