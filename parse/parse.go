package parse

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/spkg/bom"
)

func init() {
	// LazyCSVReader required (at least) to survive sloppy use of
	// quotes. The BOM reader strips unicode BOMs if present.
	gocsv.SetCSVReader(csvReader)
}

func csvReader(in io.Reader) gocsv.CSVReader {
	return gocsv.LazyCSVReader(bom.NewReader(in))
}
