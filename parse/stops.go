package parse

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/deeplook/vbbvg/model"
	"github.com/deeplook/vbbvg/storage"
)

// Any other columns in the reference table are ignored.
type StopCSV struct {
	ID   string `csv:"stop_id"`
	Name string `csv:"stop_name"`
}

var requiredStopColumns = []string{"stop_id", "stop_name"}

// Parses the stop reference table and writes every stop to writer,
// in file order. Returns the number of stops written.
func ParseStops(writer storage.Storage, data io.Reader) (int, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return 0, errors.Wrap(err, "reading stops csv")
	}

	header, err := csvReader(bytes.NewReader(buf)).Read()
	if err != nil {
		return 0, errors.Wrap(err, "reading stops csv header")
	}
	columns := map[string]bool{}
	for _, col := range header {
		columns[strings.TrimSpace(col)] = true
	}
	for _, required := range requiredStopColumns {
		if !columns[required] {
			return 0, fmt.Errorf("missing column '%s'", required)
		}
	}

	i := 0
	err = gocsv.UnmarshalToCallbackWithError(bytes.NewReader(buf), func(st *StopCSV) error {
		i += 1

		id, err := strconv.Atoi(strings.TrimSpace(st.ID))
		if err != nil {
			return errors.Wrapf(err, "parsing stop_id (row %d)", i)
		}
		if st.Name == "" {
			return fmt.Errorf("empty stop_name for stop_id %d (row %d)", id, i)
		}

		err = writer.WriteStop(model.Stop{ID: id, Name: st.Name})
		if err != nil {
			return errors.Wrapf(err, "writing stop %d (row %d)", id, i)
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "unmarshaling stops csv")
	}

	return i, nil
}
