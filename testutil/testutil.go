package testutil

// Helpers and configuration for tests.

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/deeplook/vbbvg"
	"github.com/deeplook/vbbvg/storage"
)

func BuildStorage(t testing.TB, backend string) storage.Storage {
	s, err := storage.New(backend)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// Loads a stop directory from CSV lines. Passing no lines loads the
// bundled reference table.
func LoadDirectory(t testing.TB, backend string, lines ...string) *vbbvg.Directory {
	path := ""
	if len(lines) > 0 {
		path = WriteFile(t, "stops.csv", strings.Join(lines, "\n"))
	}

	d, err := vbbvg.LoadDirectory(zaptest.NewLogger(t), BuildStorage(t, backend), path)
	require.NoError(t, err)

	return d
}

// Writes content to a file in a fresh temp dir and returns its path.
func WriteFile(t testing.TB, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// Renders rows of (departure, line, destination) as a page like the
// one served by the upstream service.
func BoardHTML(rows ...[3]string) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("<html><body>\n<table>\n<tr><th>Abfahrt</th><th>Linie</th><th>Ziel</th></tr>\n")
	for _, row := range rows {
		fmt.Fprintf(
			buf,
			"<tr><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(row[0]),
			html.EscapeString(row[1]),
			html.EscapeString(row[2]),
		)
	}
	buf.WriteString("</table>\n</body></html>\n")
	return buf.Bytes()
}
