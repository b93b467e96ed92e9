package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	headers = []string{"Wait", "Departure", "Line", "Destination"}
	rows    = [][]string{
		{"02:00", "18:02", "U7", "U Rudow (Berlin)"},
		{"01:14:30", "19:45", "S41", "Ringbahn S 41"},
	}
)

func render(t *testing.T, format string, rows [][]string) string {
	out := &strings.Builder{}
	require.NoError(t, Render(out, format, headers, rows))
	return out.String()
}

func TestRender(t *testing.T) {
	for _, tc := range []struct {
		format   string
		expected []string
	}{
		{
			"simple",
			[]string{
				"Wait      Departure    Line    Destination",
				"--------  -----------  ------  ----------------",
				"02:00     18:02        U7      U Rudow (Berlin)",
				"01:14:30  19:45        S41     Ringbahn S 41",
			},
		},
		{
			"grid",
			[]string{
				"+----------+-------------+--------+------------------+",
				"| Wait     | Departure   | Line   | Destination      |",
				"+==========+=============+========+==================+",
				"| 02:00    | 18:02       | U7     | U Rudow (Berlin) |",
				"+----------+-------------+--------+------------------+",
				"| 01:14:30 | 19:45       | S41    | Ringbahn S 41    |",
				"+----------+-------------+--------+------------------+",
			},
		},
		{
			"rst",
			[]string{
				"========  ===========  ======  ================",
				"Wait      Departure    Line    Destination",
				"========  ===========  ======  ================",
				"02:00     18:02        U7      U Rudow (Berlin)",
				"01:14:30  19:45        S41     Ringbahn S 41",
				"========  ===========  ======  ================",
			},
		},
		{
			"pipe",
			[]string{
				"| Wait     | Departure   | Line   | Destination      |",
				"|:---------|:------------|:-------|:-----------------|",
				"| 02:00    | 18:02       | U7     | U Rudow (Berlin) |",
				"| 01:14:30 | 19:45       | S41    | Ringbahn S 41    |",
			},
		},
		{
			"github",
			[]string{
				"| Wait     | Departure   | Line   | Destination      |",
				"|----------|-------------|--------|------------------|",
				"| 02:00    | 18:02       | U7     | U Rudow (Berlin) |",
				"| 01:14:30 | 19:45       | S41    | Ringbahn S 41    |",
			},
		},
		{
			"tsv",
			[]string{
				"Wait\tDeparture\tLine\tDestination",
				"02:00\t18:02\tU7\tU Rudow (Berlin)",
				"01:14:30\t19:45\tS41\tRingbahn S 41",
			},
		},
	} {
		t.Run(tc.format, func(t *testing.T) {
			assert.Equal(t, strings.Join(tc.expected, "\n")+"\n", render(t, tc.format, rows))
		})
	}
}

func TestRenderUnknownFormatFallsBack(t *testing.T) {
	assert.Equal(t, render(t, DefaultFormat, rows), render(t, "fancy_outline", rows))
}

func TestRenderPlain(t *testing.T) {
	out := render(t, "plain", rows)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Equal(t, 3, len(lines))
	assert.Equal(t, []string{"Wait", "Departure", "Line", "Destination"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"02:00", "18:02", "U7", "U", "Rudow", "(Berlin)"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"01:14:30", "19:45", "S41", "Ringbahn", "S", "41"}, strings.Fields(lines[2]))

	// Columns line up
	assert.Equal(t, strings.Index(lines[0], "Departure"), strings.Index(lines[1], "18:02"))
	assert.Equal(t, strings.Index(lines[0], "Destination"), strings.Index(lines[2], "Ringbahn"))
}

func TestRenderHTML(t *testing.T) {
	out := render(t, "html", [][]string{{"02:00", "18:02", "U7", "Rudow & <Zentrum>"}})

	assert.Equal(
		t,
		"<table><thead><tr><th>Wait</th><th>Departure</th><th>Line</th><th>Destination</th></tr></thead>"+
			"<tbody><tr><td>02:00</td><td>18:02</td><td>U7</td><td>Rudow &amp; &lt;Zentrum&gt;</td></tr></tbody></table>\n",
		out,
	)
}

func TestRenderWideCharacters(t *testing.T) {
	out := render(t, "simple", [][]string{
		{"02:00", "18:02", "U7", "U Möckernbrücke (Berlin)"},
		{"03:00", "18:03", "U7", "U Rudow (Berlin)"},
	})

	assert.Equal(t, strings.Join([]string{
		"Wait    Departure    Line    Destination",
		"------  -----------  ------  ------------------------",
		"02:00   18:02        U7      U Möckernbrücke (Berlin)",
		"03:00   18:03        U7      U Rudow (Berlin)",
	}, "\n")+"\n", out)
}

func TestRenderNoRows(t *testing.T) {
	assert.Equal(t, "Wait    Departure    Line    Destination\n------  -----------  ------  -------------\n", render(t, "simple", nil))
	assert.Equal(t, "<table><thead><tr><th>Wait</th><th>Departure</th><th>Line</th><th>Destination</th></tr></thead><tbody></tbody></table>\n", render(t, "html", nil))
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"github", "grid", "html", "pipe", "plain", "rst", "simple", "tsv"}, Formats())
}
