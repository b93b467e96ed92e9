// Package render prints departure boards as text tables.
//
// The formats mimic those of the Python tabulate package, which users
// of earlier versions of this tool will know.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rodaine/table"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const DefaultFormat = "simple"

// Header widths get this much extra room, as in tabulate.
const minPadding = 2

type renderFunc func(w io.Writer, headers []string, rows [][]string) error

var formats = map[string]renderFunc{
	"plain":  renderPlain,
	"simple": renderSimple,
	"grid":   renderGrid,
	"pipe":   renderPipe,
	"github": renderGithub,
	"rst":    renderRST,
	"tsv":    renderTSV,
	"html":   renderHTML,
}

// Names of all supported formats, sorted.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Writes rows under headers to w in the named format. Unknown formats
// fall back to DefaultFormat.
func Render(w io.Writer, format string, headers []string, rows [][]string) error {
	f, found := formats[format]
	if !found {
		f = formats[DefaultFormat]
	}
	return f(w, headers, rows)
}

// Column widths, enough for every cell and for each header plus
// padding.
func columnWidths(headers []string, rows [][]string, padding int) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h) + padding
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := runewidth.StringWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	return widths
}

func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func padRow(row []string, widths []int) []string {
	padded := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		padded[i] = pad(cell, widths[i])
	}
	return padded
}

func rule(widths []int, fill string, extra int) []string {
	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat(fill, w+extra)
	}
	return rules
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func renderPlain(w io.Writer, headers []string, rows [][]string) error {
	cols := make([]interface{}, len(headers))
	for i, h := range headers {
		cols[i] = h
	}

	tbl := table.New(cols...).WithWriter(w).WithPadding(minPadding)
	tbl.WithWidthFunc(runewidth.StringWidth)
	for _, row := range rows {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		tbl.AddRow(cells...)
	}
	tbl.Print()

	return nil
}

func renderSimple(w io.Writer, headers []string, rows [][]string) error {
	widths := columnWidths(headers, rows, minPadding)

	lines := []string{
		strings.Join(padRow(headers, widths), "  "),
		strings.Join(rule(widths, "-", 0), "  "),
	}
	for _, row := range rows {
		lines = append(lines, strings.Join(padRow(row, widths), "  "))
	}

	return writeLines(w, lines)
}

func renderGrid(w io.Writer, headers []string, rows [][]string) error {
	widths := columnWidths(headers, rows, minPadding)

	border := "+" + strings.Join(rule(widths, "-", 2), "+") + "+"
	line := func(cells []string) string {
		return "| " + strings.Join(padRow(cells, widths), " | ") + " |"
	}

	lines := []string{
		border,
		line(headers),
		"+" + strings.Join(rule(widths, "=", 2), "+") + "+",
	}
	for _, row := range rows {
		lines = append(lines, line(row), border)
	}
	if len(rows) == 0 {
		lines = append(lines, border)
	}

	return writeLines(w, lines)
}

func renderPipe(w io.Writer, headers []string, rows [][]string) error {
	widths := columnWidths(headers, rows, minPadding)

	aligns := make([]string, len(widths))
	for i, width := range widths {
		aligns[i] = ":" + strings.Repeat("-", width+1)
	}

	return renderMarkdown(w, headers, rows, widths, aligns)
}

func renderGithub(w io.Writer, headers []string, rows [][]string) error {
	widths := columnWidths(headers, rows, minPadding)
	return renderMarkdown(w, headers, rows, widths, rule(widths, "-", 2))
}

func renderMarkdown(w io.Writer, headers []string, rows [][]string, widths []int, separator []string) error {
	line := func(cells []string) string {
		return "| " + strings.Join(padRow(cells, widths), " | ") + " |"
	}

	lines := []string{
		line(headers),
		"|" + strings.Join(separator, "|") + "|",
	}
	for _, row := range rows {
		lines = append(lines, line(row))
	}

	// Trailing pipes must stay, so no trimming here.
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func renderRST(w io.Writer, headers []string, rows [][]string) error {
	widths := columnWidths(headers, rows, minPadding)

	border := strings.Join(rule(widths, "=", 0), "  ")
	lines := []string{
		border,
		strings.Join(padRow(headers, widths), "  "),
		border,
	}
	for _, row := range rows {
		lines = append(lines, strings.Join(padRow(row, widths), "  "))
	}
	lines = append(lines, border)

	return writeLines(w, lines)
}

func renderTSV(w io.Writer, headers []string, rows [][]string) error {
	lines := []string{strings.Join(headers, "\t")}
	for _, row := range rows {
		lines = append(lines, strings.Join(row, "\t"))
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func element(a atom.Atom, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, child := range children {
		n.AppendChild(child)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func htmlRow(cell atom.Atom, cells []string) *html.Node {
	tr := element(atom.Tr)
	for _, c := range cells {
		tr.AppendChild(element(cell, text(c)))
	}
	return tr
}

func renderHTML(w io.Writer, headers []string, rows [][]string) error {
	tbody := element(atom.Tbody)
	for _, row := range rows {
		tbody.AppendChild(htmlRow(atom.Td, row))
	}

	tbl := element(
		atom.Table,
		element(atom.Thead, htmlRow(atom.Th, headers)),
		tbody,
	)

	if err := html.Render(w, tbl); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	_, err := fmt.Fprintln(w)
	return err
}
