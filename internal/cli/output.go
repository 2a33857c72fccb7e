package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"github.com/preston-bernstein/f2p-catalog-service/internal/catalog"
	domaingames "github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
)

// Format selects how command results are printed.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a --output value. Empty means auto-detect.
func ParseFormat(raw string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	switch f {
	case FormatTable, FormatJSON, FormatYAML, "":
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (table, json, yaml)", raw)
	}
}

// DetectFormat returns explicit when set, otherwise table on a terminal and JSON for pipes.
func DetectFormat(explicit Format) Format {
	if explicit != "" {
		return explicit
	}
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return FormatTable
	}
	return FormatJSON
}

// tableData is a rendered table plus an optional trailing summary line.
type tableData struct {
	headers []string
	rows    [][]string
	summary string
}

// render prints value as JSON or YAML, or as the table built by tbl.
func render(w io.Writer, format Format, value any, tbl func() tableData) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case FormatYAML:
		out, err := yaml.MarshalWithOptions(value, yaml.Indent(2), yaml.IndentSequence(false))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return renderTable(w, tbl())
	}
}

func renderTable(w io.Writer, data tableData) error {
	t := tablewriter.NewTable(w)
	headers := make([]any, len(data.headers))
	for i, h := range data.headers {
		headers[i] = h
	}
	t.Header(headers...)
	for _, row := range data.rows {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		if err := t.Append(cells...); err != nil {
			return err
		}
	}
	if err := t.Render(); err != nil {
		return err
	}
	if data.summary != "" {
		_, err := fmt.Fprintln(w, data.summary)
		return err
	}
	return nil
}

func pageTable(p domaingames.PageResponse) tableData {
	td := tableData{headers: gameHeaders()}
	for _, g := range p.Games {
		td.rows = append(td.rows, gameRow(g))
	}
	td.summary = resultsSummary(p)
	return td
}

// resultsSummary mirrors the "Found N games" line shown under a search box.
func resultsSummary(p domaingames.PageResponse) string {
	noun := "games"
	if p.Total == 1 {
		noun = "game"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Showing %d of %d %s", len(p.Games), p.Total, noun)
	if p.Filter != "" && p.Filter != string(catalog.CategoryAll) {
		fmt.Fprintf(&b, " in %s", catalog.Category(p.Filter).Label())
	}
	if p.Search != "" {
		fmt.Fprintf(&b, " for %q", p.Search)
	}
	if p.HasMore {
		b.WriteString(" (use --pages to see more)")
	}
	return b.String()
}

func featuredTable(f domaingames.FeaturedResponse) tableData {
	td := tableData{headers: []string{"ID", "Title", "Platform", "Summary"}}
	for _, g := range f.Games {
		td.rows = append(td.rows, []string{strconv.Itoa(g.ID), g.Title, string(g.PlatformKind()), g.Excerpt(excerptLength)})
	}
	return td
}

func gameTable(g domaingames.Game) tableData {
	return tableData{
		headers: []string{"Field", "Value"},
		rows: [][]string{
			{"ID", strconv.Itoa(g.ID)},
			{"Title", g.Title},
			{"Genre", g.Genre},
			{"Platform", g.Platform},
			{"Publisher", g.Publisher},
			{"Developer", g.Developer},
			{"Released", orDash(g.ReleaseDate.String())},
			{"URL", g.GameURL},
			{"Description", orDash(g.ShortDescription)},
		},
	}
}

func categoriesTable(c domaingames.CategoriesResponse) tableData {
	td := tableData{headers: []string{"ID", "Label"}}
	for _, info := range c.Categories {
		td.rows = append(td.rows, []string{info.ID, info.Label})
	}
	return td
}

func gameHeaders() []string {
	return []string{"ID", "Title", "Genre", "Platform", "Released"}
}

func gameRow(g domaingames.Game) []string {
	return []string{strconv.Itoa(g.ID), g.Title, g.Genre, string(g.PlatformKind()), orDash(g.ReleaseDate.String())}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
