// Package export writes a reading list in shareable formats.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/jeanpaul/shelf/internal/book"
)

const (
	FormatMarkdown = "md"
	FormatYAML     = "yaml"
	FormatXLSX     = "xlsx"
)

// FormatFor infers the format from a file extension.
func FormatFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("export: cannot infer format from %q (use .md, .yaml or .xlsx)", path)
}

// Write renders entries to w in the given format.
func Write(w io.Writer, format string, entries []book.Record) error {
	switch format {
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(entries))
		return err
	case FormatYAML:
		return YAML(w, entries)
	case FormatXLSX:
		return XLSX(w, entries)
	default:
		return fmt.Errorf("export: unknown format %q", format)
	}
}

// Markdown renders entries as a table, in list order.
func Markdown(entries []book.Record) string {
	var b strings.Builder
	b.WriteString("# Reading List\n\n")
	if len(entries) == 0 {
		b.WriteString("No books added yet. Search for a book to add.\n")
		return b.String()
	}
	b.WriteString("| # | Title | Author | Reading Level |\n")
	b.WriteString("|---|-------|--------|---------------|\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", i+1, escapeCell(e.Title), escapeCell(e.Author), escapeCell(e.ReadingLevel.String()))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderMarkdown styles Markdown(entries) for a terminal of the given width.
func RenderMarkdown(entries []book.Record, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(Markdown(entries))
}

// YAML writes entries as a YAML sequence, readable back as a catalog file.
func YAML(w io.Writer, entries []book.Record) error {
	if entries == nil {
		entries = []book.Record{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("export: yaml: %w", err)
	}
	return enc.Close()
}

const sheet = "Reading List"

// XLSX writes a one-sheet workbook with a header row.
func XLSX(w io.Writer, entries []book.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("export: xlsx: %w", err)
	}

	header := []any{"Title", "Author", "Reading Level", "Cover"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("export: xlsx: %w", err)
	}
	for i, e := range entries {
		var level any = e.ReadingLevel.String()
		if e.ReadingLevel.IsNumber() {
			if n, err := e.ReadingLevel.Float(); err == nil {
				level = n
			}
		}
		row := []any{e.Title, e.Author, level, e.CoverPhotoURL}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: xlsx: %w", err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: xlsx: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", style); err != nil {
		return fmt.Errorf("export: xlsx: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", "B", 32); err != nil {
		return fmt.Errorf("export: xlsx: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: xlsx: %w", err)
	}
	return nil
}
