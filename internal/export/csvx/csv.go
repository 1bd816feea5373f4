// Package csvx renders dashboard sections as CSV text blocks.
//
// A section is a quoted title line, a blank line, an optional Metric,Value
// block and any number of tables. Sections are separated by a "---" line
// and the document starts with a UTF-8 byte order mark.
package csvx

import "strings"

// BOM lets spreadsheet tools detect UTF-8.
const BOM = "\ufeff"

const separator = "---"

// EscapeField quotes s when it contains a comma, a quote or a line break,
// doubling embedded quotes. Other values are written as is.
func EscapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Line joins escaped fields with commas.
func Line(fields ...string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = EscapeField(f)
	}
	return strings.Join(escaped, ",")
}

type Stat struct {
	Metric string
	Value  string
}

// Table is a header row plus data rows. Title is optional.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

type Section struct {
	Title  string
	Stats  []Stat
	Tables []Table
}

// RenderSection renders one block without the BOM.
func RenderSection(s Section) string {
	var b strings.Builder
	b.WriteString(`"` + strings.ReplaceAll(s.Title, `"`, `""`) + `"`)
	b.WriteString("\n\n")

	if len(s.Stats) > 0 {
		b.WriteString(Line("Metric", "Value"))
		b.WriteByte('\n')
		for _, st := range s.Stats {
			b.WriteString(Line(st.Metric, st.Value))
			b.WriteByte('\n')
		}
	}

	for i, t := range s.Tables {
		if len(t.Headers) == 0 {
			continue
		}
		if i > 0 || len(s.Stats) > 0 {
			b.WriteByte('\n')
		}
		if t.Title != "" {
			b.WriteString(EscapeField(t.Title))
			b.WriteByte('\n')
		}
		b.WriteString(Line(t.Headers...))
		b.WriteByte('\n')
		for _, row := range t.Rows {
			b.WriteString(Line(row...))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// RenderSections builds a full CSV document.
func RenderSections(sections ...Section) []byte {
	blocks := make([]string, 0, len(sections))
	for _, s := range sections {
		blocks = append(blocks, RenderSection(s))
	}
	return []byte(BOM + strings.Join(blocks, "\n"+separator+"\n\n"))
}
