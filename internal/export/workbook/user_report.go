// Package workbook builds the styled per-user report spreadsheet.
package workbook

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"conveymed-analytics/internal/analytics/core/domain"
)

const (
	SheetName     = "User Report"
	maxColWidth   = 30
	headerRows    = 2
	bandFillColor = "F2F6FC"
)

// Group is one merged header cell spanning Columns.
type Group struct {
	Title   string
	Columns []string
}

// Groups lays out the report columns. Groups without columns are
// dropped, so the layout follows whatever the report discovered.
func Groups(r *domain.UserReport) []Group {
	all := []Group{
		{Title: "User", Columns: []string{"Name", "Email", "Organization", "Joined"}},
		{Title: "Activity", Columns: []string{"Sessions", "Session Time", "Last Active"}},
		{Title: "Screens Visited", Columns: r.ScreenColumns},
		{Title: "Content Categories", Columns: r.CategoryColumns},
		{Title: "Assets Viewed", Columns: r.AssetColumns},
	}
	out := all[:0]
	for _, g := range all {
		if len(g.Columns) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// Headers flattens the group columns.
func Headers(r *domain.UserReport) []string {
	var out []string
	for _, g := range Groups(r) {
		out = append(out, g.Columns...)
	}
	return out
}

// Cells returns one row's values in Headers order. Counts stay numeric.
func Cells(r *domain.UserReport, row domain.UserReportRow) []any {
	out := []any{
		row.Name, row.Email, row.OrganizationID, row.JoinedAt,
		row.Sessions, row.SessionTime, row.LastActive,
	}
	for _, c := range r.ScreenColumns {
		out = append(out, row.Screens[c])
	}
	for _, c := range r.CategoryColumns {
		out = append(out, row.Categories[c])
	}
	for _, c := range r.AssetColumns {
		out = append(out, row.Assets[c])
	}
	return out
}

// BuildUserReport renders the report as an XLSX file: a merged group
// header row, a column label row, then one banded row per user.
func BuildUserReport(r *domain.UserReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	headers := Headers(r)
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}

	col := 1
	for _, g := range Groups(r) {
		first, err := excelize.CoordinatesToCellName(col, 1)
		if err != nil {
			return nil, err
		}
		last, err := excelize.CoordinatesToCellName(col+len(g.Columns)-1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, first, g.Title); err != nil {
			return nil, err
		}
		if len(g.Columns) > 1 {
			if err := f.MergeCell(SheetName, first, last); err != nil {
				return nil, err
			}
		}
		if err := f.SetCellStyle(SheetName, first, last, styles.group); err != nil {
			return nil, err
		}
		col += len(g.Columns)
	}

	if err := writeRow(f, 2, toAny(headers)); err != nil {
		return nil, err
	}
	if len(headers) > 0 {
		if err := styleRow(f, 2, len(headers), styles.header); err != nil {
			return nil, err
		}
	}

	for i, row := range r.Rows {
		cells := Cells(r, row)
		excelRow := headerRows + 1 + i
		if err := writeRow(f, excelRow, cells); err != nil {
			return nil, err
		}
		if i%2 == 1 {
			if err := styleRow(f, excelRow, len(cells), styles.band); err != nil {
				return nil, err
			}
		}
		for j, v := range cells {
			if n := utf8.RuneCountInString(fmt.Sprint(v)); n > widths[j] {
				widths[j] = n
			}
		}
	}

	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, float64(min(w+2, maxColWidth))); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      headerRows,
		TopLeftCell: "B3",
		ActivePane:  "bottomRight",
	}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type styleSet struct {
	group  int
	header int
	band   int
}

func newStyles(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error

	s.group, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E78"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return s, err
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true},
		Border: []excelize.Border{
			{Type: "bottom", Color: "8EA9DB", Style: 1},
		},
	})
	if err != nil {
		return s, err
	}

	s.band, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{bandFillColor}, Pattern: 1},
	})
	return s, err
}

func writeRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(SheetName, cell, &values)
}

func styleRow(f *excelize.File, row, cols, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, first, last, style)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
