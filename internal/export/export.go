// Package export writes the remedy catalog as a spreadsheet.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" and "xlsx", case-insensitively. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

func (f Format) Filename() string {
	return "remedies." + string(f)
}

// list cells join items with this separator
const listSep = "; "

var header = []string{
	"ID", "Name", "Category", "Difficulty", "Effectiveness",
	"Preparation Time", "Relief Time", "Description",
	"Ingredients", "Instructions", "Precautions",
}

func row(r domain.Remedy) []string {
	return []string{
		r.ID, r.Name, r.Category, string(r.Difficulty), strconv.Itoa(r.Effectiveness),
		r.PreparationTime, r.ReliefTime, r.Description,
		strings.Join(r.Ingredients, listSep),
		strings.Join(r.Instructions, listSep),
		strings.Join(r.Precautions, listSep),
	}
}

// Write encodes remedies to w in format f.
func Write(w io.Writer, f Format, remedies []domain.Remedy) error {
	switch f {
	case FormatCSV:
		return writeCSV(w, remedies)
	case FormatXLSX:
		return writeXLSX(w, remedies)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

func writeCSV(w io.Writer, remedies []domain.Remedy) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range remedies {
		if err := cw.Write(row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const sheet = "Sheet1"

func writeXLSX(w io.Writer, remedies []domain.Remedy) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	if err := sw.SetRow("A1", toCells(header)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range remedies {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		cells := toCells(row(r))
		// keep effectiveness numeric so it sorts in spreadsheet tools
		cells[4] = r.Effectiveness
		if err := sw.SetRow(cell, cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func toCells(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
