// README: XLSX codec for batch input sheets and the rate output workbook.
package batch

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const OutputSheet = "Rates"

var outputHeaders = []any{
	"New Destination", "Nearest Hub", "Distance (km)",
	"10 Tyre Rate", "12 Tyre Rate", "14 Tyre Rate",
}

// ReadSheet reads the first worksheet. The first row holds headers; blank
// cells are kept as "" and fully blank rows are dropped. Cells are read as
// stored, ignoring number formats.
func ReadSheet(r io.Reader) (Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Sheet{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) == 0 {
		return Sheet{}, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(names[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return Sheet{}, fmt.Errorf("read sheet %q: %w", names[0], err)
	}
	if len(rows) == 0 {
		return Sheet{}, nil
	}

	s := Sheet{Headers: rows[0]}
	for _, cells := range rows[1:] {
		row := make(Row, len(s.Headers))
		blank := true
		for i, h := range s.Headers {
			if h == "" {
				continue
			}
			if _, dup := row[h]; dup {
				continue
			}
			v := ""
			if i < len(cells) {
				v = cells[i]
			}
			if strings.TrimSpace(v) != "" {
				blank = false
			}
			row[h] = v
		}
		if !blank {
			s.Rows = append(s.Rows, row)
		}
	}
	return s, nil
}

// WriteOutput writes rows to a single "Rates" sheet.
func WriteOutput(w io.Writer, rows []OutputRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OutputSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(OutputSheet, "A1", &outputHeaders); err != nil {
		return err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{r.Destination, r.NearestHub, r.DistanceKm, r.Tyre10Rate, r.Tyre12Rate, r.Tyre14Rate}
		if err := f.SetSheetRow(OutputSheet, cell, &values); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}
