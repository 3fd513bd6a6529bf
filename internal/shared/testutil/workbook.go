package testutil

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"gasviz/pkg/contracts/domain"
)

// Row is one observation row for a test workbook. Prices are written as
// numbers; nil leaves the cell empty.
type Row struct {
	StationID    string
	StationName  string
	Address      string
	Location     string
	TimeTag      string
	QueryTime    string
	RegularPrice *float64
	PremiumPrice *float64

	// QueryTimeValue, when set, is written as a native date cell instead of QueryTime
	QueryTimeValue time.Time
	// QueryTimeNumFmt is a built-in number format id for the Query Time cell
	QueryTimeNumFmt int
	// PriceNumFmt is a custom number format applied to both price cells
	PriceNumFmt string
}

// P returns a pointer to a price literal
func P(v float64) *float64 {
	return &v
}

// Loc formats a location cell the way the cleaning step serializes it
func Loc(lat, lon float64) string {
	return fmt.Sprintf("{'Latitude': %v, 'Longitude': %v}", lat, lon)
}

// WriteWorkbook saves rows under the standard header to dir/name and returns the path
func WriteWorkbook(t *testing.T, dir, name string, rows []Row) string {
	t.Helper()
	return WriteWorkbookWithHeader(t, dir, name, domain.ObservationColumns, rows)
}

// WriteWorkbookWithHeader saves rows under a custom header. Cells are written
// in the standard column order regardless of header.
func WriteWorkbookWithHeader(t *testing.T, dir, name string, header []string, rows []Row) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			t.Fatalf("set header: %v", err)
		}
	}

	for i, r := range rows {
		values := []interface{}{r.StationID, r.StationName, r.Address, r.Location, r.TimeTag, r.QueryTime, nil, nil}
		if !r.QueryTimeValue.IsZero() {
			values[5] = r.QueryTimeValue
		}
		if r.RegularPrice != nil {
			values[6] = *r.RegularPrice
		}
		if r.PremiumPrice != nil {
			values[7] = *r.PremiumPrice
		}
		for col, v := range values {
			if v == nil || v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set cell %s: %v", cell, err)
			}
		}

		if r.QueryTimeNumFmt != 0 {
			setStyle(t, f, sheet, 6, i+2, &excelize.Style{NumFmt: r.QueryTimeNumFmt})
		}
		if r.PriceNumFmt != "" {
			numFmt := r.PriceNumFmt
			setStyle(t, f, sheet, 7, i+2, &excelize.Style{CustomNumFmt: &numFmt})
			setStyle(t, f, sheet, 8, i+2, &excelize.Style{CustomNumFmt: &numFmt})
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	return path
}

func setStyle(t *testing.T, f *excelize.File, sheet string, col, row int, style *excelize.Style) {
	t.Helper()
	styleID, err := f.NewStyle(style)
	if err != nil {
		t.Fatalf("new style: %v", err)
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		t.Fatalf("cell name: %v", err)
	}
	if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
		t.Fatalf("set style %s: %v", cell, err)
	}
}
