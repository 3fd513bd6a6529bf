package dataprocessing

import (
	"errors"
	"io/fs"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	apperrors "gasviz/internal/errors"
	"gasviz/pkg/contracts/domain"
)

// LoadObservations reads the first sheet of the workbook at filePath.
// The first row must hold the column headers; every column in
// domain.ObservationColumns must be present, extra columns are ignored.
func LoadObservations(filePath string) ([]domain.Observation, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError("input workbook", err).WithContext("path", filePath)
		}
		return nil, apperrors.NewStorageError("failed to open workbook", err).WithContext("path", filePath)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewValidationError("workbook has no sheets").WithContext("path", filePath)
	}
	sheetName := sheets[0]

	// Raw values keep full price precision and leave date cells as serial
	// numbers instead of their display format
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read sheet", err).WithContext("sheet", sheetName)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewValidationError("sheet has no header row").WithContext("sheet", sheetName)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required columns: " + strings.Join(missing, ", ")).
			WithContext("sheet", sheetName)
	}

	// excelize trims trailing empty cells, so pad every row to the header width
	records := make([][]string, 0, len(rows))
	records = append(records, header)
	for _, row := range rows[1:] {
		padded := make([]string, len(header))
		copy(padded, row)
		if isBlank(padded) {
			continue
		}
		records = append(records, padded)
	}

	slog.Debug("Read workbook",
		slog.String("path", filePath),
		slog.String("sheet", sheetName),
		slog.Int("data_rows", len(records)-1))

	if len(records) == 1 {
		return []domain.Observation{}, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, apperrors.NewParsingError("failed to build table", df.Err).WithContext("sheet", sheetName)
	}

	df = df.Select(domain.ObservationColumns)
	if df.Err != nil {
		return nil, apperrors.NewValidationError("failed to select columns: " + df.Err.Error())
	}

	table := df.Records()
	observations := make([]domain.Observation, 0, len(table)-1)
	for _, rec := range table[1:] {
		observations = append(observations, domain.Observation{
			StationID:    strings.TrimSpace(rec[0]),
			StationName:  rec[1],
			Address:      rec[2],
			Location:     rec[3],
			TimeTag:      rec[4],
			QueryTime:    strings.TrimSpace(rec[5]),
			RegularPrice: ParsePrice(rec[6]),
			PremiumPrice: ParsePrice(rec[7]),
		})
	}

	return observations, nil
}

// ParsePrice parses a price cell. Empty, non-numeric and NaN cells are missing.
func ParsePrice(cell string) domain.Price {
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if s == "" {
		return domain.MissingPrice()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return domain.MissingPrice()
	}
	return domain.NewPrice(v)
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, col := range domain.ObservationColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
