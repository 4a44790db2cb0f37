package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/xuri/excelize/v2"
)

const fileField = "file"

// Header names accepted for each column, lower-cased.
var headerAliases = map[string][]string{
	"date": {"date", "day"},
	"type": {"type", "action", "event"},
	"time": {"time", "timestamp"},
}

// ReadClockLogs reads Date/Type/Time rows from the first sheet of an xlsx
// workbook. Columns may appear in any order; blank rows are skipped. Row
// numbers are 1-based sheet rows so errors point at the cell the user sees.
func ReadClockLogs(r io.Reader, maxRows int) ([]timesheet.RawLogRow, error) {
	var errs validator.ValidationErrors

	f, err := excelize.OpenReader(r)
	if err != nil {
		errs.Add(fileField, "file must be a valid .xlsx workbook")
		return nil, errs
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		errs.Add(fileField, "workbook has no worksheet")
		return nil, errs
	}

	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheetName, err)
	}
	if len(excelRows) < 2 {
		errs.Add(fileField, "worksheet has no data rows (the first row is the header)")
		return nil, errs
	}

	colIndex := parseHeaderIndex(excelRows[0])
	for _, col := range []string{"date", "type", "time"} {
		if colIndex[col] < 0 {
			errs.Add(fileField, fmt.Sprintf("header is missing the %s column", strings.ToUpper(col[:1])+col[1:]))
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	var rows []timesheet.RawLogRow
	for i := 1; i < len(excelRows); i++ {
		row := excelRows[i]
		item := timesheet.RawLogRow{
			Date: normalizeDateCell(cellValue(row, colIndex["date"])),
			Type: cellValue(row, colIndex["type"]),
			Time: normalizeTimeCell(cellValue(row, colIndex["time"])),
			Row:  i + 1,
		}

		if item.Date == "" && item.Type == "" && item.Time == "" {
			continue
		}
		rows = append(rows, item)
	}

	if len(rows) == 0 {
		errs.Add(fileField, "worksheet has no data rows (the first row is the header)")
		return nil, errs
	}
	if maxRows > 0 && len(rows) > maxRows {
		errs.Add(fileField, fmt.Sprintf("worksheet must not exceed %d rows", maxRows))
		return nil, errs
	}

	return rows, nil
}

func parseHeaderIndex(header []string) map[string]int {
	idx := map[string]int{"date": -1, "type": -1, "time": -1}
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		for col, aliases := range headerAliases {
			if idx[col] >= 0 {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					idx[col] = i
				}
			}
		}
	}
	return idx
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// normalizeDateCell turns a raw Excel date serial into YYYY-MM-DD.
// Formatted cells pass through unchanged.
func normalizeDateCell(value string) string {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil || serial < 1 {
		return value
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return value
	}
	return t.Format(timesheet.DateLayout)
}

// normalizeTimeCell turns a raw day fraction (0.375 = 09:00) into HH:MM:SS.
func normalizeTimeCell(value string) string {
	fraction, err := strconv.ParseFloat(value, 64)
	if err != nil || fraction < 0 || fraction >= 1 {
		return value
	}
	seconds := min(int64(fraction*86400+0.5), 86399)
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}
