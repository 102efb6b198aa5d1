package importer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"smart_events_app/internal/app"
)

// parseJSON decodes the whole payload as an array of record rows. Any decode
// failure aborts the import; there is no partial tolerance at this stage.
func parseJSON(data []byte) ([]app.RawRow, error) {
	var rows []app.RawRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of records: %v", ErrMalformedInput, err)
	}
	return rows, nil
}

// parseCSV reads a header line and zips every subsequent non-blank line
// against it positionally, bounded by the shorter side. Cells whose
// normalized header is empty or whose value is empty are dropped; rows that
// end up empty are skipped entirely.
func parseCSV(data []byte, rules []headerRule) ([]app.RawRow, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("%w: CSV file is empty", ErrEmptyFile)
	}
	headers := splitCSVLine(scanner.Text())

	rows := []app.RawRow{}
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := splitCSVLine(line)

		row := app.RawRow{}
		for i := 0; i < len(headers) && i < len(values); i++ {
			header := normalizeHeader(headers[i], rules)
			value := strings.TrimSpace(values[i])
			if header != "" && value != "" {
				row[header] = value
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return rows, nil
}

// splitCSVLine splits on commas honoring double-quote escaping: a quote
// inside a quoted field is escaped by doubling it. Deliberately more lenient
// than encoding/csv, which rejects stray quotes the source format tolerates.
func splitCSVLine(line string) []string {
	values := []string{}
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			values = append(values, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	values = append(values, current.String())
	return values
}

// parseXLSX reads the first sheet of an .xlsx workbook: row 0 is headers,
// every later row becomes a raw mapping under the same skip rules as CSV.
func parseXLSX(data []byte, rules []headerRule) ([]app.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: Excel file must have at least a header row and one data row", ErrEmptyFile)
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if len(cells) < 2 {
		return nil, fmt.Errorf("%w: Excel file must have at least a header row and one data row", ErrEmptyFile)
	}

	headers := cells[0]
	rows := []app.RawRow{}
	for _, cellRow := range cells[1:] {
		row := app.RawRow{}
		for j := 0; j < len(headers) && j < len(cellRow); j++ {
			header := normalizeHeader(headers[j], rules)
			value := cellString(cellRow[j])
			if header != "" && value != "" {
				row[header] = value
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// parseXLS is parseXLSX for the legacy binary workbook format.
func parseXLS(data []byte, rules []headerRule) ([]app.RawRow, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil || sheet.MaxRow < 1 {
		return nil, fmt.Errorf("%w: Excel file must have at least a header row and one data row", ErrEmptyFile)
	}

	headerRow := sheet.Row(0)
	if headerRow == nil {
		return nil, fmt.Errorf("%w: Excel file must have at least a header row and one data row", ErrEmptyFile)
	}
	headers := []string{}
	for j := headerRow.FirstCol(); j < headerRow.LastCol(); j++ {
		headers = append(headers, headerRow.Col(j))
	}

	rows := []app.RawRow{}
	for i := 1; i <= int(sheet.MaxRow); i++ {
		r := sheet.Row(i)
		if r == nil {
			continue
		}
		row := app.RawRow{}
		for j := 0; j < len(headers); j++ {
			header := normalizeHeader(headers[j], rules)
			value := cellString(r.Col(j))
			if header != "" && value != "" {
				row[header] = value
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// cellString normalizes a spreadsheet cell value: trimmed text, booleans in
// lower case, and integral numbers without a trailing .0.
func cellString(raw string) string {
	v := strings.TrimSpace(raw)
	if strings.EqualFold(v, "true") || strings.EqualFold(v, "false") {
		return strings.ToLower(v)
	}
	if strings.Contains(v, ".") {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
	}
	return v
}
