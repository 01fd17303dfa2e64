package leagues

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// readTable reads a CSV with a header row into a column index and data rows.
// Duplicate header names keep the first occurrence, matching how the source
// exports behave.
func readTable(r io.Reader) (map[string]int, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty csv: missing header row")
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		name = strings.TrimSpace(name)
		if _, seen := header[name]; !seen {
			header[name] = i
		}
	}
	return header, records[1:], nil
}

// requireColumns fails fast when a source table is missing identity columns.
// This is a loader configuration error and must surface before the data
// reaches the computation core.
func requireColumns(header map[string]int, cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := header[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// cell returns the trimmed value of a named column in a row, or "" when the
// column is absent or the row is short.
func cell(row []string, header map[string]int, col string) string {
	idx, ok := header[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseFloatCell coerces a stat cell to a number. Failures mean the value is
// absent — never zero, never an error for the whole load.
func parseFloatCell(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z",
	"01/02/2006",
	"Jan 2, 2006",
	"Jan 02, 2006",
}

// parseDateCell parses the game-date column across the formats the source
// feeds use. NBA exports upper-case month names ("OCT 24, 2025").
func parseDateCell(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	normalized := s
	if len(s) > 3 && s[0] >= 'A' && s[0] <= 'Z' && s[1] >= 'A' && s[1] <= 'Z' {
		lower := strings.ToLower(s)
		normalized = strings.ToUpper(lower[:1]) + lower[1:]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// collectStats pulls the league's stat columns from a row. Non-numeric and
// empty cells stay absent.
func collectStats(row []string, header map[string]int, columns map[string]string) map[string]float64 {
	stats := make(map[string]float64, len(columns))
	for key, col := range columns {
		if v, ok := parseFloatCell(cell(row, header, col)); ok {
			stats[key] = v
		}
	}
	return stats
}
