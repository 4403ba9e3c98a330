// Package importer is the shared CSV import pipeline: one header parser, one
// row-accumulation loop, per-entity row parsers. A bad row is recorded and
// skipped, never fatal; partial success is the designed behavior.
package importer

import (
	"fmt"
	"strings"
	"time"
)

// PreviewRows caps how many data rows a preview parses before the user
// confirms a full import.
const PreviewRows = 5

// Summary reports the outcome of an import run.
type Summary struct {
	SuccessCount int      `json:"successCount"`
	ErrorCount   int      `json:"errorCount"`
	Errors       []string `json:"errors,omitempty"`
}

// MissingFieldsError reports required header columns absent from the first
// line. It aborts the import before any row is parsed.
type MissingFieldsError struct {
	Missing []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ParseHeader maps required column names to their positions in the first CSV
// line. Matching is case-insensitive.
func ParseHeader(line string, required []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, col := range splitRow(line) {
		index[strings.ToLower(col)] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Missing: missing}
	}
	return index, nil
}

// splitRow is a literal comma split. Embedded commas in a field are not
// supported; that matches the import format this pipeline accepts.
func splitRow(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func field(values []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(values) {
		return ""
	}
	return values[i]
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	time.RFC3339,
}

// parseDate is deliberately permissive: an unparsable date falls back to now
// rather than rejecting the row.
func parseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Now()
}

type rowFunc[T any] func(values []string, index map[string]int) (T, error)

// run drives the shared loop: header, then every non-blank data row through
// parse, accumulating records and row errors. limit > 0 stops after that many
// data rows (preview mode).
func run[T any](data string, required []string, limit int, parse rowFunc[T]) ([]T, Summary, error) {
	lines := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")

	// consumed counts every line up to and including the header, blank
	// leaders included, so row errors report the absolute source line.
	header := ""
	consumed := 0
	for consumed < len(lines) {
		header = strings.TrimSpace(lines[consumed])
		consumed++
		if header != "" {
			break
		}
	}
	if header == "" {
		return nil, Summary{}, fmt.Errorf("import data is empty")
	}

	index, err := ParseHeader(header, required)
	if err != nil {
		return nil, Summary{}, err
	}

	var (
		records   []T
		summary   Summary
		processed int
	)
	for lineNo, line := range lines[consumed:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if limit > 0 && processed >= limit {
			break
		}
		processed++

		rec, rowErr := parse(splitRow(line), index)
		if rowErr != nil {
			summary.ErrorCount++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", consumed+lineNo+1, rowErr))
			continue
		}
		summary.SuccessCount++
		records = append(records, rec)
	}
	return records, summary, nil
}
