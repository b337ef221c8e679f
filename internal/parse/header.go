package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrFormat rejects a whole file: the header does not match any accepted
// layout. Zero rows are read when it fires.
var ErrFormat = errors.New("unrecognized file format")

const (
	// entityWidth is the fixed entity-descriptor block: date columns start
	// after it.
	entityWidth = 10
	// trailingSummaryWidth is the "Итого" block at the far right, excluded
	// from date detection.
	trailingSummaryWidth = 3
	// dateStride is the width of one (quantity, amount) column pair.
	dateStride = 2

	dateLayout = "02.01.2006"
)

var datePattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}`)

// DateColumn pairs one calendar date with the columns carrying its quantity
// and amount cells. The quantity column is the date's own column, amount is
// the immediately following one.
type DateColumn struct {
	QuantityCol int
	AmountCol   int
	Date        time.Time
}

// HeaderLayout describes how a file's header block was read. DataStart is
// the index of the first data row in the raw row stream: 2 for a two-line
// super-header (date labels on line 1, quantity/amount sub-labels on
// line 2), 1 for a conventional single header row.
type HeaderLayout struct {
	SuperHeader bool
	DataStart   int
	Dates       []DateColumn
}

// AnalyzeHeader sniffs the header block of the raw rows and builds the
// ordered date-column map. Entries are monotonic in column index, carry only
// valid calendar dates, and duplicate dates are preserved as separate
// entries. It fails with ErrFormat when the file is narrower than the entity
// descriptor block or when no header token matches the date pattern.
func AnalyzeHeader(rows [][]string) (*HeaderLayout, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrFormat)
	}
	first := rows[0]
	if len(first) < entityWidth {
		return nil, fmt.Errorf("%w: %d columns, need at least %d", ErrFormat, len(first), entityWidth)
	}

	var dates []DateColumn
	for col := entityWidth; col < len(first)-trailingSummaryWidth; col += dateStride {
		token := strings.TrimSpace(first[col])
		if !datePattern.MatchString(token) {
			continue
		}
		date, err := time.Parse(dateLayout, token[:len(dateLayout)])
		if err != nil {
			// Matches the pattern but is not a real calendar date,
			// e.g. "45.13.2025". Not a date column.
			continue
		}
		dates = append(dates, DateColumn{QuantityCol: col, AmountCol: col + 1, Date: date})
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: no date columns in header", ErrFormat)
	}

	layout := &HeaderLayout{Dates: dates, DataStart: 1}
	if len(rows) > 1 && isSubLabelRow(rows[1], dates[0]) {
		layout.SuperHeader = true
		layout.DataStart = 2
	}
	return layout, nil
}

// isSubLabelRow reports whether a row is the second line of a super-header:
// quantity/amount sub-labels sitting under the first date column.
func isSubLabelRow(row []string, first DateColumn) bool {
	if first.QuantityCol >= len(row) {
		return false
	}
	label := strings.ToLower(strings.TrimSpace(row[first.QuantityCol]))
	return strings.Contains(label, "колич") || strings.Contains(label, "quantity")
}
