package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// cellCleaner strips surrounding quotes and every whitespace variant the
// upstream export is known to emit, including non-breaking and thin spaces.
var cellCleaner = strings.NewReplacer(
	`"`, "",
	" ", "",
	"\t", "",
	" ", "",
	" ", "",
)

// ParseNumeric normalizes one locale-ambiguous numeric cell. Blank cells and
// null markers resolve to ok=false with a nil error. An unparseable cell also
// resolves to ok=false but reports err so the caller can log a diagnostic;
// it must never abort the containing row.
//
// Comma handling follows the export's convention: when the fragment after the
// final comma is 1-2 digits, that comma is the decimal separator and all
// earlier commas group thousands ("1 234,56" -> 1234.56). Otherwise every
// comma groups thousands ("12,345" -> 12345).
func ParseNumeric(raw string) (value float64, ok bool, err error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" || strings.EqualFold(cleaned, "nan") {
		return 0, false, nil
	}

	cleaned = cellCleaner.Replace(cleaned)
	if cleaned == "" {
		return 0, false, nil
	}

	if strings.Contains(cleaned, ",") {
		parts := strings.Split(cleaned, ",")
		last := parts[len(parts)-1]
		if len(last) >= 1 && len(last) <= 2 && isDigits(last) {
			cleaned = strings.Join(parts[:len(parts)-1], "") + "." + last
		} else {
			cleaned = strings.Join(parts, "")
		}
	}

	value, parseErr := strconv.ParseFloat(cleaned, 64)
	if parseErr != nil {
		return 0, false, fmt.Errorf("parse numeric cell %q: %w", raw, parseErr)
	}
	return value, true, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
