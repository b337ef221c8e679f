package parse

import (
	"strings"
	"time"
)

// FieldOffsets lists, per logical entity field, the column offsets its value
// may occupy. Upstream export templates shift the entity block by up to one
// column between file variants, so adjacent fields deliberately overlap; the
// first non-blank candidate wins. Kept as configuration data so a new file
// variant is an additive change.
type FieldOffsets struct {
	Buyer           []int
	Manager         []int
	Region          []int
	Product         []int
	Characteristics []int
	Category        []int
}

func DefaultFieldOffsets() FieldOffsets {
	return FieldOffsets{
		Buyer:           []int{3, 4, 5},
		Manager:         []int{4, 5, 6},
		Region:          []int{6, 7, 8},
		Product:         []int{7, 8, 9},
		Characteristics: []int{8, 9, 10},
		Category:        []int{9, 10, 11},
	}
}

// DefaultSubtotalMarkers match spreadsheet subtotal and grand-total rows.
func DefaultSubtotalMarkers() []string {
	return []string{"итого", "total"}
}

// Row is a typed view over one raw data row with explicit present/absent
// cell semantics.
type Row struct {
	cells []string
}

func NewRow(cells []string) Row {
	return Row{cells: cells}
}

// Cell returns the trimmed value at column i and whether the column exists
// and is non-blank.
func (r Row) Cell(i int) (string, bool) {
	if i < 0 || i >= len(r.cells) {
		return "", false
	}
	value := strings.TrimSpace(r.cells[i])
	return value, value != ""
}

// Raw returns the untrimmed cell text, or "" past the row's width.
func (r Row) Raw(i int) string {
	if i < 0 || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

// first resolves an offset candidate list to its first non-blank value, or
// "" when every candidate is blank.
func (r Row) first(offsets []int) string {
	for _, i := range offsets {
		if value, ok := r.Cell(i); ok {
			return value
		}
	}
	return ""
}

type RowClass int

const (
	RowValid RowClass = iota
	// RowStructural: a required field (head contractor, buyer, product)
	// resolved to blank.
	RowStructural
	// RowSubtotal: the row is a spreadsheet subtotal or grand-total line.
	RowSubtotal
)

// EntityFields are the resolved entity descriptors of one data row.
type EntityFields struct {
	HeadContractor  string
	Buyer           string
	Manager         string
	Region          string
	ProductName     string
	Characteristics string
	Category        string
}

// OrderTuple is one emitted transaction fact: quantity is always present and
// strictly positive, amount may be nil.
type OrderTuple struct {
	Date     time.Time
	Quantity float64
	Amount   *float64
}

// CellDiagnostic records a numeric cell that failed to parse. Non-fatal; the
// cell is treated as absent.
type CellDiagnostic struct {
	Column int
	Raw    string
	Err    error
}

// Classifier resolves entity fields positionally and filters structurally
// invalid and subtotal rows.
type Classifier struct {
	offsets FieldOffsets
	markers []string
}

func NewClassifier(offsets FieldOffsets, subtotalMarkers []string) *Classifier {
	markers := make([]string, 0, len(subtotalMarkers))
	for _, m := range subtotalMarkers {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			markers = append(markers, m)
		}
	}
	return &Classifier{offsets: offsets, markers: markers}
}

// Classify resolves the entity fields of one row and decides whether the row
// produces orders at all. Head contractor is always the first column; the
// remaining fields scan their candidate offsets.
func (c *Classifier) Classify(row Row) (EntityFields, RowClass) {
	fields := EntityFields{
		Buyer:           row.first(c.offsets.Buyer),
		Manager:         row.first(c.offsets.Manager),
		Region:          row.first(c.offsets.Region),
		ProductName:     row.first(c.offsets.Product),
		Characteristics: row.first(c.offsets.Characteristics),
		Category:        row.first(c.offsets.Category),
	}
	fields.HeadContractor, _ = row.Cell(0)

	if fields.HeadContractor == "" || fields.Buyer == "" || fields.ProductName == "" {
		return fields, RowStructural
	}
	if c.isSubtotal(fields.HeadContractor) || c.isSubtotal(fields.ProductName) {
		return fields, RowSubtotal
	}
	return fields, RowValid
}

func (c *Classifier) isSubtotal(value string) bool {
	lower := strings.ToLower(value)
	for _, marker := range c.markers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Tuples walks the date-column map over one valid row and emits a tuple per
// date whose quantity parsed to a strictly positive value. A date with
// quantity absent or <= 0 means "no order on that date" and emits nothing,
// even when the amount cell is populated. Unparseable cells come back as
// diagnostics and are otherwise treated as absent.
func (c *Classifier) Tuples(row Row, dates []DateColumn) ([]OrderTuple, []CellDiagnostic) {
	var (
		tuples []OrderTuple
		diags  []CellDiagnostic
	)
	for _, dc := range dates {
		quantity, ok, err := ParseNumeric(row.Raw(dc.QuantityCol))
		if err != nil {
			diags = append(diags, CellDiagnostic{Column: dc.QuantityCol, Raw: row.Raw(dc.QuantityCol), Err: err})
		}
		if !ok || quantity <= 0 {
			continue
		}

		tuple := OrderTuple{Date: dc.Date, Quantity: quantity}
		amount, ok, err := ParseNumeric(row.Raw(dc.AmountCol))
		if err != nil {
			diags = append(diags, CellDiagnostic{Column: dc.AmountCol, Raw: row.Raw(dc.AmountCol), Err: err})
		}
		if ok {
			tuple.Amount = &amount
		}
		tuples = append(tuples, tuple)
	}
	return tuples, diags
}
