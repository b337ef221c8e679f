package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClassifier() *Classifier {
	return NewClassifier(DefaultFieldOffsets(), DefaultSubtotalMarkers())
}

func entityRow() []string {
	return []string{
		"ООО Мебель-Опт", "", "", "ИП Иванов", "Петрова А.", "",
		"Москва", "Стол обеденный", "Дуб, 120x80", "Столы",
	}
}

func TestClassifyResolvesFields(t *testing.T) {
	fields, class := testClassifier().Classify(NewRow(entityRow()))

	require.Equal(t, RowValid, class)
	assert.Equal(t, "ООО Мебель-Опт", fields.HeadContractor)
	assert.Equal(t, "ИП Иванов", fields.Buyer)
	assert.Equal(t, "Петрова А.", fields.Manager)
	assert.Equal(t, "Москва", fields.Region)
	assert.Equal(t, "Стол обеденный", fields.ProductName)
	assert.Equal(t, "Дуб, 120x80", fields.Characteristics)
	assert.Equal(t, "Столы", fields.Category)
}

func TestClassifyCandidateFallback(t *testing.T) {
	// Buyer drifted one column right; its first candidate is blank, the
	// second wins.
	cells := []string{
		"ООО Мебель-Опт", "", "", "", "ИП Иванов", "",
		"Москва", "Стол обеденный", "Дуб, 120x80", "Столы",
	}
	fields, class := testClassifier().Classify(NewRow(cells))

	require.Equal(t, RowValid, class)
	assert.Equal(t, "ИП Иванов", fields.Buyer)
	assert.Equal(t, "Москва", fields.Region)
	assert.Equal(t, "Стол обеденный", fields.ProductName)
}

func TestClassifyUnresolvedOptionalFieldIsBlank(t *testing.T) {
	// Manager has no non-blank candidate; the field resolves to blank and
	// the row stays valid.
	cells := []string{
		"ООО Мебель-Опт", "", "", "ИП Иванов", "", "",
		"", "Стол обеденный", "Дуб, 120x80", "Столы",
	}
	fields, class := testClassifier().Classify(NewRow(cells))

	require.Equal(t, RowValid, class)
	assert.Equal(t, "", fields.Manager)
}

func TestClassifyStructuralRows(t *testing.T) {
	classifier := testClassifier()

	// All buyer candidates blank.
	blankBuyer := entityRow()
	blankBuyer[3] = ""
	blankBuyer[4] = ""
	blankBuyer[5] = ""
	_, class := classifier.Classify(NewRow(blankBuyer))
	assert.Equal(t, RowStructural, class)

	blankHead := entityRow()
	blankHead[0] = "   "
	_, class = classifier.Classify(NewRow(blankHead))
	assert.Equal(t, RowStructural, class)

	_, class = classifier.Classify(NewRow([]string{"ООО Мебель-Опт", "", ""}))
	assert.Equal(t, RowStructural, class)

	_, class = classifier.Classify(NewRow(nil))
	assert.Equal(t, RowStructural, class)
}

func TestClassifySubtotalRows(t *testing.T) {
	classifier := testClassifier()

	subtotalProduct := entityRow()
	subtotalProduct[7] = "Итого по группе"
	_, class := classifier.Classify(NewRow(subtotalProduct))
	assert.Equal(t, RowSubtotal, class)

	subtotalHead := entityRow()
	subtotalHead[0] = "ИТОГО"
	_, class = classifier.Classify(NewRow(subtotalHead))
	assert.Equal(t, RowSubtotal, class)

	englishMarker := entityRow()
	englishMarker[7] = "Grand Total"
	_, class = classifier.Classify(NewRow(englishMarker))
	assert.Equal(t, RowSubtotal, class)
}

func TestTuplesQuantityGating(t *testing.T) {
	classifier := testClassifier()
	dates := []DateColumn{
		{QuantityCol: 10, AmountCol: 11, Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{QuantityCol: 12, AmountCol: 13, Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
		{QuantityCol: 14, AmountCol: 15, Date: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)},
		{QuantityCol: 16, AmountCol: 17, Date: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)},
	}

	cells := append(entityRow(),
		"5", "1 000,00", // written
		"", "250",       // quantity absent: no order despite amount
		"0", "100",      // zero quantity: no order
		"-2", "50",      // negative quantity: no order
	)
	tuples, diags := classifier.Tuples(NewRow(cells), dates)

	assert.Empty(t, diags)
	require.Len(t, tuples, 1)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), tuples[0].Date)
	assert.InDelta(t, 5.0, tuples[0].Quantity, 1e-9)
	require.NotNil(t, tuples[0].Amount)
	assert.InDelta(t, 1000.0, *tuples[0].Amount, 1e-9)
}

func TestTuplesAbsentAmount(t *testing.T) {
	classifier := testClassifier()
	dates := []DateColumn{{QuantityCol: 10, AmountCol: 11, Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}}

	cells := append(entityRow(), "3", "")
	tuples, diags := classifier.Tuples(NewRow(cells), dates)

	assert.Empty(t, diags)
	require.Len(t, tuples, 1)
	assert.Nil(t, tuples[0].Amount)
}

func TestTuplesUnparseableCellIsDiagnosedNotFatal(t *testing.T) {
	classifier := testClassifier()
	dates := []DateColumn{
		{QuantityCol: 10, AmountCol: 11, Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{QuantityCol: 12, AmountCol: 13, Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
	}

	cells := append(entityRow(),
		"abc", "900", // quantity unparseable: diagnostic, treated as absent
		"2", "xyz",   // amount unparseable: diagnostic, order written without amount
	)
	tuples, diags := classifier.Tuples(NewRow(cells), dates)

	require.Len(t, diags, 2)
	assert.Equal(t, 10, diags[0].Column)
	assert.Equal(t, 13, diags[1].Column)

	require.Len(t, tuples, 1)
	assert.InDelta(t, 2.0, tuples[0].Quantity, 1e-9)
	assert.Nil(t, tuples[0].Amount)
}

func TestTuplesPastRowWidth(t *testing.T) {
	classifier := testClassifier()
	dates := []DateColumn{{QuantityCol: 40, AmountCol: 41, Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}}

	tuples, diags := classifier.Tuples(NewRow(entityRow()), dates)
	assert.Empty(t, tuples)
	assert.Empty(t, diags)
}
