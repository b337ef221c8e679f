package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entityHeader() []string {
	return []string{
		"Головной контрагент", "", "", "Покупатель", "Менеджер",
		"", "Регион", "Номенклатура", "Характеристика", "Категория",
	}
}

func superHeaderRows(dates ...string) [][]string {
	first := entityHeader()
	second := make([]string, len(first))
	for _, d := range dates {
		first = append(first, d, "")
		second = append(second, "Количество заказов", "Сумма заказов")
	}
	// Trailing summary block, excluded from date detection.
	first = append(first, "Итого", "", "")
	second = append(second, "", "", "")
	return [][]string{first, second}
}

func TestAnalyzeHeaderSuperHeader(t *testing.T) {
	rows := superHeaderRows("01.06.2025", "02.06.2025")

	layout, err := AnalyzeHeader(rows)
	require.NoError(t, err)

	assert.True(t, layout.SuperHeader)
	assert.Equal(t, 2, layout.DataStart)
	require.Len(t, layout.Dates, 2)

	assert.Equal(t, 10, layout.Dates[0].QuantityCol)
	assert.Equal(t, 11, layout.Dates[0].AmountCol)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), layout.Dates[0].Date)

	assert.Equal(t, 12, layout.Dates[1].QuantityCol)
	assert.Equal(t, 13, layout.Dates[1].AmountCol)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), layout.Dates[1].Date)
}

func TestAnalyzeHeaderSingleHeader(t *testing.T) {
	rows := superHeaderRows("15.03.2025")
	// Data directly under the header: no sub-label line.
	rows[1] = make([]string, len(rows[0]))

	layout, err := AnalyzeHeader(rows)
	require.NoError(t, err)
	assert.False(t, layout.SuperHeader)
	assert.Equal(t, 1, layout.DataStart)
	require.Len(t, layout.Dates, 1)
}

func TestAnalyzeHeaderMonotonicColumns(t *testing.T) {
	rows := superHeaderRows("01.06.2025", "02.06.2025", "03.06.2025", "04.06.2025")

	layout, err := AnalyzeHeader(rows)
	require.NoError(t, err)
	for i := 1; i < len(layout.Dates); i++ {
		assert.Greater(t, layout.Dates[i].QuantityCol, layout.Dates[i-1].QuantityCol)
	}
}

func TestAnalyzeHeaderDuplicateDatesPreserved(t *testing.T) {
	rows := superHeaderRows("01.06.2025", "01.06.2025")

	layout, err := AnalyzeHeader(rows)
	require.NoError(t, err)
	require.Len(t, layout.Dates, 2)
	assert.Equal(t, layout.Dates[0].Date, layout.Dates[1].Date)
	assert.NotEqual(t, layout.Dates[0].QuantityCol, layout.Dates[1].QuantityCol)
}

func TestAnalyzeHeaderTrailingBlockExcluded(t *testing.T) {
	rows := superHeaderRows("01.06.2025")
	// A date-looking token inside the trailing summary block must not
	// become a date column.
	first := rows[0]
	first[len(first)-2] = "09.06.2025"

	layout, err := AnalyzeHeader(rows)
	require.NoError(t, err)
	require.Len(t, layout.Dates, 1)
	assert.Equal(t, 10, layout.Dates[0].QuantityCol)
}

func TestAnalyzeHeaderInvalidCalendarDateSkipped(t *testing.T) {
	rows := superHeaderRows("45.13.2025", "02.06.2025")

	layout, err := AnalyzeHeader(rows)
	require.NoError(t, err)
	require.Len(t, layout.Dates, 1)
	assert.Equal(t, 12, layout.Dates[0].QuantityCol)
}

func TestAnalyzeHeaderNoDates(t *testing.T) {
	first := entityHeader()
	first = append(first, "Январь", "", "Февраль", "", "Итого", "", "")

	_, err := AnalyzeHeader([][]string{first})
	require.ErrorIs(t, err, ErrFormat)
}

func TestAnalyzeHeaderTooNarrow(t *testing.T) {
	_, err := AnalyzeHeader([][]string{{"Контрагент", "Покупатель", "Товар"}})
	require.ErrorIs(t, err, ErrFormat)
}

func TestAnalyzeHeaderEmptyFile(t *testing.T) {
	_, err := AnalyzeHeader(nil)
	require.ErrorIs(t, err, ErrFormat)
}
