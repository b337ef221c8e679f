package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRowsDelimited(t *testing.T) {
	data := []byte("a,b,\"1 000,00\"\nc,d\n")

	rows, err := ReadRows("orders.csv", data, ',')
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Quoted cells are decoded; ragged widths are preserved.
	assert.Equal(t, []string{"a", "b", "1 000,00"}, rows[0])
	assert.Equal(t, []string{"c", "d"}, rows[1])
}

func TestReadRowsSemicolonDelimiter(t *testing.T) {
	rows, err := ReadRows("orders.csv", []byte("a;b;c\n"), ';')
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a", "b", "c"}, rows[0])
}

func TestReadRowsBadExcelPayload(t *testing.T) {
	_, err := ReadRows("orders.xlsx", []byte("not a zip archive"), ',')
	require.ErrorIs(t, err, ErrFormat)
}
