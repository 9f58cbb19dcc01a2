package decoder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		expected    Format
		expectError bool
	}{
		{name: "csv", filename: "invoices.csv", expected: FormatCSV},
		{name: "csv uppercase", filename: "INVOICES.CSV", expected: FormatCSV},
		{name: "xlsx", filename: "export.xlsx", expected: FormatWorkbook},
		{name: "xls", filename: "export.xls", expected: FormatWorkbook},
		{name: "unknown extension", filename: "report.pdf", expectError: true},
		{name: "no extension", filename: "data", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := DetectFormat(tt.filename)
			if tt.expectError {
				var ufe *UnsupportedFormatError
				require.Error(t, err)
				assert.True(t, errors.As(err, &ufe))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestDecodeCSV(t *testing.T) {
	t.Run("plain rows", func(t *testing.T) {
		table, err := Decode([]byte("a,b,c\nd,e,f"), FormatCSV)
		require.NoError(t, err)
		require.Len(t, table, 2)
		assert.Equal(t, []string{"a", "b", "c"}, table[0])
		assert.Equal(t, []string{"d", "e", "f"}, table[1])
	})

	t.Run("ragged rows are preserved", func(t *testing.T) {
		table, err := Decode([]byte("a,b,c\nd\n\ne,f"), FormatCSV)
		require.NoError(t, err)
		require.Len(t, table, 4)
		assert.Equal(t, []string{"d"}, table[1])
		assert.Equal(t, []string{""}, table[2])
	})

	t.Run("crlf line endings", func(t *testing.T) {
		table, err := Decode([]byte("a,b\r\nc,d\r\n"), FormatCSV)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, table[0])
		assert.Equal(t, []string{"c", "d"}, table[1])
	})

	t.Run("quoted commas split naively", func(t *testing.T) {
		// Documented limitation: no quote handling.
		table, err := Decode([]byte(`"a,b",c`), FormatCSV)
		require.NoError(t, err)
		assert.Equal(t, []string{`"a`, `b"`, "c"}, table[0])
	})
}

func TestDecodeWorkbookCorrupt(t *testing.T) {
	_, err := Decode([]byte("this is not a zip container"), FormatWorkbook)
	var de *DecodeError
	require.Error(t, err)
	assert.True(t, errors.As(err, &de))
}
