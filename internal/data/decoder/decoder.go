package decoder

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"posinsight/internal/core/model"
	"posinsight/internal/util"
)

// Format identifies how a file's bytes should be decoded.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatWorkbook Format = "workbook"
)

// UnsupportedFormatError reports a file extension outside the recognized
// set. Fatal for that file only.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q (expected .csv, .xlsx or .xls)", e.Ext)
}

// DecodeError reports an unreadable or corrupt workbook container. Fatal
// for that file only. Malformed CSV is never a DecodeError; it is
// tolerated and handled row by row downstream.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unreadable workbook: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DetectFormat maps a file name's extension to a decode format.
func DetectFormat(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xls":
		return FormatWorkbook, nil
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}
}

// Decode turns raw file bytes into a RawTable according to format.
func Decode(data []byte, format Format) (model.RawTable, error) {
	switch format {
	case FormatCSV:
		return decodeCSV(data), nil
	case FormatWorkbook:
		return decodeWorkbook(data)
	default:
		return nil, &UnsupportedFormatError{Ext: string(format)}
	}
}

// decodeCSV splits text into rows on line breaks and cells on commas.
// There is no quote or escape handling: a comma inside a quoted field
// splits the field. That limitation is deliberate; the downstream pipeline
// tolerates ragged and malformed rows rather than this layer guessing.
func decodeCSV(data []byte) model.RawTable {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	table := make(model.RawTable, 0, len(lines))
	for _, line := range lines {
		table = append(table, strings.Split(line, ","))
	}
	return table
}

// decodeWorkbook reads the first sheet of an Excel container in row-major
// order. Cells come back as raw values: date serials stay numeric-looking
// strings and are converted later, during normalization.
func decodeWorkbook(data []byte) (model.RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			util.LogDebugf("Failed to close workbook: %v", cerr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &DecodeError{Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	util.LogDebugf("Decoded sheet %q: %d rows", sheets[0], len(rows))
	return model.RawTable(rows), nil
}
