package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Decoder turns a file into rows of cells, header row first.
type Decoder interface {
	Decode(r io.Reader) ([][]string, error)
}

// DefaultDecoders returns the standard set of decoders keyed by extension.
func DefaultDecoders() map[string]Decoder {
	return map[string]Decoder{
		".csv":  NewCSVDecoder(','),
		".tsv":  NewCSVDecoder('\t'),
		".xlsx": NewXLSXDecoder(""),
	}
}

// CSVDecoder reads delimited text. Every row must have as many fields as the header.
type CSVDecoder struct {
	Comma rune
}

// NewCSVDecoder creates a decoder for the given field delimiter.
func NewCSVDecoder(comma rune) *CSVDecoder {
	return &CSVDecoder{Comma: comma}
}

func (d *CSVDecoder) Decode(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = d.Comma
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}
	return rows, nil
}

// XLSXDecoder reads one worksheet of an Excel workbook.
type XLSXDecoder struct {
	// Sheet is the worksheet name. Empty means the first sheet.
	Sheet string
}

// NewXLSXDecoder creates a decoder for the named sheet, or the first one when empty.
func NewXLSXDecoder(sheet string) *XLSXDecoder {
	return &XLSXDecoder{Sheet: sheet}
}

func (d *XLSXDecoder) Decode(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid workbook: %w", err)
	}
	defer f.Close()

	sheet := d.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}
