package csvimport

import (
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"
)

// IsXLSX reports whether data looks like an Office Open XML workbook. Every
// zip archive counts; one that is not a workbook fails in NewXLSXParser.
func IsXLSX(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("application/zip") {
			return true
		}
	}
	return false
}

// NewXLSXParser reads the first worksheet of an XLSX workbook. Rows are
// streamed, and header handling, trimming and row limits match NewCSVParser.
func NewXLSXParser(r io.Reader, opts ...ParserOption) (*CSVParser, error) {
	parser := newParser(opts)

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		_ = f.Close()
		return nil, ErrEmptyFile
	}
	rows, err := f.Rows(sheets[0])
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}

	parser.reader = &xlsxRecords{file: f, rows: rows}
	return parser, nil
}

// xlsxRecords adapts a worksheet row iterator to recordReader
type xlsxRecords struct {
	file   *excelize.File
	rows   *excelize.Rows
	closed bool
}

func (x *xlsxRecords) Read() ([]string, error) {
	if x.closed {
		return nil, io.EOF
	}
	if !x.rows.Next() {
		if err := x.rows.Error(); err != nil {
			return nil, err
		}
		_ = x.Close()
		return nil, io.EOF
	}
	return x.rows.Columns()
}

func (x *xlsxRecords) Close() error {
	if x.closed {
		return nil
	}
	x.closed = true
	_ = x.rows.Close()
	return x.file.Close()
}
