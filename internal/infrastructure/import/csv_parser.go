package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// DefaultMaxRows bounds the data rows read from one file
const DefaultMaxRows = 10000

// recordReader yields one record per call and io.EOF at the end.
// *csv.Reader and xlsxRecords implement it.
type recordReader interface {
	Read() ([]string, error)
}

// CSVParser reads a UTF-8 CSV file, or the first sheet of an XLSX workbook,
// with a header row. Column lookup ignores case and spacing, so
// "Product Name", "product_name" and "PRODUCTNAME" address the same column.
type CSVParser struct {
	delimiter  rune
	lazyQuotes bool
	maxRows    int
	headers    []string
	headerMap  map[string]int // folded header -> index
	currentRow int
	totalRows  int
	reader     recordReader
	bufReader  *bufio.Reader
}

// ParserOption is a functional option for CSVParser configuration
type ParserOption func(*CSVParser)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) ParserOption {
	return func(p *CSVParser) {
		p.delimiter = d
	}
}

// WithLazyQuotes enables lazy quote handling
func WithLazyQuotes(lazy bool) ParserOption {
	return func(p *CSVParser) {
		p.lazyQuotes = lazy
	}
}

// WithMaxRows caps the number of data rows. Zero or less keeps the default.
func WithMaxRows(n int) ParserOption {
	return func(p *CSVParser) {
		if n > 0 {
			p.maxRows = n
		}
	}
}

func newParser(opts []ParserOption) *CSVParser {
	parser := &CSVParser{
		delimiter:  ',',
		lazyQuotes: true,
		maxRows:    DefaultMaxRows,
		headerMap:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

// NewCSVParser creates a new CSV parser from a reader
func NewCSVParser(r io.Reader, opts ...ParserOption) (*CSVParser, error) {
	parser := newParser(opts)

	parser.bufReader = bufio.NewReader(r)

	content, err := parser.bufReader.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	// UTF-8 BOM
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		_, _ = parser.bufReader.Discard(3)
	}

	if err := validateUTF8(parser.bufReader); err != nil {
		return nil, err
	}

	reader := csv.NewReader(parser.bufReader)
	reader.Comma = parser.delimiter
	reader.LazyQuotes = parser.lazyQuotes
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	parser.reader = reader

	return parser, nil
}

// ParseFromBytes creates a parser from a byte slice, reading it as an XLSX
// workbook when the content is a zip archive and as CSV otherwise.
func ParseFromBytes(data []byte, opts ...ParserOption) (*CSVParser, error) {
	if IsXLSX(data) {
		return NewXLSXParser(bytes.NewReader(data), opts...)
	}
	return NewCSVParser(bytes.NewReader(data), opts...)
}

// Close releases the workbook behind an XLSX parser; it is a no-op for CSV
func (p *CSVParser) Close() error {
	if c, ok := p.reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func validateUTF8(r *bufio.Reader) error {
	const checkSize = 4096
	content, err := r.Peek(checkSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for encoding validation: %w", err)
	}
	if len(content) == 0 {
		return ErrEmptyFile
	}
	// A multi-byte rune may straddle the peek window.
	if len(content) == checkSize {
		for i := 0; i < utf8.UTFMax && len(content) > 0; i++ {
			if utf8.Valid(content) {
				return nil
			}
			content = content[:len(content)-1]
		}
	}
	if !utf8.Valid(content) {
		return ErrInvalidEncoding
	}
	return nil
}

var headerFolder = cases.Fold()

// FoldHeader normalizes a column name for lookup: Unicode case folding
// with whitespace, underscores and hyphens removed.
func FoldHeader(name string) string {
	folded := headerFolder.String(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '_' || r == '-' {
			return -1
		}
		return r
	}, folded)
}

// ParseHeader reads and parses the header row
func (p *CSVParser) ParseHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	p.headers = make([]string, 0, len(record))
	for i, h := range record {
		header := strings.TrimSpace(h)
		p.headers = append(p.headers, header)
		key := FoldHeader(header)
		if key == "" {
			continue
		}
		// first occurrence wins for duplicate headers
		if _, dup := p.headerMap[key]; !dup {
			p.headerMap[key] = i
		}
	}

	if len(p.headerMap) == 0 {
		return ErrMissingHeader
	}

	p.currentRow = 1
	return nil
}

// Headers returns the header names as written in the file
func (p *CSVParser) Headers() []string {
	return p.headers
}

// HasHeader reports whether a column exists, ignoring case and spacing
func (p *CSVParser) HasHeader(name string) bool {
	_, ok := p.headerMap[FoldHeader(name)]
	return ok
}

// GetColumnIndex returns the index of a column by name
func (p *CSVParser) GetColumnIndex(name string) (int, bool) {
	idx, ok := p.headerMap[FoldHeader(name)]
	return idx, ok
}

// ValidateHeaders returns the required headers that are missing
func (p *CSVParser) ValidateHeaders(required []string) []string {
	var missing []string
	for _, h := range required {
		if !p.HasHeader(h) {
			missing = append(missing, h)
		}
	}
	return missing
}

// Row is a parsed data row
type Row struct {
	LineNumber int
	Fields     []string
	index      map[string]int
}

// Get returns the trimmed value of a column, or "" if absent
func (r *Row) Get(header string) string {
	idx, ok := r.index[FoldHeader(header)]
	if !ok || idx >= len(r.Fields) {
		return ""
	}
	return r.Fields[idx]
}

// GetOrDefault returns the value for a column, or def if empty
func (r *Row) GetOrDefault(header, def string) string {
	if v := r.Get(header); v != "" {
		return v
	}
	return def
}

// IsEmpty returns true if the row has no non-empty values
func (r *Row) IsEmpty() bool {
	for _, v := range r.Fields {
		if v != "" {
			return false
		}
	}
	return true
}

// Map returns the row keyed by the file's header names
func (r *Row) Map(headers []string) map[string]string {
	out := make(map[string]string, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		if i < len(r.Fields) {
			out[h] = r.Fields[i]
		} else {
			out[h] = ""
		}
	}
	return out
}

// ReadRow reads the next row from the CSV
func (p *CSVParser) ReadRow() (*Row, error) {
	record, err := p.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	p.currentRow++
	if err != nil {
		return nil, fmt.Errorf("error reading row %d: %w", p.currentRow, err)
	}
	p.totalRows++

	fields := make([]string, len(record))
	for i, v := range record {
		fields[i] = strings.TrimSpace(v)
	}

	return &Row{
		LineNumber: p.currentRow,
		Fields:     fields,
		index:      p.headerMap,
	}, nil
}

// ReadAllRows reads the remaining rows, skipping blank ones.
// It fails with ErrTooManyRows once the row limit is passed.
func (p *CSVParser) ReadAllRows() ([]*Row, error) {
	var rows []*Row

	for {
		row, err := p.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, err
		}
		if row.IsEmpty() {
			continue
		}
		if len(rows) >= p.maxRows {
			return rows, fmt.Errorf("%w: limit is %d", ErrTooManyRows, p.maxRows)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// CurrentRow returns the current line number (1-indexed)
func (p *CSVParser) CurrentRow() int {
	return p.currentRow
}

// TotalRows returns the number of data rows read, blank rows included
func (p *CSVParser) TotalRows() int {
	return p.totalRows
}
