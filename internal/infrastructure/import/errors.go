package csvimport

import (
	"errors"
	"fmt"
	"strings"
)

// Row error codes reported back to the uploader
const (
	ErrCodeImportValidation      = "ERR_IMPORT_VALIDATION"
	ErrCodeImportRequiredField   = "ERR_IMPORT_REQUIRED_FIELD"
	ErrCodeImportInvalidType     = "ERR_IMPORT_INVALID_TYPE"
	ErrCodeImportInvalidRange    = "ERR_IMPORT_INVALID_RANGE"
	ErrCodeImportDuplicateInFile = "ERR_IMPORT_DUPLICATE_IN_FILE"
)

// File-level failures; the whole upload is rejected
var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
	ErrInvalidWorkbook = errors.New("file is not a readable XLSX workbook")
	ErrMissingHeader   = errors.New("file missing header row")
	ErrNoDataRows      = errors.New("file contains no data rows")
	ErrTooManyRows     = errors.New("file has too many rows")
)

// defaultMaxErrors caps the details kept when no limit is given
const defaultMaxErrors = 100

// RowError rejects one cell, or a whole row when Column is empty.
// Row is the 1-based line number in the file, header included.
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Message)
	}
	return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
}

// NewRowError creates a RowError without an offending value
func NewRowError(row int, column, code, message string) RowError {
	return RowError{Row: row, Column: column, Code: code, Message: message}
}

// WithValue returns a copy of e that echoes the rejected cell
func (e RowError) WithValue(value string) RowError {
	e.Value = value
	return e
}

// ErrorCollection keeps the first few row errors of an import and counts
// the rest, so a broken file of 10k rows does not produce 10k details.
type ErrorCollection struct {
	kept  []RowError
	limit int
	total int
}

// NewErrorCollection keeps at most maxErrors details
func NewErrorCollection(maxErrors int) *ErrorCollection {
	if maxErrors <= 0 {
		maxErrors = defaultMaxErrors
	}
	return &ErrorCollection{limit: maxErrors}
}

// Add counts err and keeps it while under the limit
func (ec *ErrorCollection) Add(err RowError) {
	ec.total++
	if len(ec.kept) < ec.limit {
		ec.kept = append(ec.kept, err)
	}
}

// Errors returns the kept details in the order they were added
func (ec *ErrorCollection) Errors() []RowError {
	return ec.kept
}

// Count returns the number of kept details
func (ec *ErrorCollection) Count() int {
	return len(ec.kept)
}

// Total returns every error added, kept or not
func (ec *ErrorCollection) Total() int {
	return ec.total
}

func (ec *ErrorCollection) String() string {
	if ec.total == 0 {
		return "no errors"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s) found", ec.total)
	if ec.total > len(ec.kept) {
		fmt.Fprintf(&sb, " (showing first %d)", len(ec.kept))
	}
	sb.WriteString(":\n")
	for _, err := range ec.kept {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}
