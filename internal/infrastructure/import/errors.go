package csvimport

import (
	"errors"
	"fmt"
)

// Row error codes.
const (
	ErrCodeRequired     = "REQUIRED"
	ErrCodeInvalidType  = "INVALID_TYPE"
	ErrCodeInvalidRange = "INVALID_RANGE"
	ErrCodeTooLong      = "TOO_LONG"
	ErrCodeDuplicate    = "DUPLICATE_IN_FILE"
	ErrCodeValidation   = "VALIDATION_FAILED"
)

// Sheet errors. Any of these rejects the whole upload.
var (
	ErrEmptyFile       = errors.New("CSV file is empty")
	ErrInvalidEncoding = errors.New("CSV file is not valid UTF-8")
	ErrMissingHeader   = errors.New("CSV file missing header row")
	ErrTooManyRows     = errors.New("CSV file has too many rows")
)

const defaultMaxErrors = 100

// RowError rejects one data row. Row is the 1-based line in the sheet,
// counting the header.
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e RowError) Error() string {
	where := fmt.Sprintf("row %d", e.Row)
	if e.Column != "" {
		where += fmt.Sprintf(", column '%s'", e.Column)
	}
	return where + ": " + e.Message
}

// ErrorCollection keeps a bounded sample of row errors while counting all
// of them, so a badly broken sheet still gets a short report.
type ErrorCollection struct {
	kept  []RowError
	limit int
	total int
}

// NewErrorCollection keeps up to limit errors, 100 when limit is not positive.
func NewErrorCollection(limit int) *ErrorCollection {
	if limit <= 0 {
		limit = defaultMaxErrors
	}
	return &ErrorCollection{limit: limit}
}

func (ec *ErrorCollection) Add(err RowError) {
	ec.total++
	if len(ec.kept) < ec.limit {
		ec.kept = append(ec.kept, err)
	}
}

func (ec *ErrorCollection) Errors() []RowError { return ec.kept }

// TotalCount includes the errors past the limit.
func (ec *ErrorCollection) TotalCount() int { return ec.total }

func (ec *ErrorCollection) HasErrors() bool { return ec.total != 0 }

func (ec *ErrorCollection) IsTruncated() bool { return ec.total > len(ec.kept) }
