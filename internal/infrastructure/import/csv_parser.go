// Package csvimport reads spreadsheet exports row by row and validates each
// cell against declarative field rules before anything is written.
package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// utf8BOM is stripped from the start of files saved by spreadsheet tools
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVParser reads a CSV file whose first line names the columns
type CSVParser struct {
	reader    *csv.Reader
	headers   []string
	headerMap map[string]int
	totalRows int
	maxRows   int
}

// ParserOption configures a CSVParser
type ParserOption func(*CSVParser)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) ParserOption {
	return func(p *CSVParser) {
		p.reader.Comma = d
	}
}

// WithMaxRows caps the number of data rows ReadAllRows accepts
func WithMaxRows(n int) ParserOption {
	return func(p *CSVParser) {
		p.maxRows = n
	}
}

// NewCSVParser wraps r, dropping a leading BOM. The header is not read until ParseHeader.
func NewCSVParser(r io.Reader, opts ...ParserOption) (*CSVParser, error) {
	buf := bufio.NewReader(r)

	if bom, _ := buf.Peek(len(utf8BOM)); bytes.Equal(bom, utf8BOM) {
		_, _ = buf.Discard(len(utf8BOM))
	}
	head, err := buf.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(bytes.TrimSpace(head)) == 0 {
		return nil, ErrEmptyFile
	}
	if !utf8.Valid(trimPartialRune(head)) {
		return nil, ErrInvalidEncoding
	}

	reader := csv.NewReader(buf)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	p := &CSVParser{reader: reader, headerMap: make(map[string]int)}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// trimPartialRune drops a multi-byte rune cut off by the peek window
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return b[:i]
			}
			break
		}
	}
	return b
}

// ParseHeader reads the header line. Column names are matched case-insensitively.
func (p *CSVParser) ParseHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	p.headers = make([]string, len(record))
	for i, h := range record {
		name := normalizeHeader(h)
		p.headers[i] = name
		if name != "" {
			p.headerMap[name] = i
		}
	}
	if len(p.headerMap) == 0 {
		return ErrMissingHeader
	}
	return nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// Headers returns the normalized header names in file order
func (p *CSVParser) Headers() []string {
	return p.headers
}

// HasHeader reports whether a column is present
func (p *CSVParser) HasHeader(name string) bool {
	_, ok := p.headerMap[normalizeHeader(name)]
	return ok
}

// MissingHeaders returns the required columns the file lacks
func (p *CSVParser) MissingHeaders(required []string) []string {
	var missing []string
	for _, h := range required {
		if !p.HasHeader(h) {
			missing = append(missing, h)
		}
	}
	return missing
}

// Row is one data record. LineNumber is the line it starts on in the file.
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the trimmed cell of a column, or "" when absent
func (r *Row) Get(column string) string {
	return r.Data[column]
}

// IsEmpty returns true if every cell is blank
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadRow reads the next data line, returning io.EOF at the end
func (p *CSVParser) ReadRow() (*Row, error) {
	record, err := p.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read row: %w", err)
	}
	p.totalRows++
	line, _ := p.reader.FieldPos(0)

	row := &Row{
		LineNumber: line,
		Data:       make(map[string]string, len(p.headerMap)),
	}
	for name, i := range p.headerMap {
		if i < len(record) {
			row.Data[name] = strings.TrimSpace(record[i])
		} else {
			row.Data[name] = ""
		}
	}
	return row, nil
}

// ReadAllRows reads the remaining non-blank rows
func (p *CSVParser) ReadAllRows() ([]*Row, error) {
	var rows []*Row
	for {
		row, err := p.ReadRow()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		if row.IsEmpty() {
			continue
		}
		if p.maxRows > 0 && len(rows) == p.maxRows {
			return rows, ErrTooManyRows
		}
		rows = append(rows, row)
	}
}

// TotalRows returns the number of data lines read, blank ones included
func (p *CSVParser) TotalRows() int {
	return p.totalRows
}
