package csvimport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, content string, opts ...ParserOption) *CSVParser {
	t.Helper()
	p, err := NewCSVParser(strings.NewReader(content), opts...)
	require.NoError(t, err)
	require.NoError(t, p.ParseHeader())
	return p
}

func TestCSVParser_ReadAllRows(t *testing.T) {
	p := parse(t, "\xEF\xBB\xBFSize, Color ,Quantity,Price\nM,Black,10,999\n\n , , , \nL, Navy Blue ,3\n")

	assert.Equal(t, []string{"size", "color", "quantity", "price"}, p.Headers())
	assert.True(t, p.HasHeader("COLOR"))

	rows, err := p.ReadAllRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].LineNumber)
	assert.Equal(t, "Black", rows[0].Get("color"))
	assert.Equal(t, "999", rows[0].Get("price"))

	assert.Equal(t, 5, rows[1].LineNumber)
	assert.Equal(t, "Navy Blue", rows[1].Get("color"))
	assert.Equal(t, "", rows[1].Get("price"), "short rows pad missing cells")
	assert.Equal(t, 3, p.TotalRows(), "blank lines are skipped by the csv reader, whitespace rows are counted")
}

func TestCSVParser_Delimiter(t *testing.T) {
	p := parse(t, "size;color\nS;Red\n", WithDelimiter(';'))
	rows, err := p.ReadAllRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Red", rows[0].Get("color"))
}

func TestCSVParser_MaxRows(t *testing.T) {
	p := parse(t, "size\nS\nM\nL\n", WithMaxRows(2))
	rows, err := p.ReadAllRows()
	assert.ErrorIs(t, err, ErrTooManyRows)
	assert.Len(t, rows, 2)
}

func TestCSVParser_MissingHeaders(t *testing.T) {
	p := parse(t, "size,colour\n")
	assert.Equal(t, []string{"color", "quantity"}, p.MissingHeaders([]string{"size", "color", "quantity"}))
}

func TestNewCSVParser_FileErrors(t *testing.T) {
	_, err := NewCSVParser(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = NewCSVParser(strings.NewReader("\xEF\xBB\xBF  \n"))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = NewCSVParser(strings.NewReader("size,color\nM,\xff\xfe\n"))
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestCSVParser_BlankHeader(t *testing.T) {
	p, err := NewCSVParser(strings.NewReader(" , \nM,Black\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, p.ParseHeader(), ErrMissingHeader)
}

func TestTrimPartialRune(t *testing.T) {
	euro := []byte("€") // 3 bytes
	assert.Equal(t, []byte("ab"), trimPartialRune(append([]byte("ab"), euro[:2]...)))
	assert.Equal(t, append([]byte("ab"), euro...), trimPartialRune(append([]byte("ab"), euro...)))
	assert.Equal(t, []byte("abc"), trimPartialRune([]byte("abc")))
}
