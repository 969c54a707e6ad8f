package csvparser

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/parsererror"
)

// rowFilter wraps a csv.Reader and hands gocsv only the well-formed records.
// Records with the wrong column count, or that encoding/csv cannot tokenize,
// are turned into ParseErrors and skipped. The canonical header is emitted
// first so that gocsv maps columns regardless of the file's header casing.
//
// An unterminated quote makes encoding/csv swallow every following line into
// one field. When that happens only the line that opened the quote is
// rejected and reading restarts on the next physical line.
type rowFilter struct {
	reader     *csv.Reader
	newReader  func(io.Reader) *csv.Reader
	source     []string
	offset     int
	headerSent bool

	lines  []int
	errors []*parsererror.ParseError
}

// newRowFilter reads records from reader, which must be positioned on the
// physical lines of data. newReader builds the replacement reader used after
// an unterminated quote.
func newRowFilter(reader *csv.Reader, data string, newReader func(io.Reader) *csv.Reader) *rowFilter {
	return &rowFilter{
		reader:    reader,
		newReader: newReader,
		source:    strings.Split(data, "\n"),
	}
}

// Read implements gocsv.CSVReader.
func (f *rowFilter) Read() ([]string, error) {
	if !f.headerSent {
		f.headerSent = true
		return append([]string(nil), models.TransactionColumns...), nil
	}

	for {
		record, err := f.reader.Read()
		if err == io.EOF {
			return nil, io.EOF
		}

		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			start := csvErr.StartLine + f.offset
			f.errors = append(f.errors, &parsererror.ParseError{
				Line: start,
				Err:  csvErr.Err,
			})
			if errors.Is(csvErr.Err, csv.ErrQuote) && csvErr.StartLine < csvErr.Line {
				f.restartAfter(start)
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		line, _ := f.reader.FieldPos(0)
		line += f.offset
		if len(record) != len(models.TransactionColumns) {
			f.errors = append(f.errors, &parsererror.ParseError{
				Line:  line,
				Value: strings.Join(record, string(f.reader.Comma)),
				Err:   parsererror.ErrWrongColumnCount,
			})
			continue
		}

		f.lines = append(f.lines, line)
		return record, nil
	}
}

// restartAfter continues reading from the physical line following line.
func (f *rowFilter) restartAfter(line int) {
	rest := ""
	if line < len(f.source) {
		rest = strings.Join(f.source[line:], "\n")
	}
	f.reader = f.newReader(strings.NewReader(rest))
	f.offset = line
}

// ReadAll implements gocsv.CSVReader.
func (f *rowFilter) ReadAll() ([][]string, error) {
	var records [][]string
	for {
		record, err := f.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}
