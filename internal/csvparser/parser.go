// Package csvparser turns transaction CSV files into models.Transaction values.
//
// The expected layout is a header row followed by one row per transaction:
//
//	date,amount_out,amount_in,description,category,subcategory,tag,note
//
// Rows that cannot be read are reported individually and do not stop the file.
package csvparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"fjacquet/expense-tracker/internal/currencyutils"
	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/parsererror"

	"github.com/gocarina/gocsv"
)

const utf8BOM = "\uFEFF"

// TransactionRow is the raw CSV representation of one transaction. All fields
// are kept as strings so that each conversion failure can be attributed to
// its column.
type TransactionRow struct {
	Date        string `csv:"date"`
	AmountOut   string `csv:"amount_out"`
	AmountIn    string `csv:"amount_in"`
	Description string `csv:"description"`
	Category    string `csv:"category"`
	SubCategory string `csv:"subcategory"`
	Tag         string `csv:"tag"`
	Note        string `csv:"note"`
}

// Result holds what was read from one file.
type Result struct {
	Transactions []models.Transaction
	Errors       []*parsererror.ParseError
}

// Rejected returns the number of rows that could not be read.
func (r *Result) Rejected() int {
	return len(r.Errors)
}

// Parser reads transaction CSV files.
type Parser struct {
	logger     logging.Logger
	delimiter  rune
	dateLayout string
}

// NewParser creates a Parser. A zero delimiter means ',' and an empty layout
// means DD.MM.YYYY.
func NewParser(logger logging.Logger, delimiter rune, dateLayout string) *Parser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	if dateLayout == "" {
		dateLayout = dateutils.DateLayoutEuropean
	}
	return &Parser{
		logger:     logger.WithField(logging.FieldComponent, "csvparser"),
		delimiter:  delimiter,
		dateLayout: dateLayout,
	}
}

// ParseFile opens filePath and parses it.
func (p *Parser) ParseFile(filePath string) (*Result, error) {
	file, err := os.Open(filePath) // #nosec G304 -- path chosen by the user
	if err != nil {
		return nil, &parsererror.IOError{Op: "open", Path: filePath, Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.logger.WithError(err).Warn("Failed to close file",
				logging.Field{Key: logging.FieldFile, Value: filePath})
		}
	}()

	result, err := p.parse(file, filePath)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Read transactions",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: logging.FieldIgnored, Value: result.Rejected()})
	return result, nil
}

// ValidateFormat reports whether filePath starts with the expected header.
// Only open failures are returned as errors.
func (p *Parser) ValidateFormat(filePath string) (bool, error) {
	file, err := os.Open(filePath) // #nosec G304 -- path chosen by the user
	if err != nil {
		return false, &parsererror.IOError{Op: "open", Path: filePath, Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.logger.WithError(err).Warn("Failed to close file",
				logging.Field{Key: logging.FieldFile, Value: filePath})
		}
	}()

	header, err := p.newCSVReader(file).Read()
	if err != nil {
		p.logger.Debug("No readable header",
			logging.Field{Key: logging.FieldFile, Value: filePath},
			logging.Field{Key: logging.FieldReason, Value: err.Error()})
		return false, nil
	}
	return validHeader(header), nil
}

// Parse reads transactions from r. Row-level problems are collected in
// Result.Errors; an error is returned only when the input as a whole is
// unusable (no header, wrong header, or a read failure).
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	return p.parse(r, "")
}

func (p *Parser) parse(r io.Reader, source string) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &parsererror.IOError{Op: "read", Path: source, Err: err}
	}
	reader := p.newCSVReader(strings.NewReader(string(data)))

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       source,
			ExpectedFormat: strings.Join(models.TransactionColumns, string(p.delimiter)),
			Msg:            "file is empty",
		}
	}
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       source,
			ExpectedFormat: strings.Join(models.TransactionColumns, string(p.delimiter)),
			Msg:            fmt.Sprintf("unreadable header: %v", err),
		}
	}
	if !validHeader(header) {
		return nil, &parsererror.InvalidFormatError{
			FilePath:             source,
			ExpectedFormat:       strings.Join(models.TransactionColumns, string(p.delimiter)),
			ActualContentSnippet: strings.Join(header, string(p.delimiter)),
			Msg:                  "unexpected header",
		}
	}

	filter := newRowFilter(reader, string(data), p.newCSVReader)
	var rows []TransactionRow
	if err := gocsv.UnmarshalCSV(filter, &rows); err != nil {
		return nil, &parsererror.IOError{Op: "read", Path: source, Err: err}
	}

	result := &Result{
		Transactions: make([]models.Transaction, 0, len(rows)),
		Errors:       filter.errors,
	}

	for i, row := range rows {
		tx, perr := p.convertRow(row, filter.lines[i])
		if perr != nil {
			result.Errors = append(result.Errors, perr)
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}

	for _, perr := range result.Errors {
		p.logger.WithError(perr.Err).Warn("Ignoring unreadable row",
			logging.Field{Key: logging.FieldLine, Value: perr.Line},
			logging.Field{Key: logging.FieldField, Value: perr.Field},
			logging.Field{Key: logging.FieldValue, Value: perr.Value})
	}
	sortErrorsByLine(result.Errors)

	return result, nil
}

func (p *Parser) newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = p.delimiter
	reader.FieldsPerRecord = -1
	return reader
}

func validHeader(header []string) bool {
	if len(header) != len(models.TransactionColumns) {
		return false
	}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		if !strings.EqualFold(strings.TrimSpace(name), models.TransactionColumns[i]) {
			return false
		}
	}
	return true
}

// convertRow turns a raw row into a transaction. Category names are carried
// as written; resolving them is the classifier's job.
func (p *Parser) convertRow(row TransactionRow, line int) (models.Transaction, *parsererror.ParseError) {
	date, err := dateutils.ParseDate(row.Date, p.dateLayout)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{Line: line, Field: models.ColumnDate, Value: row.Date, Err: err}
	}

	out, err := currencyutils.ParseAmount(row.AmountOut)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{Line: line, Field: models.ColumnAmountOut, Value: row.AmountOut, Err: err}
	}

	in, err := currencyutils.ParseAmount(row.AmountIn)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{Line: line, Field: models.ColumnAmountIn, Value: row.AmountIn, Err: err}
	}

	return models.Transaction{
		Date:        date,
		Amount:      in.Sub(out),
		Description: strings.TrimSpace(row.Description),
		Category:    strings.TrimSpace(row.Category),
		SubCategory: strings.TrimSpace(row.SubCategory),
		Tag:         strings.TrimSpace(row.Tag),
		Note:        strings.TrimSpace(row.Note),
		Line:        line,
	}, nil
}

func sortErrorsByLine(errs []*parsererror.ParseError) {
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Line < errs[j].Line
	})
}
