// Package common provides the CSV writer shared by the run and summary commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"

	"fjacquet/expense-tracker/internal/aggregator"
	"fjacquet/expense-tracker/internal/csvparser"
	"fjacquet/expense-tracker/internal/currencyutils"
	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/fileutils"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/parsererror"

	"github.com/gocarina/gocsv"
)

// TotalRow is the CSV representation of one aggregated total.
type TotalRow struct {
	Bucket      string `csv:"bucket"`
	Category    string `csv:"category"`
	SubCategory string `csv:"subcategory"`
	Count       int    `csv:"count"`
	Total       string `csv:"total"`
}

// Writer writes transactions and totals as CSV.
type Writer struct {
	logger     logging.Logger
	delimiter  rune
	dateLayout string
}

// NewWriter creates a Writer using the same conventions as csvparser.NewParser:
// a zero delimiter means ',' and an empty layout means DD.MM.YYYY.
func NewWriter(logger logging.Logger, delimiter rune, dateLayout string) *Writer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	if dateLayout == "" {
		dateLayout = dateutils.DateLayoutEuropean
	}
	return &Writer{
		logger:     logger.WithField(logging.FieldComponent, "writer"),
		delimiter:  delimiter,
		dateLayout: dateLayout,
	}
}

// TransactionRows converts transactions to their CSV rows in the input layout.
func (w *Writer) TransactionRows(transactions []models.Transaction) []csvparser.TransactionRow {
	rows := make([]csvparser.TransactionRow, 0, len(transactions))
	for _, tx := range transactions {
		out, in := currencyutils.SplitAmount(tx.Amount)
		rows = append(rows, csvparser.TransactionRow{
			Date:        dateutils.FormatDate(tx.Date, w.dateLayout),
			AmountOut:   out,
			AmountIn:    in,
			Description: tx.Description,
			Category:    tx.Category,
			SubCategory: tx.SubCategory,
			Tag:         tx.Tag,
			Note:        tx.Note,
		})
	}
	return rows
}

// WriteTransactions writes the header and one row per transaction to out.
func (w *Writer) WriteTransactions(out io.Writer, transactions []models.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}
	return w.marshal(out, w.TransactionRows(transactions))
}

// WriteTransactionsToCSV writes transactions to csvFile, creating parent
// directories as needed.
func (w *Writer) WriteTransactionsToCSV(transactions []models.Transaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	w.logger.Info("Writing transactions to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	return w.writeFile(csvFile, func(f io.Writer) error {
		return w.WriteTransactions(f, transactions)
	})
}

// TotalRows converts aggregated totals to CSV rows. Amounts carry two decimals.
func TotalRows(totals []aggregator.Total) []TotalRow {
	rows := make([]TotalRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, TotalRow{
			Bucket:      t.Period,
			Category:    t.Category,
			SubCategory: t.SubCategory,
			Count:       t.Count,
			Total:       t.Amount.StringFixed(2),
		})
	}
	return rows
}

// WriteTotals writes the header and one row per total to out.
func (w *Writer) WriteTotals(out io.Writer, totals []aggregator.Total) error {
	return w.marshal(out, TotalRows(totals))
}

// WriteTotalsToCSV writes totals to csvFile.
func (w *Writer) WriteTotalsToCSV(totals []aggregator.Total, csvFile string) error {
	w.logger.Info("Writing totals to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(totals)})

	return w.writeFile(csvFile, func(f io.Writer) error {
		return w.WriteTotals(f, totals)
	})
}

func (w *Writer) marshal(out io.Writer, rows interface{}) error {
	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = w.delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error marshaling to CSV: %w", err)
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("error flushing CSV writer: %w", err)
	}
	return nil
}

func (w *Writer) writeFile(path string, write func(io.Writer) error) (err error) {
	file, err := fileutils.CreateFile(path)
	if err != nil {
		w.logger.WithError(err).Error("Failed to create CSV file")
		return &parsererror.IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = &parsererror.IOError{Op: "close", Path: path, Err: closeErr}
		}
	}()

	if err := write(file); err != nil {
		w.logger.WithError(err).Error("Failed to write CSV file")
		return err
	}
	return nil
}
