package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/expense-tracker/internal/aggregator"
	"fjacquet/expense-tracker/internal/csvparser"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "date,amount_out,amount_in,description,category,subcategory,tag,note\n"

func TestWriteTransactions(t *testing.T) {
	w := NewWriter(logging.NewMockLogger(), ',', "")
	txs := []models.Transaction{
		{
			Date:        time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.RequireFromString("-45.8"),
			Description: "SUPERMARKET XYZ",
			Category:    "Groceries",
		},
		{
			Date:        time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.RequireFromString("5200"),
			Description: "ACME PAYROLL",
			Category:    "Salary",
			SubCategory: "Base",
			Tag:         "work",
			Note:        "monthly, net",
		},
		{
			Date:        time.Date(2023, 1, 6, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.Zero,
			Description: "Card check",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, w.WriteTransactions(&buf, txs))

	expected := header +
		"03.01.2023,45.80,,SUPERMARKET XYZ,Groceries,,,\n" +
		"05.01.2023,,5200.00,ACME PAYROLL,Salary,Base,work,\"monthly, net\"\n" +
		"06.01.2023,,,Card check,,,,\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteTransactions_Nil(t *testing.T) {
	w := NewWriter(nil, 0, "")
	var buf bytes.Buffer
	assert.Error(t, w.WriteTransactions(&buf, nil))
}

func TestWriteTransactions_Empty(t *testing.T) {
	w := NewWriter(logging.NewMockLogger(), 0, "")
	var buf bytes.Buffer
	require.NoError(t, w.WriteTransactions(&buf, []models.Transaction{}))
	assert.Equal(t, header, buf.String())
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		delimiter rune
		layout    string
		input     string
	}{
		{
			name:      "comma and european dates",
			delimiter: ',',
			layout:    "02.01.2006",
			input: header +
				"03.01.2023,45.80,,SUPERMARKET XYZ,Groceries,Supermarket,,\n" +
				"05.01.2023,,5200.00,ACME PAYROLL,Salary,,work,\"monthly, net\"\n" +
				"09.01.2023,1850.00,,Rent,Housing,Rent,home,\n",
		},
		{
			name:      "semicolon and iso dates",
			delimiter: ';',
			layout:    "2006-01-02",
			input: strings.ReplaceAll(header, ",", ";") +
				"2023-01-03;45.80;;Bakery, corner;Food;;;\n" +
				"2023-02-01;;10.00;Refund;;;;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := csvparser.NewParser(logging.NewMockLogger(), tt.delimiter, tt.layout)
			result, err := parser.Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.Empty(t, result.Errors)

			var buf bytes.Buffer
			w := NewWriter(logging.NewMockLogger(), tt.delimiter, tt.layout)
			require.NoError(t, w.WriteTransactions(&buf, result.Transactions))

			assert.Equal(t, tt.input, buf.String())
		})
	}
}

func TestRoundTrip_NormalisesAmounts(t *testing.T) {
	input := header + "05.01.2023,,5'200,Payroll,,,,\n"
	result, err := csvparser.NewParser(logging.NewMockLogger(), ',', "").Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)

	var buf bytes.Buffer
	require.NoError(t, NewWriter(logging.NewMockLogger(), ',', "").WriteTransactions(&buf, result.Transactions))
	assert.Equal(t, header+"05.01.2023,,5200.00,Payroll,,,,\n", buf.String())
}

func TestWriteTransactionsToCSV(t *testing.T) {
	logger := logging.NewMockLogger()
	w := NewWriter(logger, ',', "")
	path := filepath.Join(t.TempDir(), "nested", "out.csv")

	txs := []models.Transaction{{
		Date:        time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("-9.5"),
		Description: "Coffee",
	}}
	require.NoError(t, w.WriteTransactionsToCSV(txs, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, header+"01.03.2023,9.50,,Coffee,,,,\n", string(data))
	assert.True(t, logger.HasEntry("INFO", "Writing transactions to CSV file"))
}

func TestWriteTotals(t *testing.T) {
	totals := []aggregator.Total{
		{Period: "2023-01", Category: "Groceries", SubCategory: "Supermarket", Count: 2, Amount: decimal.RequireFromString("-58")},
		{Period: "2023-01", Category: models.UncategorizedLabel, Count: 1, Amount: decimal.RequireFromString("-7.2")},
	}

	var buf bytes.Buffer
	w := NewWriter(logging.NewMockLogger(), ';', "")
	require.NoError(t, w.WriteTotals(&buf, totals))

	expected := "bucket;category;subcategory;count;total\n" +
		"2023-01;Groceries;Supermarket;2;-58.00\n" +
		"2023-01;Uncategorized;;1;-7.20\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteTotalsToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "totals.csv")
	w := NewWriter(logging.NewMockLogger(), ',', "")
	totals := []aggregator.Total{{Category: "Salary", Count: 1, Amount: decimal.RequireFromString("3200")}}

	require.NoError(t, w.WriteTotalsToCSV(totals, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bucket,category,subcategory,count,total\n,Salary,,1,3200.00\n", string(data))
}
