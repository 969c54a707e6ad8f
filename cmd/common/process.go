// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fjacquet/expense-tracker/internal/container"
	"fjacquet/expense-tracker/internal/ledger"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"

	"github.com/spf13/cobra"
)

// RunOptions selects the input, the output and the behaviour of a run.
// Learn adds unknown categories named in the input to the category store
// before classification. Validate checks the header before processing.
type RunOptions struct {
	InputFile  string
	OutputFile string
	Learn      bool
	Validate   bool
}

// RunResult reports what a run did. Duplicates counts accepted transactions
// that look like an earlier one.
type RunResult struct {
	Ledger     *ledger.Ledger
	Rejected   int
	Learned    bool
	Duplicates int
}

// LoadLedger parses inputFile, classifies every readable row and records the
// accepted transactions in a new ledger. Rows that cannot be read or that
// reference unknown categories are counted as ignored. Only file-level
// failures are returned as errors.
func LoadLedger(ctx context.Context, c *container.Container, inputFile string, learn bool) (*RunResult, error) {
	if inputFile == "" {
		return nil, fmt.Errorf("no input file given")
	}
	logger := c.GetLogger().WithField(logging.FieldInputFile, inputFile)

	parsed, err := c.GetParser().ParseFile(inputFile)
	if err != nil {
		return nil, err
	}

	l := c.NewLedger()
	for _, perr := range parsed.Errors {
		l.Ignore(perr)
	}

	result := &RunResult{Ledger: l, Rejected: parsed.Rejected()}

	if learn {
		learned, err := learnCategories(c, l, parsed.Transactions, logger)
		if err != nil {
			return nil, err
		}
		result.Learned = learned
	}

	classified, errs := c.GetCategorizer().ClassifyAll(ctx, parsed.Transactions)
	for _, err := range errs {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		logger.WithError(err).Warn("Ignoring transaction")
		l.Ignore(err)
	}

	for _, tx := range classified {
		if err := l.Add(tx); err != nil {
			logger.WithError(err).Warn("Ignoring transaction")
		}
	}

	if duplicates := l.PotentialDuplicates(); len(duplicates) > 0 {
		for _, d := range duplicates {
			logger.Warn("Potential duplicate transaction",
				logging.Field{Key: logging.FieldLine, Value: d.Second.Line},
				logging.Field{Key: logging.FieldDuplicateOf, Value: d.First.Line},
				logging.Field{Key: logging.FieldAmount, Value: d.First.Amount.String()})
		}
		result.Duplicates = len(duplicates)
	}

	l.LogSummary(inputFile)
	return result, nil
}

// learnCategories records the categories named in transactions, saves them
// when anything new was found and rebuilds the categorizer.
func learnCategories(c *container.Container, l *ledger.Ledger, transactions []models.Transaction, logger logging.Logger) (bool, error) {
	for _, tx := range transactions {
		if _, err := l.Learn(tx); err != nil {
			logger.WithError(err).Warn("Cannot learn category",
				logging.Field{Key: logging.FieldLine, Value: tx.Line})
		}
	}
	if !l.Dirty() {
		return false, nil
	}

	categories := l.Categories()
	if err := c.GetStore().SaveCategories(categories); err != nil {
		return false, fmt.Errorf("failed to save learned categories: %w", err)
	}
	if err := c.GetCategorizer().Reload(categories); err != nil {
		return false, fmt.Errorf("failed to reload categories: %w", err)
	}
	l.MarkSaved()
	logger.Info("Learned categories saved",
		logging.Field{Key: logging.FieldFile, Value: c.GetStore().CategoriesFile},
		logging.Field{Key: logging.FieldCount, Value: len(categories)})
	return true, nil
}

// ProcessFile runs the full pipeline: parse, classify, record and write the
// accepted transactions to opts.OutputFile, or to stdout when it is empty.
// A one-line count summary is printed to out.
func ProcessFile(ctx context.Context, c *container.Container, opts RunOptions, stdout, out io.Writer) (*RunResult, error) {
	if opts.Validate {
		c.GetLogger().Info("Validating format...")
		valid, err := c.GetParser().ValidateFormat(opts.InputFile)
		if err != nil {
			return nil, fmt.Errorf("error validating file: %w", err)
		}
		if !valid {
			return nil, fmt.Errorf("the file %s is not in a valid format", opts.InputFile)
		}
		c.GetLogger().Info("Validation successful.")
	}

	result, err := LoadLedger(ctx, c, opts.InputFile, opts.Learn)
	if err != nil {
		return nil, err
	}

	transactions := result.Ledger.Transactions()
	if opts.OutputFile != "" {
		if err := c.GetWriter().WriteTransactionsToCSV(transactions, opts.OutputFile); err != nil {
			return nil, err
		}
	} else if err := c.GetWriter().WriteTransactions(stdout, transactions); err != nil {
		return nil, err
	}

	PrintCounts(out, result.Ledger)
	return result, nil
}

// PrintCounts writes the valid and ignored totals of l.
func PrintCounts(out io.Writer, l *ledger.Ledger) {
	fmt.Fprintf(out, "%d valid transactions loaded, %d ignored\n", l.Len(), l.Ignored())
}

// CommandContext returns the command's context, or context.Background when
// the command was not started through Execute.
func CommandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
