// Package summary implements the summary command.
package summary

import (
	"fjacquet/expense-tracker/cmd/common"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/aggregator"
	"fjacquet/expense-tracker/internal/fileutils"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/parsererror"

	"github.com/spf13/cobra"
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize a transaction CSV file by category",
	Long: `Categorize a transaction CSV file and print the totals per category and
sub-category, optionally grouped by month or year.`,
	RunE: summaryFunc,
}

func init() {
	Cmd.Flags().StringP("input", "i", "", "Input CSV file")
	Cmd.Flags().StringP("output", "o", "", "Report file (default: stdout)")
	Cmd.Flags().String("by", "none", "Time bucket: none, month or year")
	Cmd.Flags().String("format", "text", "Report format: text, csv, json or yaml")
}

func summaryFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	cfg := c.GetConfig()

	bucket, err := aggregator.ParseBucket(cfg.Report.Bucket)
	if err != nil {
		return err
	}

	result, err := common.LoadLedger(common.CommandContext(cmd), c, cfg.CSV.InputFile, cfg.Categorization.AutoLearn)
	if err != nil {
		return err
	}

	summary := c.GetAggregator().Summarize(result.Ledger.Transactions(), bucket)
	out, err := c.GetReportGenerator().GenerateReport(summary, cfg.Report.Format)
	if err != nil {
		return err
	}

	if cfg.CSV.OutputFile == "" {
		if _, err := cmd.OutOrStdout().Write(out); err != nil {
			return err
		}
	} else {
		if err := fileutils.WriteFileAtomic(cfg.CSV.OutputFile, out, 0600); err != nil {
			return &parsererror.IOError{Op: "write", Path: cfg.CSV.OutputFile, Err: err}
		}
		c.GetLogger().Info("Report written",
			logging.Field{Key: logging.FieldOutputFile, Value: cfg.CSV.OutputFile},
			logging.Field{Key: logging.FieldFormat, Value: cfg.Report.Format})
	}

	common.PrintCounts(cmd.ErrOrStderr(), result.Ledger)
	return nil
}
