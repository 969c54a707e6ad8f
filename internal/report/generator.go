// Package report renders aggregated summaries as text, CSV, JSON or YAML.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"fjacquet/expense-tracker/internal/aggregator"
	"fjacquet/expense-tracker/internal/common"
	"fjacquet/expense-tracker/internal/currencyutils"
	"fjacquet/expense-tracker/internal/logging"

	"gopkg.in/yaml.v3"
)

// Supported report formats.
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ReportGenerator renders summaries in various formats.
type ReportGenerator struct {
	logger logging.Logger
	writer *common.Writer
}

// NewReportGenerator creates a new instance of ReportGenerator. CSV output
// uses writer's delimiter; a nil writer means comma separated.
func NewReportGenerator(logger logging.Logger, writer *common.Writer) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if writer == nil {
		writer = common.NewWriter(logger, ',', "")
	}
	return &ReportGenerator{
		logger: logger.WithField(logging.FieldComponent, "ReportGenerator"),
		writer: writer,
	}
}

// GenerateReport renders summary in the specified format.
// It returns the report as a byte slice and an error if generation fails or the format is unsupported.
func (g *ReportGenerator) GenerateReport(summary *aggregator.Summary, format string) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("cannot generate report from nil summary")
	}

	switch strings.ToLower(format) {
	case "", FormatText:
		return g.generateTextReport(summary)
	case FormatCSV:
		return g.generateCSVReport(summary)
	case FormatJSON:
		return g.generateJSONReport(summary)
	case FormatYAML:
		return g.generateYAMLReport(summary)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateTextReport(summary *aggregator.Summary) ([]byte, error) {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)

	bucketed := summary.Bucket != aggregator.BucketNone
	if bucketed {
		fmt.Fprint(tw, "Period\t")
	}
	fmt.Fprintln(tw, "Category\tSub-category\tCount\tTotal\t")

	for _, t := range summary.Totals {
		if bucketed {
			fmt.Fprintf(tw, "%s\t", t.Period)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t\n", t.Category, t.SubCategory, t.Count, currencyutils.FormatAmount(t.Amount, ""))
	}

	fmt.Fprintln(tw)
	if bucketed {
		fmt.Fprint(tw, "Period\t")
	}
	fmt.Fprintln(tw, "Category\t\tCount\tTotal\t")
	for _, ct := range summary.CategoryTotals {
		if bucketed {
			fmt.Fprintf(tw, "%s\t", ct.Period)
		}
		fmt.Fprintf(tw, "%s\t\t%d\t%s\t\n", ct.Category, ct.Count, currencyutils.FormatAmount(ct.Amount, ""))
	}

	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to render text report: %w", err)
	}

	fmt.Fprintf(&buf, "\nTransactions: %d\n", summary.Count)
	if period := summary.DateRange.String(); period != "" {
		fmt.Fprintf(&buf, "Period:       %s to %s\n",
			summary.DateRange.Start.Format("2006-01-02"),
			summary.DateRange.End.Format("2006-01-02"))
	}
	fmt.Fprintf(&buf, "Income:       %s\n", currencyutils.FormatAmount(summary.Income, ""))
	fmt.Fprintf(&buf, "Expenses:     %s\n", currencyutils.FormatAmount(summary.Expenses, ""))
	fmt.Fprintf(&buf, "Net:          %s\n", currencyutils.FormatAmount(summary.Net, ""))

	return buf.Bytes(), nil
}

func (g *ReportGenerator) generateCSVReport(summary *aggregator.Summary) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.writer.WriteTotals(&buf, summary.Totals); err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV report")
		return nil, fmt.Errorf("failed to marshal CSV report: %w", err)
	}
	return buf.Bytes(), nil
}

// generateJSONReport generates a report in JSON format.
func (g *ReportGenerator) generateJSONReport(summary *aggregator.Summary) ([]byte, error) {
	jsonReport, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(jsonReport, '\n'), nil
}

// generateYAMLReport generates a report in YAML format.
func (g *ReportGenerator) generateYAMLReport(summary *aggregator.Summary) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return buf.Bytes(), nil
}
