// Package container provides dependency injection for the expense-tracker application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/expense-tracker/internal/aggregator"
	"fjacquet/expense-tracker/internal/categorizer"
	"fjacquet/expense-tracker/internal/common"
	"fjacquet/expense-tracker/internal/config"
	"fjacquet/expense-tracker/internal/csvparser"
	"fjacquet/expense-tracker/internal/ledger"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/report"
	"fjacquet/expense-tracker/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	runID       string
	config      *config.Config
	store       *store.CategoryStore
	categorizer *categorizer.Categorizer
	parser      *csvparser.Parser
	writer      *common.Writer
	aggregator  *aggregator.Aggregator
	reports     *report.ReportGenerator
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger is NewContainer with an explicit base logger. Every
// component logs through it with the run identifier attached.
func NewContainerWithLogger(cfg *config.Config, baseLogger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if baseLogger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	logger, runID := logging.WithRunID(baseLogger)

	categoryStore := store.NewCategoryStore(cfg.Categories.File, logger)

	cat, err := categorizer.NewCategorizer(categoryStore, logger, categorizer.Options{
		CaseSensitive:      cfg.Categorization.CaseSensitive,
		RequireSubCategory: cfg.Categorization.RequireSubCategory,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create categorizer: %w", err)
	}

	delimiter := cfg.DelimiterRune()
	layout := cfg.DateLayout()
	writer := common.NewWriter(logger, delimiter, layout)

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldFile, Value: cfg.Categories.File},
		logging.Field{Key: logging.FieldDelimiter, Value: string(delimiter)},
		logging.Field{Key: logging.FieldFormat, Value: layout})

	return &Container{
		logger:      logger,
		runID:       runID,
		config:      cfg,
		store:       categoryStore,
		categorizer: cat,
		parser:      csvparser.NewParser(logger, delimiter, layout),
		writer:      writer,
		aggregator:  aggregator.NewAggregator(logger),
		reports:     report.NewReportGenerator(logger, writer),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetRunID returns the identifier attached to every log line of this run.
func (c *Container) GetRunID() string {
	return c.runID
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's category store instance.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetParser returns the transaction CSV reader.
func (c *Container) GetParser() *csvparser.Parser {
	return c.parser
}

// GetWriter returns the CSV writer.
func (c *Container) GetWriter() *common.Writer {
	return c.writer
}

// GetAggregator returns the aggregator.
func (c *Container) GetAggregator() *aggregator.Aggregator {
	return c.aggregator
}

// GetReportGenerator returns the summary renderer.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// NewLedger returns an empty ledger seeded with the categorizer's categories.
func (c *Container) NewLedger() *ledger.Ledger {
	return ledger.New(c.categorizer.Categories(), c.config.Categorization.RequireSubCategory, c.logger)
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
