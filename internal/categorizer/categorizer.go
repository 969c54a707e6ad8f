// Package categorizer assigns categories and sub-categories to transactions.
//
// Strategies are evaluated in a fixed order and the first one that decides a
// transaction wins:
//  1. Assigned: the category already written in the transaction, resolved
//     against the known categories
//  2. Keyword: keyword and pattern rules from the category configuration
//
// A transaction no strategy decides stays uncategorized.
package categorizer

import (
	"context"
	"fmt"

	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
)

// Options tunes rule matching and reference validation.
type Options struct {
	// CaseSensitive makes keywords and patterns match case-sensitively.
	CaseSensitive bool
	// RequireSubCategory rejects a category-only assignment for a category
	// that defines sub-categories.
	RequireSubCategory bool
}

// Categorizer runs the strategy chain over transactions.
type Categorizer struct {
	categories []models.Category
	strategies []CategorizationStrategy
	opts       Options
	logger     logging.Logger
}

// NewCategorizer creates a Categorizer from the categories held by store.
func NewCategorizer(store CategoryStoreInterface, logger logging.Logger, opts Options) (*Categorizer, error) {
	categories, err := store.LoadCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return NewCategorizerFromCategories(categories, logger, opts)
}

// NewCategorizerFromCategories creates a Categorizer for an explicit category list.
func NewCategorizerFromCategories(categories []models.Category, logger logging.Logger, opts Options) (*Categorizer, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	c := &Categorizer{
		opts:   opts,
		logger: logger.WithField(logging.FieldComponent, "categorizer"),
	}
	if err := c.Reload(categories); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload rebuilds the strategy chain for a new category list.
func (c *Categorizer) Reload(categories []models.Category) error {
	assigned, err := NewAssignedStrategy(categories, c.opts, c.logger)
	if err != nil {
		return err
	}
	keyword, err := NewKeywordStrategy(categories, c.opts, c.logger)
	if err != nil {
		return err
	}

	c.categories = models.CloneCategories(categories)
	c.strategies = []CategorizationStrategy{assigned, keyword}
	c.logger.Debug("Categorizer ready",
		logging.Field{Key: logging.FieldCount, Value: len(categories)})
	return nil
}

// Categories returns a copy of the categories the chain was built from.
func (c *Categorizer) Categories() []models.Category {
	return models.CloneCategories(c.categories)
}

// Strategies returns the strategy chain in evaluation order.
func (c *Categorizer) Strategies() []CategorizationStrategy {
	return append([]CategorizationStrategy(nil), c.strategies...)
}

// Classify returns the assignment for tx. A zero Assignment with a nil error
// means no rule matched. An error means tx must not be recorded, typically a
// *parsererror.ReferenceError.
func (c *Categorizer) Classify(ctx context.Context, tx models.Transaction) (models.Assignment, error) {
	var results StrategyResults
	for _, strategy := range c.strategies {
		if err := ctx.Err(); err != nil {
			return models.Assignment{}, err
		}

		assignment, found, err := strategy.Categorize(ctx, tx)
		results.Add(strategy.Name(), assignment, found, err)
		if err != nil {
			c.logger.WithError(err).Debug("Transaction rejected",
				logging.Field{Key: logging.FieldLine, Value: tx.Line},
				logging.Field{Key: logging.FieldReason, Value: results.Summary()})
			return models.Assignment{}, err
		}
		if found {
			break
		}
	}

	assignment, _ := results.GetBestResult()
	return assignment, nil
}

// ClassifyDescription classifies a free-standing description.
func (c *Categorizer) ClassifyDescription(ctx context.Context, description string) (models.Assignment, error) {
	return c.Classify(ctx, models.Transaction{Description: description})
}

// ClassifyAll classifies every transaction. Transactions that were decided or
// left uncategorized are returned in input order with their category fields
// set; rejected ones are reported in errs instead.
func (c *Categorizer) ClassifyAll(ctx context.Context, transactions []models.Transaction) (classified []models.Transaction, errs []error) {
	classified = make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		assignment, err := c.Classify(ctx, tx)
		if err != nil {
			if ctx.Err() != nil {
				return classified, append(errs, err)
			}
			errs = append(errs, err)
			continue
		}
		tx.Assign(assignment)
		classified = append(classified, tx)
	}
	return classified, errs
}
