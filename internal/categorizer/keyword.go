package categorizer

import (
	"context"
	"strings"

	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
)

// KeywordStrategy implements categorization using the keyword and pattern
// rules of the configured categories. Categories are tried in order; within a
// category the sub-category rules come before the category's own rules. The
// first match wins.
type KeywordStrategy struct {
	categories         []compiledCategory
	requireSubCategory bool
	logger             logging.Logger
}

// NewKeywordStrategy creates a new KeywordStrategy instance.
func NewKeywordStrategy(categories []models.Category, opts Options, logger logging.Logger) (*KeywordStrategy, error) {
	compiled, err := compileCategories(categories, opts.CaseSensitive)
	if err != nil {
		return nil, err
	}
	return &KeywordStrategy{
		categories:         compiled,
		requireSubCategory: opts.RequireSubCategory,
		logger:             logger,
	}, nil
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize attempts to categorize a transaction using keyword pattern matching.
func (s *KeywordStrategy) Categorize(ctx context.Context, tx models.Transaction) (models.Assignment, bool, error) {
	if strings.TrimSpace(tx.Description) == "" {
		return models.Assignment{}, false, nil
	}

	for i := range s.categories {
		category := &s.categories[i]

		if sub, rule, ok := category.matchSubCategory(tx.Description); ok {
			s.logMatch(tx, category.name, sub.name, rule)
			return models.Assignment{Category: category.name, SubCategory: sub.name, Strategy: s.Name()}, true, nil
		}

		// A category-only assignment is not valid for a category that
		// demands a sub-category.
		if s.requireSubCategory && len(category.subCategories) > 0 {
			continue
		}

		if rule, ok := category.rules.match(tx.Description); ok {
			s.logMatch(tx, category.name, "", rule)
			return models.Assignment{Category: category.name, Strategy: s.Name()}, true, nil
		}
	}

	return models.Assignment{}, false, nil
}

func (s *KeywordStrategy) logMatch(tx models.Transaction, category, subCategory, rule string) {
	s.logger.WithFields(
		logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
		logging.Field{Key: logging.FieldLine, Value: tx.Line},
		logging.Field{Key: logging.FieldKeyword, Value: rule},
		logging.Field{Key: logging.FieldCategory, Value: category},
		logging.Field{Key: logging.FieldSubCategory, Value: subCategory},
	).Debug("Transaction categorized using keyword matching")
}
