package categorizer

import (
	"context"

	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/parsererror"
)

// AssignedStrategy honours a category already written in the transaction's
// category column. The names are resolved against the known categories and
// returned with their defined casing. A transaction naming an unknown
// category or sub-category is rejected with a *parsererror.ReferenceError.
type AssignedStrategy struct {
	categories         []compiledCategory
	requireSubCategory bool
	logger             logging.Logger
}

// NewAssignedStrategy creates a new AssignedStrategy instance.
func NewAssignedStrategy(categories []models.Category, opts Options, logger logging.Logger) (*AssignedStrategy, error) {
	compiled, err := compileCategories(categories, opts.CaseSensitive)
	if err != nil {
		return nil, err
	}
	return &AssignedStrategy{
		categories:         compiled,
		requireSubCategory: opts.RequireSubCategory,
		logger:             logger,
	}, nil
}

// Name returns the name of this strategy for logging and debugging.
func (s *AssignedStrategy) Name() string {
	return "Assigned"
}

// Categorize resolves the transaction's own category reference.
func (s *AssignedStrategy) Categorize(ctx context.Context, tx models.Transaction) (models.Assignment, bool, error) {
	if tx.Category == "" {
		if tx.SubCategory != "" {
			return models.Assignment{}, false, &parsererror.ReferenceError{
				Line: tx.Line, SubCategory: tx.SubCategory, Err: parsererror.ErrUnknownCategory,
			}
		}
		return models.Assignment{}, false, nil
	}

	category, ok := findCompiledCategory(s.categories, tx.Category)
	if !ok {
		return models.Assignment{}, false, &parsererror.ReferenceError{
			Line: tx.Line, Category: tx.Category, SubCategory: tx.SubCategory, Err: parsererror.ErrUnknownCategory,
		}
	}

	assignment := models.Assignment{Category: category.name, Strategy: s.Name()}

	switch {
	case tx.SubCategory != "":
		sub, ok := category.findSubCategory(tx.SubCategory)
		if !ok {
			return models.Assignment{}, false, &parsererror.ReferenceError{
				Line: tx.Line, Category: category.name, SubCategory: tx.SubCategory, Err: parsererror.ErrUnknownSubCategory,
			}
		}
		assignment.SubCategory = sub.name

	case len(category.subCategories) > 0:
		if sub, rule, ok := category.matchSubCategory(tx.Description); ok {
			assignment.SubCategory = sub.name
			s.logger.Debug("Sub-category inferred from rules",
				logging.Field{Key: logging.FieldCategory, Value: category.name},
				logging.Field{Key: logging.FieldSubCategory, Value: sub.name},
				logging.Field{Key: logging.FieldKeyword, Value: rule})
		} else if s.requireSubCategory {
			return models.Assignment{}, false, &parsererror.ReferenceError{
				Line: tx.Line, Category: category.name, Err: parsererror.ErrMissingSubCategory,
			}
		}
	}

	return assignment, true, nil
}
