package categorizer

import (
	"context"

	"fjacquet/expense-tracker/internal/models"
)

// CategorizationStrategy defines one way of assigning a category to a transaction.
type CategorizationStrategy interface {
	// Categorize attempts to categorize tx.
	//
	// Returns:
	//   - models.Assignment: The assigned category (only valid if found is true)
	//   - bool: Whether this strategy decided the transaction
	//   - error: A reason to reject the transaction altogether
	Categorize(ctx context.Context, tx models.Transaction) (models.Assignment, bool, error)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
