package categorizer

import "fjacquet/expense-tracker/internal/models"

// CategoryStoreInterface defines the interface for category data storage.
type CategoryStoreInterface interface {
	LoadCategories() ([]models.Category, error)
	SaveCategories(categories []models.Category) error
}
