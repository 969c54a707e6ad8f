package store

import (
	"fjacquet/expense-tracker/internal/models"
)

// MockCategoryStore is an in-memory CategoryStore for testing.
type MockCategoryStore struct {
	Categories []models.Category

	// Error flags for testing error conditions
	LoadCategoriesError error
	SaveCategoriesError error

	// SaveCount counts successful SaveCategories calls.
	SaveCount int
}

// LoadCategories returns a copy of the mock categories.
func (m *MockCategoryStore) LoadCategories() ([]models.Category, error) {
	if m.LoadCategoriesError != nil {
		return nil, m.LoadCategoriesError
	}
	if m.Categories == nil {
		return []models.Category{}, nil
	}
	return models.CloneCategories(m.Categories), nil
}

// SaveCategories replaces the mock categories.
func (m *MockCategoryStore) SaveCategories(categories []models.Category) error {
	if m.SaveCategoriesError != nil {
		return m.SaveCategoriesError
	}
	m.Categories = models.CloneCategories(categories)
	m.SaveCount++
	return nil
}

// FindConfigFile is a mock implementation that returns a dummy path.
func (m *MockCategoryStore) FindConfigFile(filename string) (string, error) {
	return "/mock/path/" + filename, nil
}
