package categorizer

import (
	"context"
	"testing"

	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordStrategy_Name(t *testing.T) {
	strategy := &KeywordStrategy{}
	assert.Equal(t, "Keyword", strategy.Name())
}

func TestKeywordStrategy_Categorize(t *testing.T) {
	food := models.Category{
		Name:  "Food",
		Rules: models.Rules{Keywords: []string{"restaurant"}},
		SubCategories: []models.SubCategory{
			{Name: "Groceries", Rules: models.Rules{Keywords: []string{"supermarket"}}},
			{Name: "Bakery", Rules: models.Rules{Patterns: []string{`^boulangerie\b`}}},
		},
	}
	transport := models.Category{
		Name:  "Transport",
		Rules: models.Rules{Keywords: []string{"SBB", "restaurant car"}},
	}

	tests := []struct {
		name         string
		description  string
		categories   []models.Category
		opts         Options
		wantCategory string
		wantSub      string
		wantFound    bool
	}{
		{
			name:         "case insensitive keyword",
			description:  "SUPERMARKET XYZ",
			categories:   []models.Category{{Name: "Groceries", Rules: models.Rules{Keywords: []string{"supermarket"}}}},
			wantCategory: "Groceries",
			wantFound:    true,
		},
		{
			name:         "sub-category rules before category rules",
			description:  "Restaurant at the supermarket",
			categories:   []models.Category{food},
			wantCategory: "Food",
			wantSub:      "Groceries",
			wantFound:    true,
		},
		{
			name:         "category rule when no sub-category matches",
			description:  "Restaurant du Lac",
			categories:   []models.Category{food},
			wantCategory: "Food",
			wantFound:    true,
		},
		{
			name:         "pattern rule",
			description:  "Boulangerie du Coin",
			categories:   []models.Category{food},
			wantCategory: "Food",
			wantSub:      "Bakery",
			wantFound:    true,
		},
		{
			name:        "pattern is anchored",
			description: "Cafe near boulangerie",
			categories:  []models.Category{food},
			wantFound:   false,
		},
		{
			name:         "first category in order wins",
			description:  "SBB restaurant car",
			categories:   []models.Category{food, transport},
			wantCategory: "Food",
			wantFound:    true,
		},
		{
			name:         "order reversed",
			description:  "SBB restaurant car",
			categories:   []models.Category{transport, food},
			wantCategory: "Transport",
			wantFound:    true,
		},
		{
			name:        "case sensitive keywords",
			description: "supermarket xyz",
			categories:  []models.Category{{Name: "Groceries", Rules: models.Rules{Keywords: []string{"SUPERMARKET"}}}},
			opts:        Options{CaseSensitive: true},
			wantFound:   false,
		},
		{
			name:         "require sub-category skips category-only match",
			description:  "Restaurant du Lac",
			categories:   []models.Category{food, {Name: "Leisure", Rules: models.Rules{Keywords: []string{"lac"}}}},
			opts:         Options{RequireSubCategory: true},
			wantCategory: "Leisure",
			wantFound:    true,
		},
		{
			name:        "empty description",
			description: "   ",
			categories:  []models.Category{food},
			wantFound:   false,
		},
		{
			name:        "no categories",
			description: "anything",
			wantFound:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := NewKeywordStrategy(tt.categories, tt.opts, logging.NewMockLogger())
			require.NoError(t, err)

			assignment, found, err := strategy.Categorize(context.Background(), models.Transaction{Description: tt.description})
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantCategory, assignment.Category)
			assert.Equal(t, tt.wantSub, assignment.SubCategory)
			if found {
				assert.Equal(t, "Keyword", assignment.Strategy)
			}
		})
	}
}

func TestKeywordStrategy_InvalidPattern(t *testing.T) {
	_, err := NewKeywordStrategy([]models.Category{{Name: "Bad", Rules: models.Rules{Patterns: []string{"("}}}}, Options{}, logging.NewMockLogger())
	assert.Error(t, err)
}

func TestKeywordStrategy_IgnoresBlankKeywords(t *testing.T) {
	strategy, err := NewKeywordStrategy([]models.Category{{Name: "All", Rules: models.Rules{Keywords: []string{"", "  "}}}}, Options{}, logging.NewMockLogger())
	require.NoError(t, err)

	_, found, err := strategy.Categorize(context.Background(), models.Transaction{Description: "anything"})
	require.NoError(t, err)
	assert.False(t, found)
}
