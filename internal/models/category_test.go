package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleCategories() []Category {
	return []Category{
		{
			Name:  "Food",
			Rules: Rules{Keywords: []string{"restaurant"}},
			SubCategories: []SubCategory{
				{Name: "Groceries", Rules: Rules{Keywords: []string{"supermarket"}}},
				{Name: "Bakery"},
			},
		},
		{Name: "Salary", Rules: Rules{Patterns: []string{`^PAYROLL\b`}}},
	}
}

func TestFindCategory_IgnoresCase(t *testing.T) {
	categories := sampleCategories()

	cat, ok := FindCategory(categories, "fOOd")
	require.True(t, ok)
	assert.Equal(t, "Food", cat.Name)

	_, ok = FindCategory(categories, "Travel")
	assert.False(t, ok)
}

func TestFindCategory_ReturnsPointerIntoSlice(t *testing.T) {
	categories := sampleCategories()
	cat, ok := FindCategory(categories, "salary")
	require.True(t, ok)

	cat.SubCategories = append(cat.SubCategories, SubCategory{Name: "Bonus"})
	assert.True(t, categories[1].HasSubCategories())
}

func TestCategory_FindSubCategory(t *testing.T) {
	categories := sampleCategories()
	food := &categories[0]

	sub, ok := food.FindSubCategory("GROCERIES")
	require.True(t, ok)
	assert.Equal(t, "Groceries", sub.Name)

	_, ok = food.FindSubCategory("Caviar")
	assert.False(t, ok)
	assert.False(t, categories[1].HasSubCategories())
}

func TestCloneCategories_IsDeep(t *testing.T) {
	original := sampleCategories()
	clone := CloneCategories(original)
	require.Equal(t, original, clone)

	clone[0].Keywords[0] = "changed"
	clone[0].SubCategories[0].Name = "changed"
	assert.Equal(t, "restaurant", original[0].Keywords[0])
	assert.Equal(t, "Groceries", original[0].SubCategories[0].Name)
	assert.Nil(t, CloneCategories(nil))
}

func TestCategoriesConfig_YAMLLayout(t *testing.T) {
	data := `categories:
  - name: Food
    keywords: [restaurant]
    subcategories:
      - name: Groceries
        keywords: [supermarket]
        patterns: ["^COOP"]
  - name: Salary
`
	var cfg CategoriesConfig
	require.NoError(t, yaml.Unmarshal([]byte(data), &cfg))
	require.Len(t, cfg.Categories, 2)

	food := cfg.Categories[0]
	assert.Equal(t, []string{"restaurant"}, food.Keywords)
	require.Len(t, food.SubCategories, 1)
	assert.Equal(t, []string{"supermarket"}, food.SubCategories[0].Keywords)
	assert.Equal(t, []string{"^COOP"}, food.SubCategories[0].Patterns)
	assert.True(t, cfg.Categories[1].Rules.Empty())
}
