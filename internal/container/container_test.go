package container

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/expense-tracker/internal/config"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const categoriesYAML = `categories:
  - name: Groceries
    keywords: [supermarket]
    subcategories:
      - name: Bakery
        keywords: [boulangerie]
  - name: Salary
`

func testConfig(t *testing.T, categories string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	path := filepath.Join(t.TempDir(), "categories.yaml")
	if categories != "" {
		require.NoError(t, os.WriteFile(path, []byte(categories), 0600))
	}
	cfg.Categories.File = path
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      func(t *testing.T) *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      func(t *testing.T) *config.Config { return nil },
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "valid config",
			config: func(t *testing.T) *config.Config { return testConfig(t, categoriesYAML) },
		},
		{
			name:   "missing categories file",
			config: func(t *testing.T) *config.Config { return testConfig(t, "") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config(t))
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, c)
			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetConfig())
			assert.NotNil(t, c.GetStore())
			assert.NotNil(t, c.GetCategorizer())
			assert.NotNil(t, c.GetParser())
			assert.NotNil(t, c.GetWriter())
			assert.NotNil(t, c.GetAggregator())
			assert.NotNil(t, c.GetReportGenerator())
			assert.NoError(t, c.Close())
		})
	}
}

func TestNewContainer_InvalidCategories(t *testing.T) {
	cfg := testConfig(t, "categories:\n  - name: A\n  - name: a\n")

	_, err := NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.Error(t, err)

	var cfgErr *parsererror.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestContainer_RunID(t *testing.T) {
	logger := logging.NewMockLogger()
	c, err := NewContainerWithLogger(testConfig(t, categoriesYAML), logger)
	require.NoError(t, err)

	assert.Len(t, c.GetRunID(), 36)

	c.GetLogger().Info("hello")
	entries := logger.GetEntriesByLevel("INFO")
	require.NotEmpty(t, entries)
	id, ok := entries[len(entries)-1].FieldValue(logging.FieldRunID)
	require.True(t, ok)
	assert.Equal(t, c.GetRunID(), id)
}

func TestContainer_NewLedger(t *testing.T) {
	cfg := testConfig(t, categoriesYAML)
	cfg.Categorization.RequireSubCategory = true

	c, err := NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)

	l := c.NewLedger()
	assert.Len(t, l.Categories(), 2)
	assert.Equal(t, 0, l.Len())
}

func TestNewContainerWithLogger_NilLogger(t *testing.T) {
	_, err := NewContainerWithLogger(config.DefaultConfig(), nil)
	assert.EqualError(t, err, "logger cannot be nil")
}
