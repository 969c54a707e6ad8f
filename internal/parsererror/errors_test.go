package parsererror

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "field parse error",
			err: &ParseError{
				Line:  4,
				Field: "amount_out",
				Value: "12,3x",
				Err:   errors.New("invalid decimal"),
			},
			expected: "line 4: failed to parse amount_out='12,3x': invalid decimal",
		},
		{
			name: "row level error without field",
			err: &ParseError{
				Line: 7,
				Err:  ErrWrongColumnCount,
			},
			expected: "line 7: wrong number of columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	parseErr := &ParseError{Line: 2, Err: ErrWrongColumnCount}

	assert.True(t, errors.Is(parseErr, ErrWrongColumnCount))

	wrapped := fmt.Errorf("reading batch: %w", parseErr)
	var target *ParseError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, 2, target.Line)
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{File: "categories.yaml", Reason: "malformed YAML", Err: errors.New("line 3: mapping values are not allowed")}
	assert.Equal(t, "invalid configuration in 'categories.yaml': malformed YAML: line 3: mapping values are not allowed", err.Error())

	noCause := &ConfigError{File: "config.yaml", Reason: "invalid log level: loud"}
	assert.Equal(t, "invalid configuration in 'config.yaml': invalid log level: loud", noCause.Error())
	assert.Nil(t, noCause.Unwrap())
}

func TestIOError(t *testing.T) {
	err := &IOError{Op: "open", Path: "missing.csv", Err: os.ErrNotExist}
	assert.Equal(t, "open missing.csv: file does not exist", err.Error())
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReferenceError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ReferenceError
		expected string
		cause    error
	}{
		{
			name:     "unknown category with line",
			err:      &ReferenceError{Line: 3, Category: "Travel", Err: ErrUnknownCategory},
			expected: "line 3: invalid category in transaction (Travel)",
			cause:    ErrUnknownCategory,
		},
		{
			name:     "unknown sub-category without line",
			err:      &ReferenceError{Category: "Food", SubCategory: "Caviar", Err: ErrUnknownSubCategory},
			expected: "sub-category set in transaction does not exist in category (Food/Caviar)",
			cause:    ErrUnknownSubCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, tt.err, tt.cause)
		})
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Name: "Groceries", Err: ErrDuplicateCategory}
	assert.Equal(t, "cannot add 'Groceries': the category name already exists", err.Error())
	assert.ErrorIs(t, err, ErrDuplicateCategory)

	withReason := &ValidationError{Name: "Bakery", Reason: "category 'Food' is invalid", Err: ErrUnknownCategory}
	assert.Contains(t, withReason.Error(), "category 'Food' is invalid")
}

func TestInvalidFormatError(t *testing.T) {
	err := &InvalidFormatError{
		FilePath:       "in.csv",
		ExpectedFormat: "date,amount_out",
		Msg:            "missing header",
	}
	assert.Equal(t, "invalid format in file 'in.csv': missing header. Expected: date,amount_out", err.Error())

	err.ActualContentSnippet = "foo,bar"
	assert.Contains(t, err.Error(), "Content snippet: 'foo,bar'")
}
