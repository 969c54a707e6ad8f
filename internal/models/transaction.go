// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one dated, signed money movement read from a CSV row.
// Amount is positive for money coming in and negative for money going out.
type Transaction struct {
	Date        time.Time       `json:"date" yaml:"date"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Description string          `json:"description" yaml:"description"`
	Category    string          `json:"category,omitempty" yaml:"category,omitempty"`
	SubCategory string          `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
	Tag         string          `json:"tag,omitempty" yaml:"tag,omitempty"`
	Note        string          `json:"note,omitempty" yaml:"note,omitempty"`

	// Line is the physical line of the source row, 0 when not read from a file.
	Line int `json:"-" yaml:"-"`
}

// IsCategorized reports whether a category has been assigned.
func (t Transaction) IsCategorized() bool {
	return t.Category != ""
}

// CategoryLabel returns the category name, or UncategorizedLabel.
func (t Transaction) CategoryLabel() string {
	if t.Category == "" {
		return UncategorizedLabel
	}
	return t.Category
}

// IsExpense reports whether money left the account.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// Assign sets the category fields from a classification result.
func (t *Transaction) Assign(a Assignment) {
	t.Category = a.Category
	t.SubCategory = a.SubCategory
}

// Assignment is the outcome of classifying one transaction.
type Assignment struct {
	Category    string
	SubCategory string
	// Strategy names the rule source that produced the assignment.
	Strategy string
}

// Found reports whether the assignment names a category.
func (a Assignment) Found() bool {
	return a.Category != ""
}
