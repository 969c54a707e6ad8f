// Package ledger holds the categories and the accepted transactions of one run.
package ledger

import (
	"fmt"
	"strings"

	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/parsererror"
)

// Ledger owns the known categories and the transactions recorded against
// them. Every recorded transaction is either uncategorized or references an
// existing category and, at most, one of that category's sub-categories.
type Ledger struct {
	categories         []models.Category
	transactions       []models.Transaction
	ignored            int
	requireSubCategory bool
	dirty              bool
	logger             logging.Logger
}

// New creates a Ledger seeded with categories.
func New(categories []models.Category, requireSubCategory bool, logger logging.Logger) *Ledger {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Ledger{
		categories:         models.CloneCategories(categories),
		requireSubCategory: requireSubCategory,
		logger:             logger.WithField(logging.FieldComponent, "ledger"),
	}
}

// Categories returns a copy of the known categories, in definition order.
func (l *Ledger) Categories() []models.Category {
	return models.CloneCategories(l.categories)
}

// Transactions returns a copy of the recorded transactions, in insertion order.
func (l *Ledger) Transactions() []models.Transaction {
	return append([]models.Transaction(nil), l.transactions...)
}

// Len returns the number of recorded transactions.
func (l *Ledger) Len() int {
	return len(l.transactions)
}

// Ignored returns how many transactions were rejected.
func (l *Ledger) Ignored() int {
	return l.ignored
}

// Dirty reports whether categories were added since creation or MarkSaved.
func (l *Ledger) Dirty() bool {
	return l.dirty
}

// MarkSaved clears the dirty flag once the categories have been persisted.
func (l *Ledger) MarkSaved() {
	l.dirty = false
}

// AddCategory registers a new top-level category.
func (l *Ledger) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &parsererror.ValidationError{Name: name, Err: parsererror.ErrEmptyName}
	}
	if _, ok := models.FindCategory(l.categories, name); ok {
		return &parsererror.ValidationError{Name: name, Err: parsererror.ErrDuplicateCategory}
	}

	l.categories = append(l.categories, models.Category{Name: name})
	l.dirty = true
	l.logger.Info("Category added", logging.Field{Key: logging.FieldCategory, Value: name})
	return nil
}

// AddSubCategory registers a sub-category under an existing category.
func (l *Ledger) AddSubCategory(category, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &parsererror.ValidationError{Name: name, Err: parsererror.ErrEmptyName}
	}

	parent, ok := models.FindCategory(l.categories, category)
	if !ok {
		return &parsererror.ValidationError{
			Name:   name,
			Reason: "sub-category cannot be added because its category is invalid",
			Err:    parsererror.ErrUnknownCategory,
		}
	}
	if _, exists := parent.FindSubCategory(name); exists {
		return &parsererror.ValidationError{Name: name, Err: parsererror.ErrDuplicateSubCategory}
	}

	parent.SubCategories = append(parent.SubCategories, models.SubCategory{Name: name})
	l.dirty = true
	l.logger.Info("Sub-category added",
		logging.Field{Key: logging.FieldCategory, Value: parent.Name},
		logging.Field{Key: logging.FieldSubCategory, Value: name})
	return nil
}

// Learn adds the category and sub-category named by tx when they are not
// known yet. It reports whether anything was added.
func (l *Ledger) Learn(tx models.Transaction) (bool, error) {
	if tx.Category == "" {
		return false, nil
	}

	added := false
	if _, ok := models.FindCategory(l.categories, tx.Category); !ok {
		if err := l.AddCategory(tx.Category); err != nil {
			return false, err
		}
		added = true
	}

	if tx.SubCategory != "" {
		parent, _ := models.FindCategory(l.categories, tx.Category)
		if _, ok := parent.FindSubCategory(tx.SubCategory); !ok {
			if err := l.AddSubCategory(parent.Name, tx.SubCategory); err != nil {
				return added, err
			}
			added = true
		}
	}
	return added, nil
}

// Add records tx after checking that its category references are valid.
// Names are normalized to the casing the categories were defined with. A
// rejected transaction is counted as ignored and the reason returned.
func (l *Ledger) Add(tx models.Transaction) error {
	if err := l.resolve(&tx); err != nil {
		l.Ignore(err)
		return err
	}
	l.transactions = append(l.transactions, tx)
	return nil
}

// Ignore counts a transaction that never made it into the ledger, such as an
// unreadable row.
func (l *Ledger) Ignore(reason error) {
	l.ignored++
	l.logger.WithError(reason).Debug("Transaction ignored")
}

func (l *Ledger) resolve(tx *models.Transaction) error {
	if tx.Category == "" {
		if tx.SubCategory != "" {
			return &parsererror.ReferenceError{Line: tx.Line, SubCategory: tx.SubCategory, Err: parsererror.ErrUnknownCategory}
		}
		return nil
	}

	category, ok := models.FindCategory(l.categories, tx.Category)
	if !ok {
		return &parsererror.ReferenceError{Line: tx.Line, Category: tx.Category, SubCategory: tx.SubCategory, Err: parsererror.ErrUnknownCategory}
	}
	tx.Category = category.Name

	if tx.SubCategory == "" {
		if l.requireSubCategory && category.HasSubCategories() {
			return &parsererror.ReferenceError{Line: tx.Line, Category: category.Name, Err: parsererror.ErrMissingSubCategory}
		}
		return nil
	}

	sub, ok := category.FindSubCategory(tx.SubCategory)
	if !ok {
		return &parsererror.ReferenceError{Line: tx.Line, Category: category.Name, SubCategory: tx.SubCategory, Err: parsererror.ErrUnknownSubCategory}
	}
	tx.SubCategory = sub.Name
	return nil
}

// LogSummary logs how many transactions were accepted and ignored.
func (l *Ledger) LogSummary(source string) {
	l.logger.Info(fmt.Sprintf("%d valid transactions loaded, %d ignored", l.Len(), l.ignored),
		logging.Field{Key: logging.FieldFile, Value: source},
		logging.Field{Key: logging.FieldCount, Value: l.Len()},
		logging.Field{Key: logging.FieldIgnored, Value: l.ignored})
}

// Duplicate pairs two recorded transactions that look like the same movement.
type Duplicate struct {
	First  models.Transaction
	Second models.Transaction
}

// PotentialDuplicates returns recorded transactions sharing date, amount and
// description (ignoring case), each paired with its first later match.
// Duplicates are reported, never removed.
func (l *Ledger) PotentialDuplicates() []Duplicate {
	var duplicates []Duplicate
	for i := 0; i < len(l.transactions)-1; i++ {
		for j := i + 1; j < len(l.transactions); j++ {
			if arePotentialDuplicates(l.transactions[i], l.transactions[j]) {
				duplicates = append(duplicates, Duplicate{First: l.transactions[i], Second: l.transactions[j]})
				break
			}
		}
	}
	return duplicates
}

func arePotentialDuplicates(tx1, tx2 models.Transaction) bool {
	if !tx1.Date.Equal(tx2.Date) {
		return false
	}
	if !tx1.Amount.Equal(tx2.Amount) {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(tx1.Description), strings.TrimSpace(tx2.Description))
}
