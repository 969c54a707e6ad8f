// Package aggregator sums classified transactions by category, sub-category
// and optional time bucket.
package aggregator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// Bucket selects the time grouping of a summary.
type Bucket string

const (
	BucketNone  Bucket = "none"
	BucketMonth Bucket = "month"
	BucketYear  Bucket = "year"
)

// ParseBucket validates a bucket name. The empty string means BucketNone.
func ParseBucket(s string) (Bucket, error) {
	switch Bucket(strings.ToLower(strings.TrimSpace(s))) {
	case "", BucketNone:
		return BucketNone, nil
	case BucketMonth:
		return BucketMonth, nil
	case BucketYear:
		return BucketYear, nil
	default:
		return "", fmt.Errorf("unknown bucket %q (must be none, month or year)", s)
	}
}

// Period returns the label of the bucket containing t, "" for BucketNone.
func (b Bucket) Period(t time.Time) string {
	switch b {
	case BucketMonth:
		return dateutils.StartOfMonth(t).Format(dateutils.MonthLayout)
	case BucketYear:
		return dateutils.StartOfYear(t).Format(dateutils.YearLayout)
	default:
		return ""
	}
}

// Total is the sum for one (period, category, sub-category) key.
type Total struct {
	Period      string          `json:"period,omitempty" yaml:"period,omitempty" csv:"period"`
	Category    string          `json:"category" yaml:"category" csv:"category"`
	SubCategory string          `json:"subcategory,omitempty" yaml:"subcategory,omitempty" csv:"subcategory"`
	Count       int             `json:"count" yaml:"count" csv:"count"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount" csv:"total"`
}

// CategoryTotal rolls the sub-category totals of one category up.
type CategoryTotal struct {
	Period   string          `json:"period,omitempty" yaml:"period,omitempty"`
	Category string          `json:"category" yaml:"category"`
	Count    int             `json:"count" yaml:"count"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
}

// Summary is the aggregate view of a set of transactions.
type Summary struct {
	Bucket         Bucket          `json:"bucket" yaml:"bucket"`
	DateRange      DateRange       `json:"date_range" yaml:"date_range"`
	Count          int             `json:"count" yaml:"count"`
	Income         decimal.Decimal `json:"income" yaml:"income"`
	Expenses       decimal.Decimal `json:"expenses" yaml:"expenses"`
	Net            decimal.Decimal `json:"net" yaml:"net"`
	Totals         []Total         `json:"totals" yaml:"totals"`
	CategoryTotals []CategoryTotal `json:"category_totals" yaml:"category_totals"`
}

// Aggregator builds summaries.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates a new Aggregator instance
func NewAggregator(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Aggregator{logger: logger.WithField(logging.FieldComponent, "aggregator")}
}

type totalKey struct {
	period      string
	category    string
	subCategory string
}

// Summarize groups transactions by bucket, category and sub-category.
// Uncategorized transactions are grouped under models.UncategorizedLabel.
// Output order is by period, then category name ignoring case with
// uncategorized last, then sub-category with the category-only row first.
func (a *Aggregator) Summarize(transactions []models.Transaction, bucket Bucket) *Summary {
	if bucket == "" {
		bucket = BucketNone
	}

	summary := &Summary{
		Bucket:         bucket,
		Income:         decimal.Zero,
		Expenses:       decimal.Zero,
		Net:            decimal.Zero,
		Totals:         []Total{},
		CategoryTotals: []CategoryTotal{},
	}

	totals := make(map[totalKey]*Total)
	rollups := make(map[totalKey]*CategoryTotal)

	for _, tx := range transactions {
		period := bucket.Period(tx.Date)
		category := tx.CategoryLabel()
		subCategory := ""
		if tx.IsCategorized() {
			subCategory = tx.SubCategory
		}

		key := totalKey{period: period, category: category, subCategory: subCategory}
		total, ok := totals[key]
		if !ok {
			total = &Total{Period: period, Category: category, SubCategory: subCategory, Amount: decimal.Zero}
			totals[key] = total
		}
		total.Count++
		total.Amount = total.Amount.Add(tx.Amount)

		rollKey := totalKey{period: period, category: category}
		rollup, ok := rollups[rollKey]
		if !ok {
			rollup = &CategoryTotal{Period: period, Category: category, Amount: decimal.Zero}
			rollups[rollKey] = rollup
		}
		rollup.Count++
		rollup.Amount = rollup.Amount.Add(tx.Amount)

		summary.Count++
		summary.Net = summary.Net.Add(tx.Amount)
		if tx.IsExpense() {
			summary.Expenses = summary.Expenses.Add(tx.Amount)
		} else {
			summary.Income = summary.Income.Add(tx.Amount)
		}
		if !tx.Date.IsZero() {
			summary.DateRange = summary.DateRange.Include(tx.Date)
		}
	}

	for _, t := range totals {
		summary.Totals = append(summary.Totals, *t)
	}
	sort.Slice(summary.Totals, func(i, j int) bool {
		return lessKey(
			totalKey{summary.Totals[i].Period, summary.Totals[i].Category, summary.Totals[i].SubCategory},
			totalKey{summary.Totals[j].Period, summary.Totals[j].Category, summary.Totals[j].SubCategory})
	})

	for _, r := range rollups {
		summary.CategoryTotals = append(summary.CategoryTotals, *r)
	}
	sort.Slice(summary.CategoryTotals, func(i, j int) bool {
		return lessKey(
			totalKey{period: summary.CategoryTotals[i].Period, category: summary.CategoryTotals[i].Category},
			totalKey{period: summary.CategoryTotals[j].Period, category: summary.CategoryTotals[j].Category})
	})

	a.logger.Debug("Transactions aggregated",
		logging.Field{Key: logging.FieldBucket, Value: string(bucket)},
		logging.Field{Key: logging.FieldCount, Value: summary.Count})
	return summary
}

func lessKey(a, b totalKey) bool {
	if a.period != b.period {
		return a.period < b.period
	}
	if a.category != b.category {
		aUncat := a.category == models.UncategorizedLabel
		bUncat := b.category == models.UncategorizedLabel
		if aUncat != bUncat {
			return bUncat
		}
		la, lb := strings.ToLower(a.category), strings.ToLower(b.category)
		if la != lb {
			return la < lb
		}
		return a.category < b.category
	}
	la, lb := strings.ToLower(a.subCategory), strings.ToLower(b.subCategory)
	if la != lb {
		return la < lb
	}
	return a.subCategory < b.subCategory
}
