package models

// UncategorizedLabel is shown in reports for transactions no rule matched.
const UncategorizedLabel = "Uncategorized"

// Transaction file column names, in file order.
const (
	ColumnDate        = "date"
	ColumnAmountOut   = "amount_out"
	ColumnAmountIn    = "amount_in"
	ColumnDescription = "description"
	ColumnCategory    = "category"
	ColumnSubCategory = "subcategory"
	ColumnTag         = "tag"
	ColumnNote        = "note"
)

// TransactionColumns is the header shared by input and output transaction files.
var TransactionColumns = []string{
	ColumnDate,
	ColumnAmountOut,
	ColumnAmountIn,
	ColumnDescription,
	ColumnCategory,
	ColumnSubCategory,
	ColumnTag,
	ColumnNote,
}
