package logging

// Standardized field names for structured logging.
const (
	FieldFile        = "file_path"
	FieldRunID       = "run_id"
	FieldComponent   = "component"
	FieldLine        = "line"
	FieldField       = "field"
	FieldValue       = "value"
	FieldCategory    = "category"
	FieldSubCategory = "subcategory"
	FieldStrategy    = "strategy"
	FieldKeyword     = "keyword"
	FieldReason      = "reason"
	FieldCount       = "count"
	FieldIgnored     = "ignored"
	FieldDelimiter   = "delimiter"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldFormat      = "format"
	FieldBucket      = "bucket"
	FieldAmount      = "amount"
	FieldDuplicateOf = "duplicate_of"
)
