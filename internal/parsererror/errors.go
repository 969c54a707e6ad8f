// Package parsererror defines the typed errors raised while reading, classifying
// and writing transactions. Callers inspect them with errors.As / errors.Is.
package parsererror

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by ReferenceError and the category management operations.
var (
	ErrUnknownCategory      = errors.New("invalid category in transaction")
	ErrUnknownSubCategory   = errors.New("sub-category set in transaction does not exist in category")
	ErrMissingSubCategory   = errors.New("no sub-category set in transaction although the category has some")
	ErrDuplicateCategory    = errors.New("the category name already exists")
	ErrDuplicateSubCategory = errors.New("the subcategory name already exists")
	ErrWrongColumnCount     = errors.New("wrong number of columns")
	ErrEmptyName            = errors.New("name cannot be empty")
)

// ParseError represents a single CSV row that could not be turned into a transaction.
type ParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: failed to parse %s='%s': %v",
		e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConfigError represents a category or application configuration that cannot be used.
type ConfigError struct {
	File   string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("invalid configuration in '%s': %s", e.File, e.Reason)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IOError represents a failure to read or write a file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ReferenceError represents a transaction naming a category or sub-category
// that the category store does not know about.
type ReferenceError struct {
	Line        int
	Category    string
	SubCategory string
	Err         error
}

func (e *ReferenceError) Error() string {
	ref := e.Category
	if e.SubCategory != "" {
		ref = fmt.Sprintf("%s/%s", e.Category, e.SubCategory)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v (%s)", e.Line, e.Err, ref)
	}
	return fmt.Sprintf("%v (%s)", e.Err, ref)
}

func (e *ReferenceError) Unwrap() error {
	return e.Err
}

// ValidationError represents a category management request that was rejected.
type ValidationError struct {
	Name   string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("cannot add '%s': %v", e.Name, e.Err)
	}
	return fmt.Sprintf("cannot add '%s': %s: %v", e.Name, e.Reason, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected layout at all, so no row can be read.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}
