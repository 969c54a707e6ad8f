// Package store loads and saves the category definitions from YAML.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"fjacquet/expense-tracker/internal/fileutils"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// DefaultCategoriesFile is used when no categories file is configured.
const DefaultCategoriesFile = "categories.yaml"

// AppConfigDir is the directory under the user's ~/.config searched for category files.
const AppConfigDir = "expense-tracker"

// CategoryStore manages loading and saving of category data
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a new store for category-related data
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &CategoryStore{
		CategoriesFile: categoriesFile,
		logger:         logger.WithField(logging.FieldComponent, "store"),
	}
}

func (s *CategoryStore) filename() string {
	if s.CategoriesFile == "" {
		return DefaultCategoriesFile
	}
	return s.CategoriesFile
}

// FindConfigFile looks for a configuration file in standard locations:
// the working directory, ./config, ./database and ~/.config/expense-tracker.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", AppConfigDir, filename))
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadCategories loads categories from the YAML file. A missing file yields an
// empty set; a file that cannot be used yields a *parsererror.ConfigError.
func (s *CategoryStore) LoadCategories() ([]models.Category, error) {
	filename := s.filename()

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		s.logger.Warn("Categories file not found, starting with no categories",
			logging.Field{Key: logging.FieldFile, Value: filename})
		return []models.Category{}, nil
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- configured path
	if err != nil {
		return nil, &parsererror.IOError{Op: "read", Path: filePath, Err: err}
	}

	categories, err := decodeCategories(data)
	if err != nil {
		return nil, &parsererror.ConfigError{File: filePath, Reason: "malformed categories file", Err: err}
	}

	if err := ValidateCategories(categories); err != nil {
		return nil, &parsererror.ConfigError{File: filePath, Reason: "invalid categories", Err: err}
	}

	s.logger.Debug("Loaded categories",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(categories)})
	return categories, nil
}

// decodeCategories accepts the "categories:" document as well as a bare list.
func decodeCategories(data []byte) ([]models.Category, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return []models.Category{}, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return []models.Category{}, nil
	}

	switch node.Content[0].Kind {
	case yaml.SequenceNode:
		var categories []models.Category
		if err := node.Content[0].Decode(&categories); err != nil {
			return nil, err
		}
		return categories, nil
	case yaml.MappingNode:
		var cfg models.CategoriesConfig
		if err := node.Content[0].Decode(&cfg); err != nil {
			return nil, err
		}
		if cfg.Categories == nil {
			return []models.Category{}, nil
		}
		return cfg.Categories, nil
	default:
		return nil, errors.New("expected a 'categories' list")
	}
}

// ValidateCategories checks that names are present and unique ignoring case,
// and that every pattern compiles.
func ValidateCategories(categories []models.Category) error {
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("category: %w", parsererror.ErrEmptyName)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("category %q: %w", c.Name, parsererror.ErrDuplicateCategory)
		}
		seen[key] = true

		if err := validatePatterns(c.Name, c.Patterns); err != nil {
			return err
		}

		subs := make(map[string]bool, len(c.SubCategories))
		for _, sub := range c.SubCategories {
			subName := strings.TrimSpace(sub.Name)
			if subName == "" {
				return fmt.Errorf("sub-category of %q: %w", c.Name, parsererror.ErrEmptyName)
			}
			subKey := strings.ToLower(subName)
			if subs[subKey] {
				return fmt.Errorf("sub-category %q of %q: %w", sub.Name, c.Name, parsererror.ErrDuplicateSubCategory)
			}
			subs[subKey] = true

			if err := validatePatterns(c.Name+"/"+sub.Name, sub.Patterns); err != nil {
				return err
			}
		}
	}
	return nil
}

func validatePatterns(owner string, patterns []string) error {
	for _, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("pattern %q of %q: %w", p, owner, err)
		}
	}
	return nil
}

// SaveCategories writes categories back to the YAML file, replacing the file
// that LoadCategories would read, or creating CategoriesFile when none exists.
func (s *CategoryStore) SaveCategories(categories []models.Category) error {
	if err := ValidateCategories(categories); err != nil {
		return &parsererror.ConfigError{File: s.filename(), Reason: "refusing to save invalid categories", Err: err}
	}

	filePath, err := s.FindConfigFile(s.filename())
	if err != nil {
		filePath = s.filename()
	}

	data, err := yaml.Marshal(models.CategoriesConfig{Categories: categories})
	if err != nil {
		return fmt.Errorf("error marshaling categories: %w", err)
	}

	if err := fileutils.WriteFileAtomic(filePath, data, 0600); err != nil {
		return &parsererror.IOError{Op: "write", Path: filePath, Err: err}
	}

	s.logger.Info("Saved categories",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(categories)})
	return nil
}
