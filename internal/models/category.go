package models

import "strings"

// Rules holds the matching rules of a category or sub-category.
// A keyword matches when it occurs in the description; a pattern is a
// regular expression matched against the description.
type Rules struct {
	Keywords []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Patterns []string `yaml:"patterns,omitempty" json:"patterns,omitempty"`
}

// Empty reports whether no rule is defined.
func (r Rules) Empty() bool {
	return len(r.Keywords) == 0 && len(r.Patterns) == 0
}

// SubCategory is a named child of a Category.
type SubCategory struct {
	Name  string `yaml:"name" json:"name"`
	Rules `yaml:",inline"`
}

// Category is a user-defined spending or income class. Order matters: the
// classifier evaluates categories in the order they are defined.
type Category struct {
	Name          string `yaml:"name" json:"name"`
	Rules         `yaml:",inline"`
	SubCategories []SubCategory `yaml:"subcategories,omitempty" json:"subcategories,omitempty"`
}

// CategoriesConfig represents the structure of the categories YAML file
type CategoriesConfig struct {
	Categories []Category `yaml:"categories"`
}

// HasSubCategories reports whether the category defines any sub-category.
func (c Category) HasSubCategories() bool {
	return len(c.SubCategories) > 0
}

// FindSubCategory looks a sub-category up by name, ignoring case.
func (c *Category) FindSubCategory(name string) (*SubCategory, bool) {
	for i := range c.SubCategories {
		if strings.EqualFold(c.SubCategories[i].Name, name) {
			return &c.SubCategories[i], true
		}
	}
	return nil, false
}

// FindCategory looks a category up by name, ignoring case.
func FindCategory(categories []Category, name string) (*Category, bool) {
	for i := range categories {
		if strings.EqualFold(categories[i].Name, name) {
			return &categories[i], true
		}
	}
	return nil, false
}

// CloneCategories returns a deep copy of categories.
func CloneCategories(categories []Category) []Category {
	if categories == nil {
		return nil
	}
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = Category{
			Name:  c.Name,
			Rules: c.Rules.clone(),
		}
		if c.SubCategories != nil {
			out[i].SubCategories = make([]SubCategory, len(c.SubCategories))
			for j, s := range c.SubCategories {
				out[i].SubCategories[j] = SubCategory{Name: s.Name, Rules: s.Rules.clone()}
			}
		}
	}
	return out
}

func (r Rules) clone() Rules {
	var out Rules
	if r.Keywords != nil {
		out.Keywords = append([]string(nil), r.Keywords...)
	}
	if r.Patterns != nil {
		out.Patterns = append([]string(nil), r.Patterns...)
	}
	return out
}
