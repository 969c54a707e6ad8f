package categorizer

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/parsererror"
)

// ruleMatcher is the compiled form of models.Rules.
type ruleMatcher struct {
	keywords      []string
	patterns      []*regexp.Regexp
	caseSensitive bool
}

func compileRules(owner string, rules models.Rules, caseSensitive bool) (ruleMatcher, error) {
	m := ruleMatcher{caseSensitive: caseSensitive}
	for _, kw := range rules.Keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if !caseSensitive {
			kw = strings.ToUpper(kw)
		}
		m.keywords = append(m.keywords, kw)
	}
	for _, p := range rules.Patterns {
		expr := p
		if !caseSensitive {
			expr = "(?i)" + p
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return ruleMatcher{}, &parsererror.ConfigError{
				Reason: fmt.Sprintf("invalid pattern %q for %s", p, owner),
				Err:    err,
			}
		}
		m.patterns = append(m.patterns, re)
	}
	return m, nil
}

// match reports whether description satisfies any rule, and which one.
func (m ruleMatcher) match(description string) (string, bool) {
	text := description
	if !m.caseSensitive {
		text = strings.ToUpper(description)
	}
	for _, kw := range m.keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	for _, re := range m.patterns {
		if re.MatchString(description) {
			return re.String(), true
		}
	}
	return "", false
}

type compiledSubCategory struct {
	name  string
	rules ruleMatcher
}

type compiledCategory struct {
	name          string
	rules         ruleMatcher
	subCategories []compiledSubCategory
}

func (c *compiledCategory) findSubCategory(name string) (*compiledSubCategory, bool) {
	for i := range c.subCategories {
		if strings.EqualFold(c.subCategories[i].name, name) {
			return &c.subCategories[i], true
		}
	}
	return nil, false
}

// matchSubCategory returns the first sub-category whose rules match description.
func (c *compiledCategory) matchSubCategory(description string) (*compiledSubCategory, string, bool) {
	for i := range c.subCategories {
		if rule, ok := c.subCategories[i].rules.match(description); ok {
			return &c.subCategories[i], rule, true
		}
	}
	return nil, "", false
}

func compileCategories(categories []models.Category, caseSensitive bool) ([]compiledCategory, error) {
	compiled := make([]compiledCategory, 0, len(categories))
	for _, c := range categories {
		rules, err := compileRules(c.Name, c.Rules, caseSensitive)
		if err != nil {
			return nil, err
		}
		cc := compiledCategory{name: c.Name, rules: rules}
		for _, sub := range c.SubCategories {
			subRules, err := compileRules(c.Name+"/"+sub.Name, sub.Rules, caseSensitive)
			if err != nil {
				return nil, err
			}
			cc.subCategories = append(cc.subCategories, compiledSubCategory{name: sub.Name, rules: subRules})
		}
		compiled = append(compiled, cc)
	}
	return compiled, nil
}

func findCompiledCategory(categories []compiledCategory, name string) (*compiledCategory, bool) {
	for i := range categories {
		if strings.EqualFold(categories[i].name, name) {
			return &categories[i], true
		}
	}
	return nil, false
}
