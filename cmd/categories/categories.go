// Package categories implements the commands that list and extend the category rules.
package categories

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/container"
	"fjacquet/expense-tracker/internal/ledger"
	"fjacquet/expense-tracker/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List or add categories",
	Long:  `Manage the categories and sub-categories of the category rule file.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories, their sub-categories and rules",
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE:  addFunc,
}

var addSubCmd = &cobra.Command{
	Use:   "add-sub CATEGORY NAME",
	Short: "Add a sub-category to an existing category",
	Args:  cobra.ExactArgs(2),
	RunE:  addSubFunc,
}

func init() {
	Cmd.AddCommand(listCmd, addCmd, addSubCmd)
}

func listFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	PrintCategories(cmd.OutOrStdout(), c.GetCategorizer().Categories())
	return nil
}

func addFunc(cmd *cobra.Command, args []string) error {
	return update(cmd, func(l *ledger.Ledger) error {
		return l.AddCategory(args[0])
	}, fmt.Sprintf("Category %q added", strings.TrimSpace(args[0])))
}

func addSubFunc(cmd *cobra.Command, args []string) error {
	return update(cmd, func(l *ledger.Ledger) error {
		return l.AddSubCategory(args[0], args[1])
	}, fmt.Sprintf("Sub-category %q added to %q", strings.TrimSpace(args[1]), args[0]))
}

// update applies change to the known categories and saves them.
func update(cmd *cobra.Command, change func(*ledger.Ledger) error, done string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	if err := apply(c, change); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), done)
	return nil
}

func apply(c *container.Container, change func(*ledger.Ledger) error) error {
	l := c.NewLedger()
	if err := change(l); err != nil {
		return err
	}

	categories := l.Categories()
	if err := c.GetStore().SaveCategories(categories); err != nil {
		return err
	}
	l.MarkSaved()
	return c.GetCategorizer().Reload(categories)
}

// PrintCategories writes one line per category and one indented line per
// sub-category, with their rules.
func PrintCategories(out io.Writer, categories []models.Category) {
	if len(categories) == 0 {
		fmt.Fprintln(out, "No categories defined")
		return
	}
	for _, cat := range categories {
		fmt.Fprintln(out, cat.Name+describeRules(cat.Rules))
		for _, sub := range cat.SubCategories {
			fmt.Fprintln(out, "  "+sub.Name+describeRules(sub.Rules))
		}
	}
}

func describeRules(r models.Rules) string {
	if r.Empty() {
		return ""
	}
	parts := make([]string, 0, len(r.Keywords)+len(r.Patterns))
	parts = append(parts, r.Keywords...)
	for _, p := range r.Patterns {
		parts = append(parts, "/"+p+"/")
	}
	return " [" + strings.Join(parts, ", ") + "]"
}
