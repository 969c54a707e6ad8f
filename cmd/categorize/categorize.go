// Package categorize handles transaction categorization commands
package categorize

import (
	"fmt"

	"fjacquet/expense-tracker/cmd/common"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/models"

	"github.com/spf13/cobra"
)

// Description is the text given with --description.
var Description string

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a single transaction description",
	Long:  `Categorize a single transaction description with the keyword and pattern rules of the category file.`,
	RunE:  categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Description, "description", "d", "", "Transaction description to categorize")
	_ = Cmd.MarkFlagRequired("description")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	if Description == "" {
		return fmt.Errorf("description is required for categorization")
	}

	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	assignment, err := c.GetCategorizer().ClassifyDescription(common.CommandContext(cmd), Description)
	if err != nil {
		return fmt.Errorf("error categorizing transaction: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), FormatAssignment(assignment))
	return nil
}

// FormatAssignment renders an assignment as "Category", "Category / Sub" or
// the uncategorized label.
func FormatAssignment(a models.Assignment) string {
	switch {
	case !a.Found():
		return models.UncategorizedLabel
	case a.SubCategory == "":
		return a.Category
	default:
		return a.Category + " / " + a.SubCategory
	}
}
