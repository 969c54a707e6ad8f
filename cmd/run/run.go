// Package run implements the run command: parse, classify, record and write.
package run

import (
	"fjacquet/expense-tracker/cmd/common"
	"fjacquet/expense-tracker/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the run command
var Cmd = &cobra.Command{
	Use:   "run",
	Short: "Categorize a transaction CSV file",
	Long: `Read a transaction CSV file, assign categories and sub-categories from the
rule file, and write the accepted transactions back as CSV.

Rows that cannot be read, or that name a category or sub-category the rule
file does not know, are ignored and counted. With --learn those names are
added to the rule file instead.`,
	RunE: runFunc,
}

func init() {
	Cmd.Flags().StringP("input", "i", "", "Input CSV file")
	Cmd.Flags().StringP("output", "o", "", "Output CSV file (default: stdout)")
	Cmd.Flags().Bool("learn", false, "Add unknown categories found in the input to the rule file")
	Cmd.Flags().Bool("require-sub", false, "Reject category-only assignments for categories that have sub-categories")
	Cmd.Flags().BoolP("validate", "v", false, "Validate the file header before processing")
}

func runFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	cfg := c.GetConfig()
	validate, _ := cmd.Flags().GetBool("validate")

	_, err = common.ProcessFile(common.CommandContext(cmd), c, common.RunOptions{
		InputFile:  cfg.CSV.InputFile,
		OutputFile: cfg.CSV.OutputFile,
		Learn:      cfg.Categorization.AutoLearn,
		Validate:   validate,
	}, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return err
}
