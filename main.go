package main

import (
	"fmt"
	"os"

	"fjacquet/expense-tracker/cmd/categories"
	"fjacquet/expense-tracker/cmd/categorize"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/cmd/run"
	"fjacquet/expense-tracker/cmd/summary"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(run.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
