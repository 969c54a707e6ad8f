// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/expense-tracker/cmd/common"
	"fjacquet/expense-tracker/internal/config"
	"fjacquet/expense-tracker/internal/container"

	"github.com/spf13/cobra"
)

var (
	// ConfigFile is the explicit configuration file given with --config.
	ConfigFile string

	// AppContainer holds the dependencies of the running command. It is
	// built by the persistent pre-run hook.
	AppContainer *container.Container

	initOnce sync.Once

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "expense-tracker",
		Short: "A CLI tool to categorize and summarize expense CSV files.",
		Long: `expense-tracker reads CSV transaction files, assigns each transaction to a
category and sub-category from a YAML rule file, and writes the result back
as CSV or as aggregated reports.

Without a sub-command it processes csv.input_file from the configuration.`,
		RunE:               runRoot,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
		SilenceUsage:       true,
	}
)

// Init initializes the root command and all flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVar(&ConfigFile, "config", "", "Config file (default searches $HOME/.expense-tracker, .expense-tracker and . for config.yaml)")
		flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
		flags.String("log-format", "text", "Log format (text or json)")
		flags.String("delimiter", ",", "CSV field delimiter")
		flags.String("date-format", "DD.MM.YYYY", "Date pattern of the CSV files")
		flags.String("categories", "categories.yaml", "Category rules file")
		flags.Bool("case-sensitive", false, "Match keywords and patterns case-sensitively")
	})
}

// setup loads .env and the configuration, then wires the application.
func setup(cmd *cobra.Command, args []string) error {
	if _, err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.InitializeConfig(ConfigFile, cmd.Flags())
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	AppContainer = c
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if AppContainer == nil {
		return nil
	}
	return AppContainer.Close()
}

// GetContainer returns the container built for the running command.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return AppContainer, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	c, err := GetContainer()
	if err != nil {
		return cmd.Help()
	}

	cfg := c.GetConfig()
	if cfg.CSV.InputFile == "" {
		return cmd.Help()
	}

	_, err = common.ProcessFile(common.CommandContext(cmd), c, common.RunOptions{
		InputFile:  cfg.CSV.InputFile,
		OutputFile: cfg.CSV.OutputFile,
		Learn:      cfg.Categorization.AutoLearn,
	}, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return err
}
