package root

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/expense-tracker/internal/config"
	"fjacquet/expense-tracker/internal/container"
	"fjacquet/expense-tracker/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "expense-tracker", Cmd.Use)
	assert.Contains(t, Cmd.Short, "categorize and summarize expense CSV files")
	assert.Contains(t, Cmd.Long, "csv.input_file")
	assert.NotNil(t, Cmd.RunE)
	assert.NotNil(t, Cmd.PersistentPreRunE)
	assert.NotNil(t, Cmd.PersistentPostRunE)
}

func TestRootCommand_Flags(t *testing.T) {
	Init()
	Init()

	tests := []struct {
		name     string
		defValue string
	}{
		{"config", ""},
		{"log-level", "info"},
		{"log-format", "text"},
		{"delimiter", ","},
		{"date-format", "DD.MM.YYYY"},
		{"categories", "categories.yaml"},
		{"case-sensitive", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := Cmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.defValue, flag.DefValue)
			assert.NotEmpty(t, flag.Usage)
		})
	}
}

func TestGetContainer_NotInitialized(t *testing.T) {
	saved := AppContainer
	AppContainer = nil
	defer func() { AppContainer = saved }()

	_, err := GetContainer()
	assert.EqualError(t, err, "application not initialized")
}

func TestRunRoot_ShowsHelpWithoutInput(t *testing.T) {
	saved := AppContainer
	defer func() { AppContainer = saved }()

	cfg := config.DefaultConfig()
	cfg.Categories.File = filepath.Join(t.TempDir(), "categories.yaml")
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	AppContainer = c

	var out bytes.Buffer
	cmd := &cobra.Command{Use: "expense-tracker", Long: "help text"}
	cmd.SetOut(&out)

	require.NoError(t, runRoot(cmd, nil))
	assert.Contains(t, out.String(), "help text")
}

func TestRunRoot_ProcessesConfiguredInput(t *testing.T) {
	saved := AppContainer
	defer func() { AppContainer = saved }()

	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	output := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"date,amount_out,amount_in,description,category,subcategory,tag,note\n"+
			"03.01.2023,45.80,,SUPERMARKET XYZ,,,,\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.yaml"), []byte(
		"categories:\n  - name: Groceries\n    keywords: [supermarket]\n"), 0600))

	cfg := config.DefaultConfig()
	cfg.Categories.File = filepath.Join(dir, "categories.yaml")
	cfg.CSV.InputFile = input
	cfg.CSV.OutputFile = output
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	AppContainer = c

	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	require.NoError(t, runRoot(cmd, nil))
	assert.Equal(t, "1 valid transactions loaded, 0 ignored\n", stderr.String())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUPERMARKET XYZ,Groceries")
}
