package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
	"github.com/Ajith-oo7/Data-lysis/service"
)

// QueryCommand asks the AI collaborator a natural-language question about a dataset
type QueryCommand struct {
	json       bool
	configFile string
	verbose    bool
}

// NewQueryCommand creates a new query command
func NewQueryCommand() *QueryCommand {
	return &QueryCommand{}
}

// CreateCobraCommand creates the cobra command for dataset queries
func (c *QueryCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [file] [question...]",
		Short: "Ask a natural-language question about a dataset",
		Long: `Ask the AI collaborator a free-text question about a dataset.

The answer includes a narrative response, a suggested SQL query, and a
recommended visualization type. Requires an API key for the configured
AI provider.

Examples:
  # Ask about a dataset
  datalysis query sales.csv "which region has the highest revenue?"

  # Get the raw JSON answer
  datalysis query sales.csv "how many orders per month?" --json`,
		Args: cobra.MinimumNArgs(2),
		RunE: c.runQuery,
	}

	cmd.Flags().BoolVar(&c.json, "json", false, "Output the answer as JSON")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")

	return cmd
}

// runQuery executes the query command
func (c *QueryCommand) runQuery(cmd *cobra.Command, args []string) error {
	c.verbose, _ = cmd.Flags().GetBool("verbose")

	path := args[0]
	question := strings.Join(args[1:], " ")

	reader := service.NewDatasetReader()
	if !reader.IsValidDataFile(path) {
		return domain.NewInvalidInputError(fmt.Sprintf("not a supported data file: %s", path), nil)
	}

	content, err := reader.ReadFile(path)
	if err != nil {
		return err
	}

	ds, err := dataset.FromInput(dataset.Input{CSV: string(content)})
	if err != nil {
		return err
	}

	analyzeCmd := &AnalyzeCommand{configFile: c.configFile, verbose: c.verbose}
	insightService := analyzeCmd.buildInsightService()
	if insightService == nil {
		return domain.NewExternalServiceError("AI collaborator is not configured", nil)
	}

	answer, err := insightService.AnswerQuery(context.Background(), question, ds.ToCSV())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if c.json {
		encoded, err := service.EncodeJSON(answer)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, encoded)
		return nil
	}

	fmt.Fprintln(out, answer.Answer)
	if answer.SQL != "" {
		fmt.Fprintf(out, "\nSQL:\n%s\n", answer.SQL)
	}
	if answer.Visualization != "" {
		fmt.Fprintf(out, "\nSuggested visualization: %s\n", answer.Visualization)
	}
	return nil
}

// NewQueryCmd creates and returns the query cobra command
func NewQueryCmd() *cobra.Command {
	return NewQueryCommand().CreateCobraCommand()
}
