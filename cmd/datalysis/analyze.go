package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Ajith-oo7/Data-lysis/app"
	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/internal/config"
	"github.com/Ajith-oo7/Data-lysis/internal/llm"
	"github.com/Ajith-oo7/Data-lysis/service"
)

// AnalyzeCommand represents the dataset analysis command
type AnalyzeCommand struct {
	// Output format flags (only one should be true)
	json bool
	yaml bool
	csv  bool

	outputPath string
	configFile string
	verbose    bool

	targetColumn string
	cleanFirst   bool
	noAI         bool
	showDetails  bool
}

// NewAnalyzeCommand creates a new analyze command
func NewAnalyzeCommand() *AnalyzeCommand {
	return &AnalyzeCommand{}
}

// CreateCobraCommand creates the cobra command for dataset analysis
func (c *AnalyzeCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a tabular dataset",
		Long: `Profile a dataset, detect its characteristics, and run the
appropriate exploratory analysis strategy.

The dataset is routed to one of five analysis types (basic, complex,
timeseries, geospatial, textual) based on its structure. Optionally the
cleaning pipeline runs first, and an AI collaborator classifies the
business domain and generates narrative insights.

Examples:
  # Analyze a CSV file
  datalysis analyze data.csv

  # Clean before analyzing, write JSON to a file
  datalysis analyze data.csv --clean --json -o report.json

  # Analyze with a target column for imbalance detection
  datalysis analyze data.csv --target churn

  # Skip the AI collaborator
  datalysis analyze data.csv --no-ai`,
		Args: cobra.ExactArgs(1),
		RunE: c.runAnalyze,
	}

	cmd.Flags().BoolVar(&c.json, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Output results as YAML")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Output column profiles as CSV")
	cmd.Flags().StringVarP(&c.outputPath, "output", "o", "", "Write output to file instead of stdout")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().StringVarP(&c.targetColumn, "target", "t", "", "Target column for imbalance and feature importance")
	cmd.Flags().BoolVar(&c.cleanFirst, "clean", false, "Run the cleaning pipeline before analysis")
	cmd.Flags().BoolVar(&c.noAI, "no-ai", false, "Skip AI domain detection and insights")
	cmd.Flags().BoolVarP(&c.showDetails, "details", "d", false, "Show detailed output")

	return cmd
}

// runAnalyze executes the analyze command
func (c *AnalyzeCommand) runAnalyze(cmd *cobra.Command, args []string) error {
	c.verbose, _ = cmd.Flags().GetBool("verbose")

	writer, cleanup, err := resolveOutputWriter(cmd.OutOrStdout(), c.outputPath)
	if err != nil {
		return err
	}
	defer cleanup()

	req := domain.AnalysisRequest{
		Path:                args[0],
		TargetColumn:        c.targetColumn,
		CleanFirst:          c.cleanFirst,
		WithDomainDetection: !c.noAI,
		WithAIInsights:      !c.noAI,
		OutputFormat:        c.outputFormat(),
		OutputWriter:        writer,
		OutputPath:          c.outputPath,
		ShowDetails:         c.showDetails,
		ConfigPath:          c.configFile,
		ExplicitFlags:       collectExplicitFlags(cmd),
	}

	insightService := c.buildInsightService()

	useCase, err := app.NewAnalyzeUseCaseBuilder().
		WithService(service.NewAnalysisService(insightService)).
		WithReader(service.NewDatasetReader()).
		WithFormatter(service.NewAnalysisFormatter()).
		WithConfigLoader(service.NewConfigurationLoader()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build analyze use case: %w", err)
	}

	bar := startProgress("Analyzing dataset")
	err = useCase.Execute(context.Background(), req)
	finishProgress(bar)

	return err
}

// buildInsightService wires the LLM collaborator from configuration. Returns
// nil when AI is disabled or no API key is available, which skips the AI
// steps entirely.
func (c *AnalyzeCommand) buildInsightService() domain.InsightService {
	if c.noAI {
		return nil
	}

	cfg, err := config.LoadConfig(c.configFile)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if !cfg.AI.Enabled {
		return nil
	}

	apiKey := os.Getenv(cfg.AI.APIKeyEnv)
	if apiKey == "" {
		if c.verbose {
			fmt.Fprintf(os.Stderr, "Warning: %s not set, skipping AI analysis\n", cfg.AI.APIKeyEnv)
		}
		return nil
	}

	logger := zap.NewNop()
	if c.verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l
		}
	}

	client, err := llm.NewClient(&llm.Config{Model: cfg.AI.Model, APIKey: apiKey}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: AI collaborator unavailable: %v\n", err)
		return nil
	}
	return client
}

func (c *AnalyzeCommand) outputFormat() domain.OutputFormat {
	switch {
	case c.json:
		return domain.OutputFormatJSON
	case c.yaml:
		return domain.OutputFormatYAML
	case c.csv:
		return domain.OutputFormatCSV
	default:
		return domain.OutputFormatText
	}
}

// collectExplicitFlags records which flags the user set on the command line
func collectExplicitFlags(cmd *cobra.Command) map[string]bool {
	flags := make(map[string]bool)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		flags[f.Name] = true
	})
	return flags
}

// resolveOutputWriter returns the writer for report output. When outputPath
// is set, the report goes to that file instead of the default writer.
func resolveOutputWriter(fallback io.Writer, outputPath string) (io.Writer, func(), error) {
	if outputPath == "" {
		return fallback, func() {}, nil
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, domain.NewOutputError(fmt.Sprintf("failed to create output file: %s", outputPath), err)
	}
	return file, func() { _ = file.Close() }, nil
}

// startProgress shows a spinner on stderr in interactive sessions
func startProgress(description string) *progressbar.ProgressBar {
	if !isInteractiveEnvironment() {
		return nil
	}

	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func finishProgress(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}

// NewAnalyzeCmd creates and returns the analyze cobra command
func NewAnalyzeCmd() *cobra.Command {
	return NewAnalyzeCommand().CreateCobraCommand()
}
