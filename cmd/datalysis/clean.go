package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ajith-oo7/Data-lysis/app"
	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/service"
)

// CleanCommand represents the data cleaning command
type CleanCommand struct {
	json bool
	yaml bool
	csv  bool

	outputPath string
	configFile string

	skipMissing    bool
	skipDuplicates bool
	skipOutliers   bool
	standardize    bool
	encode         bool

	outlierMethod string
	outlierAction string
	imputation    string
	scalingMethod string
}

// NewCleanCommand creates a new clean command
func NewCleanCommand() *CleanCommand {
	return &CleanCommand{}
}

// CreateCobraCommand creates the cobra command for data cleaning
func (c *CleanCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Run the data cleaning pipeline on a dataset",
		Long: `Run the staged cleaning pipeline on a tabular dataset.

Stages include missing-data handling, type correction, duplicate removal,
outlier handling, scaling, text cleaning, integrity validation, format
fixing, categorical encoding, binning, feature engineering, aggregation,
geospatial cleaning, and unit conversion. Every operation is recorded in
an audit log.

By default the cleaned table is written as CSV so it can be piped onward.

Examples:
  # Clean a CSV file and write the result
  datalysis clean data.csv -o cleaned.csv

  # Get a JSON report with summary and audit log
  datalysis clean data.csv --json

  # Remove outliers instead of capping them
  datalysis clean data.csv --outlier-action remove`,
		Args: cobra.ExactArgs(1),
		RunE: c.runClean,
	}

	cmd.Flags().BoolVar(&c.json, "json", false, "Output a JSON report with summary and audit log")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Output a YAML report with summary and audit log")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Output the cleaned table as CSV (default)")
	cmd.Flags().StringVarP(&c.outputPath, "output", "o", "", "Write output to file instead of stdout")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")

	cmd.Flags().BoolVar(&c.skipMissing, "skip-missing", false, "Skip missing-data handling")
	cmd.Flags().BoolVar(&c.skipDuplicates, "skip-duplicates", false, "Skip duplicate removal")
	cmd.Flags().BoolVar(&c.skipOutliers, "skip-outliers", false, "Skip outlier handling")
	cmd.Flags().BoolVar(&c.standardize, "standardize", false, "Scale numeric columns")
	cmd.Flags().BoolVar(&c.encode, "encode", false, "Encode categorical columns")

	cmd.Flags().StringVar(&c.outlierMethod, "outlier-method", "", "Outlier detection method (iqr, zscore)")
	cmd.Flags().StringVar(&c.outlierAction, "outlier-action", "", "Outlier action (remove, cap, keep)")
	cmd.Flags().StringVar(&c.imputation, "imputation", "", "Imputation strategy (mean, median, smart)")
	cmd.Flags().StringVar(&c.scalingMethod, "scaling-method", "", "Scaling method (standard, minmax, robust, log, boxcox)")

	return cmd
}

// runClean executes the clean command
func (c *CleanCommand) runClean(cmd *cobra.Command, args []string) error {
	writer, cleanup, err := resolveOutputWriter(cmd.OutOrStdout(), c.outputPath)
	if err != nil {
		return err
	}
	defer cleanup()

	req := domain.CleaningRequest{
		Path:          args[0],
		Options:       c.buildOptions(),
		OutputFormat:  c.outputFormat(),
		OutputWriter:  writer,
		OutputPath:    c.outputPath,
		ConfigPath:    c.configFile,
		ExplicitFlags: collectExplicitFlags(cmd),
	}

	useCase, err := app.NewCleanUseCaseBuilder().
		WithService(service.NewCleaningService()).
		WithReader(service.NewDatasetReader()).
		WithFormatter(service.NewCleaningFormatter()).
		WithConfigLoader(service.NewCleaningConfigurationLoader()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build clean use case: %w", err)
	}

	bar := startProgress("Cleaning dataset")
	err = useCase.Execute(context.Background(), req)
	finishProgress(bar)

	return err
}

func (c *CleanCommand) buildOptions() *domain.CleaningOptions {
	opts := domain.DefaultCleaningOptions()

	opts.HandleMissing = !c.skipMissing
	opts.RemoveDuplicates = !c.skipDuplicates
	opts.HandleOutliers = !c.skipOutliers
	opts.Standardize = c.standardize
	opts.EncodeCategorical = c.encode

	if c.outlierMethod != "" {
		opts.Outliers.Method = c.outlierMethod
	}
	if c.outlierAction != "" {
		opts.Outliers.Action = c.outlierAction
	}
	if c.imputation != "" {
		opts.Missing.ImputationStrategy = c.imputation
	}
	if c.scalingMethod != "" {
		opts.Scaling.Method = c.scalingMethod
	}

	return opts
}

func (c *CleanCommand) outputFormat() domain.OutputFormat {
	switch {
	case c.json:
		return domain.OutputFormatJSON
	case c.yaml:
		return domain.OutputFormatYAML
	default:
		return domain.OutputFormatCSV
	}
}

// NewCleanCmd creates and returns the clean cobra command
func NewCleanCmd() *cobra.Command {
	return NewCleanCommand().CreateCobraCommand()
}
