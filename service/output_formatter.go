package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Ajith-oo7/Data-lysis/domain"
)

// AnalysisFormatterImpl implements the AnalysisFormatter interface
type AnalysisFormatterImpl struct{}

// NewAnalysisFormatter creates a new analysis output formatter
func NewAnalysisFormatter() *AnalysisFormatterImpl {
	return &AnalysisFormatterImpl{}
}

// Format formats the analysis response according to the specified format
func (f *AnalysisFormatterImpl) Format(response *domain.AnalysisResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText:
		return f.formatText(response)
	case domain.OutputFormatJSON:
		return EncodeJSON(Sanitize(response))
	case domain.OutputFormatYAML:
		return EncodeYAML(Sanitize(response))
	case domain.OutputFormatCSV:
		return f.formatCSV(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *AnalysisFormatterImpl) Write(response *domain.AnalysisResponse, format domain.OutputFormat, writer io.Writer) error {
	output, err := f.Format(response, format)
	if err != nil {
		return err
	}

	_, err = writer.Write([]byte(output))
	if err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

// formatText formats the response as a human-readable report
func (f *AnalysisFormatterImpl) formatText(response *domain.AnalysisResponse) (string, error) {
	var builder strings.Builder
	utils := NewFormatUtils()

	builder.WriteString(utils.FormatMainHeader("Dataset Analysis Report"))

	ch := response.Characteristics
	builder.WriteString(utils.FormatSectionHeader("DATASET"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Rows", ch.Rows))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Columns", ch.Columns))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Numeric Columns", ch.NumericColumns))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Categorical Columns", ch.CategoricalColumns))
	if ch.TextColumns > 0 {
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Text Columns", ch.TextColumns))
	}
	if ch.DatetimeColumns > 0 {
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Datetime Columns", ch.DatetimeColumns))
	}
	if ch.GeospatialColumns > 0 {
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Geospatial Columns", ch.GeospatialColumns))
	}
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Missing Values", utils.FormatPercentage(ch.MissingPercentage)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Duplicate Rows", utils.FormatPercentage(ch.DuplicatePercentage)))
	builder.WriteString(utils.FormatSectionSeparator())

	builder.WriteString(utils.FormatSectionHeader("ANALYSIS"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "EDA Type", string(response.EDAType)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Complexity Score", fmt.Sprintf("%.2f", ch.ComplexityScore)))
	summary := response.Metadata.AnalysisSummary
	for _, kc := range summary.KeyCharacteristics {
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "-", kc))
	}
	if len(summary.AnalysisRecommendations) > 0 {
		builder.WriteString("\n")
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Recommended", ""))
		for _, rec := range summary.AnalysisRecommendations {
			builder.WriteString(utils.FormatLabelWithIndent(SectionPadding*2, "*", rec))
		}
	}
	builder.WriteString(utils.FormatSectionSeparator())

	if response.Domain != nil {
		builder.WriteString(utils.FormatSectionHeader("DOMAIN"))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Domain", response.Domain.Domain))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Confidence", fmt.Sprintf("%.2f", response.Domain.Confidence)))
		if response.Domain.Reason != "" {
			builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Reason", response.Domain.Reason))
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	if len(response.Insights) > 0 {
		builder.WriteString(utils.FormatSectionHeader("INSIGHTS"))
		for _, insight := range response.Insights {
			builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, insight.Title, ""))
			builder.WriteString(utils.FormatLabelWithIndent(SectionPadding*2, "", insight.Description))
			if insight.Recommendation != "" {
				builder.WriteString(utils.FormatLabelWithIndent(SectionPadding*2, "Recommendation", insight.Recommendation))
			}
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	if len(response.CleaningLog) > 0 {
		builder.WriteString(utils.FormatSectionHeader("CLEANING"))
		for _, entry := range response.CleaningLog {
			builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, entry.Operation, entry.Details))
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	if len(response.Warnings) > 0 {
		builder.WriteString(utils.FormatWarningsSection(response.Warnings))
	}

	builder.WriteString(fmt.Sprintf("Generated at %s (datalysis %s)\n", response.GeneratedAt, response.Version))

	return builder.String(), nil
}

// formatCSV emits one row per column profile, sorted by column name
func (f *AnalysisFormatterImpl) formatCSV(response *domain.AnalysisResponse) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	header := []string{"column", "data_type", "missing_count", "missing_percentage", "unique_count"}
	if err := writer.Write(header); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}

	names := make([]string, 0, len(response.Profile))
	for name := range response.Profile {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prof, ok := response.Profile[name].(map[string]any)
		if !ok {
			continue
		}
		record := []string{
			name,
			csvField(prof["data_type"]),
			csvField(prof["missing_count"]),
			csvField(prof["missing_percentage"]),
			csvField(prof["unique_count"]),
		}
		if err := writer.Write(record); err != nil {
			return "", domain.NewOutputError("failed to write CSV record", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", domain.NewOutputError("failed to flush CSV output", err)
	}

	return builder.String(), nil
}

func csvField(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%.2f", t)
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// CleaningFormatterImpl implements the CleaningFormatter interface
type CleaningFormatterImpl struct{}

// NewCleaningFormatter creates a new cleaning output formatter
func NewCleaningFormatter() *CleaningFormatterImpl {
	return &CleaningFormatterImpl{}
}

// Format formats the cleaning response according to the specified format.
// CSV output is the cleaned table itself rather than a report about it.
func (f *CleaningFormatterImpl) Format(response *domain.CleaningResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText:
		return f.formatText(response)
	case domain.OutputFormatJSON:
		return EncodeJSON(Sanitize(response))
	case domain.OutputFormatYAML:
		return EncodeYAML(Sanitize(response))
	case domain.OutputFormatCSV:
		return response.CleanedCSV, nil
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *CleaningFormatterImpl) Write(response *domain.CleaningResponse, format domain.OutputFormat, writer io.Writer) error {
	output, err := f.Format(response, format)
	if err != nil {
		return err
	}

	_, err = writer.Write([]byte(output))
	if err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

func (f *CleaningFormatterImpl) formatText(response *domain.CleaningResponse) (string, error) {
	var builder strings.Builder
	utils := NewFormatUtils()

	builder.WriteString(utils.FormatMainHeader("Data Cleaning Report"))

	s := response.Summary
	builder.WriteString(utils.FormatSectionHeader("SUMMARY"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Original Shape",
		fmt.Sprintf("%d rows x %d columns", s.OriginalShape.Rows, s.OriginalShape.Columns)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Final Shape",
		fmt.Sprintf("%d rows x %d columns", s.FinalShape.Rows, s.FinalShape.Columns)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Rows Removed", s.RowsRemoved))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Columns Removed", s.ColumnsRemoved))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Operations", s.CleaningOperations))
	builder.WriteString(utils.FormatSectionSeparator())

	q := s.QualityImprovement
	builder.WriteString(utils.FormatSectionHeader("QUALITY"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Completeness Before", utils.FormatPercentage(q.CompletenessBefore*100)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Completeness After", utils.FormatPercentage(q.CompletenessAfter*100)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Missing Value Reduction", utils.FormatPercentage(q.MissingValueReduction*100)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Consistency Score", fmt.Sprintf("%.2f", q.DataConsistencyScore)))
	builder.WriteString(utils.FormatSectionSeparator())

	if len(response.Log) > 0 {
		builder.WriteString(utils.FormatSectionHeader("OPERATIONS"))
		for _, entry := range response.Log {
			builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, entry.Operation, entry.Details))
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	builder.WriteString(fmt.Sprintf("Generated at %s (datalysis %s)\n", response.GeneratedAt, response.Version))

	return builder.String(), nil
}
