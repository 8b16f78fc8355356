package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/internal/analyzer"
	"github.com/Ajith-oo7/Data-lysis/internal/cleaner"
	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
	"github.com/Ajith-oo7/Data-lysis/internal/profiler"
	"github.com/Ajith-oo7/Data-lysis/internal/version"
)

// maxInsightSampleRows caps the CSV excerpt sent to the LLM collaborator.
const maxInsightSampleRows = 50

// previewRows is the head-of-table size in responses.
const previewRows = 5

// AnalysisServiceImpl implements the AnalysisService interface
type AnalysisServiceImpl struct {
	engine   *analyzer.Engine
	insights domain.InsightService
}

// NewAnalysisService creates a new analysis service. The insight service may
// be nil, in which case domain detection and AI insights are skipped.
func NewAnalysisService(insights domain.InsightService) *AnalysisServiceImpl {
	return &AnalysisServiceImpl{
		engine:   analyzer.NewEngine(),
		insights: insights,
	}
}

// Analyze routes the dataset through the appropriate EDA strategy
func (s *AnalysisServiceImpl) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewInvalidInputError("analysis cancelled", err)
	}

	ds, err := buildDataset(req.Path, req.CSVData, req.Records)
	if err != nil {
		return nil, err
	}

	response := &domain.AnalysisResponse{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     version.Version,
	}

	if req.CleanFirst {
		opts := req.CleaningOptions
		if opts == nil {
			opts = domain.DefaultCleaningOptions()
		}
		pipeline := cleaner.NewPipeline(opts)
		ds, _ = pipeline.Clean(ds)
		response.CleaningLog = pipeline.Log()
	}

	edaType, chars, results := s.engine.Analyze(ds, req.TargetColumn)

	response.EDAType = edaType
	response.Characteristics = chars
	response.Results = results
	response.Profile = profileMap(ds)
	response.Preview = previewOf(ds)
	response.Metadata = domain.AnalysisMetadata{
		RunID:           uuid.NewString(),
		EDAType:         edaType,
		Characteristics: chars,
		Timestamp:       response.GeneratedAt,
		AnalysisSummary: s.engine.Summary(edaType, chars),
	}

	if s.insights != nil && (req.WithDomainDetection || req.WithAIInsights) {
		s.collaborate(ctx, req, ds, response)
	}

	return response, nil
}

// collaborate asks the LLM for domain classification and insights. Failures
// degrade to warnings on the response instead of failing the analysis.
func (s *AnalysisServiceImpl) collaborate(ctx context.Context, req domain.AnalysisRequest, ds *dataset.Dataset, response *domain.AnalysisResponse) {
	var classification *domain.DomainClassification

	if req.WithDomainDetection {
		c, err := s.insights.DetectDomain(ctx, ds.ColumnNames(), ds.Head(previewRows))
		if err != nil {
			response.Warnings = append(response.Warnings,
				fmt.Sprintf("domain detection failed: %v", err))
		}
		if c != nil {
			classification = c
			response.Domain = c
		}
	}

	if req.WithAIInsights {
		insights, err := s.insights.GenerateInsights(ctx, csvSample(ds, maxInsightSampleRows), classification)
		if err != nil {
			response.Warnings = append(response.Warnings,
				fmt.Sprintf("insight generation failed: %v", err))
		}
		response.Insights = insights
	}
}

// buildDataset constructs the dataset from whichever input the request set.
// Exactly one of path, csvData, or records must be non-empty.
func buildDataset(path, csvData string, records []map[string]any) (*dataset.Dataset, error) {
	set := 0
	if path != "" {
		set++
	}
	if csvData != "" {
		set++
	}
	if len(records) > 0 {
		set++
	}
	if set != 1 {
		return nil, domain.NewInvalidInputError("exactly one of path, CSV data, or records must be provided", nil)
	}

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}
		csvData = string(content)
	}

	return dataset.FromInput(dataset.Input{CSV: csvData, Records: records})
}

// profileMap converts the typed column profiles into the generic per-column
// map shape used in responses.
func profileMap(ds *dataset.Dataset) map[string]any {
	profiles := profiler.ProfileDataset(ds)

	out := make(map[string]any, len(profiles))
	for name, prof := range profiles {
		raw, err := json.Marshal(prof)
		if err != nil {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			continue
		}
		out[name] = m
	}
	return out
}

func previewOf(ds *dataset.Dataset) *domain.DataPreview {
	return &domain.DataPreview{
		Headers:   ds.ColumnNames(),
		Rows:      ds.Head(previewRows),
		TotalRows: ds.NumRows(),
	}
}

// csvSample serializes at most maxRows data rows (plus the header) of the
// dataset as CSV.
func csvSample(ds *dataset.Dataset, maxRows int) string {
	blob := ds.ToCSV()
	if ds.NumRows() <= maxRows {
		return blob
	}

	lines := strings.SplitAfter(blob, "\n")
	if len(lines) <= maxRows+1 {
		return blob
	}
	return strings.Join(lines[:maxRows+1], "")
}
