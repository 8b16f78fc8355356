package service

import (
	"context"
	"time"

	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/internal/cleaner"
	"github.com/Ajith-oo7/Data-lysis/internal/version"
)

// CleaningServiceImpl implements the CleaningService interface
type CleaningServiceImpl struct{}

// NewCleaningService creates a new cleaning service
func NewCleaningService() *CleaningServiceImpl {
	return &CleaningServiceImpl{}
}

// Clean runs the cleaning pipeline on the requested dataset
func (s *CleaningServiceImpl) Clean(ctx context.Context, req domain.CleaningRequest) (*domain.CleaningResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewInvalidInputError("cleaning cancelled", err)
	}

	ds, err := buildDataset(req.Path, req.CSVData, req.Records)
	if err != nil {
		return nil, err
	}

	opts := req.Options
	if opts == nil {
		opts = domain.DefaultCleaningOptions()
	}

	pipeline := cleaner.NewPipeline(opts)
	cleaned, summary := pipeline.Clean(ds)

	return &domain.CleaningResponse{
		Summary:     summary,
		Log:         pipeline.Log(),
		CleanedCSV:  cleaned.ToCSV(),
		Preview:     previewOf(cleaned),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     version.Version,
	}, nil
}
