package mcp

import (
	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/internal/config"
	"github.com/Ajith-oo7/Data-lysis/service"
)

// NewTestDependencies builds a dependency set with injected services for tests.
func NewTestDependencies(reader domain.DatasetReader, insights domain.InsightService, cfg *config.Config, path string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if reader == nil {
		reader = service.NewDatasetReader()
	}
	return &Dependencies{
		reader:     reader,
		insights:   insights,
		config:     cfg,
		configPath: path,
	}
}
