package mcp

import (
	"os"

	"go.uber.org/zap"

	"github.com/Ajith-oo7/Data-lysis/app"
	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/internal/config"
	"github.com/Ajith-oo7/Data-lysis/internal/llm"
	"github.com/Ajith-oo7/Data-lysis/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	reader     domain.DatasetReader
	insights   domain.InsightService
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults. The
// insight service is wired from configuration and may be nil when no API key
// is available.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		reader:     service.NewDatasetReader(),
		insights:   buildInsightService(cfg),
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// BuildAnalyzeUseCase assembles a fresh AnalyzeUseCase with injected dependencies.
func (d *Dependencies) BuildAnalyzeUseCase() (*app.AnalyzeUseCase, error) {
	return app.NewAnalyzeUseCaseBuilder().
		WithService(service.NewAnalysisService(d.insights)).
		WithReader(d.reader).
		WithFormatter(service.NewAnalysisFormatter()).
		WithConfigLoader(service.NewConfigurationLoader()).
		Build()
}

// BuildCleanUseCase assembles a fresh CleanUseCase with injected dependencies.
func (d *Dependencies) BuildCleanUseCase() (*app.CleanUseCase, error) {
	return app.NewCleanUseCaseBuilder().
		WithService(service.NewCleaningService()).
		WithReader(d.reader).
		WithFormatter(service.NewCleaningFormatter()).
		WithConfigLoader(service.NewCleaningConfigurationLoader()).
		Build()
}

// InsightService returns the LLM collaborator, or nil when unconfigured.
func (d *Dependencies) InsightService() domain.InsightService {
	return d.insights
}

func buildInsightService(cfg *config.Config) domain.InsightService {
	if !cfg.AI.Enabled {
		return nil
	}

	apiKey := os.Getenv(cfg.AI.APIKeyEnv)
	if apiKey == "" {
		return nil
	}

	client, err := llm.NewClient(&llm.Config{Model: cfg.AI.Model, APIKey: apiKey}, zap.NewNop())
	if err != nil {
		return nil
	}
	return client
}
