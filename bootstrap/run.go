package bootstrap

import (
	"fmt"

	"go.uber.org/zap"

	"stagehand/config"
	"stagehand/core"
	"stagehand/orchestrate"
	"stagehand/output"
	"stagehand/refdata"
	"stagehand/scenario"
	"stagehand/sourcegen"
	"stagehand/timegrid"
)

// Run is a fully assembled generation run.
type Run struct {
	Config   *config.Config
	Grid     *timegrid.Grid
	Company  *refdata.Company
	Registry *scenario.Registry
	Active   []scenario.Definition
	Sources  []core.SourceID
	Runner   *orchestrate.Runner
}

// Build resolves configuration into a ready-to-execute run. Every error here
// is a configuration error: it fails fast before any generation starts.
func Build(cfg *config.Config, logger *zap.SugaredLogger) (*Run, error) {
	start, err := cfg.Start()
	if err != nil {
		return nil, err
	}
	grid, err := timegrid.NewGrid(start, cfg.Days)
	if err != nil {
		return nil, err
	}

	sourceSet, err := core.ParseSourceSet(cfg.Sources)
	if err != nil {
		return nil, fmt.Errorf("resolve sources: %w", err)
	}
	sources := core.SortedSources(sourceSet)

	registry, err := scenario.BuiltinRegistry()
	if err != nil {
		return nil, fmt.Errorf("build scenario registry: %w", err)
	}
	if cfg.ScenarioFile != "" {
		overrides, err := scenario.LoadOverrides(cfg.ScenarioFile)
		if err != nil {
			return nil, err
		}
		if err := registry.Apply(overrides); err != nil {
			return nil, err
		}
	}

	company := refdata.NewCompany(cfg.Seed)

	active := registry.Resolve(cfg.Scenarios, sourceSet, logger)
	engines := registry.Engines(active, company, cfg.Seed)

	writer, err := output.NewWriter(cfg.OutputDir, logger)
	if err != nil {
		return nil, err
	}

	logger.Infow("Run assembled",
		"start_date", cfg.StartDate,
		"days", cfg.Days,
		"sources", len(sources),
		"scenarios", len(active),
		"parallelism", cfg.Parallelism,
		"seed", cfg.Seed)

	runner := orchestrate.New(cfg, grid, company, engines, sourcegen.All(),
		sources, writer, logger)

	return &Run{
		Config:   cfg,
		Grid:     grid,
		Company:  company,
		Registry: registry,
		Active:   active,
		Sources:  sources,
		Runner:   runner,
	}, nil
}
