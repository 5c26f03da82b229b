package orchestrate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"stagehand/config"
	"stagehand/core"
	"stagehand/metrics"
	"stagehand/output"
	"stagehand/refdata"
	"stagehand/scenario"
	"stagehand/sourcegen"
	"stagehand/timegrid"
	"stagehand/util/goroutine"
)

// Runner holds everything one generation run needs. All fields are read-only
// after New, so worker lanes share them without locking.
type Runner struct {
	cfg        *config.Config
	grid       *timegrid.Grid
	company    *refdata.Company
	engines    []scenario.Engine
	generators map[core.SourceID]sourcegen.Generator
	sources    []core.SourceID
	writer     *output.Writer
	logger     *zap.SugaredLogger
}

// sourceResult is the message a lane passes to the writer loop when it has
// finished (or given up on) one source. canceled marks a run-level shutdown
// that interrupted the source mid-range; err without canceled is a source
// failure (generator error, deadline, panic).
type sourceResult struct {
	source   core.SourceID
	events   []*core.Event
	canceled bool
	err      error
}

// New wires a runner. sources must be a subset of the registered generators.
func New(cfg *config.Config, grid *timegrid.Grid, company *refdata.Company,
	engines []scenario.Engine, generators map[core.SourceID]sourcegen.Generator,
	sources []core.SourceID, writer *output.Writer, logger *zap.SugaredLogger) *Runner {

	return &Runner{
		cfg:        cfg,
		grid:       grid,
		company:    company,
		engines:    engines,
		generators: generators,
		sources:    sources,
		writer:     writer,
		logger:     logger,
	}
}

// Run executes the full cross-product and returns the per-source report.
// Each worker lane owns whole sources, so one source's events are generated
// in ascending time order by a single goroutine and need no post-hoc sort.
// One source failing or timing out never disturbs another lane.
func (r *Runner) Run(ctx context.Context) *Report {
	lanes := r.cfg.Parallelism
	if lanes > len(r.sources) {
		lanes = len(r.sources)
	}

	// Round-robin partition keeps heavy sources from clustering in one lane.
	assignments := make([][]core.SourceID, lanes)
	for i, src := range r.sources {
		assignments[i%lanes] = append(assignments[i%lanes], src)
	}

	results := make(chan sourceResult, len(r.sources))
	var wg sync.WaitGroup
	for lane, assigned := range assignments {
		wg.Add(1)
		go func(lane int, assigned []core.SourceID) {
			defer wg.Done()
			for _, src := range assigned {
				r.runSource(ctx, lane, src, results)
			}
		}(lane, assigned)
	}

	// Writer loop. Lanes pass completed buffers here; only this goroutine
	// touches the filesystem, keeping the buffer-then-atomic-write handoff
	// explicit.
	report := &Report{PerSource: make(map[core.SourceID]SourceStatus)}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for res := range results {
			report.PerSource[res.source] = r.writeResult(res)
		}
	}()

	wg.Wait()
	close(results)
	<-done
	return report
}

// runSource generates one source's full day range and sends the outcome to
// the writer loop. A panic in a generator is contained here and reported as
// that source's failure.
func (r *Runner) runSource(ctx context.Context, lane int, src core.SourceID, results chan<- sourceResult) {
	defer goroutine.Recover(fmt.Sprintf("lane-%d/%s", lane, src), r.logger, func(v interface{}) {
		results <- sourceResult{source: src, err: fmt.Errorf("generator panic: %v", v)}
	})

	gen, ok := r.generators[src]
	if !ok {
		results <- sourceResult{source: src, err: fmt.Errorf("no generator registered for %s", src)}
		return
	}

	srcCtx, cancel := context.WithTimeout(ctx, r.cfg.SourceTimeout)
	defer cancel()

	started := time.Now()
	var events []*core.Event
	for _, cell := range r.grid.Cells() {
		// A run-level shutdown interrupts the source but keeps its buffer;
		// the source's own deadline expiring is a failure and discards it.
		if err := ctx.Err(); err != nil {
			results <- sourceResult{source: src, events: events, canceled: true,
				err: fmt.Errorf("run canceled at %s: %w", cell, err)}
			return
		}
		if err := srcCtx.Err(); err != nil {
			results <- sourceResult{source: src,
				err: fmt.Errorf("generation deadline exceeded at %s: %w", cell, err)}
			return
		}
		win, _ := r.grid.Window(cell)
		rng := core.HourRNG(r.cfg.Seed, src, cell.Day, cell.Hour)
		hourEvents, err := gen.GenerateHour(cell, win, r.grid.Weekday(cell.Day),
			rng, r.company, r.cfg, r.engines)
		if err != nil {
			results <- sourceResult{source: src,
				err: fmt.Errorf("generate %s at %s: %w", src, cell, err)}
			return
		}
		events = append(events, hourEvents...)
	}

	metrics.EventsGenerated.WithLabelValues(string(src)).Add(float64(len(events)))
	metrics.SourceDuration.WithLabelValues(string(src)).Observe(time.Since(started).Seconds())
	for _, ev := range events {
		if ev.DemoID != "" {
			metrics.ScenarioEvents.WithLabelValues(ev.DemoID).Inc()
		}
	}

	r.logger.Infow("Source generation complete",
		"source", src,
		"lane", lane,
		"events", len(events),
		"duration", time.Since(started))
	results <- sourceResult{source: src, events: events}
}

// writeResult turns one lane result into the source's final status. A source
// that errored or exceeded its deadline is failed and writes no file. A
// run-level cancellation writes the hours completed so far, reported as
// partial so incomplete content is never presented as success.
func (r *Runner) writeResult(res sourceResult) SourceStatus {
	src := res.source

	if res.err != nil && !res.canceled {
		metrics.SourceFailures.WithLabelValues(string(src), "generate").Inc()
		r.logger.Errorw("Source failed, excluded from output", "source", src, "error", res.err)
		return SourceStatus{State: StateFailed, Err: res.err.Error()}
	}
	if res.canceled && len(res.events) == 0 {
		metrics.SourceFailures.WithLabelValues(string(src), "generate").Inc()
		r.logger.Errorw("Source canceled before producing output", "source", src, "error", res.err)
		return SourceStatus{State: StateFailed, Err: res.err.Error()}
	}

	gen := r.generators[src]
	if err := r.writer.WriteSource(gen.Filename(), gen.Format(), res.events); err != nil {
		metrics.SourceFailures.WithLabelValues(string(src), "write").Inc()
		r.logger.Errorw("Source write failed", "source", src, "error", err)
		return SourceStatus{State: StateFailed, Err: err.Error()}
	}

	status := SourceStatus{
		State:      StateSuccess,
		EventCount: len(res.events),
		File:       gen.Filename(),
	}
	if res.canceled {
		status.State = StatePartial
		status.Err = res.err.Error()
		metrics.SourceFailures.WithLabelValues(string(src), "partial").Inc()
	}
	return status
}
