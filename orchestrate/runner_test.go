package orchestrate

import (
	"bufio"
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"stagehand/config"
	"stagehand/core"
	"stagehand/output"
	"stagehand/refdata"
	"stagehand/scenario"
	"stagehand/sourcegen"
	"stagehand/timegrid"
)

func testSetup(t *testing.T, cfg *config.Config) (*timegrid.Grid, *refdata.Company, []scenario.Engine, *output.Writer) {
	t.Helper()
	start, err := cfg.Start()
	require.NoError(t, err)
	grid, err := timegrid.NewGrid(start, cfg.Days)
	require.NoError(t, err)

	company := refdata.NewCompany(cfg.Seed)

	registry, err := scenario.BuiltinRegistry()
	require.NoError(t, err)
	sourceSet, err := core.ParseSourceSet(cfg.Sources)
	require.NoError(t, err)
	defs := registry.Resolve(cfg.Scenarios, sourceSet, zaptest.NewLogger(t).Sugar())
	engines := registry.Engines(defs, company, cfg.Seed)

	writer, err := output.NewWriter(cfg.OutputDir, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	return grid, company, engines, writer
}

func testRunConfig(t *testing.T, sources ...string) *config.Config {
	t.Helper()
	if len(sources) == 0 {
		sources = []string{"dns", "vpn", "badge"}
	}
	return &config.Config{
		StartDate:     "2024-03-04",
		Days:          2,
		Scale:         0.5,
		Seed:          4,
		Parallelism:   2,
		OutputDir:     t.TempDir(),
		Sources:       sources,
		Scenarios:     []string{"all"},
		SourceTimeout: time.Minute,
	}
}

// failingGenerator aborts on its first hour.
type failingGenerator struct{ id core.SourceID }

func (f failingGenerator) ID() core.SourceID     { return f.id }
func (f failingGenerator) Filename() string      { return string(f.id) + ".log" }
func (f failingGenerator) Format() output.Format { return output.FormatJSON }
func (f failingGenerator) GenerateHour(timegrid.Cell, time.Time, time.Weekday, *rand.Rand,
	*refdata.Company, *config.Config, []scenario.Engine) ([]*core.Event, error) {
	return nil, errors.New("injected generator failure")
}

// panickingGenerator panics instead of returning.
type panickingGenerator struct{ failingGenerator }

func (p panickingGenerator) GenerateHour(timegrid.Cell, time.Time, time.Weekday, *rand.Rand,
	*refdata.Company, *config.Config, []scenario.Engine) ([]*core.Event, error) {
	panic("injected generator panic")
}

// flakyGenerator succeeds for a fixed number of hours, then errors.
type flakyGenerator struct {
	id    core.SourceID
	hours int
	calls int
}

func (f *flakyGenerator) ID() core.SourceID     { return f.id }
func (f *flakyGenerator) Filename() string      { return string(f.id) + ".log" }
func (f *flakyGenerator) Format() output.Format { return output.FormatJSON }
func (f *flakyGenerator) GenerateHour(_ timegrid.Cell, win time.Time, _ time.Weekday, _ *rand.Rand,
	_ *refdata.Company, _ *config.Config, _ []scenario.Engine) ([]*core.Event, error) {
	f.calls++
	if f.calls > f.hours {
		return nil, errors.New("mid-run generator failure")
	}
	ev := core.NewEvent(f.id, win.Add(time.Minute))
	ev.Message = "flaky"
	return []*core.Event{ev}, nil
}

// cancelingGenerator triggers a run-level shutdown after a fixed number of
// hours, standing in for an interrupt signal arriving mid-run.
type cancelingGenerator struct {
	id     core.SourceID
	cancel context.CancelFunc
	after  int
	calls  int
}

func (c *cancelingGenerator) ID() core.SourceID     { return c.id }
func (c *cancelingGenerator) Filename() string      { return string(c.id) + ".log" }
func (c *cancelingGenerator) Format() output.Format { return output.FormatJSON }
func (c *cancelingGenerator) GenerateHour(_ timegrid.Cell, win time.Time, _ time.Weekday, _ *rand.Rand,
	_ *refdata.Company, _ *config.Config, _ []scenario.Engine) ([]*core.Event, error) {
	c.calls++
	if c.calls == c.after {
		c.cancel()
	}
	ev := core.NewEvent(c.id, win.Add(time.Minute))
	ev.Message = "interrupted"
	return []*core.Event{ev}, nil
}

func sourceIDs(names []string) []core.SourceID {
	set, _ := core.ParseSourceSet(names)
	return core.SortedSources(set)
}

func TestRunner_AllSourcesSucceed(t *testing.T) {
	cfg := testRunConfig(t)
	grid, company, engines, writer := testSetup(t, cfg)

	r := New(cfg, grid, company, engines, sourcegen.All(),
		sourceIDs(cfg.Sources), writer, zaptest.NewLogger(t).Sugar())
	report := r.Run(context.Background())

	require.Len(t, report.PerSource, 3)
	assert.False(t, report.Failed())
	for src, st := range report.PerSource {
		assert.Equal(t, StateSuccess, st.State, "source %s", src)
		assert.Greater(t, st.EventCount, 0, "source %s", src)

		path := filepath.Join(cfg.OutputDir, st.File)
		lines := countLines(t, path)
		assert.Equal(t, st.EventCount, lines, "source %s file", src)
	}
}

func TestRunner_FailureIsolatesToOneSource(t *testing.T) {
	cfg := testRunConfig(t, "dns", "vpn", "badge", "email")
	grid, company, engines, writer := testSetup(t, cfg)

	generators := sourcegen.All()
	generators[core.SourceVPN] = failingGenerator{id: core.SourceVPN}

	r := New(cfg, grid, company, engines, generators,
		sourceIDs(cfg.Sources), writer, zaptest.NewLogger(t).Sugar())
	report := r.Run(context.Background())

	require.Len(t, report.PerSource, 4)
	assert.Equal(t, StateFailed, report.PerSource[core.SourceVPN].State)
	assert.Contains(t, report.PerSource[core.SourceVPN].Err, "injected generator failure")
	assert.Zero(t, report.PerSource[core.SourceVPN].EventCount)

	for _, src := range []core.SourceID{core.SourceDNS, core.SourceBadge, core.SourceEmail} {
		st := report.PerSource[src]
		assert.Equal(t, StateSuccess, st.State, "source %s", src)
		assert.Greater(t, st.EventCount, 0, "source %s", src)
	}

	// The failed source must not leave a destination file behind.
	_, err := os.Stat(filepath.Join(cfg.OutputDir, "vpn.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunner_MidRunErrorDiscardsBuffer(t *testing.T) {
	cfg := testRunConfig(t, "dns", "badge")
	grid, company, engines, writer := testSetup(t, cfg)

	generators := sourcegen.All()
	generators[core.SourceDNS] = &flakyGenerator{id: core.SourceDNS, hours: 3}

	r := New(cfg, grid, company, engines, generators,
		sourceIDs(cfg.Sources), writer, zaptest.NewLogger(t).Sugar())
	report := r.Run(context.Background())

	st := report.PerSource[core.SourceDNS]
	assert.Equal(t, StateFailed, st.State, "a source that errors mid-range is failed")
	assert.Zero(t, st.EventCount)
	assert.Contains(t, st.Err, "mid-run generator failure")

	// Its partial buffer must not reach the output directory.
	_, err := os.Stat(filepath.Join(cfg.OutputDir, "dns.log"))
	assert.True(t, os.IsNotExist(err))

	assert.Equal(t, StateSuccess, report.PerSource[core.SourceBadge].State)
}

func TestRunner_DeadlineMarksSourceFailed(t *testing.T) {
	cfg := testRunConfig(t, "dns", "badge")
	cfg.SourceTimeout = -time.Millisecond
	grid, company, engines, writer := testSetup(t, cfg)

	r := New(cfg, grid, company, engines, sourcegen.All(),
		sourceIDs(cfg.Sources), writer, zaptest.NewLogger(t).Sugar())
	report := r.Run(context.Background())

	for _, src := range []core.SourceID{core.SourceDNS, core.SourceBadge} {
		st := report.PerSource[src]
		assert.Equal(t, StateFailed, st.State, "source %s", src)
		assert.Zero(t, st.EventCount, "source %s", src)
		assert.Contains(t, st.Err, "deadline", "source %s", src)

		_, err := os.Stat(filepath.Join(cfg.OutputDir, string(src)+".log"))
		assert.True(t, os.IsNotExist(err), "timed-out source %s must write nothing", src)
	}
}

func TestRunner_CancellationKeepsCompletedHours(t *testing.T) {
	cfg := testRunConfig(t, "dns")
	grid, company, engines, writer := testSetup(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const hoursBeforeShutdown = 5
	gen := &cancelingGenerator{id: core.SourceDNS, cancel: cancel, after: hoursBeforeShutdown}
	generators := map[core.SourceID]sourcegen.Generator{core.SourceDNS: gen}

	r := New(cfg, grid, company, engines, generators,
		sourceIDs(cfg.Sources), writer, zaptest.NewLogger(t).Sugar())
	report := r.Run(ctx)

	st := report.PerSource[core.SourceDNS]
	assert.Equal(t, StatePartial, st.State, "interrupted source with output is partial")
	assert.Equal(t, hoursBeforeShutdown, st.EventCount)
	assert.NotEmpty(t, st.Err)
	assert.True(t, report.Failed())

	lines := countLines(t, filepath.Join(cfg.OutputDir, st.File))
	assert.Equal(t, st.EventCount, lines, "completed hours must be on disk")
}

func TestRunner_PanicIsolatesToOneSource(t *testing.T) {
	cfg := testRunConfig(t, "dns", "badge")
	grid, company, engines, writer := testSetup(t, cfg)

	generators := sourcegen.All()
	generators[core.SourceBadge] = panickingGenerator{}

	r := New(cfg, grid, company, engines, generators,
		sourceIDs(cfg.Sources), writer, zaptest.NewLogger(t).Sugar())
	report := r.Run(context.Background())

	assert.Equal(t, StateFailed, report.PerSource[core.SourceBadge].State)
	assert.Contains(t, report.PerSource[core.SourceBadge].Err, "panic")
	assert.Equal(t, StateSuccess, report.PerSource[core.SourceDNS].State)
}

func TestRunner_TimestampsNonDecreasingPerSource(t *testing.T) {
	cfg := testRunConfig(t, "vpn")
	grid, company, engines, writer := testSetup(t, cfg)

	r := New(cfg, grid, company, engines, sourcegen.All(),
		sourceIDs(cfg.Sources), writer, zaptest.NewLogger(t).Sugar())
	report := r.Run(context.Background())
	require.Equal(t, StateSuccess, report.PerSource[core.SourceVPN].State)

	// vpn writes KV lines starting with an RFC3339-style timestamp.
	f, err := os.Open(filepath.Join(cfg.OutputDir, "vpn.log"))
	require.NoError(t, err)
	defer f.Close()

	var prev time.Time
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := scannerFirstField(scanner.Text())
		ts, err := time.Parse("2006-01-02T15:04:05.000Z", fields)
		require.NoError(t, err)
		assert.False(t, ts.Before(prev), "timestamps must be non-decreasing")
		prev = ts
	}
	require.NoError(t, scanner.Err())
}

func TestRunner_CountsReproducibleAcrossRuns(t *testing.T) {
	counts := func() map[core.SourceID]int {
		cfg := testRunConfig(t)
		grid, company, engines, writer := testSetup(t, cfg)
		r := New(cfg, grid, company, engines, sourcegen.All(),
			sourceIDs(cfg.Sources), writer, zaptest.NewLogger(t).Sugar())
		report := r.Run(context.Background())

		out := make(map[core.SourceID]int)
		for src, st := range report.PerSource {
			require.Equal(t, StateSuccess, st.State)
			out[src] = st.EventCount
		}
		return out
	}

	assert.Equal(t, counts(), counts(),
		"identical configuration must reproduce identical event counts")
}

func TestRunner_MoreLanesThanSources(t *testing.T) {
	cfg := testRunConfig(t, "dns")
	cfg.Parallelism = 8
	grid, company, engines, writer := testSetup(t, cfg)

	r := New(cfg, grid, company, engines, sourcegen.All(),
		sourceIDs(cfg.Sources), writer, zaptest.NewLogger(t).Sugar())
	report := r.Run(context.Background())
	assert.Equal(t, StateSuccess, report.PerSource[core.SourceDNS].State)
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		n++
	}
	require.NoError(t, scanner.Err())
	return n
}

func scannerFirstField(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] == ' ' {
			return line[:i]
		}
	}
	return line
}
