// Package sourcegen holds the per-source generators. Each generator produces
// baseline events for one (day, hour) cell from its volume profile and merges
// in the contribution of every active scenario that declares its source.
// Generators share only read-only inputs, so they are safe to run in any
// order and concurrently across sources.
package sourcegen

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"stagehand/config"
	"stagehand/core"
	"stagehand/output"
	"stagehand/refdata"
	"stagehand/scenario"
	"stagehand/timegrid"
)

// Generator is the contract every data source satisfies.
type Generator interface {
	ID() core.SourceID
	// Filename is the destination file under the run's output directory.
	Filename() string
	Format() output.Format
	// GenerateHour produces the ordered event sequence for one cell. rng is
	// the deterministic stream for (seed, source, day, hour); results are a
	// pure function of the inputs.
	GenerateHour(cell timegrid.Cell, win time.Time, weekday time.Weekday,
		rng *rand.Rand, ref *refdata.Company, cfg *config.Config,
		engines []scenario.Engine) ([]*core.Event, error)
}

// emitter is what a concrete source implements: its identity, volume
// profile, and how to synthesize one baseline event.
type emitter interface {
	id() core.SourceID
	format() output.Format
	profile() Profile
	emit(ts time.Time, rng *rand.Rand, ref *refdata.Company) *core.Event
}

// adapter lifts an emitter to the Generator contract: it draws the realized
// baseline count, spreads timestamps across the hour, overlays scenario
// events, and returns the merged sequence in timestamp order.
type adapter struct {
	e emitter
}

func (a adapter) ID() core.SourceID     { return a.e.id() }
func (a adapter) Format() output.Format { return a.e.format() }
func (a adapter) Filename() string      { return string(a.e.id()) + ".log" }

func (a adapter) GenerateHour(cell timegrid.Cell, win time.Time, weekday time.Weekday,
	rng *rand.Rand, ref *refdata.Company, cfg *config.Config,
	engines []scenario.Engine) ([]*core.Event, error) {

	src := a.e.id()
	mean := a.e.profile().Mean(weekday, cell.Hour) * cfg.Scale * cfg.VolumeFor(string(src))
	n := core.Poisson(rng, mean)

	events := make([]*core.Event, 0, n)
	for i := 0; i < n; i++ {
		ts := win.Add(time.Duration(rng.Int63n(int64(time.Hour))))
		ev := a.e.emit(ts, rng, ref)
		if ev == nil {
			continue
		}
		events = append(events, ev)
	}

	// Scenario overlay. Engines whose definition does not list this source
	// are never queried for it.
	for _, eng := range engines {
		if !eng.Definition().Touches(src) {
			continue
		}
		for _, ev := range eng.Produce(src, cell.Day, cell.Hour, win) {
			if ev.DemoID == "" {
				return nil, fmt.Errorf("scenario %s produced untagged event for %s",
					eng.Definition().Name, src)
			}
			events = append(events, ev)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events, nil
}

// All returns every registered generator keyed by source id.
func All() map[core.SourceID]Generator {
	emitters := []emitter{
		&asaSource{}, &vpnSource{}, &winAuthSource{}, &linuxSecureSource{},
		&webAccessSource{}, &proxySource{}, &dnsSource{}, &emailSource{},
		&badgeSource{}, &dbAuditSource{}, &cloudShareSource{}, &endpointSource{},
	}
	out := make(map[core.SourceID]Generator, len(emitters))
	for _, e := range emitters {
		out[e.id()] = adapter{e: e}
	}
	return out
}
