package scenario

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"stagehand/core"
)

// Engine is one instantiated scenario. Produce returns the scenario's event
// contribution for one (source, day, hour) cell, placed inside the absolute
// hour window starting at win. It returns nil for any day outside the
// scenario's active window, for sources the scenario does not declare, and it
// never panics anywhere in the simulated range. Calls are idempotent and
// order-independent: the result is a pure function of (source, day, hour) and
// the cast precomputed at construction.
type Engine interface {
	Definition() Definition
	Produce(source core.SourceID, day, hour int, win time.Time) []*core.Event
}

// Phase is one state of a scenario's day-keyed state machine. Day bounds are
// absolute simulation days, inclusive on both ends.
type Phase struct {
	Name     string
	StartDay int
	EndDay   int
}

type phases []Phase

// at returns the phase covering day. When a short window makes phase ranges
// overlap, the latest phase wins.
func (p phases) at(day int) (Phase, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if day >= p[i].StartDay && day <= p[i].EndDay {
			return p[i], true
		}
	}
	return Phase{}, false
}

// splitPhases divides the inclusive day window [startDay, endDay] evenly
// across the named phases in order. Short windows collapse trailing phases
// into the last day rather than dropping them, so even a one-day scenario
// reaches its final phase.
func splitPhases(startDay, endDay int, names ...string) phases {
	total := endDay - startDay + 1
	out := make(phases, 0, len(names))
	for i, name := range names {
		s := startDay + i*total/len(names)
		e := startDay + (i+1)*total/len(names) - 1
		if e < s {
			e = s
		}
		if e > endDay {
			e = endDay
		}
		if s > endDay {
			s = endDay
		}
		out = append(out, Phase{Name: name, StartDay: s, EndDay: e})
	}
	// Last phase always runs through the end of the window.
	out[len(out)-1].EndDay = endDay
	return out
}

// base carries what every concrete engine needs: its definition, the run
// seed, and deterministic helpers. Concrete engines embed it and add their
// precomputed cast.
type base struct {
	def  Definition
	seed int64
}

func (b base) Definition() Definition { return b.def }

// rng derives the stream for one cell of this scenario's contribution to one
// source. Independent of baseline streams and of call order.
func (b base) rng(source core.SourceID, day, hour int) *rand.Rand {
	return core.RNG(b.seed, "scenario", b.def.Name, string(source), core.CellKey(day, hour))
}

// event creates a tagged scenario event at ts.
func (b base) event(source core.SourceID, ts time.Time) *core.Event {
	e := core.NewEvent(source, ts)
	e.EventID = b.eventID(source, ts)
	return e.Tag(b.def.CorrelationTag)
}

// eventID derives a stable UUID so re-runs with the same seed produce the
// same identifiers.
func (b base) eventID(source core.SourceID, ts time.Time) string {
	name := b.def.Name + "/" + string(source) + "/" + ts.Format(time.RFC3339Nano)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// spread places n timestamps inside the hour window in ascending order.
func spread(rng *rand.Rand, win time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = win.Add(time.Duration(rng.Int63n(int64(time.Hour))))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// offHours reports whether an hour falls outside the 08:00-18:00 business
// window. Several scenarios bias their peak activity into these hours.
func offHours(hour int) bool {
	return hour < 8 || hour >= 18
}
