package sourcegen

import (
	"fmt"
	"math/rand"
	"time"

	"stagehand/core"
	"stagehand/output"
	"stagehand/refdata"
)

// badgeSource simulates the physical access control system. Volume tracks
// office hours tightly since badges are swiped at arrival, lunch, and
// departure.
type badgeSource struct{}

var _ emitter = (*badgeSource)(nil)

func (s *badgeSource) id() core.SourceID     { return core.SourceBadge }
func (s *badgeSource) format() output.Format { return output.FormatJSON }

func (s *badgeSource) profile() Profile {
	return Profile{PeakRate: 60, Curve: officeCurve, WeekendFactor: 0.05}
}

func (s *badgeSource) emit(ts time.Time, rng *rand.Rand, ref *refdata.Company) *core.Event {
	emp := ref.RandomEmployee(rng)
	door := core.Pick(rng, []string{"main-entrance", "garage", "lab-wing", "floor-2", "floor-3"})

	result := "granted"
	sev := "info"
	if rng.Float64() < 0.03 {
		result = "denied"
		sev = "warning"
	}

	ev := core.NewEvent(core.SourceBadge, ts).
		Set("badge_id", emp.BadgeID).
		Set("user", emp.Username).
		Set("door", door+"-"+emp.Site).
		Set("site", emp.Site).
		Set("result", result)
	ev.Host = "badge-ctrl-" + emp.Site
	ev.Severity = sev
	ev.Message = fmt.Sprintf("access %s badge=%s door=%s-%s", result, emp.BadgeID, door, emp.Site)
	return ev
}
