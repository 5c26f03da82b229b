package sourcegen

import (
	"fmt"
	"math/rand"
	"time"

	"stagehand/core"
	"stagehand/output"
	"stagehand/refdata"
)

// emailSource simulates the mail gateway's message log: deliveries in both
// directions plus spam and phishing rejections.
type emailSource struct{}

var _ emitter = (*emailSource)(nil)

func (s *emailSource) id() core.SourceID     { return core.SourceEmail }
func (s *emailSource) format() output.Format { return output.FormatKV }

func (s *emailSource) profile() Profile {
	return Profile{PeakRate: 120, Curve: officeCurve, WeekendFactor: 0.2}
}

var extMailDomains = []string{
	"gmail.com", "outlook.com", "customer-corp.example", "supplier-gmbh.example",
	"logistics-partner.example",
}

func (s *emailSource) emit(ts time.Time, rng *rand.Rand, ref *refdata.Company) *core.Event {
	emp := ref.RandomEmployee(rng)
	external := fmt.Sprintf("%s.%s@%s",
		core.Pick(rng, []string{"info", "sales", "j.meyer", "a.chen", "support"}),
		fmt.Sprint(rng.Intn(90)), core.Pick(rng, extMailDomains))

	ev := core.NewEvent(core.SourceEmail, ts).
		Set("message_id", fmt.Sprintf("<%d.%d@mx.tealstone-robotics.com>", ts.Unix(), rng.Intn(1_000_000))).
		Set("size", 2000+rng.Intn(4_000_000))

	switch r := rng.Float64(); {
	case r < 0.45:
		ev.Set("direction", "inbound").
			Set("from", external).
			Set("to", emp.Email).
			Set("action", "delivered")
		ev.Severity = "info"
	case r < 0.85:
		ev.Set("direction", "outbound").
			Set("from", emp.Email).
			Set("to", external).
			Set("action", "delivered")
		ev.Severity = "info"
	case r < 0.97:
		ev.Set("direction", "inbound").
			Set("from", external).
			Set("to", emp.Email).
			Set("action", "rejected").
			Set("reason", "spam")
		ev.Severity = "warning"
	default:
		ev.Set("direction", "inbound").
			Set("from", external).
			Set("to", emp.Email).
			Set("action", "quarantined").
			Set("reason", "phishing")
		ev.Severity = "high"
	}
	ev.Host = "mail-hq-01"
	ev.Message = fmt.Sprintf("%s %s -> %s", ev.Fields["action"], ev.Fields["from"], ev.Fields["to"])
	return ev
}
