package sourcegen

import (
	"fmt"
	"math/rand"
	"time"

	"stagehand/core"
	"stagehand/output"
	"stagehand/refdata"
)

// winAuthSource simulates Windows security audit logons against the domain
// controllers.
type winAuthSource struct{}

var _ emitter = (*winAuthSource)(nil)

func (s *winAuthSource) id() core.SourceID     { return core.SourceWinAuth }
func (s *winAuthSource) format() output.Format { return output.FormatKV }

func (s *winAuthSource) profile() Profile {
	return Profile{PeakRate: 160, Curve: officeCurve, WeekendFactor: 0.15}
}

func (s *winAuthSource) emit(ts time.Time, rng *rand.Rand, ref *refdata.Company) *core.Event {
	emp := ref.RandomEmployee(rng)
	dc := ref.RandomHost(rng, "dc")

	code := 4624
	status := ""
	sev := "info"
	msg := "An account was successfully logged on"
	switch r := rng.Float64(); {
	case r < 0.06:
		code, status, sev = 4625, "0xC000006A", "warning"
		msg = "An account failed to log on"
	case r < 0.10:
		code = 4634
		msg = "An account was logged off"
	}

	ev := core.NewEvent(core.SourceWinAuth, ts).
		Set("event_code", code).
		Set("user", emp.Username).
		Set("domain", "TEALSTONE").
		Set("src_host", emp.Workstation).
		Set("logon_type", core.Pick(rng, []int{2, 3, 3, 10})).
		Set("auth_package", "Kerberos")
	if status != "" {
		ev.Set("status", status)
	}
	ev.Host = dc.Name
	ev.Severity = sev
	ev.Message = fmt.Sprintf("%s: %s", msg, emp.Username)
	return ev
}
