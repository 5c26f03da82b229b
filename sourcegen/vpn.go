package sourcegen

import (
	"fmt"
	"math/rand"
	"time"

	"stagehand/core"
	"stagehand/output"
	"stagehand/refdata"
)

// vpnSource simulates the remote-access VPN concentrator: session start,
// session end, and the occasional failed authentication.
type vpnSource struct{}

var _ emitter = (*vpnSource)(nil)

func (s *vpnSource) id() core.SourceID     { return core.SourceVPN }
func (s *vpnSource) format() output.Format { return output.FormatKV }

func (s *vpnSource) profile() Profile {
	return Profile{PeakRate: 25, Curve: officeCurve, WeekendFactor: 0.3}
}

func (s *vpnSource) emit(ts time.Time, rng *rand.Rand, ref *refdata.Company) *core.Event {
	emp := ref.RandomEmployee(rng)
	ev := core.NewEvent(core.SourceVPN, ts).
		Set("user", emp.Username).
		Set("src_ip", ref.ExternalIP(rng)).
		Set("auth_method", "password+mfa")

	switch r := rng.Float64(); {
	case r < 0.45:
		ev.Set("result", "success").
			Set("action", "session_start").
			Set("assigned_ip", fmt.Sprintf("10.1.200.%d", 10+rng.Intn(200)))
		ev.Severity = "info"
		ev.Message = fmt.Sprintf("session started user=%s", emp.Username)
	case r < 0.9:
		ev.Set("action", "session_end").
			Set("duration_s", 300+rng.Intn(28000)).
			Set("bytes_in", rng.Intn(500_000_000)).
			Set("bytes_out", rng.Intn(50_000_000))
		ev.Severity = "info"
		ev.Message = fmt.Sprintf("session ended user=%s", emp.Username)
	default:
		ev.Set("result", "failure").
			Set("action", "auth").
			Set("reason", "invalid-credentials")
		ev.Severity = "warning"
		ev.Message = fmt.Sprintf("auth failure user=%s", emp.Username)
	}
	ev.Host = "vpn-hq-01"
	return ev
}
