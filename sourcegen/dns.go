package sourcegen

import (
	"fmt"
	"math/rand"
	"time"

	"stagehand/core"
	"stagehand/output"
	"stagehand/refdata"
)

// dnsSource simulates the internal resolvers' query log.
type dnsSource struct{}

var _ emitter = (*dnsSource)(nil)

func (s *dnsSource) id() core.SourceID     { return core.SourceDNS }
func (s *dnsSource) format() output.Format { return output.FormatKV }

func (s *dnsSource) profile() Profile {
	return Profile{PeakRate: 500, Curve: infraCurve, WeekendFactor: 0.4}
}

var dnsNames = []string{
	"www.google.com", "outlook.office365.com", "github.com", "slack.com",
	"dc-hq-01.tealstone-robotics.com", "mail-hq-01.tealstone-robotics.com",
	"fileshare.tealstone-robotics.com", "api.stripe.com", "cdn.jsdelivr.net",
	"pool.ntp.org", "crl.verisign.example",
}

func (s *dnsSource) emit(ts time.Time, rng *rand.Rand, ref *refdata.Company) *core.Event {
	wks := ref.RandomHost(rng, "workstation")
	name := core.Pick(rng, dnsNames)

	rcode := "NOERROR"
	if rng.Float64() < 0.05 {
		rcode = "NXDOMAIN"
		name = fmt.Sprintf("srv%d.unknown.example", rng.Intn(1000))
	}

	ev := core.NewEvent(core.SourceDNS, ts).
		Set("src_ip", wks.IP).
		Set("query", name).
		Set("qtype", core.Pick(rng, []string{"A", "A", "A", "AAAA", "TXT", "MX"})).
		Set("rcode", rcode).
		Set("latency_ms", rng.Intn(80))
	ev.Host = "dns-hq-01"
	ev.Severity = "info"
	ev.Message = fmt.Sprintf("query %s from %s %s", name, wks.IP, rcode)
	return ev
}
