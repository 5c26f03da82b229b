package sourcegen

import (
	"fmt"
	"math/rand"
	"time"

	"stagehand/core"
	"stagehand/output"
	"stagehand/refdata"
)

// proxySource simulates the outbound web proxy used by employee
// workstations.
type proxySource struct{}

var _ emitter = (*proxySource)(nil)

func (s *proxySource) id() core.SourceID     { return core.SourceProxy }
func (s *proxySource) format() output.Format { return output.FormatKV }

func (s *proxySource) profile() Profile {
	return Profile{PeakRate: 350, Curve: officeCurve, WeekendFactor: 0.1}
}

var proxyDomains = []string{
	"www.google.com", "outlook.office365.com", "github.com", "stackoverflow.com",
	"cdn.jsdelivr.net", "www.linkedin.com", "slack.com", "news.ycombinator.com",
	"update.vendor-cdn.net", "www.salesforce.com",
}

var proxyCategories = map[string]string{
	"www.google.com":        "search",
	"outlook.office365.com": "business",
	"github.com":            "technology",
	"stackoverflow.com":     "technology",
	"cdn.jsdelivr.net":      "cdn",
	"www.linkedin.com":      "social",
	"slack.com":             "business",
	"news.ycombinator.com":  "news",
	"update.vendor-cdn.net": "software-updates",
	"www.salesforce.com":    "business",
}

func (s *proxySource) emit(ts time.Time, rng *rand.Rand, ref *refdata.Company) *core.Event {
	emp := ref.RandomEmployee(rng)
	wks, _ := ref.Host(emp.Workstation)
	domain := core.Pick(rng, proxyDomains)

	action := "allowed"
	sev := "info"
	if rng.Float64() < 0.02 {
		action = "blocked"
		sev = "warning"
		domain = core.Pick(rng, []string{"tracker.adnet-example.com", "malsite.test", "phish.example.net"})
	}

	ev := core.NewEvent(core.SourceProxy, ts).
		Set("user", emp.Username).
		Set("src_ip", wks.IP).
		Set("domain", domain).
		Set("category", proxyCategory(domain)).
		Set("action", action).
		Set("method", core.Pick(rng, []string{"GET", "GET", "GET", "POST", "CONNECT"})).
		Set("bytes_in", rng.Intn(5_000_000)).
		Set("bytes_out", rng.Intn(200_000))
	ev.Host = "proxy-" + emp.Site + "-01"
	ev.Severity = sev
	ev.Message = fmt.Sprintf("%s %s %s", action, emp.Username, domain)
	return ev
}

func proxyCategory(domain string) string {
	if c, ok := proxyCategories[domain]; ok {
		return c
	}
	return "uncategorized"
}
