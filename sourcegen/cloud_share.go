package sourcegen

import (
	"fmt"
	"math/rand"
	"time"

	"stagehand/core"
	"stagehand/output"
	"stagehand/refdata"
)

// cloudShareSource simulates the company file-sharing service's activity
// log.
type cloudShareSource struct{}

var _ emitter = (*cloudShareSource)(nil)

func (s *cloudShareSource) id() core.SourceID     { return core.SourceCloudShare }
func (s *cloudShareSource) format() output.Format { return output.FormatJSON }

func (s *cloudShareSource) profile() Profile {
	return Profile{PeakRate: 70, Curve: officeCurve, WeekendFactor: 0.15}
}

var shareFolders = []string{
	"engineering/specs", "sales/quotes", "marketing/assets",
	"finance/reports", "ops/runbooks", "shared/templates",
}

func (s *cloudShareSource) emit(ts time.Time, rng *rand.Rand, ref *refdata.Company) *core.Event {
	emp := ref.RandomEmployee(rng)
	wks, _ := ref.Host(emp.Workstation)
	folder := core.Pick(rng, shareFolders)
	action := core.Pick(rng, []string{"download", "download", "upload", "view", "view", "share_link"})

	ev := core.NewEvent(core.SourceCloudShare, ts).
		Set("user", emp.Email).
		Set("action", action).
		Set("object", fmt.Sprintf("%s/doc-%04d.pdf", folder, rng.Intn(4000))).
		Set("client_ip", wks.IP)
	if action == "upload" || action == "download" {
		ev.Set("bytes", int64(rng.Intn(30_000_000)))
	}
	ev.Host = "cloudshare"
	ev.Severity = "info"
	ev.Message = fmt.Sprintf("%s user=%s object=%s", action, emp.Email, ev.Fields["object"])
	return ev
}
