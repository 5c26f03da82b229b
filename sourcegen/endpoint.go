package sourcegen

import (
	"fmt"
	"math/rand"
	"time"

	"stagehand/core"
	"stagehand/output"
	"stagehand/refdata"
)

// endpointSource simulates endpoint telemetry from the agent fleet: process
// starts and the occasional hardware or sensor report.
type endpointSource struct{}

var _ emitter = (*endpointSource)(nil)

func (s *endpointSource) id() core.SourceID     { return core.SourceEndpoint }
func (s *endpointSource) format() output.Format { return output.FormatJSON }

func (s *endpointSource) profile() Profile {
	return Profile{PeakRate: 280, Curve: officeCurve, WeekendFactor: 0.25}
}

var endpointProcs = []struct {
	name   string
	parent string
}{
	{"chrome.exe", "explorer.exe"},
	{"outlook.exe", "explorer.exe"},
	{"excel.exe", "explorer.exe"},
	{"teams.exe", "explorer.exe"},
	{"svchost.exe", "services.exe"},
	{"powershell.exe", "explorer.exe"},
	{"code.exe", "explorer.exe"},
	{"slack.exe", "explorer.exe"},
}

func (s *endpointSource) emit(ts time.Time, rng *rand.Rand, ref *refdata.Company) *core.Event {
	emp := ref.RandomEmployee(rng)
	proc := core.Pick(rng, endpointProcs)

	ev := core.NewEvent(core.SourceEndpoint, ts).
		Set("event_type", "process_start").
		Set("user", emp.Username).
		Set("process_name", proc.name).
		Set("parent_process", proc.parent).
		Set("process_id", 1000+rng.Intn(60000))
	ev.Host = emp.Workstation
	ev.Severity = "info"
	ev.Message = fmt.Sprintf("process start %s user=%s", proc.name, emp.Username)
	return ev
}
