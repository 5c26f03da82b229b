package sourcegen

import (
	"fmt"
	"math/rand"
	"time"

	"stagehand/core"
	"stagehand/output"
	"stagehand/refdata"
)

// asaSource simulates a perimeter firewall logging connection setup and
// teardown in Cisco ASA style.
type asaSource struct{}

var _ emitter = (*asaSource)(nil)

func (s *asaSource) id() core.SourceID     { return core.SourceASA }
func (s *asaSource) format() output.Format { return output.FormatSyslog }

func (s *asaSource) profile() Profile {
	return Profile{PeakRate: 220, Curve: infraCurve, WeekendFactor: 0.6}
}

var asaPorts = []int{80, 443, 443, 443, 53, 22, 25, 8080}

func (s *asaSource) emit(ts time.Time, rng *rand.Rand, ref *refdata.Company) *core.Event {
	wks := ref.RandomHost(rng, "workstation")
	dstIP := ref.ExternalIP(rng)
	dstPort := core.Pick(rng, asaPorts)
	bytes := rng.Intn(2_000_000)

	msgID, action := "302013", "Built"
	switch r := rng.Float64(); {
	case r < 0.48:
		msgID, action = "302014", "Teardown"
	case r < 0.52:
		msgID, action = "106023", "Deny"
		bytes = 0
	}

	ev := core.NewEvent(core.SourceASA, ts).
		Set("msg_id", msgID).
		Set("action", action).
		Set("protocol", "TCP").
		Set("src_ip", wks.IP).
		Set("src_port", 1024+rng.Intn(60000)).
		Set("dst_ip", dstIP).
		Set("dst_port", dstPort)
	if action == "Teardown" {
		ev.Set("bytes", bytes)
	}
	ev.Host = "asa-" + wks.Site + "-01"
	ev.Severity = "info"
	ev.Message = fmt.Sprintf("%s TCP connection for inside:%s to outside:%s/%d", action, wks.IP, dstIP, dstPort)
	return ev
}
