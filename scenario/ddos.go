package scenario

import (
	"fmt"
	"math/rand"
	"time"

	"stagehand/core"
	"stagehand/refdata"
)

// volumetricDDoS floods the public web tier from a botnet address pool. The
// firewall sees the connection storm, the web tier sees request volume and
// 503s, and the resolver sees amplification lookups. A mitigation phase
// shows the scrubbing service absorbing most of the traffic.
type volumetricDDoS struct {
	base
	phases phases

	botnet  []string
	webHost refdata.Host
	vip     string
}

func newVolumetricDDoS(def Definition, company *refdata.Company, seed int64) Engine {
	rng := core.RNG(seed, "cast", def.Name)

	e := &volumetricDDoS{
		base:    base{def: def, seed: seed},
		webHost: company.RandomHost(rng, "web"),
	}
	e.vip = e.webHost.IP
	for i := 0; i < 48; i++ {
		e.botnet = append(e.botnet, company.ExternalIP(rng))
	}
	e.phases = splitPhases(def.StartDay, def.EndDay, "ramp", "peak", "mitigation")
	return e
}

func (e *volumetricDDoS) Produce(source core.SourceID, day, hour int, win time.Time) []*core.Event {
	if !e.def.ActiveOn(day) || !e.def.Touches(source) {
		return nil
	}
	phase, ok := e.phases.at(day)
	if !ok {
		return nil
	}
	rng := e.rng(source, day, hour)

	switch source {
	case core.SourceASA:
		return e.asaHour(phase, win, rng)
	case core.SourceWebAccess:
		return e.webHour(phase, win, rng)
	case core.SourceDNS:
		return e.dnsHour(phase, win, rng)
	}
	return nil
}

// intensity scales the flood volume per phase.
func (e *volumetricDDoS) intensity(phase Phase, rng *rand.Rand) int {
	switch phase.Name {
	case "ramp":
		return 20 + rng.Intn(60)
	case "peak":
		return 150 + rng.Intn(250)
	default: // mitigation
		return 10 + rng.Intn(20)
	}
}

func (e *volumetricDDoS) asaHour(phase Phase, win time.Time, rng *rand.Rand) []*core.Event {
	n := e.intensity(phase, rng)
	action := "deny"
	msgID := "106023"
	if phase.Name == "ramp" {
		// Early in the ramp the flood still looks like connections.
		action = "built"
		msgID = "302013"
	}
	var out []*core.Event
	for _, ts := range spread(rng, win, n) {
		src := core.Pick(rng, e.botnet)
		ev := e.event(core.SourceASA, ts).
			Set("msg_id", msgID).
			Set("action", action).
			Set("protocol", "TCP").
			Set("src_ip", src).
			Set("src_port", 1024+rng.Intn(60000)).
			Set("dst_ip", e.vip).
			Set("dst_port", 443)
		ev.Host = "asa-hq-01"
		ev.Severity = "warning"
		ev.Message = fmt.Sprintf("%s TCP src outside:%s dst inside:%s/443", action, src, e.vip)
		out = append(out, ev)
	}
	return out
}

func (e *volumetricDDoS) webHour(phase Phase, win time.Time, rng *rand.Rand) []*core.Event {
	n := e.intensity(phase, rng)
	if phase.Name == "mitigation" {
		n = n / 2
	}
	var out []*core.Event
	for _, ts := range spread(rng, win, n) {
		status := 503
		if phase.Name == "ramp" && rng.Float64() < 0.5 {
			status = 200
		}
		ev := e.event(core.SourceWebAccess, ts).
			Set("src_ip", core.Pick(rng, e.botnet)).
			Set("method", "GET").
			Set("uri_path", "/").
			Set("status", status).
			Set("user_agent", "Mozilla/4.0 (compatible; MSIE 6.0)").
			Set("bytes", 100+rng.Intn(300))
		ev.Host = e.webHost.Name
		ev.Severity = "warning"
		ev.Message = fmt.Sprintf("GET / %d", status)
		out = append(out, ev)
	}
	return out
}

func (e *volumetricDDoS) dnsHour(phase Phase, win time.Time, rng *rand.Rand) []*core.Event {
	n := e.intensity(phase, rng) / 3
	var out []*core.Event
	for _, ts := range spread(rng, win, n) {
		ev := e.event(core.SourceDNS, ts).
			Set("src_ip", core.Pick(rng, e.botnet)).
			Set("query", "www.tealstone-robotics.com").
			Set("qtype", "ANY").
			Set("rcode", "NOERROR").
			Set("answer_size", 2000+rng.Intn(2000))
		ev.Host = "dns-hq-01"
		ev.Severity = "info"
		ev.Message = "query ANY www.tealstone-robotics.com"
		out = append(out, ev)
	}
	return out
}
