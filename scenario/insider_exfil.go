package scenario

import (
	"fmt"
	"math/rand"
	"time"

	"stagehand/core"
	"stagehand/refdata"
)

// insiderExfil plays out a multi-day insider data theft: after-hours
// reconnaissance, theft of a service account credential, privilege
// escalation, staging of database exports, and finally bulk exfiltration to
// an external drop host. The affected sources tell the story from five
// unrelated vantage points tied together by the correlation tag.
type insiderExfil struct {
	base
	phases phases

	insider  refdata.Employee
	wks      refdata.Host
	svcAcct  refdata.Employee
	dbHost   refdata.Host
	fileHost refdata.Host
	dropIP   string
}

func newInsiderExfil(def Definition, company *refdata.Company, seed int64) Engine {
	// Cast selection uses its own stream keyed only by seed and scenario
	// name, so every hour queried sees the same actors.
	rng := core.RNG(seed, "cast", def.Name)

	e := &insiderExfil{
		base:     base{def: def, seed: seed},
		insider:  company.RandomEmployee(rng),
		svcAcct:  mustUser(company, "svc_sql"),
		dbHost:   company.RandomHost(rng, "db"),
		fileHost: company.RandomHost(rng, "file"),
		dropIP:   company.ExternalIP(rng),
	}
	e.wks, _ = company.Host(e.insider.Workstation)
	e.phases = splitPhases(def.StartDay, def.EndDay,
		"recon", "credential_theft", "escalation", "staging", "exfiltration")
	return e
}

func mustUser(company *refdata.Company, username string) refdata.Employee {
	if u, ok := company.User(username); ok {
		return u
	}
	return refdata.Employee{Username: username, ServiceAcct: true}
}

func (e *insiderExfil) Produce(source core.SourceID, day, hour int, win time.Time) []*core.Event {
	if !e.def.ActiveOn(day) || !e.def.Touches(source) {
		return nil
	}
	phase, ok := e.phases.at(day)
	if !ok {
		return nil
	}
	rng := e.rng(source, day, hour)

	switch source {
	case core.SourceBadge:
		return e.badgeHour(phase, hour, win, rng)
	case core.SourceWinAuth:
		return e.winauthHour(phase, hour, win, rng)
	case core.SourceDBAudit:
		return e.dbHour(phase, hour, win, rng)
	case core.SourceCloudShare:
		return e.cloudHour(phase, hour, win, rng)
	case core.SourceASA:
		return e.asaHour(phase, hour, win, rng)
	}
	return nil
}

// badgeHour emits after-hours facility entries once staging begins. During
// business hours the insider's badge activity is indistinguishable from
// baseline, so nothing is injected.
func (e *insiderExfil) badgeHour(phase Phase, hour int, win time.Time, rng *rand.Rand) []*core.Event {
	if phase.Name == "recon" || !offHours(hour) {
		return nil
	}
	if rng.Float64() > 0.35 {
		return nil
	}
	ts := spread(rng, win, 1)[0]
	ev := e.event(core.SourceBadge, ts).
		Set("badge_id", e.insider.BadgeID).
		Set("user", e.insider.Username).
		Set("door", "server-room-"+e.insider.Site).
		Set("site", e.insider.Site).
		Set("result", "granted")
	ev.Host = "badge-ctrl-" + e.insider.Site
	ev.Message = fmt.Sprintf("access granted badge=%s door=server-room-%s", e.insider.BadgeID, e.insider.Site)
	return []*core.Event{ev}
}

func (e *insiderExfil) winauthHour(phase Phase, hour int, win time.Time, rng *rand.Rand) []*core.Event {
	var out []*core.Event
	switch phase.Name {
	case "credential_theft":
		// Password guessing against the SQL service account from the
		// insider's workstation, a handful of failures per off-hour.
		if !offHours(hour) {
			return nil
		}
		n := 2 + rng.Intn(4)
		for _, ts := range spread(rng, win, n) {
			ev := e.event(core.SourceWinAuth, ts).
				Set("event_code", 4625).
				Set("user", e.svcAcct.Username).
				Set("src_host", e.wks.Name).
				Set("src_ip", e.wks.IP).
				Set("logon_type", 3).
				Set("status", "0xC000006D")
			ev.Host = e.dbHost.Name
			ev.Severity = "warning"
			ev.Message = fmt.Sprintf("An account failed to log on: %s from %s", e.svcAcct.Username, e.wks.Name)
			out = append(out, ev)
		}
	case "escalation", "staging", "exfiltration":
		// Stolen credential in use: interactive service-account logons with
		// special privileges, biased to off-hours.
		p := 0.2
		if offHours(hour) {
			p = 0.7
		}
		if rng.Float64() > p {
			return nil
		}
		for _, ts := range spread(rng, win, 1+rng.Intn(2)) {
			ev := e.event(core.SourceWinAuth, ts).
				Set("event_code", 4672).
				Set("user", e.svcAcct.Username).
				Set("src_host", e.wks.Name).
				Set("src_ip", e.wks.IP).
				Set("privileges", "SeDebugPrivilege,SeBackupPrivilege")
			ev.Host = e.dbHost.Name
			ev.Severity = "high"
			ev.Message = fmt.Sprintf("Special privileges assigned to new logon: %s", e.svcAcct.Username)
			out = append(out, ev)
		}
	}
	return out
}

func (e *insiderExfil) dbHour(phase Phase, hour int, win time.Time, rng *rand.Rand) []*core.Event {
	if phase.Name == "recon" {
		return e.dbReconHour(hour, win, rng)
	}
	if phase.Name != "staging" && phase.Name != "exfiltration" {
		return nil
	}
	p := 0.25
	if offHours(hour) {
		p = 0.8
	}
	if rng.Float64() > p {
		return nil
	}
	var out []*core.Event
	for _, ts := range spread(rng, win, 1+rng.Intn(3)) {
		rows := 50000 + rng.Intn(450000)
		ev := e.event(core.SourceDBAudit, ts).
			Set("db_user", e.svcAcct.Username).
			Set("client_host", e.wks.Name).
			Set("client_ip", e.wks.IP).
			Set("database", "tealstone_designs").
			Set("operation", "SELECT").
			Set("object", "product_cad_files").
			Set("rows_returned", rows).
			Set("duration_ms", 800+rng.Intn(9000))
		ev.Host = e.dbHost.Name
		ev.Severity = "info"
		ev.Message = fmt.Sprintf("SELECT product_cad_files rows=%d user=%s", rows, e.svcAcct.Username)
		out = append(out, ev)
	}
	return out
}

// dbReconHour is the story's opening beat: the insider enumerating the design
// database schema from their own workstation, two evening sessions per recon
// day.
func (e *insiderExfil) dbReconHour(hour int, win time.Time, rng *rand.Rand) []*core.Event {
	if hour != 20 && hour != 22 {
		return nil
	}
	var out []*core.Event
	for _, ts := range spread(rng, win, 1+rng.Intn(2)) {
		ev := e.event(core.SourceDBAudit, ts).
			Set("db_user", e.insider.Username).
			Set("client_host", e.wks.Name).
			Set("client_ip", e.wks.IP).
			Set("database", "tealstone_designs").
			Set("operation", "SELECT").
			Set("object", "information_schema.tables").
			Set("rows_returned", 40+rng.Intn(200)).
			Set("duration_ms", 5+rng.Intn(60))
		ev.Host = e.dbHost.Name
		ev.Severity = "info"
		ev.Message = fmt.Sprintf("SELECT information_schema.tables user=%s", e.insider.Username)
		out = append(out, ev)
	}
	return out
}

func (e *insiderExfil) cloudHour(phase Phase, hour int, win time.Time, rng *rand.Rand) []*core.Event {
	if phase.Name != "exfiltration" || !offHours(hour) {
		return nil
	}
	var out []*core.Event
	for _, ts := range spread(rng, win, 1+rng.Intn(4)) {
		size := int64(50+rng.Intn(700)) * 1024 * 1024
		ev := e.event(core.SourceCloudShare, ts).
			Set("user", e.insider.Email).
			Set("action", "upload").
			Set("object", fmt.Sprintf("archive/designs-part%02d.zip", rng.Intn(40))).
			Set("target", "personal-share").
			Set("bytes", size).
			Set("client_ip", e.wks.IP)
		ev.Host = "cloudshare"
		ev.Severity = "info"
		ev.Message = fmt.Sprintf("upload user=%s bytes=%d target=personal-share", e.insider.Email, size)
		out = append(out, ev)
	}
	return out
}

func (e *insiderExfil) asaHour(phase Phase, hour int, win time.Time, rng *rand.Rand) []*core.Event {
	if phase.Name != "exfiltration" || !offHours(hour) {
		return nil
	}
	var out []*core.Event
	for _, ts := range spread(rng, win, 2+rng.Intn(5)) {
		sent := 10_000_000 + rng.Intn(900_000_000)
		ev := e.event(core.SourceASA, ts).
			Set("msg_id", "302014").
			Set("action", "teardown").
			Set("protocol", "TCP").
			Set("src_ip", e.wks.IP).
			Set("src_port", 1024+rng.Intn(60000)).
			Set("dst_ip", e.dropIP).
			Set("dst_port", 443).
			Set("bytes", sent)
		ev.Host = "asa-" + e.insider.Site + "-01"
		ev.Severity = "info"
		ev.Message = fmt.Sprintf("Teardown TCP connection for outside:%s/443 to inside:%s bytes %d", e.dropIP, e.wks.IP, sent)
		out = append(out, ev)
	}
	return out
}
