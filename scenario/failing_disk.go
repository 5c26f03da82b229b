package scenario

import (
	"fmt"
	"math/rand"
	"time"

	"stagehand/core"
	"stagehand/refdata"
)

// failingDisk is an operational incident: a database server's disk degrades
// over several days until an outage forces a failover, then the array
// resyncs. Endpoint telemetry reports the I/O errors while the database
// audit log shows the symptoms users feel: slow queries, aborted
// transactions, and finally the failover burst.
type failingDisk struct {
	base
	phases phases

	dbHost  refdata.Host
	standby refdata.Host
	device  string
}

func newFailingDisk(def Definition, company *refdata.Company, seed int64) Engine {
	rng := core.RNG(seed, "cast", def.Name)

	dbHosts := company.HostsByRole("db")
	e := &failingDisk{
		base:   base{def: def, seed: seed},
		device: fmt.Sprintf("/dev/sd%c", 'b'+rune(rng.Intn(3))),
	}
	e.dbHost = dbHosts[rng.Intn(len(dbHosts))]
	for _, h := range dbHosts {
		if h.Name != e.dbHost.Name && h.Site == e.dbHost.Site {
			e.standby = h
			break
		}
	}
	e.phases = splitPhases(def.StartDay, def.EndDay, "intermittent", "degraded", "outage", "recovery")
	return e
}

func (e *failingDisk) Produce(source core.SourceID, day, hour int, win time.Time) []*core.Event {
	if !e.def.ActiveOn(day) || !e.def.Touches(source) {
		return nil
	}
	phase, ok := e.phases.at(day)
	if !ok {
		return nil
	}
	rng := e.rng(source, day, hour)

	switch source {
	case core.SourceEndpoint:
		return e.endpointHour(phase, win, rng)
	case core.SourceDBAudit:
		return e.dbHour(phase, win, rng)
	}
	return nil
}

func (e *failingDisk) endpointHour(phase Phase, win time.Time, rng *rand.Rand) []*core.Event {
	var n int
	switch phase.Name {
	case "intermittent":
		n = rng.Intn(2)
	case "degraded":
		n = 2 + rng.Intn(5)
	case "outage":
		n = 10 + rng.Intn(15)
	case "recovery":
		n = rng.Intn(3)
	}
	var out []*core.Event
	for _, ts := range spread(rng, win, n) {
		kind := "io_error"
		detail := fmt.Sprintf("I/O error, dev %s, sector %d", e.device, rng.Intn(1<<30))
		sev := "warning"
		if phase.Name == "outage" {
			kind = "device_offline"
			detail = fmt.Sprintf("%s: rejecting I/O to offline device", e.device)
			sev = "critical"
		}
		if phase.Name == "recovery" {
			kind = "raid_resync"
			detail = fmt.Sprintf("md0: resync in progress (%d%%)", rng.Intn(100))
			sev = "info"
		}
		ev := e.event(core.SourceEndpoint, ts).
			Set("event_type", kind).
			Set("device", e.device).
			Set("detail", detail)
		ev.Host = e.dbHost.Name
		ev.Severity = sev
		ev.Message = detail
		out = append(out, ev)
	}
	return out
}

func (e *failingDisk) dbHour(phase Phase, win time.Time, rng *rand.Rand) []*core.Event {
	var out []*core.Event
	switch phase.Name {
	case "degraded":
		for _, ts := range spread(rng, win, 1+rng.Intn(4)) {
			dur := 5000 + rng.Intn(25000)
			ev := e.event(core.SourceDBAudit, ts).
				Set("db_user", "app_portal").
				Set("database", "orders").
				Set("operation", "SELECT").
				Set("duration_ms", dur).
				Set("status", "slow_query")
			ev.Host = e.dbHost.Name
			ev.Severity = "warning"
			ev.Message = fmt.Sprintf("slow query duration_ms=%d database=orders", dur)
			out = append(out, ev)
		}
	case "outage":
		for _, ts := range spread(rng, win, 5+rng.Intn(10)) {
			ev := e.event(core.SourceDBAudit, ts).
				Set("db_user", "app_portal").
				Set("database", "orders").
				Set("operation", "COMMIT").
				Set("status", "aborted").
				Set("error", "disk I/O error")
			ev.Host = e.dbHost.Name
			ev.Severity = "critical"
			ev.Message = "transaction aborted: disk I/O error"
			out = append(out, ev)
		}
		if e.standby.Name != "" && rng.Float64() < 0.2 {
			ts := spread(rng, win, 1)[0]
			ev := e.event(core.SourceDBAudit, ts).
				Set("operation", "FAILOVER").
				Set("primary", e.dbHost.Name).
				Set("standby", e.standby.Name).
				Set("status", "promoted")
			ev.Host = e.standby.Name
			ev.Severity = "high"
			ev.Message = fmt.Sprintf("standby %s promoted to primary", e.standby.Name)
			out = append(out, ev)
		}
	case "recovery":
		if rng.Float64() < 0.3 {
			ts := spread(rng, win, 1)[0]
			ev := e.event(core.SourceDBAudit, ts).
				Set("operation", "REPLICATION").
				Set("status", "catchup").
				Set("lag_seconds", rng.Intn(600))
			ev.Host = e.dbHost.Name
			ev.Severity = "info"
			ev.Message = "replication catchup in progress"
			out = append(out, ev)
		}
	}
	return out
}
