package scenario

import (
	"fmt"
	"math/rand"
	"time"

	"stagehand/core"
	"stagehand/refdata"
)

// credentialStuffing replays a leaked-credential attack against the public
// web portal and the VPN concentrator: a quiet probing phase, a noisy
// stuffing peak, then a takeover phase where one account that reused its
// password starts authenticating successfully from attacker infrastructure.
type credentialStuffing struct {
	base
	phases phases

	attackerIPs []string
	targets     []refdata.Employee
	victim      refdata.Employee
	webHost     refdata.Host
}

func newCredentialStuffing(def Definition, company *refdata.Company, seed int64) Engine {
	rng := core.RNG(seed, "cast", def.Name)

	e := &credentialStuffing{
		base:    base{def: def, seed: seed},
		webHost: company.RandomHost(rng, "web"),
	}
	for i := 0; i < 6; i++ {
		e.attackerIPs = append(e.attackerIPs, company.ExternalIP(rng))
	}
	for i := 0; i < 12; i++ {
		e.targets = append(e.targets, company.RandomEmployee(rng))
	}
	e.victim = e.targets[0]
	e.phases = splitPhases(def.StartDay, def.EndDay, "probing", "stuffing", "takeover")
	return e
}

func (e *credentialStuffing) Produce(source core.SourceID, day, hour int, win time.Time) []*core.Event {
	if !e.def.ActiveOn(day) || !e.def.Touches(source) {
		return nil
	}
	phase, ok := e.phases.at(day)
	if !ok {
		return nil
	}
	rng := e.rng(source, day, hour)

	switch source {
	case core.SourceWebAccess:
		return e.webHour(phase, win, rng)
	case core.SourceVPN:
		return e.vpnHour(phase, win, rng)
	case core.SourceWinAuth:
		return e.winauthHour(phase, win, rng)
	}
	return nil
}

// attempts returns how many login attempts this hour sees for a phase.
func (e *credentialStuffing) attempts(phase Phase, rng *rand.Rand) int {
	switch phase.Name {
	case "probing":
		return rng.Intn(4)
	case "stuffing":
		return 30 + rng.Intn(60)
	default: // takeover: the noise dies down, a trickle remains
		return rng.Intn(6)
	}
}

func (e *credentialStuffing) webHour(phase Phase, win time.Time, rng *rand.Rand) []*core.Event {
	n := e.attempts(phase, rng)
	var out []*core.Event
	for _, ts := range spread(rng, win, n) {
		ip := core.Pick(rng, e.attackerIPs)
		target := core.Pick(rng, e.targets)
		status := 401
		if phase.Name == "takeover" && target.Username == e.victim.Username && rng.Float64() < 0.6 {
			status = 200
		}
		ev := e.event(core.SourceWebAccess, ts).
			Set("src_ip", ip).
			Set("method", "POST").
			Set("uri_path", "/account/login").
			Set("status", status).
			Set("user", target.Username).
			Set("user_agent", "python-requests/2.31.0").
			Set("bytes", 200+rng.Intn(600))
		ev.Host = e.webHost.Name
		ev.Severity = "info"
		ev.Message = fmt.Sprintf("%s POST /account/login %d", ip, status)
		out = append(out, ev)
	}
	return out
}

func (e *credentialStuffing) vpnHour(phase Phase, win time.Time, rng *rand.Rand) []*core.Event {
	// The VPN concentrator only sees the stuffing list once the web portal
	// phase has validated credentials, and the volume is far lower.
	n := 0
	switch phase.Name {
	case "stuffing":
		n = rng.Intn(5)
	case "takeover":
		n = 1 + rng.Intn(2)
	}
	var out []*core.Event
	for _, ts := range spread(rng, win, n) {
		ip := core.Pick(rng, e.attackerIPs)
		target := core.Pick(rng, e.targets)
		result := "failure"
		reason := "invalid-credentials"
		if phase.Name == "takeover" && rng.Float64() < 0.5 {
			target = e.victim
			result = "success"
			reason = ""
		}
		ev := e.event(core.SourceVPN, ts).
			Set("src_ip", ip).
			Set("user", target.Username).
			Set("result", result).
			Set("auth_method", "password")
		if reason != "" {
			ev.Set("reason", reason)
		}
		ev.Host = "vpn-hq-01"
		ev.Severity = "warning"
		ev.Message = fmt.Sprintf("vpn auth %s user=%s from %s", result, target.Username, ip)
		out = append(out, ev)
	}
	return out
}

func (e *credentialStuffing) winauthHour(phase Phase, win time.Time, rng *rand.Rand) []*core.Event {
	// Once the attacker holds VPN access, domain logons for the victim start
	// appearing from the VPN client pool.
	if phase.Name != "takeover" || rng.Float64() > 0.5 {
		return nil
	}
	var out []*core.Event
	for _, ts := range spread(rng, win, 1+rng.Intn(2)) {
		ev := e.event(core.SourceWinAuth, ts).
			Set("event_code", 4624).
			Set("user", e.victim.Username).
			Set("src_ip", fmt.Sprintf("10.1.200.%d", 10+rng.Intn(40))).
			Set("logon_type", 3).
			Set("auth_package", "NTLM")
		ev.Host = "dc-hq-01"
		ev.Severity = "info"
		ev.Message = fmt.Sprintf("An account was successfully logged on: %s", e.victim.Username)
		out = append(out, ev)
	}
	return out
}
