package sourcegen

import (
	"fmt"
	"math/rand"
	"time"

	"stagehand/core"
	"stagehand/output"
	"stagehand/refdata"
)

// linuxSecureSource simulates sshd and sudo entries from the Linux server
// fleet's secure log.
type linuxSecureSource struct{}

var _ emitter = (*linuxSecureSource)(nil)

func (s *linuxSecureSource) id() core.SourceID     { return core.SourceLinuxSecure }
func (s *linuxSecureSource) format() output.Format { return output.FormatSyslog }

func (s *linuxSecureSource) profile() Profile {
	return Profile{PeakRate: 45, Curve: infraCurve, WeekendFactor: 0.5}
}

func (s *linuxSecureSource) emit(ts time.Time, rng *rand.Rand, ref *refdata.Company) *core.Event {
	host := ref.RandomHost(rng, core.Pick(rng, []string{"web", "db", "file"}))
	emp := ref.RandomEmployee(rng)

	ev := core.NewEvent(core.SourceLinuxSecure, ts).
		Set("program", "sshd").
		Set("user", emp.Username)

	switch r := rng.Float64(); {
	case r < 0.55:
		srcHost, _ := ref.Host(emp.Workstation)
		ev.Set("action", "accepted").
			Set("method", "publickey").
			Set("src_ip", srcHost.IP).
			Set("port", 22)
		ev.Severity = "info"
		ev.Message = fmt.Sprintf("Accepted publickey for %s from %s port %d ssh2", emp.Username, srcHost.IP, 40000+rng.Intn(20000))
	case r < 0.7:
		ev.Set("program", "sudo").
			Set("action", "command").
			Set("command", core.Pick(rng, []string{"/usr/bin/systemctl restart app", "/usr/bin/journalctl", "/usr/bin/apt-get update"}))
		ev.Severity = "info"
		ev.Message = fmt.Sprintf("%s : TTY=pts/0 ; COMMAND=%s", emp.Username, ev.Fields["command"])
	default:
		extIP := ref.ExternalIP(rng)
		ev.Set("action", "failed").
			Set("method", "password").
			Set("user", core.Pick(rng, []string{"root", "admin", "oracle", emp.Username})).
			Set("src_ip", extIP)
		ev.Severity = "warning"
		ev.Message = fmt.Sprintf("Failed password for invalid user %s from %s port %d ssh2", ev.Fields["user"], extIP, 40000+rng.Intn(20000))
	}
	ev.Host = host.Name
	return ev
}
