// Package output renders completed event buffers and writes one flat file
// per source. Rendering is a pure function of the event; writing is atomic
// per source (temp file then rename) so a crash mid-write never corrupts a
// previously valid file.
package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"stagehand/core"
)

// Format selects the textual representation for a source's file.
type Format string

const (
	FormatJSON   Format = "json"
	FormatKV     Format = "kv"
	FormatSyslog Format = "syslog"
)

// Render converts one event to its final line, without trailing newline.
func Render(f Format, ev *core.Event) ([]byte, error) {
	switch f {
	case FormatJSON:
		return renderJSON(ev)
	case FormatKV:
		return renderKV(ev), nil
	case FormatSyslog:
		return renderSyslog(ev), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", f)
	}
}

func renderJSON(ev *core.Event) ([]byte, error) {
	return json.Marshal(ev)
}

// renderKV emits `timestamp host key=value ...` with fields in stable order
// so identical runs produce byte-identical files.
func renderKV(ev *core.Event) []byte {
	var b strings.Builder
	b.WriteString(ev.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"))
	b.WriteByte(' ')
	b.WriteString(ev.Host)
	for _, k := range sortedKeys(ev.Fields) {
		fmt.Fprintf(&b, " %s=%q", k, fmt.Sprint(ev.Fields[k]))
	}
	if ev.DemoID != "" {
		fmt.Fprintf(&b, " demo_id=%q", ev.DemoID)
	}
	return []byte(b.String())
}

// renderSyslog emits a classic RFC3164-style line with the structured
// message; the correlation tag rides in a trailing key so downstream field
// extraction still finds it.
func renderSyslog(ev *core.Event) []byte {
	var b strings.Builder
	b.WriteString(ev.Timestamp.UTC().Format("Jan  2 15:04:05"))
	b.WriteByte(' ')
	b.WriteString(ev.Host)
	b.WriteString(": ")
	b.WriteString(ev.Message)
	if ev.DemoID != "" {
		fmt.Fprintf(&b, " demo_id=%s", ev.DemoID)
	}
	return []byte(b.String())
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
