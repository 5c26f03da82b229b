package core

import (
	"fmt"
	"sort"
	"strings"
)

// SourceID identifies one simulated log-producing system.
type SourceID string

// Known source identifiers. Each corresponds to one registered generator and
// one destination file.
const (
	SourceASA         SourceID = "asa"
	SourceVPN         SourceID = "vpn"
	SourceWinAuth     SourceID = "winauth"
	SourceLinuxSecure SourceID = "linux_secure"
	SourceWebAccess   SourceID = "web_access"
	SourceProxy       SourceID = "proxy"
	SourceDNS         SourceID = "dns"
	SourceEmail       SourceID = "email"
	SourceBadge       SourceID = "badge"
	SourceDBAudit     SourceID = "db_audit"
	SourceCloudShare  SourceID = "cloud_share"
	SourceEndpoint    SourceID = "endpoint"
)

// AllSources returns every known source id in stable (sorted) order.
func AllSources() []SourceID {
	ids := []SourceID{
		SourceASA, SourceVPN, SourceWinAuth, SourceLinuxSecure,
		SourceWebAccess, SourceProxy, SourceDNS, SourceEmail,
		SourceBadge, SourceDBAudit, SourceCloudShare, SourceEndpoint,
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ValidSource reports whether id names a known source.
func ValidSource(id SourceID) bool {
	for _, s := range AllSources() {
		if s == id {
			return true
		}
	}
	return false
}

// ParseSourceSet resolves a list of requested source names into a set of
// source ids. The single entry "all" selects every known source. Unknown
// names are rejected so a typo cannot silently shrink a run.
func ParseSourceSet(names []string) (map[SourceID]bool, error) {
	set := make(map[SourceID]bool)
	for _, name := range names {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		if name == "all" {
			for _, id := range AllSources() {
				set[id] = true
			}
			continue
		}
		id := SourceID(name)
		if !ValidSource(id) {
			return nil, fmt.Errorf("unknown source %q", name)
		}
		set[id] = true
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("no sources selected")
	}
	return set, nil
}

// SortedSources returns the members of a source set in stable order.
func SortedSources(set map[SourceID]bool) []SourceID {
	ids := make([]SourceID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
