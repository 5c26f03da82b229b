package scenario

import (
	"stagehand/core"
)

// BuiltinRegistry returns a registry populated with the shipped scenarios.
// Day windows assume the default two-week simulation and can be moved per
// run with a definitions override file.
func BuiltinRegistry() (*Registry, error) {
	r := NewRegistry()

	builtins := []struct {
		def     Definition
		factory Factory
	}{
		{
			def: Definition{
				Name:           "insider-exfil",
				Title:          "Insider data theft and exfiltration",
				Category:       CategoryAttack,
				Sources:        []core.SourceID{core.SourceBadge, core.SourceWinAuth, core.SourceDBAudit, core.SourceCloudShare, core.SourceASA},
				CorrelationTag: "demo-insider-exfil",
				StartDay:       8,
				EndDay:         14,
				Enabled:        true,
			},
			factory: newInsiderExfil,
		},
		{
			def: Definition{
				Name:           "credential-stuffing",
				Title:          "Credential stuffing against portal and VPN",
				Category:       CategoryAttack,
				Sources:        []core.SourceID{core.SourceWebAccess, core.SourceVPN, core.SourceWinAuth},
				CorrelationTag: "demo-cred-stuffing",
				StartDay:       3,
				EndDay:         6,
				Enabled:        true,
			},
			factory: newCredentialStuffing,
		},
		{
			def: Definition{
				Name:           "volumetric-ddos",
				Title:          "Volumetric DDoS against the web tier",
				Category:       CategoryNetwork,
				Sources:        []core.SourceID{core.SourceASA, core.SourceWebAccess, core.SourceDNS},
				CorrelationTag: "demo-ddos",
				StartDay:       10,
				EndDay:         11,
				Enabled:        true,
			},
			factory: newVolumetricDDoS,
		},
		{
			def: Definition{
				Name:           "failing-disk",
				Title:          "Database server disk failure and failover",
				Category:       CategoryOps,
				Sources:        []core.SourceID{core.SourceEndpoint, core.SourceDBAudit},
				CorrelationTag: "demo-failing-disk",
				StartDay:       4,
				EndDay:         9,
				Enabled:        true,
			},
			factory: newFailingDisk,
		},
	}

	for _, b := range builtins {
		if err := r.Register(b.def, b.factory); err != nil {
			return nil, err
		}
	}
	return r, nil
}
