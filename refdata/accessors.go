package refdata

import (
	"fmt"
	"math/rand"
)

// User looks up one directory entry by username.
func (c *Company) User(username string) (Employee, bool) {
	i, ok := c.byUser[username]
	if !ok {
		return Employee{}, false
	}
	return c.employees[i], true
}

// Employees returns the full directory in build order.
func (c *Company) Employees() []Employee {
	return c.employees
}

// Sites returns every company location.
func (c *Company) Sites() []Site {
	return c.sites
}

// HostsForSite returns every host at a site, servers first.
func (c *Company) HostsForSite(site string) []Host {
	idx := c.bySite[site]
	hosts := make([]Host, 0, len(idx))
	for _, i := range idx {
		hosts = append(hosts, c.hosts[i])
	}
	return hosts
}

// Host looks up one host descriptor by name.
func (c *Company) Host(name string) (Host, bool) {
	i, ok := c.byHost[name]
	if !ok {
		return Host{}, false
	}
	return c.hosts[i], true
}

// IPFor resolves a hostname to its assigned address.
func (c *Company) IPFor(hostname string) (string, bool) {
	h, ok := c.Host(hostname)
	if !ok {
		return "", false
	}
	return h.IP, true
}

// HostsByRole returns every host with the given role across all sites.
func (c *Company) HostsByRole(role string) []Host {
	var out []Host
	for _, h := range c.hosts {
		if h.Role == role {
			out = append(out, h)
		}
	}
	return out
}

// Products returns the catalog.
func (c *Company) Products() []Product {
	return c.products
}

// RandomEmployee draws a non-service directory entry from the given stream.
func (c *Company) RandomEmployee(rng *rand.Rand) Employee {
	for {
		e := c.employees[rng.Intn(len(c.employees))]
		if !e.ServiceAcct {
			return e
		}
	}
}

// RandomHost draws a host, optionally restricted to a role. Falls back to any
// host when the role has no members.
func (c *Company) RandomHost(rng *rand.Rand, role string) Host {
	if role != "" {
		if hosts := c.HostsByRole(role); len(hosts) > 0 {
			return hosts[rng.Intn(len(hosts))]
		}
	}
	return c.hosts[rng.Intn(len(c.hosts))]
}

// RandomProduct draws a catalog entry.
func (c *Company) RandomProduct(rng *rand.Rand) Product {
	return c.products[rng.Intn(len(c.products))]
}

// ExternalIP draws an address from the TEST-NET ranges, standing in for
// arbitrary internet hosts.
func (c *Company) ExternalIP(rng *rand.Rand) string {
	nets := []string{"192.0.2", "198.51.100", "203.0.113"}
	return fmt.Sprintf("%s.%d", nets[rng.Intn(len(nets))], rng.Intn(254)+1)
}
