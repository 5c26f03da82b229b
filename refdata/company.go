// Package refdata holds the immutable reference model for the fictitious
// company Tealstone Robotics: employees, sites, hosts, IP assignments, and
// the product catalog. It is built once per run from the run seed and is
// read-only afterwards, so all accessors are safe for concurrent use.
package refdata

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// Site is one company location with its own address plan.
type Site struct {
	Name   string
	City   string
	Prefix string // first two octets of the site's 10.x network
}

// Employee is one directory entry.
type Employee struct {
	Username    string
	FirstName   string
	LastName    string
	Email       string
	Title       string
	Department  string
	Site        string
	Workstation string
	BadgeID     string
	ServiceAcct bool
}

// Host is one server or workstation with its assigned address.
type Host struct {
	Name string
	Site string
	Role string // dc, web, db, file, mail, proxy, workstation
	IP   string
}

// Product is one catalog entry sold on the company web store.
type Product struct {
	SKU   string
	Name  string
	Price float64
}

// Company is the assembled reference model.
type Company struct {
	Name   string
	Domain string

	sites     []Site
	employees []Employee
	byUser    map[string]int
	hosts     []Host
	byHost    map[string]int
	bySite    map[string][]int
	products  []Product
}

const (
	employeeCount = 180
	serviceAccts  = 8
)

var departments = []string{
	"Engineering", "Sales", "Finance", "Operations",
	"Support", "Marketing", "IT", "Executive",
}

// NewCompany builds the reference model. The same seed always yields the same
// directory, hosts, and catalog.
func NewCompany(seed int64) *Company {
	f := gofakeit.New(seed)

	c := &Company{
		Name:   "Tealstone Robotics",
		Domain: "tealstone-robotics.com",
		sites: []Site{
			{Name: "hq", City: "Portland", Prefix: "10.1"},
			{Name: "austin", City: "Austin", Prefix: "10.2"},
			{Name: "berlin", City: "Berlin", Prefix: "10.3"},
		},
		byUser: make(map[string]int),
		byHost: make(map[string]int),
		bySite: make(map[string][]int),
	}

	c.buildEmployees(f)
	c.buildHosts()
	c.buildProducts(f)
	return c
}

func (c *Company) buildEmployees(f *gofakeit.Faker) {
	seen := make(map[string]bool)
	for i := 0; i < employeeCount; i++ {
		first := f.FirstName()
		last := f.LastName()
		user := strings.ToLower(first[:1] + last)
		if seen[user] {
			user = fmt.Sprintf("%s%d", user, i)
		}
		seen[user] = true

		site := c.sites[i%len(c.sites)]
		emp := Employee{
			Username:    user,
			FirstName:   first,
			LastName:    last,
			Email:       fmt.Sprintf("%s@%s", user, c.Domain),
			Title:       f.JobTitle(),
			Department:  departments[f.Number(0, len(departments)-1)],
			Site:        site.Name,
			Workstation: fmt.Sprintf("wks-%s-%03d", site.Name, i),
			BadgeID:     fmt.Sprintf("B%05d", 10000+i),
		}
		c.byUser[emp.Username] = len(c.employees)
		c.employees = append(c.employees, emp)
	}
	svcNames := []string{"backup", "sql", "deploy", "scan", "monitor", "ldap", "web", "etl"}
	for i := 0; i < serviceAccts && i < len(svcNames); i++ {
		user := "svc_" + svcNames[i]
		emp := Employee{
			Username:    user,
			Email:       fmt.Sprintf("%s@%s", user, c.Domain),
			Department:  "IT",
			Site:        "hq",
			ServiceAcct: true,
		}
		c.byUser[user] = len(c.employees)
		c.employees = append(c.employees, emp)
	}
}

func (c *Company) buildHosts() {
	serverRoles := []string{"dc", "web", "db", "file", "mail", "proxy"}
	for _, site := range c.sites {
		for r, role := range serverRoles {
			for n := 1; n <= 2; n++ {
				h := Host{
					Name: fmt.Sprintf("%s-%s-%02d", role, site.Name, n),
					Site: site.Name,
					Role: role,
					IP:   fmt.Sprintf("%s.%d.%d", site.Prefix, 10+r, n),
				}
				c.addHost(h)
			}
		}
	}
	// One workstation host per employee, addressed in the site's user range.
	perSite := make(map[string]int)
	for _, emp := range c.employees {
		if emp.ServiceAcct {
			continue
		}
		site := c.site(emp.Site)
		n := perSite[site.Name]
		perSite[site.Name] = n + 1
		c.addHost(Host{
			Name: emp.Workstation,
			Site: site.Name,
			Role: "workstation",
			IP:   fmt.Sprintf("%s.%d.%d", site.Prefix, 100+n/250, 1+n%250),
		})
	}
}

func (c *Company) addHost(h Host) {
	c.byHost[h.Name] = len(c.hosts)
	c.bySite[h.Site] = append(c.bySite[h.Site], len(c.hosts))
	c.hosts = append(c.hosts, h)
}

func (c *Company) buildProducts(f *gofakeit.Faker) {
	lines := []string{"PicoArm", "LiftMate", "TraySort", "WeldPro", "InspectorEye", "DockRunner"}
	for i, line := range lines {
		for v := 1; v <= 3; v++ {
			c.products = append(c.products, Product{
				SKU:   fmt.Sprintf("TR-%s%d", strings.ToUpper(line[:2]), 100*i+v),
				Name:  fmt.Sprintf("%s %d00", line, v),
				Price: float64(f.Number(900, 24000)),
			})
		}
	}
}

func (c *Company) site(name string) Site {
	for _, s := range c.sites {
		if s.Name == name {
			return s
		}
	}
	return c.sites[0]
}
