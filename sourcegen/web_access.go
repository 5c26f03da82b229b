package sourcegen

import (
	"fmt"
	"math/rand"
	"time"

	"stagehand/core"
	"stagehand/output"
	"stagehand/refdata"
)

// webAccessSource simulates the public web store's access log, including
// product browsing and checkout traffic against the catalog.
type webAccessSource struct{}

var _ emitter = (*webAccessSource)(nil)

func (s *webAccessSource) id() core.SourceID     { return core.SourceWebAccess }
func (s *webAccessSource) format() output.Format { return output.FormatJSON }

func (s *webAccessSource) profile() Profile {
	return Profile{PeakRate: 400, Curve: publicCurve, WeekendFactor: 0.85}
}

var webAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15",
}

func (s *webAccessSource) emit(ts time.Time, rng *rand.Rand, ref *refdata.Company) *core.Event {
	web := ref.RandomHost(rng, "web")
	srcIP := ref.ExternalIP(rng)

	uri := "/"
	status := 200
	switch r := rng.Float64(); {
	case r < 0.45:
		uri = fmt.Sprintf("/product/%s", ref.RandomProduct(rng).SKU)
	case r < 0.6:
		uri = "/catalog"
	case r < 0.68:
		uri = "/cart/add"
	case r < 0.73:
		uri = "/checkout"
	case r < 0.78:
		uri = "/account/login"
	case r < 0.82:
		uri, status = fmt.Sprintf("/product/TR-XX%d", rng.Intn(900)), 404
	}

	method := "GET"
	if uri == "/cart/add" || uri == "/checkout" || uri == "/account/login" {
		method = "POST"
	}

	ev := core.NewEvent(core.SourceWebAccess, ts).
		Set("src_ip", srcIP).
		Set("method", method).
		Set("uri_path", uri).
		Set("status", status).
		Set("user_agent", core.Pick(rng, webAgents)).
		Set("bytes", 300+rng.Intn(40000)).
		Set("response_time_ms", 10+rng.Intn(800))
	ev.Host = web.Name
	ev.Severity = "info"
	ev.Message = fmt.Sprintf("%s %s %s %d", srcIP, method, uri, status)
	return ev
}
