package sourcegen

import (
	"fmt"
	"math/rand"
	"time"

	"stagehand/core"
	"stagehand/output"
	"stagehand/refdata"
)

// dbAuditSource simulates the database audit log on the order and design
// databases.
type dbAuditSource struct{}

var _ emitter = (*dbAuditSource)(nil)

func (s *dbAuditSource) id() core.SourceID     { return core.SourceDBAudit }
func (s *dbAuditSource) format() output.Format { return output.FormatKV }

func (s *dbAuditSource) profile() Profile {
	return Profile{PeakRate: 180, Curve: infraCurve, WeekendFactor: 0.35}
}

var dbTables = map[string][]string{
	"orders":            {"orders", "order_items", "customers", "inventory"},
	"tealstone_designs": {"product_cad_files", "revisions", "bom"},
	"hr":                {"employees", "payroll", "benefits"},
}

func (s *dbAuditSource) emit(ts time.Time, rng *rand.Rand, ref *refdata.Company) *core.Event {
	db := ref.RandomHost(rng, "db")
	dbName := core.Pick(rng, []string{"orders", "orders", "orders", "tealstone_designs", "hr"})
	table := core.Pick(rng, dbTables[dbName])

	user := "app_portal"
	if rng.Float64() < 0.15 {
		user = "svc_" + core.Pick(rng, []string{"sql", "etl", "backup"})
	}

	op := core.Pick(rng, []string{"SELECT", "SELECT", "SELECT", "INSERT", "UPDATE", "DELETE"})
	rows := rng.Intn(500)
	if op == "SELECT" {
		rows = rng.Intn(5000)
	}

	ev := core.NewEvent(core.SourceDBAudit, ts).
		Set("db_user", user).
		Set("database", dbName).
		Set("operation", op).
		Set("object", table).
		Set("rows_returned", rows).
		Set("duration_ms", 1+rng.Intn(400)).
		Set("status", "ok")
	ev.Host = db.Name
	ev.Severity = "info"
	ev.Message = fmt.Sprintf("%s %s.%s rows=%d user=%s", op, dbName, table, rows, user)
	return ev
}
