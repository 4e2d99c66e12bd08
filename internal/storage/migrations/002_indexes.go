package migrations

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var indexes = []struct {
	name    string
	table   string
	columns string
}{
	{"idx_introductions_partner", "introductions", "partner_id, position"},
	{"idx_partner_events_partner", "partner_events", "partner_id, position"},
	{"idx_partner_events_global_event", "partner_events", "global_event_id"},
	{"idx_publications_partner", "publications", "partner_id, position"},
	{"idx_quarterly_reports_partner", "quarterly_reports", "partner_id, position"},
	{"idx_monthly_check_ins_partner", "monthly_check_ins", "partner_id, position"},
	{"idx_partners_created_at", "partners", "created_at"},
	{"idx_global_events_created_at", "global_events", "created_at"},
}

// migration002Up creates lookup indexes for per-partner collection reads
func migration002Up(db *gorm.DB) error {
	for _, idx := range indexes {
		sql := "CREATE INDEX IF NOT EXISTS " + pq.QuoteIdentifier(idx.name) +
			" ON " + pq.QuoteIdentifier(idx.table) + " (" + idx.columns + ")"
		if err := db.Exec(sql).Error; err != nil {
			return err
		}
	}
	return nil
}

// migration002Down drops the lookup indexes
func migration002Down(db *gorm.DB) error {
	for _, idx := range indexes {
		if err := db.Exec("DROP INDEX IF EXISTS " + pq.QuoteIdentifier(idx.name)).Error; err != nil {
			return err
		}
	}
	return nil
}
