package migrations

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// migration001Up creates all tables using GORM AutoMigrate
func migration001Up(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// migration001Down drops all tables, children first
func migration001Down(db *gorm.DB) error {
	tables := append(ChildTables(), "global_events", "lightweight_partners", "partners")

	for _, table := range tables {
		if err := db.Exec("DROP TABLE IF EXISTS " + pq.QuoteIdentifier(table)).Error; err != nil {
			return err
		}
	}

	return nil
}
