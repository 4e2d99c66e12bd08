package migrations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/partnerships-api/internal/storage/migrations"
	"github.com/gravadigital/partnerships-api/internal/storage/sqlite"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	db, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)

	require.NoError(t, migrations.RunMigrations(db))
	require.NoError(t, migrations.RunMigrations(db))

	applied, err := migrations.Applied(db)
	require.NoError(t, err)
	require.Len(t, applied, len(migrations.GetMigrations()))
	assert.Equal(t, "001", applied[0].ID)

	for _, model := range migrations.AllModels() {
		assert.True(t, db.Migrator().HasTable(model))
	}
}

func TestRollbackMigration(t *testing.T) {
	db, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	require.NoError(t, migrations.RunMigrations(db))

	require.NoError(t, migrations.RollbackMigration(db))
	assert.False(t, db.Migrator().HasIndex(&migrations.Event{}, "idx_partner_events_global_event"))
	assert.True(t, db.Migrator().HasTable(&migrations.Partner{}))

	require.NoError(t, migrations.RollbackMigration(db))
	assert.False(t, db.Migrator().HasTable(&migrations.Partner{}))

	assert.ErrorIs(t, migrations.RollbackMigration(db), migrations.ErrNothingToRollback)
}
