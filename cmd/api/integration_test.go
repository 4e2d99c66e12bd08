//go:build integration
// +build integration

package main

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/partnerships-api/internal/config"
	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
	"github.com/gravadigital/partnerships-api/internal/services"
	"github.com/gravadigital/partnerships-api/internal/storage/migrations"
	"github.com/gravadigital/partnerships-api/internal/storage/postgres"
)

// Integration tests that require a real PostgreSQL database
// Run with: go test -tags=integration ./cmd/api/

func testConfig() *config.Config {
	cfg := config.Load()
	if testDB := os.Getenv("TEST_DB_NAME"); testDB != "" {
		cfg.DB.Name = testDB
	}
	return cfg
}

func TestDatabaseConnection(t *testing.T) {
	db, err := postgres.Connect(testConfig())
	require.NoError(t, err, "Should be able to connect to test database")
	defer postgres.Close(db)

	assert.NoError(t, postgres.HealthCheck(db), "Should be able to ping the database")
}

func TestDatabaseMigration(t *testing.T) {
	db, err := postgres.Connect(testConfig())
	require.NoError(t, err, "Should be able to connect to test database")
	defer postgres.Close(db)

	require.NoError(t, migrations.RunMigrations(db), "Should be able to run migrations")

	applied, err := migrations.Applied(db)
	require.NoError(t, err)
	assert.NotEmpty(t, applied)
}

func TestPartnerAndInvitationRoundTrip(t *testing.T) {
	db, err := postgres.Connect(testConfig())
	require.NoError(t, err)
	defer postgres.Close(db)
	require.NoError(t, migrations.RunMigrations(db))

	ctx := context.Background()
	container := postgres.NewContainerWithDB(db, "postgres")
	svc := services.New(container)

	created, err := svc.Partnerships.CreatePartnership(ctx, partner.New(partner.Partner{
		ID:       "it-acme",
		Name:     "ACME Integration",
		Type:     partner.TypeStrategic,
		IsActive: true,
	}))
	require.NoError(t, err)
	defer func() {
		_ = svc.Partnerships.PermanentlyDeletePartner(ctx, created.Partner.ID)
	}()

	ge, report, err := svc.GlobalEvents.Create(ctx, services.CreateGlobalEventRequest{
		EventName: "Integration Gala",
		EventDate: "2025-06-01",
		Invitations: []globalevent.Invitation{
			{PartnerID: created.Partner.ID, Status: globalevent.InvitationAccepted},
		},
	})
	require.NoError(t, err)
	defer func() {
		_ = svc.GlobalEvents.PermanentlyDelete(ctx, ge.ID)
	}()
	assert.Equal(t, []string{created.Partner.ID}, report.Synced)

	got, err := svc.Partnerships.GetPartnership(ctx, created.Partner.ID, common.ViewAll)
	require.NoError(t, err)
	require.Len(t, got.Events, 1)
	assert.Equal(t, ge.ID, got.Events[0].GlobalEventID)
	assert.Equal(t, partner.EventAccepted, got.Events[0].Status)
}
