package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gravadigital/partnerships-api/internal/domain/partner"
	"github.com/gravadigital/partnerships-api/internal/storage/memory"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestServices(t *testing.T) (*Services, *memory.Store) {
	t.Helper()
	store := memory.New()
	return NewWithClock(store, fixedClock), store
}

func createPartner(t *testing.T, svc *Services, id, name string) *partner.PartnershipData {
	t.Helper()
	d := partner.New(partner.Partner{
		ID:       id,
		Name:     name,
		Type:     partner.TypeStrategic,
		IsActive: true,
	})
	created, err := svc.Partnerships.CreatePartnership(context.Background(), d)
	require.NoError(t, err)
	return created
}
