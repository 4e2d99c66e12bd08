package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
)

func TestStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "partnerships.json")

	s, err := Open(path)
	require.NoError(t, err)

	created, err := s.CreatePartnership(ctx, partner.New(partner.Partner{Name: "Acme", Type: partner.TypeAmbassador}))
	require.NoError(t, err)
	require.NoError(t, s.ReplaceMonthlyCheckIns(ctx, created.Partner.ID, []partner.MonthlyCheckIn{
		{CheckInDate: "2025-01-15", Notes: "kickoff"},
	}))
	require.NoError(t, s.CreateGlobalEvent(ctx, globalevent.NewGlobalEvent("Gala 2025", time.Now().UTC())))
	require.NoError(t, s.Health())

	reopened, err := Open(path)
	require.NoError(t, err)

	got, err := reopened.GetPartnership(ctx, created.Partner.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme", got.Partner.Slug)
	require.Len(t, got.MonthlyCheckIns, 1)
	assert.Equal(t, "kickoff", got.MonthlyCheckIns[0].Notes)

	events, err := reopened.ListGlobalEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	s, err := Open(path)
	require.NoError(t, err)

	list, err := s.ListPartnerships(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestHealthFailsWhenFileRemoved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	s, err := Open(path)
	require.NoError(t, err)

	_, err = s.CreatePartnership(context.Background(), partner.New(partner.Partner{Name: "Acme"}))
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	assert.Error(t, s.Health())
}
