package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
)

func newPartnership(name string) *partner.PartnershipData {
	return partner.New(partner.Partner{Name: name, Type: partner.TypeStrategic, IsActive: true})
}

func TestCreatePartnershipAssignsIDAndUniqueSlug(t *testing.T) {
	ctx := context.Background()
	s := New()

	first, err := s.CreatePartnership(ctx, newPartnership("Acme Corp"))
	require.NoError(t, err)
	second, err := s.CreatePartnership(ctx, newPartnership("Acme Corp"))
	require.NoError(t, err)

	assert.NotEmpty(t, first.Partner.ID)
	assert.NotEqual(t, first.Partner.ID, second.Partner.ID)
	assert.Equal(t, "acme-corp", first.Partner.Slug)
	assert.Equal(t, "acme-corp-2", second.Partner.Slug)
}

func TestCreatePartnershipRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	s := New()

	d := newPartnership("Acme")
	d.Partner.ID = "p1"
	_, err := s.CreatePartnership(ctx, d)
	require.NoError(t, err)

	_, err = s.CreatePartnership(ctx, d)
	assert.ErrorIs(t, err, common.ErrDuplicateKey)

	other := newPartnership("Other")
	other.Partner.Slug = "acme"
	_, err = s.CreatePartnership(ctx, other)
	assert.ErrorIs(t, err, common.ErrDuplicateKey)
}

func TestGetPartnershipReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New()
	created, err := s.CreatePartnership(ctx, newPartnership("Acme"))
	require.NoError(t, err)

	got, err := s.GetPartnership(ctx, created.Partner.ID)
	require.NoError(t, err)
	got.Partner.Name = "changed"

	again, err := s.GetPartnership(ctx, created.Partner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", again.Partner.Name)

	_, err = s.GetPartnership(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdatePartnerChecksSlugUniqueness(t *testing.T) {
	ctx := context.Background()
	s := New()
	a, err := s.CreatePartnership(ctx, newPartnership("Alpha"))
	require.NoError(t, err)
	_, err = s.CreatePartnership(ctx, newPartnership("Beta"))
	require.NoError(t, err)

	taken := "beta"
	_, err = s.UpdatePartner(ctx, a.Partner.ID, partner.Patch{Slug: &taken})
	assert.ErrorIs(t, err, common.ErrDuplicateKey)

	own := "alpha"
	name := "Alpha Two"
	updated, err := s.UpdatePartner(ctx, a.Partner.ID, partner.Patch{Slug: &own, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alpha Two", updated.Name)
	assert.Equal(t, "alpha", updated.Slug)
}

func TestReplaceCollectionNormalizesItems(t *testing.T) {
	ctx := context.Background()
	s := New()
	d, err := s.CreatePartnership(ctx, newPartnership("Acme"))
	require.NoError(t, err)

	err = s.ReplaceQuarterlyReports(ctx, d.Partner.ID, []partner.QuarterlyReport{
		{ReportDate: "2025-03-31", Link: "https://example.com/q1", PartnerID: "wrong"},
	})
	require.NoError(t, err)

	got, err := s.GetPartnership(ctx, d.Partner.ID)
	require.NoError(t, err)
	require.Len(t, got.QuarterlyReports, 1)
	assert.NotEmpty(t, got.QuarterlyReports[0].ID)
	assert.Equal(t, d.Partner.ID, got.QuarterlyReports[0].PartnerID)

	err = s.ReplaceEvents(ctx, "missing", nil)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteSoftDeletedPartners(t *testing.T) {
	ctx := context.Background()
	s := New()
	keep, err := s.CreatePartnership(ctx, newPartnership("Keep"))
	require.NoError(t, err)
	drop, err := s.CreatePartnership(ctx, newPartnership("Drop"))
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, s.SetPartnerDeletedAt(ctx, drop.Partner.ID, &now))

	n, err := s.DeleteSoftDeletedPartners(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := s.ListPartnerships(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.Partner.ID, all[0].Partner.ID)
}

func TestGlobalEventLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()
	ge := globalevent.NewGlobalEvent("Gala 2025", time.Now())
	require.NoError(t, s.CreateGlobalEvent(ctx, ge))
	assert.ErrorIs(t, s.CreateGlobalEvent(ctx, ge), common.ErrDuplicateKey)

	ge.Invitations = append(ge.Invitations, globalevent.Invitation{PartnerID: "p1", Status: globalevent.InvitationProposed})
	require.NoError(t, s.SaveGlobalEvent(ctx, ge))

	got, err := s.GetGlobalEvent(ctx, ge.ID)
	require.NoError(t, err)
	assert.Len(t, got.Invitations, 1)

	now := time.Now()
	require.NoError(t, s.SetGlobalEventDeletedAt(ctx, ge.ID, &now))
	n, err := s.DeleteSoftDeletedGlobalEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.GetGlobalEvent(ctx, ge.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLightweightPartners(t *testing.T) {
	ctx := context.Background()
	s := New()
	lp := globalevent.NewLightweightPartner("Jane", "jane@example.com", "Indie")
	require.NoError(t, s.CreateLightweightPartner(ctx, lp))

	got, err := s.GetLightweightPartner(ctx, lp.ID)
	require.NoError(t, err)
	assert.True(t, got.IsLightweight)

	list, err := s.ListLightweightPartners(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCommitHookFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	fail := false
	s := NewFromSnapshot(Snapshot{}, func(Snapshot) error {
		if fail {
			return errors.New("disk full")
		}
		return nil
	})

	d, err := s.CreatePartnership(ctx, newPartnership("Acme"))
	require.NoError(t, err)

	fail = true
	name := "Renamed"
	_, err = s.UpdatePartner(ctx, d.Partner.ID, partner.Patch{Name: &name})
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)

	got, err := s.GetPartnership(ctx, d.Partner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Partner.Name)
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, err := s.CreatePartnership(ctx, newPartnership("Acme"))
	require.NoError(t, err)
	require.NoError(t, s.CreateGlobalEvent(ctx, globalevent.NewGlobalEvent("Gala", time.Now())))

	restored := NewFromSnapshot(s.Snapshot(), nil)
	list, err := restored.ListPartnerships(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	events, err := restored.ListGlobalEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
