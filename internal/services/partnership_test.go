package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
)

func TestCreatePartnershipValidates(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name string
		p    partner.Partner
	}{
		{"missing name", partner.Partner{Type: partner.TypeStrategic}},
		{"bad type", partner.Partner{Name: "Acme", Type: "other"}},
		{"bad commission", partner.Partner{Name: "Acme", Type: partner.TypeAmbassador, CommissionClient: 120}},
		{"bad date", partner.Partner{Name: "Acme", Type: partner.TypeAmbassador, StartDate: "01/02/2025"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Partnerships.CreatePartnership(ctx, partner.New(tt.p))
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestCreatePartnershipAppliesImpliedFlags(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	d := partner.New(partner.Partner{Name: "Acme", Type: partner.TypeStrategic})
	d.Introductions = []partner.Introduction{{
		Date: "2025-01-05", ContactName: "Jane", Company: "Initech",
		Status: partner.IntroductionSigned,
	}}
	d.Events = []partner.Event{{
		EventName: "Summit", ProposalDate: "2025-01-01",
		Status: partner.EventAccepted,
	}}

	created, err := svc.Partnerships.CreatePartnership(ctx, d)
	require.NoError(t, err)
	require.Len(t, created.Introductions, 1)
	require.Len(t, created.Events, 1)
	assert.True(t, created.Introductions[0].ContractSigned)
	assert.True(t, created.Events[0].Attended)
	assert.Equal(t, created.Partner.ID, created.Events[0].PartnerID)
}

func TestSaveItemSetsImpliedBooleans(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	p := createPartner(t, svc, "p1", "Acme")

	ev, err := svc.Partnerships.SaveEvent(ctx, p.Partner.ID, partner.Event{
		EventName: "Summit", ProposalDate: "2025-01-01", Status: partner.EventAccepted,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	assert.True(t, ev.Attended)

	ev.Status = partner.EventDeclined
	ev.Attended = true
	ev, err = svc.Partnerships.SaveEvent(ctx, p.Partner.ID, ev)
	require.NoError(t, err)
	assert.False(t, ev.Attended)

	intro, err := svc.Partnerships.SaveIntroduction(ctx, p.Partner.ID, partner.Introduction{
		Date: "2025-01-05", ContactName: "Jane", Company: "Initech", Status: partner.IntroductionNegotiating,
		ContractSigned: true,
	})
	require.NoError(t, err)
	assert.False(t, intro.ContractSigned)

	got, err := svc.Partnerships.GetPartnership(ctx, p.Partner.ID, common.ViewAll)
	require.NoError(t, err)
	assert.Len(t, got.Events, 1, "saving an existing id replaces in place")
	assert.Equal(t, partner.EventDeclined, got.Events[0].Status)
}

func TestSavePublicationStampsLastUpdated(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	p := createPartner(t, svc, "p1", "Acme")

	_, err := svc.Partnerships.SavePublication(ctx, p.Partner.ID, partner.Publication{
		PublicationDate: "2025-02-01", Platform: "LinkedIn",
	})
	assert.ErrorIs(t, err, common.ErrValidation, "a publication needs a link")

	pub, err := svc.Partnerships.SavePublication(ctx, p.Partner.ID, partner.Publication{
		PublicationDate: "2025-02-01", Platform: "LinkedIn", Links: []string{"https://example.com/post"},
	})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, pub.LastUpdated)

	pub, err = svc.Partnerships.AddScreenshot(ctx, p.Partner.ID, pub.ID, "http://files/shot.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://files/shot.png"}, pub.ScreenshotURLs)

	_, err = svc.Partnerships.AddScreenshot(ctx, p.Partner.ID, "missing", "http://files/x.png")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetPartnershipBySlug(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	p := createPartner(t, svc, "p1", "Société Générale")

	got, err := svc.Partnerships.GetPartnership(ctx, "societe-generale", common.ViewActive)
	require.NoError(t, err)
	assert.Equal(t, p.Partner.ID, got.Partner.ID)

	_, err = svc.Partnerships.GetPartnership(ctx, "nope", common.ViewActive)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdatePartnerStatusKeepsSlug(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	p := createPartner(t, svc, "p1", "Acme")

	name := "Acme Renamed"
	active := false
	updated, err := svc.Partnerships.UpdatePartnerStatus(ctx, p.Partner.ID, partner.Patch{Name: &name, IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, "Acme Renamed", updated.Name)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "acme", updated.Slug)

	bad := 150.0
	_, err = svc.Partnerships.UpdatePartnerStatus(ctx, p.Partner.ID, partner.Patch{CommissionClient: &bad})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Partnerships.UpdatePartnerStatus(ctx, "missing", partner.Patch{Name: &name})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSlugUniquenessAcrossPartners(t *testing.T) {
	svc, _ := newTestServices(t)
	a := createPartner(t, svc, "", "Acme")
	b := createPartner(t, svc, "", "Acme")
	c := createPartner(t, svc, "", "ACME!")

	slugs := map[string]bool{a.Partner.Slug: true, b.Partner.Slug: true, c.Partner.Slug: true}
	assert.Len(t, slugs, 3)
}

func TestItemSoftDeleteIsReversible(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	p := createPartner(t, svc, "p1", "Acme")

	report, err := svc.Partnerships.SaveQuarterlyReport(ctx, p.Partner.ID, partner.QuarterlyReport{
		ReportDate: "2025-03-31", Link: "https://example.com/q1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Partnerships.SoftDeleteItem(ctx, p.Partner.ID, partner.CollectionQuarterlyReports, report.ID))

	active, err := svc.Partnerships.GetPartnership(ctx, p.Partner.ID, common.ViewActive)
	require.NoError(t, err)
	assert.Empty(t, active.QuarterlyReports)

	all, err := svc.Partnerships.GetPartnership(ctx, p.Partner.ID, common.ViewAll)
	require.NoError(t, err)
	require.Len(t, all.QuarterlyReports, 1)
	require.NotNil(t, all.QuarterlyReports[0].DeletedAt)
	assert.Equal(t, fixedNow, *all.QuarterlyReports[0].DeletedAt)

	require.NoError(t, svc.Partnerships.RestoreItem(ctx, p.Partner.ID, partner.CollectionQuarterlyReports, report.ID))
	active, err = svc.Partnerships.GetPartnership(ctx, p.Partner.ID, common.ViewActive)
	require.NoError(t, err)
	require.Len(t, active.QuarterlyReports, 1)
	assert.Equal(t, report, active.QuarterlyReports[0])

	require.NoError(t, svc.Partnerships.PurgeItem(ctx, p.Partner.ID, partner.CollectionQuarterlyReports, report.ID))
	all, err = svc.Partnerships.GetPartnership(ctx, p.Partner.ID, common.ViewAll)
	require.NoError(t, err)
	assert.Empty(t, all.QuarterlyReports)
}

func TestItemLifecycleErrors(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	p := createPartner(t, svc, "p1", "Acme")

	err := svc.Partnerships.SoftDeleteItem(ctx, p.Partner.ID, partner.CollectionEvents, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = svc.Partnerships.SoftDeleteItem(ctx, p.Partner.ID, partner.Collection("notes"), "x")
	assert.ErrorIs(t, err, common.ErrValidation)

	err = svc.Partnerships.RestoreItem(ctx, "missing", partner.CollectionEvents, "x")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPartnerLifecycle(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	p := createPartner(t, svc, "p1", "Acme")
	createPartner(t, svc, "p2", "Globex")

	require.NoError(t, svc.Partnerships.SoftDeletePartner(ctx, p.Partner.ID))

	active, err := svc.Partnerships.ListPartnerships(ctx, common.ViewActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "p2", active[0].Partner.ID)

	deleted, err := svc.Partnerships.ListPartnerships(ctx, common.ViewDeleted)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, "p1", deleted[0].Partner.ID)

	require.NoError(t, svc.Partnerships.RestorePartner(ctx, p.Partner.ID))
	all, err := svc.Partnerships.ListPartnerships(ctx, common.ViewActive)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.Partnerships.PermanentlyDeletePartner(ctx, p.Partner.ID))
	require.NoError(t, svc.Partnerships.PermanentlyDeletePartner(ctx, p.Partner.ID), "idempotent")

	_, err = svc.Partnerships.GetPartnership(ctx, p.Partner.ID, common.ViewAll)
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.ErrorIs(t, svc.Partnerships.SoftDeletePartner(ctx, "missing"), common.ErrNotFound)
}

func TestReplaceCollectionValidatesEveryItem(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	p := createPartner(t, svc, "p1", "Acme")

	err := svc.Partnerships.ReplaceMonthlyCheckIns(ctx, p.Partner.ID, []partner.MonthlyCheckIn{
		{CheckInDate: "2025-01-31"},
		{CheckInDate: "not a date"},
	})
	assert.ErrorIs(t, err, common.ErrValidation)

	err = svc.Partnerships.ReplaceMonthlyCheckIns(ctx, p.Partner.ID, []partner.MonthlyCheckIn{
		{CheckInDate: "2025-01-31"},
		{CheckInDate: "2025-02-28", Notes: "quiet month"},
	})
	require.NoError(t, err)

	got, err := svc.Partnerships.GetPartnership(ctx, p.Partner.ID, common.ViewAll)
	require.NoError(t, err)
	require.Len(t, got.MonthlyCheckIns, 2)
	assert.Equal(t, "2025-01-31", got.MonthlyCheckIns[0].CheckInDate)
	assert.NotEmpty(t, got.MonthlyCheckIns[1].ID)
}

func TestReplacePublicationsStampsOnlyChanged(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	p := createPartner(t, svc, "p1", "Acme")

	kept, err := svc.Partnerships.SavePublication(ctx, p.Partner.ID, partner.Publication{
		PublicationDate: "2025-02-01", Platform: "LinkedIn", Links: []string{"https://example.com/a"},
	})
	require.NoError(t, err)
	edited, err := svc.Partnerships.SavePublication(ctx, p.Partner.ID, partner.Publication{
		PublicationDate: "2025-02-02", Platform: "LinkedIn", Links: []string{"https://example.com/b"},
	})
	require.NoError(t, err)

	later := fixedNow.Add(48 * time.Hour)
	svc.Partnerships.now = func() time.Time { return later }

	edited.Platform = "Instagram"
	kept.LastUpdated = time.Time{}
	fresh := partner.Publication{
		ID: "pub-new", PublicationDate: "2025-02-03", Platform: "X", Links: []string{"https://example.com/c"},
	}
	require.NoError(t, svc.Partnerships.ReplacePublications(ctx, p.Partner.ID, []partner.Publication{kept, edited, fresh}))

	d, err := svc.Partnerships.GetPartnership(ctx, p.Partner.ID, common.ViewAll)
	require.NoError(t, err)
	require.Len(t, d.Publications, 3)
	stamps := map[string]time.Time{}
	for _, pub := range d.Publications {
		stamps[pub.ID] = pub.LastUpdated
	}
	assert.Equal(t, fixedNow, stamps[kept.ID], "an unchanged publication keeps its timestamp")
	assert.Equal(t, later, stamps[edited.ID])
	assert.Equal(t, later, stamps["pub-new"])
}
