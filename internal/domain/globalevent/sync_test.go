package globalevent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/partnerships-api/internal/domain/partner"
)

func TestEventStatusForNarrowsProposed(t *testing.T) {
	assert.Equal(t, partner.EventPending, EventStatusFor(InvitationProposed))
	assert.Equal(t, partner.EventPending, EventStatusFor(InvitationPending))
	assert.Equal(t, partner.EventAccepted, EventStatusFor(InvitationAccepted))
	assert.Equal(t, partner.EventDeclined, EventStatusFor(InvitationDeclined))
}

func TestNeedsSync(t *testing.T) {
	base := Invitation{PartnerID: "P1", Status: InvitationPending, Notes: "vip", Guests: []string{"a", "b"}}

	assert.True(t, NeedsSync(nil, base), "new invitation")
	assert.False(t, NeedsSync(&base, base.Clone()), "unchanged")

	changed := base.Clone()
	changed.Status = InvitationAccepted
	assert.True(t, NeedsSync(&base, changed), "status")

	changed = base.Clone()
	changed.Notes = "regular"
	assert.True(t, NeedsSync(&base, changed), "notes")

	changed = base.Clone()
	changed.Guests = []string{"b", "a"}
	assert.True(t, NeedsSync(&base, changed), "guest order matters")

	changed = base.Clone()
	changed.PartnerName = "Renamed"
	changed.ProposalDate = "2030-01-01"
	assert.False(t, NeedsSync(&base, changed), "other fields do not trigger sync")

	noGuests := Invitation{PartnerID: "P1", Status: InvitationPending}
	emptyGuests := Invitation{PartnerID: "P1", Status: InvitationPending, Guests: []string{}}
	assert.False(t, NeedsSync(&noGuests, emptyGuests))
}

func TestChangedInvitations(t *testing.T) {
	stored := []Invitation{
		{PartnerID: "P1", Status: InvitationPending},
		{PartnerID: "P2", Status: InvitationProposed},
	}
	next := []Invitation{
		{PartnerID: "P1", Status: InvitationPending},
		{PartnerID: "P2", Status: InvitationAccepted},
		{PartnerID: "P3", Status: InvitationProposed},
	}

	changed := ChangedInvitations(stored, next)
	require.Len(t, changed, 2)
	assert.Equal(t, "P2", changed[0].PartnerID)
	assert.Equal(t, "P3", changed[1].PartnerID)

	assert.Empty(t, ChangedInvitations(next, next))
}

func TestMirrorInvitationCreatesThenUpdatesInPlace(t *testing.T) {
	ge := &GlobalEvent{ID: "ge1", EventName: "Gala 2025", EventDate: "2025-06-01", EventLocation: "Paris", CreatedAt: time.Now()}
	direct := partner.Event{ID: "direct", PartnerID: "P1", EventName: "Other"}

	events, mirrored, created := MirrorInvitation([]partner.Event{direct}, ge, Invitation{
		PartnerID: "P1", Status: InvitationProposed, ProposalDate: "2025-01-01",
	})
	require.True(t, created)
	require.Len(t, events, 2)
	assert.Equal(t, "ge1", mirrored.GlobalEventID)
	assert.True(t, mirrored.IsSyncedFromGlobal)
	assert.Equal(t, partner.EventPending, mirrored.Status)
	assert.Equal(t, "Gala 2025", mirrored.EventName)
	assert.Equal(t, "Paris", mirrored.EventLocation)
	assert.Equal(t, "2025-01-01", mirrored.ProposalDate)
	assert.False(t, mirrored.Attended)

	events[1].Attended = true
	events, again, created := MirrorInvitation(events, ge, Invitation{
		PartnerID: "P1", Status: InvitationDeclined, ProposalDate: "2025-01-02",
	})
	require.False(t, created)
	require.Len(t, events, 2)
	assert.Equal(t, mirrored.ID, again.ID)
	assert.Equal(t, partner.EventDeclined, again.Status)
	assert.True(t, again.Attended, "sync never touches attended")
	assert.Equal(t, direct, events[0])
}

func TestRefreshDetails(t *testing.T) {
	ge := &GlobalEvent{ID: "ge1", EventName: "Gala 2026", EventLocation: "Lyon"}
	events := []partner.Event{{ID: "e1", GlobalEventID: "ge1", EventName: "Gala 2025", Status: partner.EventAccepted}}

	out, ok := RefreshDetails(events, ge)
	require.True(t, ok)
	assert.Equal(t, "Gala 2026", out[0].EventName)
	assert.Equal(t, "Lyon", out[0].EventLocation)
	assert.Equal(t, partner.EventAccepted, out[0].Status)
	assert.Equal(t, "Gala 2025", events[0].EventName)

	_, ok = RefreshDetails([]partner.Event{{ID: "e2"}}, ge)
	assert.False(t, ok)
}
