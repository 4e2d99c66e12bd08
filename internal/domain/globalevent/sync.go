package globalevent

import (
	"slices"

	"github.com/google/uuid"

	"github.com/gravadigital/partnerships-api/internal/domain/partner"
)

// EventStatusFor narrows an invitation status onto the partner-side event
// status set. proposed has no event counterpart and becomes pending.
func EventStatusFor(s InvitationStatus) partner.EventStatus {
	switch s {
	case InvitationAccepted:
		return partner.EventAccepted
	case InvitationDeclined:
		return partner.EventDeclined
	default:
		return partner.EventPending
	}
}

// NeedsSync reports whether next differs from previous in a way the invited
// partner's event must reflect. A nil previous means a new invitation.
func NeedsSync(previous *Invitation, next Invitation) bool {
	if previous == nil {
		return true
	}
	if previous.Status != next.Status || previous.Notes != next.Notes {
		return true
	}
	return !guestsEqual(previous.Guests, next.Guests)
}

// ChangedInvitations returns the invitations of next that need syncing
// against the stored list, in next's order.
func ChangedInvitations(stored, next []Invitation) []Invitation {
	byPartner := make(map[string]Invitation, len(stored))
	for _, inv := range stored {
		byPartner[inv.PartnerID] = inv
	}

	changed := make([]Invitation, 0)
	for _, inv := range next {
		var prev *Invitation
		if p, ok := byPartner[inv.PartnerID]; ok {
			prev = &p
		}
		if NeedsSync(prev, inv) {
			changed = append(changed, inv)
		}
	}
	return changed
}

// MirrorInvitation upserts the event mirroring inv into a partner's events,
// matched by globalEventId. An existing row keeps its id, attended flag and
// deletedAt. It returns the new collection, the mirrored event and whether it
// was created.
func MirrorInvitation(events []partner.Event, ge *GlobalEvent, inv Invitation) ([]partner.Event, partner.Event, bool) {
	out := slices.Clone(events)
	idx := partner.FindByGlobalEvent(out, ge.ID)

	var mirrored partner.Event
	created := idx < 0
	if created {
		mirrored = partner.Event{
			ID:        uuid.NewString(),
			PartnerID: inv.PartnerID,
		}
	} else {
		mirrored = out[idx]
	}

	mirrored.ProposalDate = inv.ProposalDate
	mirrored.Status = EventStatusFor(inv.Status)
	mirrored.GlobalEventID = ge.ID
	mirrored.IsSyncedFromGlobal = true
	applyDetails(&mirrored, ge)

	if created {
		out = append(out, mirrored)
	} else {
		out[idx] = mirrored
	}
	return out, mirrored, created
}

// RefreshDetails copies the event-level metadata of ge onto the partner event
// mirrored from it. ok is false when no such event exists.
func RefreshDetails(events []partner.Event, ge *GlobalEvent) ([]partner.Event, bool) {
	idx := partner.FindByGlobalEvent(events, ge.ID)
	if idx < 0 {
		return events, false
	}
	out := slices.Clone(events)
	applyDetails(&out[idx], ge)
	return out, true
}

func applyDetails(e *partner.Event, ge *GlobalEvent) {
	e.EventName = ge.EventName
	e.EventDate = ge.EventDate
	e.EventLocation = ge.EventLocation
}

// guestsEqual compares guest lists in order; nil and empty are equal.
func guestsEqual(a, b []string) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return slices.Equal(a, b)
}
