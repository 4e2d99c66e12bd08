package partner

import (
	"time"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
)

// EventStatus is the partner-side event status. It has no "proposed" value:
// invitations mirrored from a global event narrow proposed to pending.
type EventStatus string

const (
	EventPending  EventStatus = "pending"
	EventAccepted EventStatus = "accepted"
	EventDeclined EventStatus = "declined"
)

// Valid reports whether s is a known event status
func (s EventStatus) Valid() bool {
	switch s {
	case EventPending, EventAccepted, EventDeclined:
		return true
	}
	return false
}

// Event is an event a partner was proposed, either directly or through a
// global event invitation.
type Event struct {
	ID                 string      `json:"id"`
	PartnerID          string      `json:"partnerId"`
	ProposalDate       string      `json:"proposalDate"`
	EventDate          string      `json:"eventDate,omitempty"`
	EventName          string      `json:"eventName"`
	EventLocation      string      `json:"eventLocation,omitempty"`
	Status             EventStatus `json:"status"`
	Attended           bool        `json:"attended"`
	GlobalEventID      string      `json:"globalEventId,omitempty"`
	IsSyncedFromGlobal bool        `json:"isSyncedFromGlobal,omitempty"`
	DeletedAt          *time.Time  `json:"deletedAt,omitempty"`
}

// SetStatus updates the status and the attended flag it implies.
func (e *Event) SetStatus(s EventStatus) {
	e.Status = s
	e.Attended = s == EventAccepted
}

func (e Event) ItemID() string          { return e.ID }
func (e Event) DeletedTime() *time.Time { return e.DeletedAt }

func (e Event) WithID(id string) Event {
	e.ID = id
	return e
}

func (e Event) WithPartnerID(id string) Event {
	e.PartnerID = id
	e.DeletedAt = common.CloneTime(e.DeletedAt)
	return e
}

func (e Event) WithDeletedAt(at *time.Time) Event {
	e.DeletedAt = common.CloneTime(at)
	return e
}

// FindByGlobalEvent returns the index of the event mirrored from the given
// global event, or -1.
func FindByGlobalEvent(events []Event, globalEventID string) int {
	if globalEventID == "" {
		return -1
	}
	for i, e := range events {
		if e.GlobalEventID == globalEventID {
			return i
		}
	}
	return -1
}
