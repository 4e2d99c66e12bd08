// Package globalevent models cross-partner events and their invitation lists.
package globalevent

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
)

// InvitationStatus is the status of a partner's invitation to a global event
type InvitationStatus string

const (
	InvitationProposed InvitationStatus = "proposed"
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Valid reports whether s is a known invitation status
func (s InvitationStatus) Valid() bool {
	switch s {
	case InvitationProposed, InvitationPending, InvitationAccepted, InvitationDeclined:
		return true
	}
	return false
}

// IsResponse reports whether the status is an answer from the invitee.
func (s InvitationStatus) IsResponse() bool {
	return s == InvitationAccepted || s == InvitationDeclined
}

// Invitation is a partner's participation record inside one GlobalEvent. It
// has no identity outside its event; partnerId is unique per event.
type Invitation struct {
	PartnerID    string           `json:"partnerId"`
	PartnerName  string           `json:"partnerName"`
	Status       InvitationStatus `json:"status"`
	ProposalDate string           `json:"proposalDate"`
	ResponseDate string           `json:"responseDate,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	Guests       []string         `json:"guests,omitempty"`
}

// Clone returns a copy that shares no slices with i
func (i Invitation) Clone() Invitation {
	i.Guests = slices.Clone(i.Guests)
	return i
}

// GlobalEvent is a single event inviting several partners.
type GlobalEvent struct {
	ID            string       `json:"id"`
	EventName     string       `json:"eventName"`
	EventDate     string       `json:"eventDate,omitempty"`
	EventLocation string       `json:"eventLocation,omitempty"`
	Description   string       `json:"description,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     *time.Time   `json:"updatedAt,omitempty"`
	DeletedAt     *time.Time   `json:"deletedAt,omitempty"`
	Invitations   []Invitation `json:"invitations"`
}

// NewGlobalEvent creates an event with a fresh id and no invitations
func NewGlobalEvent(name string, now time.Time) *GlobalEvent {
	return &GlobalEvent{
		ID:          uuid.NewString(),
		EventName:   name,
		CreatedAt:   now,
		Invitations: []Invitation{},
	}
}

// IsDeleted reports whether the event sits in the recycle bin
func (e *GlobalEvent) IsDeleted() bool {
	return e.DeletedAt != nil
}

// Invitation returns the invitation for partnerID, if any
func (e *GlobalEvent) Invitation(partnerID string) (Invitation, bool) {
	for _, inv := range e.Invitations {
		if inv.PartnerID == partnerID {
			return inv, true
		}
	}
	return Invitation{}, false
}

// Clone returns a deep copy
func (e *GlobalEvent) Clone() *GlobalEvent {
	out := *e
	out.UpdatedAt = common.CloneTime(e.UpdatedAt)
	out.DeletedAt = common.CloneTime(e.DeletedAt)
	out.Invitations = make([]Invitation, 0, len(e.Invitations))
	for _, inv := range e.Invitations {
		out.Invitations = append(out.Invitations, inv.Clone())
	}
	return &out
}

// DetailsPatch changes event-level metadata; nil fields are left untouched.
type DetailsPatch struct {
	EventName     *string `json:"eventName,omitempty"`
	EventDate     *string `json:"eventDate,omitempty"`
	EventLocation *string `json:"eventLocation,omitempty"`
	Description   *string `json:"description,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p DetailsPatch) IsEmpty() bool {
	return p.EventName == nil && p.EventDate == nil && p.EventLocation == nil && p.Description == nil
}

// Apply writes every set field onto the event
func (p DetailsPatch) Apply(e *GlobalEvent) {
	if p.EventName != nil {
		e.EventName = *p.EventName
	}
	if p.EventDate != nil {
		e.EventDate = *p.EventDate
	}
	if p.EventLocation != nil {
		e.EventLocation = *p.EventLocation
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
}

// LightweightPartner is an invitee that is not a tracked Partner. It is never
// mirrored into an Event row.
type LightweightPartner struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Company       string `json:"company,omitempty"`
	IsLightweight bool   `json:"isLightweight"`
}

// NewLightweightPartner creates a lightweight invitee with a fresh id
func NewLightweightPartner(name, email, company string) *LightweightPartner {
	return &LightweightPartner{
		ID:            uuid.NewString(),
		Name:          name,
		Email:         email,
		Company:       company,
		IsLightweight: true,
	}
}
