package validation

import (
	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
)

// GlobalEventValidation contiene validaciones específicas para eventos globales
type GlobalEventValidation struct{}

// ValidateDetails checks event-level metadata
func (v GlobalEventValidation) ValidateDetails(e *globalevent.GlobalEvent) error {
	return first(
		ValidateRequired(e.EventName, "eventName"),
		ValidateMaxLength(e.EventName, 200, "eventName"),
		ValidateOptionalDate(e.EventDate, "eventDate"),
	)
}

// ValidateInvitations checks every invitation and the one-per-partner rule
func (v GlobalEventValidation) ValidateInvitations(invitations []globalevent.Invitation) error {
	seen := make(map[string]struct{}, len(invitations))
	for _, inv := range invitations {
		if err := ValidateRequired(inv.PartnerID, "invitations.partnerId"); err != nil {
			return err
		}
		if !inv.Status.Valid() {
			return common.NewValidationError("invitations.status", "is not a known invitation status")
		}
		if err := first(
			ValidateOptionalDate(inv.ProposalDate, "invitations.proposalDate"),
			ValidateOptionalDate(inv.ResponseDate, "invitations.responseDate"),
		); err != nil {
			return err
		}
		if _, dup := seen[inv.PartnerID]; dup {
			return common.NewValidationError("invitations.partnerId", "must be unique within an event: "+inv.PartnerID)
		}
		seen[inv.PartnerID] = struct{}{}
	}
	return nil
}

// ValidateLightweight checks a lightweight invitee
func (v GlobalEventValidation) ValidateLightweight(p *globalevent.LightweightPartner) error {
	return first(
		ValidateRequired(p.ID, "lightweightPartner.id"),
		ValidateRequired(p.Name, "lightweightPartner.name"),
		ValidateOptionalEmail(p.Email, "lightweightPartner.email"),
	)
}
