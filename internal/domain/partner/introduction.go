package partner

import (
	"time"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
)

// IntroductionStatus tracks a qualified introduction through negotiation
type IntroductionStatus string

const (
	IntroductionPending       IntroductionStatus = "pending"
	IntroductionNegotiating   IntroductionStatus = "negotiating"
	IntroductionSigned        IntroductionStatus = "signed"
	IntroductionNotInterested IntroductionStatus = "not_interested"
)

// Valid reports whether s is a known introduction status
func (s IntroductionStatus) Valid() bool {
	switch s {
	case IntroductionPending, IntroductionNegotiating, IntroductionSigned, IntroductionNotInterested:
		return true
	}
	return false
}

// Introduction is a qualified introduction brought by a partner.
type Introduction struct {
	ID             string             `json:"id"`
	PartnerID      string             `json:"partnerId"`
	Date           string             `json:"date"`
	ContactName    string             `json:"contactName"`
	Company        string             `json:"company"`
	Status         IntroductionStatus `json:"status"`
	ContractSigned bool               `json:"contractSigned"`
	DeletedAt      *time.Time         `json:"deletedAt,omitempty"`
}

// SetStatus updates the status and the contractSigned flag it implies.
func (i *Introduction) SetStatus(s IntroductionStatus) {
	i.Status = s
	i.ContractSigned = s == IntroductionSigned
}

func (i Introduction) ItemID() string          { return i.ID }
func (i Introduction) DeletedTime() *time.Time { return i.DeletedAt }

func (i Introduction) WithID(id string) Introduction {
	i.ID = id
	return i
}

func (i Introduction) WithPartnerID(id string) Introduction {
	i.PartnerID = id
	i.DeletedAt = common.CloneTime(i.DeletedAt)
	return i
}

func (i Introduction) WithDeletedAt(at *time.Time) Introduction {
	i.DeletedAt = common.CloneTime(at)
	return i
}
