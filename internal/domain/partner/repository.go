package partner

import (
	"context"
	"time"
)

// Repository persists partners and their child collections. Collections are
// always read and replaced whole, keyed by partner id.
type Repository interface {
	ListPartnerships(ctx context.Context) ([]*PartnershipData, error)
	GetPartnership(ctx context.Context, id string) (*PartnershipData, error)
	CreatePartnership(ctx context.Context, data *PartnershipData) (*PartnershipData, error)
	UpdatePartner(ctx context.Context, id string, patch Patch) (*Partner, error)
	PartnerExists(ctx context.Context, id string) (bool, error)

	ReplaceIntroductions(ctx context.Context, partnerID string, items []Introduction) error
	ReplaceEvents(ctx context.Context, partnerID string, items []Event) error
	ReplacePublications(ctx context.Context, partnerID string, items []Publication) error
	ReplaceQuarterlyReports(ctx context.Context, partnerID string, items []QuarterlyReport) error
	ReplaceMonthlyCheckIns(ctx context.Context, partnerID string, items []MonthlyCheckIn) error

	SetPartnerDeletedAt(ctx context.Context, id string, at *time.Time) error
	DeletePartner(ctx context.Context, id string) error
	DeleteSoftDeletedPartners(ctx context.Context) (int, error)
}
