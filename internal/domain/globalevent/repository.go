package globalevent

import (
	"context"
	"time"
)

// Repository persists global events together with their embedded invitations.
type Repository interface {
	ListGlobalEvents(ctx context.Context) ([]*GlobalEvent, error)
	GetGlobalEvent(ctx context.Context, id string) (*GlobalEvent, error)
	CreateGlobalEvent(ctx context.Context, e *GlobalEvent) error
	SaveGlobalEvent(ctx context.Context, e *GlobalEvent) error
	SetGlobalEventDeletedAt(ctx context.Context, id string, at *time.Time) error
	DeleteGlobalEvent(ctx context.Context, id string) error
	DeleteSoftDeletedGlobalEvents(ctx context.Context) (int, error)
}

// LightweightRepository persists invitees that are not tracked partners.
type LightweightRepository interface {
	ListLightweightPartners(ctx context.Context) ([]*LightweightPartner, error)
	GetLightweightPartner(ctx context.Context, id string) (*LightweightPartner, error)
	CreateLightweightPartner(ctx context.Context, p *LightweightPartner) error
}
