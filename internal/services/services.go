// Package services implements the use cases the HTTP handlers and the CLI
// call. Every service is built over repository interfaces and never caches.
package services

import (
	"time"

	"github.com/gravadigital/partnerships-api/internal/storage"
)

// Clock returns the current time. Tests replace it to pin timestamps.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

// Services groups the services over one storage container
type Services struct {
	Partnerships *PartnershipService
	GlobalEvents *GlobalEventService
	RecycleBin   *RecycleBinService
}

// New wires every service to the repositories of c
func New(c storage.Container) *Services {
	return NewWithClock(c, utcNow)
}

// NewWithClock is New with an explicit time source
func NewWithClock(c storage.Container, now Clock) *Services {
	partnerships := NewPartnershipService(c.Partners())
	partnerships.now = now

	globalEvents := NewGlobalEventService(c.GlobalEvents(), c.LightweightPartners(), c.Partners())
	globalEvents.now = now

	return &Services{
		Partnerships: partnerships,
		GlobalEvents: globalEvents,
		RecycleBin:   NewRecycleBinService(c.Partners(), c.GlobalEvents()),
	}
}
