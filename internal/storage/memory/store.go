// Package memory implements every repository in process memory. It backs the
// tests, the ephemeral "memory" storage type and the flat-file store.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
)

// Snapshot is the full content of a Store. Slices keep insertion order.
type Snapshot struct {
	Partnerships        []*partner.PartnershipData        `json:"partnerships"`
	GlobalEvents        []*globalevent.GlobalEvent        `json:"globalEvents"`
	LightweightPartners []*globalevent.LightweightPartner `json:"lightweightPartners"`
}

// CommitHook is called with the new content after every successful write.
// An error rolls the write back.
type CommitHook func(Snapshot) error

// Store implements partner.Repository, globalevent.Repository and
// globalevent.LightweightRepository.
type Store struct {
	mu           sync.RWMutex
	partnerships []*partner.PartnershipData
	globalEvents []*globalevent.GlobalEvent
	lightweight  []*globalevent.LightweightPartner
	hook         CommitHook
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{}
}

// NewFromSnapshot returns a store preloaded with snap. hook may be nil.
func NewFromSnapshot(snap Snapshot, hook CommitHook) *Store {
	s := &Store{hook: hook}
	s.restoreLocked(snap)
	return s
}

// Snapshot returns a deep copy of the store content.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) Partners() partner.Repository {
	return s
}

func (s *Store) GlobalEvents() globalevent.Repository {
	return s
}

func (s *Store) LightweightPartners() globalevent.LightweightRepository {
	return s
}

// Health always succeeds for process memory.
func (s *Store) Health() error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Partnerships:        make([]*partner.PartnershipData, 0, len(s.partnerships)),
		GlobalEvents:        make([]*globalevent.GlobalEvent, 0, len(s.globalEvents)),
		LightweightPartners: make([]*globalevent.LightweightPartner, 0, len(s.lightweight)),
	}
	for _, d := range s.partnerships {
		snap.Partnerships = append(snap.Partnerships, d.Clone())
	}
	for _, e := range s.globalEvents {
		snap.GlobalEvents = append(snap.GlobalEvents, e.Clone())
	}
	for _, l := range s.lightweight {
		c := *l
		snap.LightweightPartners = append(snap.LightweightPartners, &c)
	}
	return snap
}

func (s *Store) restoreLocked(snap Snapshot) {
	s.partnerships = s.partnerships[:0]
	for _, d := range snap.Partnerships {
		c := d.Clone()
		c.NormalizeAll(uuid.NewString)
		s.partnerships = append(s.partnerships, c)
	}
	s.globalEvents = s.globalEvents[:0]
	for _, e := range snap.GlobalEvents {
		s.globalEvents = append(s.globalEvents, e.Clone())
	}
	s.lightweight = s.lightweight[:0]
	for _, l := range snap.LightweightPartners {
		c := *l
		s.lightweight = append(s.lightweight, &c)
	}
}

// write runs fn under the write lock and hands the result to the commit hook,
// restoring the previous content when either fails.
func (s *Store) write(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var backup Snapshot
	if s.hook != nil {
		backup = s.snapshotLocked()
	}

	if err := fn(); err != nil {
		if s.hook != nil {
			s.restoreLocked(backup)
		}
		return err
	}

	if s.hook != nil {
		if err := s.hook(s.snapshotLocked()); err != nil {
			s.restoreLocked(backup)
			return fmt.Errorf("persist store: %w: %w", common.ErrStoreUnavailable, err)
		}
	}
	return nil
}

func (s *Store) partnerIndexLocked(id string) int {
	return slices.IndexFunc(s.partnerships, func(d *partner.PartnershipData) bool {
		return d.Partner.ID == id
	})
}

func (s *Store) slugTakenLocked(slug, exceptID string) bool {
	return slices.ContainsFunc(s.partnerships, func(d *partner.PartnershipData) bool {
		return d.Partner.Slug == slug && d.Partner.ID != exceptID
	})
}

func (s *Store) slugsLocked() []string {
	slugs := make([]string, 0, len(s.partnerships))
	for _, d := range s.partnerships {
		slugs = append(slugs, d.Partner.Slug)
	}
	return slugs
}

// ListPartnerships returns every partner, soft-deleted ones included.
func (s *Store) ListPartnerships(_ context.Context) ([]*partner.PartnershipData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*partner.PartnershipData, 0, len(s.partnerships))
	for _, d := range s.partnerships {
		out = append(out, d.Clone())
	}
	return out, nil
}

func (s *Store) GetPartnership(_ context.Context, id string) (*partner.PartnershipData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.partnerIndexLocked(id)
	if i < 0 {
		return nil, common.NotFoundf("partner %s", id)
	}
	return s.partnerships[i].Clone(), nil
}

func (s *Store) PartnerExists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.partnerIndexLocked(id) >= 0, nil
}

func (s *Store) CreatePartnership(_ context.Context, data *partner.PartnershipData) (*partner.PartnershipData, error) {
	if data == nil {
		return nil, common.NewValidationError("partner", "is required")
	}
	stored := data.Clone()
	stored.Partner.EnsureID()

	err := s.write(func() error {
		if s.partnerIndexLocked(stored.Partner.ID) >= 0 {
			return common.Duplicatef("partner id %s", stored.Partner.ID)
		}
		if stored.Partner.Slug == "" {
			stored.Partner.Slug = partner.MakeSlugUnique(partner.BaseSlug(stored.Partner.Name), s.slugsLocked())
		} else if s.slugTakenLocked(stored.Partner.Slug, "") {
			return common.Duplicatef("partner slug %s", stored.Partner.Slug)
		}
		stored.NormalizeAll(uuid.NewString)
		s.partnerships = append(s.partnerships, stored)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored.Clone(), nil
}

func (s *Store) UpdatePartner(_ context.Context, id string, patch partner.Patch) (*partner.Partner, error) {
	var updated partner.Partner
	err := s.write(func() error {
		i := s.partnerIndexLocked(id)
		if i < 0 {
			return common.NotFoundf("partner %s", id)
		}
		if patch.Slug != nil && s.slugTakenLocked(*patch.Slug, id) {
			return common.Duplicatef("partner slug %s", *patch.Slug)
		}
		patch.Apply(&s.partnerships[i].Partner)
		updated = s.partnerships[i].Partner.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// replace swaps one collection of a partner under the write lock.
func (s *Store) replace(partnerID string, set func(d *partner.PartnershipData)) error {
	return s.write(func() error {
		i := s.partnerIndexLocked(partnerID)
		if i < 0 {
			return common.NotFoundf("partner %s", partnerID)
		}
		set(s.partnerships[i])
		return nil
	})
}

func (s *Store) ReplaceIntroductions(_ context.Context, partnerID string, items []partner.Introduction) error {
	return s.replace(partnerID, func(d *partner.PartnershipData) {
		d.Introductions = partner.Normalize(partnerID, items, uuid.NewString)
	})
}

func (s *Store) ReplaceEvents(_ context.Context, partnerID string, items []partner.Event) error {
	return s.replace(partnerID, func(d *partner.PartnershipData) {
		d.Events = partner.Normalize(partnerID, items, uuid.NewString)
	})
}

func (s *Store) ReplacePublications(_ context.Context, partnerID string, items []partner.Publication) error {
	return s.replace(partnerID, func(d *partner.PartnershipData) {
		d.Publications = partner.Normalize(partnerID, items, uuid.NewString)
	})
}

func (s *Store) ReplaceQuarterlyReports(_ context.Context, partnerID string, items []partner.QuarterlyReport) error {
	return s.replace(partnerID, func(d *partner.PartnershipData) {
		d.QuarterlyReports = partner.Normalize(partnerID, items, uuid.NewString)
	})
}

func (s *Store) ReplaceMonthlyCheckIns(_ context.Context, partnerID string, items []partner.MonthlyCheckIn) error {
	return s.replace(partnerID, func(d *partner.PartnershipData) {
		d.MonthlyCheckIns = partner.Normalize(partnerID, items, uuid.NewString)
	})
}

func (s *Store) SetPartnerDeletedAt(_ context.Context, id string, at *time.Time) error {
	return s.replace(id, func(d *partner.PartnershipData) {
		d.Partner.DeletedAt = common.CloneTime(at)
	})
}

// DeletePartner removes the partner with all its collections. Absent ids succeed.
func (s *Store) DeletePartner(_ context.Context, id string) error {
	return s.write(func() error {
		if i := s.partnerIndexLocked(id); i >= 0 {
			s.partnerships = slices.Delete(s.partnerships, i, i+1)
		}
		return nil
	})
}

func (s *Store) DeleteSoftDeletedPartners(_ context.Context) (int, error) {
	var removed int
	err := s.write(func() error {
		before := len(s.partnerships)
		s.partnerships = slices.DeleteFunc(s.partnerships, func(d *partner.PartnershipData) bool {
			return d.Partner.DeletedAt != nil
		})
		removed = before - len(s.partnerships)
		return nil
	})
	return removed, err
}
