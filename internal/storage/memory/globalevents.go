package memory

import (
	"context"
	"slices"
	"time"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
)

func (s *Store) globalEventIndexLocked(id string) int {
	return slices.IndexFunc(s.globalEvents, func(e *globalevent.GlobalEvent) bool {
		return e.ID == id
	})
}

func (s *Store) ListGlobalEvents(_ context.Context) ([]*globalevent.GlobalEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*globalevent.GlobalEvent, 0, len(s.globalEvents))
	for _, e := range s.globalEvents {
		out = append(out, e.Clone())
	}
	return out, nil
}

func (s *Store) GetGlobalEvent(_ context.Context, id string) (*globalevent.GlobalEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.globalEventIndexLocked(id)
	if i < 0 {
		return nil, common.NotFoundf("global event %s", id)
	}
	return s.globalEvents[i].Clone(), nil
}

func (s *Store) CreateGlobalEvent(_ context.Context, e *globalevent.GlobalEvent) error {
	stored := e.Clone()
	return s.write(func() error {
		if s.globalEventIndexLocked(stored.ID) >= 0 {
			return common.Duplicatef("global event id %s", stored.ID)
		}
		s.globalEvents = append(s.globalEvents, stored)
		return nil
	})
}

// SaveGlobalEvent replaces the stored row, invitations included.
func (s *Store) SaveGlobalEvent(_ context.Context, e *globalevent.GlobalEvent) error {
	stored := e.Clone()
	return s.write(func() error {
		i := s.globalEventIndexLocked(stored.ID)
		if i < 0 {
			return common.NotFoundf("global event %s", stored.ID)
		}
		s.globalEvents[i] = stored
		return nil
	})
}

func (s *Store) SetGlobalEventDeletedAt(_ context.Context, id string, at *time.Time) error {
	return s.write(func() error {
		i := s.globalEventIndexLocked(id)
		if i < 0 {
			return common.NotFoundf("global event %s", id)
		}
		s.globalEvents[i].DeletedAt = common.CloneTime(at)
		return nil
	})
}

func (s *Store) DeleteGlobalEvent(_ context.Context, id string) error {
	return s.write(func() error {
		if i := s.globalEventIndexLocked(id); i >= 0 {
			s.globalEvents = slices.Delete(s.globalEvents, i, i+1)
		}
		return nil
	})
}

func (s *Store) DeleteSoftDeletedGlobalEvents(_ context.Context) (int, error) {
	var removed int
	err := s.write(func() error {
		before := len(s.globalEvents)
		s.globalEvents = slices.DeleteFunc(s.globalEvents, func(e *globalevent.GlobalEvent) bool {
			return e.DeletedAt != nil
		})
		removed = before - len(s.globalEvents)
		return nil
	})
	return removed, err
}

func (s *Store) ListLightweightPartners(_ context.Context) ([]*globalevent.LightweightPartner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*globalevent.LightweightPartner, 0, len(s.lightweight))
	for _, l := range s.lightweight {
		c := *l
		out = append(out, &c)
	}
	return out, nil
}

func (s *Store) GetLightweightPartner(_ context.Context, id string) (*globalevent.LightweightPartner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.lightweight {
		if l.ID == id {
			c := *l
			return &c, nil
		}
	}
	return nil, common.NotFoundf("lightweight partner %s", id)
}

func (s *Store) CreateLightweightPartner(_ context.Context, p *globalevent.LightweightPartner) error {
	stored := *p
	stored.IsLightweight = true
	return s.write(func() error {
		for _, l := range s.lightweight {
			if l.ID == stored.ID {
				return common.Duplicatef("lightweight partner id %s", stored.ID)
			}
		}
		s.lightweight = append(s.lightweight, &stored)
		return nil
	})
}
