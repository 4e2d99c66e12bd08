package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
	"github.com/gravadigital/partnerships-api/internal/logger"
	"github.com/gravadigital/partnerships-api/internal/validation"
)

// GlobalEventService maneja los eventos globales y la sincronización de invitaciones
type GlobalEventService struct {
	events      globalevent.Repository
	lightweight globalevent.LightweightRepository
	partners    partner.Repository
	validator   validation.GlobalEventValidation
	log         *log.Logger
	now         Clock
}

// NewGlobalEventService crea una nueva instancia del servicio de eventos globales
func NewGlobalEventService(events globalevent.Repository, lightweight globalevent.LightweightRepository, partners partner.Repository) *GlobalEventService {
	return &GlobalEventService{
		events:      events,
		lightweight: lightweight,
		partners:    partners,
		validator:   validation.GlobalEventValidation{},
		log:         logger.Service("global_event"),
		now:         utcNow,
	}
}

// CreateGlobalEventRequest representa una solicitud para crear un evento global.
// ID is optional; a client that sets it can retry a create safely, the
// second attempt fails with a duplicate key instead of adding another event.
type CreateGlobalEventRequest struct {
	ID            string                   `json:"id,omitempty"`
	EventName     string                   `json:"eventName"`
	EventDate     string                   `json:"eventDate,omitempty"`
	EventLocation string                   `json:"eventLocation,omitempty"`
	Description   string                   `json:"description,omitempty"`
	Invitations   []globalevent.Invitation `json:"invitations,omitempty"`
}

// UpdateInvitationsRequest carries a full invitation list and, optionally, a
// brand-new lightweight invitee referenced by it.
type UpdateInvitationsRequest struct {
	Invitations        []globalevent.Invitation        `json:"invitations"`
	LightweightPartner *globalevent.LightweightPartner `json:"lightweightPartner,omitempty"`
}

// SyncReport describes what an invitation update wrote
type SyncReport struct {
	GlobalEventID string   `json:"globalEventId"`
	Changed       int      `json:"changed"`
	Synced        []string `json:"synced"`
	Skipped       []string `json:"skipped"`
	Failed        []string `json:"failed"`
	CreatedEvents []string `json:"createdEvents"`
	UpdatedEvents []string `json:"updatedEvents"`
}

func newSyncReport(id string) *SyncReport {
	return &SyncReport{
		GlobalEventID: id,
		Synced:        []string{},
		Skipped:       []string{},
		Failed:        []string{},
		CreatedEvents: []string{},
		UpdatedEvents: []string{},
	}
}

// List returns the global events of the given view
func (s *GlobalEventService) List(ctx context.Context, view common.View) ([]*globalevent.GlobalEvent, error) {
	all, err := s.events.ListGlobalEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list global events: %w", err)
	}
	out := make([]*globalevent.GlobalEvent, 0, len(all))
	for _, e := range all {
		if view.Includes(e.DeletedAt) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *GlobalEventService) Get(ctx context.Context, id string) (*globalevent.GlobalEvent, error) {
	e, err := s.events.GetGlobalEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get global event: %w", err)
	}
	return e, nil
}

// Create stores a new event. Initial invitations are synced like any later
// update. When that sync fails the event is already stored, so the created
// event is returned along with the error and the report.
func (s *GlobalEventService) Create(ctx context.Context, req CreateGlobalEventRequest) (*globalevent.GlobalEvent, *SyncReport, error) {
	e := globalevent.NewGlobalEvent(req.EventName, s.now())
	e.EventDate = req.EventDate
	e.EventLocation = req.EventLocation
	e.Description = req.Description
	if req.ID != "" {
		if err := validation.ValidateID(req.ID, "id"); err != nil {
			return nil, nil, err
		}
		e.ID = req.ID
	}

	if err := s.validator.ValidateDetails(e); err != nil {
		return nil, nil, err
	}
	if err := s.validator.ValidateInvitations(req.Invitations); err != nil {
		return nil, nil, err
	}

	if err := s.events.CreateGlobalEvent(ctx, e); err != nil {
		return nil, nil, fmt.Errorf("create global event: %w", err)
	}
	s.log.Info("Global event created", "global_event_id", e.ID, "name", e.EventName)

	if len(req.Invitations) == 0 {
		return e, newSyncReport(e.ID), nil
	}

	report, err := s.UpdateInvitations(ctx, e.ID, UpdateInvitationsRequest{Invitations: req.Invitations})
	if err != nil {
		return e, report, err
	}
	created, err := s.Get(ctx, e.ID)
	if err != nil {
		return e, report, err
	}
	return created, report, nil
}

// UpdateDetails changes event-level metadata and refreshes the copy of it
// held by every mirrored partner event.
func (s *GlobalEventService) UpdateDetails(ctx context.Context, id string, patch globalevent.DetailsPatch) (*globalevent.GlobalEvent, error) {
	if patch.IsEmpty() {
		return nil, common.NewValidationError("", "patch must set at least one field")
	}

	e, err := s.events.GetGlobalEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get global event: %w", err)
	}

	patch.Apply(e)
	if err := s.validator.ValidateDetails(e); err != nil {
		return nil, err
	}
	now := s.now()
	e.UpdatedAt = &now

	if err := s.events.SaveGlobalEvent(ctx, e); err != nil {
		return nil, fmt.Errorf("save global event: %w", err)
	}

	var errs []error
	for _, inv := range e.Invitations {
		if err := s.refreshPartner(ctx, e, inv.PartnerID); err != nil {
			errs = append(errs, fmt.Errorf("partner %s: %w", inv.PartnerID, err))
		}
	}
	if len(errs) > 0 {
		return e, fmt.Errorf("refresh mirrored events: %w", errors.Join(errs...))
	}

	s.log.Info("Global event details updated", "global_event_id", id)
	return e, nil
}

func (s *GlobalEventService) refreshPartner(ctx context.Context, e *globalevent.GlobalEvent, partnerID string) error {
	exists, err := s.partners.PartnerExists(ctx, partnerID)
	if err != nil || !exists {
		return err
	}
	d, err := s.partners.GetPartnership(ctx, partnerID)
	if err != nil {
		return err
	}
	events, ok := globalevent.RefreshDetails(d.Events, e)
	if !ok {
		return nil
	}
	return s.partners.ReplaceEvents(ctx, partnerID, events)
}

// UpdateInvitations replaces the invitation list of an event and mirrors
// every changed invitation into the invited partner's events.
//
// Partner collections are written first, one independent write per partner.
// The event row is saved only once every partner write succeeded, so a
// failed call can be retried and re-diffs against the old list.
func (s *GlobalEventService) UpdateInvitations(ctx context.Context, id string, req UpdateInvitationsRequest) (*SyncReport, error) {
	if req.LightweightPartner != nil {
		if err := s.ensureLightweight(ctx, req.LightweightPartner); err != nil {
			return nil, err
		}
	}

	e, err := s.events.GetGlobalEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get global event: %w", err)
	}

	if err := s.validator.ValidateInvitations(req.Invitations); err != nil {
		return nil, err
	}
	next, err := s.normalizeInvitations(ctx, e, req.Invitations)
	if err != nil {
		return nil, err
	}

	report := newSyncReport(e.ID)
	changed := globalevent.ChangedInvitations(e.Invitations, next)
	report.Changed = len(changed)

	var errs []error
	for _, inv := range changed {
		tracked, err := s.partners.PartnerExists(ctx, inv.PartnerID)
		if err != nil {
			report.Failed = append(report.Failed, inv.PartnerID)
			errs = append(errs, fmt.Errorf("partner %s: %w", inv.PartnerID, err))
			continue
		}
		if !tracked {
			report.Skipped = append(report.Skipped, inv.PartnerID)
			continue
		}

		eventID, created, err := s.mirror(ctx, e, inv)
		if err != nil {
			report.Failed = append(report.Failed, inv.PartnerID)
			errs = append(errs, fmt.Errorf("partner %s: %w", inv.PartnerID, err))
			continue
		}
		report.Synced = append(report.Synced, inv.PartnerID)
		if created {
			report.CreatedEvents = append(report.CreatedEvents, eventID)
		} else {
			report.UpdatedEvents = append(report.UpdatedEvents, eventID)
		}
	}

	if len(errs) > 0 {
		s.log.Error("Invitation sync incomplete", "global_event_id", id, "failed", len(errs))
		return report, fmt.Errorf("sync invitations: %w", errors.Join(errs...))
	}

	now := s.now()
	e.Invitations = next
	e.UpdatedAt = &now
	if err := s.events.SaveGlobalEvent(ctx, e); err != nil {
		return report, fmt.Errorf("save global event: %w", err)
	}

	s.log.Info("Invitations updated",
		"global_event_id", id,
		"changed", report.Changed,
		"synced", len(report.Synced),
		"skipped", len(report.Skipped))
	return report, nil
}

func (s *GlobalEventService) mirror(ctx context.Context, e *globalevent.GlobalEvent, inv globalevent.Invitation) (string, bool, error) {
	d, err := s.partners.GetPartnership(ctx, inv.PartnerID)
	if err != nil {
		return "", false, err
	}
	events, mirrored, created := globalevent.MirrorInvitation(d.Events, e, inv)
	if err := s.partners.ReplaceEvents(ctx, inv.PartnerID, events); err != nil {
		return "", false, err
	}
	return mirrored.ID, created, nil
}

// normalizeInvitations fills the partner name snapshot and the dates the
// caller left empty.
func (s *GlobalEventService) normalizeInvitations(ctx context.Context, e *globalevent.GlobalEvent, invitations []globalevent.Invitation) ([]globalevent.Invitation, error) {
	today := common.FormatDate(s.now())
	out := make([]globalevent.Invitation, 0, len(invitations))
	for _, inv := range invitations {
		inv = inv.Clone()
		prev, hadPrev := e.Invitation(inv.PartnerID)

		if inv.PartnerName == "" {
			name, err := s.inviteeName(ctx, inv.PartnerID)
			if err != nil {
				return nil, err
			}
			inv.PartnerName = name
		}
		if inv.ProposalDate == "" && hadPrev {
			inv.ProposalDate = prev.ProposalDate
		}
		if inv.ProposalDate == "" {
			date, err := s.mirroredProposalDate(ctx, inv.PartnerID, e.ID)
			if err != nil {
				return nil, err
			}
			inv.ProposalDate = date
		}
		if inv.ProposalDate == "" {
			inv.ProposalDate = today
		}
		if inv.Status.IsResponse() && inv.ResponseDate == "" {
			if hadPrev && prev.Status == inv.Status && prev.ResponseDate != "" {
				inv.ResponseDate = prev.ResponseDate
			} else {
				inv.ResponseDate = today
			}
		}
		out = append(out, inv)
	}
	return out, nil
}

// mirroredProposalDate returns the proposal date of the partner event already
// mirrored from this global event, e.g. when a removed invitee is re-invited.
func (s *GlobalEventService) mirroredProposalDate(ctx context.Context, partnerID, globalEventID string) (string, error) {
	d, err := s.partners.GetPartnership(ctx, partnerID)
	if errors.Is(err, common.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("look up invitee %s: %w", partnerID, err)
	}
	if i := partner.FindByGlobalEvent(d.Events, globalEventID); i >= 0 {
		return d.Events[i].ProposalDate, nil
	}
	return "", nil
}

func (s *GlobalEventService) inviteeName(ctx context.Context, id string) (string, error) {
	d, err := s.partners.GetPartnership(ctx, id)
	if err == nil {
		return d.Partner.Name, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return "", fmt.Errorf("look up invitee %s: %w", id, err)
	}

	lp, err := s.lightweight.GetLightweightPartner(ctx, id)
	if err == nil {
		return lp.Name, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return "", fmt.Errorf("look up invitee %s: %w", id, err)
	}
	return "", nil
}

func (s *GlobalEventService) ensureLightweight(ctx context.Context, p *globalevent.LightweightPartner) error {
	if err := s.validator.ValidateLightweight(p); err != nil {
		return err
	}
	_, err := s.lightweight.GetLightweightPartner(ctx, p.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("look up lightweight partner: %w", err)
	}

	lp := *p
	lp.IsLightweight = true
	if err := s.lightweight.CreateLightweightPartner(ctx, &lp); err != nil {
		return fmt.Errorf("create lightweight partner: %w", err)
	}
	s.log.Info("Lightweight partner created", "id", lp.ID, "name", lp.Name)
	return nil
}

// CreateLightweightRequest representa una solicitud para crear un invitado ligero
type CreateLightweightRequest struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Company string `json:"company,omitempty"`
}

func (s *GlobalEventService) ListLightweight(ctx context.Context) ([]*globalevent.LightweightPartner, error) {
	list, err := s.lightweight.ListLightweightPartners(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lightweight partners: %w", err)
	}
	return list, nil
}

func (s *GlobalEventService) CreateLightweight(ctx context.Context, req CreateLightweightRequest) (*globalevent.LightweightPartner, error) {
	lp := globalevent.NewLightweightPartner(req.Name, req.Email, req.Company)
	if req.ID != "" {
		lp.ID = req.ID
	}
	if err := s.validator.ValidateLightweight(lp); err != nil {
		return nil, err
	}
	if err := s.lightweight.CreateLightweightPartner(ctx, lp); err != nil {
		return nil, fmt.Errorf("create lightweight partner: %w", err)
	}
	return lp, nil
}

// SoftDelete moves the event to the recycle bin. Mirrored partner events
// belong to their partners and are left untouched.
func (s *GlobalEventService) SoftDelete(ctx context.Context, id string) error {
	at := s.now()
	if err := s.events.SetGlobalEventDeletedAt(ctx, id, &at); err != nil {
		return fmt.Errorf("soft delete global event: %w", err)
	}
	return nil
}

func (s *GlobalEventService) Restore(ctx context.Context, id string) error {
	if err := s.events.SetGlobalEventDeletedAt(ctx, id, nil); err != nil {
		return fmt.Errorf("restore global event: %w", err)
	}
	return nil
}

// PermanentlyDelete removes the event. An unknown id succeeds.
func (s *GlobalEventService) PermanentlyDelete(ctx context.Context, id string) error {
	if err := s.events.DeleteGlobalEvent(ctx, id); err != nil {
		return fmt.Errorf("delete global event: %w", err)
	}
	return nil
}
