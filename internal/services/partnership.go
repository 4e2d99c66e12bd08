package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
	"github.com/gravadigital/partnerships-api/internal/logger"
	"github.com/gravadigital/partnerships-api/internal/validation"
)

// PartnershipService maneja el agregado socio + colecciones
type PartnershipService struct {
	repo      partner.Repository
	validator validation.PartnerValidation
	log       *log.Logger
	now       Clock
}

// NewPartnershipService crea una nueva instancia del servicio de socios
func NewPartnershipService(repo partner.Repository) *PartnershipService {
	return &PartnershipService{
		repo:      repo,
		validator: validation.PartnerValidation{},
		log:       logger.Service("partnership"),
		now:       utcNow,
	}
}

// ListPartnerships returns the partners of the given view. The active view
// also hides soft-deleted children.
func (s *PartnershipService) ListPartnerships(ctx context.Context, view common.View) ([]*partner.PartnershipData, error) {
	all, err := s.repo.ListPartnerships(ctx)
	if err != nil {
		return nil, fmt.Errorf("list partnerships: %w", err)
	}

	out := make([]*partner.PartnershipData, 0, len(all))
	for _, d := range all {
		if !view.Includes(d.Partner.DeletedAt) {
			continue
		}
		if view == common.ViewActive {
			d = d.ActiveItems()
		}
		out = append(out, d)
	}
	return out, nil
}

// GetPartnership looks a partner up by id, then by slug.
func (s *PartnershipService) GetPartnership(ctx context.Context, ref string, view common.View) (*partner.PartnershipData, error) {
	d, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if view == common.ViewActive {
		return d.ActiveItems(), nil
	}
	return d, nil
}

func (s *PartnershipService) resolve(ctx context.Context, ref string) (*partner.PartnershipData, error) {
	if err := validation.ValidateRequired(ref, "id"); err != nil {
		return nil, err
	}

	d, err := s.repo.GetPartnership(ctx, ref)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("get partnership: %w", err)
	}

	all, err := s.repo.ListPartnerships(ctx)
	if err != nil {
		return nil, fmt.Errorf("get partnership: %w", err)
	}
	for _, d := range all {
		if d.Partner.Slug == ref {
			return d, nil
		}
	}
	return nil, common.NotFoundf("partner %s", ref)
}

// CreatePartnership validates and stores a partner with any supplied children
func (s *PartnershipService) CreatePartnership(ctx context.Context, req *partner.PartnershipData) (*partner.PartnershipData, error) {
	if req == nil {
		return nil, common.NewValidationError("partner", "is required")
	}
	d := req.Clone()
	d.Partner.DeletedAt = nil

	if err := s.validator.ValidatePartner(&d.Partner); err != nil {
		return nil, err
	}

	var err error
	if d.Introductions, err = prepareAll(d.Introductions, s.prepareIntroduction); err != nil {
		return nil, err
	}
	if d.Events, err = prepareAll(d.Events, s.prepareEvent); err != nil {
		return nil, err
	}
	if d.Publications, err = prepareAll(d.Publications, s.preparePublication); err != nil {
		return nil, err
	}
	if d.QuarterlyReports, err = prepareAll(d.QuarterlyReports, s.prepareQuarterlyReport); err != nil {
		return nil, err
	}
	if d.MonthlyCheckIns, err = prepareAll(d.MonthlyCheckIns, s.prepareMonthlyCheckIn); err != nil {
		return nil, err
	}

	created, err := s.repo.CreatePartnership(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("create partnership: %w", err)
	}

	s.log.Info("Partnership created", "partner_id", created.Partner.ID, "slug", created.Partner.Slug)
	return created, nil
}

// UpdatePartnerStatus applies a partial update to the partner row. A name
// change keeps the slug unless the patch sets one.
func (s *PartnershipService) UpdatePartnerStatus(ctx context.Context, id string, patch partner.Patch) (*partner.Partner, error) {
	if err := s.validator.ValidatePatch(patch); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdatePartner(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update partner: %w", err)
	}
	return updated, nil
}

func (s *PartnershipService) prepareIntroduction(i partner.Introduction) (partner.Introduction, error) {
	i.SetStatus(i.Status)
	return i, s.validator.ValidateIntroduction(i)
}

func (s *PartnershipService) prepareEvent(e partner.Event) (partner.Event, error) {
	e.SetStatus(e.Status)
	return e, s.validator.ValidateEvent(e)
}

func (s *PartnershipService) preparePublication(p partner.Publication) (partner.Publication, error) {
	p = p.Clone()
	p.LastUpdated = s.now()
	return p, s.validator.ValidatePublication(p)
}

func (s *PartnershipService) prepareQuarterlyReport(r partner.QuarterlyReport) (partner.QuarterlyReport, error) {
	return r, s.validator.ValidateQuarterlyReport(r)
}

func (s *PartnershipService) prepareMonthlyCheckIn(m partner.MonthlyCheckIn) (partner.MonthlyCheckIn, error) {
	return m, s.validator.ValidateMonthlyCheckIn(m)
}

func prepareAll[T any](items []T, prepare func(T) (T, error)) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		prepared, err := prepare(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, prepared)
	}
	return out, nil
}

// saveItem replaces the item sharing its id or appends it, then writes the
// whole collection back.
func saveItem[T partner.ChildItem[T]](
	ctx context.Context,
	s *PartnershipService,
	partnerID string,
	item T,
	prepare func(T) (T, error),
	current func(*partner.PartnershipData) []T,
	replace func(context.Context, string, []T) error,
) (T, error) {
	var zero T
	item, err := prepare(item)
	if err != nil {
		return zero, err
	}

	d, err := s.repo.GetPartnership(ctx, partnerID)
	if err != nil {
		return zero, fmt.Errorf("load partnership: %w", err)
	}

	if item.ItemID() == "" {
		item = item.WithID(uuid.NewString())
	}
	item = item.WithPartnerID(partnerID)

	if err := replace(ctx, partnerID, common.Upsert(current(d), item)); err != nil {
		return zero, fmt.Errorf("save item: %w", err)
	}

	s.log.Info("Collection item saved", "partner_id", partnerID, "item_id", item.ItemID())
	return item, nil
}

func (s *PartnershipService) SaveIntroduction(ctx context.Context, partnerID string, item partner.Introduction) (partner.Introduction, error) {
	return saveItem(ctx, s, partnerID, item, s.prepareIntroduction,
		func(d *partner.PartnershipData) []partner.Introduction { return d.Introductions },
		s.repo.ReplaceIntroductions)
}

func (s *PartnershipService) SaveEvent(ctx context.Context, partnerID string, item partner.Event) (partner.Event, error) {
	return saveItem(ctx, s, partnerID, item, s.prepareEvent,
		func(d *partner.PartnershipData) []partner.Event { return d.Events },
		s.repo.ReplaceEvents)
}

func (s *PartnershipService) SavePublication(ctx context.Context, partnerID string, item partner.Publication) (partner.Publication, error) {
	return saveItem(ctx, s, partnerID, item, s.preparePublication,
		func(d *partner.PartnershipData) []partner.Publication { return d.Publications },
		s.repo.ReplacePublications)
}

func (s *PartnershipService) SaveQuarterlyReport(ctx context.Context, partnerID string, item partner.QuarterlyReport) (partner.QuarterlyReport, error) {
	return saveItem(ctx, s, partnerID, item, s.prepareQuarterlyReport,
		func(d *partner.PartnershipData) []partner.QuarterlyReport { return d.QuarterlyReports },
		s.repo.ReplaceQuarterlyReports)
}

func (s *PartnershipService) SaveMonthlyCheckIn(ctx context.Context, partnerID string, item partner.MonthlyCheckIn) (partner.MonthlyCheckIn, error) {
	return saveItem(ctx, s, partnerID, item, s.prepareMonthlyCheckIn,
		func(d *partner.PartnershipData) []partner.MonthlyCheckIn { return d.MonthlyCheckIns },
		s.repo.ReplaceMonthlyCheckIns)
}

// replaceAll validates items and replaces the whole collection
func replaceAll[T any](
	ctx context.Context,
	s *PartnershipService,
	partnerID, collection string,
	items []T,
	prepare func(T) (T, error),
	replace func(context.Context, string, []T) error,
) ([]T, error) {
	prepared, err := prepareAll(items, prepare)
	if err != nil {
		return nil, err
	}
	if err := replace(ctx, partnerID, prepared); err != nil {
		return nil, fmt.Errorf("replace %s: %w", collection, err)
	}
	return prepared, nil
}

func (s *PartnershipService) ReplaceIntroductions(ctx context.Context, partnerID string, items []partner.Introduction) error {
	_, err := replaceAll(ctx, s, partnerID, "introductions", items, s.prepareIntroduction, s.repo.ReplaceIntroductions)
	return err
}

func (s *PartnershipService) ReplaceEvents(ctx context.Context, partnerID string, items []partner.Event) error {
	_, err := replaceAll(ctx, s, partnerID, "events", items, s.prepareEvent, s.repo.ReplaceEvents)
	return err
}

// ReplacePublications stamps lastUpdated only on publications that are new
// or whose content changed; the rest keep their stored timestamp.
func (s *PartnershipService) ReplacePublications(ctx context.Context, partnerID string, items []partner.Publication) error {
	d, err := s.repo.GetPartnership(ctx, partnerID)
	if err != nil {
		return fmt.Errorf("load partnership: %w", err)
	}
	stored := make(map[string]partner.Publication, len(d.Publications))
	for _, p := range d.Publications {
		stored[p.ID] = p
	}

	prepare := func(p partner.Publication) (partner.Publication, error) {
		prev, ok := stored[p.ID]
		if !ok || p.ID == "" || !prev.SameContent(p) {
			return s.preparePublication(p)
		}
		p = p.Clone()
		p.LastUpdated = prev.LastUpdated
		return p, s.validator.ValidatePublication(p)
	}
	_, err = replaceAll(ctx, s, partnerID, "publications", items, prepare, s.repo.ReplacePublications)
	return err
}

func (s *PartnershipService) ReplaceQuarterlyReports(ctx context.Context, partnerID string, items []partner.QuarterlyReport) error {
	_, err := replaceAll(ctx, s, partnerID, "quarterly reports", items, s.prepareQuarterlyReport, s.repo.ReplaceQuarterlyReports)
	return err
}

func (s *PartnershipService) ReplaceMonthlyCheckIns(ctx context.Context, partnerID string, items []partner.MonthlyCheckIn) error {
	_, err := replaceAll(ctx, s, partnerID, "monthly check-ins", items, s.prepareMonthlyCheckIn, s.repo.ReplaceMonthlyCheckIns)
	return err
}

// GetPublication returns one publication of a partnership
func (s *PartnershipService) GetPublication(ctx context.Context, partnerID, publicationID string) (partner.Publication, error) {
	d, err := s.repo.GetPartnership(ctx, partnerID)
	if err != nil {
		return partner.Publication{}, fmt.Errorf("load partnership: %w", err)
	}
	i := common.FindIndex(d.Publications, publicationID)
	if i < 0 {
		return partner.Publication{}, common.NotFoundf("publication %s", publicationID)
	}
	return d.Publications[i], nil
}

// AddScreenshot appends url to a publication's screenshots
func (s *PartnershipService) AddScreenshot(ctx context.Context, partnerID, publicationID, url string) (partner.Publication, error) {
	d, err := s.repo.GetPartnership(ctx, partnerID)
	if err != nil {
		return partner.Publication{}, fmt.Errorf("load partnership: %w", err)
	}
	i := common.FindIndex(d.Publications, publicationID)
	if i < 0 {
		return partner.Publication{}, common.NotFoundf("publication %s", publicationID)
	}

	pub := d.Publications[i].Clone()
	pub.ScreenshotURLs = append(pub.ScreenshotURLs, url)
	pub.LastUpdated = s.now()
	d.Publications[i] = pub

	if err := s.repo.ReplacePublications(ctx, partnerID, d.Publications); err != nil {
		return partner.Publication{}, fmt.Errorf("save screenshot: %w", err)
	}
	return pub, nil
}
