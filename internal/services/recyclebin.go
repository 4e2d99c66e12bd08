package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
	"github.com/gravadigital/partnerships-api/internal/logger"
)

// RecycleBinService agrupa todo lo que está en la papelera
type RecycleBinService struct {
	partners     partner.Repository
	globalEvents globalevent.Repository
	log          *log.Logger
}

func NewRecycleBinService(partners partner.Repository, globalEvents globalevent.Repository) *RecycleBinService {
	return &RecycleBinService{
		partners:     partners,
		globalEvents: globalEvents,
		log:          logger.Service("recycle_bin"),
	}
}

// DeletedItem is a soft-deleted child row of a live partner
type DeletedItem struct {
	PartnerID   string             `json:"partnerId"`
	PartnerName string             `json:"partnerName"`
	Collection  partner.Collection `json:"collection"`
	ItemID      string             `json:"itemId"`
	Label       string             `json:"label"`
	DeletedAt   time.Time          `json:"deletedAt"`
}

// Bin is the content of the recycle bin. Partners carry their full aggregate.
type Bin struct {
	Partners     []*partner.PartnershipData           `json:"partners"`
	Items        map[partner.Collection][]DeletedItem `json:"items"`
	GlobalEvents []*globalevent.GlobalEvent           `json:"globalEvents"`
}

// EmptyResult counts what Empty removed
type EmptyResult struct {
	Partners     int `json:"partners"`
	Items        int `json:"items"`
	GlobalEvents int `json:"globalEvents"`
}

func (s *RecycleBinService) List(ctx context.Context) (*Bin, error) {
	all, err := s.partners.ListPartnerships(ctx)
	if err != nil {
		return nil, fmt.Errorf("list partnerships: %w", err)
	}

	bin := &Bin{
		Partners:     []*partner.PartnershipData{},
		Items:        make(map[partner.Collection][]DeletedItem, len(partner.Collections())),
		GlobalEvents: []*globalevent.GlobalEvent{},
	}
	for _, c := range partner.Collections() {
		bin.Items[c] = []DeletedItem{}
	}

	for _, d := range all {
		if d.Partner.IsDeleted() {
			bin.Partners = append(bin.Partners, d)
			continue
		}
		for _, item := range deletedItems(d) {
			bin.Items[item.Collection] = append(bin.Items[item.Collection], item)
		}
	}

	events, err := s.globalEvents.ListGlobalEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list global events: %w", err)
	}
	for _, e := range events {
		if e.IsDeleted() {
			bin.GlobalEvents = append(bin.GlobalEvents, e)
		}
	}
	return bin, nil
}

// Empty purges every soft-deleted row. Deleted children of live partners are
// purged one partner at a time; failures are reported after all were tried.
func (s *RecycleBinService) Empty(ctx context.Context) (*EmptyResult, error) {
	res := &EmptyResult{}

	n, err := s.partners.DeleteSoftDeletedPartners(ctx)
	if err != nil {
		return res, fmt.Errorf("purge partners: %w", err)
	}
	res.Partners = n

	n, err = s.globalEvents.DeleteSoftDeletedGlobalEvents(ctx)
	if err != nil {
		return res, fmt.Errorf("purge global events: %w", err)
	}
	res.GlobalEvents = n

	all, err := s.partners.ListPartnerships(ctx)
	if err != nil {
		return res, fmt.Errorf("list partnerships: %w", err)
	}
	var errs []error
	for _, d := range all {
		n, err := s.purgeChildren(ctx, d)
		if err != nil {
			errs = append(errs, fmt.Errorf("partner %s: %w", d.Partner.ID, err))
			continue
		}
		res.Items += n
	}

	s.log.Info("Recycle bin emptied",
		"partners", res.Partners,
		"items", res.Items,
		"global_events", res.GlobalEvents)
	if len(errs) > 0 {
		return res, fmt.Errorf("purge items: %w", errors.Join(errs...))
	}
	return res, nil
}

func (s *RecycleBinService) purgeChildren(ctx context.Context, d *partner.PartnershipData) (int, error) {
	id := d.Partner.ID
	total := 0
	var err error
	if n := len(common.Deleted(d.Introductions)); n > 0 {
		total += n
		err = errors.Join(err, s.partners.ReplaceIntroductions(ctx, id, common.Active(d.Introductions)))
	}
	if n := len(common.Deleted(d.Events)); n > 0 {
		total += n
		err = errors.Join(err, s.partners.ReplaceEvents(ctx, id, common.Active(d.Events)))
	}
	if n := len(common.Deleted(d.Publications)); n > 0 {
		total += n
		err = errors.Join(err, s.partners.ReplacePublications(ctx, id, common.Active(d.Publications)))
	}
	if n := len(common.Deleted(d.QuarterlyReports)); n > 0 {
		total += n
		err = errors.Join(err, s.partners.ReplaceQuarterlyReports(ctx, id, common.Active(d.QuarterlyReports)))
	}
	if n := len(common.Deleted(d.MonthlyCheckIns)); n > 0 {
		total += n
		err = errors.Join(err, s.partners.ReplaceMonthlyCheckIns(ctx, id, common.Active(d.MonthlyCheckIns)))
	}
	if err != nil {
		return 0, err
	}
	return total, nil
}

func deletedItems(d *partner.PartnershipData) []DeletedItem {
	var out []DeletedItem
	add := func(c partner.Collection, id, label string, at *time.Time) {
		out = append(out, DeletedItem{
			PartnerID:   d.Partner.ID,
			PartnerName: d.Partner.Name,
			Collection:  c,
			ItemID:      id,
			Label:       label,
			DeletedAt:   *at,
		})
	}
	for _, i := range common.Deleted(d.Introductions) {
		add(partner.CollectionIntroductions, i.ID, i.ContactName, i.DeletedAt)
	}
	for _, e := range common.Deleted(d.Events) {
		add(partner.CollectionEvents, e.ID, e.EventName, e.DeletedAt)
	}
	for _, p := range common.Deleted(d.Publications) {
		add(partner.CollectionPublications, p.ID, p.PublicationDate, p.DeletedAt)
	}
	for _, r := range common.Deleted(d.QuarterlyReports) {
		add(partner.CollectionQuarterlyReports, r.ID, r.ReportDate, r.DeletedAt)
	}
	for _, m := range common.Deleted(d.MonthlyCheckIns) {
		add(partner.CollectionMonthlyCheckIns, m.ID, m.CheckInDate, m.DeletedAt)
	}
	return out
}
