package postgres

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
	"github.com/gravadigital/partnerships-api/internal/logger"
	"github.com/gravadigital/partnerships-api/internal/storage/migrations"
)

// PartnerRepository implements partner.Repository using GORM
type PartnerRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPartnerRepository creates a new partner repository
func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{
		db:  db,
		log: logger.Repository("partner"),
	}
}

func (r *PartnerRepository) ListPartnerships(ctx context.Context) ([]*partner.PartnershipData, error) {
	db := r.db.WithContext(ctx)

	var rows []migrations.Partner
	if err := db.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		r.log.Error("Failed to list partners", "error", err)
		return nil, translate(err, "list partners")
	}

	byID := make(map[string]*partner.PartnershipData, len(rows))
	out := make([]*partner.PartnershipData, 0, len(rows))
	for _, row := range rows {
		d := partner.New(partnerFromRow(row))
		byID[row.ID] = d
		out = append(out, d)
	}

	var intros []migrations.Introduction
	var events []migrations.Event
	var pubs []migrations.Publication
	var reports []migrations.QuarterlyReport
	var checkIns []migrations.MonthlyCheckIn
	for _, q := range []struct {
		name string
		dest any
	}{
		{"introductions", &intros},
		{"events", &events},
		{"publications", &pubs},
		{"quarterly reports", &reports},
		{"monthly check-ins", &checkIns},
	} {
		if err := db.Order("partner_id ASC, position ASC").Find(q.dest).Error; err != nil {
			r.log.Error("Failed to list collection", "collection", q.name, "error", err)
			return nil, translate(err, "list %s", q.name)
		}
	}

	for _, row := range intros {
		if d, ok := byID[row.PartnerID]; ok {
			d.Introductions = append(d.Introductions, introductionFromRow(row))
		}
	}
	for _, row := range events {
		if d, ok := byID[row.PartnerID]; ok {
			d.Events = append(d.Events, eventFromRow(row))
		}
	}
	for _, row := range pubs {
		if d, ok := byID[row.PartnerID]; ok {
			d.Publications = append(d.Publications, publicationFromRow(row))
		}
	}
	for _, row := range reports {
		if d, ok := byID[row.PartnerID]; ok {
			d.QuarterlyReports = append(d.QuarterlyReports, quarterlyReportFromRow(row))
		}
	}
	for _, row := range checkIns {
		if d, ok := byID[row.PartnerID]; ok {
			d.MonthlyCheckIns = append(d.MonthlyCheckIns, monthlyCheckInFromRow(row))
		}
	}

	r.log.Debug("Listed partnerships", "count", len(out))
	return out, nil
}

func (r *PartnerRepository) GetPartnership(ctx context.Context, id string) (*partner.PartnershipData, error) {
	r.log.Debug("Retrieving partnership", "partner_id", id)
	db := r.db.WithContext(ctx)

	var row migrations.Partner
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err, "partner %s", id)
	}
	d := partner.New(partnerFromRow(row))

	var intros []migrations.Introduction
	var events []migrations.Event
	var pubs []migrations.Publication
	var reports []migrations.QuarterlyReport
	var checkIns []migrations.MonthlyCheckIn
	for _, dest := range []any{&intros, &events, &pubs, &reports, &checkIns} {
		if err := db.Where("partner_id = ?", id).Order("position ASC").Find(dest).Error; err != nil {
			r.log.Error("Failed to load partner collections", "partner_id", id, "error", err)
			return nil, translate(err, "partner %s collections", id)
		}
	}

	d.Introductions = fromRows(intros, introductionFromRow)
	d.Events = fromRows(events, eventFromRow)
	d.Publications = fromRows(pubs, publicationFromRow)
	d.QuarterlyReports = fromRows(reports, quarterlyReportFromRow)
	d.MonthlyCheckIns = fromRows(checkIns, monthlyCheckInFromRow)
	return d, nil
}

func (r *PartnerRepository) PartnerExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&migrations.Partner{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, translate(err, "check partner %s", id)
	}
	return count > 0, nil
}

func (r *PartnerRepository) CreatePartnership(ctx context.Context, data *partner.PartnershipData) (*partner.PartnershipData, error) {
	if data == nil {
		return nil, common.NewValidationError("partner", "is required")
	}
	stored := data.Clone()
	stored.Partner.EnsureID()
	r.log.Debug("Creating partner", "partner_id", stored.Partner.ID, "name", stored.Partner.Name)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&migrations.Partner{}).Where("id = ?", stored.Partner.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return common.Duplicatef("partner id %s", stored.Partner.ID)
		}

		if stored.Partner.Slug == "" {
			var slugs []string
			if err := tx.Model(&migrations.Partner{}).Pluck("slug", &slugs).Error; err != nil {
				return err
			}
			stored.Partner.Slug = partner.MakeSlugUnique(partner.BaseSlug(stored.Partner.Name), slugs)
		} else {
			if err := tx.Model(&migrations.Partner{}).Where("slug = ?", stored.Partner.Slug).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return common.Duplicatef("partner slug %s", stored.Partner.Slug)
			}
		}

		row := partnerToRow(stored.Partner)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		stored.NormalizeAll(uuid.NewString)
		return insertChildren(tx, stored)
	})
	if err != nil {
		r.log.Error("Failed to create partner", "partner_id", stored.Partner.ID, "error", err)
		return nil, translate(err, "create partner")
	}

	r.log.Info("Partner created", "partner_id", stored.Partner.ID, "slug", stored.Partner.Slug)
	return stored, nil
}

func insertChildren(tx *gorm.DB, d *partner.PartnershipData) error {
	if err := createRows(tx, toRows(d.Introductions, introductionToRow)); err != nil {
		return err
	}
	if err := createRows(tx, toRows(d.Events, eventToRow)); err != nil {
		return err
	}
	if err := createRows(tx, toRows(d.Publications, publicationToRow)); err != nil {
		return err
	}
	if err := createRows(tx, toRows(d.QuarterlyReports, quarterlyReportToRow)); err != nil {
		return err
	}
	return createRows(tx, toRows(d.MonthlyCheckIns, monthlyCheckInToRow))
}

func createRows[R any](tx *gorm.DB, rows []R) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func (r *PartnerRepository) UpdatePartner(ctx context.Context, id string, patch partner.Patch) (*partner.Partner, error) {
	var updated partner.Partner
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row migrations.Partner
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			return err
		}

		if patch.Slug != nil && *patch.Slug != row.Slug {
			var count int64
			if err := tx.Model(&migrations.Partner{}).Where("slug = ? AND id <> ?", *patch.Slug, id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return common.Duplicatef("partner slug %s", *patch.Slug)
			}
		}

		updated = partnerFromRow(row)
		patch.Apply(&updated)

		next := partnerToRow(updated)
		next.CreatedAt = row.CreatedAt
		return tx.Save(&next).Error
	})
	if err != nil {
		r.log.Error("Failed to update partner", "partner_id", id, "error", err)
		return nil, translate(err, "update partner %s", id)
	}

	r.log.Info("Partner updated", "partner_id", id)
	return &updated, nil
}

// replaceChildren deletes every row of R owned by partnerID and inserts rows
// in one transaction.
func replaceChildren[R any](ctx context.Context, r *PartnerRepository, partnerID, collection string, rows []R) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&migrations.Partner{}).Where("id = ?", partnerID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return common.NotFoundf("partner %s", partnerID)
		}
		if err := tx.Where("partner_id = ?", partnerID).Delete(new(R)).Error; err != nil {
			return err
		}
		return createRows(tx, rows)
	})
	if err != nil {
		r.log.Error("Failed to replace collection", "partner_id", partnerID, "collection", collection, "error", err)
		return translate(err, "replace %s of partner %s", collection, partnerID)
	}

	r.log.Info("Collection replaced", "partner_id", partnerID, "collection", collection, "count", len(rows))
	return nil
}

func (r *PartnerRepository) ReplaceIntroductions(ctx context.Context, partnerID string, items []partner.Introduction) error {
	items = partner.Normalize(partnerID, items, uuid.NewString)
	return replaceChildren(ctx, r, partnerID, "introductions", toRows(items, introductionToRow))
}

func (r *PartnerRepository) ReplaceEvents(ctx context.Context, partnerID string, items []partner.Event) error {
	items = partner.Normalize(partnerID, items, uuid.NewString)
	return replaceChildren(ctx, r, partnerID, "events", toRows(items, eventToRow))
}

func (r *PartnerRepository) ReplacePublications(ctx context.Context, partnerID string, items []partner.Publication) error {
	items = partner.Normalize(partnerID, items, uuid.NewString)
	return replaceChildren(ctx, r, partnerID, "publications", toRows(items, publicationToRow))
}

func (r *PartnerRepository) ReplaceQuarterlyReports(ctx context.Context, partnerID string, items []partner.QuarterlyReport) error {
	items = partner.Normalize(partnerID, items, uuid.NewString)
	return replaceChildren(ctx, r, partnerID, "quarterly reports", toRows(items, quarterlyReportToRow))
}

func (r *PartnerRepository) ReplaceMonthlyCheckIns(ctx context.Context, partnerID string, items []partner.MonthlyCheckIn) error {
	items = partner.Normalize(partnerID, items, uuid.NewString)
	return replaceChildren(ctx, r, partnerID, "monthly check-ins", toRows(items, monthlyCheckInToRow))
}

func (r *PartnerRepository) SetPartnerDeletedAt(ctx context.Context, id string, at *time.Time) error {
	var value any
	if at != nil {
		value = at.UTC()
	}
	res := r.db.WithContext(ctx).Model(&migrations.Partner{}).Where("id = ?", id).Update("deleted_at", value)
	if res.Error != nil {
		r.log.Error("Failed to set partner deletedAt", "partner_id", id, "error", res.Error)
		return translate(res.Error, "partner %s", id)
	}
	if res.RowsAffected == 0 {
		return common.NotFoundf("partner %s", id)
	}

	r.log.Info("Partner deletedAt changed", "partner_id", id, "deleted", at != nil)
	return nil
}

// DeletePartner removes the partner and its five collections. Absent ids succeed.
func (r *PartnerRepository) DeletePartner(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deletePartners(tx, []string{id})
	})
	if err != nil {
		r.log.Error("Failed to delete partner", "partner_id", id, "error", err)
		return translate(err, "delete partner %s", id)
	}

	r.log.Info("Partner permanently deleted", "partner_id", id)
	return nil
}

func (r *PartnerRepository) DeleteSoftDeletedPartners(ctx context.Context) (int, error) {
	var ids []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&migrations.Partner{}).Where("deleted_at IS NOT NULL").Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return deletePartners(tx, ids)
	})
	if err != nil {
		r.log.Error("Failed to empty partner recycle bin", "error", err)
		return 0, translate(err, "delete soft-deleted partners")
	}

	r.log.Info("Soft-deleted partners purged", "count", len(ids))
	return len(ids), nil
}

func deletePartners(tx *gorm.DB, ids []string) error {
	for _, model := range migrations.ChildModels() {
		if err := tx.Where("partner_id IN ?", ids).Delete(model).Error; err != nil {
			return err
		}
	}
	return tx.Where("id IN ?", ids).Delete(&migrations.Partner{}).Error
}
