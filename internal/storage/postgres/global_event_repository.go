package postgres

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
	"github.com/gravadigital/partnerships-api/internal/logger"
	"github.com/gravadigital/partnerships-api/internal/storage/migrations"
)

// GlobalEventRepository implements globalevent.Repository using GORM
type GlobalEventRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewGlobalEventRepository creates a new global event repository
func NewGlobalEventRepository(db *gorm.DB) *GlobalEventRepository {
	return &GlobalEventRepository{
		db:  db,
		log: logger.Repository("global_event"),
	}
}

func (r *GlobalEventRepository) ListGlobalEvents(ctx context.Context) ([]*globalevent.GlobalEvent, error) {
	var rows []migrations.GlobalEvent
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		r.log.Error("Failed to list global events", "error", err)
		return nil, translate(err, "list global events")
	}

	r.log.Debug("Listed global events", "count", len(rows))
	return fromRows(rows, globalEventFromRow), nil
}

func (r *GlobalEventRepository) GetGlobalEvent(ctx context.Context, id string) (*globalevent.GlobalEvent, error) {
	r.log.Debug("Retrieving global event", "global_event_id", id)

	var row migrations.GlobalEvent
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err, "global event %s", id)
	}
	return globalEventFromRow(row), nil
}

func (r *GlobalEventRepository) CreateGlobalEvent(ctx context.Context, e *globalevent.GlobalEvent) error {
	row := globalEventToRow(e)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&migrations.GlobalEvent{}).Where("id = ?", e.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return common.Duplicatef("global event id %s", e.ID)
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		r.log.Error("Failed to create global event", "global_event_id", e.ID, "error", err)
		return translate(err, "create global event %s", e.ID)
	}

	r.log.Info("Global event created", "global_event_id", e.ID, "name", e.EventName)
	return nil
}

// SaveGlobalEvent replaces the stored row, invitations included.
func (r *GlobalEventRepository) SaveGlobalEvent(ctx context.Context, e *globalevent.GlobalEvent) error {
	row := globalEventToRow(e)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&migrations.GlobalEvent{}).Where("id = ?", e.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return common.NotFoundf("global event %s", e.ID)
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		r.log.Error("Failed to save global event", "global_event_id", e.ID, "error", err)
		return translate(err, "save global event %s", e.ID)
	}

	r.log.Info("Global event saved", "global_event_id", e.ID, "invitations", len(e.Invitations))
	return nil
}

func (r *GlobalEventRepository) SetGlobalEventDeletedAt(ctx context.Context, id string, at *time.Time) error {
	var value any
	if at != nil {
		value = at.UTC()
	}
	res := r.db.WithContext(ctx).Model(&migrations.GlobalEvent{}).Where("id = ?", id).Update("deleted_at", value)
	if res.Error != nil {
		r.log.Error("Failed to set global event deletedAt", "global_event_id", id, "error", res.Error)
		return translate(res.Error, "global event %s", id)
	}
	if res.RowsAffected == 0 {
		return common.NotFoundf("global event %s", id)
	}
	return nil
}

// DeleteGlobalEvent removes the row. Absent ids succeed.
func (r *GlobalEventRepository) DeleteGlobalEvent(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&migrations.GlobalEvent{}).Error; err != nil {
		r.log.Error("Failed to delete global event", "global_event_id", id, "error", err)
		return translate(err, "delete global event %s", id)
	}

	r.log.Info("Global event permanently deleted", "global_event_id", id)
	return nil
}

func (r *GlobalEventRepository) DeleteSoftDeletedGlobalEvents(ctx context.Context) (int, error) {
	res := r.db.WithContext(ctx).Where("deleted_at IS NOT NULL").Delete(&migrations.GlobalEvent{})
	if res.Error != nil {
		r.log.Error("Failed to empty global event recycle bin", "error", res.Error)
		return 0, translate(res.Error, "delete soft-deleted global events")
	}

	r.log.Info("Soft-deleted global events purged", "count", res.RowsAffected)
	return int(res.RowsAffected), nil
}
