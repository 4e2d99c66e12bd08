package postgres

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
	"github.com/gravadigital/partnerships-api/internal/logger"
	"github.com/gravadigital/partnerships-api/internal/storage/migrations"
)

// LightweightPartnerRepository implements globalevent.LightweightRepository
type LightweightPartnerRepository struct {
	db  *gorm.DB
	log *log.Logger
}

func NewLightweightPartnerRepository(db *gorm.DB) *LightweightPartnerRepository {
	return &LightweightPartnerRepository{
		db:  db,
		log: logger.Repository("lightweight_partner"),
	}
}

func (r *LightweightPartnerRepository) ListLightweightPartners(ctx context.Context) ([]*globalevent.LightweightPartner, error) {
	var rows []migrations.LightweightPartner
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		r.log.Error("Failed to list lightweight partners", "error", err)
		return nil, translate(err, "list lightweight partners")
	}
	return fromRows(rows, lightweightFromRow), nil
}

func (r *LightweightPartnerRepository) GetLightweightPartner(ctx context.Context, id string) (*globalevent.LightweightPartner, error) {
	var row migrations.LightweightPartner
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err, "lightweight partner %s", id)
	}
	return lightweightFromRow(row), nil
}

func (r *LightweightPartnerRepository) CreateLightweightPartner(ctx context.Context, p *globalevent.LightweightPartner) error {
	row := migrations.LightweightPartner{
		ID:      p.ID,
		Name:    p.Name,
		Email:   p.Email,
		Company: p.Company,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&migrations.LightweightPartner{}).Where("id = ?", p.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return common.Duplicatef("lightweight partner id %s", p.ID)
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		r.log.Error("Failed to create lightweight partner", "id", p.ID, "error", err)
		return translate(err, "create lightweight partner %s", p.ID)
	}

	r.log.Info("Lightweight partner created", "id", p.ID, "name", p.Name)
	return nil
}
