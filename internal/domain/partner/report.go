package partner

import (
	"time"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
)

// QuarterlyReport links to a partner's quarterly report document
type QuarterlyReport struct {
	ID         string     `json:"id"`
	PartnerID  string     `json:"partnerId"`
	ReportDate string     `json:"reportDate"`
	Link       string     `json:"link"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"`
}

func (r QuarterlyReport) ItemID() string          { return r.ID }
func (r QuarterlyReport) DeletedTime() *time.Time { return r.DeletedAt }

func (r QuarterlyReport) WithID(id string) QuarterlyReport {
	r.ID = id
	return r
}

func (r QuarterlyReport) WithPartnerID(id string) QuarterlyReport {
	r.PartnerID = id
	r.DeletedAt = common.CloneTime(r.DeletedAt)
	return r
}

func (r QuarterlyReport) WithDeletedAt(at *time.Time) QuarterlyReport {
	r.DeletedAt = common.CloneTime(at)
	return r
}

// MonthlyCheckIn records a monthly call with the partner
type MonthlyCheckIn struct {
	ID          string     `json:"id"`
	PartnerID   string     `json:"partnerId"`
	CheckInDate string     `json:"checkInDate"`
	Notes       string     `json:"notes,omitempty"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

func (m MonthlyCheckIn) ItemID() string          { return m.ID }
func (m MonthlyCheckIn) DeletedTime() *time.Time { return m.DeletedAt }

func (m MonthlyCheckIn) WithID(id string) MonthlyCheckIn {
	m.ID = id
	return m
}

func (m MonthlyCheckIn) WithPartnerID(id string) MonthlyCheckIn {
	m.PartnerID = id
	m.DeletedAt = common.CloneTime(m.DeletedAt)
	return m
}

func (m MonthlyCheckIn) WithDeletedAt(at *time.Time) MonthlyCheckIn {
	m.DeletedAt = common.CloneTime(at)
	return m
}
