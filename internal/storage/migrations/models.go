package migrations

import (
	"time"

	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
)

// Row models for the relational backends. Soft deletion is a plain nullable
// column so the recycle bin can read deleted rows.

// Partner is the partners table
type Partner struct {
	ID                   string  `gorm:"primaryKey;size:64"`
	Name                 string  `gorm:"not null"`
	StartDate            string  `gorm:"size:10"`
	EndDate              string  `gorm:"size:10"`
	Duration             string
	CommissionClient     float64 `gorm:"not null;default:0"`
	CommissionConsulting float64 `gorm:"not null;default:0"`
	IsActive             bool    `gorm:"not null;default:true"`
	Type                 string  `gorm:"size:32;not null"`
	CompanyHubspotURL    string
	ContactName          string
	ContactEmail         string
	ContactHubspotURL    string
	ServicesSummary      string     `gorm:"type:text"`
	Slug                 string     `gorm:"size:255;uniqueIndex;not null"`
	DeletedAt            *time.Time `gorm:"index"`
	CreatedAt            time.Time  `gorm:"autoCreateTime"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime"`
}

func (Partner) TableName() string {
	return "partners"
}

// Introduction is the introductions table
type Introduction struct {
	ID             string `gorm:"primaryKey;size:64"`
	PartnerID      string `gorm:"size:64;not null"`
	Position       int    `gorm:"not null;default:0"`
	Date           string `gorm:"size:10"`
	ContactName    string
	Company        string
	Status         string `gorm:"size:32;not null"`
	ContractSigned bool   `gorm:"not null;default:false"`
	DeletedAt      *time.Time
}

func (Introduction) TableName() string {
	return "introductions"
}

// Event is the partner_events table. Its name avoids any clash with the
// global_events table.
type Event struct {
	ID                 string `gorm:"primaryKey;size:64"`
	PartnerID          string `gorm:"size:64;not null"`
	Position           int    `gorm:"not null;default:0"`
	ProposalDate       string `gorm:"size:10"`
	EventDate          string `gorm:"size:10"`
	EventName          string
	EventLocation      string
	Status             string `gorm:"size:32;not null"`
	Attended           bool   `gorm:"not null;default:false"`
	GlobalEventID      string `gorm:"size:64"`
	IsSyncedFromGlobal bool   `gorm:"not null;default:false"`
	DeletedAt          *time.Time
}

func (Event) TableName() string {
	return "partner_events"
}

// Publication is the publications table
type Publication struct {
	ID              string `gorm:"primaryKey;size:64"`
	PartnerID       string `gorm:"size:64;not null"`
	Position        int    `gorm:"not null;default:0"`
	PublicationDate string `gorm:"size:10"`
	Platform        string
	Links           []string `gorm:"serializer:json;type:text"`
	Description     string   `gorm:"type:text"`
	StatsReportDate string   `gorm:"size:10"`
	StatsReportURL  string
	ScreenshotURLs  []string `gorm:"serializer:json;type:text"`
	LastUpdated     time.Time
	DeletedAt       *time.Time
}

func (Publication) TableName() string {
	return "publications"
}

// QuarterlyReport is the quarterly_reports table
type QuarterlyReport struct {
	ID         string `gorm:"primaryKey;size:64"`
	PartnerID  string `gorm:"size:64;not null"`
	Position   int    `gorm:"not null;default:0"`
	ReportDate string `gorm:"size:10"`
	Link       string
	DeletedAt  *time.Time
}

func (QuarterlyReport) TableName() string {
	return "quarterly_reports"
}

// MonthlyCheckIn is the monthly_check_ins table
type MonthlyCheckIn struct {
	ID          string `gorm:"primaryKey;size:64"`
	PartnerID   string `gorm:"size:64;not null"`
	Position    int    `gorm:"not null;default:0"`
	CheckInDate string `gorm:"size:10"`
	Notes       string `gorm:"type:text"`
	DeletedAt   *time.Time
}

func (MonthlyCheckIn) TableName() string {
	return "monthly_check_ins"
}

// GlobalEvent is the global_events table. Invitations are embedded as JSON.
type GlobalEvent struct {
	ID            string `gorm:"primaryKey;size:64"`
	EventName     string `gorm:"not null"`
	EventDate     string `gorm:"size:10"`
	EventLocation string
	Description   string                   `gorm:"type:text"`
	Invitations   []globalevent.Invitation `gorm:"serializer:json;type:text"`
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time `gorm:"index"`
}

func (GlobalEvent) TableName() string {
	return "global_events"
}

// LightweightPartner is the lightweight_partners table
type LightweightPartner struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"not null"`
	Email     string
	Company   string
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (LightweightPartner) TableName() string {
	return "lightweight_partners"
}

// SchemaMigration records an applied migration
type SchemaMigration struct {
	ID        string    `gorm:"primaryKey;size:10"`
	Name      string    `gorm:"size:255;not null"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

// AllModels returns every table model in creation order
func AllModels() []any {
	return []any{
		&Partner{},
		&Introduction{},
		&Event{},
		&Publication{},
		&QuarterlyReport{},
		&MonthlyCheckIn{},
		&GlobalEvent{},
		&LightweightPartner{},
	}
}

// ChildModels returns the models of the tables owned by a partner row
func ChildModels() []any {
	return []any{
		&Introduction{},
		&Event{},
		&Publication{},
		&QuarterlyReport{},
		&MonthlyCheckIn{},
	}
}

// ChildTables lists the tables owned by a partner row
func ChildTables() []string {
	return []string{
		Introduction{}.TableName(),
		Event{}.TableName(),
		Publication{}.TableName(),
		QuarterlyReport{}.TableName(),
		MonthlyCheckIn{}.TableName(),
	}
}
