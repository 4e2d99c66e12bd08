package partner

import (
	"slices"
	"time"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
)

// Publication is content published by or about a partner.
type Publication struct {
	ID              string     `json:"id"`
	PartnerID       string     `json:"partnerId"`
	PublicationDate string     `json:"publicationDate"`
	Platform        string     `json:"platform"`
	Links           []string   `json:"links"`
	Description     string     `json:"description,omitempty"`
	StatsReportDate string     `json:"statsReportDate,omitempty"`
	StatsReportURL  string     `json:"statsReportUrl,omitempty"`
	ScreenshotURLs  []string   `json:"screenshotUrls,omitempty"`
	LastUpdated     time.Time  `json:"lastUpdated"`
	DeletedAt       *time.Time `json:"deletedAt,omitempty"`
}

func (p Publication) ItemID() string          { return p.ID }
func (p Publication) DeletedTime() *time.Time { return p.DeletedAt }

func (p Publication) WithID(id string) Publication {
	p.ID = id
	return p
}

func (p Publication) WithPartnerID(id string) Publication {
	p = p.Clone()
	p.PartnerID = id
	return p
}

func (p Publication) WithDeletedAt(at *time.Time) Publication {
	p = p.Clone()
	p.DeletedAt = common.CloneTime(at)
	return p
}

// Clone returns a copy that shares no slices with p
func (p Publication) Clone() Publication {
	p.Links = slices.Clone(p.Links)
	p.ScreenshotURLs = slices.Clone(p.ScreenshotURLs)
	p.DeletedAt = common.CloneTime(p.DeletedAt)
	return p
}

// SameContent reports whether p and o differ only in lastUpdated and the
// owning partner id.
func (p Publication) SameContent(o Publication) bool {
	return p.ID == o.ID &&
		p.PublicationDate == o.PublicationDate &&
		p.Platform == o.Platform &&
		slices.Equal(p.Links, o.Links) &&
		p.Description == o.Description &&
		p.StatsReportDate == o.StatsReportDate &&
		p.StatsReportURL == o.StatsReportURL &&
		slices.Equal(p.ScreenshotURLs, o.ScreenshotURLs) &&
		sameTime(p.DeletedAt, o.DeletedAt)
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
