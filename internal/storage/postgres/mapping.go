package postgres

import (
	"time"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
	"github.com/gravadigital/partnerships-api/internal/storage/migrations"
)

func partnerToRow(p partner.Partner) migrations.Partner {
	row := migrations.Partner{
		ID:                   p.ID,
		Name:                 p.Name,
		StartDate:            p.StartDate,
		EndDate:              p.EndDate,
		Duration:             p.Duration,
		CommissionClient:     p.CommissionClient,
		CommissionConsulting: p.CommissionConsulting,
		IsActive:             p.IsActive,
		Type:                 string(p.Type),
		CompanyHubspotURL:    p.CompanyHubspotURL,
		ServicesSummary:      p.ServicesSummary,
		Slug:                 p.Slug,
		DeletedAt:            common.CloneTime(p.DeletedAt),
	}
	if p.ContactPerson != nil {
		row.ContactName = p.ContactPerson.Name
		row.ContactEmail = p.ContactPerson.Email
		row.ContactHubspotURL = p.ContactPerson.HubspotURL
	}
	return row
}

func partnerFromRow(row migrations.Partner) partner.Partner {
	p := partner.Partner{
		ID:                   row.ID,
		Name:                 row.Name,
		StartDate:            row.StartDate,
		EndDate:              row.EndDate,
		Duration:             row.Duration,
		CommissionClient:     row.CommissionClient,
		CommissionConsulting: row.CommissionConsulting,
		IsActive:             row.IsActive,
		Type:                 partner.Type(row.Type),
		CompanyHubspotURL:    row.CompanyHubspotURL,
		ServicesSummary:      row.ServicesSummary,
		Slug:                 row.Slug,
		DeletedAt:            utc(row.DeletedAt),
	}
	contact := partner.ContactPerson{
		Name:       row.ContactName,
		Email:      row.ContactEmail,
		HubspotURL: row.ContactHubspotURL,
	}
	if !contact.IsZero() {
		p.ContactPerson = &contact
	}
	return p
}

func introductionToRow(i partner.Introduction, pos int) migrations.Introduction {
	return migrations.Introduction{
		ID:             i.ID,
		PartnerID:      i.PartnerID,
		Position:       pos,
		Date:           i.Date,
		ContactName:    i.ContactName,
		Company:        i.Company,
		Status:         string(i.Status),
		ContractSigned: i.ContractSigned,
		DeletedAt:      common.CloneTime(i.DeletedAt),
	}
}

func introductionFromRow(row migrations.Introduction) partner.Introduction {
	return partner.Introduction{
		ID:             row.ID,
		PartnerID:      row.PartnerID,
		Date:           row.Date,
		ContactName:    row.ContactName,
		Company:        row.Company,
		Status:         partner.IntroductionStatus(row.Status),
		ContractSigned: row.ContractSigned,
		DeletedAt:      utc(row.DeletedAt),
	}
}

func eventToRow(e partner.Event, pos int) migrations.Event {
	return migrations.Event{
		ID:                 e.ID,
		PartnerID:          e.PartnerID,
		Position:           pos,
		ProposalDate:       e.ProposalDate,
		EventDate:          e.EventDate,
		EventName:          e.EventName,
		EventLocation:      e.EventLocation,
		Status:             string(e.Status),
		Attended:           e.Attended,
		GlobalEventID:      e.GlobalEventID,
		IsSyncedFromGlobal: e.IsSyncedFromGlobal,
		DeletedAt:          common.CloneTime(e.DeletedAt),
	}
}

func eventFromRow(row migrations.Event) partner.Event {
	return partner.Event{
		ID:                 row.ID,
		PartnerID:          row.PartnerID,
		ProposalDate:       row.ProposalDate,
		EventDate:          row.EventDate,
		EventName:          row.EventName,
		EventLocation:      row.EventLocation,
		Status:             partner.EventStatus(row.Status),
		Attended:           row.Attended,
		GlobalEventID:      row.GlobalEventID,
		IsSyncedFromGlobal: row.IsSyncedFromGlobal,
		DeletedAt:          utc(row.DeletedAt),
	}
}

func publicationToRow(p partner.Publication, pos int) migrations.Publication {
	c := p.Clone()
	return migrations.Publication{
		ID:              c.ID,
		PartnerID:       c.PartnerID,
		Position:        pos,
		PublicationDate: c.PublicationDate,
		Platform:        c.Platform,
		Links:           c.Links,
		Description:     c.Description,
		StatsReportDate: c.StatsReportDate,
		StatsReportURL:  c.StatsReportURL,
		ScreenshotURLs:  c.ScreenshotURLs,
		LastUpdated:     c.LastUpdated.UTC(),
		DeletedAt:       c.DeletedAt,
	}
}

func publicationFromRow(row migrations.Publication) partner.Publication {
	p := partner.Publication{
		ID:              row.ID,
		PartnerID:       row.PartnerID,
		PublicationDate: row.PublicationDate,
		Platform:        row.Platform,
		Links:           row.Links,
		Description:     row.Description,
		StatsReportDate: row.StatsReportDate,
		StatsReportURL:  row.StatsReportURL,
		ScreenshotURLs:  row.ScreenshotURLs,
		LastUpdated:     row.LastUpdated.UTC(),
		DeletedAt:       utc(row.DeletedAt),
	}
	if p.Links == nil {
		p.Links = []string{}
	}
	return p
}

func quarterlyReportToRow(r partner.QuarterlyReport, pos int) migrations.QuarterlyReport {
	return migrations.QuarterlyReport{
		ID:         r.ID,
		PartnerID:  r.PartnerID,
		Position:   pos,
		ReportDate: r.ReportDate,
		Link:       r.Link,
		DeletedAt:  common.CloneTime(r.DeletedAt),
	}
}

func quarterlyReportFromRow(row migrations.QuarterlyReport) partner.QuarterlyReport {
	return partner.QuarterlyReport{
		ID:         row.ID,
		PartnerID:  row.PartnerID,
		ReportDate: row.ReportDate,
		Link:       row.Link,
		DeletedAt:  utc(row.DeletedAt),
	}
}

func monthlyCheckInToRow(m partner.MonthlyCheckIn, pos int) migrations.MonthlyCheckIn {
	return migrations.MonthlyCheckIn{
		ID:          m.ID,
		PartnerID:   m.PartnerID,
		Position:    pos,
		CheckInDate: m.CheckInDate,
		Notes:       m.Notes,
		DeletedAt:   common.CloneTime(m.DeletedAt),
	}
}

func monthlyCheckInFromRow(row migrations.MonthlyCheckIn) partner.MonthlyCheckIn {
	return partner.MonthlyCheckIn{
		ID:          row.ID,
		PartnerID:   row.PartnerID,
		CheckInDate: row.CheckInDate,
		Notes:       row.Notes,
		DeletedAt:   utc(row.DeletedAt),
	}
}

func globalEventToRow(e *globalevent.GlobalEvent) migrations.GlobalEvent {
	c := e.Clone()
	return migrations.GlobalEvent{
		ID:            c.ID,
		EventName:     c.EventName,
		EventDate:     c.EventDate,
		EventLocation: c.EventLocation,
		Description:   c.Description,
		Invitations:   c.Invitations,
		CreatedAt:     c.CreatedAt.UTC(),
		UpdatedAt:     c.UpdatedAt,
		DeletedAt:     c.DeletedAt,
	}
}

func globalEventFromRow(row migrations.GlobalEvent) *globalevent.GlobalEvent {
	e := &globalevent.GlobalEvent{
		ID:            row.ID,
		EventName:     row.EventName,
		EventDate:     row.EventDate,
		EventLocation: row.EventLocation,
		Description:   row.Description,
		Invitations:   row.Invitations,
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     utc(row.UpdatedAt),
		DeletedAt:     utc(row.DeletedAt),
	}
	if e.Invitations == nil {
		e.Invitations = []globalevent.Invitation{}
	}
	return e
}

func lightweightFromRow(row migrations.LightweightPartner) *globalevent.LightweightPartner {
	return &globalevent.LightweightPartner{
		ID:            row.ID,
		Name:          row.Name,
		Email:         row.Email,
		Company:       row.Company,
		IsLightweight: true,
	}
}

// utc copies an optional timestamp read from the database in UTC
func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// toRows maps items to rows numbered by their position in the collection
func toRows[T any, R any](items []T, fn func(T, int) R) []R {
	rows := make([]R, 0, len(items))
	for i, item := range items {
		rows = append(rows, fn(item, i))
	}
	return rows
}

func fromRows[R any, T any](rows []R, fn func(R) T) []T {
	items := make([]T, 0, len(rows))
	for _, row := range rows {
		items = append(items, fn(row))
	}
	return items
}
