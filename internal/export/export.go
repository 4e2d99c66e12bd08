// Package export turns partnerships into tabular sheets and writes them as
// Excel workbooks or CSV. Only active rows are exported.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
)

// Sheet is one table of an export
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

const listSeparator = "; "

// PartnersSheet lists one row per active partner
func PartnersSheet(data []*partner.PartnershipData) Sheet {
	s := Sheet{
		Name: "Partners",
		Header: []string{
			"ID", "Name", "Slug", "Type", "Active", "Start date", "End date", "Duration",
			"Client commission (%)", "Consulting commission (%)",
			"Contact name", "Contact email", "Company HubSpot", "Services",
		},
	}
	for _, d := range active(data) {
		p := d.Partner
		var contact partner.ContactPerson
		if p.ContactPerson != nil {
			contact = *p.ContactPerson
		}
		s.Rows = append(s.Rows, []string{
			p.ID, p.Name, p.Slug, string(p.Type), yesNo(p.IsActive), p.StartDate, p.EndDate, p.Duration,
			number(p.CommissionClient), number(p.CommissionConsulting),
			contact.Name, contact.Email, p.CompanyHubspotURL, p.ServicesSummary,
		})
	}
	return s
}

// Workbook returns the partners sheet followed by one sheet per collection
func Workbook(data []*partner.PartnershipData) []Sheet {
	rows := active(data)
	return []Sheet{
		PartnersSheet(data),
		introductionsSheet(rows),
		eventsSheet(rows),
		publicationsSheet(rows),
		quarterlyReportsSheet(rows),
		monthlyCheckInsSheet(rows),
	}
}

// GlobalEventsSheet lists one row per invitation of every active event
func GlobalEventsSheet(events []*globalevent.GlobalEvent) Sheet {
	s := Sheet{
		Name:   "Global events",
		Header: []string{"Event", "Date", "Location", "Partner", "Status", "Proposal date", "Response date", "Guests", "Notes"},
	}
	for _, e := range events {
		if e.IsDeleted() {
			continue
		}
		if len(e.Invitations) == 0 {
			s.Rows = append(s.Rows, []string{e.EventName, e.EventDate, e.EventLocation, "", "", "", "", "", ""})
			continue
		}
		for _, inv := range e.Invitations {
			s.Rows = append(s.Rows, []string{
				e.EventName, e.EventDate, e.EventLocation,
				inv.PartnerName, string(inv.Status), inv.ProposalDate, inv.ResponseDate,
				strings.Join(inv.Guests, listSeparator), inv.Notes,
			})
		}
	}
	return s
}

func introductionsSheet(data []*partner.PartnershipData) Sheet {
	s := Sheet{
		Name:   "Introductions",
		Header: []string{"Partner", "Date", "Contact", "Company", "Status", "Contract signed"},
	}
	for _, d := range data {
		for _, i := range d.Introductions {
			s.Rows = append(s.Rows, []string{
				d.Partner.Name, i.Date, i.ContactName, i.Company, string(i.Status), yesNo(i.ContractSigned),
			})
		}
	}
	return s
}

func eventsSheet(data []*partner.PartnershipData) Sheet {
	s := Sheet{
		Name:   "Events",
		Header: []string{"Partner", "Event", "Proposal date", "Event date", "Location", "Status", "Attended", "Global event"},
	}
	for _, d := range data {
		for _, e := range d.Events {
			s.Rows = append(s.Rows, []string{
				d.Partner.Name, e.EventName, e.ProposalDate, e.EventDate, e.EventLocation,
				string(e.Status), yesNo(e.Attended), yesNo(e.IsSyncedFromGlobal),
			})
		}
	}
	return s
}

func publicationsSheet(data []*partner.PartnershipData) Sheet {
	s := Sheet{
		Name:   "Publications",
		Header: []string{"Partner", "Date", "Platform", "Links", "Description", "Stats date", "Stats report", "Screenshots", "Last updated"},
	}
	for _, d := range data {
		for _, p := range d.Publications {
			s.Rows = append(s.Rows, []string{
				d.Partner.Name, p.PublicationDate, p.Platform, strings.Join(p.Links, listSeparator), p.Description,
				p.StatsReportDate, p.StatsReportURL, strconv.Itoa(len(p.ScreenshotURLs)), timestamp(p.LastUpdated),
			})
		}
	}
	return s
}

func quarterlyReportsSheet(data []*partner.PartnershipData) Sheet {
	s := Sheet{Name: "Quarterly reports", Header: []string{"Partner", "Report date", "Link"}}
	for _, d := range data {
		for _, r := range d.QuarterlyReports {
			s.Rows = append(s.Rows, []string{d.Partner.Name, r.ReportDate, r.Link})
		}
	}
	return s
}

func monthlyCheckInsSheet(data []*partner.PartnershipData) Sheet {
	s := Sheet{Name: "Monthly check-ins", Header: []string{"Partner", "Check-in date", "Notes"}}
	for _, d := range data {
		for _, m := range d.MonthlyCheckIns {
			s.Rows = append(s.Rows, []string{d.Partner.Name, m.CheckInDate, m.Notes})
		}
	}
	return s
}

// active drops soft-deleted partners and the soft-deleted rows of the rest
func active(data []*partner.PartnershipData) []*partner.PartnershipData {
	out := make([]*partner.PartnershipData, 0, len(data))
	for _, d := range data {
		if d.Partner.IsDeleted() {
			continue
		}
		out = append(out, d.ActiveItems())
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return common.FormatDate(t)
}
