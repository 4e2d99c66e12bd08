package validation

import (
	"fmt"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
)

// PartnerValidation contiene validaciones específicas para socios
type PartnerValidation struct{}

// ValidatePartner checks a full partner record
func (v PartnerValidation) ValidatePartner(p *partner.Partner) error {
	if err := first(
		ValidateRequired(p.Name, "name"),
		ValidateMaxLength(p.Name, 200, "name"),
		ValidateOptionalDate(p.StartDate, "startDate"),
		ValidateOptionalDate(p.EndDate, "endDate"),
		ValidateDateOrder(p.StartDate, p.EndDate),
		ValidatePercentage(p.CommissionClient, "commissionClient"),
		ValidatePercentage(p.CommissionConsulting, "commissionConsulting"),
		ValidateOptionalURL(p.CompanyHubspotURL, "companyHubspotUrl"),
	); err != nil {
		return err
	}
	if _, ok := partner.TypeFromString(string(p.Type)); !ok {
		return common.NewValidationError("type", fmt.Sprintf("must be %q or %q", partner.TypeStrategic, partner.TypeAmbassador))
	}
	if p.Slug != "" {
		if err := ValidateSlug(p.Slug); err != nil {
			return err
		}
	}
	if c := p.ContactPerson; c != nil {
		return first(
			ValidateOptionalEmail(c.Email, "contactPerson.email"),
			ValidateOptionalURL(c.HubspotURL, "contactPerson.hubspotUrl"),
		)
	}
	return nil
}

// ValidatePatch checks only the fields a patch sets
func (v PartnerValidation) ValidatePatch(p partner.Patch) error {
	if p.IsEmpty() {
		return common.NewValidationError("", "patch must set at least one field")
	}
	var errs []error
	if p.Name != nil {
		errs = append(errs, ValidateRequired(*p.Name, "name"), ValidateMaxLength(*p.Name, 200, "name"))
	}
	if p.StartDate != nil {
		errs = append(errs, ValidateOptionalDate(*p.StartDate, "startDate"))
	}
	if p.EndDate != nil {
		errs = append(errs, ValidateOptionalDate(*p.EndDate, "endDate"))
	}
	if p.CommissionClient != nil {
		errs = append(errs, ValidatePercentage(*p.CommissionClient, "commissionClient"))
	}
	if p.CommissionConsulting != nil {
		errs = append(errs, ValidatePercentage(*p.CommissionConsulting, "commissionConsulting"))
	}
	if p.Type != nil {
		if _, ok := partner.TypeFromString(string(*p.Type)); !ok {
			errs = append(errs, common.NewValidationError("type", "is not a known partner type"))
		}
	}
	if p.CompanyHubspotURL != nil {
		errs = append(errs, ValidateOptionalURL(*p.CompanyHubspotURL, "companyHubspotUrl"))
	}
	if p.ContactPerson != nil {
		errs = append(errs,
			ValidateOptionalEmail(p.ContactPerson.Email, "contactPerson.email"),
			ValidateOptionalURL(p.ContactPerson.HubspotURL, "contactPerson.hubspotUrl"),
		)
	}
	if p.Slug != nil {
		errs = append(errs, ValidateSlug(*p.Slug))
	}
	return first(errs...)
}

// ValidateIntroduction checks a qualified introduction
func (v PartnerValidation) ValidateIntroduction(i partner.Introduction) error {
	if !i.Status.Valid() {
		return common.NewValidationError("status", "is not a known introduction status")
	}
	return first(
		ValidateDate(i.Date, "date"),
		ValidateRequired(i.ContactName, "contactName"),
		ValidateRequired(i.Company, "company"),
	)
}

// ValidateEvent checks a partner event
func (v PartnerValidation) ValidateEvent(e partner.Event) error {
	if !e.Status.Valid() {
		return common.NewValidationError("status", "is not a known event status")
	}
	return first(
		ValidateRequired(e.EventName, "eventName"),
		ValidateDate(e.ProposalDate, "proposalDate"),
		ValidateOptionalDate(e.EventDate, "eventDate"),
	)
}

// ValidatePublication checks a publication and its links
func (v PartnerValidation) ValidatePublication(p partner.Publication) error {
	if len(p.Links) == 0 {
		return common.NewValidationError("links", "must contain at least one link")
	}
	errs := []error{
		ValidateDate(p.PublicationDate, "publicationDate"),
		ValidateRequired(p.Platform, "platform"),
		ValidateOptionalDate(p.StatsReportDate, "statsReportDate"),
		ValidateOptionalURL(p.StatsReportURL, "statsReportUrl"),
	}
	for _, link := range p.Links {
		errs = append(errs, ValidateURL(link, "links"))
	}
	return first(errs...)
}

// ValidateQuarterlyReport checks a quarterly report
func (v PartnerValidation) ValidateQuarterlyReport(r partner.QuarterlyReport) error {
	return first(
		ValidateDate(r.ReportDate, "reportDate"),
		ValidateRequired(r.Link, "link"),
		ValidateURL(r.Link, "link"),
	)
}

// ValidateMonthlyCheckIn checks a monthly check-in
func (v PartnerValidation) ValidateMonthlyCheckIn(m partner.MonthlyCheckIn) error {
	return ValidateDate(m.CheckInDate, "checkInDate")
}
