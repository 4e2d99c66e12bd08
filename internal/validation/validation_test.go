package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
)

func validPartner() *partner.Partner {
	return &partner.Partner{
		Name:                 "Acme",
		StartDate:            "2025-01-01",
		EndDate:              "2025-12-31",
		CommissionClient:     10,
		CommissionConsulting: 5,
		Type:                 partner.TypeStrategic,
		CompanyHubspotURL:    "https://app.hubspot.com/company/1",
		ContactPerson:        &partner.ContactPerson{Name: "Jo", Email: "jo@acme.test"},
	}
}

func TestValidatePartner(t *testing.T) {
	v := PartnerValidation{}
	require.NoError(t, v.ValidatePartner(validPartner()))

	cases := map[string]func(p *partner.Partner){
		"missing name":     func(p *partner.Partner) { p.Name = " " },
		"bad type":         func(p *partner.Partner) { p.Type = "reseller" },
		"bad date":         func(p *partner.Partner) { p.StartDate = "01/02/2025" },
		"end before start": func(p *partner.Partner) { p.EndDate = "2024-01-01" },
		"commission range": func(p *partner.Partner) { p.CommissionClient = 120 },
		"bad email":        func(p *partner.Partner) { p.ContactPerson.Email = "nope" },
		"bad url":          func(p *partner.Partner) { p.CompanyHubspotURL = "hubspot" },
		"bad slug":         func(p *partner.Partner) { p.Slug = "Not A Slug" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validPartner()
			mutate(p)
			err := v.ValidatePartner(p)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestValidatePatch(t *testing.T) {
	v := PartnerValidation{}
	assert.ErrorIs(t, v.ValidatePatch(partner.Patch{}), common.ErrValidation)

	active := false
	assert.NoError(t, v.ValidatePatch(partner.Patch{IsActive: &active}))

	badType := partner.Type("x")
	assert.ErrorIs(t, v.ValidatePatch(partner.Patch{Type: &badType}), common.ErrValidation)
}

func TestValidatePublicationRequiresLinks(t *testing.T) {
	v := PartnerValidation{}
	pub := partner.Publication{PublicationDate: "2025-02-01", Platform: "LinkedIn"}
	assert.ErrorIs(t, v.ValidatePublication(pub), common.ErrValidation)

	pub.Links = []string{"https://linkedin.com/post/1"}
	assert.NoError(t, v.ValidatePublication(pub))
}

func TestValidateInvitations(t *testing.T) {
	v := GlobalEventValidation{}

	ok := []globalevent.Invitation{
		{PartnerID: "P1", Status: globalevent.InvitationProposed, ProposalDate: "2025-01-01"},
		{PartnerID: "L1", Status: globalevent.InvitationPending},
	}
	require.NoError(t, v.ValidateInvitations(ok))

	missing := []globalevent.Invitation{{Status: globalevent.InvitationPending}}
	assert.ErrorIs(t, v.ValidateInvitations(missing), common.ErrValidation)

	badStatus := []globalevent.Invitation{{PartnerID: "P1", Status: "maybe"}}
	assert.ErrorIs(t, v.ValidateInvitations(badStatus), common.ErrValidation)

	dup := []globalevent.Invitation{
		{PartnerID: "P1", Status: globalevent.InvitationPending},
		{PartnerID: "P1", Status: globalevent.InvitationAccepted},
	}
	assert.ErrorIs(t, v.ValidateInvitations(dup), common.ErrValidation)
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://example.com/x", "link"))
	assert.Error(t, ValidateURL("ftp://example.com", "link"))
	assert.Error(t, ValidateURL("/relative", "link"))
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("ge-gala-2025", "id"))
	assert.NoError(t, ValidateID("pub.v2", "id"))
	for _, bad := range []string{"", "  ", "../P2", "a/b", `a\b`, "..", strings.Repeat("x", 129)} {
		assert.ErrorIs(t, ValidateID(bad, "id"), common.ErrValidation, bad)
	}
}
