package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
)

func fixture() []*partner.PartnershipData {
	deletedAt := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	acme := partner.New(partner.Partner{
		ID: "p1", Name: "Acme", Slug: "acme", Type: partner.TypeStrategic, IsActive: true,
		CommissionClient: 12.5, ContactPerson: &partner.ContactPerson{Name: "Jane", Email: "jane@acme.test"},
	})
	acme.Events = []partner.Event{
		{ID: "e1", EventName: "Summit", ProposalDate: "2025-01-01", Status: partner.EventAccepted, Attended: true},
		{ID: "e2", EventName: "Old", ProposalDate: "2024-01-01", Status: partner.EventPending, DeletedAt: &deletedAt},
	}
	acme.Publications = []partner.Publication{{
		ID: "pub1", PublicationDate: "2025-01-10", Platform: "LinkedIn",
		Links: []string{"https://a.test/1", "https://a.test/2"},
	}}

	gone := partner.New(partner.Partner{ID: "p2", Name: "Gone", Type: partner.TypeAmbassador, DeletedAt: &deletedAt})
	return []*partner.PartnershipData{acme, gone}
}

func TestPartnersSheetSkipsDeleted(t *testing.T) {
	s := PartnersSheet(fixture())

	require.Len(t, s.Rows, 1)
	row := s.Rows[0]
	assert.Equal(t, len(s.Header), len(row))
	assert.Equal(t, "Acme", row[1])
	assert.Equal(t, "yes", row[4])
	assert.Equal(t, "12.5", row[8])
	assert.Equal(t, "jane@acme.test", row[11])
}

func TestWorkbookSheets(t *testing.T) {
	sheets := Workbook(fixture())

	names := make([]string, 0, len(sheets))
	for _, s := range sheets {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Partners", "Introductions", "Events", "Publications", "Quarterly reports", "Monthly check-ins"}, names)

	events := sheets[2]
	require.Len(t, events.Rows, 1, "soft-deleted events are left out")
	assert.Equal(t, "Summit", events.Rows[0][1])

	pubs := sheets[3]
	require.Len(t, pubs.Rows, 1)
	assert.Equal(t, "https://a.test/1; https://a.test/2", pubs.Rows[0][3])
}

func TestGlobalEventsSheet(t *testing.T) {
	ge := globalevent.NewGlobalEvent("Gala", time.Now())
	ge.Invitations = []globalevent.Invitation{
		{PartnerID: "p1", PartnerName: "Acme", Status: globalevent.InvitationAccepted, Guests: []string{"Ann", "Bob"}},
		{PartnerID: "lw", PartnerName: "Jane", Status: globalevent.InvitationPending},
	}
	empty := globalevent.NewGlobalEvent("Workshop", time.Now())

	s := GlobalEventsSheet([]*globalevent.GlobalEvent{ge, empty})
	require.Len(t, s.Rows, 3)
	assert.Equal(t, "Ann; Bob", s.Rows[0][7])
	assert.Equal(t, "Workshop", s.Rows[2][0])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, Workbook(fixture())))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.NotContains(t, f.GetSheetList(), "Sheet1")
	assert.Equal(t, "Partners", f.GetSheetName(f.GetActiveSheetIndex()))

	rows, err := f.GetRows("Partners")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "Acme", rows[1][1])

	_, err = f.GetRows("Monthly check-ins")
	assert.NoError(t, err)
}

func TestWriteXLSXRequiresSheets(t *testing.T) {
	assert.Error(t, WriteXLSX(&bytes.Buffer{}, nil))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, PartnersSheet(fixture())))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ID", records[0][0])
	assert.Equal(t, "p1", records[1][0])
}

func TestCSVGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	sheets := Workbook(fixture())

	for name, sheet := range map[string]Sheet{"partners.csv": sheets[0], "events.csv": sheets[2]} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteCSV(&buf, sheet))
			g.Assert(t, name, buf.Bytes())
		})
	}
}
