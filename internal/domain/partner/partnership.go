package partner

import (
	"slices"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
)

// Collection names one of the five collections owned by a partner
type Collection string

const (
	CollectionIntroductions    Collection = "introductions"
	CollectionEvents           Collection = "events"
	CollectionPublications     Collection = "publications"
	CollectionQuarterlyReports Collection = "quarterly-reports"
	CollectionMonthlyCheckIns  Collection = "monthly-check-ins"
)

// Collections lists every child collection in display order
func Collections() []Collection {
	return []Collection{
		CollectionIntroductions,
		CollectionEvents,
		CollectionPublications,
		CollectionQuarterlyReports,
		CollectionMonthlyCheckIns,
	}
}

// CollectionFromString converts a path segment to a Collection
func CollectionFromString(s string) (Collection, bool) {
	c := Collection(s)
	if slices.Contains(Collections(), c) {
		return c, true
	}
	return "", false
}

// PartnershipData is a partner composed with its five child collections.
// It is never stored as one row.
type PartnershipData struct {
	Partner          Partner           `json:"partner"`
	Introductions    []Introduction    `json:"introductions"`
	Events           []Event           `json:"events"`
	Publications     []Publication     `json:"publications"`
	QuarterlyReports []QuarterlyReport `json:"quarterlyReports"`
	MonthlyCheckIns  []MonthlyCheckIn  `json:"monthlyCheckIns"`
}

// New returns an aggregate with empty, non-nil collections.
func New(p Partner) *PartnershipData {
	return &PartnershipData{
		Partner:          p,
		Introductions:    []Introduction{},
		Events:           []Event{},
		Publications:     []Publication{},
		QuarterlyReports: []QuarterlyReport{},
		MonthlyCheckIns:  []MonthlyCheckIn{},
	}
}

// Clone returns a deep copy
func (d *PartnershipData) Clone() *PartnershipData {
	out := New(d.Partner.Clone())
	out.Introductions = cloneItems(d.Introductions)
	out.Events = cloneItems(d.Events)
	out.Publications = cloneItems(d.Publications)
	out.QuarterlyReports = cloneItems(d.QuarterlyReports)
	out.MonthlyCheckIns = cloneItems(d.MonthlyCheckIns)
	return out
}

// cloneItems deep-copies items; WithDeletedAt never shares memory.
func cloneItems[T common.Item[T]](items []T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, item.WithDeletedAt(item.DeletedTime()))
	}
	return out
}

// ActiveItems returns a copy whose collections hold only non-deleted items.
func (d *PartnershipData) ActiveItems() *PartnershipData {
	out := d.Clone()
	out.Introductions = common.Active(out.Introductions)
	out.Events = common.Active(out.Events)
	out.Publications = common.Active(out.Publications)
	out.QuarterlyReports = common.Active(out.QuarterlyReports)
	out.MonthlyCheckIns = common.Active(out.MonthlyCheckIns)
	return out
}

// ChildItem is an item of one of the five partner-owned collections.
type ChildItem[T any] interface {
	common.Item[T]
	WithPartnerID(id string) T
}

// Normalize returns a deep copy of items owned by partnerID, assigning ids
// from newID where missing. A nil input yields an empty collection.
func Normalize[T ChildItem[T]](partnerID string, items []T, newID func() string) []T {
	out := make([]T, 0, len(items))
	for _, item := range common.EnsureIDs(items, newID) {
		out = append(out, item.WithPartnerID(partnerID))
	}
	return out
}

// NormalizeAll applies Normalize to every collection of d in place.
func (d *PartnershipData) NormalizeAll(newID func() string) {
	id := d.Partner.ID
	d.Introductions = Normalize(id, d.Introductions, newID)
	d.Events = Normalize(id, d.Events, newID)
	d.Publications = Normalize(id, d.Publications, newID)
	d.QuarterlyReports = Normalize(id, d.QuarterlyReports, newID)
	d.MonthlyCheckIns = Normalize(id, d.MonthlyCheckIns, newID)
}
